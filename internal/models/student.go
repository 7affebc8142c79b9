package models

import (
	"fmt"
	"strings"
)

type Student struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

func (s Student) FullName() string {
	return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
}

// Initials returns the uppercased first letters of first and last name.
func (s Student) Initials() string {
	var out []rune
	for _, name := range []string{s.FirstName, s.LastName} {
		for _, r := range name {
			out = append(out, r)
			break
		}
	}
	return strings.ToUpper(string(out))
}
