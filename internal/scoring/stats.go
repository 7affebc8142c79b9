// internal/scoring/stats.go
package scoring

import (
	"sort"

	"github.com/shrimpsizemoose/gradehub/internal/models"
)

const (
	DefaultTopPerformers  = 3
	DefaultRecentActivity = 5
)

// Performer is one student's mean over every grade they hold in a snapshot.
type Performer struct {
	Student models.Student `json:"student"`
	Average float64        `json:"average"`
	Grades  int            `json:"grades"`
}

// Average is the arithmetic mean score; an empty collection yields 0.
func Average(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	total := 0
	for _, g := range grades {
		total += g.Score
	}
	return float64(total) / float64(len(grades))
}

// TopPerformers ranks students by mean score, highest first. Students with
// equal means keep the order in which they first appear in grades.
// n <= 0 means DefaultTopPerformers.
func TopPerformers(grades []models.Grade, n int) []Performer {
	if n <= 0 {
		n = DefaultTopPerformers
	}

	type tally struct {
		student models.Student
		total   int
		count   int
	}
	var order []int
	byStudent := make(map[int]*tally)
	for _, g := range grades {
		t, ok := byStudent[g.Student.ID]
		if !ok {
			t = &tally{student: g.Student}
			byStudent[g.Student.ID] = t
			order = append(order, g.Student.ID)
		}
		t.total += g.Score
		t.count++
	}

	performers := make([]Performer, 0, len(order))
	for _, id := range order {
		t := byStudent[id]
		performers = append(performers, Performer{
			Student: t.student,
			Average: float64(t.total) / float64(t.count),
			Grades:  t.count,
		})
	}

	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Average > performers[j].Average
	})

	if len(performers) > n {
		performers = performers[:n]
	}
	return performers
}

// RecentActivity returns the last n grades, most recently appended first.
// The backend has no timestamps, so collection order stands in for time.
// n <= 0 means DefaultRecentActivity.
func RecentActivity(grades []models.Grade, n int) []models.Grade {
	if n <= 0 {
		n = DefaultRecentActivity
	}
	if n > len(grades) {
		n = len(grades)
	}

	recent := make([]models.Grade, 0, n)
	for i := len(grades) - 1; i >= len(grades)-n; i-- {
		recent = append(recent, grades[i])
	}
	return recent
}

// FilterByModule keeps grades for moduleCode, or all of them when it is empty.
// The result never aliases the input.
func FilterByModule(grades []models.Grade, moduleCode string) []models.Grade {
	if moduleCode == "" {
		return append([]models.Grade{}, grades...)
	}
	return filter(grades, func(g models.Grade) bool {
		return g.Module.Code == moduleCode
	})
}

func ForStudent(grades []models.Grade, studentID int) []models.Grade {
	return filter(grades, func(g models.Grade) bool {
		return g.Student.ID == studentID
	})
}

func filter(grades []models.Grade, keep func(models.Grade) bool) []models.Grade {
	out := []models.Grade{}
	for _, g := range grades {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
