package models

const (
	MinScore = 0
	MaxScore = 100
)

// Grade embeds its student and module as the backend returns them.
type Grade struct {
	ID      int     `json:"id"`
	Score   int     `json:"score"`
	Student Student `json:"student"`
	Module  Module  `json:"module"`
}

type Registration struct {
	ID      int     `json:"id"`
	Student Student `json:"student"`
	Module  Module  `json:"module"`
}
