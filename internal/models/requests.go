package models

// Request bodies as the backend expects them on create/update.

type NewGrade struct {
	StudentID  int    `json:"student_id"`
	ModuleCode string `json:"module_code"`
	Score      int    `json:"score"`
}

type ScoreUpdate struct {
	Score int `json:"score"`
}

type NewRegistration struct {
	StudentID  int    `json:"student_id"`
	ModuleCode string `json:"module_code"`
}
