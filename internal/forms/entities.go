package forms

import (
	"context"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

// Backend is the write side of the API client.
type Backend interface {
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int) error
	CreateModule(ctx context.Context, module models.Module) (*models.Module, error)
	CreateGrade(ctx context.Context, grade models.NewGrade) (*models.Grade, error)
	UpdateGradeScore(ctx context.Context, id, score int) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id int) error
	CreateRegistration(ctx context.Context, reg models.NewRegistration) (*models.Registration, error)
}

// Pointers distinguish "not picked yet" from a real zero.
type GradeDraft struct {
	StudentID  *int   `json:"student_id" label:"Student" validate:"required"`
	ModuleCode string `json:"module_code" label:"Module" validate:"required"`
	Score      *int   `json:"score" label:"Score" validate:"required,min=0,max=100"`
}

type RegistrationDraft struct {
	StudentID  *int   `json:"student_id" label:"Student" validate:"required"`
	ModuleCode string `json:"module_code" label:"Module" validate:"required"`
}

type StudentDraft struct {
	FirstName string `json:"firstName" label:"First name" validate:"required"`
	LastName  string `json:"lastName" label:"Last name" validate:"required"`
	Username  string `json:"username" label:"Username" validate:"required"`
	Email     string `json:"email" label:"Email" validate:"required,email"`
}

type ModuleDraft struct {
	Code string `json:"code" label:"Code" validate:"required,max=10"`
	Name string `json:"name" label:"Name" validate:"required,max=100"`
	MNC  bool   `json:"mnc"`
}

type ScoreEdit struct {
	GradeID int  `json:"grade_id" label:"Grade" validate:"required"`
	Score   *int `json:"score" label:"Score" validate:"required,min=0,max=100"`
}

type StudentEdit struct {
	ID int `json:"id" label:"Student" validate:"required"`
	StudentDraft
}

// DeleteTarget is the record a confirmation dialog is about to remove.
type DeleteTarget struct {
	ID int `json:"id" label:"Record" validate:"required"`
}

func Int(v int) *int {
	return &v
}

func NewGradeForm(backend Backend, refresher Refresher, opts Options) *Form[GradeDraft] {
	return newForm(formDef[GradeDraft]{
		name:     "add_grade",
		fallback: "Failed to add grade",
		describe: describeSelection,
		submit: func(ctx context.Context, d GradeDraft) error {
			_, err := backend.CreateGrade(ctx, models.NewGrade{
				StudentID:  *d.StudentID,
				ModuleCode: d.ModuleCode,
				Score:      *d.Score,
			})
			if err == nil {
				metrics.GradeScoreHistogram.WithLabelValues(d.ModuleCode).Observe(float64(*d.Score))
			}
			return err
		},
	}, refresher, opts)
}

func NewRegistrationForm(backend Backend, refresher Refresher, opts Options) *Form[RegistrationDraft] {
	return newForm(formDef[RegistrationDraft]{
		name:     "register",
		fallback: "Failed to register",
		describe: describeSelection,
		submit: func(ctx context.Context, d RegistrationDraft) error {
			_, err := backend.CreateRegistration(ctx, models.NewRegistration{
				StudentID:  *d.StudentID,
				ModuleCode: d.ModuleCode,
			})
			return err
		},
	}, refresher, opts)
}

func NewStudentForm(backend Backend, refresher Refresher, opts Options) *Form[StudentDraft] {
	return newForm(formDef[StudentDraft]{
		name:     "add_student",
		fallback: "Failed to add student",
		submit: func(ctx context.Context, d StudentDraft) error {
			_, err := backend.CreateStudent(ctx, d.student(0))
			return err
		},
	}, refresher, opts)
}

func NewModuleForm(backend Backend, refresher Refresher, opts Options) *Form[ModuleDraft] {
	return newForm(formDef[ModuleDraft]{
		name:     "add_module",
		fallback: "Failed to add module",
		submit: func(ctx context.Context, d ModuleDraft) error {
			_, err := backend.CreateModule(ctx, models.Module{Code: d.Code, Name: d.Name, MNC: d.MNC})
			return err
		},
	}, refresher, opts)
}

// NewScoreEditForm opens the edit dialog on grade's current score.
func NewScoreEditForm(backend Backend, refresher Refresher, grade models.Grade, opts Options) *Form[ScoreEdit] {
	return newForm(formDef[ScoreEdit]{
		name:     "edit_score",
		fallback: "Failed to update grade",
		initial:  ScoreEdit{GradeID: grade.ID, Score: Int(grade.Score)},
		submit: func(ctx context.Context, d ScoreEdit) error {
			_, err := backend.UpdateGradeScore(ctx, d.GradeID, *d.Score)
			return err
		},
	}, refresher, opts)
}

// NewStudentEditForm replaces the whole student record on submit.
func NewStudentEditForm(backend Backend, refresher Refresher, student models.Student, opts Options) *Form[StudentEdit] {
	return newForm(formDef[StudentEdit]{
		name:     "edit_student",
		fallback: "Failed to update student",
		initial: StudentEdit{
			ID: student.ID,
			StudentDraft: StudentDraft{
				FirstName: student.FirstName,
				LastName:  student.LastName,
				Username:  student.Username,
				Email:     student.Email,
			},
		},
		submit: func(ctx context.Context, d StudentEdit) error {
			_, err := backend.UpdateStudent(ctx, d.student(d.ID))
			return err
		},
	}, refresher, opts)
}

func NewDeleteGradeDialog(backend Backend, refresher Refresher, gradeID int, opts Options) *Form[DeleteTarget] {
	return newForm(formDef[DeleteTarget]{
		name:     "delete_grade",
		fallback: "Failed to delete grade",
		initial:  DeleteTarget{ID: gradeID},
		submit: func(ctx context.Context, d DeleteTarget) error {
			return backend.DeleteGrade(ctx, d.ID)
		},
	}, refresher, opts)
}

func NewDeleteStudentDialog(backend Backend, refresher Refresher, studentID int, opts Options) *Form[DeleteTarget] {
	return newForm(formDef[DeleteTarget]{
		name:     "delete_student",
		fallback: "Failed to delete student",
		initial:  DeleteTarget{ID: studentID},
		submit: func(ctx context.Context, d DeleteTarget) error {
			return backend.DeleteStudent(ctx, d.ID)
		},
	}, refresher, opts)
}

func (d StudentDraft) student(id int) models.Student {
	return models.Student{
		ID:        id,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Username:  d.Username,
		Email:     d.Email,
	}
}
