package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
)

type StudentState struct {
	Status
	Student       *models.Student       `json:"student"`
	Grades        []models.Grade        `json:"grades"`
	Registrations []models.Registration `json:"registrations"`
	Average       float64               `json:"average"`
}

// StudentInspect is the single-student screen: profile, grades and
// registrations.
type StudentInspect struct {
	backend   Backend
	studentID int
	view      *view[StudentState]
}

func NewStudentInspect(backend Backend, studentID int) *StudentInspect {
	return &StudentInspect{
		backend:   backend,
		studentID: studentID,
		view:      newView[StudentState]("student"),
	}
}

func (s *StudentInspect) StudentID() int {
	return s.studentID
}

func (s *StudentInspect) Load(ctx context.Context) error {
	seq := s.view.begin()

	var (
		student       *models.Student
		grades        []models.Grade
		registrations []models.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		student, err = s.backend.GetStudent(gctx, s.studentID)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.backend.ListGrades(gctx)
		return err
	})
	g.Go(func() (err error) {
		registrations, err = s.backend.ListStudentRegistrations(gctx, s.studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.view.fail(seq, err)
		return err
	}

	mine := scoring.ForStudent(grades, s.studentID)
	s.view.commit(seq, func(st *StudentState) {
		st.Student = student
		st.Grades = mine
		st.Registrations = nonNil(registrations)
		st.Average = scoring.Average(mine)
	})
	metrics.ScreenLoadsTotal.WithLabelValues(s.view.name, outcomeOK).Inc()
	return nil
}

func (s *StudentInspect) Refresh(ctx context.Context) error { return s.Load(ctx) }

func (s *StudentInspect) State() StudentState {
	data, status := s.view.read()
	data.Status = status
	return data
}
