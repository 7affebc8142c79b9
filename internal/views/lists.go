package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

type StudentsState struct {
	Status
	Students []models.Student `json:"students"`
}

type Students struct {
	backend Backend
	view    *view[StudentsState]
}

func NewStudents(backend Backend) *Students {
	return &Students{backend: backend, view: newView[StudentsState]("students")}
}

func (s *Students) Load(ctx context.Context) error {
	seq := s.view.begin()
	students, err := s.backend.ListStudents(ctx)
	if err != nil {
		s.view.fail(seq, err)
		return err
	}
	s.view.commit(seq, func(st *StudentsState) {
		st.Students = nonNil(students)
	})
	metrics.ScreenLoadsTotal.WithLabelValues(s.view.name, outcomeOK).Inc()
	return nil
}

func (s *Students) Refresh(ctx context.Context) error { return s.Load(ctx) }

func (s *Students) State() StudentsState {
	data, status := s.view.read()
	data.Status = status
	return data
}

type ModulesState struct {
	Status
	Modules []models.Module `json:"modules"`
}

type Modules struct {
	backend Backend
	view    *view[ModulesState]
}

func NewModules(backend Backend) *Modules {
	return &Modules{backend: backend, view: newView[ModulesState]("modules")}
}

func (s *Modules) Load(ctx context.Context) error {
	seq := s.view.begin()
	modules, err := s.backend.ListModules(ctx)
	if err != nil {
		s.view.fail(seq, err)
		return err
	}
	s.view.commit(seq, func(st *ModulesState) {
		st.Modules = nonNil(modules)
	})
	metrics.ScreenLoadsTotal.WithLabelValues(s.view.name, outcomeOK).Inc()
	return nil
}

func (s *Modules) Refresh(ctx context.Context) error { return s.Load(ctx) }

func (s *Modules) State() ModulesState {
	data, status := s.view.read()
	data.Status = status
	return data
}

// RegistrationsState carries students and modules for the registration
// form's pickers alongside the registrations themselves.
type RegistrationsState struct {
	Status
	Registrations []models.Registration `json:"registrations"`
	Students      []models.Student      `json:"students"`
	Modules       []models.Module       `json:"modules"`
}

type Registrations struct {
	backend Backend
	view    *view[RegistrationsState]
}

func NewRegistrations(backend Backend) *Registrations {
	return &Registrations{backend: backend, view: newView[RegistrationsState]("registrations")}
}

func (s *Registrations) Load(ctx context.Context) error {
	seq := s.view.begin()

	var (
		registrations []models.Registration
		students      []models.Student
		modules       []models.Module
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		registrations, err = s.backend.ListRegistrations(gctx)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.backend.ListStudents(gctx)
		return err
	})
	g.Go(func() (err error) {
		modules, err = s.backend.ListModules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.view.fail(seq, err)
		return err
	}

	s.view.commit(seq, func(st *RegistrationsState) {
		st.Registrations = nonNil(registrations)
		st.Students = nonNil(students)
		st.Modules = nonNil(modules)
	})
	metrics.ScreenLoadsTotal.WithLabelValues(s.view.name, outcomeOK).Inc()
	return nil
}

func (s *Registrations) Refresh(ctx context.Context) error { return s.Load(ctx) }

func (s *Registrations) State() RegistrationsState {
	data, status := s.view.read()
	data.Status = status
	return data
}
