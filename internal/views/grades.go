package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
)

type GradesState struct {
	Status

	Grades  []models.Grade  `json:"-"`
	Modules []models.Module `json:"modules"`

	ModuleFilter string         `json:"module_filter"`
	Filtered     []models.Grade `json:"grades"`
	Average      float64        `json:"average"`
}

// Grades is the grade list screen with its module filter.
type Grades struct {
	backend Backend
	view    *view[GradesState]
}

func NewGrades(backend Backend) *Grades {
	return &Grades{
		backend: backend,
		view:    newView[GradesState]("grades"),
	}
}

func (s *Grades) Load(ctx context.Context) error {
	seq := s.view.begin()

	var (
		grades  []models.Grade
		modules []models.Module
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		grades, err = s.backend.ListGrades(gctx)
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

	s.view.commit(seq, func(st *GradesState) {
		st.Grades = nonNil(grades)
		st.Modules = nonNil(modules)
		st.derive()
	})
	metrics.ScreenLoadsTotal.WithLabelValues(s.view.name, outcomeOK).Inc()
	return nil
}

func (s *Grades) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SetModuleFilter narrows the list to one module; "" shows everything.
func (s *Grades) SetModuleFilter(code string) {
	s.view.update(func(st *GradesState) {
		st.ModuleFilter = code
		st.derive()
	})
}

func (s *Grades) State() GradesState {
	data, status := s.view.read()
	data.Status = status
	return data
}

// WithModuleFilter returns a copy of the snapshot narrowed to one module.
// The screen's own filter is left alone.
func (st GradesState) WithModuleFilter(code string) GradesState {
	st.ModuleFilter = code
	st.derive()
	return st
}

func (st *GradesState) derive() {
	st.Filtered = scoring.FilterByModule(st.Grades, st.ModuleFilter)
	st.Average = scoring.Average(st.Filtered)
}
