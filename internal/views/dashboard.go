package views

import (
	"context"

	"github.com/shrimpsizemoose/trekker/logger"
	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
)

type DashboardOptions struct {
	TopPerformers  int
	RecentActivity int
}

type DashboardState struct {
	Status

	Grades   []models.Grade   `json:"-"`
	Students []models.Student `json:"-"`
	Modules  []models.Module  `json:"-"`

	StudentCount   int                 `json:"student_count"`
	ModuleCount    int                 `json:"module_count"`
	GradeCount     int                 `json:"grade_count"`
	Average        float64             `json:"average"`
	TopPerformers  []scoring.Performer `json:"top_performers"`
	RecentActivity []models.Grade      `json:"recent_activity"`

	// Degraded names the collections shown empty because their read failed.
	Degraded []string `json:"degraded,omitempty"`
}

// Dashboard never reports a load error: a collection that fails to load is
// shown as empty and the rest of the screen still renders.
type Dashboard struct {
	backend Backend
	opts    DashboardOptions
	view    *view[DashboardState]
}

func NewDashboard(backend Backend, opts DashboardOptions) *Dashboard {
	if opts.TopPerformers <= 0 {
		opts.TopPerformers = scoring.DefaultTopPerformers
	}
	if opts.RecentActivity <= 0 {
		opts.RecentActivity = scoring.DefaultRecentActivity
	}
	return &Dashboard{
		backend: backend,
		opts:    opts,
		view:    newView[DashboardState]("dashboard"),
	}
}

func (d *Dashboard) Load(ctx context.Context) error {
	seq := d.view.begin()

	var (
		grades   []models.Grade
		students []models.Student
		modules  []models.Module
		degraded [3]bool
	)

	var g errgroup.Group
	g.Go(func() error {
		list, err := d.backend.ListGrades(ctx)
		grades, degraded[0] = orEmpty("grades", list, err)
		return nil
	})
	g.Go(func() error {
		list, err := d.backend.ListStudents(ctx)
		students, degraded[1] = orEmpty("students", list, err)
		return nil
	})
	g.Go(func() error {
		list, err := d.backend.ListModules(ctx)
		modules, degraded[2] = orEmpty("modules", list, err)
		return nil
	})
	g.Wait()

	next := DashboardState{
		Grades:         grades,
		Students:       students,
		Modules:        modules,
		StudentCount:   len(students),
		ModuleCount:    len(modules),
		GradeCount:     len(grades),
		Average:        scoring.Average(grades),
		TopPerformers:  scoring.TopPerformers(grades, d.opts.TopPerformers),
		RecentActivity: scoring.RecentActivity(grades, d.opts.RecentActivity),
	}
	for i, name := range []string{"grades", "students", "modules"} {
		if degraded[i] {
			next.Degraded = append(next.Degraded, name)
		}
	}

	outcome := outcomeOK
	if len(next.Degraded) > 0 {
		outcome = outcomeDegraded
	}
	metrics.ScreenLoadsTotal.WithLabelValues(d.view.name, outcome).Inc()

	if d.view.commit(seq, func(s *DashboardState) { *s = next }) {
		metrics.AverageScore.Set(next.Average)
	}

	return nil
}

func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

func (d *Dashboard) State() DashboardState {
	data, status := d.view.read()
	data.Status = status
	return data
}

func orEmpty[T any](resource string, items []T, err error) ([]T, bool) {
	if err != nil {
		logger.Error.Printf("dashboard: showing no %s: %v", resource, err)
		return []T{}, true
	}
	return nonNil(items), false
}
