// Package views holds per-screen view state: the last fetched snapshot of
// each collection a screen shows, its load status and the aggregates derived
// from the snapshot. Every screen re-fetches everything on Load/Refresh and
// recomputes aggregates from scratch; nothing is patched in place.
package views

import (
	"context"
	"sync"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

// Backend is the read side of the API client that screens depend on.
type Backend interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (*models.Student, error)
	ListModules(ctx context.Context) ([]models.Module, error)
	ListGrades(ctx context.Context) ([]models.Grade, error)
	ListRegistrations(ctx context.Context) ([]models.Registration, error)
	ListStudentRegistrations(ctx context.Context, studentID int) ([]models.Registration, error)
}

// Screen is what forms and outer surfaces drive.
type Screen interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
}

const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded"
	outcomeError    = "error"
)

// Status is the load state shared by every screen.
type Status struct {
	Loading bool  `json:"loading"`
	Err     error `json:"-"`
}

// Message is the load error text, or "" when the last load succeeded.
func (s Status) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// view guards one screen's snapshot. Readers get either the previous
// snapshot or the next one in full, never a mix. Loads are numbered so a
// slow load that finishes after a newer one is dropped.
type view[S any] struct {
	name string

	mu      sync.RWMutex
	status  Status
	data    S
	started uint64
	settled uint64
}

func newView[S any](name string) *view[S] {
	return &view[S]{
		name:   name,
		status: Status{Loading: true},
	}
}

func (v *view[S]) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.started++
	v.status.Loading = true
	return v.started
}

// settleLocked reports whether load seq is newer than the last one applied.
func (v *view[S]) settleLocked(seq uint64) bool {
	if seq <= v.settled {
		return false
	}
	v.settled = seq
	return true
}

// commit applies the result of load seq unless a newer load already landed.
func (v *view[S]) commit(seq uint64, apply func(*S)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settleLocked(seq) {
		logger.Debug.Printf("%s: dropping stale load #%d", v.name, seq)
		return false
	}
	apply(&v.data)
	v.status = Status{Loading: seq < v.started}
	return true
}

func (v *view[S]) fail(seq uint64, err error) {
	logger.Error.Printf("%s: load failed: %v", v.name, err)
	metrics.ScreenLoadsTotal.WithLabelValues(v.name, outcomeError).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settleLocked(seq) {
		return
	}
	v.status = Status{Err: err, Loading: seq < v.started}
}

func (v *view[S]) update(apply func(*S)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	apply(&v.data)
}

func (v *view[S]) read() (S, Status) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.data, v.status
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
