// Package forms holds draft records for create/edit dialogs and drives
// their submission: local validation, the API call, a refresh of the
// owning screen and a success notice that clears itself after a delay.
package forms

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/metrics"
)

const DefaultSuccessReset = 3 * time.Second

var ErrSubmitInProgress = errors.New("submission already in progress")

type Status int

const (
	Idle Status = iota
	Submitting
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Refresher is the screen that owns a form.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Options struct {
	// SuccessReset is how long Success stays up before reverting to Idle.
	SuccessReset time.Duration
}

type State[D any] struct {
	Draft   D      `json:"draft"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Form[D any] struct {
	name      string
	fallback  string
	submit    func(ctx context.Context, draft D) error
	describe  func(errs []fieldError) string
	refresher Refresher
	reset     time.Duration

	mu      sync.Mutex
	draft   D
	blank   D
	status  Status
	message string
	timer   *time.Timer
	gen     uint64
}

type formDef[D any] struct {
	name     string
	fallback string
	initial  D
	submit   func(ctx context.Context, draft D) error
	describe func(errs []fieldError) string
}

func newForm[D any](def formDef[D], refresher Refresher, opts Options) *Form[D] {
	reset := opts.SuccessReset
	if reset <= 0 {
		reset = DefaultSuccessReset
	}
	describe := def.describe
	if describe == nil {
		describe = describeFields
	}
	return &Form[D]{
		name:      def.name,
		fallback:  def.fallback,
		submit:    def.submit,
		describe:  describe,
		refresher: refresher,
		reset:     reset,
		draft:     def.initial,
	}
}

func (f *Form[D]) Name() string {
	return f.name
}

func (f *Form[D]) State() State[D] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State[D]{Draft: f.draft, Status: f.status, Message: f.message}
}

// Edit changes the draft. An error notice is dropped as soon as the user
// starts correcting the draft.
func (f *Form[D]) Edit(change func(*D)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	change(&f.draft)
	if f.status == Failed {
		f.status = Idle
		f.message = ""
	}
}

func (f *Form[D]) Set(draft D) {
	f.Edit(func(d *D) { *d = draft })
}

// Submit validates and sends the draft. It returns ErrSubmitInProgress if
// a previous submission has not settled, a *ValidationError without
// touching the network if the draft is incomplete, or the API error if the
// backend rejected it. After a successful submission the owning screen is
// refreshed; a failed refresh shows up on the screen, not here.
func (f *Form[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status == Submitting {
		f.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues(f.name, "busy").Inc()
		return ErrSubmitInProgress
	}

	draft := f.draft
	if verr := f.validate(draft); verr != nil {
		f.stopTimerLocked()
		f.status = Failed
		f.message = verr.Message
		f.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues(f.name, "invalid").Inc()
		return verr
	}

	f.stopTimerLocked()
	f.status = Submitting
	f.message = ""
	f.mu.Unlock()

	if err := f.submit(ctx, draft); err != nil {
		msg := f.fallback
		if serverMsg, ok := api.ServerMessage(err); ok {
			msg = serverMsg
		}
		f.mu.Lock()
		f.status = Failed
		f.message = msg
		f.mu.Unlock()

		logger.Error.Printf("%s: submit failed: %v", f.name, err)
		metrics.FormSubmissionsTotal.WithLabelValues(f.name, "rejected").Inc()
		return err
	}

	f.mu.Lock()
	f.status = Success
	f.message = ""
	f.draft = f.blank
	f.gen++
	gen := f.gen
	f.timer = time.AfterFunc(f.reset, func() { f.expire(gen) })
	f.mu.Unlock()

	metrics.FormSubmissionsTotal.WithLabelValues(f.name, "success").Inc()

	if f.refresher != nil {
		if err := f.refresher.Refresh(ctx); err != nil {
			logger.Error.Printf("%s: refresh after submit failed: %v", f.name, err)
		}
	}
	return nil
}

// Reset drops the draft and any notice. A submission in flight keeps the
// form Submitting until it settles.
func (f *Form[D]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimerLocked()
	f.draft = f.blank
	if f.status == Submitting {
		return
	}
	f.status = Idle
	f.message = ""
}

// Close stops a pending success timer.
func (f *Form[D]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimerLocked()
}

func (f *Form[D]) expire(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.status != Success {
		return
	}
	f.status = Idle
	f.timer = nil
}

func (f *Form[D]) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
}
