package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/moethet/portfolio/pkg/logger"
)

const (
	DefaultResetDelay      = 5 * time.Second
	DefaultDispatchTimeout = 15 * time.Second
)

// Snapshot is a copy of a workflow's observable state.
type Snapshot struct {
	UpdatedAt time.Time
	Input     Input
	Status    Status
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(w *Workflow) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithResetDelay sets how long success is shown before returning to idle.
func WithResetDelay(d time.Duration) Option {
	return func(w *Workflow) {
		if d > 0 {
			w.resetDelay = d
		}
	}
}

// WithDispatchTimeout bounds a single dispatch.
func WithDispatchTimeout(d time.Duration) Option {
	return func(w *Workflow) {
		if d > 0 {
			w.dispatchTimeout = d
		}
	}
}

// WithRules sets the field limits.
func WithRules(r Rules) Option {
	return func(w *Workflow) {
		w.rules = r
	}
}

// WithLogger sets the logger used for operator diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// Workflow is one visitor's contact form state machine.
// All methods are safe for concurrent use.
type Workflow struct {
	dispatcher      Dispatcher
	clock           Clock
	timer           Timer
	logger          *slog.Logger
	updatedAt       time.Time
	recipient       string
	input           Input
	rules           Rules
	generation      uint64
	resetDelay      time.Duration
	dispatchTimeout time.Duration
	mu              sync.Mutex
	status          Status
	closed          bool
}

// NewWorkflow creates an idle workflow delivering to recipient.
func NewWorkflow(d Dispatcher, recipient string, opts ...Option) *Workflow {
	w := &Workflow{
		dispatcher:      d,
		recipient:       recipient,
		clock:           RealClock(),
		rules:           DefaultRules(),
		resetDelay:      DefaultResetDelay,
		dispatchTimeout: DefaultDispatchTimeout,
		logger:          logger.NewNope(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.updatedAt = w.clock.Now()
	return w
}

// Rules returns the field limits in use.
func (w *Workflow) Rules() Rules {
	return w.rules
}

// Status returns the current status.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Snapshot returns the current observable state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// SetInput stores the draft the form shows. It is ignored while a dispatch
// is in flight, since the form is disabled then.
func (w *Workflow) SetInput(in Input) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.status == StatusSubmitting {
		return
	}
	w.input = in.Normalize()
}

// Submit validates in and, if valid, dispatches it exactly once.
//
// Invalid input returns a *ValidationError and leaves the status as it was.
// A failed dispatch moves to StatusError, keeps the input and returns a
// *DispatchError; its detail is logged and must not be shown to visitors.
// A successful dispatch moves to StatusSuccess, clears the input and returns
// to StatusIdle after the reset delay unless another submit comes first.
func (w *Workflow) Submit(ctx context.Context, in Input) (Snapshot, error) {
	in = in.Normalize()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	if w.status == StatusSubmitting {
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, ErrSubmitInProgress
	}
	if errs := Validate(in, w.rules); !errs.IsEmpty() {
		w.input = in
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, &ValidationError{Errors: errs}
	}

	w.stopTimerLocked()
	w.generation++
	gen := w.generation
	w.input = in
	w.setStatusLocked(StatusSubmitting)
	w.mu.Unlock()

	msg := Message{
		SenderName:  in.Name,
		SenderEmail: in.Email,
		Body:        in.Message,
		Recipient:   w.recipient,
	}

	// The outcome must be recorded even if the visitor's request goes away.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.dispatchTimeout)
	err := w.dispatcher.Dispatch(dctx, msg)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || gen != w.generation {
		return Snapshot{}, ErrClosed
	}

	if err != nil {
		w.setStatusLocked(StatusError)
		w.logger.ErrorContext(ctx, "contact dispatch failed",
			slog.String("recipient", w.recipient),
			slog.String("error", err.Error()),
		)
		return w.snapshotLocked(), &DispatchError{Err: err}
	}

	w.input = Input{}
	w.setStatusLocked(StatusSuccess)
	w.timer = w.clock.AfterFunc(w.resetDelay, func() { w.expire(gen) })
	w.logger.InfoContext(ctx, "contact message dispatched", slog.String("recipient", w.recipient))

	return w.snapshotLocked(), nil
}

// Close stops the auto-reset timer and makes any in-flight dispatch result
// invisible. Further submits return ErrClosed. Close is idempotent.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.generation++
	w.stopTimerLocked()
}

// Closed reports whether Close was called.
func (w *Workflow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// expire is the auto-reset callback. A callback from an older generation
// is ignored.
func (w *Workflow) expire(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || gen != w.generation || w.status != StatusSuccess {
		return
	}
	w.timer = nil
	w.setStatusLocked(StatusIdle)
}

func (w *Workflow) stopTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Workflow) setStatusLocked(s Status) {
	w.status = s
	w.updatedAt = w.clock.Now()
}

func (w *Workflow) snapshotLocked() Snapshot {
	return Snapshot{Status: w.status, Input: w.input, UpdatedAt: w.updatedAt}
}
