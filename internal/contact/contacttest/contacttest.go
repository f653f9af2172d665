// Package contacttest provides test doubles for the contact workflow.
package contacttest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/moethet/portfolio/internal/contact"
)

// ManualClock is a contact.Clock that only moves when Advance is called.
type ManualClock struct {
	now    time.Time
	timers []*manualTimer
	mu     sync.Mutex
}

// NewManualClock starts at a fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

type manualTimer struct {
	clock   *ManualClock
	fn      func()
	at      time.Time
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the current fake time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to run when the clock passes d from now.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) contact.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, fn: fn, at: c.now.Add(d)}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every due timer in order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	pending := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of armed timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// MockDispatcher is a testify mock for contact.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

// Dispatch records the call.
func (m *MockDispatcher) Dispatch(ctx context.Context, msg contact.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var _ contact.Dispatcher = (*MockDispatcher)(nil)
