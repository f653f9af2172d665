package contact_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/moethet/portfolio/internal/contact"
	"github.com/moethet/portfolio/internal/contact/contacttest"
	"github.com/moethet/portfolio/pkg/validator"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const recipient = "owner@example.com"

var validInput = contact.Input{
	Name:    "Al",
	Email:   "al@x.com",
	Message: "Hi there, interested in working together",
}

func newWorkflow(t *testing.T, d contact.Dispatcher, clock contact.Clock, opts ...contact.Option) *contact.Workflow {
	t.Helper()
	w := contact.NewWorkflow(d, recipient, append([]contact.Option{contact.WithClock(clock)}, opts...)...)
	t.Cleanup(w.Close)
	return w
}

func TestWorkflow_InvalidInputNeverDispatches(t *testing.T) {
	t.Parallel()

	inputs := []contact.Input{
		{Name: "", Email: "al@x.com", Message: "short"},
		{Name: "A", Email: "al@x.com", Message: "Hi there, interested"},
		{Name: "Al", Email: "not-an-email", Message: "Hi there, interested"},
		{Name: "Al", Email: "al@x.com", Message: ""},
		{},
	}

	for _, in := range inputs {
		d := &contacttest.MockDispatcher{}
		w := newWorkflow(t, d, contacttest.NewManualClock())

		snap, err := w.Submit(context.Background(), in)

		var ve *contact.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.True(t, validator.IsValidationError(err))
		assert.Equal(t, contact.StatusIdle, snap.Status)
		assert.Equal(t, contact.StatusIdle, w.Status())
		d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	}
}

func TestWorkflow_ScenarioInvalid(t *testing.T) {
	t.Parallel()

	d := &contacttest.MockDispatcher{}
	w := newWorkflow(t, d, contacttest.NewManualClock())

	_, err := w.Submit(context.Background(), contact.Input{Name: "", Email: "al@x.com", Message: "short"})

	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 2)
	assert.True(t, errs.Has(contact.FieldName))
	assert.True(t, errs.Has(contact.FieldMessage))
	assert.Equal(t, contact.StatusIdle, w.Status())
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestWorkflow_SuccessClearsInputAndResets(t *testing.T) {
	t.Parallel()

	clock := contacttest.NewManualClock()
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, contact.Message{
		SenderName:  "Al",
		SenderEmail: "al@x.com",
		Body:        "Hi there, interested in working together",
		Recipient:   recipient,
	}).Return(nil).Once()

	w := newWorkflow(t, d, clock)

	snap, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	assert.Equal(t, contact.StatusSuccess, snap.Status)
	assert.Equal(t, contact.Input{Name: "", Email: "", Message: ""}, snap.Input)
	d.AssertNumberOfCalls(t, "Dispatch", 1)

	clock.Advance(4999 * time.Millisecond)
	assert.Equal(t, contact.StatusSuccess, w.Status())

	clock.Advance(time.Millisecond)
	assert.Equal(t, contact.StatusIdle, w.Status())
	assert.True(t, w.Snapshot().Input.IsZero())
}

func TestWorkflow_FailurePreservesInput(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	clock := contacttest.NewManualClock()
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("smtp: 550 mailbox unavailable")).Once()

	w := newWorkflow(t, d, clock, contact.WithLogger(logger))

	snap, err := w.Submit(context.Background(), validInput)

	require.Error(t, err)
	assert.True(t, contact.IsDispatchError(err))
	assert.Equal(t, contact.StatusError, snap.Status)
	assert.Equal(t, validInput, snap.Input)
	assert.Contains(t, logs.String(), "550 mailbox unavailable")

	clock.Advance(time.Minute)
	assert.Equal(t, contact.StatusError, w.Status(), "error does not auto-reset")
	d.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestWorkflow_FailureKeepsTextAsTyped(t *testing.T) {
	t.Parallel()

	in := contact.Input{
		Name:    "Al <Dev> & Co",
		Email:   "Al@X.com",
		Message: "Is a<b and c>d ok? I use &lt;div&gt; tags daily.",
	}

	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, contact.Message{
		SenderName:  in.Name,
		SenderEmail: "Al@x.com",
		Body:        in.Message,
		Recipient:   recipient,
	}).Return(errors.New("provider down")).Once()

	w := newWorkflow(t, d, contacttest.NewManualClock())

	snap, err := w.Submit(context.Background(), in)
	require.True(t, contact.IsDispatchError(err))

	assert.Equal(t, contact.StatusError, snap.Status)
	assert.Equal(t, in.Name, snap.Input.Name)
	assert.Equal(t, in.Message, snap.Input.Message)
	assert.Equal(t, "Al@x.com", snap.Input.Email, "only the domain is case-folded")
	d.AssertExpectations(t)

	in.Email = "al@x.com"
	d.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("provider down")).Once()
	snap, _ = w.Submit(context.Background(), in)
	assert.Equal(t, in, snap.Input)
}

func TestWorkflow_RetryAfterError(t *testing.T) {
	t.Parallel()

	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
	d.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Once()

	w := newWorkflow(t, d, contacttest.NewManualClock())

	_, err := w.Submit(context.Background(), validInput)
	require.Error(t, err)

	snap, err := w.Submit(context.Background(), w.Snapshot().Input)
	require.NoError(t, err)
	assert.Equal(t, contact.StatusSuccess, snap.Status)
	d.AssertNumberOfCalls(t, "Dispatch", 2)
}

// blockingDispatcher holds every dispatch until release is closed.
type blockingDispatcher struct {
	started chan struct{}
	release chan struct{}
	err     error
	mu      sync.Mutex
	calls   int
}

func newBlockingDispatcher() *blockingDispatcher {
	return &blockingDispatcher{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (b *blockingDispatcher) Dispatch(ctx context.Context, _ contact.Message) error {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return b.err
}

func (b *blockingDispatcher) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestWorkflow_RefusesConcurrentSubmit(t *testing.T) {
	t.Parallel()

	d := newBlockingDispatcher()
	w := newWorkflow(t, d, contacttest.NewManualClock())

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), validInput)
		done <- err
	}()
	<-d.started

	assert.Equal(t, contact.StatusSubmitting, w.Status())
	assert.True(t, w.Status().Busy())

	snap, err := w.Submit(context.Background(), validInput)
	require.ErrorIs(t, err, contact.ErrSubmitInProgress)
	assert.Equal(t, contact.StatusSubmitting, snap.Status)

	w.SetInput(contact.Input{Name: "ignored"})
	assert.Equal(t, validInput, w.Snapshot().Input, "form is frozen while submitting")

	close(d.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, d.Calls())
	assert.Equal(t, contact.StatusSuccess, w.Status())
}

func TestWorkflow_StaleTimerDoesNotResetLaterSubmission(t *testing.T) {
	t.Parallel()

	clock := contacttest.NewManualClock()
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Twice()

	w := newWorkflow(t, d, clock)

	_, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = w.Submit(context.Background(), validInput)
	require.NoError(t, err)
	assert.Equal(t, 1, clock.Pending(), "first timer was cancelled")

	clock.Advance(4 * time.Second)
	assert.Equal(t, contact.StatusSuccess, w.Status(), "first timer must not fire")

	clock.Advance(time.Second)
	assert.Equal(t, contact.StatusIdle, w.Status())
}

// leakyClock hands out timers whose Stop does nothing, so superseded
// callbacks still run and must be ignored by the workflow itself.
type leakyClock struct {
	*contacttest.ManualClock
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) contact.Timer {
	c.ManualClock.AfterFunc(d, f)
	return leakyTimer{}
}

func TestWorkflow_StaleCallbackIgnoredEvenIfTimerFires(t *testing.T) {
	t.Parallel()

	clock := leakyClock{contacttest.NewManualClock()}

	// Second dispatch fails so the later state is error, not success.
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Once()
	d.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("down")).Once()

	w := newWorkflow(t, d, clock)

	_, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = w.Submit(context.Background(), validInput)
	require.Error(t, err)

	clock.Advance(10 * time.Second)
	assert.Equal(t, contact.StatusError, w.Status())
	assert.Equal(t, validInput, w.Snapshot().Input)
}

func TestWorkflow_CloseCancelsTimer(t *testing.T) {
	t.Parallel()

	clock := contacttest.NewManualClock()
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Once()

	w := newWorkflow(t, d, clock)

	_, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	w.Close()
	w.Close()
	assert.True(t, w.Closed())
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, contact.StatusSuccess, w.Status(), "no transition after teardown")

	_, err = w.Submit(context.Background(), validInput)
	require.ErrorIs(t, err, contact.ErrClosed)
	d.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestWorkflow_CloseDuringDispatchDropsOutcome(t *testing.T) {
	t.Parallel()

	d := newBlockingDispatcher()
	w := newWorkflow(t, d, contacttest.NewManualClock())

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), validInput)
		done <- err
	}()
	<-d.started

	w.Close()
	close(d.release)

	require.ErrorIs(t, <-done, contact.ErrClosed)
	assert.Equal(t, contact.StatusSubmitting, w.Status())
}

func TestWorkflow_DispatchOutlivesRequestContext(t *testing.T) {
	t.Parallel()

	var seen error
	d := contact.DispatcherFunc(func(ctx context.Context, _ contact.Message) error {
		seen = ctx.Err()
		_, hasDeadline := ctx.Deadline()
		if !hasDeadline {
			return errors.New("dispatch must be bounded")
		}
		return nil
	})
	w := newWorkflow(t, d, contacttest.NewManualClock(), contact.WithDispatchTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Submit(ctx, validInput)
	require.NoError(t, err)
	assert.NoError(t, seen)
}

func TestWorkflow_SetInputKeepsDraft(t *testing.T) {
	t.Parallel()

	w := newWorkflow(t, &contacttest.MockDispatcher{}, contacttest.NewManualClock())

	w.SetInput(contact.Input{Name: "  Al ", Email: "AL@X.COM"})

	assert.Equal(t, contact.Input{Name: "Al", Email: "al@x.com"}, w.Snapshot().Input)
	assert.Equal(t, contact.StatusIdle, w.Status())
}

func TestWorkflow_InvalidSubmitKeepsTypedValues(t *testing.T) {
	t.Parallel()

	w := newWorkflow(t, &contacttest.MockDispatcher{}, contacttest.NewManualClock())

	in := contact.Input{Name: "Al", Email: "nope", Message: "Hi there, interested"}
	snap, err := w.Submit(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, in, snap.Input)
}

func TestWorkflow_CustomResetDelay(t *testing.T) {
	t.Parallel()

	clock := contacttest.NewManualClock()
	d := &contacttest.MockDispatcher{}
	d.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	w := newWorkflow(t, d, clock, contact.WithResetDelay(2*time.Second))

	_, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	assert.Equal(t, contact.StatusIdle, w.Status())
}

func TestWorkflow_RealClockResets(t *testing.T) {
	t.Parallel()

	d := contact.DispatcherFunc(func(context.Context, contact.Message) error { return nil })
	w := contact.NewWorkflow(d, recipient, contact.WithResetDelay(20*time.Millisecond))
	defer w.Close()

	_, err := w.Submit(context.Background(), validInput)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return w.Status() == contact.StatusIdle
	}, time.Second, 5*time.Millisecond)
}
