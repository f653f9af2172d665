package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/moethet/portfolio/pkg/ratelimit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Add(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newMemory(t *testing.T, clock *fakeNow) *ratelimit.Memory {
	t.Helper()
	m, err := ratelimit.NewMemory(ratelimit.Config{Limit: 5, Window: 10 * time.Minute}, ratelimit.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMemory_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeNow{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := newMemory(t, clock)

	for i := range 5 {
		res, err := m.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i+1)
		assert.Equal(t, 4-i, res.Remaining)
	}

	res, err := m.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 10*time.Minute, res.ResetAfter)

	other, err := m.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys are independent")
}

func TestMemory_WindowResets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeNow{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := newMemory(t, clock)

	for range 6 {
		_, _ = m.Allow(ctx, "k")
	}

	clock.Add(4 * time.Minute)
	res, _ := m.Allow(ctx, "k")
	assert.False(t, res.Allowed)
	assert.Equal(t, 6*time.Minute, res.ResetAfter)

	clock.Add(6 * time.Minute)
	res, err := m.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeNow{t: time.Now()}
	m := newMemory(t, clock)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Go(func() {
			res, err := m.Allow(ctx, "same")
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	_, err := ratelimit.NewMemory(ratelimit.Config{Limit: 0, Window: time.Minute})
	require.ErrorIs(t, err, ratelimit.ErrInvalidConfig)

	_, err = ratelimit.NewRedis(nil, ratelimit.Config{Limit: 1})
	require.ErrorIs(t, err, ratelimit.ErrInvalidConfig)
}

func TestMemory_Closed(t *testing.T) {
	t.Parallel()
	m, err := ratelimit.NewMemory(ratelimit.Config{Limit: 1, Window: time.Minute})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, err = m.Allow(context.Background(), "k")
	assert.Error(t, err)
}
