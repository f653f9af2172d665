package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/moethet/portfolio/pkg/cache"
)

type window struct {
	mu      sync.Mutex
	resetAt time.Time
	count   int
}

// Memory is an in-process Limiter. Counters live in a cache.Memory with a
// sliding TTL of one window: a key untouched for a whole window has nothing
// left to count and is dropped.
type Memory struct {
	store *cache.Memory[*window]
	now   func() time.Time
	cfg   Config
}

// MemoryOption configures Memory.
type MemoryOption func(*Memory)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates a Memory limiter. Call Close to stop its janitor.
func NewMemory(cfg Config, opts ...MemoryOption) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Memory{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	m.store = cache.NewMemory[*window](
		cache.WithDefaultTTL(cfg.Window),
		cache.WithCleanupInterval(cfg.Window),
		cache.WithSlidingExpiry(),
		cache.WithMaxEntries(100_000),
		cache.WithClock(m.now),
	)
	return m, nil
}

// Allow implements Limiter.
func (m *Memory) Allow(ctx context.Context, key string) (Result, error) {
	w, _, err := m.store.GetOrCreate(ctx, key, m.cfg.Window, func() *window {
		return &window{resetAt: m.now().Add(m.cfg.Window)}
	})
	if err != nil {
		return Result{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := m.now()
	if !now.Before(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(m.cfg.Window)
	}
	w.count++

	return result(m.cfg, w.count, w.resetAt.Sub(now)), nil
}

// Close stops the janitor.
func (m *Memory) Close() error {
	return m.store.Close()
}

var _ Limiter = (*Memory)(nil)
