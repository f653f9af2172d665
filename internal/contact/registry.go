package contact

import (
	"context"
	"time"

	"github.com/moethet/portfolio/pkg/cache"
)

// Factory builds the workflow for a new visitor.
type Factory func(visitorID string) *Workflow

// Registry holds one Workflow per visitor. Idle visitors are evicted after
// the idle timeout and their workflows closed.
type Registry struct {
	store   *cache.Memory[*Workflow]
	factory Factory
	idle    time.Duration
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	now             func() time.Time
	idle            time.Duration
	cleanupInterval time.Duration
	maxVisitors     int
}

// WithIdleTimeout sets how long an untouched visitor is kept. Default 30m.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		if d > 0 {
			o.idle = d
		}
	}
}

// WithMaxVisitors bounds the number of live workflows; the least recently
// seen visitor is evicted first. Default 10000.
func WithMaxVisitors(n int) RegistryOption {
	return func(o *registryOptions) {
		if n > 0 {
			o.maxVisitors = n
		}
	}
}

// WithCleanupInterval sets how often idle visitors are swept. Zero disables
// the background sweep.
func WithCleanupInterval(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.cleanupInterval = d
	}
}

// WithRegistryClock replaces time.Now for idle tracking.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(o *registryOptions) {
		o.now = now
	}
}

// NewRegistry creates a Registry. Call Close on shutdown.
func NewRegistry(factory Factory, opts ...RegistryOption) *Registry {
	o := &registryOptions{
		now:             time.Now,
		idle:            30 * time.Minute,
		cleanupInterval: time.Minute,
		maxVisitors:     10_000,
	}
	for _, opt := range opts {
		opt(o)
	}

	store := cache.NewMemory[*Workflow](
		cache.WithDefaultTTL(o.idle),
		cache.WithSlidingExpiry(),
		cache.WithMaxEntries(o.maxVisitors),
		cache.WithCleanupInterval(o.cleanupInterval),
		cache.WithClock(o.now),
	)
	store.SetEvictCallback(func(_ string, w *Workflow) { w.Close() })

	return &Registry{store: store, factory: factory, idle: o.idle}
}

// Get returns the visitor's workflow, creating it on first use.
func (r *Registry) Get(ctx context.Context, visitorID string) (*Workflow, error) {
	if visitorID == "" {
		return nil, ErrNoVisitor
	}
	w, _, err := r.store.GetOrCreate(ctx, visitorID, r.idle, func() *Workflow {
		return r.factory(visitorID)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Lookup returns the visitor's workflow without creating one.
func (r *Registry) Lookup(ctx context.Context, visitorID string) (*Workflow, bool) {
	w, err := r.store.Get(ctx, visitorID)
	if err != nil {
		return nil, false
	}
	return w, true
}

// Remove closes and forgets the visitor's workflow.
func (r *Registry) Remove(ctx context.Context, visitorID string) error {
	return r.store.Delete(ctx, visitorID)
}

// Sweep evicts idle visitors now.
func (r *Registry) Sweep() {
	r.store.Sweep()
}

// Len returns the number of tracked visitors.
func (r *Registry) Len() int {
	return r.store.Len()
}

// Close closes every workflow and stops the background sweep.
func (r *Registry) Close() error {
	return r.store.Close()
}

// Shutdown adapts Close to a shutdown hook.
func (r *Registry) Shutdown(context.Context) error {
	return r.Close()
}
