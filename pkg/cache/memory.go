package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	expiresAt time.Time // zero = never expires
	value     V
	key       string
	ttl       time.Duration
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory cache with TTL expiry and optional LRU bounding.
// The most recently used entries sit at the front of the eviction list.
type Memory[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	onEvict  func(key string, value V)
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates an in-memory cache and starts its janitor unless the
// cleanup interval is zero. Call Close to stop it.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		m.wg.Add(1)
		go m.janitor()
	}

	return m
}

// SetEvictCallback registers fn to be called for every removed entry.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	elem, ok := m.items[key]
	if !ok || m.closed {
		m.mu.Unlock()
		return zero, ErrNotFound
	}

	e := elem.Value.(*entry[V])
	now := m.opts.now()
	if e.expired(now) {
		evicted := m.removeLocked(elem)
		m.mu.Unlock()
		m.notify(evicted)
		return zero, ErrNotFound
	}

	m.touchLocked(elem, e, now)
	m.mu.Unlock()

	return e.value, nil
}

// GetOrCreate returns the live value for key, or stores and returns the
// result of create. The boolean reports whether create was called.
// create runs under the cache lock and must not call back into the cache.
func (m *Memory[V]) GetOrCreate(_ context.Context, key string, ttl time.Duration, create func() V) (V, bool, error) {
	var zero V

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return zero, false, ErrClosed
	}

	now := m.opts.now()
	var evicted []*entry[V]

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry[V])
		if !e.expired(now) {
			m.touchLocked(elem, e, now)
			m.mu.Unlock()
			return e.value, false, nil
		}
		evicted = append(evicted, m.removeLocked(elem)...)
	}

	value := create()
	evicted = append(evicted, m.insertLocked(key, value, ttl, now)...)
	m.mu.Unlock()

	m.notify(evicted)
	return value, true, nil
}

// Set stores value under key.
// TTL semantics: positive expires after the duration, zero uses the default
// TTL, negative never expires.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}

	now := m.opts.now()
	var evicted []*entry[V]
	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.ttl = m.resolveTTL(ttl)
		e.expiresAt = expiry(now, e.ttl)
		m.eviction.MoveToFront(elem)
	} else {
		evicted = m.insertLocked(key, value, ttl, now)
	}
	m.mu.Unlock()

	m.notify(evicted)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}

	var evicted []*entry[V]
	if elem, ok := m.items[key]; ok {
		evicted = m.removeLocked(elem)
	}
	m.mu.Unlock()

	m.notify(evicted)
	return nil
}

// Has reports whether key exists and has not expired. It does not refresh
// the entry.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return !elem.Value.(*entry[V]).expired(m.opts.now()), nil
}

// Len returns the number of stored entries, including expired ones the
// janitor has not removed yet.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Clear removes every entry.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	evicted := m.drainLocked()
	m.mu.Unlock()

	m.notify(evicted)
	return nil
}

// Sweep removes expired entries. The janitor calls it periodically.
func (m *Memory[V]) Sweep() {
	m.mu.Lock()
	now := m.opts.now()
	var evicted []*entry[V]
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[V]).expired(now) {
			evicted = append(evicted, m.removeLocked(elem)...)
		}
		elem = prev
	}
	m.mu.Unlock()

	m.notify(evicted)
}

// Close stops the janitor and evicts every remaining entry so that owners of
// the values can release them. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.done)
	evicted := m.drainLocked()
	m.mu.Unlock()

	m.wg.Wait()
	m.notify(evicted)
	return nil
}

func (m *Memory[V]) janitor() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Memory[V]) resolveTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return m.opts.defaultTTL
	}
	return ttl
}

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl < 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func (m *Memory[V]) touchLocked(elem *list.Element, e *entry[V], now time.Time) {
	if m.opts.sliding && !e.expiresAt.IsZero() {
		e.expiresAt = now.Add(e.ttl)
	}
	m.eviction.MoveToFront(elem)
}

func (m *Memory[V]) insertLocked(key string, value V, ttl time.Duration, now time.Time) []*entry[V] {
	var evicted []*entry[V]
	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			evicted = m.removeLocked(oldest)
		}
	}

	ttl = m.resolveTTL(ttl)
	e := &entry[V]{key: key, value: value, ttl: ttl, expiresAt: expiry(now, ttl)}
	m.items[key] = m.eviction.PushFront(e)

	return evicted
}

func (m *Memory[V]) removeLocked(elem *list.Element) []*entry[V] {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)
	return []*entry[V]{e}
}

func (m *Memory[V]) drainLocked() []*entry[V] {
	evicted := make([]*entry[V], 0, len(m.items))
	for elem := m.eviction.Front(); elem != nil; elem = elem.Next() {
		evicted = append(evicted, elem.Value.(*entry[V]))
	}
	m.items = make(map[string]*list.Element)
	m.eviction.Init()
	return evicted
}

// notify runs the eviction callback outside the lock.
func (m *Memory[V]) notify(evicted []*entry[V]) {
	if len(evicted) == 0 {
		return
	}
	m.mu.Lock()
	fn := m.onEvict
	m.mu.Unlock()
	if fn == nil {
		return
	}
	for _, e := range evicted {
		fn(e.key, e.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
