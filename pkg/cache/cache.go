package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value store with per-entry TTL. A zero ttl passed to Set
// means the cache default; a negative ttl never expires.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Loader produces the value for a missing key and how long to keep it.
type Loader[V any] func(ctx context.Context) (V, time.Duration, error)

var flights singleflight.Group

// GetOrSet returns the cached value for key, calling load on a miss.
// Concurrent misses for the same key of the same cache share one load, and
// the result is stored before any of them return. Load errors are returned
// to every waiter and nothing is stored.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, load Loader[V]) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := flights.Do(fmt.Sprintf("%p\x00%s", c, key), func() (any, error) {
		v, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// A closed cache still hands out the loaded value.
		_ = c.Set(ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}
