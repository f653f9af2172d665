// Package cache provides a generic in-process cache with TTL expiry, LRU
// bounding and eviction callbacks.
//
// [Memory] backs two things in this service: per-visitor state that must be
// torn down when a visitor goes idle, and small blobs fetched from remote
// storage. The eviction callback fires for every removal (expiry, LRU
// pressure, Delete, Clear and Close) and always runs outside the cache lock,
// so callbacks may call back into the cache.
//
//	c := cache.NewMemory[*Session](
//		cache.WithDefaultTTL(30*time.Minute),
//		cache.WithSlidingExpiry(),
//		cache.WithMaxEntries(10_000),
//	)
//	c.SetEvictCallback(func(_ string, s *Session) { s.Close() })
//	defer c.Close()
//
// [GetOrSet] collapses concurrent misses for the same key of one cache into
// a single load.
package cache
