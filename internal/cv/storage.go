package cv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/moethet/portfolio/pkg/cache"
	"github.com/moethet/portfolio/pkg/storage"
)

const (
	DefaultCacheTTL = 10 * time.Minute
	DefaultMaxSize  = 10 << 20
)

// ObjectStore is the part of storage.S3Storage a StorageSource needs.
type ObjectStore interface {
	Get(ctx context.Context, key string) (*storage.Object, error)
	Head(ctx context.Context, key string) (*storage.ObjectInfo, error)
}

type cachedFile struct {
	info Info
	data []byte
}

// StorageSource serves an object from S3-compatible storage.
type StorageSource struct {
	store   ObjectStore
	cache   *cache.Memory[cachedFile]
	key     string
	ttl     time.Duration
	maxSize int64
}

// StorageOption configures a StorageSource.
type StorageOption func(*StorageSource)

// WithCacheTTL sets how long a fetched copy is served before the object is
// read again.
func WithCacheTTL(d time.Duration) StorageOption {
	return func(s *StorageSource) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithMaxSize rejects objects larger than n bytes.
func WithMaxSize(n int64) StorageOption {
	return func(s *StorageSource) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// NewStorageSource creates a StorageSource for key. Call Close to release
// the cache.
func NewStorageSource(store ObjectStore, key string, opts ...StorageOption) *StorageSource {
	s := &StorageSource{
		store:   store,
		key:     key,
		ttl:     DefaultCacheTTL,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.NewMemory[cachedFile](
		cache.WithDefaultTTL(s.ttl),
		cache.WithMaxEntries(1),
		cache.WithCleanupInterval(0),
	)
	return s
}

// Open implements Source.
func (s *StorageSource) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	f, err := cache.GetOrSet(ctx, s.cache, "cv:"+s.key, s.fetch)
	if err != nil {
		return nil, Info{}, err
	}
	return readSeekNopCloser{bytes.NewReader(f.data)}, f.info, nil
}

func (s *StorageSource) fetch(ctx context.Context) (cachedFile, time.Duration, error) {
	obj, err := s.store.Get(ctx, s.key)
	if err != nil {
		return cachedFile{}, 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(io.LimitReader(obj.Body, s.maxSize+1))
	if err != nil {
		return cachedFile{}, 0, fmt.Errorf("%w: read %s: %w", ErrUnavailable, s.key, err)
	}
	if int64(len(data)) > s.maxSize {
		return cachedFile{}, 0, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, s.key, s.maxSize)
	}
	if !storage.IsMIME(data, ContentType) {
		return cachedFile{}, 0, fmt.Errorf("%w: %s", ErrNotPDF, s.key)
	}

	return cachedFile{
		data: data,
		info: Info{
			ModTime:     obj.LastModified,
			ContentType: ContentType,
			Size:        int64(len(data)),
		},
	}, s.ttl, nil
}

// Healthcheck reports whether the object exists. Use it as a readiness
// check.
func (s *StorageSource) Healthcheck(ctx context.Context) error {
	if _, err := s.store.Head(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Close drops the cached copy.
func (s *StorageSource) Close() error {
	return s.cache.Close()
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }
