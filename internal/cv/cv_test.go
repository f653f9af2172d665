package cv_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/internal/cv"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/pkg/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type fakeStore struct {
	data    []byte
	err     error
	release chan struct{}
	gets    atomic.Int32
	heads   atomic.Int32
}

func (s *fakeStore) Get(_ context.Context, key string) (*storage.Object, error) {
	s.gets.Add(1)
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &storage.Object{
		Body: io.NopCloser(bytes.NewReader(s.data)),
		ObjectInfo: storage.ObjectInfo{
			Key:          key,
			Size:         int64(len(s.data)),
			LastModified: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}, nil
}

func (s *fakeStore) Head(_ context.Context, key string) (*storage.ObjectInfo, error) {
	s.heads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &storage.ObjectInfo{Key: key, Size: int64(len(s.data))}, nil
}

func readAll(t *testing.T, src cv.Source) ([]byte, cv.Info) {
	t.Helper()
	rc, info, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data, info
}

func TestEmbeddedSource(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"static/cv.pdf": {Data: pdf}}

	data, info := readAll(t, cv.NewEmbeddedSource(fsys, "static/cv.pdf"))
	assert.Equal(t, pdf, data)
	assert.Equal(t, cv.ContentType, info.ContentType)
	assert.EqualValues(t, len(pdf), info.Size)

	_, _, err := cv.NewEmbeddedSource(fsys, "missing.pdf").Open(context.Background())
	assert.ErrorIs(t, err, cv.ErrUnavailable)
}

func TestStorageSource_CachesObject(t *testing.T) {
	t.Parallel()

	store := &fakeStore{data: pdf}
	src := cv.NewStorageSource(store, "cv/one.pdf")
	defer src.Close()

	for range 3 {
		data, info := readAll(t, src)
		assert.Equal(t, pdf, data)
		assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), info.ModTime)
	}
	assert.EqualValues(t, 1, store.gets.Load())
}

func TestStorageSource_SharesConcurrentFetch(t *testing.T) {
	t.Parallel()

	store := &fakeStore{data: pdf, release: make(chan struct{})}
	src := cv.NewStorageSource(store, "cv/shared.pdf")
	defer src.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			rc, _, err := src.Open(context.Background())
			if assert.NoError(t, err) {
				rc.Close()
			}
		})
	}

	time.Sleep(50 * time.Millisecond)
	close(store.release)
	wg.Wait()

	assert.EqualValues(t, 1, store.gets.Load())
}

func TestStorageSource_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store *fakeStore
		opts  []cv.StorageOption
		want  error
	}{
		{name: "missing object", store: &fakeStore{err: storage.ErrNotFound}, want: storage.ErrNotFound},
		{name: "not a pdf", store: &fakeStore{data: []byte("<html></html>")}, want: cv.ErrNotPDF},
		{name: "too large", store: &fakeStore{data: pdf}, opts: []cv.StorageOption{cv.WithMaxSize(8)}, want: cv.ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := cv.NewStorageSource(tt.store, "cv/"+tt.name, tt.opts...)
			defer src.Close()

			_, _, err := src.Open(context.Background())
			assert.ErrorIs(t, err, tt.want)

			// Failures are not cached.
			_, _, _ = src.Open(context.Background())
			assert.EqualValues(t, 2, tt.store.gets.Load())
		})
	}
}

func TestStorageSource_Healthcheck(t *testing.T) {
	t.Parallel()

	ok := cv.NewStorageSource(&fakeStore{data: pdf}, "cv/ok.pdf")
	defer ok.Close()
	assert.NoError(t, ok.Healthcheck(context.Background()))

	bad := cv.NewStorageSource(&fakeStore{err: storage.ErrAccessDenied}, "cv/bad.pdf")
	defer bad.Close()
	err := bad.Healthcheck(context.Background())
	assert.ErrorIs(t, err, cv.ErrUnavailable)
	assert.ErrorIs(t, err, storage.ErrAccessDenied)
}

func TestFallback(t *testing.T) {
	t.Parallel()

	primary := cv.NewStorageSource(&fakeStore{err: errors.New("offline")}, "cv/fallback.pdf")
	defer primary.Close()
	secondary := cv.NewEmbeddedSource(fstest.MapFS{"cv.pdf": {Data: pdf}}, "cv.pdf")

	data, _ := readAll(t, cv.Fallback(primary, secondary, nil))
	assert.Equal(t, pdf, data)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"static/cv-resume.pdf": {Data: pdf}}
	app := web.New(web.WithHandlers(cv.NewHandler(cv.NewEmbeddedSource(fsys, "static/cv-resume.pdf"), content.CV)))

	t.Run("download", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cv-resume.pdf", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="Zaw-Moe-Thet-CV.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, pdf, rec.Body.Bytes())
	})

	t.Run("range", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/cv-resume.pdf", nil)
		req.Header.Set("Range", "bytes=0-7")
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.Equal(t, "%PDF-1.4", rec.Body.String())
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/cv-resume.pdf", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})
}

func TestHandler_SourceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing", err: storage.ErrNotFound, code: http.StatusNotFound},
		{name: "offline", err: errors.New("timeout"), code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := cv.NewStorageSource(&fakeStore{err: tt.err}, "cv/"+tt.name+".pdf")
			defer src.Close()

			app := web.New(web.WithHandlers(cv.NewHandler(src, content.CV)))
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cv-resume.pdf", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
