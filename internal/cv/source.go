package cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/moethet/portfolio/pkg/logger"
)

// ContentType is the only type served.
const ContentType = "application/pdf"

var (
	ErrUnavailable = errors.New("cv: file unavailable")
	ErrNotPDF      = errors.New("cv: file is not a PDF")
	ErrTooLarge    = errors.New("cv: file too large")
)

// Info describes an opened file.
type Info struct {
	ModTime     time.Time
	ContentType string
	Size        int64
}

// Source opens the résumé. The caller closes the reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, Info, error)
}

// EmbeddedSource reads the file from a filesystem, usually the embedded
// asset FS.
type EmbeddedSource struct {
	fsys fs.FS
	name string
}

// NewEmbeddedSource creates an EmbeddedSource for name in fsys.
func NewEmbeddedSource(fsys fs.FS, name string) *EmbeddedSource {
	return &EmbeddedSource{fsys: fsys, name: name}
}

// Open implements Source. Files from embed.FS and fstest.MapFS are seekable,
// so the handler can answer range requests without buffering.
func (s *EmbeddedSource) Open(context.Context) (io.ReadCloser, Info, error) {
	f, err := s.fsys.Open(s.name)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Info{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return f, Info{ModTime: st.ModTime(), ContentType: ContentType, Size: st.Size()}, nil
}

type fallbackSource struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
}

// Fallback opens primary and, when that fails, secondary. The primary error
// is logged at warn level.
func Fallback(primary, secondary Source, l *slog.Logger) Source {
	if l == nil {
		l = logger.NewNope()
	}
	return &fallbackSource{primary: primary, secondary: secondary, logger: l}
}

func (s *fallbackSource) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	rc, info, err := s.primary.Open(ctx)
	if err == nil {
		return rc, info, nil
	}
	s.logger.WarnContext(ctx, "cv primary source failed, using fallback", slog.Any("error", err))
	return s.secondary.Open(ctx)
}
