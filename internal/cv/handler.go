package cv

import (
	"bytes"
	"errors"
	"io"
	"io/fs"

	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/pkg/storage"
)

// Handler serves the résumé as a download.
type Handler struct {
	source Source
	asset  content.CVAsset
}

// NewHandler creates a Handler serving source at asset.Path.
func NewHandler(source Source, asset content.CVAsset) *Handler {
	return &Handler{source: source, asset: asset}
}

// Routes implements web.Handler.
func (h *Handler) Routes(r web.Router) {
	r.GET(h.asset.Path, h.download)
	r.HEAD(h.asset.Path, h.download)
}

func (h *Handler) download(c web.Context) error {
	rc, info, err := h.source.Open(c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, storage.ErrNotFound) {
			return web.ErrNotFound("cv not found", web.WithError(err))
		}
		return web.ErrServiceUnavailable("cv unavailable", web.WithError(err))
	}
	defer rc.Close()

	rs, ok := rc.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(rc)
		if err != nil {
			return web.ErrInternal("cv read failed", web.WithError(err))
		}
		rs = bytes.NewReader(data)
	}

	c.SetHeader("Cache-Control", "public, max-age=3600")
	return c.Attachment(h.asset.DownloadName, info.ContentType, info.ModTime, rs)
}

var _ web.Handler = (*Handler)(nil)
