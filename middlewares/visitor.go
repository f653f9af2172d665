package middlewares

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/pkg/cookie"
	"github.com/moethet/portfolio/pkg/logger"
)

// VisitorCookie holds the signed visitor id.
const VisitorCookie = "pf_visitor"

// DefaultVisitorMaxAge is how long a browser keeps its visitor id.
const DefaultVisitorMaxAge = 365 * 24 * time.Hour

type visitorIDKey struct{}

type VisitorConfig struct {
	Generator func() string
	Cookie    string
	MaxAge    time.Duration
}

type VisitorOption func(*VisitorConfig)

func WithVisitorCookie(name string) VisitorOption {
	return func(cfg *VisitorConfig) {
		if name != "" {
			cfg.Cookie = name
		}
	}
}

func WithVisitorMaxAge(d time.Duration) VisitorOption {
	return func(cfg *VisitorConfig) {
		if d > 0 {
			cfg.MaxAge = d
		}
	}
}

func WithVisitorGenerator(gen func() string) VisitorOption {
	return func(cfg *VisitorConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// Visitor makes sure every browser carries a signed visitor id. A missing,
// tampered or malformed cookie is replaced with a fresh id. The id is stored
// in the context.
//
// Without a cookie secret the id lives for one request only.
func Visitor(opts ...VisitorOption) web.Middleware {
	cfg := &VisitorConfig{
		Generator: uuid.NewString,
		Cookie:    VisitorCookie,
		MaxAge:    DefaultVisitorMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	maxAge := int(cfg.MaxAge / time.Second)

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			id, err := c.CookieSigned(cfg.Cookie)
			if err == nil && uuid.Validate(id) != nil {
				err = errInvalidVisitorID
			}

			if err != nil {
				if errors.Is(err, cookie.ErrBadSig) || errors.Is(err, errInvalidVisitorID) {
					c.LogWarn("replacing invalid visitor cookie", "error", err)
				}
				id = cfg.Generator()
				if err := c.SetCookieSigned(cfg.Cookie, id, maxAge); err != nil {
					c.LogError("set visitor cookie", "error", err)
				}
			}

			c.Set(visitorIDKey{}, id)
			return next(c)
		}
	}
}

var errInvalidVisitorID = errors.New("middlewares: visitor id is not a uuid")

// GetVisitorID returns the visitor id or "".
func GetVisitorID(c web.Context) string {
	return web.ContextValue[string](c, visitorIDKey{})
}

// VisitorIDExtractor adds visitor_id to log entries.
func VisitorIDExtractor() logger.ContextExtractor {
	return logger.StringExtractor(visitorIDKey{}, "visitor_id")
}
