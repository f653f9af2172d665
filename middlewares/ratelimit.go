package middlewares

import (
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/pkg/ratelimit"
)

// ErrorCodeRateLimited marks the *web.HTTPError returned for rejected
// requests.
const ErrorCodeRateLimited = "rate_limited"

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

type RateLimitConfig struct {
	KeyFunc func(web.Context) string
	Message string
}

type RateLimitOption func(*RateLimitConfig)

// WithRateLimitKey replaces the client IP as the counting key.
func WithRateLimitKey(fn func(web.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if fn != nil {
			cfg.KeyFunc = fn
		}
	}
}

// WithRateLimitMessage sets the message of the 429 error.
func WithRateLimitMessage(msg string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.Message = msg
	}
}

// WithTrustedProxy takes the client IP from X-Forwarded-For or X-Real-IP.
// Only use it behind a proxy that overwrites those headers.
func WithTrustedProxy() RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.KeyFunc = forwardedIP
	}
}

// RateLimit rejects requests over the limiter's quota with a 429
// *web.HTTPError. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, opts ...RateLimitOption) web.Middleware {
	cfg := &RateLimitConfig{
		KeyFunc: remoteIP,
		Message: "too many requests",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			res, err := limiter.Allow(c, cfg.KeyFunc(c))
			if err != nil {
				c.LogWarn("rate limiter unavailable, allowing request", "error", err)
				return next(c)
			}

			reset := strconv.Itoa(int(math.Ceil(res.ResetAfter.Seconds())))
			c.SetHeader(HeaderRateLimitLimit, strconv.Itoa(res.Limit))
			c.SetHeader(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
			c.SetHeader(HeaderRateLimitReset, reset)

			if !res.Allowed {
				c.SetHeader(HeaderRetryAfter, reset)
				return web.ErrTooManyRequests(cfg.Message, web.WithErrorCode(ErrorCodeRateLimited))
			}

			return next(c)
		}
	}
}

func remoteIP(c web.Context) string {
	return hostOnly(c.Request().RemoteAddr)
}

func forwardedIP(c web.Context) string {
	if xff := c.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(c.Header("X-Real-IP")); xri != "" {
		return xri
	}
	return remoteIP(c)
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
