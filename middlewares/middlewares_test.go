package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/middlewares"
	"github.com/moethet/portfolio/pkg/cookie"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/ratelimit"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type routes func(r web.Router)

func (f routes) Routes(r web.Router) { f(r) }

// newApp mounts h on GET and POST / behind mw.
func newApp(h web.HandlerFunc, mw ...web.Middleware) *web.App {
	return web.New(
		web.WithCookieOptions(cookie.WithSecret(testSecret)),
		web.WithMiddleware(mw...),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/", h)
			r.POST("/", h)
		})),
	)
}

func do(app *web.App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var got string
	app := newApp(func(c web.Context) error {
		got = middlewares.GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	}, middlewares.RequestID())

	t.Run("generates", func(t *testing.T) {
		w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, got)
		assert.Len(t, got, 36)
		assert.Equal(t, got, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "trace-1")
		w := do(app, req)
		assert.Equal(t, "trace-1", got)
		assert.Equal(t, "trace-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
		do(app, req)
		assert.Len(t, got, 36)
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var handled error
	app := web.New(
		web.WithMiddleware(middlewares.Recover()),
		web.WithErrorHandler(func(c web.Context, err error) error {
			handled = err
			return c.String(http.StatusInternalServerError, "oops")
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/", func(web.Context) error { panic("kaboom") })
		})),
	)

	w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	pe, ok := middlewares.AsPanicError(handled)
	require.True(t, ok)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.True(t, middlewares.IsPanicError(handled))
	assert.False(t, middlewares.IsPanicError(errors.New("plain")))
}

func TestI18n(t *testing.T) {
	t.Parallel()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithLanguages("en", "my"),
		i18n.WithTranslations("en", "ui", map[string]any{"hello": "Hello"}),
		i18n.WithTranslations("my", "ui", map[string]any{"hello": "မင်္ဂလာပါ"}),
	)
	require.NoError(t, err)

	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, middlewares.GetLanguage(c)+":"+c.T("hello"))
	}, middlewares.I18n(svc, middlewares.WithI18nNamespace("ui")))

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "en:Hello"},
		{"accept-language", "", "my-MM,my;q=0.9,en;q=0.5", "my:မင်္ဂလာပါ"},
		{"unsupported accept-language", "", "fr-FR", "en:Hello"},
		{"cookie wins", "en", "my", "en:Hello"},
		{"bogus cookie falls through", "xx-not-a-lang", "", "en:Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewares.LanguageCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, do(app, req).Body.String())
		})
	}
}

func TestVisitor(t *testing.T) {
	t.Parallel()

	var got string
	app := newApp(func(c web.Context) error {
		got = middlewares.GetVisitorID(c)
		return c.NoContent(http.StatusNoContent)
	}, middlewares.Visitor())

	w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	first := got
	require.NotEmpty(t, first)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middlewares.VisitorCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	t.Run("returning visitor keeps id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		w := do(app, req)
		assert.Equal(t, first, got)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("tampered cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middlewares.VisitorCookie, Value: cookies[0].Value + "x"})
		w := do(app, req)
		assert.NotEqual(t, first, got)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestVisitor_RejectsNonUUID(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))
	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, middlewares.VisitorCookie, "../../etc/passwd", 60))

	var got string
	app := newApp(func(c web.Context) error {
		got = middlewares.GetVisitorID(c)
		return nil
	}, middlewares.Visitor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	do(app, req)
	assert.NotEqual(t, "../../etc/passwd", got)
	assert.Len(t, got, 36)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter, err := ratelimit.NewMemory(
		ratelimit.Config{Limit: 2, Window: 10 * time.Minute},
		ratelimit.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close() })

	var handled error
	app := web.New(
		web.WithErrorHandler(func(c web.Context, err error) error {
			handled = err
			he, _ := web.AsHTTPError(err)
			return c.String(he.Code, he.Message)
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.POST("/", func(c web.Context) error {
				return c.String(http.StatusOK, "sent")
			}, middlewares.RateLimit(limiter))
		})),
	)

	post := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = ip + ":4242"
		return do(app, req)
	}

	w := post("10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(middlewares.HeaderRateLimitLimit))
	assert.Equal(t, "1", w.Header().Get(middlewares.HeaderRateLimitRemaining))
	assert.Equal(t, "600", w.Header().Get(middlewares.HeaderRateLimitReset))

	assert.Equal(t, http.StatusOK, post("10.0.0.1").Code)

	w = post("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "600", w.Header().Get(middlewares.HeaderRetryAfter))
	he, ok := web.AsHTTPError(handled)
	require.True(t, ok)
	assert.Equal(t, middlewares.ErrorCodeRateLimited, he.ErrorCode)

	assert.Equal(t, http.StatusOK, post("10.0.0.2").Code, "other clients are counted separately")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	t.Parallel()

	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, "sent")
	}, middlewares.RateLimit(failingLimiter{}))

	w := do(app, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middlewares.HeaderRateLimitLimit))
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	t.Parallel()

	var keys []string
	limiter := limiterFunc(func(_ context.Context, key string) (ratelimit.Result, error) {
		keys = append(keys, key)
		return ratelimit.Result{Limit: 5, Remaining: 4, Allowed: true}, nil
	})

	app := newApp(func(c web.Context) error { return nil }, middlewares.RateLimit(limiter, middlewares.WithTrustedProxy()))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	do(app, req)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	do(app, req)

	assert.Equal(t, []string{"203.0.113.7", "192.0.2.1"}, keys)
}

type limiterFunc func(ctx context.Context, key string) (ratelimit.Result, error)

func (f limiterFunc) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	return f(ctx, key)
}

func TestPanicError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := fmt.Errorf("handler: %w", &middlewares.PanicError{Value: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, middlewares.IsPanicError(err))
	assert.NoError(t, (&middlewares.PanicError{Value: "text"}).Unwrap())
}

func TestVisitor_Options(t *testing.T) {
	t.Parallel()

	const id = "0190c8a4-6f3e-7b0a-9d2e-5a1f2b3c4d5e"
	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, middlewares.GetVisitorID(c))
	}, middlewares.Visitor(
		middlewares.WithVisitorCookie("sid"),
		middlewares.WithVisitorMaxAge(time.Hour),
		middlewares.WithVisitorGenerator(func() string { return id }),
	))

	w := do(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, id, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestRequestID_Options(t *testing.T) {
	t.Parallel()

	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, middlewares.GetRequestID(c))
	}, middlewares.RequestID(
		middlewares.WithRequestIDHeaders("X-Amzn-Trace-Id"),
		middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
	))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "ignored")
	assert.Equal(t, "fixed", do(app, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Amzn-Trace-Id", "Root=1-abc")
	assert.Equal(t, "Root=1-abc", do(app, req).Body.String())
}

func TestRecover_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []middlewares.RecoverOption
		wantStack func(t *testing.T, stack []byte)
	}{
		{
			name: "stack size",
			opts: []middlewares.RecoverOption{middlewares.WithRecoverStackSize(64)},
			wantStack: func(t *testing.T, stack []byte) {
				assert.NotEmpty(t, stack)
				assert.LessOrEqual(t, len(stack), 64)
			},
		},
		{
			name: "stack disabled",
			opts: []middlewares.RecoverOption{middlewares.WithRecoverDisablePrintStack()},
			wantStack: func(t *testing.T, stack []byte) {
				assert.Empty(t, stack)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handled error
			app := web.New(
				web.WithMiddleware(middlewares.Recover(tt.opts...)),
				web.WithErrorHandler(func(c web.Context, err error) error {
					handled = err
					return c.NoContent(http.StatusInternalServerError)
				}),
				web.WithHandlers(routes(func(r web.Router) {
					r.GET("/", func(web.Context) error { panic("kaboom") })
				})),
			)

			do(app, httptest.NewRequest(http.MethodGet, "/", nil))
			pe, ok := middlewares.AsPanicError(handled)
			require.True(t, ok)
			tt.wantStack(t, pe.Stack)
		})
	}
}

func TestRateLimit_KeyAndMessage(t *testing.T) {
	t.Parallel()

	var keys []string
	limiter := limiterFunc(func(_ context.Context, key string) (ratelimit.Result, error) {
		keys = append(keys, key)
		return ratelimit.Result{Limit: 1, ResetAfter: time.Minute}, nil
	})

	app := web.New(
		web.WithMiddleware(middlewares.RateLimit(limiter,
			middlewares.WithRateLimitKey(func(c web.Context) string { return "form:" + c.Header("X-Form") }),
			middlewares.WithRateLimitMessage("slow down"),
		)),
		web.WithErrorHandler(func(c web.Context, err error) error {
			he, _ := web.AsHTTPError(err)
			return c.String(he.Code, he.Message)
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.POST("/", func(c web.Context) error { return c.NoContent(http.StatusOK) })
		})),
	)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Form", "contact")
	w := do(app, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down", w.Body.String())
	assert.Equal(t, []string{"form:contact"}, keys)
}

func TestI18n_CustomExtractor(t *testing.T) {
	t.Parallel()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithLanguages("en", "my"),
		i18n.WithTranslations("en", "ui", map[string]any{"hello": "Hello"}),
	)
	require.NoError(t, err)

	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, middlewares.GetLanguage(c))
	}, middlewares.I18n(svc, middlewares.WithI18nExtractor(web.NewExtractor(web.FromQuery("hl")))))

	assert.Equal(t, "my", do(app, httptest.NewRequest(http.MethodGet, "/?hl=my", nil)).Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.LanguageCookie, Value: "my"})
	assert.Equal(t, "en", do(app, req).Body.String(), "cookie is not consulted")
}
