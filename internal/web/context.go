package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moethet/portfolio/pkg/cookie"
	"github.com/moethet/portfolio/pkg/htmx"
	"github.com/moethet/portfolio/pkg/i18n"
)

// TranslatorKey is the context key holding the request's *i18n.Translator.
type TranslatorKey struct{}

// LanguageKey is the context key holding the resolved language code.
type LanguageKey struct{}

// Component renders HTML. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context carries one request and its response. It implements
// context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string
	QueryDefault(name, defaultValue string) string

	// Form returns a form value, parsing the body on first access.
	Form(name string) string

	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect sends HX-Redirect for HTMX requests and a plain redirect
	// with code otherwise.
	Redirect(code int, url string) error

	// Error builds an *HTTPError to be returned from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	IsHTMX() bool

	// Render writes component with code. HTMX headers and out-of-band
	// components from opts are applied for HTMX requests only.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for HTMX requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Attachment streams content as a download named filename.
	Attachment(filename, contentType string, modTime time.Time, content io.ReadSeeker) error

	// File serves name from fsys.
	File(fsys fs.FS, name string) error

	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context. Middleware values set
	// here reach the next handler.
	Set(key, value any)
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)

	// CookieSigned returns cookie.ErrNoSecret when no secret is configured.
	CookieSigned(name string) (string, error)
	SetCookieSigned(name, value string, maxAge int) error

	// ResponseWriter returns the wrapped writer.
	ResponseWriter() *ResponseWriter

	// T translates key with the translator set by the I18n middleware.
	// Without one the key is returned as is.
	T(key string, placeholders ...i18n.M) string

	// Translator returns the request translator or nil.
	Translator() *i18n.Translator

	// Language returns the resolved language or "".
	Language() string
}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	if htmx.IsHTMX(c.request) {
		htmx.Redirect(c.response, c.request, url)
		return nil
	}
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

// Render writes the component. For HTMX requests the ResponseWriter turns
// error statuses into 200; 286 passes through so polling can be stopped.
func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(opts) == 0 || !htmx.IsHTMX(c.request) {
		c.response.WriteHeader(code)
		return component.Render(c.request.Context(), c.response)
	}

	cfg := htmx.NewConfig(opts...)
	cfg.ApplyHeaders(c.response)
	c.response.WriteHeader(cfg.Status(code))

	return htmx.Write(c.request.Context(), c.response, component, cfg)
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if htmx.IsHTMX(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Attachment(filename, contentType string, modTime time.Time, content io.ReadSeeker) error {
	h := c.response.Header()
	h.Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(c.response, c.request, filename, modTime, content)
	return nil
}

func (c *requestContext) File(fsys fs.FS, name string) error {
	if _, err := fs.Stat(fsys, name); err != nil {
		return ErrNotFound("file not found", WithError(fmt.Errorf("serve %s: %w", name, err)))
	}
	http.ServeFileFS(c.response, c.request, fsys, name)
	return nil
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.cookieManager.SetSigned(c.response, name, value, maxAge)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Translator() *i18n.Translator {
	t, _ := c.request.Context().Value(TranslatorKey{}).(*i18n.Translator)
	return t
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if t := c.Translator(); t != nil {
		return t.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if lang, ok := c.request.Context().Value(LanguageKey{}).(string); ok {
		return lang
	}
	if t := c.Translator(); t != nil {
		return t.Language()
	}
	return ""
}
