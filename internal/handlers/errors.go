package handlers

import (
	"net/http"

	"github.com/moethet/portfolio/internal/views"
	"github.com/moethet/portfolio/internal/web"
	"github.com/moethet/portfolio/middlewares"
	"github.com/moethet/portfolio/pkg/htmx"
)

// HandleError is the app error handler. HTMX requests get an error banner
// in the contact status region; other requests get an error page. Details
// of 5xx errors are logged, never shown.
func (s *Site) HandleError(c web.Context, err error) error {
	code := http.StatusInternalServerError
	msg := c.T("errors.generic")

	if he, ok := web.AsHTTPError(err); ok {
		code = he.Code
		switch {
		case he.ErrorCode == middlewares.ErrorCodeRateLimited:
			msg = c.T("errors.rate_limited")
		case code == http.StatusNotFound:
			msg = c.T("errors.not_found")
		}
	}

	if code >= http.StatusInternalServerError || middlewares.IsPanicError(err) {
		c.LogError("request failed", "error", err, "status", code)
	} else {
		c.LogDebug("request rejected", "error", err, "status", code)
	}

	if c.IsHTMX() {
		form := views.Form{T: c.T, Notice: &views.Banner{Kind: views.BannerError, Message: msg}}
		return c.Render(code, views.StatusRegion(form),
			htmx.WithRetarget("#"+views.StatusID),
			htmx.WithReswap(htmx.SwapOuterHTML),
		)
	}
	return c.Render(code, views.ErrorPage(s.meta(c), code, msg))
}

// NotFound renders the 404 page.
func (s *Site) NotFound(c web.Context) error {
	return s.HandleError(c, web.ErrNotFound("page not found"))
}

// MethodNotAllowed renders the 405 page.
func (s *Site) MethodNotAllowed(c web.Context) error {
	return s.HandleError(c, web.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
}
