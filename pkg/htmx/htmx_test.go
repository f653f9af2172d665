package htmx_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/pkg/htmx"
)

type fragment string

func (f fragment) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(f))
	return err
}

type failing struct{}

func (failing) Render(context.Context, io.Writer) error { return errors.New("boom") }

func TestRequestHelpers(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/contact/validate", nil)
	assert.False(t, htmx.IsHTMX(r))

	r.Header.Set("HX-Request", "true")
	r.Header.Set("HX-Boosted", "true")
	r.Header.Set("HX-Target", "contact-form")
	r.Header.Set("HX-Trigger-Name", "email")

	assert.True(t, htmx.IsHTMX(r))
	assert.True(t, htmx.IsBoosted(r))
	assert.Equal(t, "contact-form", htmx.Target(r))
	assert.Equal(t, "email", htmx.TriggerName(r))
}

func TestConfig_ApplyHeaders(t *testing.T) {
	t.Parallel()

	cfg := htmx.NewConfig(
		htmx.WithRetarget("#contact-form"),
		htmx.WithReswap(htmx.SwapOuterHTML),
		htmx.WithReselect("#form"),
		htmx.WithPushURL("false"),
		htmx.WithTrigger("contact:sent", "toast"),
		htmx.WithRefresh(),
	)
	rec := httptest.NewRecorder()
	cfg.ApplyHeaders(rec)

	h := rec.Header()
	assert.Equal(t, "#contact-form", h.Get("HX-Retarget"))
	assert.Equal(t, "outerHTML", h.Get("HX-Reswap"))
	assert.Equal(t, "#form", h.Get("HX-Reselect"))
	assert.Equal(t, "false", h.Get("HX-Push-Url"))
	assert.Equal(t, "contact:sent, toast", h.Get("HX-Trigger"))
	assert.Equal(t, "true", h.Get("HX-Refresh"))
	assert.Equal(t, "HX-Request", h.Get("Vary"))

	var nilCfg *htmx.Config
	assert.NotPanics(t, func() { nilCfg.ApplyHeaders(httptest.NewRecorder()) })
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := htmx.NewConfig(htmx.WithOOB(fragment("<b id=a hx-swap-oob=true>")))
	require.NoError(t, htmx.Write(context.Background(), &buf, fragment("<form>"), cfg))
	assert.Equal(t, "<form><b id=a hx-swap-oob=true>", buf.String())

	buf.Reset()
	require.NoError(t, htmx.Write(context.Background(), &buf, nil, cfg))
	assert.Equal(t, "<b id=a hx-swap-oob=true>", buf.String())

	err := htmx.Write(context.Background(), &buf, failing{}, nil)
	assert.EqualError(t, err, "boom")
}

func TestConfig_Status(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, htmx.NewConfig().Status(http.StatusOK))
	assert.Equal(t, htmx.StatusStopPolling, htmx.NewConfig(htmx.WithStopPolling()).Status(http.StatusOK))

	var nilCfg *htmx.Config
	assert.Equal(t, http.StatusAccepted, nilCfg.Status(http.StatusAccepted))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/lang/my", nil)
		w := httptest.NewRecorder()
		htmx.Redirect(w, r, "/")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("htmx request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/lang/my", nil)
		r.Header.Set("HX-Request", "true")
		w := httptest.NewRecorder()
		htmx.Redirect(w, r, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
	})
}

func TestRefreshOrRedirect(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/lang/my", nil)
	r.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	htmx.RefreshOrRedirect(w, r, "/")
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))

	r = httptest.NewRequest(http.MethodPost, "/lang/my", nil)
	w = httptest.NewRecorder()
	htmx.RefreshOrRedirect(w, r, "/#contact")
	assert.Equal(t, "/#contact", w.Header().Get("Location"))
}

func TestSwapStrategy_With(t *testing.T) {
	t.Parallel()

	assert.Equal(t, htmx.SwapOuterHTML, htmx.SwapOuterHTML.With())
	assert.Equal(t, htmx.SwapStrategy("outerHTML show:none settle:0ms"), htmx.SwapOuterHTML.With("show:none", "settle:0ms"))
}
