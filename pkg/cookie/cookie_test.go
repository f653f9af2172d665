package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// roundTrip copies the cookies written to w onto a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestPlain(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "pf_lang")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	w := httptest.NewRecorder()
	m.Set(w, "pf_lang", "my", 3600)

	c := w.Result().Cookies()[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)

	v, err := m.Get(roundTrip(w), "pf_lang")
	require.NoError(t, err)
	assert.Equal(t, "my", v)

	w = httptest.NewRecorder()
	m.Delete(w, "pf_lang")
	assert.Negative(t, w.Result().Cookies()[0].MaxAge)
}

func TestSigned(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret(testSecret), cookie.WithSecure(true), cookie.WithDomain("example.com"))

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "pf_visitor", "abc-123", 60))
	assert.True(t, w.Result().Cookies()[0].Secure)

	v, err := m.GetSigned(roundTrip(w), "pf_visitor")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", v)
}

func TestSigned_Tampered(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret(testSecret))

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "pf_visitor", "abc-123", 60))
	raw := w.Result().Cookies()[0].Value

	tests := map[string]string{
		"no separator":  strings.ReplaceAll(raw, ".", ""),
		"bad base64":    "!!!." + strings.SplitN(raw, ".", 2)[1],
		"swapped value": "ZXZpbA." + strings.SplitN(raw, ".", 2)[1],
		"truncated mac": raw[:len(raw)-4],
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "pf_visitor", Value: value})
			_, err := m.GetSigned(r, "pf_visitor")
			assert.ErrorIs(t, err, cookie.ErrBadSig)
		})
	}
}

func TestSigned_BoundToName(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret(testSecret))

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "a", "value", 60))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "b", Value: w.Result().Cookies()[0].Value})
	_, err := m.GetSigned(r, "b")
	assert.ErrorIs(t, err, cookie.ErrBadSig)
}

func TestSigned_WrongSecret(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, cookie.New(cookie.WithSecret(testSecret)).SetSigned(w, "v", "x", 60))

	other := cookie.New(cookie.WithSecret(strings.Repeat("z", 32)))
	_, err := other.GetSigned(roundTrip(w), "v")
	assert.ErrorIs(t, err, cookie.ErrBadSig)
}

func TestNoSecret(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret("short"))

	require.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "v", "x", 0), cookie.ErrNoSecret)
	_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "v")
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	assert.ErrorIs(t, cookie.CheckSecret(""), cookie.ErrNoSecret)
	assert.ErrorIs(t, cookie.CheckSecret("short"), cookie.ErrBadSecret)
	assert.NoError(t, cookie.CheckSecret(testSecret))
}

func TestSigned_Rotation(t *testing.T) {
	t.Parallel()
	oldSecret := strings.Repeat("o", 32)

	w := httptest.NewRecorder()
	require.NoError(t, cookie.New(cookie.WithSecret(oldSecret)).SetSigned(w, "pf_visitor", "abc", 60))

	rotated := cookie.New(cookie.WithSecret(testSecret, oldSecret, "too-short"))
	v, err := rotated.GetSigned(roundTrip(w), "pf_visitor")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	// New cookies are signed with the current secret only.
	w = httptest.NewRecorder()
	require.NoError(t, rotated.SetSigned(w, "pf_visitor", "def", 60))
	_, err = cookie.New(cookie.WithSecret(oldSecret)).GetSigned(roundTrip(w), "pf_visitor")
	assert.ErrorIs(t, err, cookie.ErrBadSig)
	v, err = cookie.New(cookie.WithSecret(testSecret)).GetSigned(roundTrip(w), "pf_visitor")
	require.NoError(t, err)
	assert.Equal(t, "def", v)
}

func TestWithSameSite(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSameSite(http.SameSiteStrictMode))

	w := httptest.NewRecorder()
	m.Set(w, "pf_lang", "en", 60)
	assert.Equal(t, http.SameSiteStrictMode, w.Result().Cookies()[0].SameSite)
}
