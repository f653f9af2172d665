package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/internal/config"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestCheckContent(t *testing.T) {
	out, err := execute(t, "check-content")
	require.NoError(t, err)
	assert.Contains(t, out, "content ok: 2 languages")
}

func TestCheckTranslations(t *testing.T) {
	svc, err := i18n.New(
		i18n.WithLanguages("en", "my"),
		i18n.WithTranslations("en", "ui", map[string]any{"a": "A", "b": "B"}),
		i18n.WithTranslations("my", "ui", map[string]any{"a": "A", "c": "C"}),
	)
	require.NoError(t, err)

	err = checkTranslations(svc, "ui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "my: missing b")
	assert.Contains(t, err.Error(), "my: unknown key c")

	assert.Error(t, checkTranslations(svc, "other"))
}

func TestCVUpload_RequiresBucket(t *testing.T) {
	t.Setenv("CV_S3_BUCKET", "")

	_, err := execute(t, "cv-upload", "resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CV_S3_BUCKET")
}

func TestCVUpload_RejectsNonPDF(t *testing.T) {
	t.Setenv("CV_S3_BUCKET", "assets")
	t.Setenv("CV_S3_ACCESS_KEY", "ak")
	t.Setenv("CV_S3_SECRET_KEY", "sk")

	name := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(name, []byte("plain text, not a pdf"), 0o600))

	_, err := execute(t, "cv-upload", name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF")
}

func TestServer(t *testing.T) {
	t.Setenv("COOKIE_SECRET", testSecret)
	t.Setenv("REDIS_URL", "")
	t.Setenv("CV_S3_BUCKET", "")
	t.Setenv("RESEND_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	srv, err := newServer(context.Background(), cfg, logger.NewNope())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, srv.shutdown(context.Background())) })

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "Zaw Moe Thet"},
		{"/static/css/site.css", "text/css", ".site-header"},
		{"/cv-resume.pdf", "application/pdf", "%PDF-"},
		{"/health/live", "", ""},
		{"/health/ready", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}
