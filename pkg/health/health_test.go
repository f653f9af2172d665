package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moethet/portfolio/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live?format=json", nil))
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	checks := health.Checks{
		"cv":    func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	health.ReadinessHandler(checks)(w, r)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Service Unavailable\nredis: unhealthy", w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.Header.Set("Accept", "application/json")
	health.ReadinessHandler(checks)(w, r)

	var resp health.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Equal(t, health.StatusHealthy, resp.Checks["cv"].Status)
	assert.Equal(t, "connection refused", resp.Checks["redis"].Error)
}

func TestRun_AllHealthy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, health.StatusHealthy, health.Run(context.Background(), nil).Status)

	resp := health.Run(context.Background(), health.Checks{
		"a": func(context.Context) error { return nil },
		"b": func(context.Context) error { return nil },
	})
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Len(t, resp.Checks, 2)
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	resp := health.Run(context.Background(), health.Checks{
		"slow": func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}, health.WithTimeout(20*time.Millisecond))

	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Contains(t, resp.Checks["slow"].Error, "health: check timeout")
}
