package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"savora-web/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type statsStore struct {
	pingFunc
	stats map[string]interface{}
}

func (s statsStore) Stats() map[string]interface{} { return s.stats }

func newRouter(checks map[string]Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{App: config.AppConfig{Version: "1.2.3"}}
	h := NewHandler(cfg, checks)

	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
	return r
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Nil(t, resp.Stores)
}

func TestHealthCheckReportsStoreStats(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	checks := map[string]Pinger{
		"session": statsStore{pingFunc: ok, stats: map[string]interface{}{"size": 2, "evictions": 1}},
		"mongo":   ok,
	}

	w := httptest.NewRecorder()
	newRouter(checks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Stores, "session")
	assert.NotContains(t, resp.Stores, "mongo")
	assert.EqualValues(t, 2, resp.Stores["session"]["size"])
	assert.EqualValues(t, 1, resp.Stores["session"]["evictions"])
}

func TestReadinessCheck(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(map[string]Pinger{"session": ok, "mongo": ok}).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, map[string]string{"session": "ok", "mongo": "ok"}, resp.Checks)
	})

	t.Run("dependency down", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(map[string]Pinger{"session": ok, "mongo": down}).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["mongo"])
	})
}

func TestLivenessCheck(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
