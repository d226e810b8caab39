package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"fpl-cache/internal/cache/noop"
	"fpl-cache/internal/cache/tiered"
	"fpl-cache/internal/config"
	"fpl-cache/internal/models"
	"fpl-cache/internal/perf"
	"fpl-cache/internal/policy"
)

func newTestServer(t *testing.T) (*Server, *tiered.Coordinator, *perf.Sampler) {
	t.Helper()

	logger := zaptest.NewLogger(t)

	registry, err := policy.NewRegistry(policy.Defaults())
	require.NoError(t, err)

	cfg := &config.Config{
		Local: config.LocalConfig{SweepInterval: time.Hour, SweepEvery: 100},
		Warm:  config.WarmConfig{BatchSize: 10, BatchPause: time.Millisecond},
	}

	sampler := perf.NewSampler(128)
	coordinator := tiered.NewCoordinator(registry, noop.NewRemoteStore(), sampler, cfg, logger)
	t.Cleanup(func() { _ = coordinator.Close() })

	return NewServer(coordinator, sampler, logger), coordinator, sampler
}

func TestServer_Health(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Stats(t *testing.T) {
	server, coordinator, _ := newTestServer(t)

	coordinator.Set(context.Background(), models.CategoryLiveScores, "p1", []byte("v"))
	_, _, err := coordinator.Get(context.Background(), models.CategoryLiveScores, "p1", nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Performance.Samples)
	assert.InDelta(t, 1.0, resp.Performance.HitRate, 0.001)
	assert.Empty(t, resp.RemoteError)
}

func TestServer_Invalidate(t *testing.T) {
	server, coordinator, _ := newTestServer(t)

	coordinator.Set(context.Background(), models.CategoryBootstrap, "static", []byte("v"))

	req := httptest.NewRequest(http.MethodPost, "/invalidate",
		strings.NewReader(`{"event":"season_start"}`))
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp InvalidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "season_start", resp.Event)

	// The bootstrap entry is gone from the local tier
	_, tier, err := coordinator.Get(context.Background(), models.CategoryBootstrap, "static", nil)
	require.NoError(t, err)
	assert.Equal(t, models.TierMiss, tier)
}

func TestServer_Invalidate_MissingEvent(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/invalidate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Invalidate_MalformedBody(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/invalidate", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	server.createRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
