package fpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"fpl-cache/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.FPLConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, zaptest.NewLogger(t))
}

func TestClient_Bootstrap(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bootstrap-static/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"events":[]}`))
	})

	body, err := client.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"events":[]}`), body)
}

func TestClient_LiveScores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/event/12/live/", r.URL.Path)
		_, _ = w.Write([]byte(`{"elements":[]}`))
	})

	_, err := client.LiveScores(context.Background(), 12)
	require.NoError(t, err)
}

func TestClient_Fixtures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures/", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("event"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Fixtures(context.Background(), 7)
	require.NoError(t, err)
}

func TestClient_ManagerHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/12345/history/", r.URL.Path)
		_, _ = w.Write([]byte(`{"current":[]}`))
	})

	_, err := client.ManagerHistory(context.Background(), 12345)
	require.NoError(t, err)
}

func TestClient_ManagerPicks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/12345/event/3/picks/", r.URL.Path)
		_, _ = w.Write([]byte(`{"picks":[]}`))
	})

	_, err := client.ManagerPicks(context.Background(), 12345, 3)
	require.NoError(t, err)
}

func TestClient_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Bootstrap(ctx)
	assert.Error(t, err)
}
