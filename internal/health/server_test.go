package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) HealthCheck(ctx context.Context) error {
	return f.err
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(Config{ServiceName: "bet-insight", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "bet-insight", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandleReadyNotReady(t *testing.T) {
	srv := NewServer(Config{ServiceName: "bet-insight"})

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not_ready", resp.Checks["service"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	srv := NewServer(Config{ServiceName: "bet-insight", DB: &fakePinger{err: errors.New("connection refused")}})
	srv.SetReady(true)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["service"])
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestHandleReadyOK(t *testing.T) {
	srv := NewServer(Config{ServiceName: "bet-insight", DB: &fakePinger{}})
	srv.SetReady(true)

	rec := httptest.NewRecorder()
	srv.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestNewServerDefaultPort(t *testing.T) {
	srv := NewServer(Config{ServiceName: "bet-insight"})
	assert.Equal(t, "8080", srv.port)
}
