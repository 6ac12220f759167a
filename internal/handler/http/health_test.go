package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeBreaker gobreaker.State

func (b fakeBreaker) State() gobreaker.State { return gobreaker.State(b) }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		store          Pinger
		expectedStatus int
		expectHealthy  bool
	}{
		{
			name:           "healthy storage",
			store:          fakePinger{},
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
		},
		{
			name:           "storage error",
			store:          fakePinger{err: errors.New("dial tcp: connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{
				Store:   tt.store,
				Backend: "json",
				Version: "test-version",
			}

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			response := decodeHealth(t, rec)
			if tt.expectHealthy {
				assert.Equal(t, "healthy", response.Status)
			} else {
				assert.Equal(t, "unhealthy", response.Status)
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
			assert.Equal(t, "test-version", response.Version)
			assert.NotEmpty(t, response.Timestamp)
			require.Contains(t, response.Checks, "storage")
			assert.Equal(t, "json", response.Checks["storage"].Details["backend"])
		})
	}
}

func TestHealthHandler_NoStoreConfigured(t *testing.T) {
	handler := &HealthHandler{Version: "test-version"}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "not configured", response.Checks["storage"].Message)
}

func TestHealthHandler_ConnectionPool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(10)

	handler := &HealthHandler{Store: fakePinger{}, Backend: "postgres", DB: db}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeHealth(t, rec)
	pool, ok := response.Checks["connection_pool"]
	require.True(t, ok)
	assert.Equal(t, "healthy", pool.Status)
	assert.EqualValues(t, 10, pool.Details["max_open_connections"])
}

func TestHealthHandler_UnlimitedPoolIsDegraded(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	handler := &HealthHandler{Store: fakePinger{}, DB: db}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeHealth(t, rec)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "degraded", response.Checks["connection_pool"].Status)
}

func TestHealthHandler_CircuitBreaker(t *testing.T) {
	tests := []struct {
		name       string
		state      gobreaker.State
		wantStatus string
	}{
		{name: "closed", state: gobreaker.StateClosed, wantStatus: "healthy"},
		{name: "half-open", state: gobreaker.StateHalfOpen, wantStatus: "degraded"},
		{name: "open", state: gobreaker.StateOpen, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{Store: fakePinger{}, Breaker: fakeBreaker(tt.state)}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			// An open breaker never makes the whole service unhealthy.
			assert.Equal(t, http.StatusOK, rec.Code)
			response := decodeHealth(t, rec)
			check := response.Checks["circuit_breaker"]
			assert.Equal(t, tt.wantStatus, check.Status)
			assert.Equal(t, tt.state.String(), check.Details["state"])
		})
	}
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		store          Pinger
		expectedStatus int
		expectedBody   string
	}{
		{name: "ready", store: fakePinger{}, expectedStatus: http.StatusOK, expectedBody: "ready"},
		{name: "not ready", store: fakePinger{err: errors.New("timeout")}, expectedStatus: http.StatusServiceUnavailable, expectedBody: "storage not ready\n"},
		{name: "not configured", store: nil, expectedStatus: http.StatusServiceUnavailable, expectedBody: "storage not configured\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &ReadyHandler{Store: tt.store}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	handler := &LiveHandler{}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
