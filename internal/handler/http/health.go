// Package http provides HTTP handlers and middleware for the web application.
// It includes health check endpoints, metrics collection, request logging and
// the middleware chain shared by the post and auth handlers.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// Pinger is anything that can confirm its backend is reachable.
// Every post repository satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerState exposes the state of a circuit breaker.
type BreakerState interface {
	State() gobreaker.State
}

// HealthHandler handles health check endpoint requests.
// It pings the post store and reports pool statistics for SQL backends and the
// storage circuit breaker state.
type HealthHandler struct {
	Store   Pinger
	Backend string
	Version string

	// DB is set for SQL backends so pool statistics can be reported.
	DB *sql.DB
	// Breaker is the circuit breaker wrapping the store, if any.
	Breaker BreakerState
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy or degraded, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	storage := h.checkStorage(ctx)
	checks["storage"] = storage
	if storage.Status == "unhealthy" {
		allHealthy = false
	}

	if h.DB != nil {
		checks["connection_pool"] = checkPool(h.DB.Stats())
	}

	if h.Breaker != nil {
		checks["circuit_breaker"] = checkBreaker(h.Breaker.State())
	}

	// "degraded" is a warning state, not a failure - system is still operational
	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

// checkStorage pings the post store.
func (h *HealthHandler) checkStorage(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}

	details := map[string]any{"backend": h.Backend}
	start := time.Now()
	if err := h.Store.Ping(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: "storage unavailable", Details: details}
	}
	details["latency_ms"] = time.Since(start).Milliseconds()
	return CheckStatus{Status: "healthy", Details: details}
}

// checkPool reports connection pool statistics and flags a nearly exhausted pool.
func checkPool(stats sql.DBStats) CheckStatus {
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}

	// Guard against zero division when MaxOpenConnections is 0 (unlimited/unconfigured)
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent

	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

// checkBreaker maps the breaker state to a check. An open breaker is degraded
// rather than unhealthy: reads still answer, only storage calls are shed.
func checkBreaker(state gobreaker.State) CheckStatus {
	details := map[string]any{"state": state.String()}
	if state == gobreaker.StateClosed {
		return CheckStatus{Status: "healthy", Details: details}
	}
	return CheckStatus{Status: "degraded", Message: "storage circuit " + state.String(), Details: details}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// It checks that the post store is reachable.
type ReadyHandler struct {
	Store Pinger
}

// ServeHTTP returns 200 OK if the store answers a ping within two seconds,
// or 503 Service Unavailable otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "storage not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.Store.Ping(ctx); err != nil {
		slog.Default().Warn("readiness check failed", slog.Any("error", err))
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
