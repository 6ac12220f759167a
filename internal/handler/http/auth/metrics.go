package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts login attempts by role and result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by role and result",
		},
		[]string{"role", "result"}, // result: success | failure
	)

	// authDuration tracks login duration by role.
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration by role",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"role"},
	)

	// authzCheckDuration tracks session cookie verification.
	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Session verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// sessionChecksTotal counts identified callers by outcome.
	sessionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_checks_total",
			Help: "Requests by resolved caller kind",
		},
		[]string{"caller"}, // caller: admin | anonymous
	)
)

// RecordAuthRequest records an authentication request.
func RecordAuthRequest(role, result string) {
	authRequestsTotal.WithLabelValues(role, result).Inc()
}

// RecordAuthDuration records authentication duration.
func RecordAuthDuration(role string, durationSeconds float64) {
	authDuration.WithLabelValues(role).Observe(durationSeconds)
}

// RecordAuthzCheckDuration records session verification duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordSessionCheck records the caller kind resolved for a request.
func RecordSessionCheck(isAdmin bool) {
	caller := "anonymous"
	if isAdmin {
		caller = "admin"
	}
	sessionChecksTotal.WithLabelValues(caller).Inc()
}
