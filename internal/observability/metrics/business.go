package metrics

import (
	"time"
)

// Caller labels used by post mutation metrics.
const (
	CallerAdmin     = "admin"
	CallerAnonymous = "anonymous"
)

// CallerLabel maps the admin flag to a metric label.
func CallerLabel(isAdmin bool) string {
	if isAdmin {
		return CallerAdmin
	}
	return CallerAnonymous
}

// RecordPostMutation records the outcome of a post write.
// Operation is one of create, update, delete, toggle; result is typically
// success, invalid, unauthorized, not_found or error.
func RecordPostMutation(operation string, isAdmin bool, result string) {
	PostMutationsTotal.WithLabelValues(operation, CallerLabel(isAdmin), result).Inc()
}

// RecordDegradedRead records a list or get answered without data because the
// store failed.
func RecordDegradedRead(operation string) {
	PostReadsDegradedTotal.WithLabelValues(operation).Inc()
}

// UpdatePostsTotal sets the post gauges. It is refreshed periodically by the
// API process and after each stats computation.
func UpdatePostsTotal(published, drafts int) {
	PostsTotal.WithLabelValues("published").Set(float64(published))
	PostsTotal.WithLabelValues("draft").Set(float64(drafts))
}

// UpdateStorageCircuitState records the numeric state of a named breaker.
func UpdateStorageCircuitState(name string, state int) {
	StorageCircuitState.WithLabelValues(name).Set(float64(state))
}

// RecordDBQuery records the duration of a repository call.
// Operation should describe the call (e.g., "list", "insert").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
