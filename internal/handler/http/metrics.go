package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/responsewriter"
	"inkwell/internal/observability/metrics"
	"inkwell/internal/observability/slo"
)

// Metrics returns middleware that records HTTP request metrics including
// duration, size and status codes. Paths are normalized so that post ids do not
// explode label cardinality. When tracker is non-nil every request is also fed
// to the SLO window.
func Metrics(tracker *slo.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			// Example: /api/blogs/6f1c... -> /api/blogs/:id
			normalizedPath := pathutil.NormalizePath(r.URL.Path)

			rw := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			requestSize := 0
			if r.ContentLength > 0 {
				requestSize = int(r.ContentLength)
			}
			metrics.RecordHTTPRequest(r.Method, normalizedPath, strconv.Itoa(rw.Status()),
				duration, requestSize, rw.Size())

			if tracker != nil {
				tracker.Observe(rw.Status(), duration)
			}
		})
	}
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
