// Package observability groups the logging, metrics, tracing and SLO packages.
// It has no code of its own.
//
//   - logging: slog setup and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP, posts and storage
//   - tracing: OpenTelemetry provider setup and the HTTP server span middleware
//   - slo: per-window availability and latency tracking against fixed targets
package observability
