package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"inkwell/internal/handler/http/requestid"
)

// ParseLevel maps a LOG_LEVEL value to a slog level.
// Supported levels: debug, info, warn, error. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a structured logger writing to w.
// Format "text" selects the human-readable handler; anything else is JSON.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		// Add source code location for error and warn levels
		AddSource: level <= slog.LevelWarn,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// NewLogger creates a new structured logger with JSON output on stdout.
// The log level is read from LOG_LEVEL and the format from LOG_FORMAT (json, text).
func NewLogger() *slog.Logger {
	return New(os.Stdout, os.Getenv("LOG_FORMAT"), ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewTextLogger creates a new structured logger with human-readable text output.
// This is useful for local development and debugging.
func NewTextLogger() *slog.Logger {
	return New(os.Stdout, "text", ParseLevel(os.Getenv("LOG_LEVEL")))
}

// WithRequestID returns a new logger that includes the request ID from the context.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithTrace returns a new logger carrying the trace and span ids of the
// active span, if the context holds a valid one.
func WithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
}

// ForRequest decorates logger with every correlation id found in ctx.
func ForRequest(ctx context.Context, logger *slog.Logger) *slog.Logger {
	return WithTrace(ctx, WithRequestID(ctx, logger))
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
