package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"inkwell/internal/handler/http/respond"
	"inkwell/internal/observability/logging"
)

var errRequestTimeout = errors.New("request timeout")

// Timeout returns middleware that enforces request timeouts.
// If a request takes longer than the specified duration, it returns 504 Gateway Timeout
// and the handler's context is canceled so storage calls can stop early.
//
// Only one goroutine (either the handler or the timer) writes the response.
// A panic in the handler is re-raised on the calling goroutine.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			var panicVal any
			tw := &timeoutResponseWriter{ResponseWriter: w, h: make(http.Header)}

			go func() {
				defer close(done)
				defer func() {
					panicVal = recover()
				}()
				next.ServeHTTP(tw, r)
			}()

			select {
			case <-done:
				// Re-raise on the request goroutine so Recover sees it.
				if panicVal != nil {
					panic(panicVal)
				}
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					logging.FromContext(ctx).Warn("request timed out",
						slog.String("path", r.URL.Path),
						slog.Duration("timeout", duration),
					)
					respond.Error(w, http.StatusGatewayTimeout, errRequestTimeout)
				}
			}
		})
	}
}

// timeoutResponseWriter drops writes once the timeout response has been sent.
// The handler sets headers on its own map; they reach the real writer only
// when the handler writes first, under mu.
type timeoutResponseWriter struct {
	http.ResponseWriter
	h        http.Header
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (w *timeoutResponseWriter) Header() http.Header {
	return w.h
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.timedOut && !w.written {
		w.writeHeaderLocked(statusCode)
	}
}

func (w *timeoutResponseWriter) writeHeaderLocked(statusCode int) {
	w.written = true
	dst := w.ResponseWriter.Header()
	for k, vv := range w.h {
		dst[k] = append([]string(nil), vv...)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !w.written {
		w.writeHeaderLocked(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}
