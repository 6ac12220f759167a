package tracing

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"inkwell/internal/handler/http/pathutil"
	"inkwell/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace id back to the client for correlation.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span for every request.
//
// The span continues a W3C trace context from the request headers when one is
// present and is named after the normalized route (GET /api/blogs/:id) so post
// ids never become span names. Whenever the span has a valid context the
// response carries an X-Trace-Id header. 5xx responses mark the span as failed; 4xx do not, since they are
// caller mistakes.
//
// Example usage:
//
//	handler := tracing.Middleware(mux)
//	http.ListenAndServe(":8080", handler)
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.IsValid() {
			w.Header().Set(TraceIDHeader, sc.TraceID().String())
		}

		rec := responsewriter.Wrap(w)
		next.ServeHTTP(rec, r.WithContext(ctx))

		status := rec.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetAttributes(attribute.String("error.type", strconv.Itoa(status)))
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
