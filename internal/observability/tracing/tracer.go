package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the tracer used across the application.
const instrumentationName = "inkwell"

// GetTracer returns the application tracer from the current global provider.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Init installs a TracerProvider and W3C trace context propagation as the
// process-wide defaults. sampleRatio is clamped to [0, 1]; parent sampling
// decisions are honored. Extra options (exporters, span processors) are
// appended. The caller shuts the provider down on exit.
func Init(serviceName, version string, sampleRatio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	sampleRatio = min(max(sampleRatio, 0), 1)

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)

	base := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}
	tp := sdktrace.NewTracerProvider(append(base, opts...)...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp
}
