// Package tracing configures OpenTelemetry for the API.
//
// Init installs the SDK TracerProvider and W3C propagation; main shuts the
// provider down on exit. Middleware opens one server span per request and the
// post service opens child spans through GetTracer:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "post.Create")
//	defer span.End()
package tracing
