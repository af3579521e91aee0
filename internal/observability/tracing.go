package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the package-level tracer used by the HTTP middleware;
// the outbound gateway calls start no spans. Exporter wiring is left to the
// deployment environment (OTEL_EXPORTER_OTLP_ENDPOINT and friends);
// with no exporter configured this is a safe no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer("order-service")
}

// StartSpan is a thin convenience wrapper kept symmetrical with the
// logging helpers in this package.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}
