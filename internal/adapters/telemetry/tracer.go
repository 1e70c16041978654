package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sitecache/internal/adapters/telemetry/progrock"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
)

// InstrumentationName is the OpenTelemetry instrumentation scope of the tracer.
const InstrumentationName = "sitecache"

// NewTracer returns the tracer for the given backend, one of the
// domain.Telemetry* values. Unknown backends fall back to OpenTelemetry.
func NewTracer(backend string, logger ports.Logger) ports.Tracer {
	switch backend {
	case domain.TelemetryNone:
		return NewNoOpTracer()
	case domain.TelemetryProgrock:
		return progrock.New()
	default:
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(NewBridge(logger)),
		)
		otel.SetTracerProvider(tp)

		return NewOTelTracer(InstrumentationName, tp).
			WithLogger(logger).
			WithShutdown(tp.Shutdown)
	}
}

// Shutdown flushes tracer if its backend needs it.
func Shutdown(ctx context.Context, tracer ports.Tracer) error {
	if s, ok := tracer.(interface {
		Shutdown(ctx context.Context) error
	}); ok {
		return s.Shutdown(ctx)
	}
	return nil
}
