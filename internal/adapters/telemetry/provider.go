package telemetry

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sitecache/internal/core/ports"
)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	logger   ports.Logger
	shutdown func(context.Context) error
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// A nil provider falls back to the global one.
func NewOTelTracer(name string, provider trace.TracerProvider) *OTelTracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &OTelTracer{tracer: provider.Tracer(name)}
}

// progressLogger is implemented by loggers that render span output as
// progress of a named subject.
type progressLogger interface {
	Progress(subject, msg string)
}

// WithLogger forwards span output to logger, one message per line.
// Loggers implementing Progress receive the span's subject with each line.
func (t *OTelTracer) WithLogger(logger ports.Logger) *OTelTracer {
	t.logger = logger
	return t
}

// WithShutdown registers a function that is called by Shutdown.
func (t *OTelTracer) WithShutdown(fn func(context.Context) error) *OTelTracer {
	t.shutdown = fn
	return t
}

// Shutdown flushes and stops the underlying provider, if one was registered.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	if t.shutdown == nil {
		return nil
	}
	return t.shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := ports.NewSpanConfig(opts...)

	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for _, k := range slices.Sorted(maps.Keys(cfg.Attributes)) {
		attrs = append(attrs, toAttribute(k, cfg.Attributes[k]))
	}

	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))

	s := &OTelSpan{span: span}
	if t.logger != nil {
		emit := t.logger.Info
		if pl, ok := t.logger.(progressLogger); ok {
			subject := spanSubject(name, cfg)
			emit = func(line string) { pl.Progress(subject, line) }
		}
		s.batcher = NewBatchProcessor(0, 0, func(lines []string) {
			for _, line := range lines {
				emit(line)
			}
		})
	}
	return ctx, s
}

// spanSubject names what a span works on: its location, else its key,
// else the span name.
func spanSubject(name string, cfg ports.SpanConfig) string {
	for _, attr := range []string{"location", "key"} {
		if v, ok := cfg.Attributes[attr]; ok {
			return fmt.Sprint(v)
		}
	}
	return name
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

// Write satisfies io.Writer by adding a log event to the span and
// forwarding the text to the logger, if any.
func (s *OTelSpan) Write(p []byte) (int, error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	return len(p), nil
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
