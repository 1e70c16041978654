// Package progrock provides a ports.Tracer that records spans as progrock vertices.
package progrock

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/sitecache/internal/core/ports"
)

// Tracer implements ports.Tracer on a progrock recording.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Tracer with a default tape.
func New() *Tracer {
	return NewTracer(progrock.NewTape())
}

// NewTracer creates a new Tracer with the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex. Start attributes are part of the vertex name,
// so spans with the same name but different attributes are distinct vertices.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	label := vertexName(name, ports.NewSpanConfig(opts...))
	v := t.rec.Vertex(digest.FromString(label), label)
	return ctx, &Span{vertex: v}
}

// Shutdown flushes and closes the recording session.
func (t *Tracer) Shutdown(_ context.Context) error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func vertexName(name string, cfg ports.SpanConfig) string {
	if len(cfg.Attributes) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for _, k := range slices.Sorted(maps.Keys(cfg.Attributes)) {
		fmt.Fprintf(&b, " %s=%v", k, cfg.Attributes[k])
	}
	return b.String()
}
