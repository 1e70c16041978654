// Package loader materializes the records named by a known-sites key.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader turns a key into its full record list.
//
// A key holding a single precomputed location is decoded by the precomputed
// store. Any other key is read source by source through the raw opener, and
// the records are concatenated in key order. A Loader is stateless and safe
// for concurrent use.
type Loader struct {
	opener   ports.SourceOpener
	store    ports.PrecomputedStore
	tracer   ports.Tracer
	settings domain.Settings
}

// New creates a Loader.
func New(
	opener ports.SourceOpener,
	store ports.PrecomputedStore,
	tracer ports.Tracer,
	settings domain.Settings,
) *Loader {
	if settings.ProgressInterval <= 0 {
		settings.ProgressInterval = domain.DefaultProgressInterval
	}
	if settings.PrecomputedExtension == "" {
		settings.PrecomputedExtension = domain.DefaultPrecomputedExtension
	}
	return &Loader{
		opener:   opener,
		store:    store,
		tracer:   tracer,
		settings: settings,
	}
}

// IsPrecomputed reports whether location names a precomputed index.
func (l *Loader) IsPrecomputed(location string) bool {
	return l.settings.IsPrecomputed(location)
}

// Load returns every record named by key.
// Failures are *domain.SourceError values naming the offending location.
func (l *Loader) Load(ctx context.Context, key domain.Key) ([]domain.Record, error) {
	if key.IsZero() {
		return nil, domain.ErrInvalidKey
	}

	locations := key.Locations()
	if len(locations) == 1 && l.IsPrecomputed(locations[0]) {
		return l.loadPrecomputed(ctx, locations[0])
	}

	var records []domain.Record
	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "load interrupted")
		}

		var err error
		records, err = l.readSource(ctx, location, records)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (l *Loader) loadPrecomputed(ctx context.Context, location string) (_ []domain.Record, err error) {
	ctx, span := l.tracer.Start(ctx, "loader.precomputed", ports.WithAttribute("location", location))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	records, err := l.store.Read(ctx, location)
	if err != nil {
		return nil, classify(domain.ErrPrecomputedIndexCorrupt, location, err)
	}

	span.SetAttribute("records_read", int64(len(records)))
	return records, nil
}

// readSource drains one raw source, appending its records to dst.
// The reader is closed before readSource returns, whatever the outcome.
func (l *Loader) readSource(
	ctx context.Context,
	location string,
	dst []domain.Record,
) (_ []domain.Record, err error) {
	ctx, span := l.tracer.Start(ctx, "loader.source", ports.WithAttribute("location", location))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	reader, err := l.opener.Open(ctx, location)
	if err != nil {
		return nil, classify(domain.ErrSourceUnreadable, location, err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil && err == nil {
			err = domain.NewSourceError(domain.ErrSourceUnreadable, location,
				zerr.Wrap(cerr, "failed to close source"))
		}
	}()

	var n int64
	for {
		record, rerr := reader.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, classify(domain.ErrSourceUnreadable, location, rerr)
		}

		dst = append(dst, record)
		n++
		if n%l.settings.ProgressInterval == 0 {
			span.SetAttribute("records_read", n)
			_, _ = fmt.Fprintf(span, "Number of variants read: %d\n", n)
		}
	}

	span.SetAttribute("records_read", n)
	return dst, nil
}

// classify attributes err to location. Errors an adapter already classified
// keep their kind.
func classify(kind error, location string, err error) error {
	var srcErr *domain.SourceError
	if errors.As(err, &srcErr) {
		return err
	}
	return domain.NewSourceError(kind, location, err)
}
