// Package app implements the application layer for sitecache.
package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/sitecache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	indexes  ports.IndexProvider
	store    ports.PrecomputedStore
	tracer   ports.Tracer
	logger   ports.Logger
	settings domain.Settings
}

// New creates a new App instance.
func New(
	indexes ports.IndexProvider,
	store ports.PrecomputedStore,
	tracer ports.Tracer,
	log ports.Logger,
	settings domain.Settings,
) *App {
	return &App{
		indexes:  indexes,
		store:    store,
		tracer:   tracer,
		logger:   log,
		settings: settings,
	}
}

// ResolveKey turns either a configured set name or an explicit list of
// sources into a key. Sources take precedence over the set.
func (a *App) ResolveKey(set string, sources []string) (domain.Key, error) {
	if len(sources) > 0 {
		return domain.NewKey(sources...)
	}
	if set == "" {
		return domain.Key{}, domain.ErrNoSourcesSpecified
	}
	return a.settings.ResolveSet(set)
}

// Query writes every record overlapping the given regions to w as
// tab-separated lines: contig, start, end, id, ref, alt.
// All regions are parsed before the index is loaded.
func (a *App) Query(ctx context.Context, key domain.Key, regions []string, w io.Writer) (err error) {
	intervals := make([]domain.Interval, 0, len(regions))
	for _, region := range regions {
		iv, err := domain.ParseInterval(region)
		if err != nil {
			return err
		}
		intervals = append(intervals, iv)
	}

	ctx, span := a.tracer.Start(ctx, "app.query", ports.WithAttribute("key", key.String()))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	idx, err := a.indexes.GetIndex(ctx, key)
	if err != nil {
		return err
	}

	matched := 0
	for _, iv := range intervals {
		for _, r := range idx.Query(iv) {
			if _, err := io.WriteString(w, formatRecord(r)); err != nil {
				return zerr.Wrap(err, "failed to write query results")
			}
			matched++
		}
	}
	span.SetAttribute("matched", matched)
	return nil
}

// ContigCount is the number of records on one contig.
type ContigCount struct {
	Contig  string
	Records int
}

// Report summarizes the index of one key.
type Report struct {
	Key     domain.Key
	Records int
	Contigs []ContigCount
}

// Stats builds (or reuses) the index for key and summarizes it.
func (a *App) Stats(ctx context.Context, key domain.Key) (Report, error) {
	idx, err := a.indexes.GetIndex(ctx, key)
	if err != nil {
		return Report{}, err
	}

	report := Report{Key: key, Records: idx.Len()}
	for _, contig := range idx.Contigs() {
		report.Contigs = append(report.Contigs, ContigCount{Contig: contig, Records: idx.ContigLen(contig)})
	}
	return report, nil
}

// Pack builds the index for key and writes it as a precomputed index to
// output, sorted by contig and position. It returns the number of records written.
func (a *App) Pack(ctx context.Context, key domain.Key, output string) (n int, err error) {
	if output == "" {
		return 0, zerr.Wrap(domain.ErrPackFailed, "no output given")
	}
	if slices.Contains(key.Locations(), output) {
		return 0, zerr.With(zerr.Wrap(domain.ErrPackFailed, "output would overwrite a source"), "output", output)
	}
	if !a.settings.IsPrecomputed(output) {
		a.logger.Warn(fmt.Sprintf("%s does not end in %s and will be read as a raw source",
			output, a.settings.PrecomputedExtension))
	}

	ctx, span := a.tracer.Start(ctx, "app.pack", ports.WithAttribute("output", output))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	idx, err := a.indexes.GetIndex(ctx, key)
	if err != nil {
		return 0, err
	}

	records := slices.Collect(idx.All())
	if err := a.store.Write(ctx, output, records); err != nil {
		return 0, err
	}

	a.logger.Info(fmt.Sprintf("Packed %d records into %s", len(records), output))
	return len(records), nil
}

// Warm builds the indexes of the named sets concurrently.
// It fails on the first set that cannot be resolved or built.
func (a *App) Warm(ctx context.Context, sets []string) error {
	if len(sets) == 0 {
		return domain.ErrNoSourcesSpecified
	}

	keys := make([]domain.Key, len(sets))
	for i, set := range sets {
		key, err := a.settings.ResolveSet(set)
		if err != nil {
			return err
		}
		keys[i] = key
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			idx, err := a.indexes.GetIndex(ctx, key)
			if err != nil {
				return zerr.With(err, "set", sets[i])
			}
			a.logger.Info(fmt.Sprintf("Warmed %s (%d records)", sets[i], idx.Len()))
			return nil
		})
	}
	return g.Wait()
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	return telemetry.Shutdown(ctx, a.tracer)
}

func formatRecord(r domain.Record) string {
	id := r.Variant.ID
	if id == "" {
		id = "."
	}
	alt := "."
	if len(r.Variant.Alt) > 0 {
		alt = strings.Join(r.Variant.Alt, ",")
	}
	return strings.Join([]string{
		r.Contig,
		strconv.FormatInt(r.Start, 10),
		strconv.FormatInt(r.End, 10),
		id,
		r.Variant.Ref,
		alt,
	}, "\t") + "\n"
}
