// Package sitecache holds the process-wide cache of known-sites interval indexes.
package sitecache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Cache maps keys to interval indexes, building each index at most once.
//
// Concurrent requests for a key that is not cached yet share a single build.
// Requests for different keys build independently. A failed build leaves no
// entry behind, so the next request for that key starts a fresh build.
// Entries are never evicted.
type Cache struct {
	loader ports.RecordLoader
	tracer ports.Tracer
	logger ports.Logger

	mu      sync.RWMutex
	entries map[string]*domain.IntervalIndex
	flights singleflight.Group

	hits     atomic.Int64
	builds   atomic.Int64
	failures atomic.Int64
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Entries  int
	Hits     int64
	Builds   int64
	Failures int64
}

// New creates an empty Cache.
func New(loader ports.RecordLoader, tracer ports.Tracer, logger ports.Logger) *Cache {
	return &Cache{
		loader:  loader,
		tracer:  tracer,
		logger:  logger,
		entries: make(map[string]*domain.IntervalIndex),
	}
}

// GetIndex returns the index for key, building it if no caller has yet.
//
// Every caller asking for the same key gets the same *domain.IntervalIndex.
// A build failure is returned as a *domain.BuildError to every caller that
// waited on that build. If ctx ends while waiting, GetIndex returns early
// but the build keeps running and its result is still cached.
func (c *Cache) GetIndex(ctx context.Context, key domain.Key) (*domain.IntervalIndex, error) {
	if key.IsZero() {
		return nil, domain.ErrInvalidKey
	}

	if idx, ok := c.Lookup(key); ok {
		c.hits.Add(1)
		return idx, nil
	}

	// The build is shared, so no single waiter may cancel it.
	buildCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(key.ID(), func() (any, error) {
		return c.build(buildCtx, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		idx, _ := res.Val.(*domain.IntervalIndex)
		return idx, nil
	case <-ctx.Done():
		return nil, zerr.With(zerr.Wrap(ctx.Err(), "stopped waiting for known-sites index"),
			"key", key.String())
	}
}

// Lookup returns the cached index for key without building it.
func (c *Cache) Lookup(key domain.Key) (*domain.IntervalIndex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.entries[key.ID()]
	return idx, ok
}

// Len returns the number of cached indexes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries:  c.Len(),
		Hits:     c.hits.Load(),
		Builds:   c.builds.Load(),
		Failures: c.failures.Load(),
	}
}

func (c *Cache) build(ctx context.Context, key domain.Key) (idx *domain.IntervalIndex, err error) {
	// A previous flight may have stored the entry after our lookup missed.
	if cached, ok := c.Lookup(key); ok {
		c.hits.Add(1)
		return cached, nil
	}

	ctx, span := c.tracer.Start(ctx, "sitecache.build", ports.WithAttribute("key", key.String()))
	defer span.End()
	defer func() {
		if err != nil {
			c.failures.Add(1)
			err = domain.NewBuildError(key, err)
			span.RecordError(err)
		}
	}()
	// A panicking source fails the build for every waiter instead of the process.
	defer zerr.Defer(func(perr error) {
		idx, err = nil, perr
	})

	records, err := c.loader.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	idx = domain.NewIntervalIndex(records)
	span.SetAttribute("records", int64(idx.Len()))

	c.mu.Lock()
	c.entries[key.ID()] = idx
	c.mu.Unlock()

	c.builds.Add(1)
	c.logger.Info(fmt.Sprintf("Built known-sites index for %s (%d records)", key, idx.Len()))

	return idx, nil
}
