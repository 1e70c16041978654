// Package blob reads and writes precomputed known-sites indexes.
package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/zerr"
)

const fileScheme = "file://"

// Store implements ports.PrecomputedStore on the local filesystem.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Read decodes the precomputed index at location.
func (s *Store) Read(ctx context.Context, location string) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//nolint:gosec // reading user-named indexes is the point
	data, err := os.ReadFile(localPath(location))
	if err != nil {
		return nil, domain.NewSourceError(domain.ErrSourceUnreadable, location,
			zerr.Wrap(err, "failed to read precomputed index"))
	}

	records, err := Decode(data)
	if err != nil {
		return nil, domain.NewSourceError(domain.ErrPrecomputedIndexCorrupt, location, err)
	}
	return records, nil
}

// Write atomically replaces the file at location with the encoded records.
// The file is written to a temporary sibling and renamed into place.
func (s *Store) Write(ctx context.Context, location string, records []domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := localPath(location)
	data, err := Encode(records)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackFailed.Error()), "path", path)
	}

	if err := writeAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackFailed.Error()), "path", path)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sitecache-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func localPath(location string) string {
	return strings.TrimPrefix(location, fileScheme)
}
