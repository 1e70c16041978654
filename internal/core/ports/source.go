package ports

import (
	"context"
	"io"

	"go.trai.ch/sitecache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// RecordReader is an open raw source.
type RecordReader interface {
	// Read returns the next record, or io.EOF once the source is drained.
	// A decode failure is reported as a *domain.SourceError of kind
	// domain.ErrRecordMalformed.
	Read() (domain.Record, error)
	io.Closer
}

// SourceOpener opens raw known-sites sources by location.
type SourceOpener interface {
	Open(ctx context.Context, location string) (RecordReader, error)
}
