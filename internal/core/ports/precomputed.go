package ports

import (
	"context"

	"go.trai.ch/sitecache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=precomputed.go -destination=mocks/mock_precomputed.go -package=mocks

// PrecomputedStore reads and writes serialized record collections.
type PrecomputedStore interface {
	// Read decodes the collection at location.
	Read(ctx context.Context, location string) ([]domain.Record, error)
	// Write atomically replaces the collection at location.
	Write(ctx context.Context, location string, records []domain.Record) error
}
