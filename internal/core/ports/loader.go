package ports

import (
	"context"

	"go.trai.ch/sitecache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks

// RecordLoader materializes every record named by a key.
type RecordLoader interface {
	Load(ctx context.Context, key domain.Key) ([]domain.Record, error)
}

// IndexProvider returns the interval index for a key, building it on first use.
type IndexProvider interface {
	GetIndex(ctx context.Context, key domain.Key) (*domain.IntervalIndex, error)
}
