package blob

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/core/ports"
)

// NodeID is the unique identifier for the precomputed store Graft node.
const NodeID graft.ID = "adapter.blob"

func init() {
	graft.Register(graft.Node[ports.PrecomputedStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PrecomputedStore, error) {
			return NewStore(), nil
		},
	})
}
