package vcf

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/core/ports"
)

// NodeID is the unique identifier for the VCF source opener Graft node.
const NodeID graft.ID = "adapter.vcf"

func init() {
	graft.Register(graft.Node[ports.SourceOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceOpener, error) {
			return NewOpener(), nil
		},
	})
}
