package sitecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/sitecache/internal/engine/loader"
)

// NodeID is the unique identifier for the cache Graft node.
const NodeID graft.ID = "engine.sitecache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			recordLoader, err := graft.Dep[ports.RecordLoader](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(recordLoader, tracer, log), nil
		},
	})
}
