package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/adapters/blob"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/adapters/vcf"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
)

// NodeID is the unique identifier for the loader Graft node.
const NodeID graft.ID = "engine.loader"

func init() {
	graft.Register(graft.Node[ports.RecordLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			vcf.NodeID,
			blob.NodeID,
			telemetry.TracerNodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (ports.RecordLoader, error) {
			opener, err := graft.Dep[ports.SourceOpener](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.PrecomputedStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(opener, store, tracer, settings), nil
		},
	})
}
