package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/adapters/config"
	"go.trai.ch/sitecache/internal/adapters/logger"
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewTracer(settings.Telemetry, log), nil
		},
	})
}
