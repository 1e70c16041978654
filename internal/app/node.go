package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sitecache/internal/adapters/blob"      //nolint:depguard // Wired in app layer
	"go.trai.ch/sitecache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sitecache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/sitecache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/sitecache/internal/core/domain"
	"go.trai.ch/sitecache/internal/core/ports"
	"go.trai.ch/sitecache/internal/engine/sitecache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			sitecache.NodeID,
			blob.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cache, err := graft.Dep[*sitecache.Cache](ctx)
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

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return New(cache, store, tracer, log, settings), nil
}
