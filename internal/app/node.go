package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autolink/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/autolink/internal/adapters/descriptor"         //nolint:depguard // Wired in app layer
	"go.trai.ch/autolink/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/autolink/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/autolink/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/autolink/internal/engine/linker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			linker.NodeID,
			descriptor.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	l, err := graft.Dep[*linker.Linker](ctx)
	if err != nil {
		return nil, err
	}

	descriptors, err := graft.Dep[ports.DescriptorReader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, l, descriptors, hasher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
