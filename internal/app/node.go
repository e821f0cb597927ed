package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/intern/internal/adapters/clock"              //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/intern/internal/core/ports"
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
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			clock.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			fs.SourceNodeID,
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
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	clk, err := graft.Dep[ports.Clock](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.LineSource](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, clk, log, tracer, tel, source), nil
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

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
