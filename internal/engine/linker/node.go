package linker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autolink/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/autolink/internal/engine/resolver"
)

// NodeID is the unique identifier for the linker Graft node.
const NodeID graft.ID = "engine.linker"

func init() {
	graft.Register(graft.Node[*Linker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.RecursiveNodeID,
			resolver.SearchPathNodeID,
			resolver.WorkspaceNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Linker, error) {
			recursive, err := graft.Dep[*resolver.RecursiveScanner](ctx)
			if err != nil {
				return nil, err
			}

			searchPath, err := graft.Dep[*resolver.SearchPathScanner](ctx)
			if err != nil {
				return nil, err
			}

			workspace, err := graft.Dep[*resolver.WorkspaceScanner](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(recursive, searchPath, workspace, telemetry), nil
		},
	})
}
