package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autolink/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autolink/internal/core/ports"
)

const (
	// RecursiveNodeID is the unique identifier for the recursive scanner Graft node.
	RecursiveNodeID graft.ID = "engine.resolver.recursive"
	// SearchPathNodeID is the unique identifier for the search path scanner Graft node.
	SearchPathNodeID graft.ID = "engine.resolver.searchpath"
	// WorkspaceNodeID is the unique identifier for the workspace scanner Graft node.
	WorkspaceNodeID graft.ID = "engine.resolver.workspace"
)

func init() {
	graft.Register(graft.Node[*RecursiveScanner]{
		ID:        RecursiveNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ReaderNodeID},
		Run: func(ctx context.Context) (*RecursiveScanner, error) {
			reader, err := graft.Dep[ports.PackageReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecursiveScanner(reader), nil
		},
	})

	graft.Register(graft.Node[*SearchPathScanner]{
		ID:        SearchPathNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ReaderNodeID},
		Run: func(ctx context.Context) (*SearchPathScanner, error) {
			reader, err := graft.Dep[ports.PackageReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewSearchPathScanner(reader), nil
		},
	})

	graft.Register(graft.Node[*WorkspaceScanner]{
		ID:        WorkspaceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ReaderNodeID},
		Run: func(ctx context.Context) (*WorkspaceScanner, error) {
			reader, err := graft.Dep[ports.PackageReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewWorkspaceScanner(reader), nil
		},
	})
}
