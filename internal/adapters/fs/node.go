package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autolink/internal/core/ports"
)

const (
	ReaderNodeID graft.ID = "adapter.fs.reader"
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	// Reader Node
	graft.Register(graft.Node[ports.PackageReader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PackageReader, error) {
			return NewReader(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
