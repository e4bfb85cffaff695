package ports

import (
	"context"

	"go.trai.ch/autolink/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=descriptor_reader.go -destination=mocks/mock_descriptor_reader.go -package=mocks

// DescriptorReader decides whether a resolved package is a linkable native module for a platform.
type DescriptorReader interface {
	// Describe returns the module descriptor of res for platform, or nil when res is not
	// a native module for that platform.
	Describe(ctx context.Context, res *domain.DependencyResolution, platform string) (*domain.ModuleDescriptor, error)
}
