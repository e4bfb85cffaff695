// Package descriptor reads native module descriptors from resolved packages.
package descriptor

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DescriptorReader = (*Reader)(nil)

// file is the on-disk shape of a module descriptor.
type file struct {
	Platforms []string            `json:"platforms"`
	Modules   map[string][]string `json:"modules"`
}

// Reader implements ports.DescriptorReader on the local file system.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Describe reads the descriptor file of res. A package without the file, or whose descriptor
// does not list platform, is not a module for platform.
func (r *Reader) Describe(
	ctx context.Context,
	res *domain.DependencyResolution,
	platform string,
) (*domain.ModuleDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(res.Path, domain.DescriptorFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a resolved package directory
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read module descriptor"), "path", path)
	}

	var desc file
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidDescriptor, err.Error()), "path", path)
	}

	if !slices.Contains(desc.Platforms, platform) {
		return nil, nil
	}

	return &domain.ModuleDescriptor{
		Name:     res.Name,
		Version:  res.Version,
		Path:     res.Path,
		Platform: platform,
		Modules:  slices.Clone(desc.Modules[platform]),
	}, nil
}
