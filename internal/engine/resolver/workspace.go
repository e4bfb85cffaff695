package resolver

import (
	"context"
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
)

// WorkspaceScanner resolves packages declared by name and root in the project configuration.
type WorkspaceScanner struct {
	reader ports.PackageReader
}

// NewWorkspaceScanner creates a new WorkspaceScanner reading packages through reader.
func NewWorkspaceScanner(reader ports.PackageReader) *WorkspaceScanner {
	return &WorkspaceScanner{reader: reader}
}

// Scan resolves each declared root against root. Relative roots are joined onto the real path
// of root. Declarations whose root does not resolve are dropped.
func (s *WorkspaceScanner) Scan(
	ctx context.Context,
	root string,
	declarations map[string]string,
	opts Options,
) (domain.ResolutionResult, error) {
	result := make(domain.ResolutionResult)
	if len(declarations) == 0 {
		return result, nil
	}

	realRoot, ok := s.reader.RealPath(root)
	if !ok {
		realRoot = root
	}

	for _, name := range slices.Sorted(maps.Keys(declarations)) {
		if err := ctx.Err(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "workspace scan interrupted"), "root", root)
		}

		declared := declarations[name]
		if declared == "" || !opts.include(name) {
			continue
		}

		originPath := declared
		if !filepath.IsAbs(declared) {
			originPath = filepath.Join(realRoot, declared)
		}

		path, ok := s.reader.RealPath(originPath)
		if !ok {
			continue
		}

		version := ""
		if manifest := s.reader.ReadManifest(path); manifest != nil {
			version = manifest.Version
		}

		result[name] = &domain.DependencyResolution{
			Source:     domain.SourceWorkspaceDeclared,
			Name:       name,
			Version:    version,
			Path:       path,
			OriginPath: originPath,
			Depth:      0,
		}
	}

	return result, nil
}
