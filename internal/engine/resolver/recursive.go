package resolver

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RecursiveScanner discovers every package reachable from a root manifest.
type RecursiveScanner struct {
	reader ports.PackageReader
}

// NewRecursiveScanner creates a new RecursiveScanner reading packages through reader.
func NewRecursiveScanner(reader ports.PackageReader) *RecursiveScanner {
	return &RecursiveScanner{reader: reader}
}

// scanState is the per-call traversal state. It is never shared between scans.
type scanState struct {
	visited map[domain.InternedString]struct{}
	result  domain.ResolutionResult
}

// visit marks path as visited and reports whether it was new.
func (s *scanState) visit(path string) bool {
	key := domain.NewInternedString(path)
	if _, seen := s.visited[key]; seen {
		return false
	}
	s.visited[key] = struct{}{}
	return true
}

// Scan walks the dependency graph of root level by level.
//
// Each level is resolved concurrently and joined before the next one starts, so a package
// always gets its shallowest depth. Packages are queued once per real path, which bounds the
// walk on cycles. Reaching opts.MaxDepth silently stops discovery.
func (s *RecursiveScanner) Scan(ctx context.Context, root string, opts Options) (domain.ResolutionResult, error) {
	state := &scanState{
		visited: make(map[domain.InternedString]struct{}),
		result:  make(domain.ResolutionResult),
	}

	rootPath, ok := s.reader.RealPath(root)
	if !ok {
		return state.result, nil
	}
	state.visit(rootPath)

	queue := []*domain.DependencyResolution{{
		Path:       rootPath,
		OriginPath: root,
		Depth:      domain.RootDepth,
	}}

	for depth := 0; len(queue) > 0 && depth < opts.maxDepth(); depth++ {
		if err := ctx.Err(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "recursive scan interrupted"), "root", root)
		}

		found, err := s.resolveLevel(ctx, queue, depth, opts)
		if err != nil {
			return nil, err
		}

		queue = nil
		for _, res := range found {
			if prev, exists := state.result[res.Name]; exists {
				state.result[res.Name] = domain.MergeWithDuplicate(prev, res)
			} else {
				state.result[res.Name] = res
			}
			if state.visit(res.Path) {
				queue = append(queue, res)
			}
		}
	}

	return state.result, nil
}

// resolveLevel resolves the dependencies of every queued item concurrently.
// The returned slice is ordered by queue position, then by dependency name.
func (s *RecursiveScanner) resolveLevel(
	ctx context.Context,
	items []*domain.DependencyResolution,
	depth int,
	opts Options,
) ([]*domain.DependencyResolution, error) {
	perItem := make([][]*domain.DependencyResolution, len(items))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, item := range items {
		g.Go(func() error {
			perItem[i] = s.resolveItem(item, depth, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(perItem...), nil
}

func (s *RecursiveScanner) resolveItem(
	item *domain.DependencyResolution,
	depth int,
	opts Options,
) []*domain.DependencyResolution {
	chain := s.searchChain(item.Path)

	manifest := s.reader.ReadManifest(item.Path)
	if manifest == nil {
		return nil
	}

	var out []*domain.DependencyResolution
	for _, name := range manifest.DependencyNames(item.Depth == domain.RootDepth) {
		if !opts.include(name) {
			continue
		}
		if res := s.resolveDependency(chain, name, depth); res != nil {
			out = append(out, res)
		}
	}
	return out
}

// resolveDependency picks the first store in chain that holds name.
func (s *RecursiveScanner) resolveDependency(chain []string, name string, depth int) *domain.DependencyResolution {
	for _, storeDir := range chain {
		originPath := filepath.Join(storeDir, name)
		realPath, ok := s.reader.RealPath(originPath)
		if !ok {
			continue
		}

		version := ""
		if manifest := s.reader.ReadManifest(realPath); manifest != nil {
			version = manifest.Version
		}

		return &domain.DependencyResolution{
			Source:     domain.SourceRecursiveResolution,
			Name:       name,
			Version:    version,
			Path:       realPath,
			OriginPath: originPath,
			Depth:      depth,
		}
	}
	return nil
}

// searchChain lists the package stores visible from dir, nearest first: the store
// directory of dir and of each of its ancestors, skipping ancestors that are stores
// themselves. Only stores that exist are returned, as real paths.
func (s *RecursiveScanner) searchChain(dir string) []string {
	var chain []string
	current := dir
	for {
		if filepath.Base(current) != domain.StoreDirName {
			if store, ok := s.reader.RealPath(filepath.Join(current, domain.StoreDirName)); ok {
				if !slices.Contains(chain, store) {
					chain = append(chain, store)
				}
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return chain
		}
		current = parent
	}
}
