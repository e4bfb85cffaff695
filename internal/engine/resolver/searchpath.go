package resolver

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const scopePrefix = "@"

// SearchPathScanner treats every entry of a single directory as a candidate package.
type SearchPathScanner struct {
	reader ports.PackageReader
}

// NewSearchPathScanner creates a new SearchPathScanner reading packages through reader.
func NewSearchPathScanner(reader ports.PackageReader) *SearchPathScanner {
	return &SearchPathScanner{reader: reader}
}

type candidate struct {
	dirName    string
	originPath string
	symlink    bool
}

// Scan lists dir and resolves each symlink or subdirectory as a package.
// Scoped directories are expanded one level into scope/child candidates.
//
// The first candidate claiming a name in listing order becomes canonical. Later candidates
// with the same name and a different real path are recorded as its duplicates.
// An unreadable dir yields an empty result.
func (s *SearchPathScanner) Scan(ctx context.Context, dir string, opts Options) (domain.ResolutionResult, error) {
	result := make(domain.ResolutionResult)

	realDir, ok := s.reader.RealPath(dir)
	if !ok {
		return result, nil
	}

	candidates := s.listCandidates(realDir)

	resolved := make([]*domain.DependencyResolution, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolved[i] = s.resolveCandidate(c, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "search path scan interrupted"), "path", dir)
	}

	for _, res := range resolved {
		if res == nil {
			continue
		}
		if canonical, exists := result[res.Name]; exists {
			canonical.AddDuplicate(res.Revision())
			continue
		}
		result[res.Name] = res
	}

	return result, nil
}

func (s *SearchPathScanner) listCandidates(dir string) []candidate {
	entries, err := s.reader.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []candidate
	for _, entry := range entries {
		switch {
		case entry.Name == domain.StoreDirName || strings.HasPrefix(entry.Name, "."):
			continue
		case entry.IsSymlink:
			out = append(out, candidate{dirName: entry.Name, originPath: filepath.Join(dir, entry.Name), symlink: true})
		case !entry.IsDir:
			continue
		case strings.HasPrefix(entry.Name, scopePrefix):
			out = append(out, s.listScope(dir, entry.Name)...)
		default:
			out = append(out, candidate{dirName: entry.Name, originPath: filepath.Join(dir, entry.Name)})
		}
	}
	return out
}

func (s *SearchPathScanner) listScope(dir, scope string) []candidate {
	scopeDir := filepath.Join(dir, scope)
	entries, err := s.reader.ReadDir(scopeDir)
	if err != nil {
		return nil
	}

	var out []candidate
	for _, entry := range entries {
		if !entry.IsDir && !entry.IsSymlink {
			continue
		}
		out = append(out, candidate{
			dirName:    scope + "/" + entry.Name,
			originPath: filepath.Join(scopeDir, entry.Name),
			symlink:    entry.IsSymlink,
		})
	}
	return out
}

// resolveCandidate reads the package behind c. opts.Include sees the resolved package name,
// never the directory name.
func (s *SearchPathScanner) resolveCandidate(c candidate, opts Options) *domain.DependencyResolution {
	realPath, resolvable := s.reader.RealPath(c.originPath)
	path := c.originPath
	if resolvable {
		path = realPath
	}

	name := strings.ToLower(c.dirName)
	version := ""

	manifest := s.reader.ReadManifest(path)
	switch {
	case manifest != nil:
		if manifest.Name != "" {
			name = manifest.Name
		}
		version = manifest.Version
	case !resolvable || !c.symlink:
		return nil
	}

	if !opts.include(name) {
		return nil
	}

	return &domain.DependencyResolution{
		Source:     domain.SourceSearchPath,
		Name:       name,
		Version:    version,
		Path:       path,
		OriginPath: c.originPath,
		Depth:      0,
	}
}
