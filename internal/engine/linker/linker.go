// Package linker merges the scanner results of a project and filters them into linkable modules.
package linker

import (
	"context"
	"fmt"
	"strconv"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/autolink/internal/engine/resolver"
	"golang.org/x/sync/errgroup"
)

// Linker discovers the dependencies of a project.
// Scan results are memoized, so resolving the same project repeatedly does not repeat file system walks.
type Linker struct {
	recursive  *resolver.RecursiveScanner
	searchPath *resolver.SearchPathScanner
	workspace  *resolver.WorkspaceScanner
	telemetry  ports.Telemetry
	cache      *Cache
}

// New creates a new Linker.
func New(
	recursive *resolver.RecursiveScanner,
	searchPath *resolver.SearchPathScanner,
	workspace *resolver.WorkspaceScanner,
	telemetry ports.Telemetry,
) *Linker {
	return &Linker{
		recursive:  recursive,
		searchPath: searchPath,
		workspace:  workspace,
		telemetry:  telemetry,
		cache:      NewCache(),
	}
}

type scanJob struct {
	key  ScanKey
	scan func(ctx context.Context) (domain.ResolutionResult, error)
}

// ResolveDependencies runs every scanner of project and merges their results.
// Results are merged in a fixed order: search paths as configured, then the recursive scan,
// then workspace declarations.
func (l *Linker) ResolveDependencies(ctx context.Context, project *domain.Project) (domain.ResolutionResult, error) {
	jobs := l.jobs(project)
	results := make([]domain.ResolutionResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := l.runScan(gctx, job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.MergeResults(results, make(domain.ResolutionResult)), nil
}

// jobs lists the scans of project. Scans ignore the exclusion set; excluded packages are
// walked like any other and dropped only by FilterMap.
func (l *Linker) jobs(project *domain.Project) []scanJob {
	opts := resolver.Options{MaxDepth: project.EffectiveMaxDepth()}

	jobs := make([]scanJob, 0, len(project.SearchPaths)+2)
	for _, dir := range project.SearchPaths {
		jobs = append(jobs, scanJob{
			key: ScanKey{Kind: ScanSearchPath, Path: dir},
			scan: func(ctx context.Context) (domain.ResolutionResult, error) {
				return l.searchPath.Scan(ctx, dir, opts)
			},
		})
	}

	jobs = append(jobs, scanJob{
		key: ScanKey{
			Kind:   ScanRecursive,
			Path:   project.Root,
			Params: []string{strconv.Itoa(opts.MaxDepth)},
		},
		scan: func(ctx context.Context) (domain.ResolutionResult, error) {
			return l.recursive.Scan(ctx, project.Root, opts)
		},
	})

	declared := make([]string, 0, len(project.Declarations))
	for name, root := range project.Declarations {
		declared = append(declared, name+"="+root)
	}
	jobs = append(jobs, scanJob{
		key: ScanKey{
			Kind:   ScanWorkspace,
			Path:   project.Root,
			Params: sortedParams(declared),
		},
		scan: func(ctx context.Context) (domain.ResolutionResult, error) {
			return l.workspace.Scan(ctx, project.Root, project.Declarations, opts)
		},
	})

	return jobs
}

func (l *Linker) runScan(ctx context.Context, job scanJob) (domain.ResolutionResult, error) {
	ctx, vertex := l.telemetry.Record(ctx, fmt.Sprintf("scan %s %s", job.key.Kind, job.key.Path))

	res, hit, err := l.cache.Get(job.key, func() (domain.ResolutionResult, error) {
		return job.scan(ctx)
	})
	if err != nil {
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		return nil, err
	}

	if hit {
		vertex.Cached()
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d packages", len(res)))
	vertex.Complete(nil)
	return res, nil
}

// FindModules resolves project and keeps the dependencies transform accepts.
// Excluded packages never reach transform.
func FindModules[T any](
	ctx context.Context,
	l *Linker,
	project *domain.Project,
	transform Transform[T],
) (map[string]*T, error) {
	result, err := l.ResolveDependencies(ctx, project)
	if err != nil {
		return nil, err
	}

	ctx, vertex := l.telemetry.Record(ctx, "filter "+project.Root)
	modules, err := FilterMap(ctx, result, FilterOptions{
		Exclude:     project.IsExcluded,
		Concurrency: project.Concurrency,
	}, transform)
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d modules", len(modules)))
	vertex.Complete(err)
	return modules, err
}
