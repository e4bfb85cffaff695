package linker

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Transform turns a resolution into a module, or returns nil when the resolution is not one.
type Transform[T any] func(ctx context.Context, res *domain.DependencyResolution) (*T, error)

// FilterOptions configures FilterMap.
type FilterOptions struct {
	// Exclude reports names that are never passed to the transform.
	Exclude func(name string) bool

	// Concurrency bounds the number of transforms running at once. Zero means the number of CPUs.
	Concurrency int
}

// FilterMap applies transform to every canonical resolution in result and keeps the non-nil outputs.
//
// When a search-path resolution does not transform, each of its duplicates is tried in order and
// the first one that does wins. A failing transform only drops its own package: the map of
// successful transforms is returned along with the joined failures.
func FilterMap[T any](
	ctx context.Context,
	result domain.ResolutionResult,
	opts FilterOptions,
	transform Transform[T],
) (map[string]*T, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		modules  = make(map[string]*T)
		failures = make(map[string]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, name := range result.Names() {
		if opts.Exclude != nil && opts.Exclude(name) {
			continue
		}
		res := result[name]

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			module, err := transformWithFallback(gctx, res, transform)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[name] = zerr.With(fmt.Errorf("%w: %w", domain.ErrTransformFailed, err), "package", name)
				return nil
			}
			if module != nil {
				modules[name] = module
			}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "module filtering interrupted")
	}

	if len(failures) == 0 {
		return modules, nil
	}

	errs := make([]error, 0, len(failures))
	for _, name := range slices.Sorted(maps.Keys(failures)) {
		errs = append(errs, failures[name])
	}
	return modules, errors.Join(errs...)
}

func transformWithFallback[T any](
	ctx context.Context,
	res *domain.DependencyResolution,
	transform Transform[T],
) (*T, error) {
	module, err := transform(ctx, res)
	if err != nil || module != nil {
		return module, err
	}
	if res.Source != domain.SourceSearchPath {
		return nil, nil
	}

	for _, dup := range res.Duplicates {
		module, err := transform(ctx, res.WithRevision(dup))
		if err != nil || module != nil {
			return module, err
		}
	}
	return nil, nil
}
