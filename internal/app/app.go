// Package app implements the application layer for autolink.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/autolink/internal/engine/linker"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	linker       *linker.Linker
	descriptors  ports.DescriptorReader
	hasher       ports.Hasher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	l *linker.Linker,
	descriptors ports.DescriptorReader,
	hasher ports.Hasher,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		linker:       l,
		descriptors:  descriptors,
		hasher:       hasher,
		logger:       logger,
	}
}

// Resolution is the merged dependency set of a project.
type Resolution struct {
	Project     *domain.Project
	Result      domain.ResolutionResult
	Fingerprint string
}

// Resolve discovers every dependency of the project containing cwd.
// Each package found in more than one location is reported as a warning.
func (a *App) Resolve(ctx context.Context, cwd string) (*Resolution, error) {
	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	result, err := a.resolve(ctx, project)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Project:     project,
		Result:      result,
		Fingerprint: a.hasher.Fingerprint(result),
	}, nil
}

// FindModules returns, per platform, the native modules of the project containing cwd.
// Without explicit platforms the configured ones are used.
//
// A package whose descriptor cannot be read is logged and left out; the other modules are still returned.
func (a *App) FindModules(
	ctx context.Context,
	cwd string,
	platforms []string,
) (map[string]map[string]*domain.ModuleDescriptor, error) {
	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(platforms) == 0 {
		platforms = project.Platforms
	}
	platforms = slices.Compact(slices.Sorted(slices.Values(platforms)))
	if len(platforms) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoPlatforms, "nothing to link"), "root", project.Root)
	}

	// Scans are memoized by the linker, so the per-platform passes below reuse this walk.
	if _, err := a.resolve(ctx, project); err != nil {
		return nil, err
	}

	modules := make(map[string]map[string]*domain.ModuleDescriptor, len(platforms))
	for _, platform := range platforms {
		found, err := linker.FindModules(ctx, a.linker, project,
			func(ctx context.Context, res *domain.DependencyResolution) (*domain.ModuleDescriptor, error) {
				return a.descriptors.Describe(ctx, res, platform)
			})
		if err != nil {
			if !errors.Is(err, domain.ErrTransformFailed) {
				return nil, zerr.With(zerr.Wrap(err, "failed to find modules"), "platform", platform)
			}
			a.logger.Error(err)
		}
		modules[platform] = found
		a.logger.Info(fmt.Sprintf("found %d modules for %s", len(found), platform))
	}

	return modules, nil
}

func (a *App) resolve(ctx context.Context, project *domain.Project) (domain.ResolutionResult, error) {
	result, err := a.linker.ResolveDependencies(ctx, project)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve dependencies"), "root", project.Root)
	}
	a.warnDuplicates(result)
	return result, nil
}

func (a *App) warnDuplicates(result domain.ResolutionResult) {
	for _, name := range result.WithDuplicates() {
		res := result[name]
		paths := make([]string, 0, len(res.Duplicates))
		for _, dup := range res.Duplicates {
			paths = append(paths, dup.Path)
		}
		a.logger.Warn(fmt.Sprintf("multiple revisions found for %q: using %s, ignoring %s",
			name, res.Path, strings.Join(paths, ", ")))
	}
}
