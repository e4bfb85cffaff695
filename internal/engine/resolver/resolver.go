// Package resolver implements the dependency scanners: a breadth-first walk of the dependency
// graph, a flat scan of a package-store directory, and a resolver for declared workspace packages.
package resolver

import "go.trai.ch/autolink/internal/core/domain"

// Options configures a scan.
type Options struct {
	// Include filters package names. A nil Include accepts every name.
	Include func(name string) bool

	// MaxDepth caps the recursive scan. Zero means domain.DefaultMaxDepth.
	MaxDepth int
}

func (o Options) include(name string) bool {
	return o.Include == nil || o.Include(name)
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return domain.DefaultMaxDepth
	}
	return o.MaxDepth
}
