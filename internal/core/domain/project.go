package domain

import "slices"

// Project describes where and how to discover dependencies for one project.
type Project struct {
	// Root is the absolute project root holding the root manifest.
	Root string

	// SearchPaths are absolute package-store directories scanned flat, in order.
	SearchPaths []string

	// Exclude lists package names that are never linked.
	Exclude []string

	// Declarations maps a package name to its root, relative to Root or absolute.
	Declarations map[string]string

	// MaxDepth caps the recursive scan. Zero means DefaultMaxDepth.
	MaxDepth int

	// Concurrency bounds the per-candidate transform pool. Zero means the number of CPUs.
	Concurrency int

	// Platforms lists the target platforms modules are collected for.
	Platforms []string
}

// IsExcluded reports whether name is in the exclusion set.
func (p *Project) IsExcluded(name string) bool {
	return slices.Contains(p.Exclude, name)
}

// EffectiveMaxDepth returns MaxDepth, or DefaultMaxDepth when unset.
func (p *Project) EffectiveMaxDepth() int {
	if p.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}
