// Package domain contains the core domain models and the merge rules for dependency resolution.
package domain

import (
	"slices"
)

const (
	// ManifestFileName is the package-level descriptor file name.
	ManifestFileName = "package.json"

	// StoreDirName is the name of a package-store directory.
	StoreDirName = "node_modules"

	// DefaultMaxDepth caps the recursive scan.
	DefaultMaxDepth = 8

	// RootDepth is the depth sentinel of the scan root.
	RootDepth = -1
)

// ResolutionSource tags which scanner produced a resolution.
type ResolutionSource string

const (
	// SourceRecursiveResolution marks packages found by walking the dependency graph.
	SourceRecursiveResolution ResolutionSource = "recursive-resolution"
	// SourceSearchPath marks packages found by a flat scan of a package-store directory.
	SourceSearchPath ResolutionSource = "search-path"
	// SourceWorkspaceDeclared marks packages declared explicitly in the workspace configuration.
	SourceWorkspaceDeclared ResolutionSource = "workspace-declared"
)

// DependencyRevision is an occurrence of a package that lost the canonical slot.
type DependencyRevision struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version" yaml:"version"`
	Path       string `json:"path" yaml:"path"`
	OriginPath string `json:"originPath" yaml:"originPath"`
}

// DependencyResolution is one discovered package occurrence.
type DependencyResolution struct {
	// Source is the scanner that produced this resolution.
	Source ResolutionSource `json:"source" yaml:"source"`

	// Name is the package name. It is unique within a ResolutionResult.
	Name string `json:"name" yaml:"name"`

	// Version is the declared version, empty if unknown.
	Version string `json:"version" yaml:"version"`

	// Path is the symlink-resolved location of record.
	Path string `json:"path" yaml:"path"`

	// OriginPath is the location as first encountered, possibly a symlink.
	OriginPath string `json:"originPath" yaml:"originPath"`

	// Duplicates holds the other occurrences of the same package name.
	// It stays nil until at least one duplicate exists.
	Duplicates []DependencyRevision `json:"duplicates" yaml:"duplicates"`

	// Depth is the BFS distance from the scan root.
	Depth int `json:"depth" yaml:"depth"`
}

// Revision returns the identifying fields of the resolution as a DependencyRevision.
func (r *DependencyResolution) Revision() DependencyRevision {
	return DependencyRevision{
		Name:       r.Name,
		Version:    r.Version,
		Path:       r.Path,
		OriginPath: r.OriginPath,
	}
}

// WithRevision returns a copy of the resolution located at the given revision.
// The copy keeps the source and depth but carries no duplicates.
func (r *DependencyResolution) WithRevision(rev DependencyRevision) *DependencyResolution {
	return &DependencyResolution{
		Source:     r.Source,
		Name:       rev.Name,
		Version:    rev.Version,
		Path:       rev.Path,
		OriginPath: rev.OriginPath,
		Depth:      r.Depth,
	}
}

// HasRevisionAt reports whether path is already recorded as the canonical or a duplicate location.
func (r *DependencyResolution) HasRevisionAt(path string) bool {
	if r.Path == path {
		return true
	}
	return slices.ContainsFunc(r.Duplicates, func(d DependencyRevision) bool {
		return d.Path == path
	})
}

// AddDuplicate records rev as a duplicate unless its location is already recorded.
// It reports whether rev was added.
func (r *DependencyResolution) AddDuplicate(rev DependencyRevision) bool {
	if r.HasRevisionAt(rev.Path) {
		return false
	}
	r.Duplicates = append(r.Duplicates, rev)
	return true
}

// ResolutionResult maps a package name to its canonical resolution.
type ResolutionResult map[string]*DependencyResolution

// Names returns the package names in sorted order.
func (r ResolutionResult) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WithDuplicates returns the sorted names of resolutions that carry at least one duplicate.
func (r ResolutionResult) WithDuplicates() []string {
	var names []string
	for name, res := range r {
		if len(res.Duplicates) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Clone returns a deep copy of the result.
func (r ResolutionResult) Clone() ResolutionResult {
	if r == nil {
		return nil
	}
	out := make(ResolutionResult, len(r))
	for name, res := range r {
		if res == nil {
			continue
		}
		c := *res
		if res.Duplicates != nil {
			c.Duplicates = slices.Clone(res.Duplicates)
		}
		out[name] = &c
	}
	return out
}
