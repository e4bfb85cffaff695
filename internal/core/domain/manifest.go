package domain

import (
	"maps"
	"slices"
)

// PeerDependencyMeta holds the per-peer metadata of a manifest.
type PeerDependencyMeta struct {
	Optional bool `json:"optional"`
}

// Manifest is the parsed package-level descriptor.
type Manifest struct {
	Name                 string                        `json:"name"`
	Version              string                        `json:"version"`
	Dependencies         map[string]string             `json:"dependencies"`
	DevDependencies      map[string]string             `json:"devDependencies"`
	PeerDependencies     map[string]string             `json:"peerDependencies"`
	PeerDependenciesMeta map[string]PeerDependencyMeta `json:"peerDependenciesMeta"`
}

// DependencyNames returns the sorted names of the dependencies that should be followed.
//
// Regular dependencies are always included. Dev dependencies are included only for the
// traversal root. Peer dependencies are included unless they are already regular
// dependencies or are marked optional, since package managers do not always install those.
func (m *Manifest) DependencyNames(isRoot bool) []string {
	names := make(map[string]struct{}, len(m.Dependencies))
	for name := range m.Dependencies {
		names[name] = struct{}{}
	}
	if isRoot {
		for name := range m.DevDependencies {
			names[name] = struct{}{}
		}
	}
	for name := range m.PeerDependencies {
		if _, direct := m.Dependencies[name]; direct {
			continue
		}
		if meta, ok := m.PeerDependenciesMeta[name]; ok && meta.Optional {
			continue
		}
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

// DirEntry is a directory listing entry relevant to package discovery.
type DirEntry struct {
	Name      string
	IsDir     bool
	IsSymlink bool
}
