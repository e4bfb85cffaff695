package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/autolink/internal/core/domain"
)

func TestManifest_DependencyNames(t *testing.T) {
	manifest := &domain.Manifest{
		Name:            "root",
		Dependencies:    map[string]string{"b": "*", "a": "*", "shared": "*"},
		DevDependencies: map[string]string{"dev-tool": "*"},
		PeerDependencies: map[string]string{
			"shared":        "*",
			"peer-required": "*",
			"peer-optional": "*",
		},
		PeerDependenciesMeta: map[string]domain.PeerDependencyMeta{
			"peer-optional": {Optional: true},
			"peer-required": {Optional: false},
		},
	}

	tests := []struct {
		name   string
		isRoot bool
		want   []string
	}{
		{
			name:   "root includes dev dependencies",
			isRoot: true,
			want:   []string{"a", "b", "dev-tool", "peer-required", "shared"},
		},
		{
			name:   "non-root skips dev dependencies",
			isRoot: false,
			want:   []string{"a", "b", "peer-required", "shared"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, manifest.DependencyNames(tt.isRoot))
		})
	}
}

func TestManifest_DependencyNames_OptionalPeerAlsoDirect(t *testing.T) {
	manifest := &domain.Manifest{
		Dependencies:         map[string]string{"x": "*"},
		PeerDependencies:     map[string]string{"x": "*"},
		PeerDependenciesMeta: map[string]domain.PeerDependencyMeta{"x": {Optional: true}},
	}

	assert.Equal(t, []string{"x"}, manifest.DependencyNames(false))
}

func TestManifest_DependencyNames_Empty(t *testing.T) {
	manifest := &domain.Manifest{Name: "empty"}

	assert.Empty(t, manifest.DependencyNames(true))
}
