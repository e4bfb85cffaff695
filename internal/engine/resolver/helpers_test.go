package resolver_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/autolink/internal/core/domain"
)

// realTempDir returns a temp dir with symlinks in its own path resolved (e.g. /tmp on macOS).
func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeManifest(t *testing.T, dir string, manifest domain.Manifest) {
	t.Helper()
	data, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ManifestFileName), data, 0o600))
}

func pkg(name, version string, deps ...string) domain.Manifest {
	m := domain.Manifest{Name: name, Version: version}
	if len(deps) > 0 {
		m.Dependencies = make(map[string]string, len(deps))
		for _, dep := range deps {
			m.Dependencies[dep] = "*"
		}
	}
	return m
}

func store(parts ...string) string {
	out := make([]string, 0, len(parts)*2)
	for _, p := range parts {
		out = append(out, domain.StoreDirName, p)
	}
	return filepath.Join(out...)
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o750))
	require.NoError(t, os.Symlink(target, link))
}
