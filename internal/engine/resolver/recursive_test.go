package resolver_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autolink/internal/adapters/fs"
	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/engine/resolver"
)

func scanRecursive(t *testing.T, root string, opts resolver.Options) domain.ResolutionResult {
	t.Helper()
	result, err := resolver.NewRecursiveScanner(fs.NewReader()).Scan(context.Background(), root, opts)
	require.NoError(t, err)
	return result
}

func TestRecursiveScanner_Scan_Transitive(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.1.0", "b"))
	writeManifest(t, filepath.Join(root, store("a", "b")), pkg("b", "2.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	require.Len(t, result, 2)

	a := result["a"]
	require.NotNil(t, a)
	assert.Equal(t, domain.SourceRecursiveResolution, a.Source)
	assert.Equal(t, "1.1.0", a.Version)
	assert.Equal(t, filepath.Join(root, store("a")), a.Path)
	assert.Equal(t, 0, a.Depth)

	b := result["b"]
	require.NotNil(t, b)
	assert.Equal(t, "2.0.0", b.Version)
	assert.Equal(t, filepath.Join(root, store("a", "b")), b.Path)
	assert.Equal(t, 1, b.Depth)
	assert.Empty(t, b.Duplicates)
}

func TestRecursiveScanner_Scan_AncestorStore(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0", "b"))
	writeManifest(t, filepath.Join(root, store("b")), pkg("b", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	require.Contains(t, result, "b")
	assert.Equal(t, filepath.Join(root, store("b")), result["b"].Path)
	assert.Equal(t, 1, result["b"].Depth)
}

func TestRecursiveScanner_Scan_ShallowestWins(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a", "c"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0", "x"))
	writeManifest(t, filepath.Join(root, store("a", "x")), pkg("x", "1.0.0"))
	writeManifest(t, filepath.Join(root, store("c")), pkg("c", "1.0.0", "d"))
	writeManifest(t, filepath.Join(root, store("c", "d")), pkg("d", "1.0.0", "e"))
	writeManifest(t, filepath.Join(root, store("c", "d", "e")), pkg("e", "1.0.0", "x"))
	writeManifest(t, filepath.Join(root, store("c", "d", "e", "x")), pkg("x", "3.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	x := result["x"]
	require.NotNil(t, x)
	assert.Equal(t, filepath.Join(root, store("a", "x")), x.Path)
	assert.Equal(t, 1, x.Depth)
	require.Len(t, x.Duplicates, 1)
	assert.Equal(t, filepath.Join(root, store("c", "d", "e", "x")), x.Duplicates[0].Path)
	assert.Equal(t, "3.0.0", x.Duplicates[0].Version)
}

func TestRecursiveScanner_Scan_Cycle(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0", "b"))
	writeManifest(t, filepath.Join(root, store("b")), pkg("b", "1.0.0", "a"))
	// b reaches a again through a symlink in its own store.
	symlink(t, filepath.Join(root, store("a")), filepath.Join(root, store("b", "a")))

	result := scanRecursive(t, root, resolver.Options{})

	require.Len(t, result, 2)
	assert.Equal(t, 0, result["a"].Depth)
	assert.Empty(t, result["a"].Duplicates, "the same real path is never recorded as a duplicate")
	assert.Equal(t, 1, result["b"].Depth)
}

func TestRecursiveScanner_Scan_DepthCap(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0", "b"))
	writeManifest(t, filepath.Join(root, store("b")), pkg("b", "1.0.0", "c"))
	writeManifest(t, filepath.Join(root, store("c")), pkg("c", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{MaxDepth: 2})

	assert.ElementsMatch(t, []string{"a", "b"}, result.Names())
}

func TestRecursiveScanner_Scan_DevDependenciesOnlyAtRoot(t *testing.T) {
	root := realTempDir(t)
	rootManifest := pkg("app", "1.0.0", "a")
	rootManifest.DevDependencies = map[string]string{"tool": "*"}
	writeManifest(t, root, rootManifest)

	aManifest := pkg("a", "1.0.0")
	aManifest.DevDependencies = map[string]string{"a-tool": "*"}
	writeManifest(t, filepath.Join(root, store("a")), aManifest)
	writeManifest(t, filepath.Join(root, store("tool")), pkg("tool", "1.0.0"))
	writeManifest(t, filepath.Join(root, store("a-tool")), pkg("a-tool", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	assert.ElementsMatch(t, []string{"a", "tool"}, result.Names())
}

func TestRecursiveScanner_Scan_OptionalPeerSkipped(t *testing.T) {
	root := realTempDir(t)
	rootManifest := pkg("app", "1.0.0")
	rootManifest.PeerDependencies = map[string]string{"optional-peer": "*", "peer": "*"}
	rootManifest.PeerDependenciesMeta = map[string]domain.PeerDependencyMeta{
		"optional-peer": {Optional: true},
	}
	writeManifest(t, root, rootManifest)
	writeManifest(t, filepath.Join(root, store("optional-peer")), pkg("optional-peer", "1.0.0"))
	writeManifest(t, filepath.Join(root, store("peer")), pkg("peer", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	assert.Equal(t, []string{"peer"}, result.Names())
}

func TestRecursiveScanner_Scan_Include(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a", "skipped"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0"))
	writeManifest(t, filepath.Join(root, store("skipped")), pkg("skipped", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{
		Include: func(name string) bool { return name != "skipped" },
	})

	assert.Equal(t, []string{"a"}, result.Names())
}

func TestRecursiveScanner_Scan_WideLevel(t *testing.T) {
	root := realTempDir(t)
	const count = 200
	direct := make([]string, 0, count)
	for i := range count {
		name := fmt.Sprintf("dep-%03d", i)
		direct = append(direct, name)
		writeManifest(t, filepath.Join(root, store(name)), pkg(name, "1.0.0", "leaf"))
	}
	writeManifest(t, root, pkg("app", "1.0.0", direct...))
	writeManifest(t, filepath.Join(root, store("leaf")), pkg("leaf", "1.0.0"))

	result := scanRecursive(t, root, resolver.Options{})

	require.Len(t, result, count+1)
	for _, name := range direct {
		assert.Equal(t, 0, result[name].Depth, name)
	}
	assert.Equal(t, 1, result["leaf"].Depth)
	assert.Empty(t, result["leaf"].Duplicates)
}

func TestRecursiveScanner_Scan_MissingDependency(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a", "broken", "not-installed"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0"))
	// A broken link in the store is skipped like a missing package.
	symlink(t, filepath.Join(root, "nowhere"), filepath.Join(root, store("broken")))

	result := scanRecursive(t, root, resolver.Options{})

	assert.Equal(t, []string{"a"}, result.Names())
}

func TestRecursiveScanner_Scan_MissingRoot(t *testing.T) {
	result := scanRecursive(t, filepath.Join(realTempDir(t), "missing"), resolver.Options{})

	assert.Empty(t, result)
}

func TestRecursiveScanner_Scan_Deterministic(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a", "b", "c"))
	for _, name := range []string{"a", "b", "c"} {
		writeManifest(t, filepath.Join(root, store(name)), pkg(name, "1.0.0", "shared"))
		writeManifest(t, filepath.Join(root, store(name, "shared")), pkg("shared", name))
	}

	first := scanRecursive(t, root, resolver.Options{})
	for range 5 {
		assert.Equal(t, first, scanRecursive(t, root, resolver.Options{}))
	}

	shared := first["shared"]
	require.NotNil(t, shared)
	assert.Equal(t, filepath.Join(root, store("a", "shared")), shared.Path)
	require.Len(t, shared.Duplicates, 2)
	assert.Equal(t, filepath.Join(root, store("b", "shared")), shared.Duplicates[0].Path)
	assert.Equal(t, filepath.Join(root, store("c", "shared")), shared.Duplicates[1].Path)
}

func TestRecursiveScanner_Scan_Canceled(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("app", "1.0.0", "a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.NewRecursiveScanner(fs.NewReader()).Scan(ctx, root, resolver.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
