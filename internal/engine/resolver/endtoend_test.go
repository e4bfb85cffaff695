package resolver_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autolink/internal/adapters/fs"
	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/engine/resolver"
)

// R depends on A, A depends on B, and B is installed both in the store of A and in the store of R.
func TestScanners_MergedStoreAndGraph(t *testing.T) {
	root := realTempDir(t)
	writeManifest(t, root, pkg("r", "1.0.0", "a"))
	writeManifest(t, filepath.Join(root, store("a")), pkg("a", "1.0.0", "b"))
	writeManifest(t, filepath.Join(root, store("a", "b")), pkg("b", "1.0.0"))
	writeManifest(t, filepath.Join(root, store("b")), pkg("b", "2.0.0"))

	reader := fs.NewReader()
	ctx := context.Background()

	flat, err := resolver.NewSearchPathScanner(reader).
		Scan(ctx, filepath.Join(root, domain.StoreDirName), resolver.Options{})
	require.NoError(t, err)
	graph, err := resolver.NewRecursiveScanner(reader).Scan(ctx, root, resolver.Options{})
	require.NoError(t, err)

	result := domain.MergeResults([]domain.ResolutionResult{flat, graph}, nil)

	a := result["a"]
	require.NotNil(t, a)
	assert.Equal(t, 0, a.Depth)
	assert.Equal(t, filepath.Join(root, store("a")), a.Path)
	assert.Empty(t, a.Duplicates)

	b := result["b"]
	require.NotNil(t, b)
	assert.Equal(t, 0, b.Depth)
	assert.Equal(t, filepath.Join(root, store("b")), b.Path)
	assert.Equal(t, "2.0.0", b.Version)
	require.Len(t, b.Duplicates, 1)
	assert.Equal(t, filepath.Join(root, store("a", "b")), b.Duplicates[0].Path)
}
