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

func TestWorkspaceScanner_Scan(t *testing.T) {
	root := realTempDir(t)
	elsewhere := realTempDir(t)
	writeManifest(t, filepath.Join(root, "packages", "local"), pkg("local", "1.2.3"))
	writeManifest(t, elsewhere, pkg("absolute", "4.5.6"))

	scanner := resolver.NewWorkspaceScanner(fs.NewReader())
	result, err := scanner.Scan(context.Background(), root, map[string]string{
		"local":    "packages/local",
		"absolute": elsewhere,
		"missing":  "packages/missing",
		"empty":    "",
		"excluded": "packages/local",
	}, resolver.Options{Include: func(name string) bool { return name != "excluded" }})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"absolute", "local"}, result.Names())

	local := result["local"]
	assert.Equal(t, domain.SourceWorkspaceDeclared, local.Source)
	assert.Equal(t, filepath.Join(root, "packages", "local"), local.Path)
	assert.Equal(t, "1.2.3", local.Version)
	assert.Equal(t, 0, local.Depth)
	assert.Empty(t, local.Duplicates)

	assert.Equal(t, elsewhere, result["absolute"].Path)
	assert.Equal(t, "4.5.6", result["absolute"].Version)
}

func TestWorkspaceScanner_Scan_NoDeclarations(t *testing.T) {
	result, err := resolver.NewWorkspaceScanner(fs.NewReader()).
		Scan(context.Background(), realTempDir(t), nil, resolver.Options{})
	require.NoError(t, err)
	assert.Empty(t, result)
}
