package linker_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/engine/linker"
)

func sampleResult() domain.ResolutionResult {
	return domain.ResolutionResult{
		"a": {Source: domain.SourceSearchPath, Name: "a", Version: "1.0.0", Path: "/store/a", OriginPath: "/store/a"},
	}
}

func TestCache_Get(t *testing.T) {
	cache := linker.NewCache()
	key := linker.ScanKey{Kind: linker.ScanSearchPath, Path: "/store"}

	var calls int
	scan := func() (domain.ResolutionResult, error) {
		calls++
		return sampleResult(), nil
	}

	first, hit, err := cache.Get(key, scan)
	require.NoError(t, err)
	assert.False(t, hit)

	// Mutating a returned result must not leak into the cache.
	first["a"].Version = "mutated"
	first["b"] = &domain.DependencyResolution{Name: "b"}

	second, hit, err := cache.Get(key, scan)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sampleResult(), second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Get_DistinctKeys(t *testing.T) {
	cache := linker.NewCache()
	scan := func() (domain.ResolutionResult, error) { return sampleResult(), nil }

	keys := []linker.ScanKey{
		{Kind: linker.ScanSearchPath, Path: "/p"},
		{Kind: linker.ScanRecursive, Path: "/p"},
		{Kind: linker.ScanRecursive, Path: "/p", Params: []string{"4"}},
		{Kind: linker.ScanWorkspace, Path: "/p"},
	}
	for _, key := range keys {
		_, hit, err := cache.Get(key, scan)
		require.NoError(t, err)
		assert.False(t, hit, "key %+v", key)
	}
	assert.Equal(t, len(keys), cache.Len())
}

func TestCache_Get_ErrorNotMemoized(t *testing.T) {
	cache := linker.NewCache()
	key := linker.ScanKey{Kind: linker.ScanRecursive, Path: "/root"}
	boom := errors.New("boom")

	_, _, err := cache.Get(key, func() (domain.ResolutionResult, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())

	res, hit, err := cache.Get(key, func() (domain.ResolutionResult, error) { return sampleResult(), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, res, 1)
}

func TestCache_Get_ConcurrentRequestsShareScan(t *testing.T) {
	cache := linker.NewCache()
	key := linker.ScanKey{Kind: linker.ScanRecursive, Path: "/root"}

	var calls atomic.Int32
	release := make(chan struct{})
	scan := func() (domain.ResolutionResult, error) {
		calls.Add(1)
		<-release
		return sampleResult(), nil
	}

	const workers = 8
	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	for range workers {
		go func() {
			defer done.Done()
			started.Done()
			res, _, err := cache.Get(key, scan)
			assert.NoError(t, err)
			assert.Len(t, res, 1)
		}()
	}

	started.Wait()
	close(release)
	done.Wait()

	// Goroutines that arrived after the first scan finished are served from the memo.
	assert.Equal(t, int32(1), calls.Load())
}
