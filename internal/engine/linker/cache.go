package linker

import (
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/autolink/internal/core/domain"
	"golang.org/x/sync/singleflight"
)

// ScanKind identifies which scanner produced a cached result.
type ScanKind string

const (
	// ScanSearchPath is a flat scan of one search path.
	ScanSearchPath ScanKind = "search-path"
	// ScanRecursive is the dependency graph walk from the project root.
	ScanRecursive ScanKind = "recursive"
	// ScanWorkspace resolves the declared workspace packages.
	ScanWorkspace ScanKind = "workspace"
)

// ScanKey identifies a scan. Params holds whatever else shapes the result, such as the
// depth cap, so that differently bounded scans of one path never share an entry.
type ScanKey struct {
	Kind   ScanKind
	Path   string
	Params []string
}

func (k ScanKey) hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(k.Kind))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(k.Path)
	for _, p := range k.Params {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(p)
	}
	return d.Sum64()
}

// Cache memoizes scan results for the lifetime of a process run.
// Concurrent requests for the same key share a single scan.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]domain.ResolutionResult

	requestGroup singleflight.Group
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]domain.ResolutionResult)}
}

// Get returns the result for key, running scan on a miss. The returned result is a copy
// the caller may mutate. hit reports whether the result came from an earlier scan.
// Failed scans are not memoized.
func (c *Cache) Get(
	key ScanKey,
	scan func() (domain.ResolutionResult, error),
) (result domain.ResolutionResult, hit bool, err error) {
	id := key.hash()

	c.mu.RLock()
	cached, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), true, nil
	}

	v, err, _ := c.requestGroup.Do(strconv.FormatUint(id, 16), func() (any, error) {
		c.mu.RLock()
		cached, ok := c.entries[id]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		res, err := scan()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[id] = res
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.(domain.ResolutionResult).Clone(), false, nil
}

// Len returns the number of memoized scans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func sortedParams(values ...[]string) []string {
	var out []string
	for _, v := range values {
		sorted := slices.Clone(v)
		slices.Sort(sorted)
		out = append(out, sorted...)
		out = append(out, "")
	}
	return out
}
