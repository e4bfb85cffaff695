package domain

import (
	"path/filepath"
	"strings"
)

// MergeWithDuplicate resolves two resolutions of the same package name into one canonical record.
//
// The lower depth wins. On equal depth the resolution whose origin path has fewer nested
// package-store segments wins, and if that still ties, a wins. The loser and its own duplicates
// are appended to the winner's duplicates, skipping locations that are already recorded.
// When both point to the same location, a missing version on the winner is backfilled.
func MergeWithDuplicate(a, b *DependencyResolution) *DependencyResolution {
	target, duplicate := a, b
	switch {
	case b.Depth < a.Depth:
		target, duplicate = b, a
	case a.Depth == b.Depth && storeNesting(b.OriginPath) < storeNesting(a.OriginPath):
		target, duplicate = b, a
	}

	if target.Path != duplicate.Path {
		target.AddDuplicate(duplicate.Revision())
	} else if target.Version == "" && duplicate.Version != "" {
		target.Version = duplicate.Version
	}

	for _, rev := range duplicate.Duplicates {
		target.AddDuplicate(rev)
	}

	return target
}

// MergeResults folds results, in order, into base. A nil base starts from an empty result.
// With a nil base and a single result, that result is returned as is.
func MergeResults(results []ResolutionResult, base ResolutionResult) ResolutionResult {
	if base == nil && len(results) == 1 {
		return results[0]
	}
	if base == nil {
		base = make(ResolutionResult)
	}
	for _, result := range results {
		for _, name := range result.Names() {
			res := result[name]
			if prev, ok := base[name]; ok {
				base[name] = MergeWithDuplicate(prev, res)
			} else {
				base[name] = res
			}
		}
	}
	return base
}

// storeNesting counts the package-store segments in path.
func storeNesting(path string) int {
	count := 0
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == StoreDirName {
			count++
		}
	}
	return count
}
