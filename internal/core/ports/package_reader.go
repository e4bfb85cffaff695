package ports

import "go.trai.ch/autolink/internal/core/domain"

// PackageReader gives read-only access to installed packages on disk.
//
// Absent or unreadable resources are never errors: RealPath reports false and
// ReadManifest returns nil, so scanners can treat them as "no candidate here".
type PackageReader interface {
	// RealPath resolves path to its canonical, symlink-free location.
	// It reports false when the path does not exist or cannot be resolved.
	RealPath(path string) (string, bool)

	// ReadManifest loads and parses the manifest in dir.
	// It returns nil when the manifest is missing or malformed.
	ReadManifest(dir string) *domain.Manifest

	// ReadDir lists the entries of dir in listing order.
	ReadDir(dir string) ([]domain.DirEntry, error)
}
