// Package fs provides read-only file system adapters for package discovery.
package fs

import (
	"encoding/json"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageReader = (*Reader)(nil)

type realPathEntry struct {
	path string
	ok   bool
}

// Reader implements ports.PackageReader on the local file system.
// Real-path lookups and parsed manifests are cached for the lifetime of the Reader,
// so one Reader is meant to live for one process run.
type Reader struct {
	realPaths sync.Map // domain.InternedString -> realPathEntry
	manifests sync.Map // domain.InternedString -> *domain.Manifest (nil when unreadable)
}

// NewReader creates a new Reader with empty caches.
func NewReader() *Reader {
	return &Reader{}
}

// RealPath resolves path to its canonical location.
func (r *Reader) RealPath(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	key := domain.NewInternedString(abs)
	if cached, ok := r.realPaths.Load(key); ok {
		entry := cached.(realPathEntry)
		return entry.path, entry.ok
	}

	entry := realPathEntry{}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		entry = realPathEntry{path: resolved, ok: true}
	}
	actual, _ := r.realPaths.LoadOrStore(key, entry)
	entry = actual.(realPathEntry)
	return entry.path, entry.ok
}

// ReadManifest loads the manifest in dir, or returns nil when it is missing or malformed.
func (r *Reader) ReadManifest(dir string) *domain.Manifest {
	realDir, ok := r.RealPath(dir)
	if !ok {
		return nil
	}
	key := domain.NewInternedString(realDir)
	if cached, ok := r.manifests.Load(key); ok {
		return cached.(*domain.Manifest)
	}

	manifest, err := parseManifest(filepath.Join(realDir, domain.ManifestFileName))
	if err != nil {
		manifest = nil
	}
	actual, _ := r.manifests.LoadOrStore(key, manifest)
	return actual.(*domain.Manifest)
}

// ReadDir lists dir in file name order.
func (r *Reader) ReadDir(dir string) ([]domain.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", dir)
	}

	out := make([]domain.DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.DirEntry{
			Name:      e.Name(),
			IsDir:     e.IsDir(),
			IsSymlink: e.Type()&iofs.ModeSymlink != 0,
		})
	}
	return out, nil
}

func parseManifest(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a discovered package directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}
	return &manifest, nil
}
