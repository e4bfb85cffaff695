package fs

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of resolution results.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes every canonical resolution in name order, followed by its duplicates
// in recorded order.
func (h *Hasher) Fingerprint(result domain.ResolutionResult) string {
	hasher := xxhash.New()

	for _, name := range result.Names() {
		res := result[name]
		writeFields(hasher,
			string(res.Source),
			res.Name,
			res.Version,
			res.Path,
			res.OriginPath,
			strconv.Itoa(res.Depth),
		)

		for _, dup := range res.Duplicates {
			writeFields(hasher, dup.Name, dup.Version, dup.Path, dup.OriginPath)
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func writeFields(hasher *xxhash.Digest, fields ...string) {
	for _, field := range fields {
		_, _ = hasher.WriteString(field)
		_, _ = hasher.Write([]byte{0})
	}
}
