package ports

import "go.trai.ch/autolink/internal/core/domain"

// Hasher defines the interface for computing digests of resolution results.
type Hasher interface {
	// Fingerprint returns a stable digest of the result. Results with the same canonical
	// resolutions and the same ordered duplicates share a fingerprint.
	Fingerprint(result domain.ResolutionResult) string
}
