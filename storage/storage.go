// Package storage defines the pluggable persistence surface for
// manifests. Concrete backends register themselves at init time and are
// opened by type name; callers hold the Backend interface and never
// depend on a concrete implementation.
package storage

import (
	"errors"
	"time"

	"github.com/provenact/provenact/manifest"
)

// ErrNotFound reports that no manifest exists under the requested id.
// Backends wrap it so callers can test with IsNotFound regardless of the
// underlying store.
var ErrNotFound = errors.New("manifest not found")

// IsNotFound reports whether err stems from a missing manifest.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Metadata is the listing row for one stored manifest. Kind is derived
// from manifest content at read time, never stored.
type Metadata struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Kind      manifest.Kind `json:"kind"`
	CreatedAt time.Time     `json:"created_at"`
}

// Backend is the full persistence contract. Store overwrites an existing
// manifest under the same id; Retrieve returns an error satisfying
// IsNotFound for unknown ids. Delete never cascades: manifests that
// cross-reference the deleted id keep their references, which then fail
// verification.
type Backend interface {
	Store(id string, m *manifest.Manifest) error
	Retrieve(id string) (*manifest.Manifest, error)
	List() ([]Metadata, error)
	Delete(id string) error
}

// Describe builds the listing row for a manifest.
func Describe(id string, m *manifest.Manifest) Metadata {
	return Metadata{
		ID:        id,
		Name:      m.Title,
		Kind:      manifest.InferKind(m),
		CreatedAt: m.CreatedAt,
	}
}
