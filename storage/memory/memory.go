// Package memory provides a process-local storage backend. It backs
// tests and ad-hoc runs where persistence is not wanted.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/storage"
)

func init() {
	storage.Register("memory", func(storage.Options) (storage.Backend, error) {
		return New(), nil
	})
}

// Backend stores manifests in a mutex-guarded map.
type Backend struct {
	mu        sync.RWMutex
	manifests map[string]*manifest.Manifest
}

func New() *Backend {
	return &Backend{manifests: map[string]*manifest.Manifest{}}
}

func (b *Backend) Store(id string, m *manifest.Manifest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.manifests[id] = m
	return nil
}

func (b *Backend) Retrieve(id string) (*manifest.Manifest, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.manifests[id]
	if !ok {
		return nil, fmt.Errorf("manifest %s: %w", id, storage.ErrNotFound)
	}
	return m, nil
}

func (b *Backend) List() ([]storage.Metadata, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]storage.Metadata, 0, len(b.manifests))
	for id, m := range b.manifests {
		out = append(out, storage.Describe(id, m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.manifests[id]; !ok {
		return fmt.Errorf("manifest %s: %w", id, storage.ErrNotFound)
	}
	delete(b.manifests, id)
	return nil
}
