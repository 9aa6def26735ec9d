// Package localfs implements manifest storage as JSON files in a local
// directory, one file per manifest. Beyond the storage contract it
// exposes a small administrative surface: existence and size probes,
// directory backup, and bulk export.
package localfs

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/storage"
)

func init() {
	storage.Register("local-fs", func(opts storage.Options) (storage.Backend, error) {
		return New(opts.Path)
	})
}

// Backend stores each manifest as <root>/<id>.json.
type Backend struct {
	root string
}

// New creates the root directory if needed.
func New(root string) (*Backend, error) {
	if root == "" {
		return nil, errs.New(errs.KindValidation, "local storage path is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "failed to create storage directory %s", root)
	}
	return &Backend{root: root}, nil
}

// Root returns the storage directory.
func (b *Backend) Root() string { return b.root }

func (b *Backend) path(id string) string {
	// ids never contain path separators in practice; replace them anyway
	// so a hostile id cannot escape the root.
	safe := strings.ReplaceAll(id, string(os.PathSeparator), "_")
	return filepath.Join(b.root, safe+".json")
}

func (b *Backend) Store(id string, m *manifest.Manifest) error {
	body, err := m.CanonicalJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(b.path(id), body, 0o644); err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to write manifest %s", id)
	}
	return nil
}

func (b *Backend) Retrieve(id string) (*manifest.Manifest, error) {
	body, err := os.ReadFile(b.path(id))
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "failed to read manifest %s", id)
	}
	var m manifest.Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "failed to decode manifest %s", id)
	}
	return &m, nil
}

func (b *Backend) List() ([]storage.Metadata, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "failed to read storage directory %s", b.root)
	}
	var out []storage.Metadata
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		m, err := b.Retrieve(id)
		if err != nil {
			// A corrupt file must not hide the rest of the store.
			continue
		}
		out = append(out, storage.Describe(id, m))
	}
	return out, nil
}

func (b *Backend) Delete(id string) error {
	err := os.Remove(b.path(id))
	if os.IsNotExist(err) {
		return errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to delete manifest %s", id)
	}
	return nil
}

// Exists reports whether a manifest file is present without decoding it.
func (b *Backend) Exists(id string) bool {
	_, err := os.Stat(b.path(id))
	return err == nil
}

// Size returns the stored size of one manifest in bytes.
func (b *Backend) Size(id string) (int64, error) {
	info, err := os.Stat(b.path(id))
	if os.IsNotExist(err) {
		return 0, errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if err != nil {
		return 0, errs.Wrap(errs.KindIO, err, "failed to stat manifest %s", id)
	}
	return info.Size(), nil
}

// TotalSize returns the combined size of all stored manifests in bytes.
func (b *Backend) TotalSize() (int64, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return 0, errs.Wrap(errs.KindIO, err, "failed to read storage directory %s", b.root)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, errs.Wrap(errs.KindIO, err, "failed to stat %s", e.Name())
		}
		total += info.Size()
	}
	return total, nil
}

// Backup copies every manifest file into dir, creating it if needed.
func (b *Backend) Backup(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to create backup directory %s", dir)
	}
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to read storage directory %s", b.root)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := copyFile(filepath.Join(b.root, e.Name()), filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ExportAll writes every stored manifest into one JSON document mapping
// id to manifest and returns how many manifests were exported.
func (b *Backend) ExportAll(path string) (int, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return 0, errs.Wrap(errs.KindIO, err, "failed to read storage directory %s", b.root)
	}
	export := map[string]*manifest.Manifest{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		m, err := b.Retrieve(id)
		if err != nil {
			continue
		}
		export[id] = m
	}
	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return 0, errs.Wrap(errs.KindSerialization, err, "failed to encode export")
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return 0, errs.Wrap(errs.KindIO, err, "failed to write export to %s", path)
	}
	return len(export), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to open %s", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to create %s", dst)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return errs.Wrap(errs.KindIO, err, "failed to copy %s", src)
	}
	return out.Close()
}
