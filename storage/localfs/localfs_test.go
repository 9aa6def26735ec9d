package localfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/storage"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(filepath.Join(t.TempDir(), "manifests"))
	require.NoError(t, err)
	return b
}

func testManifest(title string) *manifest.Manifest {
	return &manifest.Manifest{
		ClaimGenerator: manifest.ClaimGenerator,
		Title:          title,
		InstanceID:     manifest.NewInstanceID(),
		Claim: manifest.Claim{
			InstanceID:         manifest.NewInstanceID(),
			ClaimGeneratorInfo: manifest.ClaimGeneratorInfo,
			CreatedAssertions: []manifest.Assertion{
				manifest.NewCreativeWork(manifest.CreativeWorkAssertion{CreativeType: "Software"}),
			},
			CreatedAt: time.Now().UTC(),
		},
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	m := testManifest("tool")

	require.NoError(t, b.Store(m.InstanceID, m))

	got, err := b.Retrieve(m.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, m.Title, got.Title)
	assert.Equal(t, m.InstanceID, got.InstanceID)
}

func TestRetrieveNotFound(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Retrieve("urn:c2pa:absent")
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
}

func TestListSkipsCorruptFiles(t *testing.T) {
	b := newTestBackend(t)
	m := testManifest("tool")
	require.NoError(t, b.Store(m.InstanceID, m))
	require.NoError(t, os.WriteFile(filepath.Join(b.Root(), "broken.json"), []byte("{not json"), 0o644))

	got, err := b.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.InstanceID, got[0].ID)
	assert.Equal(t, manifest.KindSoftware, got[0].Kind)
}

func TestDelete(t *testing.T) {
	b := newTestBackend(t)
	m := testManifest("tool")
	require.NoError(t, b.Store(m.InstanceID, m))

	require.NoError(t, b.Delete(m.InstanceID))
	assert.False(t, b.Exists(m.InstanceID))

	err := b.Delete(m.InstanceID)
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
}

func TestExistsAndSize(t *testing.T) {
	b := newTestBackend(t)
	m := testManifest("tool")

	assert.False(t, b.Exists(m.InstanceID))
	_, err := b.Size(m.InstanceID)
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))

	require.NoError(t, b.Store(m.InstanceID, m))
	assert.True(t, b.Exists(m.InstanceID))

	size, err := b.Size(m.InstanceID)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	total, err := b.TotalSize()
	require.NoError(t, err)
	assert.Equal(t, size, total)
}

func TestBackup(t *testing.T) {
	b := newTestBackend(t)
	m := testManifest("tool")
	require.NoError(t, b.Store(m.InstanceID, m))

	backupDir := filepath.Join(t.TempDir(), "backup")
	require.NoError(t, b.Backup(backupDir))

	restored, err := New(backupDir)
	require.NoError(t, err)
	got, err := restored.Retrieve(m.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, m.Title, got.Title)
}

func TestExportAll(t *testing.T) {
	b := newTestBackend(t)
	first := testManifest("first")
	second := testManifest("second")
	require.NoError(t, b.Store(first.InstanceID, first))
	require.NoError(t, b.Store(second.InstanceID, second))

	exportPath := filepath.Join(t.TempDir(), "export.json")
	count, err := b.ExportAll(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	body, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), first.InstanceID)
	assert.Contains(t, string(body), second.InstanceID)
}
