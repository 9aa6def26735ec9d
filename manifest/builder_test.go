package manifest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenact/provenact/asset"
	"github.com/provenact/provenact/ccattest"
	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/hash"
	"github.com/provenact/provenact/signing"
)

// mapStore is an in-memory Store for tests.
type mapStore map[string]*Manifest

func (s mapStore) Retrieve(id string) (*Manifest, error) {
	m, ok := s[id]
	if !ok {
		return nil, errs.New(errs.KindStorage, "manifest %s not found", id)
	}
	return m, nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeTempKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))
	return path
}

func TestNewIngredient(t *testing.T) {
	path := writeTempFile(t, "weights.onnx", "weights")

	ing, err := NewIngredient(path, "weights", KindModel)
	require.NoError(t, err)

	assert.Equal(t, "weights", ing.Title)
	assert.Equal(t, Relationship, ing.Relationship)
	assert.Equal(t, "file://"+path, ing.Data.URL)
	assert.Equal(t, hash.Alg, ing.Data.Alg)
	assert.Equal(t, hash.Digest([]byte("weights")), ing.Data.Hash)
	assert.Equal(t, []asset.Type{asset.TypeModelOnnx}, ing.Data.DataTypes)
	assert.NotEmpty(t, ing.DocumentID)
	assert.NotEmpty(t, ing.InstanceID)
	assert.NotEqual(t, ing.DocumentID, ing.InstanceID)
}

func TestNewIngredientMissingFile(t *testing.T) {
	_, err := NewIngredient(filepath.Join(t.TempDir(), "absent.onnx"), "absent", KindModel)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindIO))
}

func TestNewIngredientEvaluationAlwaysDataset(t *testing.T) {
	path := writeTempFile(t, "results.weird", "accuracy=0.93")

	ing, err := NewIngredient(path, "results", KindEvaluation)
	require.NoError(t, err)
	assert.Equal(t, []asset.Type{asset.TypeDataset}, ing.Data.DataTypes)
}

func TestCreateModel(t *testing.T) {
	path := writeTempFile(t, "model.pt", "parameters")

	m, err := CreateModel(CreationConfig{
		Paths:           []string{path},
		IngredientNames: []string{"model weights"},
		Name:            "resnet",
		Description:     "image classifier",
		AuthorOrg:       "Example Labs",
		AuthorName:      "Jamie",
	})
	require.NoError(t, err)

	assert.Equal(t, ClaimGenerator, m.ClaimGenerator)
	assert.Equal(t, "resnet", m.Title)
	assert.True(t, m.IsActive)
	assert.Empty(t, m.CrossReferences)
	require.NotNil(t, m.ClaimV2)
	require.Len(t, m.Ingredients, 1)
	assert.Equal(t, "model weights", m.Ingredients[0].Title)

	require.NoError(t, Validate(m))
	assert.Equal(t, KindModel, InferKind(m))

	// Creative work carries both author entries.
	require.NotNil(t, m.Claim.CreatedAssertions[0].CreativeWork)
	cw := m.Claim.CreatedAssertions[0].CreativeWork
	assert.Equal(t, "Model", cw.CreativeType)
	require.Len(t, cw.Author, 2)
	assert.Equal(t, "Example Labs", cw.Author[0].Name)
	assert.Equal(t, "Jamie", cw.Author[1].Name)
}

func TestCreateUsesPathWhenNameMissing(t *testing.T) {
	path := writeTempFile(t, "train.csv", "a,b\n1,2\n")

	m, err := CreateDataset(CreationConfig{
		Paths: []string{path},
		Name:  "training data",
	})
	require.NoError(t, err)
	require.Len(t, m.Ingredients, 1)
	assert.Equal(t, path, m.Ingredients[0].Title)
	assert.Equal(t, KindDataset, InferKind(m))
}

func TestCreateAuthorFallbacks(t *testing.T) {
	path := writeTempFile(t, "data.parquet", "rows")

	m, err := CreateDataset(CreationConfig{Paths: []string{path}, Name: "d"})
	require.NoError(t, err)

	cw := m.Claim.CreatedAssertions[0].CreativeWork
	require.NotNil(t, cw)
	assert.Equal(t, "Organization", cw.Author[0].Name)
	assert.Equal(t, "Unknown", cw.Author[1].Name)
}

func TestCreateSignsClaim(t *testing.T) {
	path := writeTempFile(t, "model.onnx", "parameters")
	keyPath := writeTempKey(t)

	m, err := CreateModel(CreationConfig{
		Paths:   []string{path},
		Name:    "signed model",
		KeyPath: keyPath,
	})
	require.NoError(t, err)
	require.NotEmpty(t, m.Claim.Signature)

	sig, err := base64.StdEncoding.DecodeString(m.Claim.Signature)
	require.NoError(t, err)

	key, err := signing.LoadPrivateKey(keyPath)
	require.NoError(t, err)

	payload, err := m.Claim.SigningBytes()
	require.NoError(t, err)

	ok, err := signing.Verify(payload, sig, &key.PublicKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateSigningKeyMissing(t *testing.T) {
	path := writeTempFile(t, "model.onnx", "parameters")

	_, err := CreateModel(CreationConfig{
		Paths:   []string{path},
		Name:    "m",
		KeyPath: filepath.Join(t.TempDir(), "no-such-key.pem"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindIO))
}

func TestCreateWithAttestation(t *testing.T) {
	path := writeTempFile(t, "model.h5", "parameters")

	m, err := CreateModel(CreationConfig{
		Paths:           []string{path},
		Name:            "attested model",
		WithAttestation: true,
		Attestor:        ccattest.NewMockProvider("tdx-test"),
	})
	require.NoError(t, err)

	var custom *CustomAssertion
	for _, a := range m.Claim.CreatedAssertions {
		if a.Custom != nil {
			custom = a.Custom
		}
	}
	require.NotNil(t, custom, "attestation assertion missing")
	assert.Equal(t, "tdx-test", custom.Label)
	assert.NotEmpty(t, custom.Data)
}

func TestCreateLinksManifests(t *testing.T) {
	dataPath := writeTempFile(t, "train.csv", "a,b\n")
	dataset, err := CreateDataset(CreationConfig{Paths: []string{dataPath}, Name: "train"})
	require.NoError(t, err)

	store := mapStore{dataset.InstanceID: dataset}

	modelPath := writeTempFile(t, "model.pt", "parameters")
	m, err := CreateModel(CreationConfig{
		Paths:           []string{modelPath},
		Name:            "linked model",
		LinkedManifests: []string{dataset.InstanceID, "urn:c2pa:missing"},
		Store:           store,
	})
	require.NoError(t, err)

	// The dangling reference is skipped, not fatal.
	require.Len(t, m.CrossReferences, 1)
	assert.Equal(t, dataset.InstanceID, m.CrossReferences[0].ManifestURL)

	digest, err := dataset.Digest()
	require.NoError(t, err)
	assert.Equal(t, digest, m.CrossReferences[0].ManifestHash)
	assert.Equal(t, "application/json", m.CrossReferences[0].MediaType)
}

func TestCreateUnclassifiableIngredient(t *testing.T) {
	path := writeTempFile(t, "weights", "no extension")

	_, err := CreateModel(CreationConfig{Paths: []string{path}, Name: "m"})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}
