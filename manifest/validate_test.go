package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenact/provenact/errs"
)

func validManifest(t *testing.T) *Manifest {
	t.Helper()
	path := writeTempFile(t, "model.onnx", "parameters")
	m, err := CreateModel(CreationConfig{Paths: []string{path}, Name: "model"})
	require.NoError(t, err)
	return m
}

func TestValidateNil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Manifest)
		want   string
	}{
		"missing title": {
			mutate: func(m *Manifest) { m.Title = "" },
			want:   "no title",
		},
		"missing instance id": {
			mutate: func(m *Manifest) { m.InstanceID = "" },
			want:   "instance_id is empty",
		},
		"wrong relationship": {
			mutate: func(m *Manifest) { m.Ingredients[0].Relationship = "parentOf" },
			want:   "relationship",
		},
		"wrong digest algorithm": {
			mutate: func(m *Manifest) { m.Ingredients[0].Data.Alg = "sha384" },
			want:   "digest algorithm",
		},
		"malformed hash": {
			mutate: func(m *Manifest) { m.Ingredients[0].Data.Hash = "not-hex" },
			want:   "malformed content hash",
		},
		"no data types": {
			mutate: func(m *Manifest) { m.Ingredients[0].Data.DataTypes = nil },
			want:   "no data types",
		},
		"claim without generator info": {
			mutate: func(m *Manifest) { m.Claim.ClaimGeneratorInfo = "" },
			want:   "generator info",
		},
		"cross-reference without hash": {
			mutate: func(m *Manifest) {
				m.CrossReferences = []CrossReference{{ManifestURL: "urn:c2pa:x"}}
			},
			want: "no manifest hash",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := validManifest(t)
			tc.mutate(m)
			err := Validate(m)
			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.KindValidation))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
