package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenact/provenact/asset"
	"github.com/provenact/provenact/errs"
)

func manifestWithAssertion(a Assertion) *Manifest {
	return &Manifest{Claim: Claim{CreatedAssertions: []Assertion{a}}}
}

func manifestWithIngredientType(t asset.Type) *Manifest {
	return &Manifest{Ingredients: []Ingredient{{
		Data: IngredientData{DataTypes: []asset.Type{t}},
	}}}
}

func TestParseKind(t *testing.T) {
	for input, want := range map[string]Kind{
		"model":      KindModel,
		"Dataset":    KindDataset,
		"SOFTWARE":   KindSoftware,
		"evaluation": KindEvaluation,
	} {
		got, err := ParseKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("pipeline")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))
	assert.Contains(t, err.Error(), "model, dataset, software, evaluation")
}

func TestInferKindFromAssertions(t *testing.T) {
	for creativeType, want := range map[string]Kind{
		"Model":            KindModel,
		"Dataset":          KindDataset,
		"Software":         KindSoftware,
		"EvaluationResult": KindEvaluation,
	} {
		m := manifestWithAssertion(NewCreativeWork(CreativeWorkAssertion{CreativeType: creativeType}))
		assert.Equal(t, want, InferKind(m), creativeType)
	}
}

func TestInferKindFromIngredients(t *testing.T) {
	assert.Equal(t, KindModel, InferKind(manifestWithIngredientType(asset.TypeModelPytorch)))
	assert.Equal(t, KindDataset, InferKind(manifestWithIngredientType(asset.TypeDataset)))
	assert.Equal(t, KindSoftware, InferKind(manifestWithIngredientType(asset.TypeGenerator)))
}

func TestInferKindFromSoftwareParameters(t *testing.T) {
	m := manifestWithAssertion(NewAction(ActionAssertion{Actions: []Action{{
		Action:     "c2pa.created",
		Parameters: map[string]any{"software_type": "trainer"},
	}}}))
	assert.Equal(t, KindSoftware, InferKind(m))
}

// An evaluation run legitimately carries dataset-tagged ingredients; the
// EvaluationResult assertion must still win.
func TestInferKindEvaluationBeatsDatasetIngredient(t *testing.T) {
	m := manifestWithIngredientType(asset.TypeDataset)
	m.Claim.CreatedAssertions = []Assertion{
		NewCreativeWork(CreativeWorkAssertion{CreativeType: "EvaluationResult"}),
	}
	assert.Equal(t, KindEvaluation, InferKind(m))
}

func TestInferKindChecksClaimV2(t *testing.T) {
	m := &Manifest{ClaimV2: &Claim{CreatedAssertions: []Assertion{
		NewCreativeWork(CreativeWorkAssertion{CreativeType: "Dataset"}),
	}}}
	assert.Equal(t, KindDataset, InferKind(m))
}

func TestInferKindUnknown(t *testing.T) {
	assert.Equal(t, KindUnknown, InferKind(&Manifest{}))
}
