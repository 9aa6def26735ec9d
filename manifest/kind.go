package manifest

import (
	"strings"

	"github.com/provenact/provenact/errs"
)

// Kind is the semantic category of the artifact a manifest describes.
//
// Kind is never stored: it is re-derived from manifest content on every
// read so that a stored value can never diverge from what the manifest
// actually asserts.
type Kind string

const (
	KindModel      Kind = "Model"
	KindDataset    Kind = "Dataset"
	KindSoftware   Kind = "Software"
	KindEvaluation Kind = "Evaluation"
	// KindUnknown is surfaced when no rule matches. It is never silently
	// mapped to another kind; callers decide how to treat it.
	KindUnknown Kind = "Unknown"
)

// ParseKind converts a user-supplied kind name. Unknown names are a
// Validation error rather than a default.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "model":
		return KindModel, nil
	case "dataset":
		return KindDataset, nil
	case "software":
		return KindSoftware, nil
	case "evaluation":
		return KindEvaluation, nil
	default:
		return KindUnknown, errs.New(errs.KindValidation,
			"unknown manifest kind %q. Valid options are: model, dataset, software, evaluation", s)
	}
}

// InferKind derives the manifest kind from content, checking both claim
// slots. Precedence: an EvaluationResult assertion wins over everything
// (an evaluation is never classified as a dataset even when it carries
// dataset-tagged ingredients); then Dataset, Software, Model; otherwise
// Unknown.
func InferKind(m *Manifest) Kind {
	if m.hasCreativeWork("EvaluationResult") {
		return KindEvaluation
	}

	if m.hasCreativeWork("Dataset") || m.hasIngredientTag(datasetTagged) {
		return KindDataset
	}

	if m.hasCreativeWork("Software") || m.hasSoftwareParameters() || m.hasIngredientTag(softwareTagged) {
		return KindSoftware
	}

	if m.hasCreativeWork("Model") || m.hasIngredientTag(modelTagged) {
		return KindModel
	}

	return KindUnknown
}

func (m *Manifest) hasIngredientTag(pred func(*Ingredient) bool) bool {
	for i := range m.Ingredients {
		if pred(&m.Ingredients[i]) {
			return true
		}
	}
	return false
}

func datasetTagged(ing *Ingredient) bool {
	for _, t := range ing.Data.DataTypes {
		if t.IsDataset() {
			return true
		}
	}
	return false
}

func modelTagged(ing *Ingredient) bool {
	for _, t := range ing.Data.DataTypes {
		if t.IsModel() {
			return true
		}
	}
	return false
}

func softwareTagged(ing *Ingredient) bool {
	for _, t := range ing.Data.DataTypes {
		if t.IsSoftware() {
			return true
		}
	}
	return false
}
