package manifest

import (
	"fmt"
	"strings"

	"github.com/provenact/provenact/errs"
)

// ParseMetrics turns "name=value" entries into a metric map. Each entry
// must contain exactly one '=' with a non-empty name.
func ParseMetrics(entries []string) (map[string]string, error) {
	metrics := make(map[string]string, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, "=")
		if len(parts) != 2 || parts[0] == "" {
			return nil, errs.New(errs.KindValidation, "invalid metric %q, expected name=value", entry)
		}
		metrics[parts[0]] = parts[1]
	}
	return metrics, nil
}

// CreateEvaluation assembles an evaluation manifest. The evaluated model
// and dataset ids are always cross-referenced so verification can check
// that both still resolve.
func CreateEvaluation(cfg CreationConfig) (*Manifest, error) {
	if cfg.Eval == nil {
		return nil, errs.New(errs.KindValidation, "evaluation parameters are required")
	}
	if cfg.Eval.ModelID == "" || cfg.Eval.DatasetID == "" {
		return nil, errs.New(errs.KindValidation, "evaluation requires both a model id and a dataset id")
	}

	cfg.Description = fmt.Sprintf("%s (model %s, dataset %s)", cfg.Description, cfg.Eval.ModelID, cfg.Eval.DatasetID)

	linked := cfg.LinkedManifests
	if !containsID(linked, cfg.Eval.ModelID) {
		linked = append(linked, cfg.Eval.ModelID)
	}
	if !containsID(linked, cfg.Eval.DatasetID) {
		linked = append(linked, cfg.Eval.DatasetID)
	}
	cfg.LinkedManifests = linked

	return Create(cfg, KindEvaluation)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
