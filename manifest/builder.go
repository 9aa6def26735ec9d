package manifest

import (
	"encoding/base64"
	"time"

	"go.uber.org/zap"

	"github.com/provenact/provenact/asset"
	"github.com/provenact/provenact/ccattest"
	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/hash"
	"github.com/provenact/provenact/signing"
)

// CreationConfig carries everything needed to assemble one manifest.
// Paths and IngredientNames are parallel; a missing name falls back to
// the path.
type CreationConfig struct {
	Paths           []string
	IngredientNames []string
	Name            string
	Description     string
	AuthorOrg       string
	AuthorName      string

	// KeyPath enables claim signing when non-empty.
	KeyPath string
	HashAlg signing.HashAlgorithm

	// LinkedManifests are resolved best-effort through Store.
	LinkedManifests []string
	Store           Store

	// WithAttestation appends a custom assertion carrying the platform
	// attestation report; failure to obtain it aborts creation.
	WithAttestation bool
	// Attestor overrides the detected attestation provider (tests).
	Attestor ccattest.Provider

	// SoftwareType and Version are set by the software entry point.
	SoftwareType string
	Version      string

	// Eval carries evaluation parameters, set by the evaluation entry point.
	Eval *EvalParams

	Log *zap.Logger
}

// EvalParams are embedded in the action parameters of evaluation
// manifests.
type EvalParams struct {
	ModelID   string
	DatasetID string
	Metrics   map[string]string
}

func (c *CreationConfig) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// NewIngredient builds an Ingredient from a source file: classifies it
// for the given manifest kind, hashes its content, and mints fresh
// identifiers. Classification and hashing failures abort manifest
// creation.
func NewIngredient(path, name string, kind Kind) (Ingredient, error) {
	var (
		assetType asset.Type
		err       error
	)
	switch kind {
	case KindModel:
		assetType, err = asset.ModelType(path)
	case KindDataset:
		assetType, err = asset.DatasetType(path)
	case KindSoftware:
		assetType, err = asset.SoftwareType(path)
	case KindEvaluation:
		// Evaluation inputs are treated as dataset content regardless of
		// extension.
		assetType = asset.TypeDataset
	default:
		return Ingredient{}, errs.New(errs.KindValidation, "cannot build ingredient for kind %q", string(kind))
	}
	if err != nil {
		return Ingredient{}, err
	}

	digest, err := hash.DigestFile(path)
	if err != nil {
		return Ingredient{}, err
	}

	return Ingredient{
		Title:        name,
		Format:       asset.MediaType(path),
		Relationship: Relationship,
		DocumentID:   NewDocumentID(),
		InstanceID:   NewInstanceID(),
		Data: IngredientData{
			URL:       "file://" + path,
			Alg:       hash.Alg,
			Hash:      digest,
			DataTypes: []asset.Type{assetType},
		},
	}, nil
}

// kindProfile is the fixed creative-type / digital-source-type / action
// tuple for one asset kind.
type kindProfile struct {
	creativeType      string
	digitalSourceType string
	actionLabel       string
}

func profileFor(kind Kind) (kindProfile, error) {
	switch kind {
	case KindModel:
		return kindProfile{"Model", digitalSourceTypePrefix + "algorithmicMedia", "c2pa.created"}, nil
	case KindDataset:
		return kindProfile{"Dataset", digitalSourceTypePrefix + "dataset", "c2pa.created"}, nil
	case KindSoftware:
		return kindProfile{"Software", digitalSourceTypePrefix + "software", "c2pa.created"}, nil
	case KindEvaluation:
		return kindProfile{"EvaluationResult", digitalSourceTypePrefix + "evaluationResult", "c2pa.evaluation"}, nil
	default:
		return kindProfile{}, errs.New(errs.KindValidation, "cannot assemble claim for kind %q", string(kind))
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// assembleAssertions builds the assertion set for one asset kind.
func assembleAssertions(cfg *CreationConfig, kind Kind) ([]Assertion, error) {
	profile, err := profileFor(kind)
	if err != nil {
		return nil, err
	}

	params := map[string]any{
		"name":        cfg.Name,
		"description": cfg.Description,
		"author": map[string]any{
			"organization": cfg.AuthorOrg,
			"name":         cfg.AuthorName,
		},
	}
	switch kind {
	case KindEvaluation:
		if cfg.Eval != nil {
			params["model_id"] = cfg.Eval.ModelID
			params["dataset_id"] = cfg.Eval.DatasetID
			params["metrics"] = cfg.Eval.Metrics
		}
	case KindSoftware:
		if cfg.SoftwareType != "" {
			params["software_type"] = cfg.SoftwareType
		}
		if cfg.Version != "" {
			params["version"] = cfg.Version
		}
	}

	assertions := []Assertion{
		NewCreativeWork(CreativeWorkAssertion{
			Context:      SchemaOrgContext,
			CreativeType: profile.creativeType,
			Author: []Author{
				{AuthorType: "Organization", Name: orDefault(cfg.AuthorOrg, "Organization")},
				{AuthorType: "Person", Name: orDefault(cfg.AuthorName, "Unknown")},
			},
		}),
		NewAction(ActionAssertion{
			Actions: []Action{{
				Action:            profile.actionLabel,
				SoftwareAgent:     ClaimGeneratorInfo,
				Parameters:        params,
				DigitalSourceType: profile.digitalSourceType,
			}},
		}),
	}

	if cfg.WithAttestation {
		att, err := attestationAssertion(cfg.Attestor)
		if err != nil {
			return nil, err
		}
		assertions = append(assertions, att)
	}
	return assertions, nil
}

// attestationAssertion labels an opaque attestation report with the
// detected platform name. Any failure is fatal to manifest creation.
func attestationAssertion(provider ccattest.Provider) (Assertion, error) {
	if provider == nil {
		provider = ccattest.Detect()
	}
	report, err := provider.AttestationReport()
	if err != nil {
		return Assertion{}, errs.Wrap(errs.KindAttestation, err, "failed to get attestation report")
	}
	platform, err := provider.PlatformName()
	if err != nil {
		return Assertion{}, errs.Wrap(errs.KindAttestation, err, "failed to detect attestation platform")
	}
	return NewCustom(CustomAssertion{Label: platform, Data: report}), nil
}

// Create assembles a manifest of the given kind: ingredients, assertions,
// optional claim signature, and best-effort cross-reference links. The
// manifest is returned unpersisted; no partial manifest ever reaches
// storage because persistence is the caller's final step.
func Create(cfg CreationConfig, kind Kind) (*Manifest, error) {
	log := cfg.logger()

	ingredients := make([]Ingredient, 0, len(cfg.Paths))
	for i, path := range cfg.Paths {
		name := path
		if i < len(cfg.IngredientNames) && cfg.IngredientNames[i] != "" {
			name = cfg.IngredientNames[i]
		}
		ing, err := NewIngredient(path, name, kind)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	assertions, err := assembleAssertions(&cfg, kind)
	if err != nil {
		return nil, err
	}

	claim := Claim{
		InstanceID:         NewInstanceID(),
		Ingredients:        append([]Ingredient(nil), ingredients...),
		CreatedAssertions:  assertions,
		ClaimGeneratorInfo: ClaimGeneratorInfo,
		CreatedAt:          time.Now().UTC(),
	}

	// Signing commits to the canonical encoding of the finished claim, so
	// it must happen after every other claim field is final.
	if cfg.KeyPath != "" {
		key, err := signing.LoadPrivateKey(cfg.KeyPath)
		if err != nil {
			return nil, err
		}
		alg := cfg.HashAlg
		if alg == "" {
			alg = signing.DefaultAlgorithm
		}
		payload, err := claim.SigningBytes()
		if err != nil {
			return nil, err
		}
		sig, err := signing.SignWithAlgorithm(payload, key, alg)
		if err != nil {
			return nil, err
		}
		claim.Signature = base64.StdEncoding.EncodeToString(sig)
	}

	claimCopy := claim
	m := &Manifest{
		ClaimGenerator:  ClaimGenerator,
		Title:           cfg.Name,
		InstanceID:      NewInstanceID(),
		Ingredients:     ingredients,
		Claim:           claim,
		CreatedAt:       time.Now().UTC(),
		CrossReferences: []CrossReference{},
		ClaimV2:         &claimCopy,
		IsActive:        true,
	}

	if len(cfg.LinkedManifests) > 0 {
		if cfg.Store == nil {
			log.Warn("cannot link manifests without a storage backend",
				zap.Strings("linked_manifests", cfg.LinkedManifests))
		} else {
			LinkCrossReferences(m, cfg.LinkedManifests, cfg.Store, log)
		}
	}

	return m, nil
}
