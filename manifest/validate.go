package manifest

import (
	"encoding/hex"

	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/hash"
)

// Validate checks manifest-level schema invariants. It is the first
// verification stage and also guards the write path before persistence.
func Validate(m *Manifest) error {
	if m == nil {
		return errs.New(errs.KindValidation, "manifest is nil")
	}
	if m.InstanceID == "" {
		return errs.New(errs.KindValidation, "manifest instance_id is empty")
	}
	if m.Title == "" {
		return errs.New(errs.KindValidation, "manifest %s has no title", m.InstanceID)
	}
	if m.ClaimGenerator == "" {
		return errs.New(errs.KindValidation, "manifest %s has no claim generator", m.InstanceID)
	}
	if m.CreatedAt.IsZero() {
		return errs.New(errs.KindValidation, "manifest %s has no creation time", m.InstanceID)
	}

	for _, c := range m.claims() {
		if err := validateClaim(c); err != nil {
			return err
		}
	}

	for i := range m.Ingredients {
		if err := validateIngredient(&m.Ingredients[i]); err != nil {
			return err
		}
	}

	for _, cr := range m.CrossReferences {
		if cr.ManifestURL == "" {
			return errs.New(errs.KindValidation, "manifest %s has a cross-reference with no target", m.InstanceID)
		}
		if cr.ManifestHash == "" {
			return errs.New(errs.KindValidation,
				"cross-reference to %s has no manifest hash", cr.ManifestURL)
		}
	}
	return nil
}

func validateClaim(c *Claim) error {
	if c.InstanceID == "" {
		return errs.New(errs.KindValidation, "claim instance_id is empty")
	}
	if c.ClaimGeneratorInfo == "" {
		return errs.New(errs.KindValidation, "claim %s has no generator info", c.InstanceID)
	}
	if c.CreatedAt.IsZero() {
		return errs.New(errs.KindValidation, "claim %s has no creation time", c.InstanceID)
	}
	for i := range c.Ingredients {
		if err := validateIngredient(&c.Ingredients[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateIngredient(ing *Ingredient) error {
	if ing.Title == "" {
		return errs.New(errs.KindValidation, "ingredient %s has no title", ing.InstanceID)
	}
	if ing.Format == "" {
		return errs.New(errs.KindValidation, "ingredient %q has no format", ing.Title)
	}
	if ing.Relationship != Relationship {
		return errs.New(errs.KindValidation,
			"ingredient %q has relationship %q, want %q", ing.Title, ing.Relationship, Relationship)
	}
	if ing.DocumentID == "" || ing.InstanceID == "" {
		return errs.New(errs.KindValidation, "ingredient %q is missing identifiers", ing.Title)
	}
	if ing.Data.URL == "" {
		return errs.New(errs.KindValidation, "ingredient %q has no content URL", ing.Title)
	}
	if ing.Data.Alg != hash.Alg {
		return errs.New(errs.KindValidation,
			"ingredient %q uses digest algorithm %q, want %q", ing.Title, ing.Data.Alg, hash.Alg)
	}
	if _, err := hex.DecodeString(ing.Data.Hash); err != nil || ing.Data.Hash == "" {
		return errs.New(errs.KindValidation, "ingredient %q has a malformed content hash", ing.Title)
	}
	if len(ing.Data.DataTypes) == 0 {
		return errs.New(errs.KindValidation, "ingredient %q has no data types", ing.Title)
	}
	return nil
}
