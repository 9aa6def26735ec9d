// Package manifest implements provenance manifests for machine-learning
// artifacts: claim construction, cross-reference linking, kind inference,
// and the multi-stage verification protocol.
package manifest

import (
	"time"

	"github.com/google/uuid"

	"github.com/provenact/provenact/asset"
)

// Relationship is the only ingredient relationship this system records:
// every ingredient is a component of the manifest that created it.
const Relationship = "componentOf"

const (
	// ClaimGenerator identifies the tool in the manifest envelope.
	ClaimGenerator = "provenact/0.1.0"
	// ClaimGeneratorInfo identifies the tool inside claims.
	ClaimGeneratorInfo = "provenact"
)

// IngredientData carries the content location and digest of one source
// file. Hash equals digest(alg, content(url)) at creation time; it is
// never recomputed automatically — verification recomputes it explicitly.
type IngredientData struct {
	URL                  string       `json:"url"`
	Alg                  string       `json:"alg"`
	Hash                 string       `json:"hash"`
	DataTypes            []asset.Type `json:"data_types"`
	LinkedIngredientURL  string       `json:"linked_ingredient_url,omitempty"`
	LinkedIngredientHash string       `json:"linked_ingredient_hash,omitempty"`
}

// Ingredient is a reference to one constituent source file. Owned by the
// manifest that created it; immutable after creation.
type Ingredient struct {
	Title            string         `json:"title"`
	Format           string         `json:"format"`
	Relationship     string         `json:"relationship"`
	DocumentID       string         `json:"document_id"`
	InstanceID       string         `json:"instance_id"`
	Data             IngredientData `json:"data"`
	LinkedIngredient *Ingredient    `json:"linked_ingredient,omitempty"`
	PublicKey        string         `json:"public_key,omitempty"`
}

// Claim is the signed set of assertions describing how a manifest's
// assets were produced. If Signature is present it was computed over the
// canonical serialization of the claim before the signature field was
// populated; see SigningBytes.
type Claim struct {
	InstanceID         string      `json:"instance_id"`
	Ingredients        []Ingredient `json:"ingredients"`
	CreatedAssertions  []Assertion `json:"created_assertions"`
	ClaimGeneratorInfo string      `json:"claim_generator_info"`
	Signature          string      `json:"signature,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// CrossReference is a hash-pinned link to another manifest.
// ManifestHash is the digest of the referenced manifest's canonical JSON
// serialization, captured at link time.
type CrossReference struct {
	ManifestURL  string `json:"manifest_url"`
	ManifestHash string `json:"manifest_hash"`
	MediaType    string `json:"media_type,omitempty"`
}

// Manifest is the top-level provenance record for one asset.
//
// Claim is the legacy single-claim slot and is always present; ClaimV2 is
// the preferred slot and may carry richer assertions and the signature.
// CrossReferences may grow after creation via link operations; IsActive
// may be flipped to mark supersession. All other fields are immutable
// once the manifest is persisted.
type Manifest struct {
	ClaimGenerator  string           `json:"claim_generator"`
	Title           string           `json:"title"`
	InstanceID      string           `json:"instance_id"`
	Ingredients     []Ingredient     `json:"ingredients"`
	Claim           Claim            `json:"claim"`
	CreatedAt       time.Time        `json:"created_at"`
	CrossReferences []CrossReference `json:"cross_references"`
	ClaimV2         *Claim           `json:"claim_v2,omitempty"`
	IsActive        bool             `json:"is_active"`
}

// Store is the read side of manifest persistence needed by linking and
// verification. Storage backends satisfy it structurally.
type Store interface {
	Retrieve(id string) (*Manifest, error)
}

// NewDocumentID mints an ingredient-scoped identifier.
func NewDocumentID() string { return "uuid:" + uuid.NewString() }

// NewInstanceID mints a claim/manifest-scoped identifier.
func NewInstanceID() string { return "urn:c2pa:" + uuid.NewString() }

// claims returns the claim slots to search, legacy first. Either slot may
// carry the authoritative assertion.
func (m *Manifest) claims() []*Claim {
	out := []*Claim{&m.Claim}
	if m.ClaimV2 != nil {
		out = append(out, m.ClaimV2)
	}
	return out
}
