package manifest

import (
	"encoding/json"

	"github.com/provenact/provenact/codec"
	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/hash"
)

// CanonicalJSON returns the byte-exact JSON serialization used as the
// input to manifest hashing. Field order is the declared struct order, so
// the same manifest always yields the same bytes.
func (m *Manifest) CanonicalJSON() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "encode manifest %s", m.InstanceID)
	}
	return b, nil
}

// Digest returns the hex SHA-256 digest of the manifest's canonical JSON.
// This is the value pinned by cross-references.
func (m *Manifest) Digest() (string, error) {
	b, err := m.CanonicalJSON()
	if err != nil {
		return "", err
	}
	return hash.Digest(b), nil
}

// SigningBytes returns the canonical CBOR encoding of the claim with the
// signature field excluded. The signature commits to exactly these bytes;
// both the signing path and any later signature check must use this
// method rather than re-deriving the rule.
func (c *Claim) SigningBytes() ([]byte, error) {
	unsigned := *c
	unsigned.Signature = ""
	b, err := codec.Marshal(&unsigned)
	if err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "encode claim %s for signing", c.InstanceID)
	}
	return b, nil
}
