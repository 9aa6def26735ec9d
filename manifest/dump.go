package manifest

import (
	"encoding/hex"
	"encoding/json"

	"github.com/provenact/provenact/codec"
	"github.com/provenact/provenact/errs"
)

// Dump renders a manifest for inspection. Format "json" yields indented
// JSON; "cbor" yields the hex of the deterministic CBOR encoding.
func Dump(m *Manifest, format string) (string, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", errs.Wrap(errs.KindSerialization, err, "failed to encode manifest as JSON")
		}
		return string(out), nil
	case "cbor":
		out, err := codec.Marshal(m)
		if err != nil {
			return "", errs.Wrap(errs.KindSerialization, err, "failed to encode manifest as CBOR")
		}
		return hex.EncodeToString(out), nil
	default:
		return "", errs.New(errs.KindValidation, "unsupported dump format %q, expected json or cbor", format)
	}
}
