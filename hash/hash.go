// Package hash computes the SHA-256 content digests used for ingredient
// integrity and manifest cross-reference pinning.
//
// All digests are lowercase hex. Verification is exact, case-sensitive
// string equality against a recomputed digest.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/provenact/provenact/errs"
)

// Alg identifies the digest algorithm recorded alongside ingredient hashes.
const Alg = "sha256"

// chunkSize bounds memory while hashing model and dataset files of
// arbitrary size.
const chunkSize = 8192

// Digest returns the hex SHA-256 digest of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestFile returns the hex SHA-256 digest of the file at path, reading
// in bounded chunks.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.KindIO, err, "open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errs.Wrap(errs.KindIO, err, "read %s", path)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Combine digests the concatenation of the decoded bytes of each input
// hash, in the given order. Order is significant. All inputs are decoded
// before any digest work so that a malformed hex string fails the whole
// call. An empty input list is a Validation error: an empty combination
// has no defined subject.
func Combine(hashes []string) (string, error) {
	if len(hashes) == 0 {
		return "", errs.New(errs.KindValidation, "combine requires at least one hash")
	}
	decoded := make([][]byte, 0, len(hashes))
	for _, hx := range hashes {
		b, err := hex.DecodeString(hx)
		if err != nil {
			return "", errs.Wrap(errs.KindHexDecode, err, "malformed hash %q", hx)
		}
		decoded = append(decoded, b)
	}
	h := sha256.New()
	for _, b := range decoded {
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether the digest of data equals expected.
func Verify(data []byte, expected string) bool {
	return Digest(data) == expected
}
