// Package signing wraps the external signer boundary: PEM key loading
// and RSA sign/verify over a caller-selected SHA-2 digest.
package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/provenact/provenact/errs"
)

// HashAlgorithm selects the digest used for signing.
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "sha256"
	SHA384 HashAlgorithm = "sha384"
	SHA512 HashAlgorithm = "sha512"

	// DefaultAlgorithm is used for claim signing when none is specified.
	DefaultAlgorithm = SHA384
)

// ParseAlgorithm converts a user-supplied algorithm name.
func ParseAlgorithm(s string) (HashAlgorithm, error) {
	switch HashAlgorithm(s) {
	case SHA256, SHA384, SHA512:
		return HashAlgorithm(s), nil
	case "":
		return DefaultAlgorithm, nil
	default:
		return "", errs.New(errs.KindValidation,
			"unsupported hash algorithm %q. Valid options are: sha256, sha384, sha512", s)
	}
}

func (a HashAlgorithm) cryptoHash() (crypto.Hash, error) {
	switch a {
	case SHA256:
		return crypto.SHA256, nil
	case SHA384:
		return crypto.SHA384, nil
	case SHA512:
		return crypto.SHA512, nil
	default:
		return 0, errs.New(errs.KindSigning, "unsupported hash algorithm %q", string(a))
	}
}

// LoadPrivateKey reads an RSA private key from a PEM file (PKCS#8 or
// PKCS#1).
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "read private key %s", path)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errs.New(errs.KindSigning, "no PEM block in %s", path)
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errs.Wrap(errs.KindSigning, err, "parse private key %s", path)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errs.New(errs.KindSigning, "private key %s is not an RSA key", path)
	}
	return key, nil
}

// LoadPublicKey reads an RSA public key from a PEM file (PKIX).
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "read public key %s", path)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errs.New(errs.KindSigning, "no PEM block in %s", path)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errs.Wrap(errs.KindSigning, err, "parse public key %s", path)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errs.New(errs.KindSigning, "public key %s is not an RSA key", path)
	}
	return key, nil
}

// SignWithAlgorithm signs data with the given key and digest algorithm.
func SignWithAlgorithm(data []byte, key *rsa.PrivateKey, alg HashAlgorithm) ([]byte, error) {
	h, err := alg.cryptoHash()
	if err != nil {
		return nil, err
	}
	hasher := h.New()
	hasher.Write(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, h, hasher.Sum(nil))
	if err != nil {
		return nil, errs.Wrap(errs.KindSigning, err, "sign data")
	}
	return sig, nil
}

// Sign signs data with the default algorithm.
func Sign(data []byte, key *rsa.PrivateKey) ([]byte, error) {
	return SignWithAlgorithm(data, key, DefaultAlgorithm)
}

// VerifyWithAlgorithm reports whether signature was produced over data by
// the private counterpart of pub using the given digest algorithm.
func VerifyWithAlgorithm(data, signature []byte, pub *rsa.PublicKey, alg HashAlgorithm) (bool, error) {
	h, err := alg.cryptoHash()
	if err != nil {
		return false, err
	}
	hasher := h.New()
	hasher.Write(data)
	if err := rsa.VerifyPKCS1v15(pub, h, hasher.Sum(nil), signature); err != nil {
		return false, nil
	}
	return true, nil
}

// Verify checks a signature made with the default algorithm.
func Verify(data, signature []byte, pub *rsa.PublicKey) (bool, error) {
	return VerifyWithAlgorithm(data, signature, pub, DefaultAlgorithm)
}
