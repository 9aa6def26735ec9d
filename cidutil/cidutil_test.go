package cidutil

import (
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIDv1RawSHA256Deterministic(t *testing.T) {
	data := []byte("canonical manifest bytes")
	first := CIDv1RawSHA256(data)
	second := CIDv1RawSHA256(data)
	assert.Equal(t, first, second)
	// CIDv1 strings are base32 with the "b" multibase prefix.
	assert.True(t, strings.HasPrefix(first, "b"))
}

func TestCIDv1RawSHA256DiffersByContent(t *testing.T) {
	assert.NotEqual(t, CIDv1RawSHA256([]byte("a")), CIDv1RawSHA256([]byte("b")))
}

func TestCIDv1RawSHA256Decodes(t *testing.T) {
	data := []byte("canonical manifest bytes")
	c, err := cid.Decode(CIDv1RawSHA256(data))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), uint64(c.Version()))
	assert.Equal(t, uint64(cid.Raw), c.Type())
}
