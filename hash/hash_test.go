package hash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provenact/provenact/errs"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestDigestDeterministic(t *testing.T) {
	data := []byte("test data")
	first := Digest(data)
	second := Digest(data)
	if first != second {
		t.Fatalf("digest not deterministic: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("digest length = %d, want 64", len(first))
	}
}

func TestDigestEmptyInput(t *testing.T) {
	if got := Digest(nil); got != emptySHA256 {
		t.Fatalf("Digest(nil) = %s, want %s", got, emptySHA256)
	}
}

func TestDigestDistinctInputs(t *testing.T) {
	if Digest([]byte("a")) == Digest([]byte("b")) {
		t.Fatalf("distinct inputs produced identical digests")
	}
}

func TestDigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	// Larger than one chunk so the streaming path is exercised.
	content := []byte(strings.Repeat("provenance", 4096))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := DigestFile(path)
	if err != nil {
		t.Fatalf("DigestFile: %v", err)
	}
	if want := Digest(content); got != want {
		t.Fatalf("DigestFile = %s, want %s", got, want)
	}
}

func TestDigestFileMissing(t *testing.T) {
	_, err := DigestFile(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errs.IsKind(err, errs.KindIO) {
		t.Fatalf("expected IO kind, got %v", err)
	}
}

func TestCombineOrderSensitive(t *testing.T) {
	h1 := Digest([]byte("data1"))
	h2 := Digest([]byte("data2"))

	ab, err := Combine([]string{h1, h2})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	ba, err := Combine([]string{h2, h1})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if ab == ba {
		t.Fatalf("combine is not order sensitive")
	}
}

func TestCombineRejectsMalformedHex(t *testing.T) {
	_, err := Combine([]string{Digest([]byte("ok")), "not-hex"})
	if err == nil {
		t.Fatalf("expected error for malformed hex")
	}
	if !errs.IsKind(err, errs.KindHexDecode) {
		t.Fatalf("expected HexDecode kind, got %v", err)
	}
}

func TestCombineEmptyInput(t *testing.T) {
	_, err := Combine(nil)
	if err == nil {
		t.Fatalf("expected error for empty input")
	}
	if !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("expected Validation kind, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	data := []byte("test data")
	if !Verify(data, Digest(data)) {
		t.Fatalf("Verify rejected matching digest")
	}
	if Verify([]byte("different data"), Digest(data)) {
		t.Fatalf("Verify accepted mismatched digest")
	}
	// Case-sensitive comparison.
	if Verify(data, strings.ToUpper(Digest(data))) {
		t.Fatalf("Verify accepted uppercased digest")
	}
}
