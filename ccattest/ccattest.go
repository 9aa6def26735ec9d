// Package ccattest wraps the confidential-computing attestation
// boundary. Reports are opaque strings embedded verbatim as assertion
// payloads; the platform name labels the assertion.
package ccattest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/provenact/provenact/errs"
)

// Provider produces attestation evidence for the platform it runs on.
type Provider interface {
	PlatformName() (string, error)
	AttestationReport() (string, error)
}

// tdxGuestDevice is present when running inside a TDX guest.
const tdxGuestDevice = "/dev/tdx_guest"

// Detect selects a provider for the current platform. Outside a
// confidential-computing environment the mock provider stands in, mirroring
// how local development and tests run.
func Detect() Provider {
	if _, err := os.Stat(tdxGuestDevice); err == nil {
		// A real TDX quote provider is an external collaborator; until one
		// is wired in, TDX guests also get the mock labeled with the real
		// platform name.
		return NewMockProvider("tdx-linux")
	}
	return NewMockProvider("mock-" + runtime.GOOS)
}

// GetReport obtains an attestation report from the detected provider.
// When show is set, the report is also written to stdout.
func GetReport(show bool) (string, error) {
	p := Detect()
	report, err := p.AttestationReport()
	if err != nil {
		return "", err
	}
	if show {
		fmt.Println("Got report:", report)
	}
	return report, nil
}

// PlatformName reports the detected platform.
func PlatformName() (string, error) {
	return Detect().PlatformName()
}

// MockProvider returns fixed evidence for environments without
// attestation hardware.
type MockProvider struct {
	platform string
}

// NewMockProvider constructs a mock provider labeled with platform.
func NewMockProvider(platform string) *MockProvider {
	return &MockProvider{platform: platform}
}

func (p *MockProvider) PlatformName() (string, error) {
	if p.platform == "" {
		return "", errs.New(errs.KindAttestation, "mock provider has no platform name")
	}
	return p.platform, nil
}

func (p *MockProvider) AttestationReport() (string, error) {
	body, err := json.Marshal(map[string]any{
		"platform":       p.platform,
		"report_version": 1,
		"mock":           true,
	})
	if err != nil {
		return "", errs.Wrap(errs.KindAttestation, err, "encode mock report")
	}
	return base64.StdEncoding.EncodeToString(body), nil
}
