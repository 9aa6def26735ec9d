// Package config loads engine settings from a YAML file, falling back to
// defaults when the file or individual fields are absent.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/provenact/provenact/errs"
)

// StorageConfig selects and parameterizes a storage backend.
type StorageConfig struct {
	// Type names a registered backend: database, rekor, local-fs, or
	// memory. The retired names local and filesystem still resolve.
	Type string `yaml:"type"`
	// URL is the database DSN when Type is database.
	URL string `yaml:"url"`
	// RekorURL is the transparency-log service when Type is rekor.
	RekorURL string `yaml:"rekor_url"`
	// Path is the storage directory when Type is local-fs.
	Path string `yaml:"path"`
}

// Config is the top-level engine configuration.
type Config struct {
	Storage            StorageConfig `yaml:"storage"`
	EnableVerification bool          `yaml:"enable_verification"`
	// KeyPath is the default signing key, overridable per invocation.
	KeyPath string `yaml:"key_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type:     "local-fs",
			RekorURL: "https://rekor.sigstore.dev",
			Path:     ".provenact/manifests",
		},
		EnableVerification: true,
	}
}

// Load reads a YAML configuration file over the defaults. A missing file
// is not an error; unparseable YAML is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(body, cfg); err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// BackendURL returns the connection string for the configured backend
// type.
func (c *Config) BackendURL() string {
	if c.Storage.Type == "rekor" {
		return c.Storage.RekorURL
	}
	return c.Storage.URL
}
