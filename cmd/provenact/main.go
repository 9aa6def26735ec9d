// Command provenact creates, links, verifies, and stores provenance
// manifests for machine-learning artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/provenact/provenact/config"
	"github.com/provenact/provenact/signing"
	"github.com/provenact/provenact/storage"

	_ "github.com/provenact/provenact/storage/database"
	_ "github.com/provenact/provenact/storage/localfs"
	_ "github.com/provenact/provenact/storage/memory"
	_ "github.com/provenact/provenact/storage/translog"
)

var (
	flagConfig      string
	flagStorageType string
	flagStorageURL  string
	flagStoragePath string
	flagVerbose     bool
)

func main() {
	root := &cobra.Command{
		Use:           "provenact",
		Short:         "Provenance manifests for ML models, datasets, software, and evaluations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML configuration")
	root.PersistentFlags().StringVar(&flagStorageType, "storage-type", "", "storage backend: database, rekor, local-fs, memory")
	root.PersistentFlags().StringVar(&flagStorageURL, "storage-url", "", "storage connection string")
	root.PersistentFlags().StringVar(&flagStoragePath, "storage-path", "", "storage directory for the local-fs backend")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newModelCmd(),
		newDatasetCmd(),
		newSoftwareCmd(),
		newEvaluationCmd(),
		newManifestCmd(),
		newAttestCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// loadConfig merges the configuration file with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagStorageType != "" {
		cfg.Storage.Type = flagStorageType
	}
	if flagStorageURL != "" {
		cfg.Storage.URL = flagStorageURL
		cfg.Storage.RekorURL = flagStorageURL
	}
	if flagStoragePath != "" {
		cfg.Storage.Path = flagStoragePath
	}
	return cfg, nil
}

func openBackend(log *zap.Logger) (storage.Backend, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := storage.Open(cfg.Storage.Type, storage.Options{
		URL:  cfg.BackendURL(),
		Path: cfg.Storage.Path,
		Log:  log,
	})
	if err != nil {
		return nil, nil, err
	}
	return backend, cfg, nil
}

// createFlags are the flags shared by every create subcommand.
type createFlags struct {
	paths   []string
	names   []string
	name    string
	desc    string
	org     string
	author  string
	keyPath string
	hashAlg string
	links   []string
	attest  bool
}

func (f *createFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.paths, "path", nil, "source file (repeatable)")
	cmd.Flags().StringSliceVar(&f.names, "ingredient-name", nil, "ingredient title, parallel to --path")
	cmd.Flags().StringVar(&f.name, "name", "", "asset name")
	cmd.Flags().StringVar(&f.desc, "description", "", "asset description")
	cmd.Flags().StringVar(&f.org, "organization", "", "authoring organization")
	cmd.Flags().StringVar(&f.author, "author", "", "authoring person")
	cmd.Flags().StringVar(&f.keyPath, "key", "", "RSA private key in PEM format for claim signing")
	cmd.Flags().StringVar(&f.hashAlg, "hash-alg", "", "signing hash: sha256, sha384, sha512 (default sha384)")
	cmd.Flags().StringSliceVar(&f.links, "link", nil, "manifest id to cross-reference (repeatable)")
	cmd.Flags().BoolVar(&f.attest, "with-cc-attestation", false, "attach a confidential-computing attestation report")
	cmd.MarkFlagRequired("name")
}

func (f *createFlags) creationConfig(cfg *config.Config, store storage.Backend, log *zap.Logger) (manifestCreation, error) {
	keyPath := f.keyPath
	if keyPath == "" {
		keyPath = cfg.KeyPath
	}
	alg, err := signing.ParseAlgorithm(f.hashAlg)
	if err != nil {
		return manifestCreation{}, err
	}
	return manifestCreation{
		flags:       f,
		keyPath:     keyPath,
		hashAlg:     alg,
		store:       store,
		verifyAfter: cfg.EnableVerification,
		log:         log,
	}, nil
}
