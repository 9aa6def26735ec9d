package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/signing"
	"github.com/provenact/provenact/storage"
)

// manifestCreation carries everything one create subcommand needs.
type manifestCreation struct {
	flags       *createFlags
	keyPath     string
	hashAlg     signing.HashAlgorithm
	store       storage.Backend
	verifyAfter bool
	log         *zap.Logger
}

func (c manifestCreation) config() manifest.CreationConfig {
	return manifest.CreationConfig{
		Paths:           c.flags.paths,
		IngredientNames: c.flags.names,
		Name:            c.flags.name,
		Description:     c.flags.desc,
		AuthorOrg:       c.flags.org,
		AuthorName:      c.flags.author,
		KeyPath:         c.keyPath,
		HashAlg:         c.hashAlg,
		LinkedManifests: c.flags.links,
		Store:           c.store,
		WithAttestation: c.flags.attest,
		Log:             c.log,
	}
}

// persist validates and stores a freshly created manifest, then reports
// its id on stdout.
func (c manifestCreation) persist(m *manifest.Manifest) error {
	if err := manifest.Validate(m); err != nil {
		return err
	}
	if err := c.store.Store(m.InstanceID, m); err != nil {
		return err
	}
	c.log.Info("manifest stored",
		zap.String("manifest_id", m.InstanceID),
		zap.String("kind", string(manifest.InferKind(m))))
	if c.verifyAfter {
		if err := manifest.Verify(m.InstanceID, c.store, c.log); err != nil {
			return err
		}
	}
	fmt.Println(m.InstanceID)
	return nil
}
