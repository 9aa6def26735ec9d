package manifest

import (
	"strings"

	"go.uber.org/zap"

	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/hash"
)

// Verify retrieves a manifest and runs it through all verification
// stages: structural validation, ingredient content hashes, cross-
// reference integrity, and kind completeness. Unlike creation, which
// tolerates broken links, verification fails closed: the first stage
// failure aborts with an error describing what broke.
func Verify(id string, store Store, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	m, err := store.Retrieve(id)
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to retrieve manifest %s", id)
	}

	if err := Validate(m); err != nil {
		return err
	}
	log.Info("manifest structure valid", zap.String("manifest_id", id))

	if err := verifyIngredients(m, log); err != nil {
		return err
	}

	if err := verifyCrossReferences(m, store, log); err != nil {
		return err
	}

	if err := verifyCompleteness(m, store, log); err != nil {
		return err
	}

	log.Info("manifest verified", zap.String("manifest_id", id))
	return nil
}

// verifyIngredients re-hashes every ingredient. file:// content is
// checked strictly: unreadable content is a failure. Any other URL gets
// a best-effort recomputation — a readable target must still match its
// recorded hash, and only an unreadable one is logged and skipped.
func verifyIngredients(m *Manifest, log *zap.Logger) error {
	for _, ing := range m.Ingredients {
		url := ing.Data.URL
		local := strings.HasPrefix(url, "file://")
		path := strings.TrimPrefix(url, "file://")

		computed, err := hash.DigestFile(path)
		if err != nil {
			if local {
				return errs.Wrap(errs.KindIO, err, "could not verify ingredient %s: content unreadable at %s", ing.Title, path)
			}
			log.Warn("cannot recompute digest for non-local ingredient",
				zap.String("ingredient", ing.Title), zap.String("url", url))
			continue
		}
		if computed != ing.Data.Hash {
			return errs.New(errs.KindValidation,
				"hash verification failed for ingredient %s: expected %s, computed %s",
				ing.Title, ing.Data.Hash, computed)
		}
		log.Info("ingredient hash verified", zap.String("ingredient", ing.Title))
	}
	return nil
}

// verifyCrossReferences resolves every linked manifest and compares its
// current content digest against the hash frozen at link time.
func verifyCrossReferences(m *Manifest, store Store, log *zap.Logger) error {
	for _, ref := range m.CrossReferences {
		linked, err := store.Retrieve(ref.ManifestURL)
		if err != nil {
			return errs.Wrap(errs.KindStorage, err, "cross-referenced manifest %s not retrievable", ref.ManifestURL)
		}
		digest, err := linked.Digest()
		if err != nil {
			return err
		}
		if digest != ref.ManifestHash {
			return errs.New(errs.KindValidation,
				"cross-reference integrity failure for %s: expected %s, computed %s",
				ref.ManifestURL, ref.ManifestHash, digest)
		}
		log.Info("cross-reference verified", zap.String("manifest_id", ref.ManifestURL))
	}
	return nil
}

// verifyCompleteness checks kind-specific requirements: every non-
// evaluation manifest must carry at least one ingredient and the
// assertion matching its kind, and an evaluation must still point at a
// model and a dataset.
func verifyCompleteness(m *Manifest, store Store, log *zap.Logger) error {
	kind := InferKind(m)
	switch kind {
	case KindModel, KindDataset, KindSoftware:
		if len(m.Ingredients) == 0 {
			return errs.New(errs.KindValidation, "%s manifest has no ingredients", string(kind))
		}
	}

	switch kind {
	case KindModel:
		if !m.hasCreativeWork("Model") {
			log.Warn("manifest lacks a Model creative-work assertion", zap.String("manifest_id", m.InstanceID))
			return errs.New(errs.KindValidation, "model manifest is missing its Model assertion")
		}
	case KindDataset:
		if !m.hasCreativeWork("Dataset") {
			log.Warn("manifest lacks a Dataset creative-work assertion", zap.String("manifest_id", m.InstanceID))
			return errs.New(errs.KindValidation, "dataset manifest is missing its Dataset assertion")
		}
	case KindSoftware:
		if !m.hasCreativeWork("Software") && !m.hasSoftwareParameters() {
			log.Warn("manifest lacks software provenance", zap.String("manifest_id", m.InstanceID))
			return errs.New(errs.KindValidation, "software manifest is missing its Software assertion")
		}
	case KindEvaluation:
		return verifyEvaluationLinks(m, store)
	case KindUnknown:
		return errs.New(errs.KindValidation, "manifest kind could not be determined")
	}
	return nil
}

// verifyEvaluationLinks requires that the cross-references of an
// evaluation manifest still include at least one model and one dataset.
func verifyEvaluationLinks(m *Manifest, store Store) error {
	var haveModel, haveDataset bool
	for _, ref := range m.CrossReferences {
		linked, err := store.Retrieve(ref.ManifestURL)
		if err != nil {
			return errs.Wrap(errs.KindStorage, err, "cross-referenced manifest %s not retrievable", ref.ManifestURL)
		}
		switch InferKind(linked) {
		case KindModel:
			haveModel = true
		case KindDataset:
			haveDataset = true
		}
	}
	if !haveModel {
		return errs.New(errs.KindValidation, "evaluation manifest does not reference a model")
	}
	if !haveDataset {
		return errs.New(errs.KindValidation, "evaluation manifest does not reference a dataset")
	}
	return nil
}
