package manifest

import (
	"go.uber.org/zap"
)

// LinkCrossReferences resolves each id through the store, computes the
// referenced manifest's content digest, and appends a cross-reference to
// m. Resolution failures are logged and skipped so one bad link never
// poisons an otherwise valid manifest; verification later reports any
// reference that went stale.
func LinkCrossReferences(m *Manifest, ids []string, store Store, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, id := range ids {
		linked, err := store.Retrieve(id)
		if err != nil {
			log.Warn("skipping cross-reference: manifest not retrievable",
				zap.String("manifest_id", id), zap.Error(err))
			continue
		}
		digest, err := linked.Digest()
		if err != nil {
			log.Warn("skipping cross-reference: manifest not hashable",
				zap.String("manifest_id", id), zap.Error(err))
			continue
		}
		m.CrossReferences = append(m.CrossReferences, CrossReference{
			ManifestURL:  id,
			ManifestHash: digest,
			MediaType:    "application/json",
		})
	}
}
