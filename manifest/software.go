package manifest

import "fmt"

// CreateSoftware assembles a software manifest. The software type and
// version, when present, are folded into the description so the manifest
// remains self-describing even to readers that ignore action parameters.
func CreateSoftware(cfg CreationConfig) (*Manifest, error) {
	if cfg.SoftwareType != "" && cfg.Version != "" {
		cfg.Description = fmt.Sprintf("%s (%s %s)", cfg.Description, cfg.SoftwareType, cfg.Version)
	}
	return Create(cfg, KindSoftware)
}
