package manifest

// CreateModel assembles a model manifest from cfg.
func CreateModel(cfg CreationConfig) (*Manifest, error) {
	return Create(cfg, KindModel)
}
