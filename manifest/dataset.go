package manifest

// CreateDataset assembles a dataset manifest from cfg.
func CreateDataset(cfg CreationConfig) (*Manifest, error) {
	return Create(cfg, KindDataset)
}
