package main

import (
	"github.com/spf13/cobra"

	"github.com/provenact/provenact/manifest"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage dataset manifests",
	}
	cmd.AddCommand(newDatasetCreateCmd())
	return cmd
}

func newDatasetCreateCmd() *cobra.Command {
	var flags createFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manifest for a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			store, cfg, err := openBackend(log)
			if err != nil {
				return err
			}
			creation, err := flags.creationConfig(cfg, store, log)
			if err != nil {
				return err
			}
			m, err := manifest.CreateDataset(creation.config())
			if err != nil {
				return err
			}
			return creation.persist(m)
		},
	}
	flags.register(cmd)
	return cmd
}
