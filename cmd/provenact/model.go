package main

import (
	"github.com/spf13/cobra"

	"github.com/provenact/provenact/manifest"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage model manifests",
	}
	cmd.AddCommand(newModelCreateCmd())
	return cmd
}

func newModelCreateCmd() *cobra.Command {
	var flags createFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manifest for a trained model",
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
			m, err := manifest.CreateModel(creation.config())
			if err != nil {
				return err
			}
			return creation.persist(m)
		},
	}
	flags.register(cmd)
	return cmd
}
