package main

import (
	"github.com/spf13/cobra"

	"github.com/provenact/provenact/manifest"
)

func newSoftwareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "software",
		Short: "Manage software manifests",
	}
	cmd.AddCommand(newSoftwareCreateCmd())
	return cmd
}

func newSoftwareCreateCmd() *cobra.Command {
	var (
		flags        createFlags
		softwareType string
		version      string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manifest for software used in an ML pipeline",
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
			mc := creation.config()
			mc.SoftwareType = softwareType
			mc.Version = version
			m, err := manifest.CreateSoftware(mc)
			if err != nil {
				return err
			}
			return creation.persist(m)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&softwareType, "software-type", "", "software role, e.g. trainer or preprocessor")
	cmd.Flags().StringVar(&version, "version", "", "software version")
	return cmd
}
