package main

import (
	"github.com/spf13/cobra"

	"github.com/provenact/provenact/manifest"
)

func newEvaluationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluation",
		Short: "Manage evaluation manifests",
	}
	cmd.AddCommand(newEvaluationCreateCmd())
	return cmd
}

func newEvaluationCreateCmd() *cobra.Command {
	var (
		flags     createFlags
		modelID   string
		datasetID string
		metrics   []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manifest for an evaluation run",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			parsed, err := manifest.ParseMetrics(metrics)
			if err != nil {
				return err
			}

			store, cfg, err := openBackend(log)
			if err != nil {
				return err
			}
			creation, err := flags.creationConfig(cfg, store, log)
			if err != nil {
				return err
			}
			mc := creation.config()
			mc.Eval = &manifest.EvalParams{
				ModelID:   modelID,
				DatasetID: datasetID,
				Metrics:   parsed,
			}
			m, err := manifest.CreateEvaluation(mc)
			if err != nil {
				return err
			}
			return creation.persist(m)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&modelID, "model-id", "", "manifest id of the evaluated model")
	cmd.Flags().StringVar(&datasetID, "dataset-id", "", "manifest id of the evaluation dataset")
	cmd.Flags().StringSliceVar(&metrics, "metric", nil, "metric as name=value (repeatable)")
	cmd.MarkFlagRequired("model-id")
	cmd.MarkFlagRequired("dataset-id")
	return cmd
}
