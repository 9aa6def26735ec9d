package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/ccattest"
)

func newAttestCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "attest",
		Short: "Fetch a confidential-computing attestation report for this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := ccattest.GetReport(show)
			if err != nil {
				return err
			}
			platform, err := ccattest.PlatformName()
			if err != nil {
				return err
			}
			fmt.Printf("Platform: %s\n", platform)
			if !show {
				fmt.Printf("Report (%d bytes) obtained; rerun with --show to print it\n", len(report))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the raw report")
	return cmd
}
