package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/manifest"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect, verify, and manage stored manifests",
	}
	cmd.AddCommand(
		newManifestShowCmd(),
		newManifestListCmd(),
		newManifestVerifyCmd(),
		newManifestDeactivateCmd(),
		newManifestDeleteCmd(),
	)
	return cmd
}

func newManifestShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <manifest-id>",
		Short: "Print a stored manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			store, _, err := openBackend(log)
			if err != nil {
				return err
			}
			m, err := store.Retrieve(args[0])
			if err != nil {
				return err
			}
			out, err := manifest.Dump(m, format)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or cbor")
	return cmd
}

func newManifestListCmd() *cobra.Command {
	var kindFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			var filter manifest.Kind
			if kindFilter != "" {
				filter, err = manifest.ParseKind(kindFilter)
				if err != nil {
					return err
				}
			}

			store, _, err := openBackend(log)
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tCREATED")
			for _, e := range entries {
				if filter != "" && e.Kind != filter {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.ID, e.Name, e.Kind, e.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&kindFilter, "kind", "", "only list manifests of this kind")
	return cmd
}

func newManifestVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <manifest-id>",
		Short: "Run all verification stages against a stored manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			store, _, err := openBackend(log)
			if err != nil {
				return err
			}
			if err := manifest.Verify(args[0], store, log); err != nil {
				return err
			}
			fmt.Printf("Manifest %s verified successfully\n", args[0])
			return nil
		},
	}
}

func newManifestDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <manifest-id>",
		Short: "Mark a manifest as superseded without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			store, _, err := openBackend(log)
			if err != nil {
				return err
			}
			m, err := store.Retrieve(args[0])
			if err != nil {
				return err
			}
			if !m.IsActive {
				fmt.Printf("Manifest %s is already inactive\n", args[0])
				return nil
			}
			m.IsActive = false
			if err := store.Store(args[0], m); err != nil {
				return err
			}
			fmt.Printf("Manifest %s deactivated\n", args[0])
			return nil
		},
	}
}

func newManifestDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <manifest-id>",
		Short: "Delete a stored manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			store, _, err := openBackend(log)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Manifest %s deleted\n", args[0])
			return nil
		},
	}
}
