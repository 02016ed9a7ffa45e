package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/cuemby/stitch/pkg/types"
	"github.com/spf13/cobra"
)

func newRevisionsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions",
		Short: "Manage saved artifact revisions",
	}

	cmd.AddCommand(newRevisionsListCmd(c))
	cmd.AddCommand(newRevisionsGetCmd(c))
	cmd.AddCommand(newRevisionsDeleteCmd(c))
	return cmd
}

func newRevisionsListCmd(c *cli) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List revisions of a namespace, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("namespace") {
				namespace = c.cfg.Namespace
			}

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			revs, err := store.ListRevisions(namespace)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSOURCE\tLABELS\tCREATED\tDIGEST")
			for _, rev := range revs {
				labels := 0
				if rev.Artifact != nil {
					labels = len(rev.Artifact.Labels)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					rev.ID, rev.Source, labels, rev.CreatedAt.Format(time.RFC3339), rev.Digest)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace to list (default: config namespace)")
	return cmd
}

func newRevisionsGetCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Print the artifact of a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := types.ParseFormat(output)
			if err != nil {
				return err
			}

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rev, err := store.GetRevision(args[0])
			if err != nil {
				return err
			}

			data, err := rev.Artifact.Encode(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}

func newRevisionsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteRevision(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Revision deleted: %s\n", args[0])
			return nil
		},
	}
}
