package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cuemby/stitch/pkg/specs"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := specs.Registry()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range specs.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, registry[name].Description)
			}
			return w.Flush()
		},
	}
}
