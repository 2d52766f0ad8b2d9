package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operations and how they return results",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			for _, name := range a.catalog.Names() {
				op, _ := a.catalog.Lookup(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, op.Policy().Mode)
			}
			return tw.Flush()
		},
	}
}
