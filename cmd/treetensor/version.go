package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/treetensor/internal/serialization"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "treetensor %s (archive format v%d, backend %s)\n",
				version, serialization.FormatVersion, a.catalog.Backend().Name())
			return err
		},
	}
}
