package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a tree between file formats",
		Long: `Convert reads a tree from a .yaml, .yml, .json, .toml, .born or .safetensors
file and writes it as .born, .safetensors, .yaml or .yml.

SafeTensors stores flat names, so keys containing dots cannot be written to it.`,
		Example: "  treetensor convert weights.yaml weights.born",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := a.load(args[0])
			if err != nil {
				return err
			}
			if err := a.save(args[1], v); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"from": args[0],
				"to":   args[1],
			}).Info("converted")
			return nil
		},
	}
}
