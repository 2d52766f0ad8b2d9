package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/born-ml/treetensor/internal/backend/cpu"
	"github.com/born-ml/treetensor/internal/config"
	"github.com/born-ml/treetensor/internal/literal"
	"github.com/born-ml/treetensor/internal/tree"
	"github.com/born-ml/treetensor/internal/treetensor"
)

// app is the state shared by the subcommands once configuration is loaded.
type app struct {
	cfg     *config.Configuration
	log     *logrus.Logger
	catalog *treetensor.Catalog
	stdout  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout}
	v := viper.New()
	config.SetupViper(v, configFileName)

	var cfgFile string
	root := &cobra.Command{
		Use:           "treetensor",
		Short:         "Apply tensor operations to trees of tensors",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup(v, cfgFile, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./treetensor.yaml)")
	flags.String("output", "", "output format: tree or yaml")
	flags.String("color", "", "color mode: auto, always or never")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	for key, flag := range map[string]string{
		"output":    "output",
		"color":     "color",
		"log_level": "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newOpsCmd(a),
		newApplyCmd(a),
		newConvertCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := config.ReadInConfig(v); err != nil {
		return err
	}

	cfg, err := config.New(v)
	if err != nil {
		return err
	}
	log, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}
	defaults, err := cfg.Defaults()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.catalog = treetensor.NewCatalog(cpu.New(),
		treetensor.WithDefaults(defaults),
		treetensor.WithLogger(log),
	)
	log.WithFields(logrus.Fields{
		"config":      v.ConfigFileUsed(),
		"float_dtype": defaults.Float,
		"int_dtype":   defaults.Int,
	}).Debug("configuration loaded")
	return nil
}

// print writes v to stdout in the configured output format.
func (a *app) print(v any) error {
	if a.cfg.Output == config.OutputYAML {
		return literal.Encode(a.stdout, v)
	}
	if n, ok := v.(*tree.Node); ok {
		return n.Format(a.stdout, a.cfg.Profile(a.stdout))
	}
	_, err := fmt.Fprintln(a.stdout, v)
	return err
}
