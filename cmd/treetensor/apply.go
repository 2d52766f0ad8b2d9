package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/treetensor/internal/literal"
	"github.com/born-ml/treetensor/internal/parallel"
	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
	"github.com/born-ml/treetensor/internal/treetensor"
)

type applyOptions struct {
	args  []string
	dtype string
	out   string
	each  bool
}

func newApplyCmd(a *app) *cobra.Command {
	var opts applyOptions
	cmd := &cobra.Command{
		Use:   "apply <op> [file...]",
		Short: "Apply an operation to trees loaded from files",
		Long: `Apply loads every file and calls the operation with the loaded trees as
positional arguments, followed by the --arg values. Each --arg is parsed as
a YAML value: "2", "0.5", "true" and "[2, 3]" are an int, a float, a bool
and a shape.

With --each the operation is called once per file, files in parallel.`,
		Example: `  treetensor apply abs weights.yaml
  treetensor apply add a.born b.born --out sum.born
  treetensor apply clamp x.yaml --arg 0 --arg 1
  treetensor apply zeros --arg "[2, 3]" --dtype int32
  treetensor apply sum --each runs/*.safetensors`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.apply(args[0], args[1:], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.args, "arg", nil, "extra positional argument as a YAML value (repeatable)")
	flags.StringVar(&opts.dtype, "dtype", "", "dtype keyword argument")
	flags.StringVarP(&opts.out, "out", "o", "", "write the result to a .born, .safetensors or .yaml file")
	flags.BoolVar(&opts.each, "each", false, "apply the operation to each file separately")
	return cmd
}

func (a *app) apply(name string, files []string, opts applyOptions) error {
	if _, ok := a.catalog.Lookup(name); !ok {
		return fmt.Errorf("%w %q (see treetensor ops)", treetensor.ErrUnknownOp, name)
	}
	if opts.each && opts.out != "" {
		return errors.New("--out cannot be combined with --each")
	}

	extra := make([]any, len(opts.args))
	for i, s := range opts.args {
		v, err := literal.DecodeString(s, literal.YAML)
		if err != nil {
			return fmt.Errorf("--arg %q: %w", s, err)
		}
		extra[i] = v
	}

	var kwargs tree.Kwargs
	if opts.dtype != "" {
		dtype, err := tensor.ParseDataType(opts.dtype)
		if err != nil {
			return fmt.Errorf("--dtype: %w", err)
		}
		kwargs = tree.Kwargs{"dtype": dtype}
	}

	if opts.each {
		return a.applyEach(name, files, extra, kwargs)
	}

	operands, err := parallel.Map(len(files), func(i int) (any, error) {
		return a.load(files[i])
	}, parallel.DefaultConfig())
	if err != nil {
		return err
	}
	result, err := a.catalog.CallKw(name, kwargs, append(operands, extra...)...)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"op":    name,
		"files": len(files),
	}).Debug("applied")

	if opts.out != "" {
		if err := a.save(opts.out, result); err != nil {
			return err
		}
		a.log.WithField("path", opts.out).Info("result saved")
		return nil
	}
	return a.print(result)
}

// applyEach calls the operation once per file. Results are printed in
// file order after every call succeeded.
func (a *app) applyEach(name string, files []string, extra []any, kwargs tree.Kwargs) error {
	if len(files) == 0 {
		return errors.New("--each needs at least one file")
	}
	results, err := parallel.Map(len(files), func(i int) (any, error) {
		v, err := a.load(files[i])
		if err != nil {
			return nil, err
		}
		out, err := a.catalog.CallKw(name, kwargs, append([]any{v}, extra...)...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", files[i], err)
		}
		return out, nil
	}, parallel.DefaultConfig())
	if err != nil {
		return err
	}

	for i, result := range results {
		if _, err := fmt.Fprintf(a.stdout, "# %s\n", files[i]); err != nil {
			return err
		}
		if err := a.print(result); err != nil {
			return err
		}
	}
	return nil
}
