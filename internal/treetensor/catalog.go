// Package treetensor lifts tensor operations over trees of tensors.
//
// A Catalog holds one tree.Op per operation, built from a static table when
// the catalog is created for a backend. Default is the catalog of the CPU
// backend; the package-level functions (Abs, Sum, Zeros...) call it.
package treetensor

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/treetensor/internal/backend/cpu"
	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// ErrUnknownOp is returned by Call for names the catalog does not define.
var ErrUnknownOp = errors.New("unknown operation")

// Default is the catalog of the CPU backend.
var Default = NewCatalog(cpu.New())

// Catalog maps operation names to lifted operations over one backend.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	backend  tensor.Backend
	defaults tensor.Defaults
	log      logrus.FieldLogger
	ops      map[string]*tree.Op
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaults sets the dtypes used for literals and factories when no dtype
// is given.
func WithDefaults(d tensor.Defaults) Option {
	return func(c *Catalog) {
		c.defaults = d
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Catalog) {
		c.log = l
	}
}

// NewCatalog builds the catalog of every operation for backend.
func NewCatalog(backend tensor.Backend, opts ...Option) *Catalog {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Catalog{
		backend:  backend,
		defaults: tensor.DefaultTypes,
		log:      discard,
		ops:      make(map[string]*tree.Op, len(operations)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, def := range operations {
		c.ops[def.name] = tree.Define(def.name, def.leaf(c), def.policy(c))
	}
	c.log.WithFields(logrus.Fields{
		"backend":    backend.Name(),
		"operations": len(c.ops),
	}).Debug("catalog ready")
	return c
}

// Backend returns the backend the catalog computes with.
func (c *Catalog) Backend() tensor.Backend {
	return c.backend
}

// Defaults returns the default dtypes of the catalog.
func (c *Catalog) Defaults() tensor.Defaults {
	return c.defaults
}

// Names returns the operation names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.ops))
	for name := range c.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the operation called name.
func (c *Catalog) Lookup(name string) (*tree.Op, bool) {
	op, ok := c.ops[name]
	return op, ok
}

// Call applies the operation called name to args. Arguments of type
// map[string]any are converted to trees first.
func (c *Catalog) Call(name string, args ...any) (any, error) {
	return c.CallKw(name, nil, args...)
}

// CallKw is Call with keyword arguments.
func (c *Catalog) CallKw(name string, kwargs tree.Kwargs, args ...any) (any, error) {
	op, ok := c.ops[name]
	if !ok {
		return nil, fmt.Errorf("treetensor: %w %q", ErrUnknownOp, name)
	}
	args, kwargs = tree.Convert(args, kwargs)

	out, err := op.CallKw(kwargs, args...)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"op":    name,
			"error": err,
		}).Debug("operation failed")
		return nil, err
	}
	return out, nil
}
