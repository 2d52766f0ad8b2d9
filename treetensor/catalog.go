// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package treetensor

import (
	"github.com/sirupsen/logrus"

	"github.com/born-ml/treetensor/internal/treetensor"
	"github.com/born-ml/treetensor/tensor"
)

// Catalog maps operation names to lifted operations over one backend.
// It is read-only after construction and safe for concurrent use.
type Catalog = treetensor.Catalog

// Option configures a Catalog.
type Option = treetensor.Option

// ErrUnknownOp is returned by Call for names the catalog does not define.
var ErrUnknownOp = treetensor.ErrUnknownOp

// Default is the catalog of the CPU backend.
var Default = treetensor.Default

// NewCatalog builds the catalog of every operation for backend.
func NewCatalog(backend tensor.Backend, opts ...Option) *Catalog {
	return treetensor.NewCatalog(backend, opts...)
}

// WithDefaults sets the dtypes used for literals and factories when no
// dtype is given.
func WithDefaults(d tensor.Defaults) Option {
	return treetensor.WithDefaults(d)
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return treetensor.WithLogger(l)
}
