// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/born-ml/treetensor/internal/tree"
)

// Kwargs holds keyword arguments.
type Kwargs = tree.Kwargs

// LeafFunc computes one leaf of a lifted call.
type LeafFunc = tree.LeafFunc

// Lifted is a leaf function lifted over trees.
type Lifted = tree.Lifted

// WalkOption configures Walk.
type WalkOption = tree.WalkOption

// Op is a named, lifted operation.
type Op = tree.Op

// Policy selects how leaf results become the result of a lifted call.
type Policy = tree.Policy

// Mode is the kind of a Policy.
type Mode = tree.Mode

// Policy modes.
const (
	Preserve    Mode = tree.Preserve
	Reduce      Mode = tree.Reduce
	InPlaceMode Mode = tree.InPlaceMode
	LiteralMode Mode = tree.LiteralMode
)

// CombineFunc folds one leaf result into an accumulator.
type CombineFunc = tree.CombineFunc

// StructureMismatchError describes the first key-set divergence between
// trees walked together.
type StructureMismatchError = tree.StructureMismatchError

var (
	// ErrStructureMismatch is wrapped by every StructureMismatchError.
	ErrStructureMismatch = tree.ErrStructureMismatch

	// ErrEmptyReduce is returned by reductions without an identity over
	// empty trees.
	ErrEmptyReduce = tree.ErrEmptyReduce
)

// Walk applies fn leaf by leaf to every tree among args and kwargs.
func Walk(fn LeafFunc, args []any, kwargs Kwargs, opts ...WalkOption) (any, error) {
	return tree.Walk(fn, args, kwargs, opts...)
}

// WithContainer sets the container of the trees Walk returns.
func WithContainer(c Container) WalkOption {
	return tree.WithContainer(c)
}

// Lift turns fn into an operation over trees with the given policy.
func Lift(fn LeafFunc, policy Policy) Lifted {
	return tree.Lift(fn, policy)
}

// Define builds a named Op.
func Define(name string, fn LeafFunc, policy Policy) *Op {
	return tree.Define(name, fn, policy)
}

// PreserveTree returns trees of the given container.
func PreserveTree(container Container) Policy {
	return tree.PreserveTree(container)
}

// ScalarReduce folds leaf results with combine, starting from identity. A
// nil identity starts from the first leaf.
func ScalarReduce(combine CombineFunc, identity any) Policy {
	return tree.ScalarReduce(combine, identity)
}

// InPlace writes leaf results into the first tree argument and returns it.
func InPlace() Policy {
	return tree.InPlace()
}

// Literal converts map[string]any arguments to trees before walking.
func Literal() Policy {
	return tree.Literal()
}
