// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tree provides ordered trees of values and lifts leaf functions
// over them.
//
// # Overview
//
// A Node is an ordered mapping from string keys to children, each child
// being a leaf or another Node. Leaves are opaque to this package: usually
// *tensor.RawTensor, but any value that is not a *Node works.
//
// Walk applies a leaf function to congruent trees, key by key, reusing plain
// (non-tree) arguments at every leaf. Lift and Define turn a leaf function
// into an operation with a result Policy:
//   - PreserveTree: return a tree with the structure of the arguments
//   - ScalarReduce: fold every leaf result into one value
//   - InPlace: write leaf results back into the first argument, if a tree
//   - Literal: convert map[string]any arguments to trees, then preserve
//
// # Basic Usage
//
//	a := tree.FromMap(map[string]any{"x": 1, "y": map[string]any{"z": 2}})
//	b := tree.FromMap(map[string]any{"x": 10, "y": map[string]any{"z": 20}})
//
//	add := tree.Define("add", func(args []any, _ tree.Kwargs) (any, error) {
//	    return args[0].(int) + args[1].(int), nil
//	}, tree.PreserveTree(tree.TensorTree))
//
//	out, _ := add.Call(a, b) // x: 11, y.z: 22
//
// Trees passed to one call must have the same keys at every level,
// otherwise the call fails with a *StructureMismatchError.
package tree
