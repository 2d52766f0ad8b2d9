// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package treetensor applies tensor operations to trees of tensors.
//
// # Overview
//
// A tensor tree is an ordered, nested mapping whose leaves are tensors
// (see package tree). Every operation in this package is lifted over such
// trees:
//   - Element-wise operations (Abs, Add, Clamp...) return a tree of the same
//     structure, computed leaf by leaf.
//   - Reductions (Sum, All, Max...) fold every leaf into one value.
//   - In-place variants (AbsInplace...) overwrite the leaves of their first
//     argument and return it.
//   - Plain values (Go scalars, tensors) are broadcast to every leaf.
//
// Arguments of type map[string]any are converted to trees first, with keys
// in sorted order. Trees passed together must have the same structure,
// otherwise the call fails with tree.ErrStructureMismatch.
//
// # Basic Usage
//
//	t, _ := treetensor.Tensor(map[string]any{
//	    "a": []any{-1, 2},
//	    "b": map[string]any{"x": []any{[]any{-1.5, 0.5}}},
//	})
//	abs, _ := treetensor.Abs(t)  // a: [1, 2], b.x: [[1.5, 0.5]]
//	sum, _ := treetensor.Sum(abs) // tensor(5.)
//
// # Catalogs
//
// Operations are looked up by name in a Catalog built for one backend. The
// package-level functions use Default, the catalog of the CPU backend. A
// Catalog with other literal dtypes or a logger is built with NewCatalog:
//
//	c := treetensor.NewCatalog(cpu.New(),
//	    treetensor.WithDefaults(tensor.Defaults{Float: tensor.Float64, Int: tensor.Int64}),
//	    treetensor.WithLogger(logrus.StandardLogger()),
//	)
//	out, err := c.CallKw("zeros", tree.Kwargs{"dtype": tensor.Int32}, []int{2, 3})
package treetensor
