// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the arrays that tensor trees hold as leaves.
//
// # Overview
//
// A RawTensor is a dtype-erased, contiguous, row-major array. This package
// exposes:
//   - RawTensor with typed access (AsFloat32, AsInt64...) and ToList
//   - Shape, DataType and Device definitions
//   - Creation functions: Zeros, Ones, Full, Randn, Randint, FromLiteral
//   - Backend, the kernel interface operations are lifted over
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/treetensor/backend/cpu"
//	    "github.com/born-ml/treetensor/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromLiteral([]any{-1.0, 2.0}, tensor.DefaultTypes)
//	    y, _ := backend.Unary(tensor.OpAbs, x, false)
//	    fmt.Println(y) // tensor([1., 2.])
//	}
//
// # Supported Data Types
//
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers)
//   - bool (boolean masks)
//
// # Type Promotion
//
// Binary kernels compute in a common dtype. Tensors promote by rank
// (bool < uint8 < int32 < int64 < float32 < float64). Go scalars are weak:
// they only lift the result to the default dtype of a higher kind, so
// float32 * 0.5 stays float32 while int64 * 0.5 becomes float32.
//
// # Broadcasting
//
// Element-wise kernels follow NumPy broadcasting rules:
//
//	a: (3, 1)
//	b: (3, 4)
//	a + b: (3, 4)
package tensor
