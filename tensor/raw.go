// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/treetensor/internal/tensor"
)

// RawTensor is the low-level tensor representation and the usual leaf of a
// tensor tree.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsInt64(), etc.
//   - Nested Go values via ToList() and Item()
//   - Deep copies via Clone() and in-place overwrite via CopyFrom()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Typed access
//	clone := raw.Clone()     // Independent copy
type RawTensor = tensor.RawTensor

// Data returns the elements of r as a []T. It panics if T does not match
// the tensor dtype.
func Data[T DType](r *RawTensor) []T {
	return tensor.Data[T](r)
}
