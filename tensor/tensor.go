// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/treetensor/internal/tensor"
)

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// Numeric is the subset of DType that supports arithmetic.
type Numeric = tensor.Numeric

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Defaults holds the dtypes chosen for Go scalars and nested literals.
type Defaults = tensor.Defaults

// DefaultTypes is float32 for floating point values and int64 for integers.
var DefaultTypes = tensor.DefaultTypes

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// ParseDataType parses a dtype name such as "float32", "double" or "long".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// ShapeOf converts a Shape, []int, int or []any of ints into a Shape.
func ShapeOf(v any) (Shape, error) {
	return tensor.ShapeOf(v)
}

// BroadcastShapes returns the shape a and b broadcast to.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// PromoteTypes returns the dtype two operands are computed in.
func PromoteTypes(a, b *RawTensor) DataType {
	return tensor.PromoteTypes(a, b)
}

// NewRaw allocates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype, device)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Ones(shape, dtype, device)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value any, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Full(shape, value, dtype, device)
}

// Randn samples the standard normal distribution. A nil rng uses the
// math/rand global source.
func Randn(shape Shape, dtype DataType, device Device, rng *rand.Rand) (*RawTensor, error) {
	return tensor.Randn(shape, dtype, device, rng)
}

// Randint samples integers in [low, high).
func Randint(low, high int64, shape Shape, dtype DataType, device Device, rng *rand.Rand) (*RawTensor, error) {
	return tensor.Randint(low, high, shape, dtype, device, rng)
}

// Scalar wraps a Go scalar into a weak 0-d tensor.
func Scalar(v any) (*RawTensor, error) {
	return tensor.Scalar(v)
}

// FromLiteral builds a tensor from a Go scalar, a nested slice or a tensor.
// Values without a dtype of their own take the dtypes in defaults.
//
// Example:
//
//	x, _ := tensor.FromLiteral([]any{[]any{1, 2}, []any{3, 4}}, tensor.DefaultTypes)
//	fmt.Println(x.Shape(), x.DType()) // [2, 2] int64
func FromLiteral(v any, defaults Defaults) (*RawTensor, error) {
	return tensor.FromLiteral(v, defaults)
}
