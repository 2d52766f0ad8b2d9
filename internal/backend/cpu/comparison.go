package cpu

import (
	"fmt"

	"github.com/born-ml/treetensor/internal/tensor"
)

// Compare returns a bool tensor holding op(a, b) element-wise, with
// broadcasting. Operands are promoted to a common dtype first.
func (cpu *CPUBackend) Compare(op tensor.CompareOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, b, err = cpu.promoted(a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tensor.NewRaw(outShape, tensor.Bool, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dst := result.AsBool()

	switch a.DType() {
	case tensor.Float32:
		err = broadcastBinary(dst, a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, compareFunc[float32](op))
	case tensor.Float64:
		err = broadcastBinary(dst, a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, compareFunc[float64](op))
	case tensor.Int32:
		err = broadcastBinary(dst, a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, compareFunc[int32](op))
	case tensor.Int64:
		err = broadcastBinary(dst, a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, compareFunc[int64](op))
	case tensor.Uint8:
		err = broadcastBinary(dst, a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, compareFunc[uint8](op))
	case tensor.Bool:
		err = broadcastBinary(dst, a.AsBool(), b.AsBool(), a.Shape(), b.Shape(), outShape, compareBool(op))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func compareFunc[T tensor.Numeric](op tensor.CompareOp) func(T, T) bool {
	switch op {
	case tensor.OpEq:
		return func(x, y T) bool { return x == y }
	case tensor.OpNe:
		return func(x, y T) bool { return x != y }
	case tensor.OpLt:
		return func(x, y T) bool { return x < y }
	case tensor.OpLe:
		return func(x, y T) bool { return x <= y }
	case tensor.OpGt:
		return func(x, y T) bool { return x > y }
	case tensor.OpGe:
		return func(x, y T) bool { return x >= y }
	default:
		return nil
	}
}

// compareBool orders false before true.
func compareBool(op tensor.CompareOp) func(bool, bool) bool {
	rank := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	cmp := compareFunc[int32](op)
	if cmp == nil {
		return nil
	}
	return func(x, y bool) bool { return cmp(int32(rank(x)), int32(rank(y))) }
}

// Equal reports whether a and b have the same shape and the same elements.
// Differing dtypes are compared after promotion.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) (bool, error) {
	if !a.Shape().Equal(b.Shape()) {
		return false, nil
	}
	eq, err := cpu.Compare(tensor.OpEq, a, b)
	if err != nil {
		return false, fmt.Errorf("equal: %w", err)
	}
	for _, v := range eq.AsBool() {
		if !v {
			return false, nil
		}
	}
	return true, nil
}
