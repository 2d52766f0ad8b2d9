package cpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"

	"github.com/born-ml/treetensor/internal/tensor"
)

// integer is the set of integer element types tensors can hold.
type integer interface {
	~int32 | ~int64 | ~uint8
}

// Binary performs an element-wise binary operation with NumPy-style
// broadcasting. Operands are first promoted to a common dtype; division
// additionally promotes integer results to the default float dtype.
func (cpu *CPUBackend) Binary(op tensor.BinaryOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, b, err = cpu.promoted(a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dtype := a.DType()

	switch {
	case op == tensor.OpAnd || op == tensor.OpOr:
		if a, err = cpu.Cast(a, tensor.Bool); err == nil {
			b, err = cpu.Cast(b, tensor.Bool)
		}
		dtype = tensor.Bool
	case op == tensor.OpDiv && !dtype.IsFloat():
		dtype = tensor.DefaultTypes.Float
		if a, err = cpu.Cast(a, dtype); err == nil {
			b, err = cpu.Cast(b, dtype)
		}
	case dtype == tensor.Bool && op != tensor.OpMinimum && op != tensor.OpMaximum:
		return nil, fmt.Errorf("%s: unsupported dtype %s", op, dtype)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch dtype {
	case tensor.Float32:
		err = broadcastBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, floatOp[float32](op, pow32))
	case tensor.Float64:
		err = broadcastBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, floatOp[float64](op, math.Pow))
	case tensor.Int32:
		err = broadcastBinary(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, intOp[int32](op))
	case tensor.Int64:
		err = broadcastBinary(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, intOp[int64](op))
	case tensor.Uint8:
		err = broadcastBinary(result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, intOp[uint8](op))
	case tensor.Bool:
		err = broadcastBinary(result.AsBool(), a.AsBool(), b.AsBool(), a.Shape(), b.Shape(), outShape, boolOp(op))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func pow32(x, y float32) float32 {
	return math32.Pow(x, y)
}

// broadcastBinary evaluates f over the broadcast of a and b into dst.
// A nil f means the op is not defined for the element type.
func broadcastBinary[T, R tensor.DType](dst []R, a, b []T, aShape, bShape, outShape tensor.Shape, f func(T, T) R) error {
	if f == nil {
		return fmt.Errorf("unsupported dtype")
	}
	if aShape.Equal(outShape) && bShape.Equal(outShape) {
		for i := range dst {
			dst[i] = f(a[i], b[i])
		}
		return nil
	}

	outStrides := outShape.ComputeStrides()
	aStrides := tensor.BroadcastStrides(aShape, outShape)
	bStrides := tensor.BroadcastStrides(bShape, outShape)
	for i := range dst {
		aIdx := tensor.FlatIndex(i, outStrides, aStrides)
		bIdx := tensor.FlatIndex(i, outStrides, bStrides)
		dst[i] = f(a[aIdx], b[bIdx])
	}
	return nil
}

func floatOp[T constraints.Float](op tensor.BinaryOp, pow func(T, T) T) func(T, T) T {
	switch op {
	case tensor.OpAdd:
		return func(x, y T) T { return x + y }
	case tensor.OpSub:
		return func(x, y T) T { return x - y }
	case tensor.OpMul:
		return func(x, y T) T { return x * y }
	case tensor.OpDiv:
		return func(x, y T) T { return x / y }
	case tensor.OpPow:
		return pow
	case tensor.OpMinimum:
		return minimum[T]
	case tensor.OpMaximum:
		return maximum[T]
	default:
		return nil
	}
}

func intOp[T integer](op tensor.BinaryOp) func(T, T) T {
	switch op {
	case tensor.OpAdd:
		return func(x, y T) T { return x + y }
	case tensor.OpSub:
		return func(x, y T) T { return x - y }
	case tensor.OpMul:
		return func(x, y T) T { return x * y }
	case tensor.OpPow:
		return intPow[T]
	case tensor.OpMinimum:
		return minimum[T]
	case tensor.OpMaximum:
		return maximum[T]
	default:
		return nil
	}
}

func boolOp(op tensor.BinaryOp) func(bool, bool) bool {
	switch op {
	case tensor.OpAnd, tensor.OpMinimum:
		return func(x, y bool) bool { return x && y }
	case tensor.OpOr, tensor.OpMaximum:
		return func(x, y bool) bool { return x || y }
	default:
		return nil
	}
}

// minimum propagates NaN like the array-library minimum.
func minimum[T constraints.Ordered](x, y T) T {
	if x != x || x < y { //nolint:gocritic // x != x detects NaN
		return x
	}
	return y
}

func maximum[T constraints.Ordered](x, y T) T {
	if x != x || x > y { //nolint:gocritic // x != x detects NaN
		return x
	}
	return y
}

// intPow computes x**y by squaring. Negative exponents truncate toward zero,
// which gives 0 except for bases 1 and -1.
func intPow[T integer](x, y T) T {
	if y < 0 {
		minusOne := ^T(0)
		switch x {
		case 1:
			return 1
		case minusOne:
			if y%2 == 0 {
				return 1
			}
			return x
		default:
			return 0
		}
	}
	result := T(1)
	for y > 0 {
		if y&1 == 1 {
			result *= x
		}
		x *= x
		y >>= 1
	}
	return result
}
