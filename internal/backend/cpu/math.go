package cpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/born-ml/treetensor/internal/tensor"
)

var float32Funcs = map[tensor.UnaryOp]func(float32) float32{
	tensor.OpAbs:     math32.Abs,
	tensor.OpNeg:     func(v float32) float32 { return -v },
	tensor.OpSign:    signOf[float32],
	tensor.OpRound:   func(v float32) float32 { return float32(math.RoundToEven(float64(v))) },
	tensor.OpFloor:   math32.Floor,
	tensor.OpCeil:    math32.Ceil,
	tensor.OpSigmoid: func(v float32) float32 { return 1 / (1 + math32.Exp(-v)) },
	tensor.OpExp:     math32.Exp,
	tensor.OpExp2:    math32.Exp2,
	tensor.OpSqrt:    math32.Sqrt,
	tensor.OpLog:     math32.Log,
	tensor.OpLog2:    math32.Log2,
	tensor.OpLog10:   math32.Log10,
}

var float64Funcs = map[tensor.UnaryOp]func(float64) float64{
	tensor.OpAbs:     math.Abs,
	tensor.OpNeg:     func(v float64) float64 { return -v },
	tensor.OpSign:    signOf[float64],
	tensor.OpRound:   math.RoundToEven,
	tensor.OpFloor:   math.Floor,
	tensor.OpCeil:    math.Ceil,
	tensor.OpSigmoid: func(v float64) float64 { return 1 / (1 + math.Exp(-v)) },
	tensor.OpExp:     math.Exp,
	tensor.OpExp2:    math.Exp2,
	tensor.OpSqrt:    math.Sqrt,
	tensor.OpLog:     math.Log,
	tensor.OpLog2:    math.Log2,
	tensor.OpLog10:   math.Log10,
}

// Unary applies an element-wise function.
//
// Floating ops (sigmoid, exp, sqrt, log...) promote integer and bool inputs to
// the default float dtype. In-place application is refused when that promotion
// would be needed, as the result could not be stored back into x.
func (cpu *CPUBackend) Unary(op tensor.UnaryOp, x *tensor.RawTensor, inplace bool) (*tensor.RawTensor, error) {
	name := op.String()
	if inplace {
		name += "_"
	}

	outType := x.DType()
	if op.Floating() && !outType.IsFloat() {
		outType = tensor.DefaultTypes.Float
	}
	if outType == tensor.Bool {
		return nil, fmt.Errorf("%s: unsupported dtype %s", name, outType)
	}
	if inplace && outType != x.DType() {
		return nil, fmt.Errorf("%s: result type %s can't be cast to the desired output type %s", name, outType, x.DType())
	}

	dst := x
	if !inplace {
		var err error
		if dst, err = tensor.NewRaw(x.Shape(), outType, cpu.device); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	src := x
	if outType != x.DType() {
		castInto(dst, x) // promote first, then apply in place on the fresh result
		src = dst
	}

	switch outType {
	case tensor.Float32:
		mapUnary(dst.AsFloat32(), src.AsFloat32(), float32Funcs[op])
	case tensor.Float64:
		mapUnary(dst.AsFloat64(), src.AsFloat64(), float64Funcs[op])
	case tensor.Int32:
		return dst, applyInteger(op, name, dst.AsInt32(), src.AsInt32())
	case tensor.Int64:
		return dst, applyInteger(op, name, dst.AsInt64(), src.AsInt64())
	case tensor.Uint8:
		return dst, applyInteger(op, name, dst.AsUint8(), src.AsUint8())
	}
	return dst, nil
}

func applyInteger[T integer](op tensor.UnaryOp, name string, dst, src []T) error {
	switch op {
	case tensor.OpAbs:
		mapUnary(dst, src, func(v T) T {
			if v < 0 {
				return -v
			}
			return v
		})
	case tensor.OpNeg:
		mapUnary(dst, src, func(v T) T { return -v })
	case tensor.OpSign:
		mapUnary(dst, src, signOf[T])
	case tensor.OpRound, tensor.OpFloor, tensor.OpCeil:
		copy(dst, src) // integers are already integral
	default:
		return fmt.Errorf("%s: unsupported integer op", name)
	}
	return nil
}

func mapUnary[T tensor.Numeric](dst, src []T, f func(T) T) {
	for i, v := range src {
		dst[i] = f(v)
	}
}

func signOf[T tensor.Numeric](v T) T {
	one := T(1)
	switch {
	case v > 0:
		return one
	case v < 0:
		return -one
	default:
		return v // keeps 0 and NaN
	}
}

// Clamp limits x element-wise to [lo, hi]. Either bound may be nil.
// The result keeps x's dtype; bounds are converted to it.
func (cpu *CPUBackend) Clamp(x, lo, hi *tensor.RawTensor, inplace bool) (*tensor.RawTensor, error) {
	name := "clamp"
	if inplace {
		name += "_"
	}
	if lo == nil && hi == nil {
		return nil, fmt.Errorf("%s: at least one of min or max must be given", name)
	}
	if x.DType() == tensor.Bool {
		return nil, fmt.Errorf("%s: unsupported dtype %s", name, x.DType())
	}

	result := x
	var err error
	if lo != nil {
		if result, err = cpu.boundedBy(tensor.OpMaximum, result, lo); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if hi != nil {
		if result, err = cpu.boundedBy(tensor.OpMinimum, result, hi); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if !result.Shape().Equal(x.Shape()) {
		return nil, fmt.Errorf("%s: bounds broadcast %v to %v", name, x.Shape(), result.Shape())
	}
	if !inplace {
		return result, nil
	}
	if err := x.CopyFrom(result); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return x, nil
}

// boundedBy applies minimum/maximum and casts back to x's dtype.
func (cpu *CPUBackend) boundedBy(op tensor.BinaryOp, x, bound *tensor.RawTensor) (*tensor.RawTensor, error) {
	b, err := cpu.Cast(bound, x.DType())
	if err != nil {
		return nil, err
	}
	return cpu.Binary(op, x, b)
}
