package cpu

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/born-ml/treetensor/internal/tensor"
)

// Reduce folds every element of x into a 0-d tensor.
//
//   - all/any: bool result, non-zero elements count as true; an empty tensor
//     gives true/false.
//   - sum: integer and bool inputs sum into the default int dtype, floats keep
//     their dtype; an empty tensor sums to zero.
//   - min/max: same dtype as x; an empty tensor is an error.
func (cpu *CPUBackend) Reduce(op tensor.ReduceOp, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch op {
	case tensor.ReduceAll, tensor.ReduceAny:
		b, err := cpu.Cast(x, tensor.Bool)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		want := op == tensor.ReduceAny
		found := false
		for _, v := range b.AsBool() {
			if v == want {
				found = true
				break
			}
		}
		// all: true unless a false was found; any: true if a true was found.
		return tensor.Full(tensor.Shape{}, found == want, tensor.Bool, cpu.device)

	case tensor.ReduceSum:
		dtype := x.DType()
		if !dtype.IsFloat() {
			dtype = tensor.DefaultTypes.Int
		}
		src, err := cpu.Cast(x, dtype)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result, err := tensor.NewRaw(tensor.Shape{}, dtype, cpu.device)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		switch dtype {
		case tensor.Float32:
			result.AsFloat32()[0] = sumOf(src.AsFloat32())
		case tensor.Float64:
			result.AsFloat64()[0] = sumOf(src.AsFloat64())
		case tensor.Int32:
			result.AsInt32()[0] = sumOf(src.AsInt32())
		case tensor.Int64:
			result.AsInt64()[0] = sumOf(src.AsInt64())
		}
		return result, nil

	case tensor.ReduceMin, tensor.ReduceMax:
		if x.NumElements() == 0 {
			return nil, fmt.Errorf("%s: operation on an empty tensor has no identity", op)
		}
		pickMin := op == tensor.ReduceMin
		if x.DType() == tensor.Bool {
			// false < true, so min is all and max is any.
			if pickMin {
				return cpu.Reduce(tensor.ReduceAll, x)
			}
			return cpu.Reduce(tensor.ReduceAny, x)
		}
		result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		switch x.DType() {
		case tensor.Float32:
			result.AsFloat32()[0] = extremum(x.AsFloat32(), pickMin)
		case tensor.Float64:
			result.AsFloat64()[0] = extremum(x.AsFloat64(), pickMin)
		case tensor.Int32:
			result.AsInt32()[0] = extremum(x.AsInt32(), pickMin)
		case tensor.Int64:
			result.AsInt64()[0] = extremum(x.AsInt64(), pickMin)
		case tensor.Uint8:
			result.AsUint8()[0] = extremum(x.AsUint8(), pickMin)
		}
		return result, nil
	}
	return nil, fmt.Errorf("reduce: unknown op %d", op)
}

func sumOf[T tensor.Numeric](xs []T) T {
	var s T
	for _, v := range xs {
		s += v
	}
	return s
}

func extremum[T constraints.Ordered](xs []T, pickMin bool) T {
	best := xs[0]
	for _, v := range xs[1:] {
		if pickMin {
			best = minimum(best, v)
		} else {
			best = maximum(best, v)
		}
	}
	return best
}
