package treetensor

import (
	"fmt"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// filler creates a tensor of the given shape and dtype.
type filler func(name string, shape tensor.Shape, dtype tensor.DataType, kwargs tree.Kwargs) (*tensor.RawTensor, error)

// fillConst fills with v. A nil v leaves the contents unspecified.
func fillConst(v any) filler {
	return func(_ string, shape tensor.Shape, dtype tensor.DataType, _ tree.Kwargs) (*tensor.RawTensor, error) {
		if v == nil {
			return tensor.Empty(shape, dtype, tensor.CPU)
		}
		return tensor.Full(shape, v, dtype, tensor.CPU)
	}
}

func fillRandn(name string, shape tensor.Shape, dtype tensor.DataType, kwargs tree.Kwargs) (*tensor.RawTensor, error) {
	rng, err := rngKw(name, kwargs)
	if err != nil {
		return nil, err
	}
	return tensor.Randn(shape, dtype, tensor.CPU, rng)
}

// shapeArgs reads a shape given as one descriptor (tensor.Shape, []int, int)
// or as several ints: zeros((2, 3)) and zeros(2, 3) are the same.
func shapeArgs(name string, args []any) (tensor.Shape, error) {
	if len(args) == 1 {
		s, err := tensor.ShapeOf(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return s, nil
	}
	dims := make([]int, len(args))
	for i, a := range args {
		d, ok := a.(int)
		if !ok {
			return nil, fmt.Errorf("%s: expected a shape, got %T at position %d", name, a, i)
		}
		dims[i] = d
	}
	s, err := tensor.ShapeOf(dims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// factory builds zeros(shape, dtype=) style constructors.
func factory(name string, fill filler) func(c *Catalog) tree.LeafFunc {
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, kwargs tree.Kwargs) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: missing shape", name)
			}
			shape, err := shapeArgs(name, args)
			if err != nil {
				return nil, err
			}
			dtype, err := dtypeKw(name, kwargs, c.defaults.Float)
			if err != nil {
				return nil, err
			}
			return fill(name, shape, dtype, kwargs)
		}
	}
}

// like builds zeros_like(x, dtype=) style constructors: shape and dtype come
// from x unless dtype is given.
func like(name string, fill filler) func(c *Catalog) tree.LeafFunc {
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, kwargs tree.Kwargs) (any, error) {
			if err := need(name, args, 1, 1); err != nil {
				return nil, err
			}
			x, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			dtype, err := dtypeKw(name, kwargs, x.DType())
			if err != nil {
				return nil, err
			}
			return fill(name, x.Shape(), dtype, kwargs)
		}
	}
}

// full(shape, value, dtype=). Without dtype the value's kind picks the
// default dtype: bool, the default int or the default float.
func full(c *Catalog) tree.LeafFunc {
	return func(args []any, kwargs tree.Kwargs) (any, error) {
		if err := need("full", args, 2, 2); err != nil {
			return nil, err
		}
		shape, err := shapeArgs("full", args[:1])
		if err != nil {
			return nil, err
		}
		value, err := fillValue("full", args[1])
		if err != nil {
			return nil, err
		}
		dtype, err := dtypeKw("full", kwargs, c.fillDType(args[1]))
		if err != nil {
			return nil, err
		}
		t, err := tensor.Full(shape, value, dtype, tensor.CPU)
		if err != nil {
			return nil, fmt.Errorf("full: %w", err)
		}
		return t, nil
	}
}

func fullLike(c *Catalog) tree.LeafFunc {
	return func(args []any, kwargs tree.Kwargs) (any, error) {
		if err := need("full_like", args, 2, 2); err != nil {
			return nil, err
		}
		x, err := c.operand("full_like", args[0])
		if err != nil {
			return nil, err
		}
		value, err := fillValue("full_like", args[1])
		if err != nil {
			return nil, err
		}
		dtype, err := dtypeKw("full_like", kwargs, x.DType())
		if err != nil {
			return nil, err
		}
		t, err := tensor.Full(x.Shape(), value, dtype, tensor.CPU)
		if err != nil {
			return nil, fmt.Errorf("full_like: %w", err)
		}
		return t, nil
	}
}

// bounds reads randint's (high) or (low, high).
func bounds(name string, args []any) (low, high int64, err error) {
	if len(args) == 2 {
		if low, err = intArg(name, args[0]); err != nil {
			return 0, 0, err
		}
		args = args[1:]
	}
	high, err = intArg(name, args[0])
	return low, high, err
}

// randint(high, shape) or randint(low, high, shape), with dtype= and rng=.
func randint(c *Catalog) tree.LeafFunc {
	return func(args []any, kwargs tree.Kwargs) (any, error) {
		if err := need("randint", args, 2, 3); err != nil {
			return nil, err
		}
		low, high, err := bounds("randint", args[:len(args)-1])
		if err != nil {
			return nil, err
		}
		shape, err := shapeArgs("randint", args[len(args)-1:])
		if err != nil {
			return nil, err
		}
		dtype, err := dtypeKw("randint", kwargs, c.defaults.Int)
		if err != nil {
			return nil, err
		}
		rng, err := rngKw("randint", kwargs)
		if err != nil {
			return nil, err
		}
		return tensor.Randint(low, high, shape, dtype, tensor.CPU, rng)
	}
}

// randint_like(x, high) or randint_like(x, low, high). The dtype of x is kept.
func randintLike(c *Catalog) tree.LeafFunc {
	return func(args []any, kwargs tree.Kwargs) (any, error) {
		if err := need("randint_like", args, 2, 3); err != nil {
			return nil, err
		}
		x, err := c.operand("randint_like", args[0])
		if err != nil {
			return nil, err
		}
		low, high, err := bounds("randint_like", args[1:])
		if err != nil {
			return nil, err
		}
		dtype, err := dtypeKw("randint_like", kwargs, x.DType())
		if err != nil {
			return nil, err
		}
		rng, err := rngKw("randint_like", kwargs)
		if err != nil {
			return nil, err
		}
		return tensor.Randint(low, high, x.Shape(), dtype, tensor.CPU, rng)
	}
}
