package treetensor

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// need checks the number of positional arguments a leaf call received.
func need(name string, args []any, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%s: expected %d argument(s), got %d", name, lo, len(args))
		}
		return fmt.Errorf("%s: expected %d to %d arguments, got %d", name, lo, hi, len(args))
	}
	return nil
}

// operand converts a leaf argument into a tensor. Go scalars become weak 0-d
// tensors, nested slices are built with the catalog defaults.
func (c *Catalog) operand(name string, v any) (*tensor.RawTensor, error) {
	switch x := v.(type) {
	case *tensor.RawTensor:
		return x, nil
	case nil:
		return nil, fmt.Errorf("%s: expected a tensor, got nil", name)
	case *tree.Node:
		return nil, fmt.Errorf("%s: expected a tensor, got a tree", name)
	}
	if k := reflect.TypeOf(v).Kind(); k == reflect.Slice || k == reflect.Array {
		t, err := tensor.FromLiteral(v, c.defaults)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return t, nil
	}
	t, err := tensor.Scalar(v)
	if err != nil {
		return nil, fmt.Errorf("%s: expected a tensor, got %T", name, v)
	}
	return t, nil
}

// mutable returns v as a tensor that can be written in place.
func mutable(name string, v any) (*tensor.RawTensor, error) {
	x, ok := v.(*tensor.RawTensor)
	if !ok {
		return nil, fmt.Errorf("%s: in-place operation needs a tensor, got %T", name, v)
	}
	return x, nil
}

// dtypeKw reads the "dtype" keyword: a tensor.DataType or its name.
func dtypeKw(name string, kwargs tree.Kwargs, fallback tensor.DataType) (tensor.DataType, error) {
	v, ok := kwargs["dtype"]
	if !ok || v == nil {
		return fallback, nil
	}
	switch d := v.(type) {
	case tensor.DataType:
		return d, nil
	case string:
		dt, err := tensor.ParseDataType(d)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return dt, nil
	default:
		return 0, fmt.Errorf("%s: dtype must be a tensor.DataType or a name, got %T", name, v)
	}
}

// rngKw reads the "rng" keyword. Nil means the math/rand global source.
func rngKw(name string, kwargs tree.Kwargs) (*rand.Rand, error) {
	v, ok := kwargs["rng"]
	if !ok || v == nil {
		return nil, nil
	}
	rng, ok := v.(*rand.Rand)
	if !ok {
		return nil, fmt.Errorf("%s: rng must be a *rand.Rand, got %T", name, v)
	}
	return rng, nil
}

// intArg reads an integer bound such as randint's low and high.
func intArg(name string, v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case *tensor.RawTensor:
		item, err := x.Item()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return intArg(name, item)
	default:
		return 0, fmt.Errorf("%s: expected an integer, got %T", name, v)
	}
}

// fillDType is the dtype full() gives a fill value when none is requested.
func (c *Catalog) fillDType(v any) tensor.DataType {
	if t, ok := v.(*tensor.RawTensor); ok {
		return t.DType()
	}
	dt, err := tensor.ScalarType(v)
	if err != nil {
		return c.defaults.Float
	}
	switch {
	case dt.IsFloat():
		return c.defaults.Float
	case dt == tensor.Bool:
		return tensor.Bool
	default:
		return c.defaults.Int
	}
}

// fillValue unwraps a one-element tensor fill value into a Go scalar.
func fillValue(name string, v any) (any, error) {
	t, ok := v.(*tensor.RawTensor)
	if !ok {
		return v, nil
	}
	item, err := t.Item()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return item, nil
}
