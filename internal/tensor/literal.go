package tensor

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FromLiteral builds a tensor from a nested Go literal: a scalar, or slices
// (any element type, nested to any depth) of scalars.
//
// The dtype follows the usual inference: any float makes the tensor
// defaults.Float, otherwise any integer makes it defaults.Int, otherwise Bool.
// An existing *RawTensor is deep-copied.
//
// Example:
//
//	t, err := tensor.FromLiteral([]any{[]any{1, 2}, []any{3, 4}}, tensor.DefaultTypes)
//	// t.Shape() == Shape{2, 2}, t.DType() == Int64
func FromLiteral(v any, defaults Defaults) (*RawTensor, error) {
	if r, ok := v.(*RawTensor); ok {
		c := r.Clone()
		c.weak = false
		return c, nil
	}

	var (
		shape  Shape
		values []any
	)
	if err := flattenLiteral(reflect.ValueOf(v), 0, &shape, &values); err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}

	kind := 0
	for _, x := range values {
		switch x.(type) {
		case bool:
		case float32, float64:
			kind = 2
		default:
			kind = max(kind, 1)
		}
	}
	if len(values) == 0 {
		kind = 2 // empty literal defaults to float, like tensor([])
	}

	t, err := NewRaw(shape, defaults.forKind(kind), CPU)
	if err != nil {
		return nil, err
	}
	floats := make([]float64, len(values))
	for i, x := range values {
		floats[i], _ = scalarFloat(x)
	}
	t.setFloat64s(floats)
	return t, nil
}

// flattenLiteral walks a nested literal, recording the shape on the first
// pass through each depth and checking every later sibling against it.
func flattenLiteral(v reflect.Value, depth int, shape *Shape, out *[]any) error {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("nil value in literal at depth %d", depth)
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		n := v.Len()
		switch {
		case depth == len(*shape):
			if len(*out) > 0 {
				return fmt.Errorf("ragged literal: expected a scalar at depth %d", depth)
			}
			*shape = append(*shape, n)
		case (*shape)[depth] != n:
			return fmt.Errorf("ragged literal: expected length %d at depth %d, got %d", (*shape)[depth], depth, n)
		}
		for i := 0; i < n; i++ {
			if err := flattenLiteral(v.Index(i), depth+1, shape, out); err != nil {
				return err
			}
		}
		return nil
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if depth != len(*shape) {
			return fmt.Errorf("ragged literal: unexpected scalar at depth %d", depth)
		}
		*out = append(*out, v.Interface())
		return nil
	default:
		return fmt.Errorf("unsupported literal element %s", v.Type())
	}
}

// ToList converts the tensor back into a nested []any literal. A 0-d tensor
// becomes its scalar.
func (r *RawTensor) ToList() any {
	if len(r.shape) == 0 {
		return r.at(0)
	}
	idx := 0
	return r.nest(0, &idx)
}

func (r *RawTensor) nest(depth int, idx *int) any {
	out := make([]any, r.shape[depth])
	for i := range out {
		if depth == len(r.shape)-1 {
			out[i] = r.at(*idx)
			*idx++
			continue
		}
		out[i] = r.nest(depth+1, idx)
	}
	return out
}

// String renders the tensor with its values, e.g. tensor([[1., 2.], [3., 4.]]).
// Non-default dtypes are appended as dtype=....
func (r *RawTensor) String() string {
	var sb strings.Builder
	sb.WriteString("tensor(")
	writeLiteral(&sb, r.ToList())
	if r.dtype != DefaultTypes.Float && r.dtype != DefaultTypes.Int && r.dtype != Bool {
		sb.WriteString(", dtype=" + r.dtype.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func writeLiteral(sb *strings.Builder, v any) {
	list, ok := v.([]any)
	if !ok {
		sb.WriteString(formatElem(v))
		return
	}
	sb.WriteByte('[')
	for i, x := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeLiteral(sb, x)
	}
	sb.WriteByte(']')
}

func formatElem(v any) string {
	switch x := v.(type) {
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', 5, bits)
	if !strings.ContainsAny(s, ".eIN") {
		s += "."
	}
	return s
}
