// Package tensor provides the dtype-erased array values that sit at the leaves of
// tensor trees, together with the Backend contract used to compute on them.
package tensor

import (
	"fmt"
	"strings"
)

// DType is a constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// Numeric is the subset of DType that supports arithmetic.
type Numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors, ordered by promotion rank.
const (
	Bool DataType = iota
	Uint8
	Int32
	Int64
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether dt is a floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is an integer type (bool excluded).
func (dt DataType) IsInteger() bool {
	return dt == Uint8 || dt == Int32 || dt == Int64
}

// kind groups data types for promotion: bool < integer < float.
func (dt DataType) kind() int {
	switch {
	case dt == Bool:
		return 0
	case dt.IsInteger():
		return 1
	default:
		return 2
	}
}

// ParseDataType parses a dtype name such as "float32" or "int64".
func ParseDataType(name string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float32", "float":
		return Float32, nil
	case "float64", "double":
		return Float64, nil
	case "int32", "int":
		return Int32, nil
	case "int64", "long":
		return Int64, nil
	case "uint8", "byte":
		return Uint8, nil
	case "bool":
		return Bool, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", name)
	}
}

// Defaults holds the dtypes chosen for values that carry no dtype of their own:
// Go scalars and nested literals.
type Defaults struct {
	Float DataType
	Int   DataType
}

// DefaultTypes mirrors the usual array-library convention: float32 and int64.
var DefaultTypes = Defaults{Float: Float32, Int: Int64}

// forKind returns the default dtype for a promotion kind.
func (d Defaults) forKind(k int) DataType {
	switch k {
	case 0:
		return Bool
	case 1:
		return d.Int
	default:
		return d.Float
	}
}

// PromoteTypes returns the dtype two operands are computed in.
//
// Tensors promote by rank. A weak operand (a wrapped Go scalar) only lifts the
// result when it belongs to a higher kind, and then to the default dtype of that
// kind, so float32 * 0.5 stays float32 while int64 * 0.5 becomes float32.
func PromoteTypes(a, b *RawTensor) DataType {
	switch {
	case a.weak == b.weak:
		return maxType(a.dtype, b.dtype)
	case a.weak:
		return promoteWeak(b.dtype, a.dtype)
	default:
		return promoteWeak(a.dtype, b.dtype)
	}
}

func promoteWeak(strong, weak DataType) DataType {
	if weak.kind() > strong.kind() {
		return DefaultTypes.forKind(weak.kind())
	}
	return strong
}

func maxType(a, b DataType) DataType {
	if a > b {
		return a
	}
	return b
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
