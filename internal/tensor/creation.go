package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t, err := tensor.Zeros(Shape{3, 4}, Float32, CPU)
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	// Data is already zero-initialized by make()
	return NewRaw(shape, dtype, device)
}

// Empty creates a tensor whose contents are unspecified. The CPU implementation
// hands out zeroed memory, callers must not rely on it.
func Empty(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return NewRaw(shape, dtype, device)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return Full(shape, 1, dtype, device)
}

// Full creates a tensor filled with a specific value, converted to dtype.
//
// Example:
//
//	t, err := tensor.Full(Shape{3, 3}, 3.14, Float32, CPU)
func Full(shape Shape, value any, dtype DataType, device Device) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	if err := t.Fill(value); err != nil {
		return nil, err
	}
	return t, nil
}

// Fill overwrites every element with value, converted to the tensor's dtype.
func (r *RawTensor) Fill(value any) error {
	f, ok := scalarFloat(value)
	if !ok {
		return fmt.Errorf("fill: unsupported value type %T", value)
	}
	switch r.dtype {
	case Float32:
		fillSlice(r.AsFloat32(), float32(f))
	case Float64:
		fillSlice(r.AsFloat64(), f)
	case Int32:
		fillSlice(r.AsInt32(), int32(f))
	case Int64:
		if i, isInt := value.(int64); isInt {
			fillSlice(r.AsInt64(), i) // keep full int64 precision
		} else {
			fillSlice(r.AsInt64(), int64(f))
		}
	case Uint8:
		fillSlice(r.AsUint8(), uint8(f))
	case Bool:
		fillSlice(r.AsBool(), f != 0)
	}
	return nil
}

func fillSlice[T DType](data []T, v T) {
	for i := range data {
		data[i] = v
	}
}

// Scalar wraps a Go scalar into a weak 0-d tensor.
//
// Weak tensors take part in binary operations without widening the dtype of the
// other operand; see PromoteTypes.
func Scalar(v any) (*RawTensor, error) {
	dtype, err := ScalarType(v)
	if err != nil {
		return nil, err
	}
	// Go scalars keep their own width here; promotion picks the default later.
	switch v.(type) {
	case float64:
		dtype = Float64
	case float32:
		dtype = Float32
	}
	t, err := Full(Shape{}, v, dtype, CPU)
	if err != nil {
		return nil, err
	}
	t.weak = true
	return t, nil
}

// ScalarType returns the default dtype for a Go scalar.
func ScalarType(v any) (DataType, error) {
	switch v.(type) {
	case bool:
		return Bool, nil
	case float32, float64:
		return DefaultTypes.Float, nil
	case int, int8, int16, int32, int64, uint, uint16, uint32, uint64:
		return DefaultTypes.Int, nil
	case uint8:
		return Uint8, nil
	default:
		return 0, fmt.Errorf("unsupported scalar type %T", v)
	}
}

// scalarFloat converts any Go scalar to float64.
//
//nolint:gocyclo,cyclop // one case per Go scalar kind
func scalarFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// Randn creates a tensor with random values from a normal distribution (mean=0, std=1).
// Uses Box-Muller transform for generating normal distribution.
// Only works with float types. A nil rng uses the math/rand global source.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Randn(shape Shape, dtype DataType, device Device, rng *rand.Rand) (*RawTensor, error) {
	if !dtype.IsFloat() {
		return nil, fmt.Errorf("randn: unsupported dtype %s (only float32/float64 supported)", dtype)
	}
	t, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}

	n := t.NumElements()
	values := make([]float64, n)
	for i := 0; i < n; i += 2 {
		u1 := 1 - uniform(rng) // (0, 1], keeps Log finite
		u2 := uniform(rng)
		r := math.Sqrt(-2.0 * math.Log(u1))
		values[i] = r * math.Cos(2.0*math.Pi*u2)
		if i+1 < n {
			values[i+1] = r * math.Sin(2.0*math.Pi*u2)
		}
	}
	t.setFloat64s(values)
	return t, nil
}

// Randint creates a tensor with integers drawn uniformly from [low, high).
func Randint(low, high int64, shape Shape, dtype DataType, device Device, rng *rand.Rand) (*RawTensor, error) {
	if high <= low {
		return nil, fmt.Errorf("randint: high (%d) must be greater than low (%d)", high, low)
	}
	if dtype == Bool {
		return nil, fmt.Errorf("randint: unsupported dtype %s", dtype)
	}
	t, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}

	values := make([]float64, t.NumElements())
	for i := range values {
		values[i] = float64(low + int63n(rng, high-low))
	}
	t.setFloat64s(values)
	return t, nil
}

//nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
func uniform(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

//nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
func int63n(rng *rand.Rand, n int64) int64 {
	if rng == nil {
		return rand.Int63n(n)
	}
	return rng.Int63n(n)
}

// setFloat64s stores values into r, converting to r's dtype.
func (r *RawTensor) setFloat64s(values []float64) {
	switch r.dtype {
	case Float32:
		storeFrom(r.AsFloat32(), values)
	case Float64:
		copy(r.AsFloat64(), values)
	case Int32:
		storeFrom(r.AsInt32(), values)
	case Int64:
		storeFrom(r.AsInt64(), values)
	case Uint8:
		storeFrom(r.AsUint8(), values)
	case Bool:
		dst := r.AsBool()
		for i, v := range values {
			dst[i] = v != 0
		}
	}
}

func storeFrom[T Numeric](dst []T, src []float64) {
	for i, v := range src {
		dst[i] = T(v)
	}
}
