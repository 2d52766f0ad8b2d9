package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is a dtype-erased, contiguous, row-major array.
//
// RawTensors are the leaves of tensor trees. A RawTensor is mutable: in-place
// kernels overwrite its buffer and keep its identity.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device

	// weak marks a 0-d tensor wrapped around a Go scalar. Weak operands do not
	// widen the dtype of the tensor they are combined with.
	weak bool
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Ndim returns the number of dimensions.
func (r *RawTensor) Ndim() int {
	return len(r.shape)
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsWeak reports whether the tensor wraps a Go scalar.
func (r *RawTensor) IsWeak() bool {
	return r.weak
}

// Bytes returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Bytes() []byte {
	return r.data
}

// Data returns a typed zero-copy view of r. It panics if T does not match the
// tensor's dtype.
func Data[T DType](r *RawTensor) []T {
	var dummy T
	if want := inferDataType(dummy); r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	n := r.NumElements()
	if n == 0 {
		return []T{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 { return Data[float32](r) }

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 { return Data[float64](r) }

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 { return Data[int32](r) }

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 { return Data[int64](r) }

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 { return Data[uint8](r) }

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool { return Data[bool](r) }

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	return &RawTensor{
		data:   append([]byte(nil), r.data...),
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		weak:   r.weak,
	}
}

// CopyFrom overwrites r's elements with src's. Shapes and dtypes must match.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if r.dtype != src.dtype {
		return fmt.Errorf("copy: dtype mismatch %s vs %s", r.dtype, src.dtype)
	}
	if !r.shape.Equal(src.shape) {
		return fmt.Errorf("copy: shape mismatch %v vs %v", r.shape, src.shape)
	}
	copy(r.data, src.data)
	return nil
}

// Item returns the single element of a one-element tensor as a Go value
// (float32, float64, int32, int64, uint8 or bool).
func (r *RawTensor) Item() (any, error) {
	if r.NumElements() != 1 {
		return nil, fmt.Errorf("item: tensor with %d elements cannot be converted to a scalar", r.NumElements())
	}
	return r.at(0), nil
}

// at returns the element at flat index i as a Go value.
func (r *RawTensor) at(i int) any {
	switch r.dtype {
	case Float32:
		return r.AsFloat32()[i]
	case Float64:
		return r.AsFloat64()[i]
	case Int32:
		return r.AsInt32()[i]
	case Int64:
		return r.AsInt64()[i]
	case Uint8:
		return r.AsUint8()[i]
	case Bool:
		return r.AsBool()[i]
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
}

// Float64s returns a copy of the elements converted to float64.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		convertInto(out, r.AsFloat32())
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		convertInto(out, r.AsInt32())
	case Int64:
		convertInto(out, r.AsInt64())
	case Uint8:
		convertInto(out, r.AsUint8())
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

func convertInto[T Numeric](dst []float64, src []T) {
	for i, v := range src {
		dst[i] = float64(v)
	}
}
