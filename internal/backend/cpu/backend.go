// Package cpu implements the pure Go CPU backend for tensor tree leaves.
package cpu

import (
	"fmt"

	"github.com/born-ml/treetensor/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on CPU.
// It holds no mutable state and is safe for concurrent use.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Cast converts the tensor to a different data type.
// It returns x itself when the dtype already matches.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x.DType() == dtype {
		return x, nil
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("cast: %w", err)
	}
	castInto(result, x)
	return result, nil
}

// castInto converts src's elements into dst's dtype. Shapes must match.
func castInto(dst, src *tensor.RawTensor) {
	switch src.DType() {
	case tensor.Float32:
		castFrom(dst, src.AsFloat32())
	case tensor.Float64:
		castFrom(dst, src.AsFloat64())
	case tensor.Int32:
		castFrom(dst, src.AsInt32())
	case tensor.Int64:
		castFrom(dst, src.AsInt64())
	case tensor.Uint8:
		castFrom(dst, src.AsUint8())
	case tensor.Bool:
		castFromBool(dst, src.AsBool())
	}
}

func castFrom[S tensor.Numeric](dst *tensor.RawTensor, src []S) {
	switch dst.DType() {
	case tensor.Float32:
		convert(dst.AsFloat32(), src)
	case tensor.Float64:
		convert(dst.AsFloat64(), src)
	case tensor.Int32:
		convert(dst.AsInt32(), src)
	case tensor.Int64:
		convert(dst.AsInt64(), src)
	case tensor.Uint8:
		convert(dst.AsUint8(), src)
	case tensor.Bool:
		out := dst.AsBool()
		for i, v := range src {
			out[i] = v != 0
		}
	}
}

func castFromBool(dst *tensor.RawTensor, src []bool) {
	if dst.DType() == tensor.Bool {
		copy(dst.AsBool(), src)
		return
	}
	ones := make([]uint8, len(src))
	for i, v := range src {
		if v {
			ones[i] = 1
		}
	}
	castFrom(dst, ones)
}

func convert[D, S tensor.Numeric](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

// promoted casts both operands to their common dtype.
func (cpu *CPUBackend) promoted(a, b *tensor.RawTensor) (*tensor.RawTensor, *tensor.RawTensor, error) {
	dtype := tensor.PromoteTypes(a, b)
	ca, err := cpu.Cast(a, dtype)
	if err != nil {
		return nil, nil, err
	}
	cb, err := cpu.Cast(b, dtype)
	if err != nil {
		return nil, nil, err
	}
	return ca, cb, nil
}
