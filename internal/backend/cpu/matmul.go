package cpu

import (
	"fmt"

	"github.com/born-ml/treetensor/internal/tensor"
)

// MatMul multiplies a and b following 1-D/2-D matmul rules:
//
//	(K) @ (K)       -> ()
//	(M, K) @ (K)    -> (M)
//	(K) @ (K, N)    -> (N)
//	(M, K) @ (K, N) -> (M, N)
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	aShape, bShape := a.Shape(), b.Shape()
	if aShape.Ndim() == 0 || bShape.Ndim() == 0 || aShape.Ndim() > 2 || bShape.Ndim() > 2 {
		return nil, fmt.Errorf("matmul: only 1D and 2D tensors supported, got %dD and %dD", aShape.Ndim(), bShape.Ndim())
	}

	// Lift vectors to matrices, multiply, then drop the added dims.
	m, k := 1, aShape[0]
	if aShape.Ndim() == 2 {
		m, k = aShape[0], aShape[1]
	}
	kAlt, n := bShape[0], 1
	if bShape.Ndim() == 2 {
		n = bShape[1]
	}
	if k != kAlt {
		return nil, fmt.Errorf("matmul: shape mismatch %v @ %v", aShape, bShape)
	}

	var outShape tensor.Shape
	if aShape.Ndim() == 2 {
		outShape = append(outShape, m)
	}
	if bShape.Ndim() == 2 {
		outShape = append(outShape, n)
	}
	if outShape == nil {
		outShape = tensor.Shape{}
	}
	return cpu.matmul("matmul", a, b, m, k, n, outShape)
}

// MM multiplies two 2-D matrices.
func (cpu *CPUBackend) MM(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	aShape, bShape := a.Shape(), b.Shape()
	if aShape.Ndim() != 2 || bShape.Ndim() != 2 {
		return nil, fmt.Errorf("mm: only 2D tensors supported, got %dD and %dD", aShape.Ndim(), bShape.Ndim())
	}
	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, fmt.Errorf("mm: shape mismatch %v @ %v", aShape, bShape)
	}
	return cpu.matmul("mm", a, b, m, k, n, tensor.Shape{m, n})
}

// Dot computes the inner product of two 1-D tensors of equal length.
func (cpu *CPUBackend) Dot(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	aShape, bShape := a.Shape(), b.Shape()
	if aShape.Ndim() != 1 || bShape.Ndim() != 1 {
		return nil, fmt.Errorf("dot: 1D tensors expected, but got %dD and %dD tensors", aShape.Ndim(), bShape.Ndim())
	}
	if aShape[0] != bShape[0] {
		return nil, fmt.Errorf("dot: inconsistent tensor size, expected %d and %d to match", aShape[0], bShape[0])
	}
	return cpu.matmul("dot", a, b, 1, aShape[0], 1, tensor.Shape{})
}

// matmul promotes a and b and computes the (m, k) @ (k, n) product,
// reshaped to outShape.
func (cpu *CPUBackend) matmul(name string, a, b *tensor.RawTensor, m, k, n int, outShape tensor.Shape) (*tensor.RawTensor, error) {
	a, b, err := cpu.promoted(a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create result tensor: %w", name, err)
	}

	switch a.DType() {
	case tensor.Float32:
		matmulInto(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulInto(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	case tensor.Int32:
		matmulInto(result.AsInt32(), a.AsInt32(), b.AsInt32(), m, k, n)
	case tensor.Int64:
		matmulInto(result.AsInt64(), a.AsInt64(), b.AsInt64(), m, k, n)
	case tensor.Uint8:
		matmulInto(result.AsUint8(), a.AsUint8(), b.AsUint8(), m, k, n)
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %s", name, a.DType())
	}
	return result, nil
}

// matmulInto computes C[i,j] = sum_k A[i,k] * B[k,j] for row-major buffers.
func matmulInto[T tensor.Numeric](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
