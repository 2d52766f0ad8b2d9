package cpu

import (
	"testing"

	"github.com/born-ml/treetensor/internal/tensor"
)

func TestReduce(t *testing.T) {
	backend := New()

	tests := []struct {
		name  string
		op    tensor.ReduceOp
		x     *tensor.RawTensor
		dtype tensor.DataType
		want  float64
	}{
		{"sum float32", tensor.ReduceSum, fromValues(t, tensor.Shape{2, 2}, tensor.Float32, 1, 2, 3, 4), tensor.Float32, 10},
		{"sum int32 widens", tensor.ReduceSum, fromValues(t, tensor.Shape{3}, tensor.Int32, 1, 2, 3), tensor.Int64, 6},
		{"sum bool counts", tensor.ReduceSum, fromValues(t, tensor.Shape{3}, tensor.Bool, 1, 0, 1), tensor.Int64, 2},
		{"sum empty", tensor.ReduceSum, fromValues(t, tensor.Shape{0}, tensor.Float32), tensor.Float32, 0},
		{"min", tensor.ReduceMin, fromValues(t, tensor.Shape{3}, tensor.Float64, 3, -2, 5), tensor.Float64, -2},
		{"max", tensor.ReduceMax, fromValues(t, tensor.Shape{3}, tensor.Int64, 3, -2, 5), tensor.Int64, 5},
		{"all true", tensor.ReduceAll, fromValues(t, tensor.Shape{2}, tensor.Bool, 1, 1), tensor.Bool, 1},
		{"all false", tensor.ReduceAll, fromValues(t, tensor.Shape{3}, tensor.Float32, 1, 0, 2), tensor.Bool, 0},
		{"all empty", tensor.ReduceAll, fromValues(t, tensor.Shape{0}, tensor.Bool), tensor.Bool, 1},
		{"any true", tensor.ReduceAny, fromValues(t, tensor.Shape{3}, tensor.Int64, 0, 0, 7), tensor.Bool, 1},
		{"any empty", tensor.ReduceAny, fromValues(t, tensor.Shape{0}, tensor.Bool), tensor.Bool, 0},
		{"max bool", tensor.ReduceMax, fromValues(t, tensor.Shape{2}, tensor.Bool, 0, 1), tensor.Bool, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := backend.Reduce(tt.op, tt.x)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.op, err)
			}
			if len(result.Shape()) != 0 {
				t.Errorf("Expected 0-d result, got shape %v", result.Shape())
			}
			if result.DType() != tt.dtype {
				t.Errorf("Expected dtype %s, got %s", tt.dtype, result.DType())
			}
			if got := result.Float64s()[0]; got != tt.want {
				t.Errorf("%s = %v, expected %v", tt.op, got, tt.want)
			}
		})
	}
}

func TestReduce_EmptyMinMax(t *testing.T) {
	backend := New()
	x := fromValues(t, tensor.Shape{0}, tensor.Float32)

	for _, op := range []tensor.ReduceOp{tensor.ReduceMin, tensor.ReduceMax} {
		if _, err := backend.Reduce(op, x); err == nil {
			t.Errorf("Expected error for %s of an empty tensor", op)
		}
	}
}

func TestCompare(t *testing.T) {
	backend := New()
	a := fromValues(t, tensor.Shape{2, 2}, tensor.Float32, 1, 2, 3, 4)
	b := fromValues(t, tensor.Shape{}, tensor.Int64, 2)

	tests := []struct {
		op   tensor.CompareOp
		want []bool
	}{
		{tensor.OpEq, []bool{false, true, false, false}},
		{tensor.OpNe, []bool{true, false, true, true}},
		{tensor.OpLt, []bool{true, false, false, false}},
		{tensor.OpLe, []bool{true, true, false, false}},
		{tensor.OpGt, []bool{false, false, true, true}},
		{tensor.OpGe, []bool{false, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			result, err := backend.Compare(tt.op, a, b)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.op, err)
			}
			if result.DType() != tensor.Bool {
				t.Errorf("Expected bool result, got %s", result.DType())
			}
			if !result.Shape().Equal(a.Shape()) {
				t.Errorf("Expected shape %v, got %v", a.Shape(), result.Shape())
			}
			for i, v := range result.AsBool() {
				if v != tt.want[i] {
					t.Errorf("%s[%d] = %v, expected %v", tt.op, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestEqual(t *testing.T) {
	backend := New()

	tests := []struct {
		name string
		a, b *tensor.RawTensor
		want bool
	}{
		{
			name: "identical",
			a:    fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 2),
			b:    fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 2),
			want: true,
		},
		{
			name: "different values",
			a:    fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 2),
			b:    fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 3),
			want: false,
		},
		{
			name: "broadcastable but different shape",
			a:    fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 1),
			b:    fromValues(t, tensor.Shape{1}, tensor.Float32, 1),
			want: false,
		},
		{
			name: "promoted dtypes",
			a:    fromValues(t, tensor.Shape{2}, tensor.Int64, 1, 2),
			b:    fromValues(t, tensor.Shape{2}, tensor.Float64, 1, 2),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := backend.Equal(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Equal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestMatMul(t *testing.T) {
	backend := New()
	m := fromValues(t, tensor.Shape{2, 3}, tensor.Float32, 1, 2, 3, 4, 5, 6)
	v := fromValues(t, tensor.Shape{3}, tensor.Float32, 1, 0, -1)

	tests := []struct {
		name  string
		a, b  *tensor.RawTensor
		shape tensor.Shape
		want  []float32
	}{
		{"matrix @ vector", m, v, tensor.Shape{2}, []float32{-2, -2}},
		{"vector @ vector", v, v, tensor.Shape{}, []float32{2}},
		{
			"matrix @ matrix",
			m,
			fromValues(t, tensor.Shape{3, 2}, tensor.Float32, 1, 0, 0, 1, 1, 1),
			tensor.Shape{2, 2},
			[]float32{4, 5, 10, 11},
		},
		{
			"vector @ matrix",
			fromValues(t, tensor.Shape{2}, tensor.Float32, 1, 1),
			m,
			tensor.Shape{3},
			[]float32{5, 7, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := backend.MatMul(tt.a, tt.b)
			if err != nil {
				t.Fatalf("MatMul failed: %v", err)
			}
			if !result.Shape().Equal(tt.shape) {
				t.Errorf("Expected shape %v, got %v", tt.shape, result.Shape())
			}
			if !float32SliceEqual(result.AsFloat32(), tt.want) {
				t.Errorf("MatMul = %v, expected %v", result.AsFloat32(), tt.want)
			}
		})
	}

	if _, err := backend.MatMul(m, m); err == nil {
		t.Error("Expected shape mismatch error for (2, 3) @ (2, 3)")
	}
}

func TestMMAndDot(t *testing.T) {
	backend := New()
	a := fromValues(t, tensor.Shape{2, 2}, tensor.Int64, 1, 2, 3, 4)
	v := fromValues(t, tensor.Shape{2}, tensor.Int64, 5, 6)

	mm, err := backend.MM(a, a)
	if err != nil {
		t.Fatalf("MM failed: %v", err)
	}
	expected := []int64{7, 10, 15, 22}
	for i, x := range mm.AsInt64() {
		if x != expected[i] {
			t.Errorf("MM[%d] = %d, expected %d", i, x, expected[i])
		}
	}
	if _, err := backend.MM(a, v); err == nil {
		t.Error("MM should reject 1-D operands")
	}

	dot, err := backend.Dot(v, v)
	if err != nil {
		t.Fatalf("Dot failed: %v", err)
	}
	if got := dot.AsInt64()[0]; got != 61 {
		t.Errorf("Dot = %d, expected 61", got)
	}
	if _, err := backend.Dot(a, v); err == nil {
		t.Error("Dot should reject 2-D operands")
	}
	if _, err := backend.Dot(v, fromValues(t, tensor.Shape{3}, tensor.Int64, 1, 2, 3)); err == nil {
		t.Error("Dot should reject mismatched lengths")
	}
}
