package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		shape Shape
		dtype DataType
	}{
		{"scalar float", 1.5, Shape{}, Float32},
		{"scalar int", 3, Shape{}, Int64},
		{"vector", []any{1, 2, 3}, Shape{3}, Int64},
		{"mixed promotes to float", []any{1, 2.5}, Shape{2}, Float32},
		{"bools", []bool{true, false}, Shape{2}, Bool},
		{"matrix", [][]float64{{1, 2}, {3, 4}, {5, 6}}, Shape{3, 2}, Float32},
		{"empty", []any{}, Shape{0}, Float32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := FromLiteral(tt.value, DefaultTypes)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, x.Shape())
			assert.Equal(t, tt.dtype, x.DType())
		})
	}
}

func TestFromLiteral_Defaults(t *testing.T) {
	x, err := FromLiteral([]any{1.0, 2.0}, Defaults{Float: Float64, Int: Int32})
	require.NoError(t, err)
	assert.Equal(t, Float64, x.DType())

	y, err := FromLiteral([]any{1, 2}, Defaults{Float: Float64, Int: Int32})
	require.NoError(t, err)
	assert.Equal(t, Int32, y.DType())
}

func TestFromLiteral_Errors(t *testing.T) {
	for name, value := range map[string]any{
		"ragged":         []any{[]any{1, 2}, []any{3}},
		"scalar sibling": []any{[]any{1, 2}, 3},
		"string":         []any{"a"},
		"nil":            []any{nil},
	} {
		_, err := FromLiteral(value, DefaultTypes)
		assert.Error(t, err, name)
	}
}

func TestFromLiteral_CopiesTensors(t *testing.T) {
	src, err := Scalar(2.0)
	require.NoError(t, err)

	x, err := FromLiteral(src, DefaultTypes)
	require.NoError(t, err)
	assert.NotSame(t, src, x)
	assert.False(t, x.IsWeak())
}

func TestToList(t *testing.T) {
	x, err := FromLiteral([]any{[]any{1, 2}, []any{3, 4}}, DefaultTypes)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{int64(1), int64(2)}, []any{int64(3), int64(4)}}, x.ToList())

	s, err := FromLiteral(2.5, DefaultTypes)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), s.ToList())
}

func TestString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{[]any{1.0, -2.0}, "tensor([1., -2.])"},
		{[]any{[]any{1, 2}, []any{3, 4}}, "tensor([[1, 2], [3, 4]])"},
		{[]any{true, false}, "tensor([True, False])"},
		{0.25, "tensor(0.25)"},
	}

	for _, tt := range tests {
		x, err := FromLiteral(tt.value, DefaultTypes)
		require.NoError(t, err)
		assert.Equal(t, tt.want, x.String())
	}

	d, err := Full(Shape{1}, 1.5, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, "tensor([1.5], dtype=float64)", d.String())
}
