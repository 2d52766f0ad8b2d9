package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	for name, want := range map[string]DataType{
		"float32": Float32,
		"float":   Float32,
		"FLOAT64": Float64,
		"int64":   Int64,
		"long":    Int64,
		"int32":   Int32,
		"uint8":   Uint8,
		" bool ":  Bool,
	} {
		got, err := ParseDataType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseDataType("complex64")
	assert.Error(t, err)
}

func TestPromoteTypes(t *testing.T) {
	strong := func(dtype DataType) *RawTensor {
		x, err := Zeros(Shape{1}, dtype, CPU)
		require.NoError(t, err)
		return x
	}
	weak := func(v any) *RawTensor {
		x, err := Scalar(v)
		require.NoError(t, err)
		return x
	}

	tests := []struct {
		name string
		a, b *RawTensor
		want DataType
	}{
		{"same dtype", strong(Float32), strong(Float32), Float32},
		{"int and float", strong(Int64), strong(Float32), Float32},
		{"float32 and float64", strong(Float32), strong(Float64), Float64},
		{"bool and uint8", strong(Bool), strong(Uint8), Uint8},
		{"float32 with float scalar", strong(Float32), weak(0.5), Float32},
		{"float64 with float scalar", strong(Float64), weak(0.5), Float64},
		{"int32 with int scalar", strong(Int32), weak(3), Int32},
		{"int64 with float scalar", strong(Int64), weak(0.5), DefaultTypes.Float},
		{"scalar first", weak(2), strong(Uint8), Uint8},
		{"bool with int scalar", strong(Bool), weak(1), DefaultTypes.Int},
		{"two scalars", weak(1), weak(0.5), Float64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PromoteTypes(tt.a, tt.b))
		})
	}
}

func TestDataTypeKinds(t *testing.T) {
	assert.True(t, Float32.IsFloat())
	assert.False(t, Int64.IsFloat())
	assert.True(t, Uint8.IsInteger())
	assert.False(t, Bool.IsInteger())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, "float32", Float32.String())
}
