package serialization

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func meta(name string, offset, size int64) TensorMeta {
	return TensorMeta{Path: strings.Split(name, "."), Offset: offset, Size: size}
}

// TestValidateTensorOffsets_NoOverlap verifies that valid tensors pass validation.
func TestValidateTensorOffsets_NoOverlap(t *testing.T) {
	tensors := []TensorMeta{
		meta("a", 0, 100),
		meta("b.x", 100, 200),
		meta("b.y", 300, 150),
	}

	if err := ValidateTensorOffsets(tensors, 500); err != nil {
		t.Errorf("Expected no error for valid tensors, got: %v", err)
	}
}

// TestValidateTensorOffsets detects overlapping and out-of-bounds regions.
func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantErr  error
	}{
		{
			name:     "complete overlap",
			tensors:  []TensorMeta{meta("a", 0, 100), meta("b", 50, 100)},
			dataSize: 200,
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "partial overlap at boundary",
			tensors:  []TensorMeta{meta("a", 0, 100), meta("b", 99, 100)},
			dataSize: 200,
			wantErr:  ErrOffsetOverlap,
		},
		{
			name:     "exact boundary",
			tensors:  []TensorMeta{meta("a", 100, 100), meta("b", 0, 100)},
			dataSize: 200,
		},
		{
			name:     "beyond data section",
			tensors:  []TensorMeta{meta("a", 150, 100)},
			dataSize: 200,
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "offset plus size overflows",
			tensors:  []TensorMeta{meta("a", math.MaxInt64-2, 4)},
			dataSize: 0,
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "overflowing region after a valid one",
			tensors:  []TensorMeta{meta("a", 0, 4), meta("b", math.MaxInt64-2, 4)},
			dataSize: 8,
			wantErr:  ErrOutOfBounds,
		},
		{
			name:     "negative offset",
			tensors:  []TensorMeta{meta("a", -8, 8)},
			dataSize: 200,
			wantErr:  ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateKeyPath(t *testing.T) {
	tests := []struct {
		name    string
		path    []string
		wantErr bool
	}{
		{"simple", []string{"a"}, false},
		{"nested", []string{"a", "b", "c"}, false},
		{"keys may hold dots", []string{"layer.0", "weight"}, false},
		{"empty", nil, true},
		{"null byte", []string{"a\x00b"}, true},
		{"key too long", []string{strings.Repeat("k", MaxKeyLen+1)}, true},
		{"too deep", make([]string, MaxDepth+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKeyPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHeader(t *testing.T) {
	valid := func() Header {
		return Header{
			FormatVersion: FormatVersion,
			Tensors: []TensorMeta{
				{Path: []string{"a"}, DType: "float32", Shape: []int{2}, Offset: 0, Size: 8},
				{Path: []string{"b", "x"}, DType: "int64", Shape: []int{}, Offset: 8, Size: 8},
			},
			Empty: []EmptyMeta{{Path: []string{"c"}, Index: 2}},
		}
	}

	h := valid()
	if err := ValidateHeader(&h, 16); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(h *Header)
	}{
		{"version", func(h *Header) { h.FormatVersion = 1 }},
		{"dtype", func(h *Header) { h.Tensors[0].DType = "float16" }},
		{"shape", func(h *Header) { h.Tensors[0].Shape = []int{-1} }},
		{"size", func(h *Header) { h.Tensors[0].Size = 4 }},
		{"empty path", func(h *Header) { h.Tensors[1].Path = nil }},
		{"empty index", func(h *Header) { h.Empty[0].Index = 3 }},
		{"offsets", func(h *Header) { h.Tensors[1].Offset = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid()
			tt.mutate(&h)
			if err := ValidateHeader(&h, 16); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
