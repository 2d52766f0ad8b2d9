package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/treetensor/internal/tensor"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize  = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount = 100_000           // Maximum number of tensors in a file
	MaxKeyLen      = 4096              // Maximum length of one key
	MaxDepth       = 512               // Maximum key path length
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
			Err:     ErrTooManyTensors,
		}
	}

	sorted := slices.Clone(tensors)
	slices.SortFunc(sorted, func(a, b TensorMeta) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name(),
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
				Err:     ErrOutOfBounds,
			}
		}

		// Size is non-negative here, so the subtraction cannot overflow.
		if t.Offset > dataSize-t.Size {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name(),
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
				Err:     ErrOutOfBounds,
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset > next.Offset-t.Size {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name(),
					Tensor2: next.Name(),
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
					Err: ErrOffsetOverlap,
				}
			}
		}
	}

	return nil
}

// ValidateKeyPath checks one key path: non-empty, bounded, and free of null bytes.
func ValidateKeyPath(path []string) error {
	name := strings.Join(path, ".")
	if len(path) == 0 {
		return &ValidationError{Type: "invalid_path", Details: "empty key path"}
	}
	if len(path) > MaxDepth {
		return &ValidationError{
			Type:    "invalid_path",
			Tensor:  name,
			Details: fmt.Sprintf("depth %d > max %d", len(path), MaxDepth),
		}
	}
	for _, k := range path {
		if len(k) > MaxKeyLen {
			return &ValidationError{
				Type:    "key_too_long",
				Tensor:  name,
				Details: fmt.Sprintf("length %d > max %d", len(k), MaxKeyLen),
			}
		}
		if strings.Contains(k, "\x00") {
			return &ValidationError{
				Type:    "invalid_path",
				Tensor:  name,
				Details: "contains null byte",
			}
		}
	}
	return nil
}

// ValidateHeader checks that the header describes a well-formed tree whose
// tensors fit in a data section of dataSize bytes.
func ValidateHeader(h *Header, dataSize int64) error {
	if h.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, h.FormatVersion, FormatVersion)
	}

	for _, t := range h.Tensors {
		if err := ValidateKeyPath(t.Path); err != nil {
			return err
		}
		dtype, err := tensor.ParseDataType(t.DType)
		if err != nil {
			return &ValidationError{Type: "invalid_dtype", Tensor: t.Name(), Details: err.Error()}
		}
		shape := tensor.Shape(t.Shape)
		if err := shape.Validate(); err != nil {
			return &ValidationError{Type: "invalid_shape", Tensor: t.Name(), Details: err.Error()}
		}
		if want := int64(shape.NumElements() * dtype.Size()); t.Size != want {
			return &ValidationError{
				Type:    "invalid_size",
				Tensor:  t.Name(),
				Details: fmt.Sprintf("size %d, but %s%v needs %d bytes", t.Size, dtype, shape, want),
			}
		}
	}
	for _, e := range h.Empty {
		if err := ValidateKeyPath(e.Path); err != nil {
			return err
		}
		if e.Index < 0 || e.Index > len(h.Tensors) {
			return &ValidationError{
				Type:    "invalid_path",
				Tensor:  strings.Join(e.Path, "."),
				Details: fmt.Sprintf("index %d outside [0, %d]", e.Index, len(h.Tensors)),
			}
		}
	}

	return ValidateTensorOffsets(h.Tensors, dataSize)
}
