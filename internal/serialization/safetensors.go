package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// SafeTensorsDType represents supported SafeTensors data types.
type SafeTensorsDType string

// Supported SafeTensors dtypes.
const (
	SafeTensorsF32  SafeTensorsDType = "F32"
	SafeTensorsF64  SafeTensorsDType = "F64"
	SafeTensorsI32  SafeTensorsDType = "I32"
	SafeTensorsI64  SafeTensorsDType = "I64"
	SafeTensorsU8   SafeTensorsDType = "U8"
	SafeTensorsBool SafeTensorsDType = "BOOL"
)

const safeTensorsMetadataKey = "__metadata__"

// SafeTensorInfo describes a tensor in SafeTensors format.
type SafeTensorInfo struct {
	DType       SafeTensorsDType `json:"dtype"`
	Shape       []int            `json:"shape"`
	DataOffsets [2]int64         `json:"data_offsets"` // [start, end]
}

var safeTensorsDTypes = map[tensor.DataType]SafeTensorsDType{
	tensor.Float32: SafeTensorsF32,
	tensor.Float64: SafeTensorsF64,
	tensor.Int32:   SafeTensorsI32,
	tensor.Int64:   SafeTensorsI64,
	tensor.Uint8:   SafeTensorsU8,
	tensor.Bool:    SafeTensorsBool,
}

func dataTypeOf(dtype SafeTensorsDType) (tensor.DataType, error) {
	for dt, st := range safeTensorsDTypes {
		if st == dtype {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unsupported dtype: %s", dtype)
}

// WriteSafeTensors writes every leaf of root as a SafeTensors entry named by
// its dotted path. Tensors are written in alphabetical order by name. Keys
// containing dots can't be told apart from nesting and are rejected; empty
// subtrees are not representable and are dropped.
func WriteSafeTensors(w io.Writer, root *tree.Node, metadata map[string]string) error {
	leaves := root.Leaves()
	slices.SortFunc(leaves, func(a, b tree.Leaf) int {
		return strings.Compare(a.Path, b.Path)
	})

	header := make(map[string]any, len(leaves)+1)
	if len(metadata) > 0 {
		header[safeTensorsMetadataKey] = metadata
	}

	tensors := make([]*tensor.RawTensor, 0, len(leaves))
	var offset int64
	for _, leaf := range leaves {
		for _, k := range leaf.Keys {
			if strings.Contains(k, ".") {
				return &ValidationError{Type: "invalid_key", Tensor: leaf.Path, Details: fmt.Sprintf("key %q contains a dot", k)}
			}
		}
		raw, ok := leaf.Value.(*tensor.RawTensor)
		if !ok {
			return fmt.Errorf("%w: %s holds %T", ErrNotTensor, leaf.Path, leaf.Value)
		}
		size := int64(raw.ByteSize())
		header[leaf.Path] = SafeTensorInfo{
			DType:       safeTensorsDTypes[raw.DType()],
			Shape:       []int(raw.Shape().Clone()),
			DataOffsets: [2]int64{offset, offset + size},
		}
		tensors = append(tensors, raw)
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, raw := range tensors {
		if _, err := w.Write(raw.Bytes()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", leaves[i].Path, err)
		}
	}
	return nil
}

// ReadSafeTensors reads a SafeTensors file into a TensorTree, splitting
// tensor names on dots. Keys at every level are in sorted order.
func ReadSafeTensors(r io.Reader) (*tree.Node, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	var metadata map[string]string
	if raw, ok := rawMap[safeTensorsMetadataKey]; ok {
		if err := json.Unmarshal(raw, &metadata); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
		delete(rawMap, safeTensorsMetadataKey)
	}

	names := make([]string, 0, len(rawMap))
	infos := make(map[string]SafeTensorInfo, len(rawMap))
	metas := make([]TensorMeta, 0, len(rawMap))
	var dataSize int64
	for name, raw := range rawMap {
		var info SafeTensorInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal tensor %s: %w", name, err)
		}
		names = append(names, name)
		infos[name] = info
		metas = append(metas, TensorMeta{
			Path:   strings.Split(name, "."),
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
		dataSize = max(dataSize, info.DataOffsets[1])
	}
	if err := ValidateTensorOffsets(metas, dataSize); err != nil {
		return nil, nil, err
	}

	var data bytes.Buffer
	if n, err := io.Copy(&data, io.LimitReader(r, dataSize)); err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	} else if n != dataSize {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", io.ErrUnexpectedEOF)
	}

	slices.Sort(names)
	root := newBranch()
	for _, name := range names {
		info := infos[name]
		dtype, err := dataTypeOf(info.DType)
		if err != nil {
			return nil, nil, fmt.Errorf("tensor %s: %w", name, err)
		}
		meta := TensorMeta{
			Path:   strings.Split(name, "."),
			DType:  dtype.String(),
			Shape:  info.Shape,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		}
		if err := ValidateKeyPath(meta.Path); err != nil {
			return nil, nil, err
		}
		shape := tensor.Shape(meta.Shape)
		if err := shape.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid shape for tensor %s: %w", name, err)
		}
		if want := int64(shape.NumElements() * dtype.Size()); meta.Size != want {
			return nil, nil, &ValidationError{
				Type:    "invalid_size",
				Tensor:  name,
				Details: fmt.Sprintf("size %d, but %s%v needs %d bytes", meta.Size, dtype, shape, want),
			}
		}
		raw, err := loadTensor(meta, data.Bytes())
		if err != nil {
			return nil, nil, err
		}
		if err := root.insert(meta.Path, raw); err != nil {
			return nil, nil, err
		}
	}

	node, err := root.node(tree.TensorTree)
	if err != nil {
		return nil, nil, err
	}
	return node, metadata, nil
}
