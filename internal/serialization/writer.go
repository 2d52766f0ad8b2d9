package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// Write encodes root in the .born format. Every leaf must be a
// *tensor.RawTensor; empty subtrees are kept.
func Write(w io.Writer, root *tree.Node, metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersion,
		Version:       Version,
		Container:     containerName(root.Container()),
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, root.Len()),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var data []byte
	if err := collect(root, nil, &header, &data); err != nil {
		return err
	}
	checksum := sha256.Sum256(data)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fixedHeader := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "BORN"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Version
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if root.Container() == tree.ObjectTree {
		flags |= FlagObjectTree
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)

	// 0x0C-0x0F: Reserved (0)

	// 0x10-0x17: Header size
	binary.LittleEndian.PutUint64(fixedHeader[16:24], uint64(len(headerJSON)))

	// 0x18-0x1F: Data size
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(len(data)))

	// 0x20-0x3F: SHA-256 checksum
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}
	if padding := alignedPadding(int64(FixedHeaderSize + len(headerJSON))); padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// collect appends the tensors and empty subtrees of n to the header, in
// depth-first key order, and their bytes to data.
func collect(n *tree.Node, prefix []string, header *Header, data *[]byte) error {
	for k, v := range n.All() {
		path := append(slices.Clip(prefix), k)
		if child, ok := v.(*tree.Node); ok {
			if child.Len() == 0 {
				header.Empty = append(header.Empty, EmptyMeta{Path: path, Index: len(header.Tensors)})
				continue
			}
			if err := collect(child, path, header, data); err != nil {
				return err
			}
			continue
		}

		raw, ok := v.(*tensor.RawTensor)
		if !ok {
			return fmt.Errorf("%w: %s holds %T", ErrNotTensor, TensorMeta{Path: path}.Name(), v)
		}
		header.Tensors = append(header.Tensors, TensorMeta{
			Path:   path,
			DType:  raw.DType().String(),
			Shape:  []int(raw.Shape().Clone()),
			Offset: int64(len(*data)),
			Size:   int64(raw.ByteSize()),
		})
		*data = append(*data, raw.Bytes()...)
	}
	return nil
}

// SaveFile writes root to a .born file at path.
func SaveFile(path string, root *tree.Node, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(file)
	if err := Write(buf, root, metadata); err != nil {
		return err
	}
	return buf.Flush()
}
