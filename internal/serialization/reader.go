package serialization

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"cogentcore.org/core/base/ordmap"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// ReaderOptions configures ReadWithOptions.
type ReaderOptions struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// Read decodes a tree written by Write.
func Read(r io.Reader) (*tree.Node, Header, error) {
	return ReadWithOptions(r, ReaderOptions{})
}

// ReadWithOptions is Read with custom options.
func ReadWithOptions(r io.Reader, opts ReaderOptions) (*tree.Node, Header, error) {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixedHeader); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, Header{}, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	var checksum [ChecksumSize]byte
	copy(checksum[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, Header{}, ErrHeaderTooLarge
	}
	if dataSize > math.MaxInt64 {
		return nil, Header{}, fmt.Errorf("%w: data size %d", ErrOutOfBounds, dataSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header JSON: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	//nolint:gosec // G115: dataSize was checked against math.MaxInt64
	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, Header{}, err
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	padding := alignedPadding(int64(FixedHeaderSize) + int64(headerSize))
	if _, err := io.CopyN(io.Discard, r, padding); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read padding: %w", err)
	}

	// Read through a limited reader so a forged data size can't force a huge
	// allocation up front.
	var data bytes.Buffer
	//nolint:gosec // G115: dataSize was checked against math.MaxInt64
	if n, err := io.Copy(&data, io.LimitReader(r, int64(dataSize))); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read tensor data: %w", err)
	} else if uint64(n) != dataSize { //nolint:gosec // n is non-negative
		return nil, Header{}, fmt.Errorf("failed to read tensor data: %w", io.ErrUnexpectedEOF)
	}
	if !opts.SkipChecksumValidation && sha256.Sum256(data.Bytes()) != checksum {
		return nil, Header{}, ErrChecksumMismatch
	}

	root, err := rebuild(&header, data.Bytes())
	if err != nil {
		return nil, Header{}, err
	}
	return root, header, nil
}

// rebuild places every tensor and empty subtree of header back at its path.
func rebuild(header *Header, data []byte) (*tree.Node, error) {
	root := newBranch()
	empty := header.Empty
	for i, meta := range header.Tensors {
		for len(empty) > 0 && empty[0].Index <= i {
			if err := root.insert(empty[0].Path, nil); err != nil {
				return nil, err
			}
			empty = empty[1:]
		}

		raw, err := loadTensor(meta, data)
		if err != nil {
			return nil, err
		}
		if err := root.insert(meta.Path, raw); err != nil {
			return nil, err
		}
	}
	for _, e := range empty {
		if err := root.insert(e.Path, nil); err != nil {
			return nil, err
		}
	}
	return root.node(parseContainer(header.Container))
}

func loadTensor(meta TensorMeta, data []byte) (*tensor.RawTensor, error) {
	dtype, err := tensor.ParseDataType(meta.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", meta.Name(), err)
	}
	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor %s: %w", meta.Name(), err)
	}
	copy(raw.Bytes(), data[meta.Offset:meta.Offset+meta.Size])
	return raw, nil
}

// branch is a tree under construction. Children are *branch or leaves.
type branch struct {
	children *ordmap.Map[string, any]
}

func newBranch() *branch {
	return &branch{children: ordmap.New[string, any]()}
}

func (b *branch) add(key string, v any) {
	b.children.Add(key, v)
}

// insert places v at path, creating intermediate branches. A nil v creates
// an empty subtree.
func (b *branch) insert(path []string, v any) error {
	for i, k := range path {
		last := i == len(path)-1
		child, ok := b.children.ValueByKeyTry(k)
		if !ok {
			if last && v != nil {
				b.add(k, v)
				return nil
			}
			next := newBranch()
			b.add(k, next)
			b = next
			continue
		}
		next, isBranch := child.(*branch)
		if !isBranch || (last && v != nil) {
			return &ValidationError{
				Type:    "path_conflict",
				Tensor:  strings.Join(path, "."),
				Details: fmt.Sprintf("key %q is used twice", strings.Join(path[:i+1], ".")),
			}
		}
		b = next
	}
	return nil
}

func (b *branch) node(container tree.Container) (*tree.Node, error) {
	entries := make([]tree.Entry, 0, b.children.Len())
	for _, kv := range b.children.Order {
		k, v := kv.Key, kv.Value
		if sub, ok := v.(*branch); ok {
			n, err := sub.node(container)
			if err != nil {
				return nil, err
			}
			v = n
		}
		entries = append(entries, tree.Entry{Key: k, Value: v})
	}
	return tree.New(container, entries...)
}

// LoadFile reads a .born file written by SaveFile.
func LoadFile(path string) (*tree.Node, Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Read-only, nothing to flush
	}()
	return Read(bufio.NewReader(file))
}
