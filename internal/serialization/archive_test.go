package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

func fromLiteral(t *testing.T, v any) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromLiteral(v, tensor.DefaultTypes)
	if err != nil {
		t.Fatalf("FromLiteral(%v): %v", v, err)
	}
	return raw
}

// sampleTree has keys out of sorted order, mixed dtypes, a 0-d leaf and an
// empty subtree between two tensors.
func sampleTree(t *testing.T) *tree.Node {
	t.Helper()
	inner, err := tree.New(tree.TensorTree,
		tree.Entry{Key: "y", Value: fromLiteral(t, []any{[]any{1, 2}, []any{3, 4}})},
		tree.Entry{Key: "x", Value: fromLiteral(t, 2.5)},
	)
	if err != nil {
		t.Fatal(err)
	}
	root, err := tree.New(tree.TensorTree,
		tree.Entry{Key: "z", Value: fromLiteral(t, []any{true, false, true})},
		tree.Entry{Key: "empty", Value: map[string]any{}},
		tree.Entry{Key: "b", Value: inner},
		tree.Entry{Key: "layer.0", Value: fromLiteral(t, []any{0.5, -1.5})},
	)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func sameTensor(t *testing.T, path string, want, got any) {
	t.Helper()
	w, ok := want.(*tensor.RawTensor)
	if !ok {
		t.Fatalf("%s: want is %T", path, want)
	}
	g, ok := got.(*tensor.RawTensor)
	if !ok {
		t.Fatalf("%s: expected a tensor, got %T", path, got)
	}
	if g.DType() != w.DType() {
		t.Errorf("%s: dtype %s, want %s", path, g.DType(), w.DType())
	}
	if !g.Shape().Equal(w.Shape()) {
		t.Errorf("%s: shape %v, want %v", path, g.Shape(), w.Shape())
	}
	if !bytes.Equal(g.Bytes(), w.Bytes()) {
		t.Errorf("%s: data differs", path)
	}
}

func TestRoundTrip(t *testing.T) {
	root := sampleTree(t)

	var buf bytes.Buffer
	if err := Write(&buf, root, map[string]string{"note": "params"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	headerSize := binary.LittleEndian.Uint64(buf.Bytes()[16:24])
	dataSize := binary.LittleEndian.Uint64(buf.Bytes()[24:32])
	if start := uint64(buf.Len()) - dataSize; start%HeaderAlignment != 0 || start < FixedHeaderSize+headerSize {
		t.Errorf("tensor data starts at %d, not aligned after the header", start)
	}

	got, header, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if keys := got.Keys(); len(keys) != 4 || keys[0] != "z" || keys[1] != "empty" || keys[2] != "b" || keys[3] != "layer.0" {
		t.Errorf("root keys = %v", keys)
	}
	if !got.Congruent(root) {
		t.Error("round trip changed the structure")
	}
	if empty, ok := got.Get("empty"); !ok || empty.(*tree.Node).Len() != 0 {
		t.Errorf("empty subtree lost: %v", empty)
	}
	if keys := mustNode(t, got, "b").Keys(); keys[0] != "y" || keys[1] != "x" {
		t.Errorf("nested keys = %v", keys)
	}

	want := root.Leaves()
	leaves := got.Leaves()
	if len(leaves) != len(want) {
		t.Fatalf("got %d leaves, want %d", len(leaves), len(want))
	}
	for i := range want {
		if leaves[i].Path != want[i].Path {
			t.Errorf("leaf %d: path %s, want %s", i, leaves[i].Path, want[i].Path)
		}
		sameTensor(t, want[i].Path, want[i].Value, leaves[i].Value)
	}

	if header.Metadata["note"] != "params" {
		t.Errorf("metadata = %v", header.Metadata)
	}
	if header.Container != ContainerTensor {
		t.Errorf("container = %q", header.Container)
	}
}

func mustNode(t *testing.T, n *tree.Node, key string) *tree.Node {
	t.Helper()
	v, ok := n.Get(key)
	if !ok {
		t.Fatalf("missing %s", key)
	}
	child, ok := v.(*tree.Node)
	if !ok {
		t.Fatalf("%s is %T", key, v)
	}
	return child
}

func TestRoundTripObjectTree(t *testing.T) {
	root, err := tree.New(tree.ObjectTree, tree.Entry{Key: "a", Value: fromLiteral(t, []any{1})})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, root, nil); err != nil {
		t.Fatal(err)
	}
	flags := binary.LittleEndian.Uint32(buf.Bytes()[8:12])
	if flags&FlagObjectTree == 0 {
		t.Error("object tree flag not set")
	}

	got, _, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Container() != tree.ObjectTree {
		t.Errorf("container = %v", got.Container())
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.born")
	root := sampleTree(t)

	if err := SaveFile(path, root, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, header, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !got.Congruent(root) {
		t.Error("structure differs after load")
	}
	if header.FormatVersion != FormatVersion {
		t.Errorf("format version = %d", header.FormatVersion)
	}

	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.born")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteRejectsNonTensorLeaves(t *testing.T) {
	root := tree.FromMap(map[string]any{"a": 1})
	err := Write(&bytes.Buffer{}, root, nil)
	if !errors.Is(err, ErrNotTensor) {
		t.Errorf("expected ErrNotTensor, got %v", err)
	}
}

func TestReadCorrupted(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTree(t), nil); err != nil {
		t.Fatal(err)
	}
	archive := buf.Bytes()

	tests := []struct {
		name    string
		corrupt func(b []byte) []byte
		wantErr error
	}{
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrInvalidMagic},
		{"version", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[4:8], 1); return b }, ErrUnsupportedVersion},
		{"checksum", func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }, ErrChecksumMismatch},
		{"header size", func(b []byte) []byte { binary.LittleEndian.PutUint64(b[16:24], MaxHeaderSize+1); return b }, ErrHeaderTooLarge},
		{"truncated", func(b []byte) []byte { return b[:len(b)-4] }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.corrupt(bytes.Clone(archive))
			_, _, err := Read(bytes.NewReader(b))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// The checksum can be skipped.
	b := bytes.Clone(archive)
	b[len(b)-1] ^= 0xFF
	if _, _, err := ReadWithOptions(bytes.NewReader(b), ReaderOptions{SkipChecksumValidation: true}); err != nil {
		t.Errorf("skip checksum: %v", err)
	}
}

// rawArchive lays out an archive around a hand-written header.
func rawArchive(t *testing.T, header Header, data []byte) []byte {
	t.Helper()
	headerJSON, err := json.Marshal(header)
	if err != nil {
		t.Fatal(err)
	}
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := sha256.Sum256(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	var buf bytes.Buffer
	buf.Write(fixed)
	buf.Write(headerJSON)
	buf.Write(make([]byte, alignedPadding(int64(FixedHeaderSize)+int64(len(headerJSON)))))
	buf.Write(data)
	return buf.Bytes()
}

func TestReadOverflowingOffset(t *testing.T) {
	header := Header{
		FormatVersion: FormatVersion,
		Tensors: []TensorMeta{{
			Path:   []string{"a"},
			DType:  "float32",
			Shape:  []int{1},
			Offset: math.MaxInt64 - 2,
			Size:   4,
		}},
	}

	_, _, err := Read(bytes.NewReader(rawArchive(t, header, nil)))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected %v, got %v", ErrOutOfBounds, err)
	}
}

func TestSafeTensorsRoundTrip(t *testing.T) {
	inner, err := tree.New(tree.TensorTree,
		tree.Entry{Key: "w", Value: fromLiteral(t, []any{[]any{1.0, 2.0}})},
		tree.Entry{Key: "b", Value: fromLiteral(t, []any{3})},
	)
	if err != nil {
		t.Fatal(err)
	}
	root, err := tree.New(tree.TensorTree,
		tree.Entry{Key: "layer", Value: inner},
		tree.Entry{Key: "flag", Value: fromLiteral(t, true)},
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSafeTensors(&buf, root, map[string]string{"format": "pt"}); err != nil {
		t.Fatalf("WriteSafeTensors: %v", err)
	}
	got, metadata, err := ReadSafeTensors(&buf)
	if err != nil {
		t.Fatalf("ReadSafeTensors: %v", err)
	}
	if metadata["format"] != "pt" {
		t.Errorf("metadata = %v", metadata)
	}

	// Keys come back sorted.
	if keys := got.Keys(); len(keys) != 2 || keys[0] != "flag" || keys[1] != "layer" {
		t.Errorf("root keys = %v", keys)
	}
	if keys := mustNode(t, got, "layer").Keys(); keys[0] != "b" || keys[1] != "w" {
		t.Errorf("layer keys = %v", keys)
	}
	for _, leaf := range root.Leaves() {
		v, ok := got.At(leaf.Path)
		if !ok {
			t.Fatalf("missing %s", leaf.Path)
		}
		sameTensor(t, leaf.Path, leaf.Value, v)
	}
}

func TestSafeTensorsRejectsDottedKeys(t *testing.T) {
	root := tree.FromMap(map[string]any{"layer.0": fromLiteral(t, []any{1})})
	err := WriteSafeTensors(&bytes.Buffer{}, root, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Type != "invalid_key" {
		t.Errorf("expected invalid_key, got %v", err)
	}
}

func TestReadSafeTensorsConflict(t *testing.T) {
	header := []byte(`{"a":{"dtype":"U8","shape":[1],"data_offsets":[0,1]},"a.b":{"dtype":"U8","shape":[1],"data_offsets":[1,2]}}`)
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.Write(header)
	buf.Write([]byte{1, 2})

	_, _, err := ReadSafeTensors(&buf)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Type != "path_conflict" {
		t.Errorf("expected path_conflict, got %v", err)
	}
}
