package serialization

import (
	"strings"
	"time"

	"github.com/born-ml/treetensor/internal/tree"
)

// Format constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 2    // Fixed 64-byte header with SHA-256 checksum
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Flags for the .born format.
const (
	FlagHasMetadata uint32 = 1 << 2 // bit 2: custom metadata included
	FlagObjectTree  uint32 = 1 << 3 // bit 3: the root is an ObjectTree
)

// Container names stored in the header.
const (
	ContainerTensor = "tensor"
	ContainerObject = "object"
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`  // Version of the .born format
	Version       string            `json:"version"`         // Version of the library that wrote the file
	Container     string            `json:"container"`       // Container of every node ("tensor" or "object")
	CreatedAt     time.Time         `json:"created_at"`      // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`         // Leaf tensors, depth-first in key order
	Empty         []EmptyMeta       `json:"empty,omitempty"` // Empty subtrees
	Metadata      map[string]string `json:"metadata"`        // Custom metadata
}

// TensorMeta describes a leaf tensor in the .born file.
type TensorMeta struct {
	Path   []string `json:"path"`   // Key path from the root (e.g., ["b", "x"])
	DType  string   `json:"dtype"`  // Data type (e.g., "float32", "int64")
	Shape  []int    `json:"shape"`  // Tensor shape
	Offset int64    `json:"offset"` // Offset in the data section (bytes from start of tensor data)
	Size   int64    `json:"size"`   // Size in bytes
}

// EmptyMeta records an empty subtree. Index is the number of tensors that
// precede it in depth-first key order, which fixes its position among them.
type EmptyMeta struct {
	Path  []string `json:"path"`
	Index int      `json:"index"`
}

// Name returns the dotted path of the tensor.
func (m TensorMeta) Name() string {
	return strings.Join(m.Path, ".")
}

// Version is written into every header.
const Version = "0.1.0"

func containerName(c tree.Container) string {
	if c == tree.ObjectTree {
		return ContainerObject
	}
	return ContainerTensor
}

func parseContainer(name string) tree.Container {
	if name == ContainerObject {
		return tree.ObjectTree
	}
	return tree.TensorTree
}

// alignedPadding is the number of zero bytes after pos up to the next
// HeaderAlignment boundary.
func alignedPadding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
