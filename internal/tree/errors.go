package tree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructureMismatch is returned (wrapped in a *StructureMismatchError) when
// the tree arguments of one call disagree on their key sets.
var ErrStructureMismatch = errors.New("tree structure mismatch")

// ErrEmptyReduce is returned when a reduction without an identity element is
// applied to a tree with no leaves.
var ErrEmptyReduce = errors.New("reduction of an empty tree has no identity")

// StructureMismatchError describes the first key-set divergence found while
// walking several trees together.
type StructureMismatchError struct {
	// Path holds the keys leading to the node where the divergence was found.
	Path []string

	// Key is the divergent key.
	Key string

	// Arg names the argument that diverges from the reference tree,
	// e.g. "args[1]" or "kwargs[other]".
	Arg string

	// Missing is true when Key is present in the reference tree but absent
	// from Arg, false when Arg has Key and the reference tree does not.
	Missing bool
}

func (e *StructureMismatchError) Error() string {
	where := "<root>"
	if len(e.Path) > 0 {
		where = strings.Join(e.Path, ".")
	}
	if e.Missing {
		return fmt.Sprintf("%s: key %q missing from %s at %s", ErrStructureMismatch, e.Key, e.Arg, where)
	}
	return fmt.Sprintf("%s: unexpected key %q in %s at %s", ErrStructureMismatch, e.Key, e.Arg, where)
}

// Unwrap makes errors.Is(err, ErrStructureMismatch) hold.
func (e *StructureMismatchError) Unwrap() error {
	return ErrStructureMismatch
}
