package tree

// Mode selects how a lifted operation turns leaf results into its return
// value.
type Mode int

const (
	// Preserve returns a tree of the same shape as the arguments.
	Preserve Mode = iota

	// Reduce folds every leaf result into one value.
	Reduce

	// InPlaceMode writes leaf results back into the first tree argument and
	// returns the first argument itself.
	InPlaceMode

	// LiteralMode converts map arguments into trees, then behaves like Preserve.
	LiteralMode
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Preserve:
		return "preserve"
	case Reduce:
		return "reduce"
	case InPlaceMode:
		return "inplace"
	case LiteralMode:
		return "literal"
	default:
		return "unknown"
	}
}

// CombineFunc folds one leaf result into an accumulator.
type CombineFunc func(acc, leaf any) (any, error)

// Policy is the static result configuration of a lifted operation.
type Policy struct {
	Mode Mode

	// Container of output trees for Preserve and LiteralMode.
	Container Container

	// Combine and Identity drive Reduce. A nil Identity seeds the fold with
	// the first leaf, so reducing an empty tree fails with ErrEmptyReduce.
	Combine  CombineFunc
	Identity any

	// Empty, when set, builds the Reduce result of a tree without leaves,
	// fresh for every call. Identity still seeds the fold otherwise.
	Empty func() (any, error)
}

// PreserveTree returns a structure-preserving policy producing trees of the
// given container.
func PreserveTree(container Container) Policy {
	return Policy{Mode: Preserve, Container: container}
}

// ScalarReduce returns a policy that folds all leaf results, depth-first in
// key order, with combine seeded by identity.
func ScalarReduce(combine CombineFunc, identity any) Policy {
	return Policy{Mode: Reduce, Container: ObjectTree, Combine: combine, Identity: identity}
}

// InPlace returns the policy of mutating operations.
func InPlace() Policy {
	return Policy{Mode: InPlaceMode, Container: TensorTree}
}

// Literal returns the policy of constructors: map[string]any arguments are
// turned into trees first, and the leaf function builds each leaf value.
func Literal() Policy {
	return Policy{Mode: LiteralMode, Container: TensorTree}
}
