package tensor

// Backend defines the array operations tensor trees are lifted over.
// Backends handle the actual computation; every kernel reports failures
// (bad shapes, unsupported dtypes) as errors rather than panics.
//
// Implementations:
//   - CPU: Pure Go (internal/backend/cpu)
type Backend interface {
	// Unary applies an element-wise function. With inplace set the result is
	// written into x, which is returned; x must already have the result dtype.
	Unary(op UnaryOp, x *RawTensor, inplace bool) (*RawTensor, error)

	// Clamp limits x to [lo, hi]. Either bound may be nil.
	Clamp(x, lo, hi *RawTensor, inplace bool) (*RawTensor, error)

	// Binary applies an element-wise function with NumPy-style broadcasting
	// and dtype promotion (see PromoteTypes).
	Binary(op BinaryOp, a, b *RawTensor) (*RawTensor, error)

	// Compare returns a bool tensor, broadcasting a and b.
	Compare(op CompareOp, a, b *RawTensor) (*RawTensor, error)

	// Reduce folds all elements of x into a 0-d tensor.
	Reduce(op ReduceOp, x *RawTensor) (*RawTensor, error)

	// Equal reports whether a and b have the same shape and elements.
	Equal(a, b *RawTensor) (bool, error)

	// Matrix operations
	MatMul(a, b *RawTensor) (*RawTensor, error) // 1-D/2-D matmul semantics
	MM(a, b *RawTensor) (*RawTensor, error)     // strictly 2-D
	Dot(a, b *RawTensor) (*RawTensor, error)    // strictly 1-D

	// Type conversion
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}

// UnaryOp names an element-wise unary function.
type UnaryOp int

// Unary operations.
const (
	OpAbs UnaryOp = iota
	OpNeg
	OpSign
	OpRound
	OpFloor
	OpCeil
	OpSigmoid
	OpExp
	OpExp2
	OpSqrt
	OpLog
	OpLog2
	OpLog10
)

var unaryNames = [...]string{"abs", "neg", "sign", "round", "floor", "ceil", "sigmoid", "exp", "exp2", "sqrt", "log", "log2", "log10"}

func (op UnaryOp) String() string { return unaryNames[op] }

// Floating reports whether the op always produces a floating point result,
// promoting integer and bool inputs.
func (op UnaryOp) Floating() bool {
	return op >= OpSigmoid
}

// BinaryOp names an element-wise binary function.
type BinaryOp int

// Binary operations.
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMinimum
	OpMaximum
	OpAnd
	OpOr
)

var binaryNames = [...]string{"add", "sub", "mul", "div", "pow", "minimum", "maximum", "logical_and", "logical_or"}

func (op BinaryOp) String() string { return binaryNames[op] }

// CompareOp names an element-wise comparison.
type CompareOp int

// Comparison operations.
const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var compareNames = [...]string{"eq", "ne", "lt", "le", "gt", "ge"}

func (op CompareOp) String() string { return compareNames[op] }

// ReduceOp names a whole-tensor reduction.
type ReduceOp int

// Reductions.
const (
	ReduceAll ReduceOp = iota
	ReduceAny
	ReduceSum
	ReduceMin
	ReduceMax
)

var reduceNames = [...]string{"all", "any", "sum", "min", "max"}

func (op ReduceOp) String() string { return reduceNames[op] }
