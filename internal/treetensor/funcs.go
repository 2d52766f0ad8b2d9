package treetensor

// Package-level operations on the Default catalog. Arguments may be trees
// (*tree.Node or map[string]any), tensors, Go scalars or nested slices. Use
// Default.CallKw for keyword arguments such as dtype or rng.

// Tensor builds a tree of tensors from nested literals.
func Tensor(data any) (any, error) { return Default.Call("tensor", data) }

// Clone deep-copies every leaf.
func Clone(x any) (any, error) { return Default.Call("clone", x) }

// Zeros creates zero-filled tensors for every shape leaf.
func Zeros(shape ...any) (any, error) { return Default.Call("zeros", shape...) }

// ZerosLike creates zero-filled tensors shaped like the leaves of x.
func ZerosLike(x any) (any, error) { return Default.Call("zeros_like", x) }

// Ones creates one-filled tensors for every shape leaf.
func Ones(shape ...any) (any, error) { return Default.Call("ones", shape...) }

// OnesLike creates one-filled tensors shaped like the leaves of x.
func OnesLike(x any) (any, error) { return Default.Call("ones_like", x) }

// Empty creates tensors with unspecified contents.
func Empty(shape ...any) (any, error) { return Default.Call("empty", shape...) }

// EmptyLike creates tensors with unspecified contents shaped like x.
func EmptyLike(x any) (any, error) { return Default.Call("empty_like", x) }

// Full creates tensors filled with value.
func Full(shape, value any) (any, error) { return Default.Call("full", shape, value) }

// FullLike creates tensors filled with value shaped like x.
func FullLike(x, value any) (any, error) { return Default.Call("full_like", x, value) }

// Randn samples the standard normal distribution.
func Randn(shape ...any) (any, error) { return Default.Call("randn", shape...) }

// RandnLike samples the standard normal distribution, shaped like x.
func RandnLike(x any) (any, error) { return Default.Call("randn_like", x) }

// Randint samples integers in [0, high) for every shape leaf.
func Randint(high, shape any) (any, error) { return Default.Call("randint", high, shape) }

// RandintLike samples integers in [0, high), shaped like x.
func RandintLike(x, high any) (any, error) { return Default.Call("randint_like", x, high) }

// All reports whether every element of every leaf is non-zero. The result is
// a 0-d bool tensor, true for an empty tree.
func All(x any) (any, error) { return Default.Call("all", x) }

// Any reports whether some element of some leaf is non-zero. The result is
// a 0-d bool tensor, false for an empty tree.
func Any(x any) (any, error) { return Default.Call("any", x) }

// Min returns the smallest element over all leaves.
func Min(x any) (any, error) { return Default.Call("min", x) }

// Max returns the largest element over all leaves.
func Max(x any) (any, error) { return Default.Call("max", x) }

// Sum adds up every element of every leaf into a 0-d tensor. An empty tree
// sums to 0 in the default int dtype.
func Sum(x any) (any, error) { return Default.Call("sum", x) }

// Equal reports whether a and b hold equal tensors at every position.
func Equal(a, b any) (any, error) { return Default.Call("equal", a, b) }

// Size returns the total number of elements.
func Size(x any) (any, error) { return Default.Call("size", x) }

// Nbytes returns the total number of bytes.
func Nbytes(x any) (any, error) { return Default.Call("nbytes", x) }

func Eq(a, b any) (any, error) { return Default.Call("eq", a, b) }
func Ne(a, b any) (any, error) { return Default.Call("ne", a, b) }
func Lt(a, b any) (any, error) { return Default.Call("lt", a, b) }
func Le(a, b any) (any, error) { return Default.Call("le", a, b) }
func Gt(a, b any) (any, error) { return Default.Call("gt", a, b) }
func Ge(a, b any) (any, error) { return Default.Call("ge", a, b) }

func Abs(x any) (any, error)            { return Default.Call("abs", x) }
func AbsInplace(x any) (any, error)     { return Default.Call("abs_", x) }
func Sign(x any) (any, error)           { return Default.Call("sign", x) }
func Neg(x any) (any, error)            { return Default.Call("neg", x) }
func NegInplace(x any) (any, error)     { return Default.Call("neg_", x) }
func Round(x any) (any, error)          { return Default.Call("round", x) }
func RoundInplace(x any) (any, error)   { return Default.Call("round_", x) }
func Floor(x any) (any, error)          { return Default.Call("floor", x) }
func FloorInplace(x any) (any, error)   { return Default.Call("floor_", x) }
func Ceil(x any) (any, error)           { return Default.Call("ceil", x) }
func CeilInplace(x any) (any, error)    { return Default.Call("ceil_", x) }
func Sigmoid(x any) (any, error)        { return Default.Call("sigmoid", x) }
func SigmoidInplace(x any) (any, error) { return Default.Call("sigmoid_", x) }
func Exp(x any) (any, error)            { return Default.Call("exp", x) }
func ExpInplace(x any) (any, error)     { return Default.Call("exp_", x) }
func Exp2(x any) (any, error)           { return Default.Call("exp2", x) }
func Exp2Inplace(x any) (any, error)    { return Default.Call("exp2_", x) }
func Sqrt(x any) (any, error)           { return Default.Call("sqrt", x) }
func SqrtInplace(x any) (any, error)    { return Default.Call("sqrt_", x) }
func Log(x any) (any, error)            { return Default.Call("log", x) }
func LogInplace(x any) (any, error)     { return Default.Call("log_", x) }
func Log2(x any) (any, error)           { return Default.Call("log2", x) }
func Log2Inplace(x any) (any, error)    { return Default.Call("log2_", x) }
func Log10(x any) (any, error)          { return Default.Call("log10", x) }
func Log10Inplace(x any) (any, error)   { return Default.Call("log10_", x) }

// Clamp limits every leaf to [lo, hi]. Pass nil to leave a side open.
func Clamp(x, lo, hi any) (any, error) { return Default.Call("clamp", x, lo, hi) }

// ClampInplace is Clamp writing into x.
func ClampInplace(x, lo, hi any) (any, error) { return Default.Call("clamp_", x, lo, hi) }

func Add(a, b any) (any, error) { return Default.Call("add", a, b) }
func Sub(a, b any) (any, error) { return Default.Call("sub", a, b) }
func Mul(a, b any) (any, error) { return Default.Call("mul", a, b) }
func Div(a, b any) (any, error) { return Default.Call("div", a, b) }
func Pow(a, b any) (any, error) { return Default.Call("pow", a, b) }

// Dot is the inner product of 1-D leaves.
func Dot(a, b any) (any, error) { return Default.Call("dot", a, b) }

// Matmul multiplies 1-D or 2-D leaves.
func Matmul(a, b any) (any, error) { return Default.Call("matmul", a, b) }

// MM multiplies 2-D leaves.
func MM(a, b any) (any, error) { return Default.Call("mm", a, b) }

// Shape returns an ObjectTree of leaf shapes.
func Shape(x any) (any, error) { return Default.Call("shape", x) }

// ToList returns an ObjectTree of nested []any literals.
func ToList(x any) (any, error) { return Default.Call("tolist", x) }
