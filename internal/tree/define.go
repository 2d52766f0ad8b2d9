package tree

// Op is a named, lifted operation.
type Op struct {
	name   string
	policy Policy
	call   Lifted
}

// Define builds an Op from a leaf function and its result policy. The
// composition order is fixed: convert arguments (LiteralMode), walk, then
// reduce or write back.
func Define(name string, fn LeafFunc, policy Policy) *Op {
	return &Op{
		name:   name,
		policy: policy,
		call:   Lift(fn, policy),
	}
}

// Name returns the operation name.
func (op *Op) Name() string {
	return op.name
}

// Policy returns the result policy the operation was defined with.
func (op *Op) Policy() Policy {
	return op.policy
}

// Call applies the operation to positional arguments.
func (op *Op) Call(args ...any) (any, error) {
	return op.call(args, nil)
}

// CallKw applies the operation to positional and keyword arguments.
func (op *Op) CallKw(kwargs Kwargs, args ...any) (any, error) {
	return op.call(args, kwargs)
}
