package treetensor

import (
	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// definition is one row of the operation table.
type definition struct {
	name   string
	leaf   func(c *Catalog) tree.LeafFunc
	policy func(c *Catalog) tree.Policy
}

func preserve(*Catalog) tree.Policy { return tree.PreserveTree(tree.TensorTree) }
func object(*Catalog) tree.Policy   { return tree.PreserveTree(tree.ObjectTree) }
func inplace(*Catalog) tree.Policy  { return tree.InPlace() }
func literal(*Catalog) tree.Policy  { return tree.Literal() }

// reduceWith folds leaf results with a backend binary op, seeded with the
// identity as a weak scalar. On a tree without leaves the identity is
// returned as a fresh 0-d tensor, the type every other outcome has.
func reduceWith(op tensor.BinaryOp, identity any) func(c *Catalog) tree.Policy {
	return func(c *Catalog) tree.Policy {
		policy := tree.ScalarReduce(func(acc, leaf any) (any, error) {
			a, err := c.operand(op.String(), acc)
			if err != nil {
				return nil, err
			}
			b, err := c.operand(op.String(), leaf)
			if err != nil {
				return nil, err
			}
			return c.backend.Binary(op, a, b)
		}, identity)
		if identity != nil {
			policy.Empty = func() (any, error) {
				return tensor.FromLiteral(identity, c.defaults)
			}
		}
		return policy
	}
}

// countWith folds Go int leaf results.
func countWith(*Catalog) tree.Policy {
	return tree.ScalarReduce(func(acc, leaf any) (any, error) {
		return acc.(int) + leaf.(int), nil
	}, 0)
}

// andWith folds Go bool leaf results.
func andWith(*Catalog) tree.Policy {
	return tree.ScalarReduce(func(acc, leaf any) (any, error) {
		return acc.(bool) && leaf.(bool), nil
	}, true)
}

// operations is the table every Catalog is built from.
var operations = []definition{
	// Construction.
	{"tensor", construct, literal},
	{"clone", clone, preserve},

	// Factories.
	{"zeros", factory("zeros", fillConst(0)), preserve},
	{"ones", factory("ones", fillConst(1)), preserve},
	{"empty", factory("empty", fillConst(nil)), preserve},
	{"full", full, preserve},
	{"randn", factory("randn", fillRandn), preserve},
	{"randint", randint, preserve},
	{"zeros_like", like("zeros_like", fillConst(0)), preserve},
	{"ones_like", like("ones_like", fillConst(1)), preserve},
	{"empty_like", like("empty_like", fillConst(nil)), preserve},
	{"full_like", fullLike, preserve},
	{"randn_like", like("randn_like", fillRandn), preserve},
	{"randint_like", randintLike, preserve},

	// Reductions.
	{"all", reduce(tensor.ReduceAll), reduceWith(tensor.OpAnd, true)},
	{"any", reduce(tensor.ReduceAny), reduceWith(tensor.OpOr, false)},
	{"min", reduce(tensor.ReduceMin), reduceWith(tensor.OpMinimum, nil)},
	{"max", reduce(tensor.ReduceMax), reduceWith(tensor.OpMaximum, nil)},
	{"sum", reduce(tensor.ReduceSum), reduceWith(tensor.OpAdd, 0)},
	{"equal", equal, andWith},
	{"size", query("size", func(x *tensor.RawTensor) any { return x.NumElements() }), countWith},
	{"nbytes", query("nbytes", func(x *tensor.RawTensor) any { return x.ByteSize() }), countWith},

	// Comparisons.
	{"eq", compare(tensor.OpEq), preserve},
	{"ne", compare(tensor.OpNe), preserve},
	{"lt", compare(tensor.OpLt), preserve},
	{"le", compare(tensor.OpLe), preserve},
	{"gt", compare(tensor.OpGt), preserve},
	{"ge", compare(tensor.OpGe), preserve},

	// Element-wise math.
	{"abs", unary(tensor.OpAbs, false), preserve},
	{"abs_", unary(tensor.OpAbs, true), inplace},
	{"sign", unary(tensor.OpSign, false), preserve},
	{"neg", unary(tensor.OpNeg, false), preserve},
	{"neg_", unary(tensor.OpNeg, true), inplace},
	{"round", unary(tensor.OpRound, false), preserve},
	{"round_", unary(tensor.OpRound, true), inplace},
	{"floor", unary(tensor.OpFloor, false), preserve},
	{"floor_", unary(tensor.OpFloor, true), inplace},
	{"ceil", unary(tensor.OpCeil, false), preserve},
	{"ceil_", unary(tensor.OpCeil, true), inplace},
	{"sigmoid", unary(tensor.OpSigmoid, false), preserve},
	{"sigmoid_", unary(tensor.OpSigmoid, true), inplace},
	{"exp", unary(tensor.OpExp, false), preserve},
	{"exp_", unary(tensor.OpExp, true), inplace},
	{"exp2", unary(tensor.OpExp2, false), preserve},
	{"exp2_", unary(tensor.OpExp2, true), inplace},
	{"sqrt", unary(tensor.OpSqrt, false), preserve},
	{"sqrt_", unary(tensor.OpSqrt, true), inplace},
	{"log", unary(tensor.OpLog, false), preserve},
	{"log_", unary(tensor.OpLog, true), inplace},
	{"log2", unary(tensor.OpLog2, false), preserve},
	{"log2_", unary(tensor.OpLog2, true), inplace},
	{"log10", unary(tensor.OpLog10, false), preserve},
	{"log10_", unary(tensor.OpLog10, true), inplace},
	{"clamp", clamp(false), preserve},
	{"clamp_", clamp(true), inplace},
	{"add", binary(tensor.OpAdd), preserve},
	{"sub", binary(tensor.OpSub), preserve},
	{"mul", binary(tensor.OpMul), preserve},
	{"div", binary(tensor.OpDiv), preserve},
	{"pow", binary(tensor.OpPow), preserve},

	// Linear algebra.
	{"dot", matrix("dot"), preserve},
	{"matmul", matrix("matmul"), preserve},
	{"mm", matrix("mm"), preserve},

	// Plain-tree queries.
	{"shape", query("shape", func(x *tensor.RawTensor) any { return x.Shape().Clone() }), object},
	{"tolist", query("tolist", func(x *tensor.RawTensor) any { return x.ToList() }), object},
}

// construct builds a tensor from a literal leaf: tensor(data, dtype=).
func construct(c *Catalog) tree.LeafFunc {
	return func(args []any, kwargs tree.Kwargs) (any, error) {
		if err := need("tensor", args, 1, 1); err != nil {
			return nil, err
		}
		t, err := tensor.FromLiteral(args[0], c.defaults)
		if err != nil {
			return nil, err
		}
		dtype, err := dtypeKw("tensor", kwargs, t.DType())
		if err != nil {
			return nil, err
		}
		return c.backend.Cast(t, dtype)
	}
}

func clone(c *Catalog) tree.LeafFunc {
	return func(args []any, _ tree.Kwargs) (any, error) {
		if err := need("clone", args, 1, 1); err != nil {
			return nil, err
		}
		x, err := c.operand("clone", args[0])
		if err != nil {
			return nil, err
		}
		return x.Clone(), nil
	}
}

func unary(op tensor.UnaryOp, inplace bool) func(c *Catalog) tree.LeafFunc {
	name := op.String()
	if inplace {
		name += "_"
	}
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, _ tree.Kwargs) (any, error) {
			if err := need(name, args, 1, 1); err != nil {
				return nil, err
			}
			var (
				x   *tensor.RawTensor
				err error
			)
			if inplace {
				x, err = mutable(name, args[0])
			} else {
				x, err = c.operand(name, args[0])
			}
			if err != nil {
				return nil, err
			}
			return c.backend.Unary(op, x, inplace)
		}
	}
}

// clamp takes its bounds positionally or as min=/max= keywords.
func clamp(inplace bool) func(c *Catalog) tree.LeafFunc {
	name := "clamp"
	if inplace {
		name += "_"
	}
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, kwargs tree.Kwargs) (any, error) {
			if err := need(name, args, 1, 3); err != nil {
				return nil, err
			}
			bounds := [2]any{kwargs["min"], kwargs["max"]}
			for i, v := range args[1:] {
				bounds[i] = v
			}

			var (
				x   *tensor.RawTensor
				err error
			)
			if inplace {
				x, err = mutable(name, args[0])
			} else {
				x, err = c.operand(name, args[0])
			}
			if err != nil {
				return nil, err
			}

			var lohi [2]*tensor.RawTensor
			for i, b := range bounds {
				if b == nil {
					continue
				}
				if lohi[i], err = c.operand(name, b); err != nil {
					return nil, err
				}
			}
			return c.backend.Clamp(x, lohi[0], lohi[1], inplace)
		}
	}
}

// binary applies an arithmetic op. add and sub accept alpha=, scaling the
// second operand.
func binary(op tensor.BinaryOp) func(c *Catalog) tree.LeafFunc {
	name := op.String()
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, kwargs tree.Kwargs) (any, error) {
			if err := need(name, args, 2, 2); err != nil {
				return nil, err
			}
			a, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			b, err := c.operand(name, args[1])
			if err != nil {
				return nil, err
			}
			if alpha, ok := kwargs["alpha"]; ok && (op == tensor.OpAdd || op == tensor.OpSub) {
				s, err := c.operand(name, alpha)
				if err != nil {
					return nil, err
				}
				if b, err = c.backend.Binary(tensor.OpMul, b, s); err != nil {
					return nil, err
				}
			}
			return c.backend.Binary(op, a, b)
		}
	}
}

func compare(op tensor.CompareOp) func(c *Catalog) tree.LeafFunc {
	name := op.String()
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, _ tree.Kwargs) (any, error) {
			if err := need(name, args, 2, 2); err != nil {
				return nil, err
			}
			a, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			b, err := c.operand(name, args[1])
			if err != nil {
				return nil, err
			}
			return c.backend.Compare(op, a, b)
		}
	}
}

// reduce reduces each leaf to a 0-d tensor; the policy then folds those.
func reduce(op tensor.ReduceOp) func(c *Catalog) tree.LeafFunc {
	name := op.String()
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, _ tree.Kwargs) (any, error) {
			if err := need(name, args, 1, 1); err != nil {
				return nil, err
			}
			x, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			return c.backend.Reduce(op, x)
		}
	}
}

func equal(c *Catalog) tree.LeafFunc {
	return func(args []any, _ tree.Kwargs) (any, error) {
		if err := need("equal", args, 2, 2); err != nil {
			return nil, err
		}
		a, err := c.operand("equal", args[0])
		if err != nil {
			return nil, err
		}
		b, err := c.operand("equal", args[1])
		if err != nil {
			return nil, err
		}
		return c.backend.Equal(a, b)
	}
}

func matrix(name string) func(c *Catalog) tree.LeafFunc {
	return func(c *Catalog) tree.LeafFunc {
		var kernel func(a, b *tensor.RawTensor) (*tensor.RawTensor, error)
		switch name {
		case "dot":
			kernel = c.backend.Dot
		case "mm":
			kernel = c.backend.MM
		default:
			kernel = c.backend.MatMul
		}
		return func(args []any, _ tree.Kwargs) (any, error) {
			if err := need(name, args, 2, 2); err != nil {
				return nil, err
			}
			a, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			b, err := c.operand(name, args[1])
			if err != nil {
				return nil, err
			}
			return kernel(a, b)
		}
	}
}

// query maps each leaf tensor to a plain Go value.
func query(name string, fn func(x *tensor.RawTensor) any) func(c *Catalog) tree.LeafFunc {
	return func(c *Catalog) tree.LeafFunc {
		return func(args []any, _ tree.Kwargs) (any, error) {
			if err := need(name, args, 1, 1); err != nil {
				return nil, err
			}
			x, err := c.operand(name, args[0])
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		}
	}
}
