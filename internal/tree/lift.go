package tree

import (
	"fmt"
	"maps"
	"slices"
)

// Lifted is a single-value function lifted over trees.
type Lifted func(args []any, kwargs Kwargs) (any, error)

// Lift wraps fn so that tree arguments are walked according to policy.
//
//   - Preserve: Walk with the policy container.
//   - Reduce: Walk into an ObjectTree, then fold its leaves. A call without tree
//     arguments returns the leaf result as is.
//   - InPlaceMode: check the structure of every tree argument, Walk, store
//     each leaf result at its key in the first argument when it is a tree, and
//     return the first argument (the same *Node, or the same leaf). Tree
//     arguments bound elsewhere are never written to.
//   - LiteralMode: convert map[string]any arguments into trees, then Preserve.
func Lift(fn LeafFunc, policy Policy) Lifted {
	switch policy.Mode {
	case Reduce:
		return func(args []any, kwargs Kwargs) (any, error) {
			out, err := Walk(fn, args, kwargs, WithContainer(ObjectTree))
			if err != nil {
				return nil, err
			}
			node, ok := out.(*Node)
			if !ok {
				return out, nil
			}
			leaves := node.Leaves()
			if len(leaves) == 0 && policy.Empty != nil {
				return policy.Empty()
			}
			return fold(leaves, policy.Combine, policy.Identity)
		}

	case InPlaceMode:
		return func(args []any, kwargs Kwargs) (any, error) {
			// Leaf calls mutate their first argument, so a mismatch has to be
			// caught before the first one runs.
			if err := checkStructure(nil, classify(args, kwargs)); err != nil {
				return nil, err
			}
			out, err := Walk(fn, args, kwargs)
			if err != nil {
				return nil, err
			}
			if len(args) == 0 {
				return out, nil
			}
			dst, isTree := args[0].(*Node)
			if node, ok := out.(*Node); ok && isTree && dst != nil {
				writeBack(dst, node)
			}
			return args[0], nil
		}

	case LiteralMode:
		return func(args []any, kwargs Kwargs) (any, error) {
			args, kwargs = Convert(args, kwargs)
			return Walk(fn, args, kwargs, WithContainer(policy.Container))
		}

	default:
		return func(args []any, kwargs Kwargs) (any, error) {
			return Walk(fn, args, kwargs, WithContainer(policy.Container))
		}
	}
}

// Convert returns args and kwargs with every map[string]any replaced by the
// equivalent TensorTree (see FromMap). The inputs are not modified.
func Convert(args []any, kwargs Kwargs) ([]any, Kwargs) {
	outArgs, cloned := args, false
	for i, a := range args {
		if m, ok := a.(map[string]any); ok {
			if !cloned {
				outArgs, cloned = slices.Clone(args), true
			}
			outArgs[i] = FromMap(m)
		}
	}

	outKwargs, cloned := kwargs, false
	for k, v := range kwargs {
		if m, ok := v.(map[string]any); ok {
			if !cloned {
				outKwargs, cloned = maps.Clone(kwargs), true
			}
			outKwargs[k] = FromMap(m)
		}
	}
	return outArgs, outKwargs
}

// fold combines leaves in order.
func fold(leaves []Leaf, combine CombineFunc, identity any) (any, error) {
	if combine == nil {
		return nil, fmt.Errorf("tree: reduce policy without a combine function")
	}
	acc := identity
	for i, leaf := range leaves {
		if i == 0 && identity == nil {
			acc = leaf.Value
			continue
		}
		var err error
		if acc, err = combine(acc, leaf.Value); err != nil {
			return nil, err
		}
	}
	if acc == nil {
		return nil, ErrEmptyReduce
	}
	return acc, nil
}

// writeBack stores the leaves of result into dst at the same positions.
func writeBack(dst, result *Node) {
	for i, kv := range dst.entries() {
		v, _ := result.Get(kv.Key)
		if child, ok := kv.Value.(*Node); ok {
			if sub, ok := v.(*Node); ok {
				writeBack(child, sub)
				continue
			}
		}
		dst.children.ReplaceIndex(i, kv.Key, v)
	}
}
