package tree

import (
	"fmt"
	"maps"
	"slices"
)

// Kwargs holds keyword arguments of a lifted call. Tree-valued kwargs are
// walked like positional trees; every other value is passed unchanged.
type Kwargs map[string]any

// LeafFunc computes the result at one leaf position. It receives the
// positional and keyword arguments with every tree replaced by its child at
// the current position.
type LeafFunc func(args []any, kwargs Kwargs) (any, error)

type walkConfig struct {
	container    Container
	hasContainer bool
}

// WalkOption configures Walk.
type WalkOption func(*walkConfig)

// WithContainer sets the container of every output Node. By default an
// output Node takes the container of the reference tree it mirrors.
func WithContainer(c Container) WalkOption {
	return func(cfg *walkConfig) {
		cfg.container = c
		cfg.hasContainer = true
	}
}

// Walk applies fn at every leaf position of the tree arguments and assembles
// the results into a tree of the same shape.
//
// The reference tree is the first *Node among args, or failing that among
// kwargs taken in sorted name order. Its key order is the output order. Every
// other tree argument must have the same key set at every level, otherwise
// Walk returns a *StructureMismatchError. Plain arguments are passed unchanged
// to every leaf call. With no tree arguments Walk returns fn(args, kwargs).
//
// Errors returned by fn are passed through as is; the first failing leaf in
// traversal order stops the walk and no partial result is returned.
func Walk(fn LeafFunc, args []any, kwargs Kwargs, opts ...WalkOption) (any, error) {
	var cfg walkConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	w := &walker{fn: fn, cfg: cfg}
	return w.walk(nil, args, kwargs)
}

type walker struct {
	fn  LeafFunc
	cfg walkConfig
}

// treeArg is a tree argument at the current level.
type treeArg struct {
	name  string
	pos   int    // index into args, or -1 for a kwarg
	kwarg string // kwarg name when pos < 0
	node  *Node
}

func (w *walker) walk(path []string, args []any, kwargs Kwargs) (any, error) {
	trees := classify(args, kwargs)
	if len(trees) == 0 {
		return w.fn(args, kwargs)
	}

	ref := trees[0].node
	for _, t := range trees[1:] {
		if err := sameKeys(path, ref, t); err != nil {
			return nil, err
		}
	}

	container := ref.container
	if w.cfg.hasContainer {
		container = w.cfg.container
	}
	out := newNode(container, ref.Len())

	var positional, keyword bool
	for _, t := range trees {
		if t.pos >= 0 {
			positional = true
		} else {
			keyword = true
		}
	}

	for _, kv := range ref.entries() {
		key := kv.Key
		subArgs, subKwargs := args, kwargs
		if positional {
			subArgs = slices.Clone(args)
		}
		if keyword {
			subKwargs = maps.Clone(kwargs)
		}
		for _, t := range trees {
			child := kv.Value
			if t.node != ref {
				child, _ = t.node.Get(key)
			}
			if t.pos >= 0 {
				subArgs[t.pos] = child
			} else {
				subKwargs[t.kwarg] = child
			}
		}

		result, err := w.walk(append(slices.Clip(path), key), subArgs, subKwargs)
		if err != nil {
			return nil, err
		}
		out.add(key, result)
	}
	return out, nil
}

// classify returns the tree arguments in reference order: positional first,
// then kwargs sorted by name.
func classify(args []any, kwargs Kwargs) []treeArg {
	var trees []treeArg
	for i, a := range args {
		if n, ok := a.(*Node); ok && n != nil {
			trees = append(trees, treeArg{name: fmt.Sprintf("args[%d]", i), pos: i, node: n})
		}
	}
	for _, k := range slices.Sorted(maps.Keys(kwargs)) {
		if n, ok := kwargs[k].(*Node); ok && n != nil {
			trees = append(trees, treeArg{name: "kwargs[" + k + "]", pos: -1, kwarg: k, node: n})
		}
	}
	return trees
}

// sameKeys checks that t has exactly the keys of ref.
func sameKeys(path []string, ref *Node, t treeArg) error {
	for _, k := range ref.Keys() {
		if !t.node.Has(k) {
			return &StructureMismatchError{Path: slices.Clone(path), Key: k, Arg: t.name, Missing: true}
		}
	}
	if t.node.Len() != ref.Len() {
		for _, k := range t.node.Keys() {
			if !ref.Has(k) {
				return &StructureMismatchError{Path: slices.Clone(path), Key: k, Arg: t.name}
			}
		}
	}
	return nil
}

// checkStructure runs the key checks of Walk at every level without calling
// the leaf function. It returns the error Walk would return first.
func checkStructure(path []string, trees []treeArg) error {
	if len(trees) < 2 {
		return nil
	}
	ref := trees[0].node
	for _, t := range trees[1:] {
		if err := sameKeys(path, ref, t); err != nil {
			return err
		}
	}
	for _, key := range ref.Keys() {
		var sub []treeArg
		for _, t := range trees {
			child, _ := t.node.Get(key)
			if n, ok := child.(*Node); ok && n != nil {
				t.node = n
				sub = append(sub, t)
			}
		}
		if err := checkStructure(append(slices.Clip(path), key), sub); err != nil {
			return err
		}
	}
	return nil
}
