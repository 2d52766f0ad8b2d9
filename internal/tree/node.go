// Package tree implements ordered trees whose leaves are arbitrary values,
// and the machinery that lifts single-value functions over them.
//
// A Node maps string keys to children; a child is either another *Node or a
// leaf. Anything that is not a *Node is a leaf: tensors, Go scalars, shapes.
// Walk applies a function at every leaf position of one or more congruent
// trees, and Lift/Define turn a leaf function into a tree operation with a
// declared result Policy.
package tree

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"cogentcore.org/core/base/ordmap"
)

// Container tags the kind of tree a Node is.
type Container int

const (
	// TensorTree is the default container: leaves are operable values.
	TensorTree Container = iota

	// ObjectTree holds plain results such as shapes, lists and the
	// intermediate values of reductions.
	ObjectTree
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case TensorTree:
		return "TensorTree"
	case ObjectTree:
		return "ObjectTree"
	default:
		return fmt.Sprintf("Container(%d)", int(c))
	}
}

// Entry is one key/value pair of a Node literal.
type Entry struct {
	Key   string
	Value any
}

// Node is an ordered mapping from string keys to children.
//
// Insertion order is the canonical order: walks, prints and reductions all
// visit keys in it. The key set of a Node does not change after construction.
// The zero Node is an empty TensorTree.
type Node struct {
	container Container
	children  *ordmap.Map[string, any]
}

func newNode(container Container, capacity int) *Node {
	return &Node{
		container: container,
		children: &ordmap.Map[string, any]{
			Order: make([]ordmap.KeyValue[string, any], 0, capacity),
			Map:   make(map[string]int, capacity),
		},
	}
}

// New builds a Node from entries, in order. Values of type map[string]any
// become child Nodes of the same container (see FromMap). Duplicate keys are an
// error.
//
// Example:
//
//	n, err := tree.New(tree.TensorTree,
//		tree.Entry{Key: "a", Value: a},
//		tree.Entry{Key: "b", Value: map[string]any{"x": x}},
//	)
func New(container Container, entries ...Entry) (*Node, error) {
	n := newNode(container, len(entries))
	for _, e := range entries {
		if n.Has(e.Key) {
			return nil, fmt.Errorf("tree: duplicate key %q", e.Key)
		}
		n.add(e.Key, fromValue(container, e.Value))
	}
	return n, nil
}

// FromMap converts a nested map into a TensorTree. Every nested
// map[string]any becomes a Node, everything else a leaf. Go maps have no order,
// so keys are taken in sorted order.
func FromMap(m map[string]any) *Node {
	return fromMap(TensorTree, m)
}

func fromMap(container Container, m map[string]any) *Node {
	n := newNode(container, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		n.add(k, fromValue(container, m[k]))
	}
	return n
}

func fromValue(container Container, v any) any {
	if m, ok := v.(map[string]any); ok {
		return fromMap(container, m)
	}
	return v
}

func (n *Node) add(key string, v any) {
	if n.children == nil {
		n.children = ordmap.New[string, any]()
	}
	n.children.Add(key, v)
}

// entries returns the children in canonical order. A nil or zero Node has
// none.
func (n *Node) entries() []ordmap.KeyValue[string, any] {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children.Order
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return n.children.Len()
}

// Container returns the container tag. A nil Node is an empty TensorTree.
func (n *Node) Container() Container {
	if n == nil {
		return TensorTree
	}
	return n.container
}

// Keys returns the keys in canonical order.
func (n *Node) Keys() []string {
	if n.Len() == 0 {
		return []string{}
	}
	return n.children.Keys()
}

// Has reports whether key is a direct child.
func (n *Node) Has(key string) bool {
	if n.Len() == 0 {
		return false
	}
	_, ok := n.children.IndexByKeyTry(key)
	return ok
}

// Get returns the child at key.
func (n *Node) Get(key string) (any, bool) {
	if n.Len() == 0 {
		return nil, false
	}
	return n.children.ValueByKeyTry(key)
}

// At returns the value at a dotted path such as "b.x".
func (n *Node) At(path string) (any, bool) {
	var cur any = n
	for _, key := range strings.Split(path, ".") {
		node, ok := cur.(*Node)
		if !ok {
			return nil, false
		}
		if cur, ok = node.Get(key); !ok {
			return nil, false
		}
	}
	return cur, true
}

// All iterates over the direct children in canonical order.
func (n *Node) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, kv := range n.entries() {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// Leaf is a leaf value together with its position from the root: Keys holds
// one key per level and Path joins them with dots.
type Leaf struct {
	Path  string
	Keys  []string
	Value any
}

// Leaves returns every leaf, depth-first in key order.
func (n *Node) Leaves() []Leaf {
	var out []Leaf
	n.collect(nil, &out)
	return out
}

func (n *Node) collect(prefix []string, out *[]Leaf) {
	for _, kv := range n.entries() {
		keys := append(slices.Clip(prefix), kv.Key)
		if child, ok := kv.Value.(*Node); ok {
			child.collect(keys, out)
			continue
		}
		*out = append(*out, Leaf{Path: strings.Join(keys, "."), Keys: keys, Value: kv.Value})
	}
}

// Congruent reports whether n and other have the same key sets at every depth.
// Key order is ignored. A leaf facing a Node is not congruent, even though Walk
// accepts it and broadcasts the leaf over the Node.
func (n *Node) Congruent(other *Node) bool {
	if n.Len() != other.Len() {
		return false
	}
	for _, kv := range n.entries() {
		v, ok := other.Get(kv.Key)
		if !ok {
			return false
		}
		child, isNode := kv.Value.(*Node)
		otherChild, otherIsNode := v.(*Node)
		if isNode != otherIsNode {
			return false
		}
		if isNode && !child.Congruent(otherChild) {
			return false
		}
	}
	return true
}

// ToMap converts the tree back into nested maps. Key order is lost.
func (n *Node) ToMap() map[string]any {
	out := make(map[string]any, n.Len())
	for _, kv := range n.entries() {
		if child, ok := kv.Value.(*Node); ok {
			out[kv.Key] = child.ToMap()
			continue
		}
		out[kv.Key] = kv.Value
	}
	return out
}

// Map applies fn to every leaf and returns a new tree of the same shape and
// container.
func (n *Node) Map(fn func(leaf any) (any, error)) (*Node, error) {
	out, err := Walk(func(args []any, _ Kwargs) (any, error) {
		return fn(args[0])
	}, []any{n}, nil)
	if err != nil {
		return nil, err
	}
	return out.(*Node), nil
}
