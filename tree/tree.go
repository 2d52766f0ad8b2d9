// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/born-ml/treetensor/internal/tree"
)

// Node is an ordered tree node. The zero value is an empty TensorTree.
type Node = tree.Node

// Entry is one key/value pair of a tree literal.
type Entry = tree.Entry

// Leaf is a leaf of a tree with its key path.
type Leaf = tree.Leaf

// Container tags what kind of values a tree holds.
type Container = tree.Container

// Containers.
const (
	TensorTree Container = tree.TensorTree
	ObjectTree Container = tree.ObjectTree
)

// New builds a node from ordered entries. Nested map[string]any values
// become nodes. Duplicate keys are an error.
func New(container Container, entries ...Entry) (*Node, error) {
	return tree.New(container, entries...)
}

// FromMap builds a TensorTree from m, taking keys in sorted order.
func FromMap(m map[string]any) *Node {
	return tree.FromMap(m)
}
