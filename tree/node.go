package tree

import (
	"sort"
	"strings"

	"github.com/jesee-kuya/triage/record"
)

// UnknownClass is the leaf value grown from an empty record set.
const UnknownClass = "unknown"

// MissingValue is the sentinel a traversal matches against child keys
// when the record has no value for the branch attribute.
const MissingValue = "missing"

/*
Node is a node of the tree: either a branch that splits records on an
attribute or a leaf holding a class value.

A branch owns its children exclusively; the tree is a finite acyclic
hierarchy with no shared subtrees. Nodes are never mutated once the
tree is grown.
*/
type Node struct {
	// The class value predicted at this node. Set only on leaves.
	Value string
	// The attribute on whose values records are split below this node.
	// Set only on branches.
	Attribute string
	// The subtree for each value of Attribute seen during training.
	// Keys keep the casing of the training data; traversal matches
	// them case-insensitively.
	Children map[string]*Node
	// The most frequent class of the record set this branch was grown
	// from. Fallback for traversals that match no child.
	Majority string
}

/*
NewLeaf takes a class value and returns a leaf node predicting it.
*/
func NewLeaf(value string) *Node {
	return &Node{Value: value}
}

/*
NewBranch takes a splitting attribute, the subtree for each of its
values and the majority class of the splitting record set, and returns
a branch node.
*/
func NewBranch(attribute string, children map[string]*Node, majority string) *Node {
	if children == nil {
		children = map[string]*Node{}
	}
	return &Node{Attribute: attribute, Children: children, Majority: majority}
}

/*
IsLeaf returns whether the node is a leaf.
*/
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

func (n *Node) childValues() []string {
	values := make([]string, 0, len(n.Children))
	for v := range n.Children {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (n *Node) traverse(r record.Record) string {
	if n.IsLeaf() {
		return n.Value
	}
	value, ok := r.Value(n.Attribute)
	if !ok {
		value = MissingValue
	}
	for _, v := range n.childValues() {
		if !strings.EqualFold(v, value) {
			continue
		}
		child := n.Children[v]
		if child == nil {
			break
		}
		return child.traverse(r)
	}
	return n.Majority
}
