/*
Package tree provides the decision tree grown for a single target
field: a rooted hierarchy of branch and leaf nodes, prediction by
traversal, accuracy measurement and a printable rendering.
*/
package tree

import (
	"fmt"
	"strings"

	"github.com/jesee-kuya/triage/record"
)

/*
Tree is a decision tree predicting a single target field. It is
composed of the root node of the grown hierarchy and the target field
it predicts.
*/
type Tree struct {
	Root   *Node
	Target record.TargetField
}

/*
New takes a root node and a target field and returns a tree that
predicts the target with the hierarchy under the root.
*/
func New(root *Node, target record.TargetField) *Tree {
	return &Tree{root, target}
}

/*
Predict takes a record and returns the class value the tree assigns to
it.

Traversal starts at the root. At a branch the record's value for the
branch attribute is matched case-insensitively against the child keys,
with absent values matched as the missing sentinel; when no child
matches, the branch's majority class is returned. At a leaf the leaf
value is returned. Every traversal therefore yields a value: a tree
grown from empty data yields UnknownClass.
*/
func (t *Tree) Predict(r record.Record) string {
	if t == nil || t.Root == nil {
		return UnknownClass
	}
	return t.Root.traverse(r)
}

/*
Accuracy takes a slice of records labeled with the tree's target and
returns the share of them whose label matches the tree's prediction,
along with the number of records that were skipped because they carry
no value for the target. Labels are compared case-insensitively, the
same way traversal matches attribute values.

The returned rate is 0 when no record carries a label.
*/
func (t *Tree) Accuracy(records []record.Record) (float64, int) {
	var hits, scored, skipped int
	for _, r := range records {
		label, ok := r.Target(t.Target)
		if !ok {
			skipped++
			continue
		}
		scored++
		if strings.EqualFold(t.Predict(r), label) {
			hits++
		}
	}
	if scored == 0 {
		return 0, skipped
	}
	return float64(hits) / float64(scored), skipped
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "(empty tree)\n"
	}
	return fmt.Sprintf("%s\n%s", t.Target, t.Root.subtreeString())
}

func (n *Node) subtreeString() string {
	if n.IsLeaf() {
		return fmt.Sprintf("-> %s\n", n.Value)
	}
	result := fmt.Sprintf("(%s? majority %s)\n", n.Attribute, n.Majority)
	values := n.childValues()
	for i, v := range values {
		for j, line := range strings.Split(n.Children[v].subtreeString(), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s %s\n", result, v, line)
			} else {
				if i == len(values)-1 {
					result = fmt.Sprintf("%s   %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				}
			}
		}
	}
	return result
}
