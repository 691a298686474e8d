/*
Package triage grows interpretable decision trees that predict the
diagnostic label each rater would assign to a clinical record, from
the record's categorical context attributes.

Trees are grown by recursive partitioning: at every node the attribute
with the highest information gain ratio splits the record set, subject
to the depth, partition-size and gain-ratio controls in TreeParams.
Growing and predicting are total operations: missing values and
degenerate record sets resolve to majority or sentinel leaves, never
to errors.
*/
package triage

import (
	"math"

	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/tree"
)

/*
Grow takes a training record set, a target field and the pruning
parameters and returns a decision tree predicting the target.

An empty training set yields a degenerate single-leaf tree predicting
the unknown class rather than an error.
*/
func Grow(records []record.Record, target record.TargetField, params TreeParams) *tree.Tree {
	return tree.New(grow(records, target, record.Attributes(), 0, params), target)
}

func grow(records []record.Record, target record.TargetField, attributes []string, depth int, params TreeParams) *tree.Node {
	if len(records) == 0 {
		return tree.NewLeaf(tree.UnknownClass)
	}
	majority := majorityClass(records, target)
	if depth >= params.MaxDepth || len(records) < params.MinSamplesLeaf {
		return tree.NewLeaf(majority)
	}
	if value, ok := pureClass(records, target); ok {
		return tree.NewLeaf(value)
	}
	if len(attributes) == 0 {
		return tree.NewLeaf(majority)
	}
	baseEntropy := Entropy(records, target)
	var best string
	bestRatio := math.Inf(-1)
	for _, a := range attributes {
		// Attributes come in their fixed order and only a strictly
		// greater ratio replaces the selection, so ties keep the
		// earlier attribute on every run.
		if ratio := GainRatio(records, a, target, baseEntropy); ratio > bestRatio {
			best, bestRatio = a, ratio
		}
	}
	if bestRatio < params.MinGainRatio {
		return tree.NewLeaf(majority)
	}
	remaining := make([]string, 0, len(attributes)-1)
	for _, a := range attributes {
		if a != best {
			remaining = append(remaining, a)
		}
	}
	children := make(map[string]*tree.Node)
	for value, part := range PartitionBy(records, best) {
		if len(part) < params.MinSamplesLeaf {
			// Undersized partitions keep the majority of the parent
			// set, not their own.
			children[value] = tree.NewLeaf(majority)
			continue
		}
		children[value] = grow(part, target, remaining, depth+1, params)
	}
	return tree.NewBranch(best, children, majority)
}
