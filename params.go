package triage

import (
	"fmt"
	"math"
)

/*
TreeParams holds the pruning controls applied while growing a tree.
The zero depth bound is meaningful (it grows a single majority leaf),
so callers wanting the usual behavior should start from
DefaultTreeParams. A TreeParams value is read-only once a build
starts.
*/
type TreeParams struct {
	// MaxDepth bounds the recursion depth: a node at this depth
	// becomes a leaf with the majority class of its record set.
	MaxDepth int
	// MinSamplesLeaf is the smallest record set that may still be
	// split; smaller sets become majority leaves.
	MinSamplesLeaf int
	// MinGainRatio is the smallest gain ratio for which the best
	// splitting attribute is accepted; below it the node becomes a
	// majority leaf.
	MinGainRatio float64
}

/*
DefaultTreeParams returns the parameters used when the caller
specifies none. The depth bound is twice the number of splittable
attributes, so it never cuts a grow short on its own.
*/
func DefaultTreeParams() TreeParams {
	return TreeParams{MaxDepth: 8, MinSamplesLeaf: 1, MinGainRatio: 0}
}

/*
Validate returns an error describing the first out-of-range parameter,
or nil if all parameters are usable. Grow assumes validated
parameters; this is the boundary check for values coming from
configuration or flags.
*/
func (p TreeParams) Validate() error {
	if p.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", p.MaxDepth)
	}
	if p.MinSamplesLeaf < 0 {
		return fmt.Errorf("min_samples_leaf must be non-negative, got %d", p.MinSamplesLeaf)
	}
	if math.IsNaN(p.MinGainRatio) {
		return fmt.Errorf("min_gain_ratio must not be NaN")
	}
	if p.MinGainRatio < 0 {
		return fmt.Errorf("min_gain_ratio must be non-negative, got %f", p.MinGainRatio)
	}
	return nil
}
