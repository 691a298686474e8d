package triage

import (
	"testing"

	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/tree"
)

func panelSplitSet() []record.Record {
	return []record.Record{
		labeled("A", "X"),
		labeled("A", "X"),
		labeled("B", "Y"),
		labeled("B", "Y"),
	}
}

func TestGrowPureSetYieldsSingleLeaf(t *testing.T) {
	records := []record.Record{
		record.New(map[string]string{record.ClinicalPanel: "A", record.County: "Nairobi", record.Clinician.String(): "Malaria"}),
		record.New(map[string]string{record.ClinicalPanel: "B", record.County: "Kisumu", record.Clinician.String(): "Malaria"}),
		record.New(map[string]string{record.ClinicalPanel: "C", record.County: "Nakuru", record.Clinician.String(): "Malaria"}),
	}
	grown := Grow(records, record.Clinician, DefaultTreeParams())
	if !grown.Root.IsLeaf() || grown.Root.Value != "Malaria" {
		t.Fatalf("expected a single Malaria leaf for a pure set, got %v", grown.Root)
	}
	for _, r := range records {
		if got := grown.Predict(r); got != "Malaria" {
			t.Fatalf("expected Malaria for every record of a pure set, got %q", got)
		}
	}
}

func TestGrowEmptySetYieldsUnknownLeaf(t *testing.T) {
	grown := Grow(nil, record.Clinician, DefaultTreeParams())
	if !grown.Root.IsLeaf() || grown.Root.Value != tree.UnknownClass {
		t.Fatalf("expected an unknown leaf for an empty set, got %v", grown.Root)
	}
	if got := grown.Predict(record.New(nil)); got != tree.UnknownClass {
		t.Fatalf("expected unknown prediction from an empty tree, got %q", got)
	}
}

func TestGrowMaxDepthZeroYieldsMajorityLeaf(t *testing.T) {
	records := append(panelSplitSet(), labeled("A", "X"))
	params := DefaultTreeParams()
	params.MaxDepth = 0
	grown := Grow(records, record.Clinician, params)
	if !grown.Root.IsLeaf() || grown.Root.Value != "X" {
		t.Fatalf("expected a single majority leaf at max_depth 0, got %v", grown.Root)
	}
}

func TestGrowMinSamplesLeafAboveSetSizeYieldsMajorityLeaf(t *testing.T) {
	records := append(panelSplitSet(), labeled("A", "X"))
	params := DefaultTreeParams()
	params.MinSamplesLeaf = len(records) + 1
	grown := Grow(records, record.Clinician, params)
	if !grown.Root.IsLeaf() || grown.Root.Value != "X" {
		t.Fatalf("expected a single majority leaf when min_samples_leaf exceeds the set, got %v", grown.Root)
	}
}

func TestGrowMinGainRatioPrunesSplit(t *testing.T) {
	records := append(panelSplitSet(), labeled("A", "X"))
	params := DefaultTreeParams()
	params.MinGainRatio = 2.0
	grown := Grow(records, record.Clinician, params)
	if !grown.Root.IsLeaf() || grown.Root.Value != "X" {
		t.Fatalf("expected a majority leaf when no split reaches the gain ratio, got %v", grown.Root)
	}
}

func TestGrowSplitsOnClinicalPanel(t *testing.T) {
	grown := Grow(panelSplitSet(), record.Clinician, DefaultTreeParams())
	root := grown.Root
	if root.IsLeaf() || root.Attribute != record.ClinicalPanel {
		t.Fatalf("expected the root to split on clinical_panel, got %v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if got := grown.Predict(record.New(map[string]string{record.ClinicalPanel: "a"})); got != "X" {
		t.Fatalf("expected X for clinical_panel 'a' (case-insensitive), got %q", got)
	}
	if got := grown.Predict(record.New(map[string]string{record.ClinicalPanel: "B"})); got != "Y" {
		t.Fatalf("expected Y for clinical_panel 'B', got %q", got)
	}
}

func TestGrowUndersizedPartitionKeepsParentMajority(t *testing.T) {
	records := []record.Record{
		labeled("A", "X"),
		labeled("A", "X"),
		labeled("A", "X"),
		labeled("B", "Y"),
		labeled("B", "Y"),
	}
	params := DefaultTreeParams()
	params.MinSamplesLeaf = 3
	grown := Grow(records, record.Clinician, params)
	root := grown.Root
	if root.IsLeaf() || root.Attribute != record.ClinicalPanel {
		t.Fatalf("expected the root to split on clinical_panel, got %v", root)
	}
	b := root.Children["B"]
	if b == nil || !b.IsLeaf() || b.Value != "X" {
		t.Fatalf("expected the undersized B partition to become a leaf with the parent majority X, got %v", b)
	}
}

func TestGrowGainRatioTieKeepsEarlierAttribute(t *testing.T) {
	// county mirrors clinical_panel exactly, so both split identically;
	// the fixed attribute order must pick clinical_panel.
	records := []record.Record{
		record.New(map[string]string{record.ClinicalPanel: "A", record.County: "A", record.Clinician.String(): "X"}),
		record.New(map[string]string{record.ClinicalPanel: "A", record.County: "A", record.Clinician.String(): "X"}),
		record.New(map[string]string{record.ClinicalPanel: "B", record.County: "B", record.Clinician.String(): "Y"}),
		record.New(map[string]string{record.ClinicalPanel: "B", record.County: "B", record.Clinician.String(): "Y"}),
	}
	grown := Grow(records, record.Clinician, DefaultTreeParams())
	if grown.Root.Attribute != record.ClinicalPanel {
		t.Fatalf("expected the tie to keep clinical_panel, got %q", grown.Root.Attribute)
	}
}

func TestGrowDepthNeverExceedsMaxDepth(t *testing.T) {
	records := []record.Record{
		record.New(map[string]string{record.ClinicalPanel: "A", record.County: "N", record.Clinician.String(): "X"}),
		record.New(map[string]string{record.ClinicalPanel: "A", record.County: "K", record.Clinician.String(): "Y"}),
		record.New(map[string]string{record.ClinicalPanel: "B", record.County: "N", record.Clinician.String(): "Y"}),
		record.New(map[string]string{record.ClinicalPanel: "B", record.County: "K", record.Clinician.String(): "X"}),
	}
	params := DefaultTreeParams()
	params.MaxDepth = 1
	grown := Grow(records, record.Clinician, params)
	if depth := maxDepth(grown.Root); depth > 1 {
		t.Fatalf("expected tree depth at most 1, got %d", depth)
	}
}

func maxDepth(n *tree.Node) int {
	if n.IsLeaf() {
		return 0
	}
	deepest := 0
	for _, child := range n.Children {
		if d := maxDepth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
