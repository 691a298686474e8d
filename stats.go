package triage

import (
	"math"
	"sort"

	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/tree"
)

/*
Entropy takes a record set and a target field and returns the Shannon
entropy (log base 2) of the distribution of target values over the
set. Records with no value for the target are left out of both the
class histogram and the probability denominator. The entropy of an
empty set, or of a set with no target values at all, is 0.
*/
func Entropy(records []record.Record, target record.TargetField) float64 {
	counts, total := classCounts(records, target)
	if total == 0 {
		return 0
	}
	var result float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

/*
GainRatio takes a record set, a candidate attribute, a target field
and the precomputed entropy of the whole set, and returns the
information gain obtained by splitting the set on the attribute,
normalized by the split information of the attribute's value
distribution. Records with no value for the attribute take part in no
partition.

The ratio is 0 whenever the split information is 0, which covers the
degenerate splits: an empty set, a set where every record misses the
attribute, and a split producing a single non-empty partition.
*/
func GainRatio(records []record.Record, attribute string, target record.TargetField, baseEntropy float64) float64 {
	partitions := PartitionBy(records, attribute)
	var total int
	for _, part := range partitions {
		total += len(part)
	}
	if total == 0 {
		return 0
	}
	var splitInfo, attrInfo float64
	for _, part := range partitions {
		p := float64(len(part)) / float64(total)
		splitInfo -= p * math.Log2(p)
		attrInfo += p * Entropy(part, target)
	}
	if splitInfo == 0 {
		return 0
	}
	return (baseEntropy - attrInfo) / splitInfo
}

/*
PartitionBy takes a record set and an attribute and returns the
records grouped by their value for the attribute. Records with no
value for the attribute appear in no group.
*/
func PartitionBy(records []record.Record, attribute string) map[string][]record.Record {
	partitions := make(map[string][]record.Record)
	for _, r := range records {
		v, ok := r.Value(attribute)
		if !ok {
			continue
		}
		partitions[v] = append(partitions[v], r)
	}
	return partitions
}

func classCounts(records []record.Record, target record.TargetField) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	for _, r := range records {
		v, ok := r.Target(target)
		if !ok {
			continue
		}
		counts[v]++
		total++
	}
	return counts, total
}

// majorityClass returns the most frequent target value of the set,
// breaking count ties towards the lexicographically smallest value so
// that builds are reproducible. It returns the unknown class when no
// record carries a target value.
func majorityClass(records []record.Record, target record.TargetField) string {
	counts, total := classCounts(records, target)
	if total == 0 {
		return tree.UnknownClass
	}
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)
	best := values[0]
	for _, v := range values[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// pureClass returns the single target value present on the set, if
// there is exactly one distinct one.
func pureClass(records []record.Record, target record.TargetField) (string, bool) {
	counts, _ := classCounts(records, target)
	if len(counts) != 1 {
		return "", false
	}
	for v := range counts {
		return v, true
	}
	return "", false
}
