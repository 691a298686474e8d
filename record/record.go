/*
Package record defines the data model for clinical triage records: a
closed set of categorical attributes describing the context in which a
diagnosis was made, and a closed set of target fields holding the
diagnostic label each rater assigned.
*/
package record

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the attributes a tree may split on.
const (
	ClinicalPanel   = "clinical_panel"
	County          = "county"
	HealthLevel     = "health_level"
	YearsExperience = "years_experience"
)

// Names of fields carried through from the source data but never used
// for splitting or prediction.
const (
	MasterIndex       = "master_index"
	NursingCompetency = "nursing_competency"
	Prompt            = "prompt"
)

/*
TargetField identifies one of the five diagnostic-label fields a tree
can be grown to predict.
*/
type TargetField int

// The five target fields, one per rater.
const (
	Clinician TargetField = iota
	GPT4
	Llama
	Gemini
	DdxSnomed
)

/*
Attributes returns the names of the attributes available for splitting,
in the fixed order in which they are evaluated. The order is
lexicographic so that gain-ratio ties resolve the same way on every run.
*/
func Attributes() []string {
	return []string{ClinicalPanel, County, HealthLevel, YearsExperience}
}

/*
Targets returns the five target fields in the fixed order in which
trees are built and predictions are reported.
*/
func Targets() []TargetField {
	return []TargetField{Clinician, GPT4, Llama, Gemini, DdxSnomed}
}

/*
String returns the field name of the target as it appears on records.
*/
func (t TargetField) String() string {
	switch t {
	case Clinician:
		return "clinician"
	case GPT4:
		return "gpt4_0"
	case Llama:
		return "llama"
	case Gemini:
		return "gemini"
	case DdxSnomed:
		return "ddx_snomed"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

/*
Record is a single observation: a flat mapping from attribute and
target field names to string values. A field with no entry is missing;
the empty string is never stored. Records are not mutated once built.
*/
type Record struct {
	values map[string]string
}

/*
New takes a map of field names to values and returns a Record holding
a copy of its non-empty entries.
*/
func New(values map[string]string) Record {
	vs := make(map[string]string, len(values))
	for k, v := range values {
		if v != "" {
			vs[k] = v
		}
	}
	return Record{vs}
}

/*
Value returns the record's value for the named field and whether the
field is present.
*/
func (r Record) Value(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

/*
Target returns the record's value for the given target field and
whether it is present.
*/
func (r Record) Target(t TargetField) (string, bool) {
	return r.Value(t.String())
}

/*
Fields returns the names of the fields present on the record, sorted.
*/
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r.values))
	for k := range r.values {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

/*
Fingerprint returns a canonical string form of the record, equal for
records holding exactly the same fields and values. Loaders use it to
drop duplicate rows.
*/
func (r Record) Fingerprint() string {
	var b strings.Builder
	for _, k := range r.Fields() {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r.values[k])
		b.WriteByte('\x1f')
	}
	return b.String()
}

func (r Record) String() string {
	return fmt.Sprintf("[%v]", r.values)
}
