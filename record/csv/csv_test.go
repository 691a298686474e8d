package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/record"
)

const sourceHeader = "Master_Index,County,Health level,Years of Experience,Prompt,Nursing Competency,Clinical Panel,Clinician,GPT4.0,LLAMA,GEMINI,DDX SNOMED"

func TestReadRecordsParsesSourceHeaders(t *testing.T) {
	doc := sourceHeader + "\n" +
		"M1, Nairobi ,Level 4,5-10,prompt text,Triage,Adult,Malaria,Malaria,?,Typhoid,61462000\n"
	records, stats, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Rows != 1 || len(records) != 1 {
		t.Fatalf("expected 1 record, got %d (stats %+v)", len(records), stats)
	}
	r := records[0]
	if v, _ := r.Value(record.County); v != "Nairobi" {
		t.Fatalf("expected trimmed county Nairobi, got %q", v)
	}
	if v, _ := r.Value(record.HealthLevel); v != "Level 4" {
		t.Fatalf("expected health level 'Level 4', got %q", v)
	}
	if v, _ := r.Target(record.Clinician); v != "Malaria" {
		t.Fatalf("expected clinician Malaria, got %q", v)
	}
	if _, ok := r.Target(record.Llama); ok {
		t.Fatalf("expected the '?' cell to read as missing")
	}
	if v, _ := r.Target(record.DdxSnomed); v != "61462000" {
		t.Fatalf("expected ddx_snomed 61462000, got %q", v)
	}
}

func TestReadRecordsTreatsEmptyCellsAsMissing(t *testing.T) {
	doc := "County,Clinical Panel,Clinician\nNairobi,,Malaria\n"
	records, _, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := records[0].Value(record.ClinicalPanel); ok {
		t.Fatalf("expected the empty cell to read as missing")
	}
}

func TestReadRecordsAcceptsCanonicalHeaders(t *testing.T) {
	doc := "county,clinical_panel,clinician\nNairobi,Adult,Malaria\n"
	records, _, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := records[0].Value(record.County); v != "Nairobi" {
		t.Fatalf("expected county Nairobi, got %q", v)
	}
}

func TestReadRecordsIgnoresUnknownColumns(t *testing.T) {
	doc := "County,Reviewer Notes,Clinician\nNairobi,dubious,Malaria\n"
	records, _, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := records[0]
	if len(r.Fields()) != 2 {
		t.Fatalf("expected only the known columns to be kept, got fields %v", r.Fields())
	}
}

func TestReadRecordsDropsDuplicateRows(t *testing.T) {
	doc := "County,Clinician\nNairobi,Malaria\nNairobi,Malaria\nKisumu,Typhoid\n"
	records, stats, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || stats.Duplicates != 1 {
		t.Fatalf("expected 2 records and 1 duplicate, got %d and %d", len(records), stats.Duplicates)
	}
}

func TestReadRecordsCountsMissingTargets(t *testing.T) {
	doc := "County,Clinician,GPT4.0\nNairobi,,\nKisumu,Typhoid,\n"
	_, stats, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.MissingTargets != 1 {
		t.Fatalf("expected 1 record missing both labels, got %d", stats.MissingTargets)
	}
}

func TestReadRecordsSkipsMalformedRows(t *testing.T) {
	doc := "County,Clinician\nNairobi,Malaria\nKis\"umu,Typhoid\nNakuru,Sepsis\n"
	records, stats, err := ReadRecords(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", stats.Skipped)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records around the malformed row, got %d", len(records))
	}
}

func TestReadRecordsErrorsWhenNoValidRecords(t *testing.T) {
	if _, _, err := ReadRecords(strings.NewReader("County,Clinician\n")); err == nil {
		t.Fatalf("expected an error for an input with no records")
	}
}

func TestWriterWritesPredictionRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := record.New(map[string]string{
		record.MasterIndex:   "M1",
		record.County:        "Nairobi",
		record.ClinicalPanel: "Adult",
	})
	p := triage.Prediction{
		Clinician: "Malaria",
		GPT4:      "Malaria",
		Llama:     "Typhoid",
		Gemini:    "Malaria",
		DdxSnomed: "61462000",
	}
	if err := w.Write(r, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Count() != 1 {
		t.Fatalf("expected 1 written row, got %d", w.Count())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected a header and one row, got %d lines", len(lines))
	}
	if want := "Master_Index,County,Health level,Years of Experience,Clinical Panel,clinician,gpt4_0,llama,gemini,ddx_snomed"; lines[0] != want {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if want := "M1,Nairobi,?,?,Adult,Malaria,Malaria,Typhoid,Malaria,61462000"; lines[1] != want {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
