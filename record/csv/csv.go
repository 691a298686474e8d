/*
Package csv reads triage records from and writes predictions to CSV
streams with the column layout of the source data files.

Reading is lenient the way the upstream data demands: cell values are
whitespace-trimmed, empty cells and the '?' marker mean a missing
value, malformed rows are skipped and counted, and exact duplicate
rows are dropped.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/record"
)

// Undefined is the cell marker read and written for a missing value,
// besides the empty cell.
const Undefined = "?"

// headerFields maps the column headers of the source data files to
// record field names. Canonical field names are accepted as headers
// too.
var headerFields = map[string]string{
	"Master_Index":        record.MasterIndex,
	"County":              record.County,
	"Health level":        record.HealthLevel,
	"Years of Experience": record.YearsExperience,
	"Prompt":              record.Prompt,
	"Nursing Competency":  record.NursingCompetency,
	"Clinical Panel":      record.ClinicalPanel,
	"Clinician":           record.Clinician.String(),
	"GPT4.0":              record.GPT4.String(),
	"LLAMA":               record.Llama.String(),
	"GEMINI":              record.Gemini.String(),
	"DDX SNOMED":          record.DdxSnomed.String(),
}

/*
ReadStats reports what reading a CSV stream kept and dropped.
*/
type ReadStats struct {
	// Rows is the number of records returned.
	Rows int
	// Skipped is the number of malformed rows left out.
	Skipped int
	// Duplicates is the number of rows dropped for repeating an
	// already read record exactly.
	Duplicates int
	// MissingTargets is the number of kept records carrying neither
	// a clinician nor a gpt4_0 label.
	MissingTargets int
}

/*
ReadRecords takes an io.Reader for a CSV stream and returns the
records parsed from it along with reading statistics.

The first row must be a header naming the columns; columns with
unrecognized names are ignored. An error is returned if the header
cannot be read or no valid record remains after skipping and
deduplication.
*/
func ReadRecords(reader io.Reader) ([]record.Record, ReadStats, error) {
	var stats ReadStats
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %v", err)
	}
	fields := parseFieldsFromCSVHeader(header)
	var records []record.Record
	seen := make(map[string]bool)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("reading body: %v", err)
		}
		rec := parseRecordFromCSVRow(row, fields)
		if seen[rec.Fingerprint()] {
			stats.Duplicates++
			continue
		}
		seen[rec.Fingerprint()] = true
		if _, ok := rec.Target(record.Clinician); !ok {
			if _, ok := rec.Target(record.GPT4); !ok {
				stats.MissingTargets++
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, stats, fmt.Errorf("no valid records in input")
	}
	stats.Rows = len(records)
	return records, stats, nil
}

/*
ReadRecordsFromFilePath takes a filepath, opens it and uses
ReadRecords to return the records read from it. The empty filepath
reads from STDIN.
*/
func ReadRecordsFromFilePath(filepath string) ([]record.Record, ReadStats, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, ReadStats{}, fmt.Errorf("opening records at %s: %v", filepath, err)
		}
		defer f.Close()
	}
	records, stats, err := ReadRecords(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return records, stats, err
}

func parseFieldsFromCSVHeader(header []string) []string {
	fields := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if f, ok := headerFields[name]; ok {
			fields[i] = f
			continue
		}
		for _, f := range headerFields {
			if f == name {
				fields[i] = f
				break
			}
		}
	}
	return fields
}

func parseRecordFromCSVRow(row []string, fields []string) record.Record {
	values := make(map[string]string)
	for i, v := range row {
		if i >= len(fields) || fields[i] == "" {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" || v == Undefined {
			continue
		}
		values[fields[i]] = v
	}
	return record.New(values)
}

// predictionColumns is the output layout: the identifying and
// splitting fields of the record followed by the five predicted
// labels under their source-data headers.
var predictionColumns = []struct {
	header string
	field  string
}{
	{"Master_Index", record.MasterIndex},
	{"County", record.County},
	{"Health level", record.HealthLevel},
	{"Years of Experience", record.YearsExperience},
	{"Clinical Panel", record.ClinicalPanel},
}

/*
Writer writes records along with their predictions as CSV rows.
*/
type Writer struct {
	count int
	w     *csv.Writer
}

/*
NewWriter takes an io.Writer, writes the prediction CSV header on it
and returns a Writer emitting one row per predicted record, or an
error if the header cannot be written.
*/
func NewWriter(writer io.Writer) (*Writer, error) {
	w := csv.NewWriter(writer)
	header := make([]string, 0, len(predictionColumns)+len(record.Targets()))
	for _, c := range predictionColumns {
		header = append(header, c.header)
	}
	for _, t := range record.Targets() {
		header = append(header, t.String())
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &Writer{w: w}, nil
}

/*
Write takes a record and its prediction bundle and writes them as one
CSV row. Missing record fields are written as the undefined marker.
*/
func (w *Writer) Write(r record.Record, p triage.Prediction) error {
	row := make([]string, 0, len(predictionColumns)+len(record.Targets()))
	for _, c := range predictionColumns {
		v, ok := r.Value(c.field)
		if !ok {
			v = Undefined
		}
		row = append(row, v)
	}
	for _, t := range record.Targets() {
		row = append(row, p.Value(t))
	}
	if err := w.w.Write(row); err != nil {
		return fmt.Errorf("writing CSV row for record %d: %v", w.count+1, err)
	}
	w.count++
	return nil
}

/*
Count returns the number of rows written so far, the header aside.
*/
func (w *Writer) Count() int {
	return w.count
}

/*
Flush ensures every written row has reached the underlying writer.
*/
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
