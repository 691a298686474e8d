/*
Package sqlsource reads triage records from a SQL database. It
supports SQLite3 files and PostgreSQL databases holding the records in
a single table with one nullable text column per record field.
*/
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Imported for their database/sql drivers.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jesee-kuya/triage/record"
)

// DefaultTable is the table records are read from unless the source
// is told otherwise.
const DefaultTable = "records"

/*
Source reads records from one table of an open database.
*/
type Source struct {
	db    *sql.DB
	table string
}

/*
OpenSQLite3 takes a path to an SQLite3 database file and a limit to
the DB connections opened at a time (0 for no limit) and returns a
Source reading records from the file's database, or an error if it
cannot be opened as an SQLite3 database.
*/
func OpenSQLite3(path string, maxConns int) (*Source, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite3 database at %s: %v", path, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &Source{db, DefaultTable}, nil
}

/*
OpenPostgreSQL takes a PostgreSQL connection URL and returns a Source
reading records from the database it points to, or an error if the
URL cannot be opened.
*/
func OpenPostgreSQL(url string) (*Source, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening PostgreSQL database at %s: %v", url, err)
	}
	return &Source{db, DefaultTable}, nil
}

/*
WithTable returns a Source reading from the given table of the same
database. It returns an error if the table name would not be safe to
interpolate into a query.
*/
func (s *Source) WithTable(table string) (*Source, error) {
	if table == "" || strings.ContainsAny(table, `"' ;`) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{s.db, table}, nil
}

/*
Read returns every record on the source table. A SQL NULL or empty
string column value leaves the field missing on the record.
*/
func (s *Source) Read(ctx context.Context) ([]record.Record, error) {
	fields := recordFields()
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying records from %s: %v", s.table, err)
	}
	defer rows.Close()
	var records []record.Record
	for rows.Next() {
		columns := make([]sql.NullString, len(fields))
		dest := make([]interface{}, len(fields))
		for i := range columns {
			dest[i] = &columns[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning record %d from %s: %v", len(records)+1, s.table, err)
		}
		values := make(map[string]string)
		for i, c := range columns {
			if c.Valid {
				values[fields[i]] = strings.TrimSpace(c.String)
			}
		}
		records = append(records, record.New(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records from %s: %v", s.table, err)
	}
	return records, nil
}

/*
Close closes the underlying database.
*/
func (s *Source) Close() error {
	return s.db.Close()
}

func recordFields() []string {
	fields := []string{
		record.MasterIndex,
		record.ClinicalPanel,
		record.County,
		record.HealthLevel,
		record.YearsExperience,
	}
	for _, t := range record.Targets() {
		fields = append(fields, t.String())
	}
	return fields
}
