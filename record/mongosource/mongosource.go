/*
Package mongosource reads triage records from a MongoDB collection
holding one document per record with one string field per record
field.
*/
package mongosource

import (
	"context"
	"fmt"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/jesee-kuya/triage/record"
)

// DefaultCollection is the collection records are read from unless
// the source is told otherwise.
const DefaultCollection = "records"

/*
Source reads records from one collection of the default database of a
MongoDB session.
*/
type Source struct {
	session    *mgo.Session
	collection string
}

/*
Open takes a MongoDB session and returns a Source reading records
from the DefaultCollection of the session's default database.
*/
func Open(session *mgo.Session) *Source {
	return &Source{session, DefaultCollection}
}

/*
WithCollection returns a Source reading from the given collection of
the same session.
*/
func (s *Source) WithCollection(collection string) *Source {
	return &Source{s.session, collection}
}

/*
Read returns every record on the source collection. Fields that are
absent, null or not strings on a document are missing on the record.
The context is accepted for interface symmetry with the other record
sources; mgo sessions carry their own timeouts.
*/
func (s *Source) Read(ctx context.Context) ([]record.Record, error) {
	iter := s.session.DB("").C(s.collection).Find(nil).Iter()
	defer iter.Close()
	var records []record.Record
	var doc bson.M
	for iter.Next(&doc) {
		values := make(map[string]string)
		for _, f := range recordFields() {
			if v, ok := doc[f].(string); ok {
				values[f] = v
			}
		}
		records = append(records, record.New(values))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading records from collection %s: %v", s.collection, err)
	}
	return records, nil
}

/*
Close closes the underlying session.
*/
func (s *Source) Close() error {
	s.session.Close()
	return nil
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
