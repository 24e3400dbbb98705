package backend

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Record is an asset document as the backend returned it. Fields are looked up by
// name so numbers, nulls and strings can be read without a fixed schema.
type Record struct {
	doc gjson.Result
}

func ParseRecord(raw []byte) (Record, error) {
	if !gjson.ValidBytes(raw) {
		return Record{}, errors.New("asset record is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return Record{}, errors.New("asset record is not an object")
	}
	return Record{doc: doc}, nil
}

// ID is the internal identifier used by PUT /api/assets/{id}.
func (r Record) ID() string {
	if id := r.doc.Get("_id"); id.Exists() {
		return id.String()
	}
	return r.doc.Get("id").String()
}

// String returns the field as text; missing and null fields are "".
func (r Record) String(field string) string {
	return r.doc.Get(gjson.Escape(field)).String()
}

// Value returns the field converted to a Go value (bool, float64, string, nil, ...).
func (r Record) Value(field string) any {
	return r.doc.Get(gjson.Escape(field)).Value()
}

func (r Record) Exists(field string) bool {
	return r.doc.Get(gjson.Escape(field)).Exists()
}

func (r Record) Raw() string { return r.doc.Raw }

func (r Record) IsZero() bool { return r.doc.Raw == "" }
