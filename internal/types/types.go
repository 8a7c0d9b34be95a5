package types

import (
	"time"
)

// Record is one CSV data row ready for insertion. Columns is the header of
// the file the row came from and is shared by every record of that file;
// a nil entry in Values is SQL NULL.
type Record struct {
	Columns []string
	Values  []*string
}

// Get returns the value stored under column. ok is false when the column
// is not part of the record's header.
func (r Record) Get(column string) (value *string, ok bool) {
	for i, c := range r.Columns {
		if c == column {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return nil, true
		}
	}
	return nil, false
}

// Args returns the values in column order with nulls as nil, suitable for
// passing to a SQL driver.
func (r Record) Args() []interface{} {
	args := make([]interface{}, len(r.Columns))
	for i := range r.Columns {
		if i < len(r.Values) && r.Values[i] != nil {
			args[i] = *r.Values[i]
		}
	}
	return args
}

// Map returns the record as a column keyed map. Null values map to nil.
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Columns))
	args := r.Args()
	for i, c := range r.Columns {
		m[c] = args[i]
	}
	return m
}

type Variant int

const (
	Real Variant = iota
	Fake
)

func (v Variant) String() string {
	if v == Fake {
		return "fake"
	}
	return "real"
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// FileName returns the CSV file name used for table under this variant.
func (v Variant) FileName(table string) string {
	if v == Fake {
		return table + "_fake.csv"
	}
	return table + ".csv"
}

// Decision is the outcome of resolving one table. It is informational only.
type Decision int

const (
	NoneFound Decision = iota
	ManualOnly
	ImportedReal
	ImportedFake
	ImportedBoth
)

var decisionNames = map[Decision]string{
	NoneFound:    "none_found",
	ManualOnly:   "manual_only",
	ImportedReal: "imported_real",
	ImportedFake: "imported_fake",
	ImportedBoth: "imported_both",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "unknown"
}

func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type MigrationStatusItem struct {
	Version   int64      `json:"version" yaml:"version"`
	Table     string     `json:"table" yaml:"table"`
	Status    string     `json:"status" yaml:"status"`
	AppliedAt *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
}
