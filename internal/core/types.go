package core

import (
	"bytes"
	"encoding/json"
	"time"
)

// Meta columns injected into every row by the loader. They are never searched.
const (
	ColumnSource = "source"
	ColumnSheet  = "sheet"
)

// CatalogDefinition describes one configured catalog.
type CatalogDefinition struct {
	Key   string `yaml:"key"`   // URL identifier: "engines"
	Label string `yaml:"label"` // Display name, written into the source column: "Engines"
	File  string `yaml:"file"`  // Spreadsheet path, relative to the data directory unless absolute
}

// Table is one loaded catalog. A Table is never mutated after the loader
// returns it; reloads build a new Table and swap it into the Store.
type Table struct {
	Key        string
	Label      string
	Path       string
	Generation string // unique per successful load
	LoadedAt   time.Time
	Sheets     []string
	Columns    []string
	rows       [][]any // each row is aligned with Columns
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Record returns row i as a Record.
func (t *Table) Record(i int) Record {
	return Record{columns: t.Columns, values: t.rows[i]}
}

// Records returns every row in load order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.rows))
	for i := range t.rows {
		out[i] = t.Record(i)
	}
	return out
}

// Record is a single catalog row. Values are nil, string, float64 or bool.
// It serializes as a JSON object whose keys keep the spreadsheet column order.
type Record struct {
	columns []string
	values  []any
}

// Get returns the value for column and whether the column exists.
func (r Record) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// Columns returns the record's column names in order.
func (r Record) Columns() []string {
	return r.columns
}

// Map copies the record into a plain map.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Page is one page of search results.
type Page struct {
	Results  []Record `json:"results"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	HasMore  bool     `json:"has_more"`
}

// CatalogStatus reports a configured catalog and its current table, if any.
type CatalogStatus struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	File       string     `json:"file"`
	Loaded     bool       `json:"loaded"`
	Rows       int        `json:"rows"`
	Sheets     []string   `json:"sheets,omitempty"`
	Generation string     `json:"generation,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
}
