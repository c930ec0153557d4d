package models

import "strings"

// RawRecord is one data line of a loaded table. Line is the 1-based line
// number in the source file.
type RawRecord struct {
	Line   int
	Values []string
}

// Value returns the cell at idx, or "" when the row is short or idx < 0.
func (r RawRecord) Value(idx int) string {
	if idx < 0 || idx >= len(r.Values) {
		return ""
	}
	return r.Values[idx]
}

// RawTable is the untyped output of the loader: a de-duplicated header and
// the data records in file order.
type RawTable struct {
	Source  string
	Header  []string
	Records []RawRecord
}

// ColumnIndex finds a column by name. An exact match wins; otherwise names are
// compared case-insensitively with underscores, dashes and repeated spaces
// folded, so "money_in" and "MONEY IN" both find "Money In". Returns -1 when
// the column is absent.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	want := foldColumnName(name)
	for i, h := range t.Header {
		if foldColumnName(h) == want {
			return i
		}
	}
	return -1
}

// HasColumn reports whether ColumnIndex finds name.
func (t *RawTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of data records.
func (t *RawTable) Len() int {
	return len(t.Records)
}

var columnFolder = strings.NewReplacer("_", " ", "-", " ")

func foldColumnName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(columnFolder.Replace(name))), " ")
}
