// Package tabular parses the CSV and XLSX files published on the HUD USER
// portal into in-memory tables. Both formats share the same shape: the first
// line is the header, every following line is one record.
package tabular

import "fmt"

// Row maps a column name to its raw cell value
type Row map[string]string

// Table holds parsed tabular data with headers in source order
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// ParseError reports malformed tabular content
type ParseError struct {
	Reason string
	Line   int // 1-based data line, 0 when not line-specific
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

// Get returns the value of the named column and whether it exists
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// rowFromRecord builds a Row by zipping headers with one record
func rowFromRecord(headers []string, record []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
