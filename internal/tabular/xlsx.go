package tabular

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenWorkbook opens an XLSX workbook from raw bytes
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "unreadable workbook: " + err.Error()}
	}
	return &Workbook{file: f}, nil
}

// Workbook wraps an open XLSX file
type Workbook struct {
	file *excelize.File
}

// Close releases the underlying file resources
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the workbook's sheet names in order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet parses the named sheet using the first row as the header.
// Trailing cells omitted by Excel are padded to align with the header.
func (w *Workbook) Sheet(name string) (*Table, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, &ParseError{Reason: "sheet " + name + ": " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Reason: "sheet " + name + ": missing header row"}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{
		Headers: headers,
		Rows:    []Row{},
	}

	for i, record := range rows[1:] {
		if isEmptyRecord(record) {
			continue
		}
		if len(record) > len(headers) {
			return nil, &ParseError{
				Reason: "column count exceeds header",
				Line:   i + 1,
			}
		}
		table.Rows = append(table.Rows, rowFromRecord(headers, record))
	}

	return table, nil
}

// ParseXLSX parses one sheet of an XLSX workbook. An empty sheet name
// selects the first sheet.
func ParseXLSX(data []byte, sheet string) (*Table, error) {
	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if sheet == "" {
		names := wb.SheetNames()
		if len(names) == 0 {
			return nil, &ParseError{Reason: "workbook has no sheets"}
		}
		sheet = names[0]
	}

	return wb.Sheet(sheet)
}

// isEmptyRecord reports whether every cell in the record is blank
func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
