package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseCSVBytes parses comma-delimited bytes, see ParseCSV
func ParseCSVBytes(data []byte) (*Table, error) {
	return ParseCSV(bytes.NewReader(data))
}

// ParseCSV parses comma-delimited text using the first line as the header.
// A data row whose column count differs from the header is a *ParseError.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &ParseError{Reason: "unreadable header row: " + err.Error()}
	}

	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &Table{
		Headers: headers,
		Rows:    []Row{},
	}

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) && errors.Is(csvErr.Err, csv.ErrFieldCount) {
				return nil, &ParseError{
					Reason: "column count does not match header",
					Line:   line,
				}
			}
			return nil, &ParseError{Reason: err.Error(), Line: line}
		}

		table.Rows = append(table.Rows, rowFromRecord(headers, record))
	}

	return table, nil
}
