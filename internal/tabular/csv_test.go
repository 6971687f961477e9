package tabular

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := "county,year,fmr_1br\nAutauga County,2024,903\nBaldwin County,2024,1047\n"

	table, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	expectedHeaders := []string{"county", "year", "fmr_1br"}
	if !reflect.DeepEqual(table.Headers, expectedHeaders) {
		t.Errorf("Expected headers %v, got %v", expectedHeaders, table.Headers)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}

	if table.Rows[0]["county"] != "Autauga County" || table.Rows[0]["year"] != "2024" || table.Rows[0]["fmr_1br"] != "903" {
		t.Errorf("First row mismatch: %v", table.Rows[0])
	}
	if table.Rows[1]["county"] != "Baldwin County" || table.Rows[1]["fmr_1br"] != "1047" {
		t.Errorf("Second row mismatch: %v", table.Rows[1])
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("county,year,fmr_1br\n"))
	if err != nil {
		t.Fatalf("Header-only CSV should not error, got: %v", err)
	}
	if table.Rows == nil {
		t.Error("Rows should be empty, not nil")
	}
	if len(table.Rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(table.Rows))
	}
}

func TestParseCSVShortRow(t *testing.T) {
	input := "county,year,fmr_1br\nAutauga County,2024\n"

	_, err := ParseCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected ParseError for short row, got nil")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if parseErr.Line != 1 {
		t.Errorf("Expected error at line 1, got line %d", parseErr.Line)
	}
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	if err == nil {
		t.Fatal("Expected ParseError for empty input, got nil")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
}

func TestParseCSVDeterminism(t *testing.T) {
	input := "fips,name\n0100199999,Autauga\n0100399999,Baldwin\n"

	first, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Repeated parses of identical input should produce identical tables")
	}
}

func TestRowGet(t *testing.T) {
	row := Row{"county": "Autauga County"}

	if v, ok := row.Get("county"); !ok || v != "Autauga County" {
		t.Errorf("Get(county) = %q, %v", v, ok)
	}
	if _, ok := row.Get("missing"); ok {
		t.Error("Get on missing column should report absence")
	}
}
