package transforms

import (
	"fmt"
	"strconv"
	"strings"

	"hudhousing/internal/catalog"
	"hudhousing/internal/models"
	"hudhousing/internal/tabular"
)

// Years covered by the PIT workbook, one sheet per year
const (
	pitFirstYear = 2007
	pitLastYear  = 2024
)

// Count types extracted per CoC and year
var countTypes = []string{"Overall", "Sheltered", "Unsheltered"}

// HomelessCounts normalizes the Point-in-Time workbook. Column layouts vary
// across years, so breakdown columns are located by case-insensitive
// substring patterns. Rows without a CoC number or a total count are skipped.
func (n *Normalizer) HomelessCounts(payload *models.DatasetPayload) ([]models.HomelessCountRecord, error) {
	if len(payload.RawFiles) == 0 {
		return nil, &ValidationError{Dataset: catalog.HomelessCounts, Reason: "no workbook downloaded"}
	}

	wb, err := tabular.OpenWorkbook(payload.RawFiles[0].Data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := make(map[string]bool)
	for _, name := range wb.SheetNames() {
		sheets[name] = true
	}

	var records []models.HomelessCountRecord

	for year := pitFirstYear; year <= pitLastYear; year++ {
		sheet := strconv.Itoa(year)
		if !sheets[sheet] {
			n.log.Warnf("PIT sheet %s not found, skipping", sheet)
			continue
		}

		table, err := wb.Sheet(sheet)
		if err != nil {
			n.log.Warnf("Could not read PIT sheet %s: %v", sheet, err)
			continue
		}

		yearCount := 0
		for _, countType := range countTypes {
			rows := extractCountType(table, sheet, countType)
			yearCount += len(rows)
			records = append(records, rows...)
		}
		n.log.Debugf("PIT %s: %d records", sheet, yearCount)
	}

	if len(records) == 0 {
		return nil, &ValidationError{Dataset: catalog.HomelessCounts, Reason: "no usable year sheets in workbook"}
	}

	n.log.Infof("Loaded homeless counts: %d records", len(records))
	return records, nil
}

// extractCountType pulls one count type's columns out of a year sheet
func extractCountType(table *tabular.Table, year, countType string) []models.HomelessCountRecord {
	prefix := countType
	if countType == "Overall" {
		prefix = "Overall Homeless"
	}

	totalCol := findColumn(table.Headers, prefix+" Homeless", prefix)
	under18Col := findColumn(table.Headers, prefix+" Homeless - Under 18", prefix+" - Under 18")
	age18To24Col := findColumn(table.Headers, prefix+" Homeless - Age 18 to 24", prefix+" - 18 to 24")
	over24Col := findColumn(table.Headers, prefix+" Homeless - Over 24", prefix+" - Over 24")
	individualsCol := findColumn(table.Headers, prefix+" Homeless - Homeless Individuals", prefix+" - Individuals")
	familiesCol := findColumn(table.Headers, prefix+" Homeless - Homeless People in Families", prefix+" - Families")
	veteransCol := findColumn(table.Headers, prefix+" Homeless - Veterans", prefix+" Veterans")
	chronicCol := findColumn(table.Headers, prefix+" Homeless - Chronically Homeless", prefix+" Chronically")

	var records []models.HomelessCountRecord

	for _, row := range table.Rows {
		cocNumber := strings.TrimSpace(row["CoC Number"])
		if cocNumber == "" {
			continue
		}

		total := cellIntPtr(columnValue(row, totalCol))
		if total == nil {
			continue
		}

		records = append(records, models.HomelessCountRecord{
			CoCNumber:           cocNumber,
			CoCName:             strings.TrimSpace(row["CoC Name"]),
			Year:                year,
			CountType:           countType,
			Total:               *total,
			Under18:             cellIntPtr(columnValue(row, under18Col)),
			Age18To24:           cellIntPtr(columnValue(row, age18To24Col)),
			Over24:              cellIntPtr(columnValue(row, over24Col)),
			Individuals:         cellIntPtr(columnValue(row, individualsCol)),
			PeopleInFamilies:    cellIntPtr(columnValue(row, familiesCol)),
			Veterans:            cellIntPtr(columnValue(row, veteransCol)),
			ChronicallyHomeless: cellIntPtr(columnValue(row, chronicCol)),
		})
	}

	return records
}

// findColumn returns the first header containing any pattern, in pattern
// order, matched case-insensitively. Empty string when nothing matches.
func findColumn(headers []string, patterns ...string) string {
	for _, pattern := range patterns {
		lower := strings.ToLower(pattern)
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), lower) {
				return h
			}
		}
	}
	return ""
}

// columnValue reads a cell by exact header name, tolerating a missing column
func columnValue(row tabular.Row, header string) string {
	if header == "" {
		return ""
	}
	return row[header]
}

// ValidateHomelessCounts checks the invariants of a normalized PIT record set
func ValidateHomelessCounts(records []models.HomelessCountRecord) error {
	for _, rec := range records {
		if len(rec.CoCNumber) < 6 || !strings.Contains(rec.CoCNumber, "-") {
			return &ValidationError{Dataset: catalog.HomelessCounts,
				Reason: fmt.Sprintf("malformed CoC number %q", rec.CoCNumber)}
		}
		if rec.Total < 0 {
			return &ValidationError{Dataset: catalog.HomelessCounts,
				Reason: fmt.Sprintf("%s %s: negative total", rec.CoCNumber, rec.Year)}
		}
		switch rec.CountType {
		case "Overall", "Sheltered", "Unsheltered":
		default:
			return &ValidationError{Dataset: catalog.HomelessCounts,
				Reason: fmt.Sprintf("unknown count type %q", rec.CountType)}
		}
		if y, err := strconv.Atoi(rec.Year); err != nil || y < pitFirstYear || y > pitLastYear {
			return &ValidationError{Dataset: catalog.HomelessCounts,
				Reason: fmt.Sprintf("year %q outside PIT range", rec.Year)}
		}
	}
	return nil
}
