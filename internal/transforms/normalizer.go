// Package transforms normalizes raw HUD tables into typed records. Column
// conventions follow the published file layouts: headers vary in case and
// across fiscal years, numbers arrive as strings with occasional thousands
// separators or decimal suffixes.
package transforms

import (
	"fmt"
	"strconv"
	"strings"

	"hudhousing/internal/catalog"
	"hudhousing/internal/logger"
	"hudhousing/internal/models"
	"hudhousing/internal/tabular"
)

// ValidationError reports normalized data that violates dataset invariants
type ValidationError struct {
	Dataset string
	Reason  string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Dataset, e.Reason)
}

// Normalizer converts dataset payloads into typed records
type Normalizer struct {
	log *logger.Logger
}

// NewNormalizer creates a new normalizer instance
func NewNormalizer() *Normalizer {
	return &Normalizer{
		log: logger.WithComponent("transforms"),
	}
}

// Normalize dispatches a payload to the dataset's transform and returns the
// typed record slice.
func (n *Normalizer) Normalize(ds catalog.Dataset, payload *models.DatasetPayload) (interface{}, error) {
	switch ds.Key {
	case catalog.FairMarketRents:
		return n.FairMarketRents(ds, payload)
	case catalog.IncomeLimits:
		return n.IncomeLimits(ds, payload)
	case catalog.HousingAffordability:
		return n.Affordability(payload)
	case catalog.HomelessCounts:
		return n.HomelessCounts(payload)
	default:
		return nil, fmt.Errorf("no transform for dataset %q", ds.Key)
	}
}

// columns resolves header names case-insensitively for one table
type columns struct {
	byLower map[string]string
}

// newColumns builds a case-insensitive column resolver
func newColumns(table *tabular.Table) *columns {
	c := &columns{byLower: make(map[string]string, len(table.Headers))}
	for _, h := range table.Headers {
		lower := strings.ToLower(h)
		if _, exists := c.byLower[lower]; !exists {
			c.byLower[lower] = h
		}
	}
	return c
}

// has reports whether the named column exists
func (c *columns) has(name string) bool {
	_, ok := c.byLower[strings.ToLower(name)]
	return ok
}

// get returns the cell value of the named column
func (c *columns) get(row tabular.Row, name string) string {
	orig, ok := c.byLower[strings.ToLower(name)]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[orig])
}

// require fails when any of the named columns is absent
func (c *columns) require(dataset string, names ...string) error {
	for _, name := range names {
		if !c.has(name) {
			return &ValidationError{Dataset: dataset, Reason: "missing column " + name}
		}
	}
	return nil
}

// zfill left-pads a numeric string with zeros to the given width
func zfill(s string, width int) string {
	s = strings.TrimSpace(s)
	// Excel sometimes stringifies FIPS codes as floats
	if idx := strings.Index(s, "."); idx != -1 {
		s = s[:idx]
	}
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// cellInt parses a numeric cell, tolerating separators and decimal suffixes
func cellInt(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int(f), nil
}

// cellFloat parses a numeric cell as a float
func cellFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	return strconv.ParseFloat(s, 64)
}

// cellIntPtr parses an optional numeric cell, returning nil when blank or
// non-numeric (PIT breakdowns are sparse across years)
func cellIntPtr(s string) *int {
	v, err := cellInt(s)
	if err != nil {
		return nil
	}
	return &v
}
