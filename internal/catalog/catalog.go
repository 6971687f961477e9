package catalog

import (
	"errors"
	"fmt"

	"hudhousing/internal/config"
)

// Format identifies the file format of a dataset source
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Dataset keys accepted by Lookup
const (
	FairMarketRents      = "fair_market_rents"
	IncomeLimits         = "income_limits"
	HousingAffordability = "housing_affordability"
	HomelessCounts       = "homeless_counts"
)

// ErrUnknownDataset is returned when a requested dataset is not in the catalog
var ErrUnknownDataset = errors.New("unknown dataset")

// Source describes one downloadable file belonging to a dataset
type Source struct {
	URL        string `json:"url"`
	Format     Format `json:"format"`
	FiscalYear string `json:"fiscal_year,omitempty"`
}

// Dataset describes one catalog entry with its downloadable sources
type Dataset struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SourceURL   string   `json:"source_url"`
	Sources     []Source `json:"sources"`
}

// Catalog is the immutable set of datasets the connector can fetch
type Catalog struct {
	datasets map[string]Dataset
	order    []string
}

// New builds the catalog from configured source URLs
func New(cfg *config.Config) *Catalog {
	datasets := []Dataset{
		{
			Key:         FairMarketRents,
			Title:       "HUD Fair Market Rents",
			Description: "Fair Market Rents (FMRs) by county. FMRs determine payment standards for Housing Choice Voucher programs.",
			SourceURL:   "https://www.huduser.gov/portal/datasets/fmr.html",
			Sources: []Source{
				{URL: cfg.FMR2024URL, Format: FormatXLSX, FiscalYear: "2024"},
				{URL: cfg.FMR2025URL, Format: FormatXLSX, FiscalYear: "2025"},
			},
		},
		{
			Key:         IncomeLimits,
			Title:       "HUD Income Limits",
			Description: "Section 8 income limits by area, defining eligibility thresholds for housing assistance programs.",
			SourceURL:   "https://www.huduser.gov/portal/datasets/il.html",
			Sources: []Source{
				{URL: cfg.IncomeLimitsURL, Format: FormatXLSX, FiscalYear: "2024"},
			},
		},
		{
			Key:         HousingAffordability,
			Title:       "HUD Location Affordability Index",
			Description: "Housing cost burden as a share of household income by county, for owners and renters.",
			SourceURL:   "https://www.huduser.gov/portal/datasets/lai.html",
			Sources: []Source{
				{URL: cfg.AffordabilityURL, Format: FormatCSV},
			},
		},
		{
			Key:         HomelessCounts,
			Title:       "HUD Point-in-Time Homeless Counts",
			Description: "Annual Point-in-Time (PIT) homeless counts by Continuum of Care (CoC), 2007-2024.",
			SourceURL:   "https://www.hudexchange.info/resource/3031/pit-and-hic-data-since-2007/",
			Sources: []Source{
				{URL: cfg.PITCountsURL, Format: FormatXLSX},
			},
		},
	}

	c := &Catalog{datasets: make(map[string]Dataset, len(datasets))}
	for _, ds := range datasets {
		c.datasets[ds.Key] = ds
		c.order = append(c.order, ds.Key)
	}
	return c
}

// Lookup resolves a dataset key to its catalog entry
func (c *Catalog) Lookup(key string) (Dataset, error) {
	ds, ok := c.datasets[key]
	if !ok {
		return Dataset{}, fmt.Errorf("%q: %w", key, ErrUnknownDataset)
	}
	return ds, nil
}

// Keys returns all dataset keys in catalog order
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// Datasets returns all catalog entries in catalog order
func (c *Catalog) Datasets() []Dataset {
	out := make([]Dataset, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.datasets[key])
	}
	return out
}
