package models

import (
	"time"

	"hudhousing/internal/tabular"
)

// HousingData represents one normalized snapshot of all housing datasets
type HousingData struct {
	Timestamp       time.Time             `json:"timestamp"`
	FairMarketRents []FMRRecord           `json:"fair_market_rents"`
	IncomeLimits    []IncomeLimitRecord   `json:"income_limits"`
	Affordability   []AffordabilityRecord `json:"housing_affordability"`
	HomelessCounts  []HomelessCountRecord `json:"homeless_counts"`
}

// FMRRecord is one county's Fair Market Rents for a fiscal year
type FMRRecord struct {
	StateCode   string `json:"state_code"`    // 2-letter state code (e.g., AL)
	StateFIPS   string `json:"state_fips"`    // zero-padded state FIPS code
	CountyName  string `json:"county_name"`
	FIPS        string `json:"fips"`          // full FIPS code (state + county)
	HUDAreaCode string `json:"hud_area_code"`
	HUDAreaName string `json:"hud_area_name"`
	Metro       int    `json:"metro"`         // 1 metropolitan, 0 non-metropolitan
	FiscalYear  string `json:"fiscal_year"`
	Population  int    `json:"population"`
	FMR0BR      int    `json:"fmr_0br"` // $/month, efficiency unit
	FMR1BR      int    `json:"fmr_1br"`
	FMR2BR      int    `json:"fmr_2br"`
	FMR3BR      int    `json:"fmr_3br"`
	FMR4BR      int    `json:"fmr_4br"`
}

// IncomeLimitRecord is one area's Section 8 income limits for a fiscal year.
// The limit arrays are indexed by household size minus one (1-8 persons).
type IncomeLimitRecord struct {
	FIPS         string `json:"fips"`
	StateCode    string `json:"state_code"`
	StateFIPS    string `json:"state_fips"`
	StateName    string `json:"state_name"`
	HUDAreaCode  string `json:"hud_area_code"`
	HUDAreaName  string `json:"hud_area_name"`
	CountyFIPS   string `json:"county_fips"`
	CountyName   string `json:"county_name"`
	Metro        int    `json:"metro"`
	FiscalYear   string `json:"fiscal_year"`
	MedianIncome int    `json:"median_income"` // area median income, 4-person household
	ExtremelyLow [8]int `json:"eli"`           // 30% AMI
	VeryLow      [8]int `json:"vli"`           // 50% AMI
	Low          [8]int `json:"li"`            // 80% AMI
}

// AffordabilityRecord is one county's housing cost burden for a year
type AffordabilityRecord struct {
	FIPS            string  `json:"fips"`
	CountyName      string  `json:"county_name"`
	StateCode       string  `json:"state_code"`
	Year            string  `json:"year"`
	MedianIncome    int     `json:"median_income"`
	OwnerCostShare  float64 `json:"owner_cost_share"`  // percent of income
	RenterCostShare float64 `json:"renter_cost_share"` // percent of income
}

// HomelessCountRecord is one CoC's Point-in-Time count for a year and count
// type. Breakdowns are pointers because coverage varies by year.
type HomelessCountRecord struct {
	CoCNumber           string `json:"coc_number"` // e.g., AK-500
	CoCName             string `json:"coc_name"`
	Year                string `json:"year"`
	CountType           string `json:"count_type"` // Overall, Sheltered or Unsheltered
	Total               int    `json:"total"`
	Under18             *int   `json:"under_18,omitempty"`
	Age18To24           *int   `json:"age_18_to_24,omitempty"`
	Over24              *int   `json:"over_24,omitempty"`
	Individuals         *int   `json:"individuals,omitempty"`
	PeopleInFamilies    *int   `json:"people_in_families,omitempty"`
	Veterans            *int   `json:"veterans,omitempty"`
	ChronicallyHomeless *int   `json:"chronically_homeless,omitempty"`
}

// RawFile is one downloaded source file kept for snapshot archival
type RawFile struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// DatasetPayload contains raw data for one dataset before normalization
type DatasetPayload struct {
	Key      string           `json:"key"`
	Tables   []*tabular.Table `json:"tables"` // one per catalog source
	RawFiles []RawFile        `json:"raw_files"`
}

// RecordCounts returns per-dataset record counts for the snapshot
func (d *HousingData) RecordCounts() map[string]int {
	return map[string]int{
		"fair_market_rents":     len(d.FairMarketRents),
		"income_limits":         len(d.IncomeLimits),
		"housing_affordability": len(d.Affordability),
		"homeless_counts":       len(d.HomelessCounts),
	}
}

// TotalRecords returns the snapshot's total record count
func (d *HousingData) TotalRecords() int {
	return len(d.FairMarketRents) + len(d.IncomeLimits) + len(d.Affordability) + len(d.HomelessCounts)
}
