package reports

import (
	"fmt"
	"sort"
	"strings"

	"hudhousing/internal/charts"
	"hudhousing/internal/models"
)

// datasetTitles maps catalog keys to human-readable summary headings
var datasetTitles = map[string]string{
	"fair_market_rents":     "Fair Market Rents",
	"income_limits":         "Income Limits",
	"housing_affordability": "Housing Affordability",
	"homeless_counts":       "Homelessness Counts",
}

// BuildMarkdownSummary renders an ingest snapshot as a markdown report.
// fetchErrs carries per-dataset failures from a partial ingest; succeeded
// datasets are summarized, failed ones are listed with their error.
func BuildMarkdownSummary(data *models.HousingData, fetchErrs map[string]error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# HUD Housing Data Snapshot\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", data.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Record Counts\n\n")
	b.WriteString("| Dataset | Records |\n")
	b.WriteString("|---------|--------:|\n")

	counts := data.RecordCounts()
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "| %s | %d |\n", datasetTitles[key], counts[key])
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", data.TotalRecords())

	if section := homelessSection(data.HomelessCounts); section != "" {
		b.WriteString(section)
	}
	if section := fmrSection(data.FairMarketRents); section != "" {
		b.WriteString(section)
	}

	if len(fetchErrs) > 0 {
		b.WriteString("## Failed Datasets\n\n")
		failed := make([]string, 0, len(fetchErrs))
		for key := range fetchErrs {
			failed = append(failed, key)
		}
		sort.Strings(failed)
		for _, key := range failed {
			fmt.Fprintf(&b, "- `%s`: %v\n", key, fetchErrs[key])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// homelessSection summarizes the latest year's national Point-in-Time totals
func homelessSection(records []models.HomelessCountRecord) string {
	if len(records) == 0 {
		return ""
	}

	latest := ""
	totals := make(map[string]map[string]int)
	for _, rec := range records {
		if rec.Year > latest {
			latest = rec.Year
		}
		if totals[rec.Year] == nil {
			totals[rec.Year] = make(map[string]int)
		}
		totals[rec.Year][rec.CountType] += rec.Total
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Homelessness (%s)\n\n", latest)
	for _, countType := range []string{"Overall", "Sheltered", "Unsheltered"} {
		if total, ok := totals[latest][countType]; ok {
			fmt.Fprintf(&b, "- %s: %d people\n", countType, total)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// fmrSection summarizes national median rents for the latest fiscal year
func fmrSection(records []models.FMRRecord) string {
	if len(records) == 0 {
		return ""
	}

	latest := ""
	for _, rec := range records {
		if rec.FiscalYear > latest {
			latest = rec.FiscalYear
		}
	}
	var latestRecords []models.FMRRecord
	for _, rec := range records {
		if rec.FiscalYear == latest {
			latestRecords = append(latestRecords, rec)
		}
	}

	medians := charts.MedianRents(latestRecords)

	var b strings.Builder
	fmt.Fprintf(&b, "## Fair Market Rents (FY%s medians)\n\n", latest)
	labels := []string{"Efficiency", "1 bedroom", "2 bedrooms", "3 bedrooms", "4 bedrooms"}
	for i, label := range labels {
		fmt.Fprintf(&b, "- %s: $%d/month\n", label, medians[i])
	}
	b.WriteString("\n")
	return b.String()
}
