package reports

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hudhousing/internal/models"
)

func testSnapshot() *models.HousingData {
	return &models.HousingData{
		Timestamp: time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC),
		FairMarketRents: []models.FMRRecord{
			{StateCode: "AL", CountyName: "Autauga County", FiscalYear: "2024",
				FMR0BR: 800, FMR1BR: 850, FMR2BR: 1000, FMR3BR: 1300, FMR4BR: 1500},
			{StateCode: "AK", CountyName: "Anchorage", FiscalYear: "2024",
				FMR0BR: 900, FMR1BR: 1000, FMR2BR: 1250, FMR3BR: 1700, FMR4BR: 2000},
		},
		HomelessCounts: []models.HomelessCountRecord{
			{CoCNumber: "AK-500", Year: "2023", CountType: "Overall", Total: 1800},
			{CoCNumber: "AK-500", Year: "2024", CountType: "Overall", Total: 1900},
			{CoCNumber: "AL-500", Year: "2024", CountType: "Overall", Total: 3200},
			{CoCNumber: "AL-500", Year: "2024", CountType: "Sheltered", Total: 2100},
		},
	}
}

func TestBuildMarkdownSummary(t *testing.T) {
	summary := BuildMarkdownSummary(testSnapshot(), nil)

	if !strings.Contains(summary, "# HUD Housing Data Snapshot") {
		t.Error("Summary missing title")
	}
	if !strings.Contains(summary, "| Fair Market Rents | 2 |") {
		t.Errorf("Summary missing FMR count row:\n%s", summary)
	}
	// Latest-year national overall total: 1900 + 3200
	if !strings.Contains(summary, "Overall: 5100 people") {
		t.Errorf("Summary missing national overall total:\n%s", summary)
	}
	if !strings.Contains(summary, "2 bedrooms: $1250/month") {
		t.Errorf("Summary missing FMR median:\n%s", summary)
	}
	if strings.Contains(summary, "Failed Datasets") {
		t.Error("Summary should not list failures when there are none")
	}
}

func TestBuildMarkdownSummaryWithErrors(t *testing.T) {
	fetchErrs := map[string]error{
		"income_limits": errors.New("request failed for https://example.test: status 503"),
	}

	summary := BuildMarkdownSummary(testSnapshot(), fetchErrs)

	if !strings.Contains(summary, "## Failed Datasets") {
		t.Error("Summary missing failed datasets section")
	}
	if !strings.Contains(summary, "`income_limits`") {
		t.Error("Summary missing failed dataset key")
	}
}

func TestMarkdownToHTML(t *testing.T) {
	g := NewGenerator()

	html := g.markdownToHTML("# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n")

	if !strings.Contains(html, "<h1") {
		t.Error("Expected rendered heading")
	}
	if !strings.Contains(html, "<table>") {
		t.Error("Expected rendered table")
	}
}

func TestGenerateReport(t *testing.T) {
	g := NewGenerator()

	files, err := g.GenerateReport(testSnapshot(), nil)
	if err != nil {
		t.Fatalf("GenerateReport returned error: %v", err)
	}

	if !strings.Contains(files.HTML, "<!DOCTYPE html>") {
		t.Error("Expected complete HTML document")
	}
	if !strings.Contains(files.HTML, "echarts") {
		t.Error("Expected embedded interactive charts")
	}
	if files.MarkdownSummary == "" {
		t.Error("Expected markdown summary")
	}
	if len(files.Charts) == 0 {
		t.Error("Expected PNG charts")
	}
	for name, png := range files.Charts {
		// PNG magic bytes
		if len(png) < 4 || string(png[:4]) != "\x89PNG" {
			t.Errorf("Chart %s is not a PNG", name)
		}
	}
}

func TestRenderPNGChartsNeedsData(t *testing.T) {
	if _, err := RenderPNGCharts(&models.HousingData{}); err == nil {
		t.Error("Expected error for empty snapshot")
	}
}
