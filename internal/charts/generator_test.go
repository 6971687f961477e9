package charts

import (
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
			{StateCode: "AL", CountyName: "Autauga County", FiscalYear: "2025",
				FMR0BR: 820, FMR1BR: 880, FMR2BR: 1040, FMR3BR: 1350, FMR4BR: 1560},
		},
		HomelessCounts: []models.HomelessCountRecord{
			{CoCNumber: "AK-500", Year: "2023", CountType: "Overall", Total: 1800},
			{CoCNumber: "AK-500", Year: "2023", CountType: "Sheltered", Total: 1500},
			{CoCNumber: "AK-500", Year: "2024", CountType: "Overall", Total: 1900},
			{CoCNumber: "AL-500", Year: "2024", CountType: "Overall", Total: 3200},
		},
	}
}

func TestGenerateSnippets(t *testing.T) {
	sg := NewSnippetGenerator()

	snippets := sg.GenerateSnippets(testSnapshot())
	if len(snippets) != 2 {
		t.Fatalf("Expected 2 snippets, got %d", len(snippets))
	}

	for _, snippet := range snippets {
		if snippet.HTML == "" {
			t.Errorf("Snippet %s has empty HTML", snippet.ID)
		}
		if !strings.Contains(snippet.HTML, "echarts") {
			t.Errorf("Snippet %s does not reference echarts", snippet.ID)
		}
	}
}

func TestGenerateSnippetsEmptyData(t *testing.T) {
	sg := NewSnippetGenerator()

	snippets := sg.GenerateSnippets(&models.HousingData{})
	if len(snippets) != 0 {
		t.Errorf("Expected no snippets for empty snapshot, got %d", len(snippets))
	}
}

func TestHomelessTrendSumsCoCs(t *testing.T) {
	sg := NewSnippetGenerator()

	snippet, err := sg.homelessTrendSnippet(testSnapshot())
	if err != nil {
		t.Fatalf("homelessTrendSnippet returned error: %v", err)
	}

	// 2024 Overall = AK-500 (1900) + AL-500 (3200)
	if !strings.Contains(snippet.HTML, "5100") {
		t.Error("Expected national 2024 overall total 5100 in chart data")
	}
}

func TestMedianRents(t *testing.T) {
	data := testSnapshot()

	medians := MedianRents(data.FairMarketRents[:2])
	// Two records: median picks the higher (index len/2 = 1) of each sorted pair
	if medians[0] != 900 || medians[2] != 1250 {
		t.Errorf("Unexpected medians: %v", medians)
	}

	var empty [5]int
	if MedianRents(nil) != empty {
		t.Error("Expected zero medians for no records")
	}
}
