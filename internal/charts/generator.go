package charts

import (
	"hudhousing/internal/logger"
	"hudhousing/internal/models"
)

// ChartSnippet is an embeddable go-echarts chart fragment. HTML contains a
// complete self-initializing snippet ready for template substitution.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// SnippetGenerator builds interactive chart snippets from a normalized
// housing snapshot
type SnippetGenerator struct {
	log *logger.Logger
}

// NewSnippetGenerator creates a new snippet generator
func NewSnippetGenerator() *SnippetGenerator {
	return &SnippetGenerator{
		log: logger.WithComponent("charts"),
	}
}

// GenerateSnippets creates all chart snippets for the report. Charts whose
// source data is empty are skipped rather than failing the report.
func (sg *SnippetGenerator) GenerateSnippets(data *models.HousingData) []ChartSnippet {
	var snippets []ChartSnippet

	if trend, err := sg.homelessTrendSnippet(data); err == nil {
		snippets = append(snippets, trend)
	} else {
		sg.log.Warnf("Skipping homeless trend chart: %v", err)
	}

	if fmr, err := sg.fmrBedroomSnippet(data); err == nil {
		snippets = append(snippets, fmr)
	} else {
		sg.log.Warnf("Skipping FMR bedroom chart: %v", err)
	}

	return snippets
}
