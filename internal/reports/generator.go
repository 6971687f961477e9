package reports

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"hudhousing/internal/charts"
	"hudhousing/internal/logger"
	"hudhousing/internal/models"
)

// Generator handles report generation and HTML conversion
type Generator struct {
	snippets *charts.SnippetGenerator
	log      *logger.Logger
}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{
		snippets: charts.NewSnippetGenerator(),
		log:      logger.WithComponent("reports"),
	}
}

// GeneratedFiles holds the report artifacts produced for one snapshot
type GeneratedFiles struct {
	MarkdownSummary string
	HTML            string
	Charts          map[string][]byte // filename -> PNG bytes
}

// GenerateReport builds the markdown summary, the HTML report with embedded
// interactive charts, and the static PNG charts for a snapshot
func (g *Generator) GenerateReport(data *models.HousingData, fetchErrs map[string]error) (*GeneratedFiles, error) {
	g.log.Info("Generating snapshot report...")

	summary := BuildMarkdownSummary(data, fetchErrs)
	htmlContent := g.markdownToHTML(summary)

	chartSnippets := g.snippets.GenerateSnippets(data)
	fullHTML := g.buildCompleteHTML(htmlContent, chartSnippets, data)

	pngCharts, err := RenderPNGCharts(data)
	if err != nil {
		// PNG charts are supplementary; the report is still usable without them
		g.log.Warnf("Failed to render PNG charts: %v", err)
		pngCharts = nil
	}

	g.log.Infof("Generated report with %d records and %d charts", data.TotalRecords(), len(chartSnippets))

	return &GeneratedFiles{
		MarkdownSummary: summary,
		HTML:            fullHTML,
		Charts:          pngCharts,
	}, nil
}

// markdownToHTML converts markdown to HTML
func (g *Generator) markdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.Render(doc, renderer))
}

// buildCompleteHTML creates a complete HTML document
func (g *Generator) buildCompleteHTML(content string, chartSnippets []charts.ChartSnippet, data *models.HousingData) string {
	timestamp := data.Timestamp.Format("2006-01-02 15:04:05 UTC")

	var chartSections strings.Builder
	for _, snippet := range chartSnippets {
		fmt.Fprintf(&chartSections, `
        <div class="chart-section">
            <h2>%s</h2>
            %s
        </div>`, snippet.Title, snippet.HTML)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>HUD Housing Data Snapshot - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .header {
            background: linear-gradient(135deg, #1e3a5f 0%%, #2e6da4 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 {
            margin: 0;
            font-size: 2em;
        }
        .header .timestamp {
            opacity: 0.85;
            margin-top: 8px;
        }
        .content, .chart-section {
            background: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        table {
            border-collapse: collapse;
            width: 100%%;
        }
        th, td {
            border: 1px solid #dee2e6;
            padding: 8px 12px;
            text-align: left;
        }
        th {
            background-color: #e9ecef;
        }
        .footer {
            text-align: center;
            color: #6c757d;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>HUD Housing Data Snapshot</h1>
        <div class="timestamp">%s</div>
    </div>
    <div class="content">
%s
    </div>
%s
    <div class="footer">
        Data source: U.S. Department of Housing and Urban Development (huduser.gov)
    </div>
</body>
</html>`, timestamp, timestamp, content, chartSections.String())
}
