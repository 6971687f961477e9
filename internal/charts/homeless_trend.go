package charts

import (
	"bytes"
	"fmt"
	"sort"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"hudhousing/internal/models"
)

// homelessTrendSnippet builds a line chart of national Point-in-Time totals
// per year, one series per count type
func (sg *SnippetGenerator) homelessTrendSnippet(data *models.HousingData) (ChartSnippet, error) {
	if data == nil || len(data.HomelessCounts) == 0 {
		return ChartSnippet{}, fmt.Errorf("no homeless count records")
	}

	// Sum CoC totals into national totals per year and count type
	totals := make(map[string]map[string]int)
	for _, rec := range data.HomelessCounts {
		if totals[rec.Year] == nil {
			totals[rec.Year] = make(map[string]int)
		}
		totals[rec.Year][rec.CountType] += rec.Total
	}

	years := make([]string, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Strings(years)

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "900px",
			Height: "420px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    "Homelessness in the United States",
			Subtitle: "National Point-in-Time counts by year",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Year",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "People",
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
	)

	line.SetXAxis(years)
	for _, countType := range []string{"Overall", "Sheltered", "Unsheltered"} {
		series := make([]opts.LineData, len(years))
		for i, year := range years {
			series[i] = opts.LineData{Value: totals[year][countType]}
		}
		line.AddSeries(countType, series)
	}
	line.SetSeriesOptions(echarts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render homeless trend chart: %w", err)
	}

	return ChartSnippet{
		ID:    "chart-homeless-trend",
		Title: "National Homelessness Trend",
		HTML:  buf.String(),
	}, nil
}
