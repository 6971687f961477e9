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

// fmrBedroomSnippet builds a bar chart of median Fair Market Rents per
// bedroom count, one series per fiscal year
func (sg *SnippetGenerator) fmrBedroomSnippet(data *models.HousingData) (ChartSnippet, error) {
	if data == nil || len(data.FairMarketRents) == 0 {
		return ChartSnippet{}, fmt.Errorf("no fair market rent records")
	}

	byYear := make(map[string][]models.FMRRecord)
	for _, rec := range data.FairMarketRents {
		byYear[rec.FiscalYear] = append(byYear[rec.FiscalYear], rec)
	}

	years := make([]string, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Strings(years)

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "900px",
			Height: "420px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    "Fair Market Rents",
			Subtitle: "National median by bedroom count",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Bedrooms",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "$/month",
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	bar.SetXAxis([]string{"Efficiency", "1 BR", "2 BR", "3 BR", "4 BR"})
	for _, year := range years {
		medians := MedianRents(byYear[year])
		series := make([]opts.BarData, len(medians))
		for i, m := range medians {
			series[i] = opts.BarData{Value: m}
		}
		bar.AddSeries("FY"+year, series)
	}

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render FMR bedroom chart: %w", err)
	}

	return ChartSnippet{
		ID:    "chart-fmr-bedrooms",
		Title: "Fair Market Rents by Bedroom Count",
		HTML:  buf.String(),
	}, nil
}

// MedianRents returns the median rent per bedroom count (0-4) across records
func MedianRents(records []models.FMRRecord) [5]int {
	columns := [5][]int{}
	for _, rec := range records {
		columns[0] = append(columns[0], rec.FMR0BR)
		columns[1] = append(columns[1], rec.FMR1BR)
		columns[2] = append(columns[2], rec.FMR2BR)
		columns[3] = append(columns[3], rec.FMR3BR)
		columns[4] = append(columns[4], rec.FMR4BR)
	}

	var medians [5]int
	for i, values := range columns {
		if len(values) == 0 {
			continue
		}
		sort.Ints(values)
		medians[i] = values[len(values)/2]
	}
	return medians
}
