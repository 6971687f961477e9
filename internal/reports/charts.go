package reports

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	chartdata "hudhousing/internal/charts"
	"hudhousing/internal/models"
)

// RenderPNGCharts renders the static chart images stored alongside the
// snapshot. Charts whose source data is too thin to plot are skipped.
func RenderPNGCharts(data *models.HousingData) (map[string][]byte, error) {
	images := make(map[string][]byte)

	if png, err := renderHomelessTrendPNG(data); err == nil {
		images["homeless_trend.png"] = png
	}
	if png, err := renderFMRBedroomPNG(data); err == nil {
		images["fmr_bedrooms.png"] = png
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no chart data available")
	}
	return images, nil
}

// renderHomelessTrendPNG draws national overall Point-in-Time totals per year
func renderHomelessTrendPNG(data *models.HousingData) ([]byte, error) {
	totals := make(map[string]int)
	for _, rec := range data.HomelessCounts {
		if rec.CountType == "Overall" {
			totals[rec.Year] += rec.Total
		}
	}
	// go-chart needs at least two points for a continuous series
	if len(totals) < 2 {
		return nil, fmt.Errorf("not enough years for trend chart: %d", len(totals))
	}

	years := make([]string, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Strings(years)

	xValues := make([]float64, len(years))
	yValues := make([]float64, len(years))
	for i, year := range years {
		y, err := strconv.Atoi(year)
		if err != nil {
			return nil, fmt.Errorf("non-numeric year %q: %w", year, err)
		}
		xValues[i] = float64(y)
		yValues[i] = float64(totals[year])
	}

	graph := chart.Chart{
		Title: "Overall Homelessness by Year",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 40,
			},
		},
		Height: 400,
		Width:  800,
		XAxis: chart.XAxis{
			Name:           "Year",
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		YAxis: chart.YAxis{
			Name: "People",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Overall",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render homeless trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderFMRBedroomPNG draws national median rents per bedroom count for the
// latest fiscal year
func renderFMRBedroomPNG(data *models.HousingData) ([]byte, error) {
	if len(data.FairMarketRents) == 0 {
		return nil, fmt.Errorf("no fair market rent records")
	}

	latest := ""
	for _, rec := range data.FairMarketRents {
		if rec.FiscalYear > latest {
			latest = rec.FiscalYear
		}
	}
	var latestRecords []models.FMRRecord
	for _, rec := range data.FairMarketRents {
		if rec.FiscalYear == latest {
			latestRecords = append(latestRecords, rec)
		}
	}
	medians := chartdata.MedianRents(latestRecords)

	graph := chart.BarChart{
		Title: fmt.Sprintf("Median Fair Market Rents (FY%s)", latest),
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Height:   400,
		Width:    600,
		BarWidth: 80,
		Bars: []chart.Value{
			{Value: float64(medians[0]), Label: "0 BR"},
			{Value: float64(medians[1]), Label: "1 BR"},
			{Value: float64(medians[2]), Label: "2 BR"},
			{Value: float64(medians[3]), Label: "3 BR"},
			{Value: float64(medians[4]), Label: "4 BR"},
		},
		YAxis: chart.YAxis{
			Name: "$/month",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render FMR chart: %w", err)
	}
	return buf.Bytes(), nil
}
