package charts

import (
	"encoding/json"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"csvreport/internal/logger"
	"csvreport/internal/models"
)

// DefaultCDN is where the fragments load ECharts from when none is configured
const DefaultCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

const chartHeight = 400

// Options configures a ChartGenerator
type Options struct {
	// CDNURL is the ECharts script URL embedded in every fragment
	CDNURL string
	// StaticFallback adds a <noscript> PNG rendering of each chart
	StaticFallback bool
}

// ChartGenerator renders aggregate tables as embeddable ECharts fragments
type ChartGenerator struct {
	cdnURL         string
	staticFallback bool
	log            *logger.Logger
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator(options Options) *ChartGenerator {
	if options.CDNURL == "" {
		options.CDNURL = DefaultCDN
	}
	return &ChartGenerator{
		cdnURL:         options.CDNURL,
		staticFallback: options.StaticFallback,
		log:            logger.GetGlobalLogger().WithComponent("charts"),
	}
}

// BarChart renders one bar per aggregate row, in row order
func (cg *ChartGenerator) BarChart(rows []models.AggregateRow, title string) (ChartSnippet, error) {
	id := chartID(title)
	labels, values := split(rows)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: id}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: models.ColumnCode}),
		charts.WithYAxisOpts(opts.YAxis{Name: models.ColumnValue}),
	)
	bar.SetXAxis(labels).AddSeries(models.ColumnValue, lo.Map(values, func(v float64, _ int) opts.BarData {
		return opts.BarData{Value: v}
	}))
	bar.Validate()

	optJSON, err := json.Marshal(bar.JSON())
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode bar chart %q: %w", title, err)
	}

	fallback := ""
	if cg.staticFallback {
		fallback = cg.fallback(title, func() ([]byte, error) { return staticBarPNG(title, labels, values) })
	}

	cg.log.Debug("Rendered bar chart", map[string]interface{}{"id": id, "bars": len(rows)})
	return newSnippet(id, title, cg.cdnURL, optJSON, chartHeight, fallback), nil
}

// LineChart renders the aggregate rows as a single line, in row order
func (cg *ChartGenerator) LineChart(rows []models.AggregateRow, title string) (ChartSnippet, error) {
	id := chartID(title)
	labels, values := split(rows)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: id}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: models.ColumnMonth}),
		charts.WithYAxisOpts(opts.YAxis{Name: models.ColumnValue}),
	)
	line.SetXAxis(labels).AddSeries(models.ColumnValue, lo.Map(values, func(v float64, _ int) opts.LineData {
		return opts.LineData{Value: v}
	}))
	line.Validate()

	optJSON, err := json.Marshal(line.JSON())
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode line chart %q: %w", title, err)
	}

	fallback := ""
	if cg.staticFallback {
		fallback = cg.fallback(title, func() ([]byte, error) { return staticLinePNG(title, labels, values) })
	}

	cg.log.Debug("Rendered line chart", map[string]interface{}{"id": id, "points": len(rows)})
	return newSnippet(id, title, cg.cdnURL, optJSON, chartHeight, fallback), nil
}

// fallback renders the static image, logging and dropping it on failure
func (cg *ChartGenerator) fallback(title string, render func() ([]byte, error)) string {
	png, err := render()
	if err != nil {
		cg.log.Warn("Static chart fallback unavailable", map[string]interface{}{
			"chart": title,
			"error": err.Error(),
		})
		return ""
	}
	return noscriptImage(title, png)
}

func split(rows []models.AggregateRow) ([]string, []float64) {
	labels := lo.Map(rows, func(r models.AggregateRow, _ int) string { return r.Label() })
	values := lo.Map(rows, func(r models.AggregateRow, _ int) float64 { return r.Float() })
	return labels, values
}
