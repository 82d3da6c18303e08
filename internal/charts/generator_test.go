package charts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvreport/internal/models"
)

func rows(pairs ...interface{}) []models.AggregateRow {
	out := make([]models.AggregateRow, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.AggregateRow{
			Key:   models.StringCell(pairs[i].(string)),
			Value: decimal.RequireFromString(pairs[i+1].(string)),
		})
	}
	return out
}

// option decodes the ECharts option embedded in a snippet's init script
func option(t *testing.T, snippet ChartSnippet) map[string]interface{} {
	t.Helper()
	start := strings.Index(snippet.Script, "var option=")
	end := strings.Index(snippet.Script, ";c.setOption(")
	require.True(t, start >= 0 && end > start, "script has no option: %s", snippet.Script)

	var opt map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(snippet.Script[start+len("var option="):end]), &opt))
	return opt
}

func seriesValues(t *testing.T, opt map[string]interface{}) []float64 {
	t.Helper()
	series, ok := opt["series"].([]interface{})
	require.True(t, ok, "option has no series")
	require.Len(t, series, 1)

	data, _ := series[0].(map[string]interface{})["data"].([]interface{})
	values := make([]float64, len(data))
	for i, d := range data {
		values[i] = d.(map[string]interface{})["value"].(float64)
	}
	return values
}

func axisLabels(t *testing.T, opt map[string]interface{}) []string {
	t.Helper()
	axes, ok := opt["xAxis"].([]interface{})
	require.True(t, ok, "option has no xAxis")
	data, _ := axes[0].(map[string]interface{})["data"].([]interface{})
	labels := make([]string, len(data))
	for i, d := range data {
		labels[i] = d.(string)
	}
	return labels
}

func TestNewChartGenerator(t *testing.T) {
	cg := NewChartGenerator(Options{})
	assert.Equal(t, DefaultCDN, cg.cdnURL)
	assert.False(t, cg.staticFallback)

	cg = NewChartGenerator(Options{CDNURL: "https://example.com/echarts.js", StaticFallback: true})
	assert.Equal(t, "https://example.com/echarts.js", cg.cdnURL)
	assert.True(t, cg.staticFallback)
}

func TestBarChart(t *testing.T) {
	cg := NewChartGenerator(Options{})

	snippet, err := cg.BarChart(rows("A", "9", "B", "3"), "Maximum Values by Code")
	require.NoError(t, err)

	assert.Equal(t, "chart-maximum-values-by-code", snippet.ID)
	assert.Equal(t, "Maximum Values by Code", snippet.Title)
	assert.Contains(t, snippet.HTML, `<script src="`+DefaultCDN+`"></script>`)
	assert.Contains(t, snippet.HTML, `<div id="chart-maximum-values-by-code"`)
	assert.Contains(t, snippet.HTML, "echarts.init(el)")
	assert.NotContains(t, snippet.HTML, "<html")
	assert.NotContains(t, snippet.HTML, "<body")
	assert.NotContains(t, snippet.HTML, "<noscript>")

	opt := option(t, snippet)
	assert.Equal(t, []string{"A", "B"}, axisLabels(t, opt))
	assert.Equal(t, []float64{9, 3}, seriesValues(t, opt))
	assert.Equal(t, "bar", opt["series"].([]interface{})[0].(map[string]interface{})["type"])
	assert.Equal(t, "Maximum Values by Code", opt["title"].(map[string]interface{})["text"])
}

func TestLineChart(t *testing.T) {
	cg := NewChartGenerator(Options{})

	snippet, err := cg.LineChart(rows("Feb", "2", "Jan", "0.5", "Mar", "7.25"), "Value per date")
	require.NoError(t, err)

	assert.Equal(t, "chart-value-per-date", snippet.ID)
	assert.Contains(t, snippet.HTML, `<div id="chart-value-per-date"`)
	assert.True(t, strings.HasSuffix(snippet.HTML, snippet.Script))

	opt := option(t, snippet)
	assert.Equal(t, []string{"Feb", "Jan", "Mar"}, axisLabels(t, opt))
	assert.Equal(t, []float64{2, 0.5, 7.25}, seriesValues(t, opt))
	assert.Equal(t, "line", opt["series"].([]interface{})[0].(map[string]interface{})["type"])
}

func TestEmptyChartsRender(t *testing.T) {
	cg := NewChartGenerator(Options{StaticFallback: true})

	bar, err := cg.BarChart(nil, "Maximum Values by Code")
	require.NoError(t, err)
	assert.Contains(t, bar.HTML, `<div id="chart-maximum-values-by-code"`)
	assert.Empty(t, seriesValues(t, option(t, bar)))
	assert.NotContains(t, bar.HTML, "<noscript>")

	line, err := cg.LineChart([]models.AggregateRow{}, "Value per date")
	require.NoError(t, err)
	assert.Contains(t, line.HTML, "echarts.init(el)")
	assert.NotContains(t, line.HTML, "<noscript>")
}

func TestStaticFallback(t *testing.T) {
	cg := NewChartGenerator(Options{StaticFallback: true})

	bar, err := cg.BarChart(rows("A", "9", "B", "3"), "Maximum Values by Code")
	require.NoError(t, err)
	assert.Contains(t, bar.HTML, `<noscript><img alt="Maximum Values by Code" src="data:image/png;base64,`)

	line, err := cg.LineChart(rows("Feb", "2", "Jan", "2"), "Value per date")
	require.NoError(t, err)
	assert.Contains(t, line.HTML, "<noscript><img")

	single, err := cg.LineChart(rows("Jan", "2"), "Value per date")
	require.NoError(t, err)
	assert.NotContains(t, single.HTML, "<noscript>")
}

func TestChartOptionIsScriptSafe(t *testing.T) {
	cg := NewChartGenerator(Options{})

	snippet, err := cg.BarChart(rows("</script><b>", "1"), "Maximum Values by Code")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(snippet.Script, "</script>"))
	assert.Equal(t, []string{"</script><b>"}, axisLabels(t, option(t, snippet)))
}
