package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	staticWidth  = 800
	staticHeight = 400
)

var staticSeriesColor = drawing.Color{R: 84, G: 112, B: 198, A: 255}

// staticBarPNG renders a bar chart image with go-chart
func staticBarPNG(title string, labels []string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no bars to draw")
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{
			Label: labels[i],
			Value: v,
			Style: chart.Style{FillColor: staticSeriesColor, StrokeColor: staticSeriesColor},
		}
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:    staticWidth,
		Height:   staticHeight,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: valueRange(values),
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart image: %w", err)
	}
	return buf.Bytes(), nil
}

// staticLinePNG renders a line chart image with go-chart. Points are spaced
// evenly and labelled on the x axis.
func staticLinePNG(title string, labels []string, values []float64) ([]byte, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("need at least 2 points, got %d", len(values))
	}

	xs := make([]float64, len(values))
	ticks := make([]chart.Tick, len(values))
	for i := range values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: labels[i]}
	}

	graph := chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  staticWidth,
		Height: staticHeight,
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(values) - 1)},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: valueRange(values),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: staticSeriesColor,
					StrokeWidth: 2,
					DotColor:    staticSeriesColor,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: values,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render line chart image: %w", err)
	}
	return buf.Bytes(), nil
}

// valueRange spans zero and every value, and is never empty
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// noscriptImage wraps a PNG as an inline image shown when scripts are disabled
func noscriptImage(title string, png []byte) string {
	return fmt.Sprintf(`<noscript><img alt="%s" src="data:image/png;base64,%s"></noscript>`,
		html.EscapeString(title), base64.StdEncoding.EncodeToString(png))
}
