package reportgen

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ateger/teaserai/internal/models"
)

const maxChartLabelLen = 14

// RenderCoverageChart renders a PNG bar chart of per-section content length,
// a quick visual of how much analysis each section carries. Returns raw PNG
// bytes.
func RenderCoverageChart(analysis models.Analysis) ([]byte, error) {
	if len(analysis) == 0 {
		return nil, fmt.Errorf("no sections to chart")
	}

	bars := make([]chart.Value, len(analysis))
	for i, section := range analysis {
		bars[i] = chart.Value{
			Label: chartLabel(section.Title),
			Value: float64(len(section.Body)),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		}
	}

	graph := chart.BarChart{
		Title:    "Analysis Coverage (characters per section)",
		Width:    900,
		Height:   300,
		BarWidth: barWidthFor(len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// chartLabel truncates long section titles for axis labels.
func chartLabel(title string) string {
	if len(title) <= maxChartLabelLen {
		return title
	}
	return title[:maxChartLabelLen-1] + "…"
}

// barWidthFor keeps the bars inside the fixed chart width.
func barWidthFor(n int) int {
	w := 800 / n
	if w > 60 {
		w = 60
	}
	if w < 8 {
		w = 8
	}
	return w
}
