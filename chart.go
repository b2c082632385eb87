package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartOptions are the fixed rendering parameters from the bot config.
type ChartOptions struct {
	Width  int
	Height int
	DPI    float64
}

var (
	barFillColor       = drawing.Color{R: 66, G: 133, B: 244, A: 255}
	highlightFillColor = drawing.Color{R: 219, G: 68, B: 55, A: 255}
)

// RenderFrequencyChart draws one bar per number 1..49, in number order, with
// the highlightTopK most frequent bars in a distinct color. It returns the
// encoded PNG; any failure wraps ErrRender and no partial output is usable.
func RenderFrequencyChart(freqs FrequencyTable, highlightTopK int, opts ChartOptions) ([]byte, error) {
	maxCount := 0
	for n := minNumber; n <= maxNumber; n++ {
		if freqs[n] > maxCount {
			maxCount = freqs[n]
		}
	}
	if maxCount == 0 {
		return nil, fmt.Errorf("%w: no draw data to chart", ErrRender)
	}

	highlighted := highlightSet(freqs, highlightTopK)

	bars := make([]chart.Value, 0, maxNumber)
	for n := minNumber; n <= maxNumber; n++ {
		fill := barFillColor
		if highlighted[n] {
			fill = highlightFillColor
		}
		bars = append(bars, chart.Value{
			Value: float64(freqs[n]),
			Label: strconv.Itoa(n),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Mark Six number frequency (main numbers)",
		Width:    opts.Width,
		Height:   opts.Height,
		DPI:      opts.DPI,
		// 49 bars plus spacing must fit the configured width.
		BarWidth:   opts.Width / (maxNumber + 10),
		BarSpacing: 4,
		XAxis: chart.Style{
			FontSize: 7,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// highlightSet picks the top-k numbers by count with the same ascending-number
// tie-break the query engine uses, so chart and summary agree.
func highlightSet(freqs FrequencyTable, k int) map[int]bool {
	ranked := rankedN(freqs, k, true)
	set := make(map[int]bool, len(ranked))
	for _, nc := range ranked {
		set[nc.Number] = true
	}
	return set
}
