// Package export renders the current container contents as a PNG so a view
// assembled interactively can be shared outside the terminal.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"segdash/internal/frame"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.6,
		DotColor:    col,
		DotWidth:    2,
	}
}

// PNG writes the container's groups as a multi-series line chart. Empty
// groups are skipped; a single-point group is padded with a duplicate point
// so the renderer accepts it.
func PNG(c *frame.Container, timeX bool, title, xLabel, yLabel, path string) error {
	series := make([]chart.Series, 0, 8)
	for _, g := range c.Groups() {
		if len(g.X) == 0 {
			continue
		}
		st := lineStyle(colorFromHex(g.Color))
		if timeX {
			times := make([]time.Time, len(g.X))
			for i, x := range g.X {
				times[i] = time.Unix(int64(x), 0).UTC()
			}
			ys := g.Y
			if len(times) == 1 {
				times = append(times, times[0].Add(time.Second))
				ys = append(append([]float64(nil), ys...), ys[0])
			}
			series = append(series, chart.TimeSeries{Name: g.Name, XValues: times, YValues: ys, Style: st})
			continue
		}
		xs, ys := g.X, g.Y
		if len(xs) == 1 {
			xs = append(append([]float64(nil), xs...), xs[0]+1)
			ys = append(append([]float64(nil), ys...), ys[0])
		}
		series = append(series, chart.ContinuousSeries{Name: g.Name, XValues: xs, YValues: ys, Style: st})
	}
	if len(series) == 0 {
		return fmt.Errorf("export: no data in current selection")
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 32}},
		XAxis:      chart.XAxis{Name: xLabel},
		YAxis:      chart.YAxis{Name: yLabel},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("export: render chart: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func colorFromHex(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}
