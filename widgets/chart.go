package widgets

import (
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"segdash/internal/frame"
)

// DefaultPalette is the series color cycle, assigned to segment levels in
// sorted order so colors are stable across recomputes.
var DefaultPalette = []string{
	"#89b4fa", "#a6e3a1", "#fab387", "#f38ba8", "#cba6f7",
	"#94e2d5", "#f9e2af", "#eba0ac", "#74c7ec", "#b4befe",
}

var (
	chartAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	chartEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// LineChart draws one braille line per container group. The widget is
// constructed once per tab and reads the container on every render, so plot
// output follows container mutations without any rebuild.
type LineChart struct {
	Source *frame.Container
	TimeX  bool
}

func (w *LineChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	groups := w.Source.Groups()
	minX, maxX, minY, maxY, points := chartBounds(groups)
	if points == 0 {
		return chartEmptyStyle.Render("No data for current selection.")
	}

	plotHeight := height
	if height >= 4 {
		plotHeight = height - 1 // last line holds the series legend
	}

	lc := linechart.New(width, plotHeight, minX, maxX, minY, maxY)
	lc.AxisStyle = chartAxisStyle
	lc.LabelStyle = chartLabelStyle
	if w.TimeX {
		lc.XLabelFormatter = timeXLabel
	} else {
		lc.XLabelFormatter = numericLabel
	}
	lc.YLabelFormatter = numericLabel
	lc.DrawXYAxisAndLabel()

	for i, g := range groups {
		if len(g.X) == 0 {
			continue
		}
		color := g.Color
		if color == "" {
			color = DefaultPalette[i%len(DefaultPalette)]
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		prev := canvas.Float64Point{X: g.X[0], Y: g.Y[0]}
		if len(g.X) == 1 {
			lc.DrawBrailleLineWithStyle(prev, prev, style)
			continue
		}
		for j := 1; j < len(g.X); j++ {
			next := canvas.Float64Point{X: g.X[j], Y: g.Y[j]}
			lc.DrawBrailleLineWithStyle(prev, next, style)
			prev = next
		}
	}
	if plotHeight == height {
		return lc.View()
	}
	return lc.View() + "\n" + legendLine(groups, width)
}

// legendLine names each plotted series next to a swatch in its line color.
func legendLine(groups []frame.Group, width int) string {
	entries := make([]string, 0, len(groups))
	for i, g := range groups {
		if len(g.X) == 0 {
			continue
		}
		color := g.Color
		if color == "" {
			color = DefaultPalette[i%len(DefaultPalette)]
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("──")
		entries = append(entries, swatch+" "+chartLabelStyle.Render(g.Name))
	}
	return ansi.Truncate(strings.Join(entries, "  "), maxInt(1, width), "")
}

// chartBounds finds the plot ranges, padding degenerate ranges so a single
// x or y value still renders.
func chartBounds(groups []frame.Group) (minX, maxX, minY, maxY float64, points int) {
	for _, g := range groups {
		for i := range g.X {
			if points == 0 {
				minX, maxX = g.X[i], g.X[i]
				minY, maxY = g.Y[i], g.Y[i]
			}
			minX = minFloat(minX, g.X[i])
			maxX = maxFloat(maxX, g.X[i])
			minY = minFloat(minY, g.Y[i])
			maxY = maxFloat(maxY, g.Y[i])
			points++
		}
	}
	if points == 0 {
		return 0, 1, 0, 1, 0
	}
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}
	return minX, maxX, minY, maxY, points
}

func timeXLabel(_ int, v float64) string {
	return time.Unix(int64(v), 0).UTC().Format("01-02")
}

func numericLabel(_ int, v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
