package tabs

import (
	"fmt"
	"sort"

	"segdash/internal/frame"
	"segdash/widgets"
)

// filterJumpKeys is the pool handed to level-filter groups, chosen to avoid
// the selector jump keys and the app-level bindings.
const filterJumpKeys = "fghlbcdiop"

// Selection is a snapshot of a line tab's control state: the active segment
// column, the plotted metric and the checked levels per segment column.
type Selection struct {
	Segment string
	Metric  string
	Levels  map[string][]string
}

// LineTab plots one line per level of a categorical segment column against a
// fixed x-axis column. The metric plotted and the segment column are widget
// choices; per-segment-column checkbox groups filter the rows feeding the
// plot. Each (level, x) point is the mean of the metric over matching rows.
type LineTab struct {
	src      *frame.Frame
	xAxis    string
	segments []string
	metrics  []string
	timeX    bool

	container  *frame.Container
	chart      *widgets.LineChart
	segmentSel *widgets.Selector
	metricSel  *widgets.Selector
	filters    map[string]*widgets.CheckGroup
}

// NewLine records the tab configuration. Column validation happens in
// InitContainer so a bad configuration surfaces on Mount, before any widget
// exists.
func NewLine(src *frame.Frame, xAxis string, segments, metrics []string) *LineTab {
	return &LineTab{
		src:      src,
		xAxis:    xAxis,
		segments: append([]string(nil), segments...),
		metrics:  append([]string(nil), metrics...),
	}
}

func (t *LineTab) ID() string    { return "line" }
func (t *LineTab) Title() string { return "Segment metrics" }

// XAxis returns the configured x-axis column.
func (t *LineTab) XAxis() string { return t.xAxis }

// TimeX reports whether the x-axis column holds timestamps.
func (t *LineTab) TimeX() bool { return t.timeX }

// Container returns the shared data container, nil before InitContainer.
func (t *LineTab) Container() *frame.Container { return t.container }

func (t *LineTab) InitContainer() (*frame.Container, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.container = frame.NewContainer()
	t.chart = &widgets.LineChart{Source: t.container, TimeX: t.timeX}
	return t.container, nil
}

func (t *LineTab) validate() error {
	if t.src == nil || t.src.NumRows() == 0 {
		return fmt.Errorf("line tab: source table is empty")
	}
	x, err := t.src.Resolve(t.xAxis)
	if err != nil {
		return fmt.Errorf("line tab: x-axis: %w", err)
	}
	if x.Kind() == frame.Text {
		return fmt.Errorf("line tab: x-axis column %q is text, want number or time", t.xAxis)
	}
	t.timeX = x.Kind() == frame.Time
	if len(t.segments) == 0 {
		return fmt.Errorf("line tab: no segment columns configured")
	}
	for _, s := range t.segments {
		c, err := t.src.Resolve(s)
		if err != nil {
			return fmt.Errorf("line tab: segment: %w", err)
		}
		if c.Kind() != frame.Text {
			return fmt.Errorf("line tab: segment column %q is %s, want text", s, c.Kind())
		}
	}
	if len(t.metrics) == 0 {
		return fmt.Errorf("line tab: no metric columns configured")
	}
	for _, m := range t.metrics {
		c, err := t.src.Resolve(m)
		if err != nil {
			return fmt.Errorf("line tab: metric: %w", err)
		}
		if c.Kind() != frame.Number {
			return fmt.Errorf("line tab: metric column %q is %s, want number", m, c.Kind())
		}
	}
	return nil
}

func (t *LineTab) BuildControls() []Control {
	t.segmentSel = widgets.NewSelector("segment", "Segment", 's', t.segments)
	t.metricSel = widgets.NewSelector("metric", "Metric", 'm', t.metrics)
	t.filters = make(map[string]*widgets.CheckGroup, len(t.segments))
	controls := []Control{t.segmentSel, t.metricSel}
	for i, col := range t.segments {
		levels, _ := t.src.Levels(col)
		// Filters past the pool have no jump key; arrows still reach them.
		var jump byte
		if i < len(filterJumpKeys) {
			jump = filterJumpKeys[i]
		}
		g := widgets.NewCheckGroup("filter:"+col, col, jump, levels)
		t.filters[col] = g
		controls = append(controls, g)
	}
	return controls
}

// OnControlChange recomputes the container contents from the current control
// state. Idempotent: the same selection always produces the same contents.
func (t *LineTab) OnControlChange() error {
	x, y, series, colors := t.compute(t.segmentSel.Value(), t.metricSel.Value(), t.activeLevels())
	return t.container.Replace(x, y, series, colors)
}

func (t *LineTab) activeLevels() map[string][]string {
	out := make(map[string][]string, len(t.filters))
	for col, g := range t.filters {
		out[col] = g.Active()
	}
	return out
}

// compute builds the plot columns: rows pass every level filter, then each
// selected level of the active segment column becomes one group, averaged
// per x value and sorted by x. Levels are walked in sorted order so output
// and color assignment are deterministic. A level with no matching rows
// contributes an empty group.
func (t *LineTab) compute(segment, metric string, active map[string][]string) (xs, ys []float64, series, colors []string) {
	xCol, _ := t.src.Numbers(t.xAxis)
	yCol, _ := t.src.Numbers(metric)
	segCol, _ := t.src.Strings(segment)

	keep := make([]bool, t.src.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for col, allowed := range active {
		vals, err := t.src.Strings(col)
		if err != nil {
			continue
		}
		set := make(map[string]struct{}, len(allowed))
		for _, v := range allowed {
			set[v] = struct{}{}
		}
		for i, v := range vals {
			if _, ok := set[v]; !ok {
				keep[i] = false
			}
		}
	}

	levels := append([]string(nil), active[segment]...)
	sort.Strings(levels)

	for li, level := range levels {
		sums := make(map[float64]float64)
		counts := make(map[float64]int)
		for i := range keep {
			if !keep[i] || segCol[i] != level {
				continue
			}
			sums[xCol[i]] += yCol[i]
			counts[xCol[i]]++
		}
		groupX := make([]float64, 0, len(sums))
		for x := range sums {
			groupX = append(groupX, x)
		}
		sort.Float64s(groupX)
		color := widgets.DefaultPalette[li%len(widgets.DefaultPalette)]
		for _, x := range groupX {
			xs = append(xs, x)
			ys = append(ys, sums[x]/float64(counts[x]))
			series = append(series, level)
			colors = append(colors, color)
		}
	}
	return xs, ys, series, colors
}

// Selection snapshots the current control state, used for preset saving.
func (t *LineTab) Selection() Selection {
	sel := Selection{
		Segment: t.segmentSel.Value(),
		Metric:  t.metricSel.Value(),
		Levels:  make(map[string][]string, len(t.filters)),
	}
	for col, g := range t.filters {
		sel.Levels[col] = g.Active()
	}
	return sel
}

// Apply sets several controls at once and recomputes a single time, matching
// the host's once-per-event policy for programmatic multi-field updates.
func (t *LineTab) Apply(sel Selection) error {
	if sel.Segment != "" && !t.segmentSel.SetValue(sel.Segment) && t.segmentSel.Value() != sel.Segment {
		return fmt.Errorf("line tab: preset segment %q is not a configured segment column", sel.Segment)
	}
	if sel.Metric != "" && !t.metricSel.SetValue(sel.Metric) && t.metricSel.Value() != sel.Metric {
		return fmt.Errorf("line tab: preset metric %q is not a configured metric column", sel.Metric)
	}
	for col, levels := range sel.Levels {
		if g, ok := t.filters[col]; ok {
			g.SetActive(levels)
		}
	}
	return t.OnControlChange()
}

func (t *LineTab) BuildLayout(view ControlView) widgets.Widget {
	selectors := widgets.VStack{Widgets: []widgets.Widget{
		view.Control("segment"),
		view.Control("metric"),
	}}
	filterWidgets := make([]widgets.Widget, 0, len(t.segments))
	for _, col := range t.segments {
		filterWidgets = append(filterWidgets, view.Control("filter:"+col))
	}
	plot := widgets.Pane{Title: t.Title() + " by " + t.xAxis, Child: t.chart}
	return widgets.HStack{
		Widgets: []widgets.Widget{selectors, plot, widgets.VStack{Widgets: filterWidgets}},
		Ratios:  []float64{0.20, 0.58, 0.22},
		Gap:     1,
	}
}

// InferView derives a usable default view from a frame when the config does
// not pin one: the first time column (else the first number column) becomes
// the x-axis, text columns become segment candidates and the remaining
// number columns become metrics.
func InferView(f *frame.Frame) (xAxis string, segments, metrics []string, err error) {
	for _, c := range f.Columns() {
		switch c.Kind() {
		case frame.Time:
			if xAxis == "" {
				xAxis = c.Name()
			}
		case frame.Text:
			segments = append(segments, c.Name())
		}
	}
	for _, c := range f.Columns() {
		if c.Kind() != frame.Number {
			continue
		}
		if xAxis == "" {
			xAxis = c.Name()
			continue
		}
		metrics = append(metrics, c.Name())
	}
	if xAxis == "" {
		return "", nil, nil, fmt.Errorf("infer view: no number or time column for the x-axis")
	}
	if len(segments) == 0 {
		return "", nil, nil, fmt.Errorf("infer view: no text column to segment by")
	}
	if len(metrics) == 0 {
		return "", nil, nil, fmt.Errorf("infer view: no number column left to plot")
	}
	return xAxis, segments, metrics, nil
}
