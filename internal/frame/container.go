package frame

import "fmt"

// Container is the single shared mutable structure a tab's plots read and
// its control callbacks write. It holds parallel plot columns: x, y, the
// series label each point belongs to, and the series color. A tab creates
// exactly one Container and never replaces it; Replace overwrites the
// contents in place so existing plot bindings stay valid.
type Container struct {
	x      []float64
	y      []float64
	series []string
	colors []string
	rev    uint64
}

func NewContainer() *Container {
	return &Container{}
}

// Replace overwrites the container contents. All four columns must have the
// same length. The revision counter bumps on every call so observers can
// detect mutation without comparing contents.
func (c *Container) Replace(x, y []float64, series, colors []string) error {
	n := len(x)
	if len(y) != n || len(series) != n || len(colors) != n {
		return fmt.Errorf("container: column lengths differ (%d/%d/%d/%d)", len(x), len(y), len(series), len(colors))
	}
	c.x = append(c.x[:0], x...)
	c.y = append(c.y[:0], y...)
	c.series = append(c.series[:0], series...)
	c.colors = append(c.colors[:0], colors...)
	c.rev++
	return nil
}

func (c *Container) Len() int { return len(c.x) }

// Rev returns the mutation counter, starting at zero for an empty container.
func (c *Container) Rev() uint64 { return c.rev }

// Snapshot returns copies of the four plot columns.
func (c *Container) Snapshot() (x, y []float64, series, colors []string) {
	return append([]float64(nil), c.x...),
		append([]float64(nil), c.y...),
		append([]string(nil), c.series...),
		append([]string(nil), c.colors...)
}

// Group is one series worth of points, already sorted by x by the producer.
type Group struct {
	Name  string
	Color string
	X     []float64
	Y     []float64
}

// Groups splits the container into its contiguous series runs. Callbacks
// write each series as one contiguous block, so a label change marks a new
// group.
func (c *Container) Groups() []Group {
	var out []Group
	for i := 0; i < len(c.series); {
		j := i
		for j < len(c.series) && c.series[j] == c.series[i] {
			j++
		}
		out = append(out, Group{
			Name:  c.series[i],
			Color: c.colors[i],
			X:     append([]float64(nil), c.x[i:j]...),
			Y:     append([]float64(nil), c.y[i:j]...),
		})
		i = j
	}
	return out
}
