// Package frame holds the columnar data model: an immutable source Frame
// loaded from CSV or the dataset store, and the mutable Container that a
// tab's plots observe.
package frame

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
)

// Kind classifies a column's cell type.
type Kind int

const (
	Number Kind = iota
	Time
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Time:
		return "time"
	case Text:
		return "text"
	}
	return "unknown"
}

// ErrUnknownColumn is wrapped by Resolve failures.
var ErrUnknownColumn = errors.New("unknown column")

// Column is one named, typed column. Number and Time columns store float64
// values (Time as Unix seconds) so the plotting path is uniformly numeric.
type Column struct {
	name string
	kind Kind
	nums []float64
	strs []string
}

func NumberColumn(name string, values []float64) Column {
	return Column{name: name, kind: Number, nums: append([]float64(nil), values...)}
}

func TimeColumn(name string, values []time.Time) Column {
	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = float64(v.Unix())
	}
	return Column{name: name, kind: Time, nums: nums}
}

// UnixTimeColumn builds a Time column from raw Unix seconds. Used by the
// dataset store when rehydrating a frame.
func UnixTimeColumn(name string, seconds []float64) Column {
	return Column{name: name, kind: Time, nums: append([]float64(nil), seconds...)}
}

func TextColumn(name string, values []string) Column {
	return Column{name: name, kind: Text, strs: append([]string(nil), values...)}
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }

func (c Column) Len() int {
	if c.kind == Text {
		return len(c.strs)
	}
	return len(c.nums)
}

// Numbers returns a copy of the numeric cells (Unix seconds for Time columns).
func (c Column) Numbers() []float64 {
	return append([]float64(nil), c.nums...)
}

// Strings returns a copy of the text cells.
func (c Column) Strings() []string {
	return append([]string(nil), c.strs...)
}

// Frame is the immutable source table. All columns share one row count.
type Frame struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New validates that the columns have unique names and a consistent length.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, errors.New("frame: at least one column required")
	}
	byName := make(map[string]int, len(cols))
	rows := cols[0].Len()
	for i, c := range cols {
		if c.name == "" {
			return nil, fmt.Errorf("frame: column %d has no name", i)
		}
		if _, dup := byName[c.name]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c.name)
		}
		if c.Len() != rows {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.name, c.Len(), rows)
		}
		byName[c.name] = i
	}
	return &Frame{cols: cols, byName: byName, rows: rows}, nil
}

func (f *Frame) NumRows() int { return f.rows }

func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.name
	}
	return out
}

// Columns returns the columns in declaration order.
func (f *Frame) Columns() []Column {
	return append([]Column(nil), f.cols...)
}

func (f *Frame) Has(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Resolve looks up a column by name. A miss is a configuration error and
// includes the nearest existing name when one is plausibly a typo.
func (f *Frame) Resolve(name string) (Column, error) {
	if i, ok := f.byName[name]; ok {
		return f.cols[i], nil
	}
	if near := f.nearest(name); near != "" {
		return Column{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownColumn, name, near)
	}
	return Column{}, fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

// Numbers resolves a Number or Time column and returns its numeric cells.
func (f *Frame) Numbers(name string) ([]float64, error) {
	c, err := f.Resolve(name)
	if err != nil {
		return nil, err
	}
	if c.kind == Text {
		return nil, fmt.Errorf("column %q is text, want number or time", name)
	}
	return c.Numbers(), nil
}

// Strings resolves a Text column and returns its cells.
func (f *Frame) Strings(name string) ([]string, error) {
	c, err := f.Resolve(name)
	if err != nil {
		return nil, err
	}
	if c.kind != Text {
		return nil, fmt.Errorf("column %q is %s, want text", name, c.kind)
	}
	return c.Strings(), nil
}

// Levels returns the sorted distinct values of a text column.
func (f *Frame) Levels(name string) ([]string, error) {
	strs, err := f.Strings(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(strs))
	out := make([]string, 0, len(strs))
	for _, s := range strs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func (f *Frame) nearest(name string) string {
	best := ""
	bestDist := -1
	for candidate := range f.byName {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	// A suggestion further away than half the name is noise.
	if bestDist < 0 || bestDist > max(1, len(name)/2) {
		return ""
	}
	return best
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
