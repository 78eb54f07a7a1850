package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Date layouts tried during column sniffing, most specific first.
var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2/01/2006",
}

// FromCSV reads a headered CSV stream into a Frame. Each column's kind is
// sniffed: a column where every cell parses as a float becomes Number, one
// where every cell matches a single date layout becomes Time, anything else
// is Text.
func FromCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header row")
	}
	header := records[0]
	body := records[1:]

	cols := make([]Column, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, len(body))
		for r, rec := range body {
			cells[r] = strings.TrimSpace(rec[i])
		}
		cols = append(cols, sniffColumn(name, cells))
	}
	return New(cols...)
}

func sniffColumn(name string, cells []string) Column {
	if nums, ok := parseNumbers(cells); ok {
		return Column{name: name, kind: Number, nums: nums}
	}
	if secs, ok := parseTimes(cells); ok {
		return Column{name: name, kind: Time, nums: secs}
	}
	return Column{name: name, kind: Text, strs: append([]string(nil), cells...)}
}

func parseNumbers(cells []string) ([]float64, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseTimes(cells []string) ([]float64, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	for _, layout := range csvTimeLayouts {
		out := make([]float64, len(cells))
		ok := true
		for i, c := range cells {
			t, err := time.Parse(layout, c)
			if err != nil {
				ok = false
				break
			}
			out[i] = float64(t.Unix())
		}
		if ok {
			return out, true
		}
	}
	return nil, false
}
