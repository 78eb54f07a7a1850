package frame

import (
	"strings"
	"testing"
)

func TestFromCSVSniffsKinds(t *testing.T) {
	csv := strings.Join([]string{
		"date,region,revenue,note",
		"2026-01-01,north,10.5,ok",
		"2026-01-02,south,20,warm",
		"2026-01-03,north,30,12", // mixed cells stay text
	}, "\n")

	f, err := FromCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if f.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", f.NumRows())
	}
	want := map[string]Kind{"date": Time, "region": Text, "revenue": Number, "note": Text}
	for name, kind := range want {
		c, err := f.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", name, err)
		}
		if c.Kind() != kind {
			t.Fatalf("%s kind = %s, want %s", name, c.Kind(), kind)
		}
	}
}

func TestFromCSVTrimsWhitespace(t *testing.T) {
	f, err := FromCSV(strings.NewReader("a, b\n1, x\n"))
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if !f.Has("b") {
		t.Fatalf("columns = %v, want trimmed header b", f.Names())
	}
	strs, err := f.Strings("b")
	if err != nil {
		t.Fatalf("Strings: %v", err)
	}
	if strs[0] != "x" {
		t.Fatalf("cell = %q, want trimmed x", strs[0])
	}
}

func TestFromCSVMissingHeader(t *testing.T) {
	if _, err := FromCSV(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestFromCSVHeaderOnlyIsText(t *testing.T) {
	// Columns with no body rows cannot be sniffed numeric.
	f, err := FromCSV(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	c, _ := f.Resolve("a")
	if c.Kind() != Text {
		t.Fatalf("empty column kind = %s, want text", c.Kind())
	}
}
