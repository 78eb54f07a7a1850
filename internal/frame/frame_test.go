package frame

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		TimeColumn("date", []time.Time{
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		}),
		TextColumn("region", []string{"north", "south", "north"}),
		NumberColumn("revenue", []float64{10, 20, 30}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNewRejectsBadColumns(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error for empty frame")
	}
	if _, err := New(NumberColumn("", []float64{1})); err == nil {
		t.Fatalf("expected error for unnamed column")
	}
	if _, err := New(NumberColumn("a", []float64{1}), NumberColumn("a", []float64{2})); err == nil {
		t.Fatalf("expected error for duplicate column name")
	}
	_, err := New(NumberColumn("a", []float64{1, 2}), TextColumn("b", []string{"x"}))
	if err == nil {
		t.Fatalf("expected error for ragged columns")
	}
}

func TestResolve(t *testing.T) {
	f := testFrame(t)

	c, err := f.Resolve("revenue")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Kind() != Number {
		t.Fatalf("revenue kind = %s, want number", c.Kind())
	}

	_, err = f.Resolve("revnue")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}
	if !strings.Contains(err.Error(), `did you mean "revenue"`) {
		t.Fatalf("err = %v, want a suggestion for revenue", err)
	}

	_, err = f.Resolve("zzzzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("err = %v, want no suggestion for a distant name", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	f := testFrame(t)

	nums, err := f.Numbers("revenue")
	if err != nil {
		t.Fatalf("Numbers: %v", err)
	}
	if len(nums) != 3 || nums[1] != 20 {
		t.Fatalf("Numbers = %v", nums)
	}

	// Time columns expose Unix seconds through Numbers.
	secs, err := f.Numbers("date")
	if err != nil {
		t.Fatalf("Numbers(date): %v", err)
	}
	if secs[0] >= secs[1] || secs[1] >= secs[2] {
		t.Fatalf("date seconds not increasing: %v", secs)
	}

	if _, err := f.Numbers("region"); err == nil {
		t.Fatalf("Numbers on text column should fail")
	}
	if _, err := f.Strings("revenue"); err == nil {
		t.Fatalf("Strings on number column should fail")
	}
}

func TestLevels(t *testing.T) {
	f := testFrame(t)
	levels, err := f.Levels("region")
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if len(levels) != 2 || levels[0] != "north" || levels[1] != "south" {
		t.Fatalf("Levels = %v, want [north south]", levels)
	}
}

func TestAccessorsCopy(t *testing.T) {
	f := testFrame(t)
	nums, _ := f.Numbers("revenue")
	nums[0] = -1
	again, _ := f.Numbers("revenue")
	if again[0] != 10 {
		t.Fatalf("mutating the returned slice changed the frame")
	}
}
