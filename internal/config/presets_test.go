package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadPresetsMissingFile(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if presets != nil {
		t.Fatalf("presets = %v, want none", presets)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")

	p := Preset{
		Name:    "weekly",
		Segment: "region",
		Metric:  "revenue",
		Levels:  map[string][]string{"region": {"north", "south"}},
	}
	if err := SavePreset(path, p); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	got, ok := FindPreset(presets, "weekly")
	if !ok {
		t.Fatalf("weekly not found in %v", presets)
	}
	if got.Segment != p.Segment || got.Metric != p.Metric || !reflect.DeepEqual(got.Levels, p.Levels) {
		t.Fatalf("round trip = %+v, want %+v", got, p)
	}
}

func TestSavePresetMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")

	if err := SavePreset(path, Preset{Name: "b", Segment: "region", Metric: "units"}); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if err := SavePreset(path, Preset{Name: "a", Segment: "channel", Metric: "revenue"}); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	// Overwrite b in place.
	if err := SavePreset(path, Preset{Name: "b", Segment: "channel", Metric: "units"}); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("presets = %d, want 2", len(presets))
	}
	// Sorted by name.
	if presets[0].Name != "a" || presets[1].Name != "b" {
		t.Fatalf("order = %s,%s", presets[0].Name, presets[1].Name)
	}
	if presets[1].Segment != "channel" {
		t.Fatalf("b not overwritten: %+v", presets[1])
	}
}

func TestSavePresetRequiresName(t *testing.T) {
	if err := SavePreset(filepath.Join(t.TempDir(), "p.toml"), Preset{}); err == nil {
		t.Fatalf("expected error for unnamed preset")
	}
}

func TestFindPresetMiss(t *testing.T) {
	if _, ok := FindPreset([]Preset{{Name: "a"}}, "b"); ok {
		t.Fatalf("FindPreset matched a missing name")
	}
}
