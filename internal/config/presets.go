package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Preset is a named selection snapshot for the line tab: the active segment
// column, the plotted metric and the checked levels per segment column.
type Preset struct {
	Name    string
	Segment string
	Metric  string
	Levels  map[string][]string
}

type rawPresetFile struct {
	Version int                  `toml:"version"`
	Preset  map[string]rawPreset `toml:"preset"`
}

type rawPreset struct {
	Segment string              `toml:"segment"`
	Metric  string              `toml:"metric"`
	Levels  map[string][]string `toml:"levels"`
}

// PresetsPath returns the default preset file location.
func PresetsPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "segdash", "presets.toml")
}

// LoadPresets reads the preset file, returning presets sorted by name. A
// missing file is not an error.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var raw rawPresetFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	out := make([]Preset, 0, len(raw.Preset))
	for name, p := range raw.Preset {
		out = append(out, Preset{Name: name, Segment: p.Segment, Metric: p.Metric, Levels: p.Levels})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindPreset returns the named preset from a loaded list.
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// SavePreset merges one preset into the file, creating it if needed.
func SavePreset(path string, p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("save preset: name required")
	}
	existing, err := LoadPresets(path)
	if err != nil {
		return err
	}
	raw := rawPresetFile{Version: 1, Preset: make(map[string]rawPreset, len(existing)+1)}
	for _, e := range existing {
		raw.Preset[e.Name] = rawPreset{Segment: e.Segment, Metric: e.Metric, Levels: e.Levels}
	}
	raw.Preset[p.Name] = rawPreset{Segment: p.Segment, Metric: p.Metric, Levels: p.Levels}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir preset dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}
