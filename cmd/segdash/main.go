package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"segdash/core"
	"segdash/internal/config"
	"segdash/internal/export"
	"segdash/internal/frame"
	"segdash/internal/store"
	"segdash/tabs"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := store.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()
	repo := store.NewDatasetRepo(db)

	src, name, err := loadDataset(ctx, repo)
	if err != nil {
		log.Fatalf("%v", err)
	}

	xAxis, segments, metrics := cfg.View.XAxis, cfg.View.Segments, cfg.View.Metrics
	if xAxis == "" {
		xAxis, segments, metrics, err = tabs.InferView(src)
		if err != nil {
			log.Fatalf("dataset %s: %v", name, err)
		}
	}

	line := tabs.NewLine(src, xAxis, segments, metrics)
	host, err := tabs.Mount(line)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.View.Preset != "" {
		presets, err := config.LoadPresets(config.PresetsPath())
		if err != nil {
			log.Fatalf("presets: %v", err)
		}
		p, ok := config.FindPreset(presets, cfg.View.Preset)
		if !ok {
			log.Fatalf("presets: %q not found in %s", cfg.View.Preset, config.PresetsPath())
		}
		if err := line.Apply(tabs.Selection{Segment: p.Segment, Metric: p.Metric, Levels: p.Levels}); err != nil {
			log.Fatalf("presets: %v", err)
		}
	}

	m := core.NewModel([]core.Tab{host}, defaultKeys(1))
	m.OnExport = func(m *core.Model) tea.Cmd {
		path := filepath.Join(cfg.Export.Dir, exportName(name))
		sel := line.Selection()
		err := export.PNG(line.Container(), line.TimeX(), name+" by "+sel.Segment, line.XAxis(), sel.Metric, path)
		if err != nil {
			return core.ErrorCmd(err)
		}
		return core.StatusCmd("Exported " + path)
	}
	m.OnSavePreset = func(m *core.Model) tea.Cmd {
		sel := line.Selection()
		p := config.Preset{Name: "last", Segment: sel.Segment, Metric: sel.Metric, Levels: sel.Levels}
		if err := config.SavePreset(config.PresetsPath(), p); err != nil {
			return core.ErrorCmd(err)
		}
		return core.StatusCmd("Preset saved: last")
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// loadDataset imports the CSV named on the command line, or falls back to
// the most recently imported dataset.
func loadDataset(ctx context.Context, repo *store.DatasetRepo) (*frame.Frame, string, error) {
	if len(os.Args) > 1 {
		path := os.Args[1]
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		src, err := frame.FromCSV(f)
		if err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := repo.Import(ctx, name, src); err != nil {
			return nil, "", err
		}
		return src, name, nil
	}

	ds, err := repo.Latest(ctx)
	if errors.Is(err, store.ErrNoDatasets) {
		return nil, "", fmt.Errorf("no dataset imported yet; run: segdash <file.csv>")
	}
	if err != nil {
		return nil, "", err
	}
	src, err := repo.Load(ctx, ds.ID)
	if err != nil {
		return nil, "", err
	}
	return src, ds.Name, nil
}

func exportName(dataset string) string {
	return dataset + ".png"
}

func defaultKeys(tabCount int) *core.KeyRegistry {
	reg := core.NewKeyRegistry([]core.KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"e"}, Action: "export", Description: "export png", Scopes: []string{"*"}},
		{Keys: []string{"S"}, Action: "save-preset", Description: "save preset", Scopes: []string{"*"}},
	})
	for i := 1; i <= tabCount; i++ {
		reg.Register(core.KeyBinding{
			Keys:   []string{fmt.Sprintf("%d", i)},
			Action: fmt.Sprintf("switch-tab-%d", i),
			Scopes: []string{"*"},
		})
	}
	return reg
}
