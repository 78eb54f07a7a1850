package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	View     ViewConfig
	Export   ExportConfig
}

// DatabaseConfig holds sqlite settings for the dataset store.
type DatabaseConfig struct {
	Path string
}

// ViewConfig pins the line tab's columns. Empty values mean "infer from the
// dataset".
type ViewConfig struct {
	XAxis    string `mapstructure:"x_axis"`
	Segments []string
	Metrics  []string
	Preset   string
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	Dir string
}

// Load reads configuration from file and env. Env var overrides use prefix
// SEGDASH_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "segdash", "segdash.db"))
	v.SetDefault("view.x_axis", "")
	v.SetDefault("view.segments", []string{})
	v.SetDefault("view.metrics", []string{})
	v.SetDefault("view.preset", "")
	v.SetDefault("export.dir", ".")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SEGDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "segdash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SEGDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("SEGDASH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "segdash", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("view.x_axis", cfg.View.XAxis)
	v.Set("view.segments", cfg.View.Segments)
	v.Set("view.metrics", cfg.View.Metrics)
	v.Set("view.preset", cfg.View.Preset)
	v.Set("export.dir", cfg.Export.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
