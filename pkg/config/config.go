// Package config handles loading and saving cv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/chartview/config.yaml
//   - Data:   ~/.local/share/chartview/ (default export directory)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDir = "chartview"

// ChartConfig holds the text drawn around the chart.
type ChartConfig struct {
	Title       string `yaml:"title,omitempty"`
	SeriesA     string `yaml:"series_a,omitempty"`     // Left axis, drawn as bars
	SeriesB     string `yaml:"series_b,omitempty"`     // Right axis, drawn as a line
	LabelHeader string `yaml:"label_header,omitempty"` // CSV/print header for the x labels
}

// DataConfig selects the dataset source.
type DataConfig struct {
	Path  string `yaml:"path,omitempty"`  // .csv, .json, .db/.sqlite; empty uses the sample data
	Table string `yaml:"table,omitempty"` // SQLite table name
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Mouse    *bool `yaml:"mouse,omitempty"`     // Wheel zoom and drag pan (default on)
	ShowHelp bool  `yaml:"show_help,omitempty"` // Start with the full help bar
}

// ExportConfig controls snapshot and CSV output.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Format string `yaml:"format,omitempty"` // csv, png, svg, sqlite, all
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Config is the top-level configuration for cv.
type Config struct {
	Chart  ChartConfig  `yaml:"chart,omitempty"`
	Data   DataConfig   `yaml:"data,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Chart: ChartConfig{
			Title:       "Orders and Payments",
			SeriesA:     "Number of orders",
			SeriesB:     "Payments",
			LabelHeader: "Date",
		},
		Data: DataConfig{
			Table: "points",
		},
		Export: ExportConfig{
			Dir:    DataDir(),
			Format: "png",
			Width:  960,
			Height: 480,
		},
	}
}

// MouseEnabled reports whether mouse input is on. It defaults to true.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}

// Validate checks values that would break rendering or export.
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.Format) {
	case "", "csv", "png", "svg", "sqlite", "all":
	default:
		return fmt.Errorf("export.format %q: want csv, png, svg, sqlite or all", c.Export.Format)
	}
	if c.Export.Width < 0 || c.Export.Height < 0 {
		return fmt.Errorf("export size %dx%d must not be negative", c.Export.Width, c.Export.Height)
	}
	return nil
}

// ConfigDir returns the XDG config directory for cv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// DataDir returns the XDG data directory for cv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appDir)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Missing keys keep their
// defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
