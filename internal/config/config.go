// Package config provides the editor settings, their defaults and their
// persistence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/theme"
	"github.com/onecode/onecode/internal/tracing"
)

// MaxRecentFiles bounds the recent files list.
const MaxRecentFiles = 10

// Config holds all settings of the editor.
type Config struct {
	Theme      string `mapstructure:"theme"`       // "dark" (default) or "light"
	FontSize   int    `mapstructure:"font_size"`   // kept for the GUI front end; the terminal ignores it
	FontFamily string `mapstructure:"font_family"` // kept for the GUI front end; the terminal ignores it
	TabSize    int    `mapstructure:"tab_size"`    // spaces per indent level

	WordWrap        bool `mapstructure:"word_wrap"`
	ShowMinimap     bool `mapstructure:"show_minimap"`
	ShowLineNumbers bool `mapstructure:"show_line_numbers"`

	AutoSave         bool          `mapstructure:"auto_save"`          // periodically save modified files that have a path
	AutoSaveInterval time.Duration `mapstructure:"auto_save_interval"` // e.g. "30s"

	RecentFiles []string `mapstructure:"recent_files"` // most recent first

	Colors  ColorsConfig   `mapstructure:"colors"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// ColorsConfig overrides individual theme roles, per variant.
// Keys are role names such as "keyword" or "current_line"; values are hex
// colors.
type ColorsConfig struct {
	Dark  map[string]string `mapstructure:"dark"`
	Light map[string]string `mapstructure:"light"`
}

// Defaults returns the default settings.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Theme:            "dark",
		FontSize:         11,
		FontFamily:       "Consolas",
		TabSize:          4,
		WordWrap:         false,
		ShowMinimap:      true,
		ShowLineNumbers:  true,
		AutoSave:         true,
		AutoSaveInterval: 30 * time.Second,
		Tracing:          tr,
	}
}

// DefaultConfigPath returns ~/.config/onecode/config.yaml, or "" without a
// home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "onecode", "config.yaml")
}

// DefaultTracesFilePath returns ~/.config/onecode/traces/traces.jsonl, or ""
// without a home directory.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "onecode", "traces", "traces.jsonl")
}

// Validate checks every section and joins the problems found.
func Validate(c Config) error {
	var errs []error
	if _, ok := theme.ByName(c.Theme); !ok {
		errs = append(errs, fmt.Errorf("theme must be \"dark\" or \"light\", got %q", c.Theme))
	}
	if c.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size must be positive, got %d", c.FontSize))
	}
	if c.TabSize < 1 || c.TabSize > 16 {
		errs = append(errs, fmt.Errorf("tab_size must be between 1 and 16, got %d", c.TabSize))
	}
	if c.AutoSave && c.AutoSaveInterval < time.Second {
		errs = append(errs, fmt.Errorf("auto_save_interval must be at least 1s, got %s", c.AutoSaveInterval))
	}
	if _, _, err := c.Themes(); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks the tracing section. Empty values use defaults.
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}
	switch tr.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
	}
	if tr.Enabled {
		if tr.Exporter == tracing.ExporterFile && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == tracing.ExporterOTLP && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// Themes returns the dark and light themes with the configured color
// overrides applied.
func (c Config) Themes() (dark, light theme.Theme, err error) {
	dark, err = theme.Dark.WithOverrides(c.Colors.Dark)
	if err != nil {
		return theme.Dark, theme.Light, fmt.Errorf("colors.dark: %w", err)
	}
	light, err = theme.Light.WithOverrides(c.Colors.Light)
	if err != nil {
		return theme.Dark, theme.Light, fmt.Errorf("colors.light: %w", err)
	}
	return dark, light, nil
}

// ActiveTheme returns the configured theme with overrides applied. Unknown
// names fall back to dark.
func (c Config) ActiveTheme() theme.Theme {
	dark, light, err := c.Themes()
	if err != nil {
		log.Warn(log.CatConfig, "ignoring color overrides", "error", err)
	}
	if strings.EqualFold(c.Theme, light.Name()) {
		return light
	}
	return dark
}

// AddRecent returns files with path moved to the front, without
// duplicates, trimmed to MaxRecentFiles.
func AddRecent(files []string, path string) []string {
	out := make([]string, 0, MaxRecentFiles)
	out = append(out, path)
	for _, f := range files {
		if f != path && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out[:min(len(out), MaxRecentFiles)]
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# onecode configuration

# Color theme, dark or light (ctrl+t toggles and saves it here)
theme: dark

# Font settings, used by graphical front ends
font_size: 11
font_family: Consolas

# Spaces inserted per indent level (tabs are never inserted)
tab_size: 4

word_wrap: false
show_minimap: true
show_line_numbers: true

# Save modified files that have a path every auto_save_interval
auto_save: true
auto_save_interval: 30s

# Most recently opened files, newest first (maintained by onecode)
recent_files: []

# Override individual theme colors
# colors:
#   dark:
#     keyword: "#FF79C6"
#     current_line: "#303030"
#   light:
#     comment: "#6A737D"

# Tracing of highlighting, search, open and save
# tracing:
#   enabled: true
#   exporter: file          # none, file, stdout or otlp
#   file_path: ~/.config/onecode/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default config template to configPath,
// creating its directory.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
