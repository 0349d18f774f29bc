package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onecode/onecode/internal/app"
	"github.com/onecode/onecode/internal/config"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/pubsub"
	"github.com/onecode/onecode/internal/syntax"
	"github.com/onecode/onecode/internal/theme"
	"github.com/onecode/onecode/internal/tracing"
	"github.com/onecode/onecode/internal/workspace"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot leak into the editor as typed text.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debug     bool
	themeName string
)

var rootCmd = &cobra.Command{
	Use:     "onecode [files...]",
	Short:   "A terminal source code editor",
	Long:    `A terminal source code editor with syntax highlighting, a line-number gutter, a minimap, search and language-aware editing assists.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/onecode/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write a debug log to debug.log")
	rootCmd.Flags().StringVarP(&themeName, "theme", "t", "",
		"theme for this session: dark or light")
}

// configPath returns the config file in use: --config, or the default
// location.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig reads path over the defaults. A missing file is created from
// the default template first.
func loadConfig(path string) (config.Config, error) {
	v := viper.New()
	setDefaults(v, config.Defaults())

	if path == "" {
		var cfg config.Config
		if err := v.Unmarshal(&cfg); err != nil {
			return config.Config{}, fmt.Errorf("decoding defaults: %w", err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.WriteDefaultConfig(path); err != nil {
			log.Warn(log.CatConfig, "continuing without a config file", "error", err)
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	cfg.Tracing.FilePath = expandHome(cfg.Tracing.FilePath)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("theme", d.Theme)
	v.SetDefault("font_size", d.FontSize)
	v.SetDefault("font_family", d.FontFamily)
	v.SetDefault("tab_size", d.TabSize)
	v.SetDefault("word_wrap", d.WordWrap)
	v.SetDefault("show_minimap", d.ShowMinimap)
	v.SetDefault("show_line_numbers", d.ShowLineNumbers)
	v.SetDefault("auto_save", d.AutoSave)
	v.SetDefault("auto_save_interval", d.AutoSaveInterval)
	v.SetDefault("recent_files", []string{})
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func runApp(cmd *cobra.Command, args []string) error {
	if env := os.Getenv("ONECODE_DEBUG"); debug || env != "" {
		cleanup, err := log.InitWithTeaLog("debug.log", "onecode", log.ParseLevel(env))
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	path := configPath()
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatApp, "tracing shutdown", err)
		}
	}()

	dark, light, err := cfg.Themes()
	if err != nil {
		return fmt.Errorf("invalid colors: %w", err)
	}
	themes := theme.NewManager(cfg.ActiveTheme()).WithVariants(dark, light)

	broker := pubsub.NewBroker[workspace.FileEvent]()
	defer broker.Close()
	watcher, err := workspace.NewWatcher(broker, workspace.DefaultDebounce)
	if err != nil {
		// the editor works without external change detection
		log.Warn(log.CatWorkspace, "file watcher unavailable", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
	}

	opts := app.Options{
		Config:     cfg,
		ConfigPath: path,
		Files:      args,
		Themes:     themes,
		Cache:      syntax.NewTokenCache(),
		Watcher:    watcher,
	}
	if watcher != nil {
		opts.Events = broker
	}
	model := app.New(opts)

	log.Info(log.CatApp, "starting", "version", version, "files", len(args), "theme", cfg.Theme)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// the final model holds the tabs opened while running
	if m, ok := final.(app.Model); ok {
		model = m
	}
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
