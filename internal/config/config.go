// Package config provides Viper-based configuration loading for the inventory engine.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CatalogConfig locates the item catalog.
type CatalogConfig struct {
	// Path is the catalog YAML file.
	Path string `mapstructure:"path"`
	// IconsDir is the directory icon paths in the catalog are resolved against.
	// Empty means the directory containing Path.
	IconsDir string `mapstructure:"icons_dir"`
}

// ScannerConfig holds page scanner settings.
type ScannerConfig struct {
	// Workers is the default number of page scan workers.
	Workers int `mapstructure:"workers"`
}

// TimingConfig holds every poll window, deadline and settle delay used by the
// interaction loops.
type TimingConfig struct {
	PollInterval        time.Duration `mapstructure:"poll_interval"`
	OpenWait            time.Duration `mapstructure:"open_wait"`
	CloseWindow         time.Duration `mapstructure:"close_window"`
	CloseDeadline       time.Duration `mapstructure:"close_deadline"`
	HoverWindow         time.Duration `mapstructure:"hover_window"`
	SelectDeadline      time.Duration `mapstructure:"select_deadline"`
	TooltipSettle       time.Duration `mapstructure:"tooltip_settle"`
	TransferWindow      time.Duration `mapstructure:"transfer_window"`
	TransferDeadline    time.Duration `mapstructure:"transfer_deadline"`
	TransferAllWindow   time.Duration `mapstructure:"transfer_all_window"`
	TransferAllDeadline time.Duration `mapstructure:"transfer_all_deadline"`
	TransferRowSettle   time.Duration `mapstructure:"transfer_row_settle"`
	SearchSettle        time.Duration `mapstructure:"search_settle"`
	DropSettle          time.Duration `mapstructure:"drop_settle"`
	DropAllSettle       time.Duration `mapstructure:"drop_all_settle"`
	FolderSettle        time.Duration `mapstructure:"folder_settle"`
}

// KeysConfig holds the game's action mappings used by the engine.
type KeysConfig struct {
	Drop     string `mapstructure:"drop"`
	Transfer string `mapstructure:"transfer"`
}

// UIConfig holds game user settings that change how the UI responds.
type UIConfig struct {
	// Variant is the inventory the session drives by default: "local" or "remote".
	Variant string `mapstructure:"variant"`
	// TooltipsEnabled mirrors the game's bEnableInventoryItemTooltips setting.
	TooltipsEnabled bool `mapstructure:"tooltips_enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Scanner ScannerConfig `mapstructure:"scanner"`
	Timing  TimingConfig  `mapstructure:"timing"`
	Keys    KeysConfig    `mapstructure:"keys"`
	UI      UIConfig      `mapstructure:"ui"`
}

// DefaultTiming returns the timing table the interaction loops were tuned against.
//
// Postcondition: the returned value passes validation.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		PollInterval:        5 * time.Millisecond,
		OpenWait:            5 * time.Second,
		CloseWindow:         5 * time.Second,
		CloseDeadline:       60 * time.Second,
		HoverWindow:         2 * time.Second,
		SelectDeadline:      15 * time.Second,
		TooltipSettle:       100 * time.Millisecond,
		TransferWindow:      5 * time.Second,
		TransferDeadline:    10 * time.Second,
		TransferAllWindow:   3 * time.Second,
		TransferAllDeadline: 0,
		TransferRowSettle:   250 * time.Millisecond,
		SearchSettle:        100 * time.Millisecond,
		DropSettle:          100 * time.Millisecond,
		DropAllSettle:       200 * time.Millisecond,
		FolderSettle:        500 * time.Millisecond,
	}
}

// DefaultKeys returns the stock game action mappings.
func DefaultKeys() KeysConfig {
	return KeysConfig{Drop: "o", Transfer: "t"}
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScanner(c.Scanner); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTiming(c.Timing); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateKeys(c.Keys); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateScanner(s ScannerConfig) error {
	if s.Workers < 1 || s.Workers > 36 {
		return fmt.Errorf("scanner.workers must be 1-36, got %d", s.Workers)
	}
	return nil
}

func validateTiming(t TimingConfig) error {
	var errs []string
	positive := map[string]time.Duration{
		"poll_interval":       t.PollInterval,
		"open_wait":           t.OpenWait,
		"close_window":        t.CloseWindow,
		"close_deadline":      t.CloseDeadline,
		"hover_window":        t.HoverWindow,
		"select_deadline":     t.SelectDeadline,
		"transfer_window":     t.TransferWindow,
		"transfer_deadline":   t.TransferDeadline,
		"transfer_all_window": t.TransferAllWindow,
	}
	for _, name := range []string{
		"poll_interval", "open_wait", "close_window", "close_deadline", "hover_window",
		"select_deadline", "transfer_window", "transfer_deadline", "transfer_all_window",
	} {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Sprintf("timing.%s must be > 0, got %s", name, positive[name]))
		}
	}
	if t.TransferAllDeadline < 0 {
		errs = append(errs, "timing.transfer_all_deadline must not be negative")
	}
	settles := []time.Duration{
		t.TooltipSettle, t.TransferRowSettle, t.SearchSettle, t.DropSettle, t.DropAllSettle, t.FolderSettle,
	}
	for _, d := range settles {
		if d < 0 {
			errs = append(errs, "timing settle delays must not be negative")
			break
		}
	}
	if t.CloseWindow > t.CloseDeadline && t.CloseDeadline > 0 {
		errs = append(errs, "timing.close_window must not exceed timing.close_deadline")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateKeys(k KeysConfig) error {
	var errs []string
	if k.Drop == "" {
		errs = append(errs, "keys.drop must not be empty")
	}
	if k.Transfer == "" {
		errs = append(errs, "keys.transfer must not be empty")
	}
	if k.Drop != "" && k.Drop == k.Transfer {
		errs = append(errs, "keys.drop and keys.transfer must differ")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateUI(u UIConfig) error {
	if u.Variant != "local" && u.Variant != "remote" {
		return fmt.Errorf("ui.variant must be one of [local, remote], got %q", u.Variant)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ASAINV_ prefix
	v.SetEnvPrefix("ASAINV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadDefaults returns the default configuration without reading any file.
//
// Postcondition: Returns a valid Config.
func LoadDefaults() (Config, error) {
	v := viper.New()
	setDefaults(v)
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("catalog.path", "assets/catalog.yaml")
	v.SetDefault("catalog.icons_dir", "")

	v.SetDefault("scanner.workers", 5)

	t := DefaultTiming()
	v.SetDefault("timing.poll_interval", t.PollInterval.String())
	v.SetDefault("timing.open_wait", t.OpenWait.String())
	v.SetDefault("timing.close_window", t.CloseWindow.String())
	v.SetDefault("timing.close_deadline", t.CloseDeadline.String())
	v.SetDefault("timing.hover_window", t.HoverWindow.String())
	v.SetDefault("timing.select_deadline", t.SelectDeadline.String())
	v.SetDefault("timing.tooltip_settle", t.TooltipSettle.String())
	v.SetDefault("timing.transfer_window", t.TransferWindow.String())
	v.SetDefault("timing.transfer_deadline", t.TransferDeadline.String())
	v.SetDefault("timing.transfer_all_window", t.TransferAllWindow.String())
	v.SetDefault("timing.transfer_all_deadline", t.TransferAllDeadline.String())
	v.SetDefault("timing.transfer_row_settle", t.TransferRowSettle.String())
	v.SetDefault("timing.search_settle", t.SearchSettle.String())
	v.SetDefault("timing.drop_settle", t.DropSettle.String())
	v.SetDefault("timing.drop_all_settle", t.DropAllSettle.String())
	v.SetDefault("timing.folder_settle", t.FolderSettle.String())

	k := DefaultKeys()
	v.SetDefault("keys.drop", k.Drop)
	v.SetDefault("keys.transfer", k.Transfer)

	v.SetDefault("ui.variant", "local")
	v.SetDefault("ui.tooltips_enabled", false)
}
