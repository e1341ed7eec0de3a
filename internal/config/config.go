// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	UI      UIConfig      `mapstructure:"ui"`
}

// JournalConfig holds the user settings consumed by the analytics core.
type JournalConfig struct {
	// Commission charged per unit; when positive it supersedes the flat
	// commission recorded on individual trades.
	CommissionPerUnit float64 `mapstructure:"commission_per_unit"`
	// Display timezone offset in hours from UTC. Date and time-of-day
	// filters evaluate on this wall clock.
	TimezoneOffsetHours float64 `mapstructure:"timezone_offset_hours"`
	// Instrument point-value multipliers by symbol; unlisted symbols
	// default to 1.
	Multipliers  map[string]float64 `mapstructure:"multipliers"`
	DatabasePath string             `mapstructure:"database_path"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradejournal"
	}
	return filepath.Join(home, ".config", "tradejournal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("journal.commission_per_unit", 0.0)
	v.SetDefault("journal.timezone_offset_hours", 0.0)
	v.SetDefault("journal.database_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADEJOURNAL_DB"); v != "" {
		cfg.Journal.DatabasePath = v
	}
	if v := os.Getenv("TRADEJOURNAL_COMMISSION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Journal.CommissionPerUnit = f
		}
	}
	if v := os.Getenv("TRADEJOURNAL_TZ_OFFSET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Journal.TimezoneOffsetHours = f
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.CommissionPerUnit < 0 {
		return fmt.Errorf("commission_per_unit must be non-negative")
	}
	if c.Journal.TimezoneOffsetHours < -12 || c.Journal.TimezoneOffsetHours > 14 {
		return fmt.Errorf("timezone_offset_hours must be between -12 and 14")
	}
	for symbol, mult := range c.Journal.Multipliers {
		if mult <= 0 {
			return fmt.Errorf("multiplier for %s must be positive", symbol)
		}
	}
	return nil
}

// Multiplier returns the instrument multiplier lookup for the analytics
// core. Unlisted symbols resolve to 1.
func (c *Config) Multiplier(symbol string) float64 {
	if m, ok := c.Journal.Multipliers[symbol]; ok {
		return m
	}
	return 1
}
