// Package config loads tugas settings from an optional YAML file and
// TUGAS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tugas/internal/deadline"
	"tugas/internal/logging"
)

const (
	appName   = "tugas"
	envPrefix = "TUGAS"
)

// Config holds every setting tugas reads at startup.
type Config struct {
	DataFile      string         `mapstructure:"data_file"`
	UrgentDays    int            `mapstructure:"urgent_days"`
	WarningDays   int            `mapstructure:"warning_days"`
	BarWindowDays int            `mapstructure:"bar_window_days"`
	NoColor       bool           `mapstructure:"no_color"`
	Log           logging.Config `mapstructure:"log"`
}

// Thresholds returns the urgency thresholds of c.
func (c *Config) Thresholds() deadline.Thresholds {
	return deadline.Thresholds{UrgentDays: c.UrgentDays, WarningDays: c.WarningDays}
}

// Validate rejects thresholds that cannot describe a warning window.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data_file must not be empty")
	}
	if c.UrgentDays < 0 {
		return fmt.Errorf("urgent_days must be >= 0, got %d", c.UrgentDays)
	}
	if c.WarningDays < c.UrgentDays {
		return fmt.Errorf("warning_days (%d) must be >= urgent_days (%d)", c.WarningDays, c.UrgentDays)
	}
	return nil
}

// Dir returns the directory holding config, data and log files.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, appName)
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir := Dir()
	v.SetDefault("data_file", filepath.Join(dir, "tugas.json"))
	v.SetDefault("urgent_days", deadline.DefaultUrgentDays)
	v.SetDefault("warning_days", deadline.DefaultWarningDays)
	v.SetDefault("bar_window_days", 0)
	v.SetDefault("no_color", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "tugas.log"))
	return v
}

// Load reads path (DefaultPath when empty). A missing file is not an error
// and leaves defaults plus environment overrides in effect.
func Load(path string) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
