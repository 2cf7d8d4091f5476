package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/cfoot/internal/model"
)

// Config holds all cfoot configuration.
type Config struct {
	Profile    ProfileConfig    `toml:"profile"`
	History    HistoryConfig    `toml:"history"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
	Factors    FactorOverrides  `toml:"factors"`
}

// ProfileConfig holds the default user profile for new sessions.
type ProfileConfig struct {
	Name          string `toml:"name,omitempty"`
	Country       string `toml:"country,omitempty"`
	HouseholdSize int    `toml:"household_size,omitempty"`
}

// HistoryConfig holds history database settings.
type HistoryConfig struct {
	Path     string `toml:"path,omitempty"`
	AutoSave bool   `toml:"auto_save"` // save every estimate without --save
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// FactorOverrides allows user-defined emission factors per category.
type FactorOverrides struct {
	Transport   map[string]float64 `toml:"transport,omitempty"`
	Electricity map[string]float64 `toml:"electricity,omitempty"`
	Food        map[string]float64 `toml:"food,omitempty"`
	Shopping    map[string]float64 `toml:"shopping,omitempty"`
	Diets       map[string]float64 `toml:"diet,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfoot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cfoot")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	if p := os.Getenv("CFOOT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfoot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cfoot")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Factors.Validate(); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Profile.HouseholdSize < 0 {
		return cfg, fmt.Errorf("parsing config: household_size must be positive, got %d", cfg.Profile.HouseholdSize)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// HistoryPath returns the history database path from env var, config or
// the default data dir, in that order.
func HistoryPath(cfg Config) string {
	if p := os.Getenv("CFOOT_HISTORY_DB"); p != "" {
		return p
	}
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(DataDir(), "history.db")
}

// FactorTable returns the default factor table with the config's overrides applied.
func (c Config) FactorTable() (FactorTable, error) {
	return DefaultFactors().WithOverrides(c.Factors)
}

// UserProfile returns the configured profile. An unset household size
// defaults to a single person.
func (c Config) UserProfile() model.UserProfile {
	p := model.NewUserProfile(c.Profile.Name, c.Profile.Country)
	if c.Profile.HouseholdSize > 0 {
		p.HouseholdSize = c.Profile.HouseholdSize
	}
	return p
}
