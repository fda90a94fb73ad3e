package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all smartject configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath string `toml:"db_path,omitempty"`
	// Actor is the name recorded as the author of proposals and
	// negotiation messages created from this machine.
	Actor string `toml:"actor,omitempty"`
}

// ScheduleConfig holds milestone schedule defaults.
type ScheduleConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
	// DefaultTimelineMonths is used when a proposal's timeline text
	// contains no number.
	DefaultTimelineMonths float64 `toml:"default_timeline_months"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Schedule: ScheduleConfig{
			CurrencySymbol:        "$",
			DefaultTimelineMonths: 3,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartject")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smartject")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DBPath returns the configured database path, or the default under the
// user's data directory.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartject", "smartject.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "smartject", "smartject.db")
}

// Actor returns the configured actor name, falling back to the OS user.
func (c Config) Actor() string {
	if c.General.Actor != "" {
		return c.General.Actor
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
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

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
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
