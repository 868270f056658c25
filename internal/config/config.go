// ABOUTME: Configuration loading and first-run file creation
// ABOUTME: Reads config.toml from the XDG config directory with defaults for absent fields
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads the configuration from the standard location, creating a
// default file on first run. An unreadable or invalid file falls back
// to defaults rather than failing; a config typo should not keep the
// player from starting.
func Load() *Config {
	path := configPath()

	if _, err := os.Stat(path); err == nil {
		cfg, err := LoadFrom(path)
		if err == nil {
			return cfg
		}
		log.Printf("Invalid config %s: %v (using defaults)", path, err)
		cfg = &Config{}
		cfg.ApplyDefaults()
		return cfg
	}

	cfg := &Config{}
	cfg.ApplyDefaults()
	writeDefault(path, cfg)
	return cfg
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// configPath resolves $XDG_CONFIG_HOME/gatto/config.toml, defaulting
// XDG_CONFIG_HOME to ~/.config.
func configPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "gatto-config.toml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gatto", "config.toml")
}

// writeDefault persists the default config so users have a file to
// edit. Failure is logged, not fatal.
func writeDefault(path string, cfg *Config) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Failed to create config directory: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Failed to write default config: %v", err)
		return
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		log.Printf("Failed to encode default config: %v", err)
	}
}
