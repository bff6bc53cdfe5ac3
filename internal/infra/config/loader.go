// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrct/chrct/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Loader loads configuration from a TOML file in the config directory.
type Loader struct {
	configDir string
}

// NewLoader creates a new Loader for the default config directory
// ($XDG_CONFIG_HOME/chrct, falling back to ~/.config/chrct).
func NewLoader() *Loader {
	return &Loader{configDir: defaultConfigDir()}
}

// NewLoaderWithDir creates a new Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(configDir string) *Loader {
	return &Loader{configDir: configDir}
}

// defaultConfigDir returns the default config directory.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.ConfigDir(configHome)
}

// Dir returns the config directory this loader reads from.
func (l *Loader) Dir() string {
	return l.configDir
}

// Load returns the configuration merged over defaults. A missing file is not
// an error; defaults are returned.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()
	if l.configDir == "" {
		return cfg, nil
	}

	path := filepath.Join(l.configDir, domain.ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	loaded := domain.NewDefaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return merge(cfg, loaded), nil
}

// merge fills zero-valued fields of loaded from the defaults.
func merge(def, loaded *domain.Config) *domain.Config {
	if loaded.Remote.WatchInterval <= 0 {
		loaded.Remote.WatchInterval = def.Remote.WatchInterval
	}
	if loaded.Sync.DebounceMS <= 0 {
		loaded.Sync.DebounceMS = def.Sync.DebounceMS
	}
	if loaded.Gate.WindowSeconds <= 0 {
		loaded.Gate.WindowSeconds = def.Gate.WindowSeconds
	}
	if loaded.AI.MaxSubtasks <= 0 {
		loaded.AI.MaxSubtasks = def.AI.MaxSubtasks
	}
	if loaded.Log.Level == "" {
		loaded.Log.Level = def.Log.Level
	}
	return loaded
}
