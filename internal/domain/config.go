package domain

import "time"

// Defaults for tunable behavior.
const (
	DefaultDebounceMS    = 1000 // Steady-state save debounce window
	DefaultGateSeconds   = 60   // Commitment window for activating a task
	DefaultLogLevel      = "info"
	DefaultMaxSubtasks   = 5 // Upper bound on AI-decomposed subtasks
	DefaultWatchInterval = 3 // Seconds between long-poll watch requests
)

// ConfigFileName is the configuration file name under the config directory.
const ConfigFileName = "config.toml"

// Config represents the application configuration.
type Config struct {
	Remote RemoteConfig `toml:"remote"`
	AI     AIConfig     `toml:"ai"`
	Sync   SyncConfig   `toml:"sync"`
	Gate   GateConfig   `toml:"gate"`
	Log    LogConfig    `toml:"log"`
}

// RemoteConfig holds remote store settings from the [remote] section.
// An empty URL means the local JSON store is the only backend.
type RemoteConfig struct {
	URL           string `toml:"url,omitempty"`
	Token         string `toml:"token,omitempty"`
	WatchInterval int    `toml:"watch_interval,omitempty"` // Seconds between watch polls
}

// SyncConfig holds document sync settings from the [sync] section.
type SyncConfig struct {
	DebounceMS int `toml:"debounce_ms,omitempty"`
}

// GateConfig holds commitment gate settings from the [gate] section.
type GateConfig struct {
	WindowSeconds int `toml:"window_seconds,omitempty"`
}

// AIConfig holds task decomposition settings from the [ai] section.
type AIConfig struct {
	URL         string `toml:"url,omitempty"`
	Token       string `toml:"token,omitempty"`
	Model       string `toml:"model,omitempty"`
	MaxSubtasks int    `toml:"max_subtasks,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{WatchInterval: DefaultWatchInterval},
		Sync:   SyncConfig{DebounceMS: DefaultDebounceMS},
		Gate:   GateConfig{WindowSeconds: DefaultGateSeconds},
		AI:     AIConfig{MaxSubtasks: DefaultMaxSubtasks},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Debounce returns the steady-state save debounce window.
func (c *Config) Debounce() time.Duration {
	ms := c.Sync.DebounceMS
	if ms <= 0 {
		ms = DefaultDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

// GateWindow returns the commitment window duration.
func (c *Config) GateWindow() time.Duration {
	s := c.Gate.WindowSeconds
	if s <= 0 {
		s = DefaultGateSeconds
	}
	return time.Duration(s) * time.Second
}

// WatchInterval returns the delay between remote watch polls.
func (c *Config) WatchInterval() time.Duration {
	s := c.Remote.WatchInterval
	if s <= 0 {
		s = DefaultWatchInterval
	}
	return time.Duration(s) * time.Second
}
