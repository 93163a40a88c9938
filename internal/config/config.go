// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/wmdialog/internal/message"
)

// Default configuration values.
const (
	DefaultFont              = "-*-fixed-medium-r-normal-*-13-*-*-*-*-*-*-*"
	DefaultForeground        = "#222222"
	DefaultBackground        = "#eeeeee"
	DefaultBorder            = "#005577"
	DefaultHorizontalSpacing = 10
	DefaultVerticalSpacing   = 5
	DefaultTTYHorizontal     = 2
	DefaultTTYVertical       = 0
	DefaultVolume            = 80
)

// Config represents the wmdialog configuration.
type Config struct {
	Style    StyleConfig    `toml:"style"`
	Spacing  SpacingConfig  `toml:"spacing"`
	Behavior BehaviorConfig `toml:"behavior"`
	TTY      SpacingConfig  `toml:"tty"`
	Audio    AudioConfig    `toml:"audio"`
	DBus     DBusConfig     `toml:"dbus"`
}

// StyleConfig holds the font and colours of the dialog.
type StyleConfig struct {
	Font       string `toml:"font"`       // X logical font description
	Foreground string `toml:"foreground"` // "#rrggbb" or a colour name
	Background string `toml:"background"`
	Border     string `toml:"border"`
}

// SpacingConfig holds padding around the text.
type SpacingConfig struct {
	Horizontal int `toml:"horizontal"`
	Vertical   int `toml:"vertical"`
}

// BehaviorConfig holds dismissal and backend settings.
type BehaviorConfig struct {
	Timeout  Duration `toml:"timeout"`   // "5s", "5" (seconds) or "never"
	MaxLines int      `toml:"max_lines"` // Extra lines fold into the last one
	Backend  string   `toml:"backend"`   // "x11" or "tty"
	Display  string   `toml:"display"`   // X display, empty uses $DISPLAY
}

// AudioConfig holds the optional sound played when the dialog appears.
type AudioConfig struct {
	Sound  string `toml:"sound"`  // Empty disables sound
	Volume int    `toml:"volume"` // 0-100
}

// DBusConfig controls the session bus presence of each dialog.
type DBusConfig struct {
	Enabled bool `toml:"enabled"`
}

// Backend selects the display backend.
type Backend string

const (
	BackendX11 Backend = "x11"
	BackendTTY Backend = "tty"
)

// ValidBackends returns all valid backend values.
func ValidBackends() []Backend {
	return []Backend{BackendX11, BackendTTY}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Style: StyleConfig{
			Font:       DefaultFont,
			Foreground: DefaultForeground,
			Background: DefaultBackground,
			Border:     DefaultBorder,
		},
		Spacing: SpacingConfig{
			Horizontal: DefaultHorizontalSpacing,
			Vertical:   DefaultVerticalSpacing,
		},
		Behavior: BehaviorConfig{
			Timeout:  0,
			MaxLines: message.DefaultMaxLines,
			Backend:  string(BackendX11),
		},
		TTY: SpacingConfig{
			Horizontal: DefaultTTYHorizontal,
			Vertical:   DefaultTTYVertical,
		},
		Audio: AudioConfig{
			Volume: DefaultVolume,
		},
		DBus: DBusConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "wmdialog", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validBackend := false
	for _, b := range ValidBackends() {
		if c.Behavior.Backend == string(b) {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid backend %q, must be one of: %v", c.Behavior.Backend, ValidBackends())
	}

	if c.Spacing.Horizontal < 0 || c.Spacing.Vertical < 0 {
		return fmt.Errorf("spacing must not be negative, got %d/%d", c.Spacing.Horizontal, c.Spacing.Vertical)
	}
	if c.TTY.Horizontal < 0 || c.TTY.Vertical < 0 {
		return fmt.Errorf("tty spacing must not be negative, got %d/%d", c.TTY.Horizontal, c.TTY.Vertical)
	}

	if c.Behavior.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Behavior.Timeout.Duration())
	}
	if c.Behavior.MaxLines < 1 {
		return fmt.Errorf("max_lines must be at least 1, got %d", c.Behavior.MaxLines)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// SoundPath returns the configured sound file with ~ expanded.
func (c *Config) SoundPath() string {
	return expandPath(c.Audio.Sound)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
