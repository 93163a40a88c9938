package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultFont, cfg.Style.Font)
	assert.Equal(t, "#222222", cfg.Style.Foreground)
	assert.Equal(t, "#eeeeee", cfg.Style.Background)
	assert.Equal(t, "#005577", cfg.Style.Border)
	assert.Equal(t, 10, cfg.Spacing.Horizontal)
	assert.Equal(t, 5, cfg.Spacing.Vertical)
	assert.Equal(t, time.Duration(0), cfg.Behavior.Timeout.Duration())
	assert.Equal(t, 20, cfg.Behavior.MaxLines)
	assert.Equal(t, "x11", cfg.Behavior.Backend)
	assert.Equal(t, 2, cfg.TTY.Horizontal)
	assert.Equal(t, 0, cfg.TTY.Vertical)
	assert.Empty(t, cfg.Audio.Sound)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.True(t, cfg.DBus.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[style]
font = "fixed"
foreground = "#ffffff"
background = "black"
border = "#ff0000"

[spacing]
horizontal = 4
vertical = 2

[behavior]
timeout = "3s"
max_lines = 5
backend = "tty"
display = ":1"

[tty]
horizontal = 1
vertical = 1

[audio]
sound = "/usr/share/sounds/ping.wav"
volume = 40

[dbus]
enabled = false
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fixed", cfg.Style.Font)
	assert.Equal(t, "#ffffff", cfg.Style.Foreground)
	assert.Equal(t, "black", cfg.Style.Background)
	assert.Equal(t, "#ff0000", cfg.Style.Border)
	assert.Equal(t, 4, cfg.Spacing.Horizontal)
	assert.Equal(t, 2, cfg.Spacing.Vertical)
	assert.Equal(t, 3*time.Second, cfg.Behavior.Timeout.Duration())
	assert.Equal(t, 5, cfg.Behavior.MaxLines)
	assert.Equal(t, "tty", cfg.Behavior.Backend)
	assert.Equal(t, ":1", cfg.Behavior.Display)
	assert.Equal(t, 1, cfg.TTY.Horizontal)
	assert.Equal(t, 1, cfg.TTY.Vertical)
	assert.Equal(t, "/usr/share/sounds/ping.wav", cfg.Audio.Sound)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.False(t, cfg.DBus.Enabled)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[behavior]
timeout = "2.5"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, 2500*time.Millisecond, cfg.Behavior.Timeout.Duration())

	// Unchanged fields should have defaults
	assert.Equal(t, DefaultFont, cfg.Style.Font)
	assert.Equal(t, 20, cfg.Behavior.MaxLines)
	assert.True(t, cfg.DBus.Enabled)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `this is not valid toml [`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[behavior]
backend = "wayland"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"tty backend", func(c *Config) { c.Behavior.Backend = "tty" }, ""},
		{"zero spacing", func(c *Config) { c.Spacing = SpacingConfig{} }, ""},
		{"unknown backend", func(c *Config) { c.Behavior.Backend = "gtk" }, "invalid backend"},
		{"negative spacing", func(c *Config) { c.Spacing.Horizontal = -1 }, "spacing"},
		{"negative tty spacing", func(c *Config) { c.TTY.Vertical = -1 }, "tty spacing"},
		{"negative timeout", func(c *Config) { c.Behavior.Timeout = Duration(-time.Second) }, "timeout"},
		{"zero max lines", func(c *Config) { c.Behavior.MaxLines = 0 }, "max_lines"},
		{"volume too high", func(c *Config) { c.Audio.Volume = 101 }, "volume"},
		{"volume negative", func(c *Config) { c.Audio.Volume = -1 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Behavior.Timeout = Duration(5 * time.Second)
	cfg.Style.Border = "red"

	err := cfg.Save(path)
	require.NoError(t, err)

	// Verify file was created and the temp file is gone
	_, err = os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, loaded.Behavior.Timeout.Duration())
	assert.Equal(t, "red", loaded.Style.Border)
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"5", 5 * time.Second, false},
		{"0.25", 250 * time.Millisecond, false},
		{"0", 0, false},
		{"never", 0, false},
		{" Never ", 0, false},
		{"", 0, false},
		{"soon", 0, true},
		{"inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	text, err := Duration(2 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2s", string(text))

	text, err = Duration(0).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "never", string(text))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/wmdialog/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	assert.Contains(t, path, "wmdialog/config.toml")
}

func TestConfig_SoundPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Audio.Sound = "~/sounds/ping.wav"
	assert.Equal(t, filepath.Join(home, "sounds", "ping.wav"), cfg.SoundPath())

	cfg.Audio.Sound = "/abs/ping.wav"
	assert.Equal(t, "/abs/ping.wav", cfg.SoundPath())
}
