// Package config loads LocalPaint settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"LocalPaint/internal/state"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "LOCALPAINT_CONFIG"

// Config holds every user tunable setting.
type Config struct {
	PoolCapacity int     `toml:"pool_capacity"`
	Thickness    float32 `toml:"thickness"`
	Color        string  `toml:"color"`
	Width        float32 `toml:"width"`
	Height       float32 `toml:"height"`
	Port         int     `toml:"port"`
	Share        bool    `toml:"share"`
	Advertise    bool    `toml:"advertise"`
	LogLevel     string  `toml:"log_level"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		PoolCapacity: state.DefaultPoolCapacity,
		Thickness:    state.DefaultStyle().Thickness,
		Color:        "#000000",
		Width:        1000,
		Height:       600,
		Port:         8888,
		Share:        true,
		Advertise:    true,
		LogLevel:     "info",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "localpaint", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.PoolCapacity < 0:
		return fmt.Errorf("pool_capacity must not be negative, got %d", c.PoolCapacity)
	case c.Thickness <= 0:
		return fmt.Errorf("thickness must be positive, got %g", c.Thickness)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size must be positive, got %gx%g", c.Width, c.Height)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	return nil
}

// Style builds the stroke style described by the config.
func (c Config) Style() state.Style {
	st := state.DefaultStyle()
	st.Thickness = c.Thickness
	if col, err := ParseColor(c.Color); err == nil {
		st.Color = col
	}
	return st
}

// Level maps log_level to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.New("wrong length")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
