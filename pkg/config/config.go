// Package config holds flexlay's runtime settings. Settings come from an
// optional TOML file; command-line flags override them afterwards.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"flexlay/pkg/css"
	"flexlay/pkg/layout"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidMode is returned for an unknown layout.distribution value.
	ErrInvalidMode = errors.New("config: invalid distribution mode")
	// ErrInvalidLevel is returned for an unknown log.level value.
	ErrInvalidLevel = errors.New("config: invalid log level")
)

type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Layout   LayoutConfig   `toml:"layout"`
	Render   RenderConfig   `toml:"render"`
	Log      LogConfig      `toml:"log"`
}

type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type LayoutConfig struct {
	// Distribution is "single" or "iterative".
	Distribution string `toml:"distribution"`
}

type RenderConfig struct {
	Background string  `toml:"background"`
	Labels     bool    `toml:"labels"`
	Scale      float64 `toml:"scale"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is given.
// A zero viewport means "take the scene's viewport".
func Default() Config {
	return Config{
		Layout: LayoutConfig{Distribution: "single"},
		Render: RenderConfig{Background: "white", Scale: 1},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads a TOML file on top of Default. Keys the file sets win;
// unknown keys are an error. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text on top of Default. Unknown keys are an error.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := decode(text, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

// Validate checks the enumerated and numeric settings.
func (c Config) Validate() error {
	if _, err := c.DistributionMode(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("config: render.scale must be positive, got %g", c.Render.Scale)
	}
	if _, ok := css.ParseColor(c.Render.Background); !ok {
		return fmt.Errorf("config: render.background %q is not a color", c.Render.Background)
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("config: viewport size must not be negative")
	}
	return nil
}

// DistributionMode maps layout.distribution to the resolver mode.
func (c Config) DistributionMode() (layout.DistributionMode, error) {
	return ParseDistributionMode(c.Layout.Distribution)
}

// ParseDistributionMode accepts "single" (the default for "") and "iterative".
func ParseDistributionMode(s string) (layout.DistributionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "single-pass":
		return layout.DistributeSinglePass, nil
	case "iterative":
		return layout.DistributeIterative, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// LogLevel maps log.level to a slog level.
func (c Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, c.Log.Level)
}
