// Package config loads marquee settings: built-in defaults, then an optional YAML
// file, then MARQUEE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Window Window `yaml:"window" envPrefix:"WINDOW_"`
	Camera Camera `yaml:"camera" envPrefix:"CAMERA_"`
	Input  Input  `yaml:"input" envPrefix:"INPUT_"`
	Demo   Demo   `yaml:"demo" envPrefix:"DEMO_"`
	Stress Stress `yaml:"stress" envPrefix:"STRESS_"`
	Log    Log    `yaml:"log" envPrefix:"LOG_"`
}

// Window sizes the demo window.
type Window struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
}

// Camera sets the initial world-to-screen transform.
type Camera struct {
	CellSize float32 `yaml:"cell_size" env:"CELL_SIZE"`
	Zoom     float32 `yaml:"zoom" env:"ZOOM"`
}

// Input tunes how pointer gestures become selections.
type Input struct {
	DeadZone       float64 `yaml:"dead_zone" env:"DEAD_ZONE"`
	ClickTolerance float64 `yaml:"click_tolerance" env:"CLICK_TOLERANCE"`
}

// Demo populates the demo world.
type Demo struct {
	Units       int   `yaml:"units" env:"UNITS"`
	WorldWidth  int   `yaml:"world_width" env:"WORLD_WIDTH"`
	WorldHeight int   `yaml:"world_height" env:"WORLD_HEIGHT"`
	Seed        int64 `yaml:"seed" env:"SEED"`
}

// Stress drives the stress command.
type Stress struct {
	Entities int           `yaml:"entities" env:"ENTITIES"`
	Duration time.Duration `yaml:"duration" env:"DURATION"`
	Seed     int64         `yaml:"seed" env:"SEED"`
}

// Log selects the log level and an optional rotating log file.
type Log struct {
	Level      string `yaml:"level" env:"LEVEL"`
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
}

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MARQUEE_"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "marquee",
			Width:  1280,
			Height: 720,
		},
		Camera: Camera{
			CellSize: 16,
			Zoom:     2,
		},
		Input: Input{
			DeadZone:       4,
			ClickTolerance: 6,
		},
		Demo: Demo{
			Units:       120,
			WorldWidth:  40,
			WorldHeight: 22,
			Seed:        1,
		},
		Stress: Stress{
			Entities: 2000,
			Duration: 2 * time.Second,
			Seed:     1,
		},
		Log: Log{
			Level:      "WARN",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}

// Load builds the configuration. path may be empty to skip the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// ParseEnv overrides target's fields from MARQUEE_* environment variables.
// Unset variables leave fields untouched.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.CellSize <= 0 || c.Camera.Zoom <= 0 {
		return fmt.Errorf("camera cell size and zoom must be positive")
	}
	if c.Input.DeadZone < 0 || c.Input.ClickTolerance < 0 {
		return fmt.Errorf("input dead zone and click tolerance cannot be negative")
	}
	if c.Demo.Units < 0 || c.Stress.Entities < 0 {
		return fmt.Errorf("entity counts cannot be negative")
	}
	if c.Demo.WorldWidth <= 0 || c.Demo.WorldHeight <= 0 {
		return fmt.Errorf("demo world size must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
