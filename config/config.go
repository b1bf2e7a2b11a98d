package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"go-irrational/scale"
)

// Core timing constants carried over from the hardware module.
// 60us = 16.666...kHz, the SPI transfer ends 2us before the next interrupt.
const (
	CoreISRFreq          = 16666                 // Hz
	CoreTimerRate        = 1000000 / CoreISRFreq // us
	RedrawTimeoutMS      = 1
	ScreensaverTimeoutMS = 15000
)

// Clock sources
const (
	ClockInternal = "internal"
	ClockMIDI     = "midi"
)

// Tempo limits (BPM)
const (
	MinTempo = 20
	MaxTempo = 300
)

// ClockDivisions per quarter note. MIDI clock runs at 24.
const (
	MinDivision = 1
	MaxDivision = 24
)

// ErrInvalid is wrapped by Validate for values that can't be clamped
var ErrInvalid = errors.New("invalid config")

// WalkerConfig sets the walker's startup window. It is never written back from
// the running walker.
type WalkerConfig struct {
	Start    int  `toml:"start"`
	Length   int  `toml:"length"`
	Sequence int  `toml:"sequence"`
	Loop     bool `toml:"loop"`
}

// ClockConfig selects where ticks come from
type ClockConfig struct {
	Source    string `toml:"source"`
	Tempo     int    `toml:"tempo"`
	Division  int    `toml:"division"`
	InputPort string `toml:"input_port,omitempty"`
}

// OutputConfig describes how output codes become MIDI
type OutputConfig struct {
	Port       string  `toml:"port,omitempty"`
	Channel    int     `toml:"channel"`
	Root       int     `toml:"root"`
	Scale      string  `toml:"scale"`
	Gate       float64 `toml:"gate"`
	Velocity   int     `toml:"velocity"`
	PassGoNote int     `toml:"pass_go_note"` // 0 = off
	CC         int     `toml:"cc"`           // 0 = off
}

// DisplayConfig stores UI preferences
type DisplayConfig struct {
	RedrawMS      int    `toml:"redraw_ms"`
	ScreensaverMS int    `toml:"screensaver_ms"`
	Palette       string `toml:"palette,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Walker  WalkerConfig  `toml:"walker"`
	Clock   ClockConfig   `toml:"clock"`
	Output  OutputConfig  `toml:"output"`
	Display DisplayConfig `toml:"display"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Walker: WalkerConfig{
			Start:  0,
			Length: 15,
			Loop:   true,
		},
		Clock: ClockConfig{
			Source:   ClockInternal,
			Tempo:    120,
			Division: 4,
		},
		Output: OutputConfig{
			Channel:  1,
			Root:     48,
			Scale:    "Major",
			Gate:     0.5,
			Velocity: 100,
		},
		Display: DisplayConfig{
			RedrawMS:      RedrawTimeoutMS,
			ScreensaverMS: ScreensaverTimeoutMS,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-irrational"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path (ConfigPath if empty), or returns defaults if
// the file doesn't exist. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path (ConfigPath if empty)
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate clamps numeric ranges and rejects values that have no sensible clamp.
// Walker window values are left alone; the walker clamps them itself.
func (c *Config) Validate() error {
	c.Clock.Source = strings.ToLower(strings.TrimSpace(c.Clock.Source))
	switch c.Clock.Source {
	case "":
		c.Clock.Source = ClockInternal
	case ClockInternal, ClockMIDI:
	default:
		return fmt.Errorf("%w: clock source %q", ErrInvalid, c.Clock.Source)
	}

	c.Clock.Tempo = clamp(c.Clock.Tempo, MinTempo, MaxTempo)
	c.Clock.Division = clamp(c.Clock.Division, MinDivision, MaxDivision)

	if !scale.Valid(c.Output.Scale) {
		return fmt.Errorf("%w: scale %q", ErrInvalid, c.Output.Scale)
	}
	c.Output.Channel = clamp(c.Output.Channel, 1, 16)
	c.Output.Root = clamp(c.Output.Root, 0, 127)
	c.Output.Velocity = clamp(c.Output.Velocity, 1, 127)
	c.Output.PassGoNote = clamp(c.Output.PassGoNote, 0, 127)
	c.Output.CC = clamp(c.Output.CC, 0, 127)
	c.Output.Gate = min(max(c.Output.Gate, 0), 1)

	if c.Display.RedrawMS < 1 {
		c.Display.RedrawMS = RedrawTimeoutMS
	}
	if c.Display.ScreensaverMS < 0 {
		c.Display.ScreensaverMS = 0
	}
	return nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
