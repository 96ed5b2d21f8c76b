// Package config provides YAML-based configuration loading for stacker:
// the session defaults, rendering options, the SSH server and the journal.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/layout"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the whole configuration file.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Render  RenderConfig  `yaml:"render"`
	Replay  ReplayConfig  `yaml:"replay"`
	SSH     SSHConfig     `yaml:"ssh"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// SessionConfig defines the board and loop cadence.
type SessionConfig struct {
	Engine string        `yaml:"engine"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Tick   time.Duration `yaml:"tick"`  // Base tick period, scaled by Speed
	Speed  SpeedPreset   `yaml:"speed"` // "slow", "normal", "fast" or "fixed"
	Layout string        `yaml:"layout"`
}

// RenderConfig defines how blocks are drawn and laid out.
type RenderConfig struct {
	Textures       bool     `yaml:"textures"`
	TextureDir     string   `yaml:"texture_dir"` // Empty uses the built-in pack
	Unit           UnitSize `yaml:"unit"`
	WidthFraction  string   `yaml:"width_fraction"`
	HeightFraction string   `yaml:"height_fraction"`
}

// UnitSize is a block unit in abstract units.
type UnitSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ReplayConfig configures the replay engine.
type ReplayConfig struct {
	Reel string `yaml:"reel"` // Empty uses the built-in reel
}

// SSHConfig configures `stacker serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

// JournalConfig configures the session journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate checks the values a session cannot start without.
func (c Config) Validate() error {
	if c.Session.Engine == "" {
		return fmt.Errorf("%w: session.engine is empty", ErrInvalid)
	}
	if c.Session.Width <= 0 || c.Session.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalid, c.Session.Width, c.Session.Height)
	}
	if c.Session.Tick <= 0 {
		return fmt.Errorf("%w: session.tick %v", ErrInvalid, c.Session.Tick)
	}
	if _, err := ParseSpeed(string(c.Session.Speed)); err != nil {
		return err
	}
	if _, err := layout.ParseMode(c.Session.Layout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.LayoutOptions(); err != nil {
		return err
	}
	if c.Render.Unit.W < 0 || c.Render.Unit.H < 0 {
		return fmt.Errorf("%w: render.unit %dx%d", ErrInvalid, c.Render.Unit.W, c.Render.Unit.H)
	}
	return nil
}

// SessionConfig returns the session described by the file, with the speed
// preset applied to the tick period.
func (c Config) SessionConfig() core.SessionConfig {
	return core.SessionConfig{
		BoardW:     c.Session.Width,
		BoardH:     c.Session.Height,
		TickPeriod: TickForPreset(c.Session.Tick, c.Session.Speed),
		Layout:     c.Session.Layout,
		Textures:   c.Render.Textures,
	}
}

// LayoutOptions converts the render section to layout options. Zero fields
// are left for the layout defaults.
func (c Config) LayoutOptions() (layout.Options, error) {
	var opts layout.Options
	opts.Unit = core.Sz(c.Render.Unit.W, c.Render.Unit.H)

	if c.Render.WidthFraction != "" {
		f, err := layout.ParseFraction(c.Render.WidthFraction)
		if err != nil {
			return layout.Options{}, fmt.Errorf("%w: render.width_fraction: %v", ErrInvalid, err)
		}
		opts.Width = f
	}
	if c.Render.HeightFraction != "" {
		f, err := layout.ParseFraction(c.Render.HeightFraction)
		if err != nil {
			return layout.Options{}, fmt.Errorf("%w: render.height_fraction: %v", ErrInvalid, err)
		}
		opts.Height = f
	}

	// Both fractions or neither: Compute falls back to defaults as a pair
	if (opts.Width.Den == 0) != (opts.Height.Den == 0) {
		mode, err := layout.ParseMode(c.Session.Layout)
		if err != nil {
			return layout.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		def := layout.DefaultOptions(mode)
		if opts.Width.Den == 0 {
			opts.Width = def.Width
		} else {
			opts.Height = def.Height
		}
	}
	return opts, nil
}
