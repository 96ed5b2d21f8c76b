package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacker/internal/config"
	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/engines/replay"
	"github.com/vovakirdan/stacker/internal/journal"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/registry"
	"github.com/vovakirdan/stacker/internal/session"
)

// newLogger builds the process logger. Full-screen sessions own the
// terminal, so without a log file their logs are dropped.
func newLogger(cfg config.LogConfig, fullScreen bool) (*log.Logger, error) {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		path := config.ExpandHome(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	} else if fullScreen {
		w = io.Discard
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "stacker",
	})

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		l.SetLevel(level)
	}
	return l, nil
}

// openJournal opens the session journal, or returns nil if it is disabled
// or cannot be opened. Sessions still run without it.
func openJournal() *journal.Store {
	if !appConfig.Journal.Enabled {
		return nil
	}
	store, err := journal.Open(appConfig.Journal.Path)
	if err != nil {
		logger.Warn("could not open journal", "path", appConfig.Journal.Path, "error", err)
		return nil
	}
	return store
}

// sessionOverrides are the per-command flags that override the config.
type sessionOverrides struct {
	width, height int
	tick          string
	speed         string
	layout        string
	textures      bool
	texturesSet   bool
	textureDir    string
	reel          string
}

// buildSession turns the loaded config plus overrides into a session
// config. The journal is left for the caller.
func buildSession(engine, surface string, o sessionOverrides) (session.Config, error) {
	cfg := appConfig
	if engine != "" {
		cfg.Session.Engine = engine
	}
	if o.width > 0 {
		cfg.Session.Width = o.width
	}
	if o.height > 0 {
		cfg.Session.Height = o.height
	}
	if o.tick != "" {
		d, err := parseDuration(o.tick)
		if err != nil {
			return session.Config{}, err
		}
		cfg.Session.Tick = d
	}
	if o.speed != "" {
		p, err := config.ParseSpeed(o.speed)
		if err != nil {
			return session.Config{}, err
		}
		cfg.Session.Speed = p
	}
	if o.layout != "" {
		cfg.Session.Layout = o.layout
	}
	if o.texturesSet {
		cfg.Render.Textures = o.textures
	}
	if o.textureDir != "" {
		cfg.Render.TextureDir = o.textureDir
	}
	if o.reel != "" {
		cfg.Replay.Reel = o.reel
	}

	if err := cfg.Validate(); err != nil {
		return session.Config{}, err
	}
	if !registry.Exists(cfg.Session.Engine) {
		return session.Config{}, fmt.Errorf("unknown engine %q (see 'stacker engines')", cfg.Session.Engine)
	}
	opts, err := cfg.LayoutOptions()
	if err != nil {
		return session.Config{}, err
	}

	replay.SetReelPath(config.ExpandHome(cfg.Replay.Reel))

	sc := session.Config{
		Engine:  cfg.Session.Engine,
		Session: cfg.SessionConfig(),
		Layout:  opts,
		Surface: surface,
		Logger:  logger.With("surface", surface),
	}

	if sc.Session.Textures {
		textures, err := session.LoadTextures(config.ExpandHome(cfg.Render.TextureDir))
		if err != nil {
			return session.Config{}, err
		}
		sc.Textures = textures
	}
	return sc, nil
}

// terminalLayout lets terminal surfaces use the whole screen unless the
// configuration asks for a share of it.
func terminalLayout(opts layout.Options) layout.Options {
	if opts.Width.Den == 0 && opts.Height.Den == 0 {
		whole := layout.Fraction{Num: 1, Den: 1}
		opts.Width, opts.Height = whole, whole
	}
	return opts
}

func parseDuration(s string) (d time.Duration, err error) {
	d, err = time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// parseSize parses "WxH".
func parseSize(s string) (core.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return core.Size{}, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	w, werr := strconv.Atoi(strings.TrimSpace(ws))
	h, herr := strconv.Atoi(strings.TrimSpace(hs))
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return core.Size{}, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	return core.Sz(w, h), nil
}
