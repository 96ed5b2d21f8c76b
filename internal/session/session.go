// Package session wires one play-through together: engine lookup, renderer
// selection, the game loop and the journal entry written when it ends.
// Every surface (terminal, SSH, headless) starts its sessions here.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/journal"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/loop"
	"github.com/vovakirdan/stacker/internal/registry"
	"github.com/vovakirdan/stacker/internal/render"
)

// Recorder stores finished sessions. *journal.Store implements it.
type Recorder interface {
	Save(r journal.Record) (int64, error)
}

// Config describes a session.
type Config struct {
	Engine   string
	Session  core.SessionConfig
	Layout   layout.Options       // Zero fields use the surface and mode defaults
	Textures *render.TextureCache // Shared cache; nil loads the built-in pack on demand
	Journal  Recorder             // Optional
	Surface  string               // Surface name for the journal
	User     string
	Logger   *log.Logger
	Sleep    loop.Sleeper // Optional, for tests
}

// LoadTextures builds a texture cache from dir, or from the built-in pack
// when dir is empty, and preloads the whole palette so a missing file is
// reported before the session starts.
func LoadTextures(dir string) (*render.TextureCache, error) {
	var provider *render.FSProvider
	if dir == "" {
		provider = &render.FSProvider{FS: render.DefaultPack()}
	} else {
		provider = render.NewDirProvider(dir)
	}

	cache := render.NewTextureCache(provider)
	if err := cache.Preload(core.TextureNames()...); err != nil {
		return nil, fmt.Errorf("session: preload textures: %w", err)
	}
	return cache, nil
}

// NewRenderer selects the renderer for cfg: textured or flat, in the
// configured layout mode.
func NewRenderer(s render.Surface, cfg Config) (render.Renderer, error) {
	mode, err := layout.ParseMode(cfg.Session.Layout)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	rc := render.Config{
		Mode:   mode,
		Layout: cfg.Layout,
		Logger: cfg.Logger,
	}

	if !cfg.Session.Textures {
		return render.NewFlat(s, rc), nil
	}

	textures := cfg.Textures
	if textures == nil {
		textures = render.NewTextureCache(&render.FSProvider{FS: render.DefaultPack()})
	}
	return render.NewTextured(s, textures, rc), nil
}

// Run plays one session on surface s with input from src. The session is
// written to the journal however it ended, and s is reset exactly once even
// when the engine or renderer cannot be built. A journal failure is logged
// and does not change the result.
func Run(s render.Surface, src input.Source, cfg Config) (loop.Stats, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	stats, err := play(s, src, cfg, logger)
	record(cfg, stats, err, logger)
	return stats, err
}

func play(s render.Surface, src input.Source, cfg Config, logger *log.Logger) (loop.Stats, error) {
	factory, err := registry.Lookup(cfg.Engine)
	if err != nil {
		s.Reset()
		return loop.Stats{Reason: loop.ReasonError}, fmt.Errorf("session: %w", err)
	}

	renderer, err := NewRenderer(s, cfg)
	if err != nil {
		s.Reset()
		return loop.Stats{Reason: loop.ReasonError}, err
	}

	ctrl := loop.New(factory, renderer, src, loop.Options{
		Engine:     cfg.Engine,
		Width:      cfg.Session.BoardW,
		Height:     cfg.Session.BoardH,
		TickPeriod: cfg.Session.TickPeriod,
		Sleep:      cfg.Sleep,
		Logger:     logger,
	})
	return ctrl.Run()
}

func record(cfg Config, stats loop.Stats, runErr error, logger *log.Logger) {
	if cfg.Journal == nil {
		return
	}

	rec := journal.Record{
		Engine:     cfg.Engine,
		Surface:    cfg.Surface,
		User:       cfg.User,
		BoardW:     cfg.Session.BoardW,
		BoardH:     cfg.Session.BoardH,
		Reason:     string(stats.Reason),
		Iterations: stats.Iterations,
		Ticks:      stats.Ticks,
		Redraws:    stats.Redraws,
		Commands:   stats.Commands,
		Duration:   stats.Duration,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if _, err := cfg.Journal.Save(rec); err != nil {
		logger.Warn("could not record session", "error", err)
	}
}
