package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stacker/internal/loop"
	"github.com/vovakirdan/stacker/internal/platform/tcellscreen"
	"github.com/vovakirdan/stacker/internal/platform/tui"
)

var (
	flagSurface   string
	flagOverrides sessionOverrides
)

var playCmd = &cobra.Command{
	Use:   "play [engine]",
	Short: "Play a session in this terminal",
	Long: `Start a session of the given engine (default: session.engine from the
config) in this terminal.

Controls:
  Left/A, Right/D  - Slide
  Down/S           - Soft drop
  Up/W             - Rotate anticlockwise
  Shift+Up         - Rotate clockwise
  Space            - Hard drop
  Q/Esc/Ctrl+C     - Quit

Surfaces:
  tui    - Bubble Tea program, two pixels per cell (default)
  tcell  - tcell screen, one pixel per cell

Speed options:
  slow   - Twice the configured tick period
  normal - The configured tick period
  fast   - Half the configured tick period
  fixed  - The configured tick period, never scaled

Examples:
  stacker play
  stacker play replay --reel ./my-reel.yaml
  stacker play --layout title --textures
  stacker play --surface tcell --speed fast`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSurface, "surface", "tui", "Terminal surface: tui or tcell")
	addSessionFlags(playCmd)
}

// addSessionFlags registers the session override flags on cmd.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagOverrides.width, "width", 0, "Board width in columns")
	cmd.Flags().IntVar(&flagOverrides.height, "height", 0, "Board height in rows")
	cmd.Flags().StringVar(&flagOverrides.tick, "tick", "", "Base tick period (e.g. 10ms)")
	cmd.Flags().StringVar(&flagOverrides.speed, "speed", "", "Speed preset: slow, normal, fast, fixed")
	cmd.Flags().StringVar(&flagOverrides.layout, "layout", "", "Layout: board or title")
	cmd.Flags().BoolVar(&flagOverrides.textures, "textures", false, "Draw textured blocks")
	cmd.Flags().StringVar(&flagOverrides.textureDir, "texture-dir", "", "Directory with a texture pack")
	cmd.Flags().StringVar(&flagOverrides.reel, "reel", "", "Reel file for the replay engine")
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine := ""
	if len(args) > 0 {
		engine = args[0]
	}

	flagOverrides.texturesSet = cmd.Flags().Changed("textures")
	cfg, err := buildSession(engine, flagSurface, flagOverrides)
	if err != nil {
		return err
	}
	cfg.Layout = terminalLayout(cfg.Layout)

	store := openJournal()
	if store != nil {
		defer store.Close()
		cfg.Journal = store
	}

	var stats loop.Stats
	switch flagSurface {
	case "tui":
		// Get terminal size
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		stats, err = tui.Play(tui.Options{Session: cfg, Cols: width, Rows: height})
	case "tcell":
		stats, err = tcellscreen.Play(cfg)
	default:
		return fmt.Errorf("unknown surface %q (expected tui or tcell)", flagSurface)
	}
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	fmt.Printf("Session ended (%s) after %d ticks, %d redraws, %d commands in %s\n",
		stats.Reason, stats.Ticks, stats.Redraws, stats.Commands, stats.Duration.Round(time.Millisecond))
	return nil
}
