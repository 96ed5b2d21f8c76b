package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/platform/headless"
	"github.com/vovakirdan/stacker/internal/session"
)

var (
	flagSnapSize  string
	flagSnapUnit  string
	flagSnapTicks int
	flagSnapKeys  string
	flagSnapOut   string
	flagSnapScale int
	flagSnapReal  bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [engine]",
	Short: "Run a session headless and save the last frame",
	Long: `Run a session without a terminal and write the last presented frame
as a PNG image.

The session sees one scripted key per iteration (from --keys), then
empty polls until --ticks iterations have passed, then quits. Gravity
runs without sleeping unless --realtime is set.

Keys: left, right, down, up, shift+up, ctrl+up, space, q, esc, a, d, s, w

Examples:
  stacker snapshot --ticks 200 --out frame.png
  stacker snapshot --size 1920x1080 --layout title --textures
  stacker snapshot --keys left,left,up,space --out moved.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&flagSnapSize, "size", "600x400", "Surface size in pixels (WxH)")
	snapshotCmd.Flags().StringVar(&flagSnapUnit, "unit", "", "Block unit hint of the surface (WxH)")
	snapshotCmd.Flags().IntVar(&flagSnapTicks, "ticks", 100, "Number of iterations before quitting")
	snapshotCmd.Flags().StringVar(&flagSnapKeys, "keys", "", "Comma-separated keys, one per iteration")
	snapshotCmd.Flags().StringVar(&flagSnapOut, "out", "stacker.png", "Output PNG path")
	snapshotCmd.Flags().IntVar(&flagSnapScale, "scale", 1, "Pixel scale of the output image")
	snapshotCmd.Flags().BoolVar(&flagSnapReal, "realtime", false, "Sleep for the tick period like a real session")
	addSessionFlags(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	engine := ""
	if len(args) > 0 {
		engine = args[0]
	}

	size, err := parseSize(flagSnapSize)
	if err != nil {
		return err
	}
	keys, err := parseKeys(flagSnapKeys)
	if err != nil {
		return err
	}

	flagOverrides.texturesSet = cmd.Flags().Changed("textures")
	cfg, err := buildSession(engine, "headless", flagOverrides)
	if err != nil {
		return err
	}
	if !flagSnapReal {
		cfg.Sleep = func(time.Duration) {}
	}

	surface := headless.NewSurface(size.W, size.H)
	if flagSnapUnit != "" {
		unit, err := parseSize(flagSnapUnit)
		if err != nil {
			return err
		}
		surface.WithUnit(unit)
	}

	store := openJournal()
	if store != nil {
		defer store.Close()
		cfg.Journal = store
	}

	stats, err := session.Run(surface, scriptFor(keys, flagSnapTicks), cfg)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	if err := surface.SavePNG(flagSnapOut, flagSnapScale); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d frames, %d ticks, ended by %s)\n",
		flagSnapOut, surface.Frames(), stats.Ticks, stats.Reason)
	return nil
}

// scriptFor builds a source delivering one key per poll, padded with empty
// polls up to n, that quits afterwards.
func scriptFor(keys []core.Event, n int) *input.Script {
	batches := make([][]core.Event, max(n, len(keys)))
	for i, k := range keys {
		batches[i] = []core.Event{k}
	}
	src := input.NewScript(batches...)
	src.QuitWhenDone = true
	return src
}

var keyByName = map[string]core.Event{
	"left":     core.KeyDown(core.KeyLeft),
	"right":    core.KeyDown(core.KeyRight),
	"down":     core.KeyDown(core.KeyArrowDown),
	"up":       core.KeyDown(core.KeyUp),
	"shift+up": core.KeyDownMod(core.KeyUp, core.ModShift),
	"ctrl+up":  core.KeyDownMod(core.KeyUp, core.ModCtrl),
	"space":    core.KeyDown(core.KeySpace),
	"q":        core.KeyDown(core.KeyQ),
	"esc":      core.KeyDown(core.KeyEscape),
	"a":        core.KeyDown(core.KeyA),
	"d":        core.KeyDown(core.KeyD),
	"s":        core.KeyDown(core.KeyS),
	"w":        core.KeyDown(core.KeyW),
}

// parseKeys parses a comma-separated key list.
func parseKeys(s string) ([]core.Event, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var events []core.Event
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		ev, ok := keyByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		events = append(events, ev)
	}
	return events, nil
}
