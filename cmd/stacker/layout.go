package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/layout"
)

var (
	flagViewport string
	flagUnit     string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show where the board goes on a viewport",
	Long: `Compute the session layout for a viewport and print the block size and
the pixel rectangles of the title banner and the walled board.

The board size, layout mode and fractions come from the config and the
usual session flags.

Examples:
  stacker layout --viewport 1920x1080
  stacker layout --viewport 80x48 --unit 2x1 --layout title`,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&flagViewport, "viewport", "1920x1080", "Viewport size in pixels (WxH)")
	layoutCmd.Flags().StringVar(&flagUnit, "unit", "", "Block unit (WxH, overrides config)")
	addSessionFlags(layoutCmd)
}

func runLayout(cmd *cobra.Command, _ []string) error {
	viewport, err := parseSize(flagViewport)
	if err != nil {
		return err
	}

	flagOverrides.texturesSet = cmd.Flags().Changed("textures")
	cfg, err := buildSession("", "layout", flagOverrides)
	if err != nil {
		return err
	}

	opts := cfg.Layout
	if flagUnit != "" {
		unit, err := parseSize(flagUnit)
		if err != nil {
			return err
		}
		opts.Unit = unit
	}

	mode, err := layout.ParseMode(cfg.Session.Layout)
	if err != nil {
		return err
	}

	grid := core.Sz(cfg.Session.BoardW, cfg.Session.BoardH)
	geom, err := layout.Compute(mode, viewport, grid, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Layout - %s\n", geom.Mode)
	fmt.Println()
	fmt.Printf("  %-10s  %s\n", "Viewport", geom.Viewport)
	fmt.Printf("  %-10s  %s (%s walled)\n", "Board", geom.Grid, layout.WalledSize(geom.Grid))
	fmt.Printf("  %-10s  %dx%d px\n", "Block", geom.Board.CellW, geom.Board.CellH)
	printRegion("Board at", geom.Board)
	if geom.HasTitle {
		printRegion("Title at", geom.Title)
	}
	return nil
}

func printRegion(label string, r layout.Region) {
	b := r.Bounds()
	fmt.Printf("  %-10s  x=%d y=%d w=%d h=%d\n", label, b.X, b.Y, b.W, b.H)
}
