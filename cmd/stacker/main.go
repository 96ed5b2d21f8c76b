// stacker plays falling-block puzzle sessions in the terminal, over SSH or
// headless.
//
// Usage:
//
//	stacker engines            - List available puzzle engines
//	stacker play [engine]      - Play a session in this terminal
//	stacker serve              - Start SSH server for remote play
//	stacker snapshot [engine]  - Run a session headless and save a PNG frame
//	stacker layout             - Print the layout computed for a viewport
//	stacker history [engine]   - Show recorded sessions
//	stacker config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.stacker, ./configs)
//	--db <path>         - Journal database path (default: ~/.stacker/journal.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/config"

	// Import engines to register them
	_ "github.com/vovakirdan/stacker/internal/engines/replay"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string

	// Loaded before any subcommand runs
	appConfig    config.Config
	configSource string
	logger       *log.Logger
	logFile      *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacker",
	Short: "Stacker - falling-block puzzles in your terminal",
	Long: `Stacker drives falling-block puzzle engines: it reads the keyboard,
applies gravity on a fixed tick and draws the walled board.

Available commands:
  engines   - Show all registered puzzle engines
  play      - Play a session in this terminal
  serve     - Start SSH server for remote play
  snapshot  - Run a session headless and save the last frame as PNG
  layout    - Show where the board goes on a given viewport
  history   - Show recorded sessions
  config    - Print the effective configuration

Examples:
  stacker engines
  stacker play
  stacker play replay --layout title --textures
  stacker serve --ssh :2222
  stacker snapshot --ticks 200 --out frame.png`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to journal database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadWithSource(flagConfigPath)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Journal.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	appConfig = cfg
	configSource = source

	logger, err = newLogger(cfg.Log, cmd == playCmd)
	return err
}
