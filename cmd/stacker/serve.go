package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacker/internal/config"
	"github.com/vovakirdan/stacker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stacker SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session of the configured engine, sized
to the client's terminal. Sessions are recorded in the server's journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stacker/host_key

Examples:
  stacker serve                           # Listen on :23235 with auto-generated key
  stacker serve --ssh :2222               # Listen on port 2222
  stacker serve --host-key ./my_host_key  # Use specific host key
  stacker serve --max-sessions 8          # Allow at most 8 players

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Maximum concurrent sessions, 0 for unlimited (overrides config)")
	addSessionFlags(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	flagOverrides.texturesSet = cmd.Flags().Changed("textures")
	sessionCfg, err := buildSession("", "ssh", flagOverrides)
	if err != nil {
		return err
	}
	sessionCfg.Layout = terminalLayout(sessionCfg.Layout)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = appConfig.SSH.Address
	cfg.HostKeyPath = appConfig.SSH.HostKey
	cfg.IdleTimeout = appConfig.SSH.IdleTimeout
	cfg.MaxSessions = appConfig.SSH.MaxSessions

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagMaxSessions >= 0 {
		cfg.MaxSessions = flagMaxSessions
	}
	cfg.HostKeyPath = config.ExpandHome(cfg.HostKeyPath)

	store := openJournal()
	if store != nil {
		defer store.Close()
		sessionCfg.Journal = store
	}
	cfg.Session = sessionCfg
	cfg.Logger = logger.WithPrefix("stacker-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting stacker SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
