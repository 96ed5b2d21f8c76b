package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/stacker/internal/session"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.stacker/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent games; 0 means unlimited.
	MaxSessions int

	// Session is the template for every game; Surface and User are filled
	// in per connection.
	Session session.Config

	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 32,
	}
}

// SSHServer wraps a Wish SSH server that plays one session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stacker-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".stacker", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler starts a game for each SSH session and returns the program
// model showing it.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := s.config.Session
	cfg.Surface = "ssh"
	cfg.User = sshSession.User()
	cfg.Logger = s.logger.With("user", sshSession.User())

	model, queue, run := Start(Options{
		Session:  cfg,
		Cols:     pty.Window.Width,
		Rows:     pty.Window.Height,
		Renderer: bubbletea.MakeRenderer(sshSession),
	})

	go func() {
		if _, err := run(); err != nil {
			cfg.Logger.Error("session failed", "error", err)
		}
	}()

	// A dropped connection ends the game on its next poll
	go func() {
		<-sshSession.Context().Done()
		queue.Close()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// limitMiddleware rejects connections beyond MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if limit := s.config.MaxSessions; limit > 0 && n > int64(limit) {
			s.logger.Warn("session limit reached", "user", sshSession.User(), "limit", limit)
			wish.Fatalln(sshSession, "stacker: server is full, try again later")
			return
		}
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"active", s.Active(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "active", s.Active())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}
