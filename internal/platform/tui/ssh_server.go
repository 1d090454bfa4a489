package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.oscillator/host_key.
	HostKeyPath string

	// DBPath is the path to the replay database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	// Difficulty scales the constants of every variant served.
	Difficulty config.DifficultyPreset

	// Record saves each session's input as a replay.
	Record bool

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.oscillator/replays.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Difficulty:  config.DifficultyNormal,
		Record:      true,
	}
}

// SSHServer wraps a Wish SSH server that hosts one oscillator session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "oscillator-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".oscillator", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(cfg, SessionOptions{
		Store:      s.store,
		Logger:     s.logger.With("user", sshSession.User()),
		Difficulty: s.config.Difficulty,
		Record:     s.config.Record,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "difficulty", s.config.Difficulty)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
