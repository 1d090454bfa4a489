package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSSHRecord   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the oscillator SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a variant picker menu.
Sessions are recorded to the server's replay database, which every
connected user can browse and watch.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.oscillator/host_key

Examples:
  oscillator serve                           # Listen on :23234 with auto-generated key
  oscillator serve --ssh :2222               # Listen on port 2222
  oscillator serve --host-key ./my_host_key  # Use specific host key
  oscillator serve --db ./replays.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagSSHRecord, "record", true, "Record sessions as replays")
}

func runServe(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Difficulty:  preset,
		Record:      flagSSHRecord,
		Logger:      logger.WithPrefix("oscillator-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	fmt.Printf("Starting oscillator SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
