// oscillator is a one-button terminal game about calming a runaway swing.
//
// Usage:
//
//	oscillator list                - List available variants
//	oscillator play <variant>      - Play a variant
//	oscillator menu                - Start menu to pick variants interactively
//	oscillator serve               - Start SSH server for remote play
//	oscillator replays [command]   - Browse, watch and verify recorded sessions
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.oscillator/replays.db)
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Write logs to a file while a TUI is running
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"

	// Import variants to register them
	_ "github.com/vovakirdan/oscillator/internal/games/oscillator"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oscillator",
	Short: "Oscillator - keep the swing between the walls",
	Long: `Oscillator is a one-button game played in the terminal. A ball swings
across a lane that scrolls upward. Holding the button calms the swing,
letting go makes it grow. Touching a wall or an obstacle ends the run.

Available commands:
  list     - Show all variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  replays  - Browse, watch and re-simulate recorded sessions

Examples:
  oscillator list
  oscillator play course
  oscillator menu --difficulty hard
  oscillator serve --ssh :2222
  oscillator replays list course`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oscillator/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while a TUI is running")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
}

// newLogger builds the command logger. A full-screen TUI owns the terminal,
// so in that case logs go to --log-file or nowhere.
// The returned close function releases the log file, if any.
func newLogger(tuiActive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case tuiActive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "oscillator",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConstants resolves a variant's constants from --config and --difficulty.
func loadConstants(variant, customPath string) (config.GameConstants, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.GameConstants{}, err
	}
	return config.Resolve(variant, customPath, preset)
}

// runtimeConfig builds the host config for a terminal of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
