package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oscillator/internal/platform/tui"
	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/storage"
)

var (
	flagConfig string
	flagRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Mouse button - Hold to calm the swing
  Space        - Toggle hold
  Enter        - Tap (press and release)
  P            - Pause
  Esc/B        - Back (from the start screen or while paused)
  Q/Ctrl+C     - Quit

Difficulty options (global --difficulty flag):
  easy   - Slower scrolling, fewer obstacles
  normal - Constants as configured
  hard   - Faster scrolling, more obstacles
  fixed  - Constants as configured, never scaled

The whole session is recorded and saved to the replay database on exit
unless --record=false is given.

Examples:
  oscillator play classic
  oscillator play course --difficulty easy
  oscillator play shrooms --seed 42
  oscillator play course --config ./my-course.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Record the session as a replay")
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) {
	variantID := args[0]

	// Check if variant exists
	if !registry.Exists(variantID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 'oscillator list' to see available variants.")
		os.Exit(1)
	}

	constants, err := loadConstants(variantID, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Create variant instance
	game, err := registry.Create(variantID, constants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating variant: %v\n", err)
		os.Exit(1)
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	// Run the game
	_, runErr := tui.Run(game, runtimeConfig(terminalSize()), tui.PlayOptions{
		Store:  store,
		Logger: logger,
		Record: flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
