package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/oscillator/internal/core"
	"github.com/vovakirdan/oscillator/internal/platform/tui"
	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Going back from a variant returns to the menu to pick again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab/R        - Browse replays
  Q            - Quit

Examples:
  oscillator menu
  oscillator menu --fps 30
  oscillator menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig(terminalSize())

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the replay browser
		if menuResult.WantsReplays {
			if !browseReplays(store, cfg, logger) {
				break // User quit from the browser
			}
			continue
		}

		variantID := menuResult.VariantID
		if variantID == "" {
			break
		}

		constants, err := loadConstants(variantID, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// Create variant instance
		game, err := registry.Create(variantID, constants)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating variant: %v\n", err)
			continue
		}

		// Fresh seed for each play unless pinned
		playCfg := cfg
		if flagSeed == 0 {
			playCfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.Run(game, playCfg, tui.PlayOptions{
			Store:  store,
			Logger: logger,
			Record: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}

// browseReplays alternates between the replay browser and playback.
// It returns false if the user quit instead of going back to the menu.
func browseReplays(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) bool {
	for {
		id, goBack, err := tui.RunReplays(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
		if id == 0 {
			return goBack
		}

		rec, err := store.Replay(id)
		if err != nil {
			logger.Error("could not load replay", "id", id, "error", err)
			continue
		}

		back, err := tui.RunWatch(rec, variantTitle(rec.Variant), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
		if !back {
			return false
		}
	}
}

// variantTitle returns a variant's display title, or its ID if unknown.
func variantTitle(id string) string {
	if info, ok := registry.Info(id); ok {
		return info.Title
	}
	return id
}
