package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/games/oscillator"
	"github.com/vovakirdan/oscillator/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows a list of all oscillator variants with their default rules.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	// Print variants
	for _, v := range variants {
		rules := oscillator.Describe(config.DefaultConstants(v.ID))
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, rules)
	}

	fmt.Println()
	fmt.Println("Run 'oscillator play <id>' to play a variant.")
}
