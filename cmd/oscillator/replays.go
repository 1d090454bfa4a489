package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oscillator/internal/platform/tui"
	"github.com/vovakirdan/oscillator/internal/registry"
	"github.com/vovakirdan/oscillator/internal/replay"
	"github.com/vovakirdan/oscillator/internal/sim"
	"github.com/vovakirdan/oscillator/internal/storage"
)

var flagLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `Browse the replay database interactively, or manage it with a subcommand.

Every recorded session stores its seed, its constants and the input edges
of every frame, so a replay re-simulates the session exactly.

Examples:
  oscillator replays
  oscillator replays list course --limit 20
  oscillator replays watch 7
  oscillator replays run 7
  oscillator replays clear shrooms`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysListCmd = &cobra.Command{
	Use:   "list [variant]",
	Short: "List recorded sessions, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplaysList,
}

var replaysWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Play a recorded session back in real time",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysWatch,
}

var replaysRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a recorded session and print its runs",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRun,
}

var replaysClearCmd = &cobra.Command{
	Use:   "clear [variant]",
	Short: "Delete recorded sessions (all variants if none given)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplaysClear,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of replays to list")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysWatchCmd)
	replaysCmd.AddCommand(replaysRunCmd)
	replaysCmd.AddCommand(replaysClearCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// loadReplay parses an ID argument and loads that replay, or exits.
func loadReplay(store *storage.Store, arg string) replay.Recording {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}

	rec, err := store.Replay(id)
	if err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		}
		os.Exit(1)
	}
	return rec
}

// checkVariant exits if a variant filter names no registered variant.
func checkVariant(args []string) string {
	if len(args) == 0 {
		return ""
	}
	if !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'oscillator list' to see available variants.")
		os.Exit(1)
	}
	return args[0]
}

func runReplays(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	defer store.Close()

	browseReplays(store, runtimeConfig(terminalSize()), logger)
}

func runReplaysList(_ *cobra.Command, args []string) {
	variant := checkVariant(args)

	store := openStore()
	defer store.Close()

	replays, err := store.ListReplays(variant, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		return
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'oscillator play <variant>' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-10s  %-8s  %-8s  %s\n", "ID", "Variant", "Frames", "Length", "Recorded")
	fmt.Printf("  %-6s  %-10s  %-8s  %-8s  %s\n", "--", "-------", "------", "------", "--------")

	for _, r := range replays {
		fmt.Printf("  %-6d  %-10s  %-8d  %-8s  %s\n",
			r.ID, r.Variant, r.Frames,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %s: %d replays, %d frames, last %s\n",
			id, s.Replays, s.TotalFrames, s.LastRecorded.Format("2006-01-02 15:04"))
	}
}

func runReplaysWatch(_ *cobra.Command, args []string) {
	store := openStore()
	rec := loadReplay(store, args[0])
	store.Close()

	if _, err := tui.RunWatch(rec, variantTitle(rec.Variant), runtimeConfig(terminalSize())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplaysRun(_ *cobra.Command, args []string) {
	store := openStore()
	rec := loadReplay(store, args[0])
	store.Close()

	res, err := replay.Simulate(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay #%d - %s, seed %d, %d frames (%.1fs)\n",
		rec.ID, variantTitle(rec.Variant), rec.Seed, res.Frames, rec.Duration().Seconds())
	fmt.Println()

	if len(res.Runs) == 0 {
		fmt.Println("No finished runs.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "Run", "Score", "Cause", "Time")
	fmt.Printf("  %-4s  %-6s  %-10s  %s\n", "---", "-----", "-----", "----")

	for i, run := range res.Runs {
		fmt.Printf("  %-4d  %-6s  %-10s  %.1fs - %.1fs\n",
			i+1, sim.FormatScore(run.Score), run.Cause, run.StartedMs/1000, run.EndedMs/1000)
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", sim.FormatScore(res.Best()))
}

func runReplaysClear(_ *cobra.Command, args []string) {
	variant := checkVariant(args)

	store := openStore()
	defer store.Close()

	n, err := store.DeleteReplays(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting replays: %v\n", err)
		return
	}
	fmt.Printf("Deleted %d replays.\n", n)
}
