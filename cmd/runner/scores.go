package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gcxe/endless-runner-web/internal/registry"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

var (
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show run history for a mode",
	Long: `Display the best runs for the specified mode.

Examples:
  runner scores runner
  runner scores runner --recent
  runner scores runner_hard --limit 25
  runner scores runner --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show most recent runs instead of best")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history for this mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner modes' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history for %s. The wallet keeps its coins.\n", title)
		return
	}

	// Get runs
	var runs []storage.RunEntry
	if flagScoresRecent {
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	// Display runs
	heading := "Top Runs"
	if flagScoresRecent {
		heading = "Recent Runs"
	}
	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to get on the board!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Coins", "Paid", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "----", "----", "----")

	// Print runs
	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		timeStr := fmt.Sprintf("%d:%02d", entry.DurationSecs/60, entry.DurationSecs%60)
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-6s  %s\n",
			i+1, entry.Score, entry.Coins, entry.Payout, timeStr, dateStr)
	}

	// Aggregate stats
	fmt.Println()
	if stats, statsErr := store.Stats(gameID); statsErr == nil && stats != nil {
		fmt.Printf("Runs: %d   Best: %d   Avg: %.0f   Coins banked: %d\n",
			stats.RunsCount, stats.BestScore, stats.AvgScore, stats.TotalPayout)
	}
}
