package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gcxe/endless-runner-web/internal/registry"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long:  `Shows every registered mode alongside your play count and best score.`,
	Run:   runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional: the listing works without a database
	stats := map[string]*storage.RunStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, statsErr := store.AllStats(); statsErr == nil {
			stats = all
		}
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-22s  %-6s  %s\n", maxIDLen, "ID", "Title", "Runs", "Best")
	fmt.Printf("  %-*s  %-22s  %-6s  %s\n", maxIDLen, "--", "-----", "----", "----")

	// Print modes
	for _, g := range games {
		runs, best := 0, 0
		if st, ok := stats[g.ID]; ok && st != nil {
			runs = st.RunsCount
			best = st.BestScore
		}
		fmt.Printf("  %-*s  %-22s  %-6d  %d\n", maxIDLen, g.ID, g.Title, runs, best)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to play a mode.")
}
