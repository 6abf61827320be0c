// runner is a terminal endless runner with persistent upgrades.
//
// Usage:
//
//	runner menu              - Interactive mode picker
//	runner play <mode>       - Play a mode directly
//	runner modes             - List available modes
//	runner serve             - Start SSH server for remote play
//	runner scores <mode>     - Show run history for a mode
//	runner shop              - Spend banked coins on upgrades
//	runner sim <mode>        - Run the simulation headless
//	runner config init       - Write the default gameplay config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.endless-runner/runner.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/Gcxe/endless-runner-web/internal/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless Runner - An auto-scrolling platformer for your terminal",
	Long: `Endless Runner is a terminal auto-runner: one button, procedural
levels, and a coin wallet that buys permanent upgrades between runs.

Available commands:
  menu     - Interactive mode picker
  play     - Play a specific mode directly
  modes    - Show all available modes
  serve    - Start SSH server for remote play
  scores   - View run history and stats
  shop     - Buy upgrades with banked coins
  sim      - Run the simulation headless
  config   - Manage the gameplay config

Examples:
  runner menu
  runner play runner
  runner play runner_hard --seed 42
  runner serve --ssh :2222
  runner scores runner
  runner sim runner --ticks 3600 --verify`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.endless-runner/runner.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
