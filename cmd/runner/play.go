package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/core"
	"github.com/Gcxe/endless-runner-web/internal/platform/tui"
	"github.com/Gcxe/endless-runner-web/internal/registry"
	"github.com/Gcxe/endless-runner-web/internal/runner"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Space/Up   - Jump (hold for full height, tap for a short hop)
  S/Down     - Cut the jump early
  P/Esc      - Pause
  R          - Restart (after the run ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower pace, fewer hazards, more coins
  normal - Standard pace
  hard   - Fast pace, denser hazards
  fixed  - No speed ramp, stays at base speed

Examples:
  runner play runner
  runner play runner --difficulty hard
  runner play runner_easy --seed 42
  runner play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalSize returns the terminal dimensions, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// validateConfigFlag rejects a broken custom config before the screen is
// taken over, so the error stays readable.
func validateConfigFlag() error {
	if flagConfig == "" {
		return nil
	}
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// applyRunSetup installs the CLI flags and purchased upgrades into the
// game package before a run starts.
func applyRunSetup(store *storage.Store) {
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	if store == nil {
		return
	}
	levels, err := store.UpgradeLevels()
	if err != nil {
		return
	}
	//nolint:errcheck // Stored levels cannot be negative
	runner.SetUpgradeLevels(runner.UpgradeLevelsFromMap(levels))
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner modes' to see available modes.")
		os.Exit(1)
	}

	if err := validateConfigFlag(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create runtime config from terminal size
	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}

	applyRunSetup(store)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running mode: %v\n", runErr)
		os.Exit(1)
	}
}
