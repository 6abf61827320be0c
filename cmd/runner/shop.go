package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/platform/tui"
	"github.com/Gcxe/endless-runner-web/internal/runner"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend banked coins on permanent upgrades",
	Long: `Open the upgrade shop. Coins collected during runs are banked in
a wallet and can be spent here. Upgrades apply to every future run.

Upgrades:
  jump       - Higher jumps
  coyote     - Longer grace window after leaving a ledge
  coin_mult  - Bigger coin payouts
  magnet     - Pulls nearby coins in

Examples:
  runner shop                 # Interactive shop
  runner shop list            # Print upgrades and prices
  runner shop buy magnet      # Buy the next magnet level`,
	Run: runShopInteractive,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print upgrades, levels, and prices",
	Run:   runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <upgrade>",
	Short: "Buy the next level of an upgrade",
	Args:  cobra.ExactArgs(1),
	Run:   runShopBuy,
}

func init() {
	shopCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
}

// shopUpgradeConfig loads the upgrade pricing used by the game itself.
func shopUpgradeConfig() config.UpgradeConfig {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	return cfg.Upgrades
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runShopInteractive(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	width, height := terminalSize()
	if _, err := tui.RunShop(store, shopUpgradeConfig(), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runShopList(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	upgrades := shopUpgradeConfig()

	levels, err := store.UpgradeLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading upgrades: %v\n", err)
		os.Exit(1)
	}
	balance, err := store.Balance()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading wallet: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wallet: %d coins\n", balance)
	fmt.Println()
	fmt.Printf("  %-10s  %-7s  %s\n", "Upgrade", "Level", "Next cost")
	fmt.Printf("  %-10s  %-7s  %s\n", "-------", "-----", "---------")

	for _, id := range runner.UpgradeIDs {
		level := levels[id]
		levelStr := fmt.Sprintf("%d/%d", level, upgrades.MaxLevel)
		costStr := fmt.Sprintf("%d", runner.UpgradeCost(upgrades, level))
		if level >= upgrades.MaxLevel {
			costStr = "maxed"
		}
		fmt.Printf("  %-10s  %-7s  %s\n", id, levelStr, costStr)
	}

	fmt.Println()
	fmt.Println("Run 'runner shop buy <upgrade>' to purchase.")
}

func runShopBuy(_ *cobra.Command, args []string) {
	id := args[0]

	valid := false
	for _, known := range runner.UpgradeIDs {
		if id == known {
			valid = true
			break
		}
	}
	if !valid {
		fmt.Fprintf(os.Stderr, "Error: unknown upgrade %q (one of: %s)\n",
			id, strings.Join(runner.UpgradeIDs, ", "))
		os.Exit(1)
	}

	store := openStoreOrExit()
	defer store.Close()

	upgrades := shopUpgradeConfig()

	level, err := store.UpgradeLevel(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading upgrade level: %v\n", err)
		os.Exit(1)
	}
	cost := runner.UpgradeCost(upgrades, level)

	newLevel, err := store.PurchaseUpgrade(id, cost, upgrades.MaxLevel)
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		balance, _ := store.Balance()
		fmt.Fprintf(os.Stderr, "Not enough coins: %s costs %d, wallet has %d.\n", id, cost, balance)
		os.Exit(1)
	case errors.Is(err, storage.ErrMaxLevel):
		fmt.Fprintf(os.Stderr, "%s is already at max level.\n", id)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error purchasing upgrade: %v\n", err)
		os.Exit(1)
	}

	balance, _ := store.Balance()
	fmt.Printf("Bought %s level %d for %d coins. Wallet: %d.\n", id, newLevel, cost, balance)
}
