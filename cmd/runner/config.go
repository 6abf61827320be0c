package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gcxe/endless-runner-web/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gameplay config",
	Long: `Inspect and edit the YAML gameplay config.

The game looks for a config in this order:
  1. The --config flag
  2. ~/.endless-runner/configs/runner.yaml
  3. ./configs/runner.yaml
  4. Built-in defaults

Examples:
  runner config init          # Write the defaults to the user config path
  runner config path          # Print the user config path
  runner config show          # Print the effective config`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the user config path",
	Run:   runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the user config path",
	Run:   runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective gameplay config as YAML",
	Run:   runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path, err := config.UserConfigFile("runner.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, statErr := os.Stat(path); statErr == nil && !flagConfigForce {
		fmt.Fprintf(os.Stderr, "Config already exists at %s (use --force to overwrite).\n", path)
		os.Exit(1)
	}

	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote default config to %s\n", path)
	fmt.Println("Edit it and every run will pick the changes up.")
}

func runConfigPath(_ *cobra.Command, _ []string) {
	path, err := config.UserConfigFile("runner.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config is invalid: %v\n", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
