package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads runner gameplay configuration.
// Search order: customPath -> ~/.endless-runner/configs/runner.yaml ->
// ./configs/runner.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations fall through silently.
func LoadRunner(customPath string) (RunnerConfig, error) {
	var cfg RunnerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/runner.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".endless-runner", "configs", filename)
}

// UserConfigFile returns the canonical per-user config location for the
// given file name, creating the directory if needed.
func UserConfigFile(filename string) (string, error) {
	path := userConfigPath(filename)
	if path == "" {
		return "", fmt.Errorf("config: cannot determine home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create config directory: %w", err)
	}
	return path, nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Easy and hard adjust the pace and hazard density; fixed freezes the
// speed ramp so every run plays at base speed.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed = 300
		cfg.Physics.MaxSpeed = 780
		cfg.Physics.SpeedRamp = 8
		cfg.Generator.HazardChance = 0.30
		cfg.Generator.CoinChance = 0.60
	case DifficultyHard:
		cfg.Physics.BaseSpeed = 400
		cfg.Physics.MaxSpeed = 1000
		cfg.Physics.SpeedRamp = 15
		cfg.Generator.HazardChance = 0.50
	case DifficultyFixed:
		cfg.Physics.SpeedRamp = 0
	}
}
