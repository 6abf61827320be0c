package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration file, for dumping
// a starting point the player can edit.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the default runner configuration.
// These values match defaults/runner.yaml and were tuned by play testing:
// at base speed the largest gap is clearable with a full jump, and the
// reaction window keeps hazards visible for at least a quarter second
// before the player reaches them.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			ViewportW: 960,
			ViewportH: 540,
			GroundY:   440,
		},
		Player: PlayerConfig{
			Width:         44,
			Height:        58,
			CameraOffsetX: 120,
		},
		Physics: PhysicsConfig{
			Gravity:           2400,
			BaseSpeed:         340,
			MaxSpeed:          900,
			SpeedRamp:         11,
			MaxFallSpeed:      1500,
			JumpVelocity:      820,
			JumpCutMultiplier: 0.55,
			CoyoteTime:        0.12,
			JumpBuffer:        0.12,
			MaxDeltaTime:      0.05,
		},
		Generator: GeneratorConfig{
			PlatformMinW: 220,
			PlatformMaxW: 420,
			PlatformMinH: 16,
			PlatformMaxH: 26,
			MinGap:       90,
			MaxGap:       190,
			HeightLevels: []float64{0, 70, 120, 170},
			FastSpeed:    520,
			MaxStep:      170,
			MaxStepFast:  125,

			HazardChance:     0.42,
			HazardFastFactor: 0.78,
			HazardFastSpeed:  650,
			MinReactionTime:  0.28,
			MaxReactionTime:  0.60,
			MinHazardSepTime: 0.55,
			HazardSize:       26,

			CoinChance:    0.50,
			CoinMinCount:  3,
			CoinMaxCount:  7,
			CoinSpacing:   34,
			CoinArcChance: 0.55,
			CoinArcHeight: 40,
			CoinSize:      22,
			CoinHover:     56,

			PruneMargin:   300,
			HorizonFactor: 2.2,
		},
		Run: RunConfig{
			ScoreRate:      0.02,
			CoinMultiplier: 1.0,
			MagnetRadius:   90,
			MagnetPull:     2.8,
		},
		Upgrades: UpgradeConfig{
			MaxLevel:         5,
			BaseCost:         50,
			CostGrowth:       1.6,
			JumpPerLevel:     28,
			CoyotePerLevel:   0.03,
			CoinMultPerLevel: 0.25,
			MagnetPerLevel:   30,
		},
	}
}
