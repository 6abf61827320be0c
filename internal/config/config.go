// Package config provides YAML-based gameplay configuration loading and
// difficulty presets for the runner platform.
package config

import "fmt"

// RunnerConfig contains all tunable gameplay parameters for a run.
// Distances are world pixels, times are seconds, speeds are pixels/second.
type RunnerConfig struct {
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Generator GeneratorConfig `yaml:"generator"`
	Run       RunConfig       `yaml:"run"`
	Upgrades  UpgradeConfig   `yaml:"upgrades"`
}

// WorldConfig defines the fixed world-space viewport the simulation runs in.
// The render layer projects this viewport onto whatever terminal size is
// available, so gameplay never depends on the terminal.
type WorldConfig struct {
	ViewportW float64 `yaml:"viewport_w"`
	ViewportH float64 `yaml:"viewport_h"`
	GroundY   float64 `yaml:"ground_y"` // y of the fallback ground line
}

// PlayerConfig defines the player's collision box and screen position.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	CameraOffsetX float64 `yaml:"camera_offset_x"` // player x is pinned to camera + offset
}

// PhysicsConfig defines the kinematics parameters.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	BaseSpeed         float64 `yaml:"base_speed"`
	MaxSpeed          float64 `yaml:"max_speed"`
	SpeedRamp         float64 `yaml:"speed_ramp"` // px/s gained per second of run time
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`
	JumpVelocity      float64 `yaml:"jump_velocity"`
	JumpCutMultiplier float64 `yaml:"jump_cut_multiplier"` // applied to vy on early release
	CoyoteTime        float64 `yaml:"coyote_time"`
	JumpBuffer        float64 `yaml:"jump_buffer"`
	MaxDeltaTime      float64 `yaml:"max_delta_time"` // dt clamp against timer stalls
}

// GeneratorConfig defines procedural level generation parameters.
type GeneratorConfig struct {
	PlatformMinW float64   `yaml:"platform_min_w"`
	PlatformMaxW float64   `yaml:"platform_max_w"`
	PlatformMinH float64   `yaml:"platform_min_h"`
	PlatformMaxH float64   `yaml:"platform_max_h"`
	MinGap       float64   `yaml:"min_gap"`
	MaxGap       float64   `yaml:"max_gap"`
	HeightLevels []float64 `yaml:"height_levels"` // platform tops, px above the ground line
	FastSpeed    float64   `yaml:"fast_speed"`    // speed at which generation tightens
	MaxStep      float64   `yaml:"max_step"`      // height delta clamp between platforms
	MaxStepFast  float64   `yaml:"max_step_fast"` // tighter clamp above FastSpeed

	HazardChance     float64 `yaml:"hazard_chance"`
	HazardFastFactor float64 `yaml:"hazard_fast_factor"` // chance multiplier at high speed
	HazardFastSpeed  float64 `yaml:"hazard_fast_speed"`
	MinReactionTime  float64 `yaml:"min_reaction_time"` // seconds of travel before a hazard
	MaxReactionTime  float64 `yaml:"max_reaction_time"`
	MinHazardSepTime float64 `yaml:"min_hazard_sep_time"` // seconds of travel between hazards
	HazardSize       float64 `yaml:"hazard_size"`

	CoinChance    float64 `yaml:"coin_chance"`
	CoinMinCount  int     `yaml:"coin_min_count"`
	CoinMaxCount  int     `yaml:"coin_max_count"`
	CoinSpacing   float64 `yaml:"coin_spacing"`
	CoinArcChance float64 `yaml:"coin_arc_chance"` // chance a cluster forms a sine arc
	CoinArcHeight float64 `yaml:"coin_arc_height"`
	CoinSize      float64 `yaml:"coin_size"`
	CoinHover     float64 `yaml:"coin_hover"` // cluster base height above platform top

	PruneMargin   float64 `yaml:"prune_margin"`   // despawn distance behind the camera
	HorizonFactor float64 `yaml:"horizon_factor"` // generation horizon in viewport widths
}

// RunConfig defines scoring and pickup parameters.
type RunConfig struct {
	ScoreRate      float64 `yaml:"score_rate"`      // score per pixel of scroll
	CoinMultiplier float64 `yaml:"coin_multiplier"` // base payout multiplier
	MagnetRadius   float64 `yaml:"magnet_radius"`
	MagnetPull     float64 `yaml:"magnet_pull"`
}

// UpgradeConfig defines the persistent upgrade shop economy and the
// per-level effect of each upgrade on run parameters.
type UpgradeConfig struct {
	MaxLevel         int     `yaml:"max_level"`
	BaseCost         int     `yaml:"base_cost"`
	CostGrowth       float64 `yaml:"cost_growth"`
	JumpPerLevel     float64 `yaml:"jump_per_level"`
	CoyotePerLevel   float64 `yaml:"coyote_per_level"`
	CoinMultPerLevel float64 `yaml:"coin_mult_per_level"`
	MagnetPerLevel   float64 `yaml:"magnet_per_level"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the configuration for values the simulation cannot run
// with. It returns the first problem found so a bad config file fails
// before a run starts instead of misbehaving mid-run.
func (c RunnerConfig) Validate() error {
	if c.World.ViewportW <= 0 || c.World.ViewportH <= 0 {
		return fmt.Errorf("config: viewport dimensions must be positive")
	}
	if c.World.GroundY <= 0 || c.World.GroundY > c.World.ViewportH {
		return fmt.Errorf("config: ground_y must be inside the viewport")
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("config: player dimensions must be positive")
	}
	if c.Player.CameraOffsetX < 0 || c.Player.CameraOffsetX >= c.World.ViewportW {
		return fmt.Errorf("config: camera_offset_x must be inside the viewport")
	}

	p := c.Physics
	if p.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive")
	}
	if p.BaseSpeed <= 0 {
		return fmt.Errorf("config: base_speed must be positive")
	}
	if p.MaxSpeed < p.BaseSpeed {
		return fmt.Errorf("config: max_speed must be at least base_speed")
	}
	if p.SpeedRamp < 0 {
		return fmt.Errorf("config: speed_ramp must not be negative")
	}
	if p.MaxFallSpeed <= 0 {
		return fmt.Errorf("config: max_fall_speed must be positive")
	}
	if p.JumpVelocity <= 0 {
		return fmt.Errorf("config: jump_velocity must be positive")
	}
	if p.JumpCutMultiplier <= 0 || p.JumpCutMultiplier > 1 {
		return fmt.Errorf("config: jump_cut_multiplier must be in (0, 1]")
	}
	if p.CoyoteTime < 0 || p.JumpBuffer < 0 {
		return fmt.Errorf("config: coyote_time and jump_buffer must not be negative")
	}
	if p.MaxDeltaTime <= 0 {
		return fmt.Errorf("config: max_delta_time must be positive")
	}

	g := c.Generator
	if g.PlatformMinW <= 0 || g.PlatformMaxW < g.PlatformMinW {
		return fmt.Errorf("config: platform width range is invalid")
	}
	if g.PlatformMinH <= 0 || g.PlatformMaxH < g.PlatformMinH {
		return fmt.Errorf("config: platform height range is invalid")
	}
	if g.MinGap < 0 || g.MaxGap < g.MinGap {
		return fmt.Errorf("config: gap range is invalid")
	}
	if len(g.HeightLevels) == 0 {
		return fmt.Errorf("config: height_levels must not be empty")
	}
	for _, h := range g.HeightLevels {
		if h < 0 {
			return fmt.Errorf("config: height_levels must not be negative")
		}
	}
	if g.FastSpeed <= 0 {
		return fmt.Errorf("config: fast_speed must be positive")
	}
	if g.MaxStep <= 0 || g.MaxStepFast <= 0 {
		return fmt.Errorf("config: max_step values must be positive")
	}
	if g.HazardChance < 0 || g.HazardChance > 1 {
		return fmt.Errorf("config: hazard_chance must be in [0, 1]")
	}
	if g.HazardFastFactor < 0 || g.HazardFastFactor > 1 {
		return fmt.Errorf("config: hazard_fast_factor must be in [0, 1]")
	}
	if g.HazardFastSpeed <= 0 {
		return fmt.Errorf("config: hazard_fast_speed must be positive")
	}
	if g.MinReactionTime < 0 || g.MaxReactionTime < g.MinReactionTime {
		return fmt.Errorf("config: reaction time range is invalid")
	}
	if g.MinHazardSepTime < 0 {
		return fmt.Errorf("config: min_hazard_sep_time must not be negative")
	}
	if g.HazardSize <= 0 {
		return fmt.Errorf("config: hazard_size must be positive")
	}
	if g.CoinChance < 0 || g.CoinChance > 1 {
		return fmt.Errorf("config: coin_chance must be in [0, 1]")
	}
	if g.CoinMinCount < 1 || g.CoinMaxCount < g.CoinMinCount {
		return fmt.Errorf("config: coin count range is invalid")
	}
	if g.CoinSpacing <= 0 {
		return fmt.Errorf("config: coin_spacing must be positive")
	}
	if g.CoinArcChance < 0 || g.CoinArcChance > 1 {
		return fmt.Errorf("config: coin_arc_chance must be in [0, 1]")
	}
	if g.CoinArcHeight < 0 {
		return fmt.Errorf("config: coin_arc_height must not be negative")
	}
	if g.CoinSize <= 0 {
		return fmt.Errorf("config: coin_size must be positive")
	}
	if g.CoinHover < 0 {
		return fmt.Errorf("config: coin_hover must not be negative")
	}
	if g.PruneMargin < 0 {
		return fmt.Errorf("config: prune_margin must not be negative")
	}
	if g.HorizonFactor < 1 {
		return fmt.Errorf("config: horizon_factor must be at least 1")
	}

	r := c.Run
	if r.ScoreRate < 0 {
		return fmt.Errorf("config: score_rate must not be negative")
	}
	if r.CoinMultiplier < 0 {
		return fmt.Errorf("config: coin_multiplier must not be negative")
	}
	if r.MagnetRadius < 0 || r.MagnetPull < 0 {
		return fmt.Errorf("config: magnet values must not be negative")
	}

	u := c.Upgrades
	if u.MaxLevel < 0 {
		return fmt.Errorf("config: upgrade max_level must not be negative")
	}
	if u.BaseCost < 0 {
		return fmt.Errorf("config: upgrade base_cost must not be negative")
	}
	if u.CostGrowth < 1 {
		return fmt.Errorf("config: upgrade cost_growth must be at least 1")
	}

	return nil
}
