package runner

import (
	"fmt"
	"math"

	"github.com/Gcxe/endless-runner-web/internal/config"
)

// Upgrade identifiers shared by the shop, storage, and run parameter
// derivation.
const (
	UpgradeJump     = "jump"
	UpgradeCoyote   = "coyote"
	UpgradeCoinMult = "coin_mult"
	UpgradeMagnet   = "magnet"
)

// UpgradeIDs lists all upgrade identifiers in display order.
var UpgradeIDs = []string{UpgradeJump, UpgradeCoyote, UpgradeCoinMult, UpgradeMagnet}

// UpgradeLevels holds the purchased level of each persistent upgrade.
type UpgradeLevels struct {
	Jump     int
	Coyote   int
	CoinMult int
	Magnet   int
}

// UpgradeLevelsFromMap builds UpgradeLevels from storage rows keyed by
// upgrade identifier. Missing keys default to level zero.
func UpgradeLevelsFromMap(m map[string]int) UpgradeLevels {
	return UpgradeLevels{
		Jump:     m[UpgradeJump],
		Coyote:   m[UpgradeCoyote],
		CoinMult: m[UpgradeCoinMult],
		Magnet:   m[UpgradeMagnet],
	}
}

// RunParams are the per-run parameters derived once at run start from the
// base config plus the player's purchased upgrades. They stay constant for
// the whole run; mid-run upgrades do not exist.
type RunParams struct {
	JumpVelocity   float64
	Coyote         float64
	CoinMultiplier float64
	MagnetRadius   float64
}

// DeriveRunParams combines the base config with upgrade levels. Levels
// outside [0, max_level] are an error so the caller can refuse to start
// the run instead of playing with corrupt values.
func DeriveRunParams(cfg config.RunnerConfig, lv UpgradeLevels) (RunParams, error) {
	max := cfg.Upgrades.MaxLevel
	for _, u := range []struct {
		id    string
		level int
	}{
		{UpgradeJump, lv.Jump},
		{UpgradeCoyote, lv.Coyote},
		{UpgradeCoinMult, lv.CoinMult},
		{UpgradeMagnet, lv.Magnet},
	} {
		if u.level < 0 || u.level > max {
			return RunParams{}, fmt.Errorf("runner: upgrade %s level %d outside [0, %d]", u.id, u.level, max)
		}
	}

	u := cfg.Upgrades
	return RunParams{
		JumpVelocity:   cfg.Physics.JumpVelocity + float64(lv.Jump)*u.JumpPerLevel,
		Coyote:         cfg.Physics.CoyoteTime + float64(lv.Coyote)*u.CoyotePerLevel,
		CoinMultiplier: cfg.Run.CoinMultiplier + float64(lv.CoinMult)*u.CoinMultPerLevel,
		MagnetRadius:   cfg.Run.MagnetRadius + float64(lv.Magnet)*u.MagnetPerLevel,
	}, nil
}

// UpgradeCost returns the price of buying the next level when the current
// level is the given one.
func UpgradeCost(cfg config.UpgradeConfig, level int) int {
	return int(float64(cfg.BaseCost) * math.Pow(cfg.CostGrowth, float64(level)))
}
