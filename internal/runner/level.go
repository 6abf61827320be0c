package runner

import (
	"math"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/core"
)

// Level owns the procedurally generated world: platforms, hazards, and
// coins. Generation is chunk-based and pull-driven: each tick the game asks
// for enough chunks to cover the horizon ahead of the camera, and entities
// that scroll past the prune margin are dropped. All randomness comes from
// the level's own seeded RNG so a seed fully determines the layout.
type Level struct {
	rng *SimpleRNG
	cfg *config.RunnerConfig

	platforms []core.RectF
	hazards   []core.RectF
	coins     []core.RectF

	nextSpawnX  float64 // left edge of the next chunk (generation frontier)
	lastPlatTop float64
	lastHazardX float64
}

// NewLevel creates a level generator bound to the given config.
func NewLevel(seed int64, cfg *config.RunnerConfig) *Level {
	l := &Level{cfg: cfg}
	l.Reset(seed)
	return l
}

// Reset clears the world and lays down the starter strip the player begins
// the run standing on.
func (l *Level) Reset(seed int64) {
	l.rng = NewSimpleRNG(seed)

	g := l.cfg.Generator
	starter := core.NewRectF(
		-l.cfg.Player.CameraOffsetX-40,
		l.cfg.World.GroundY,
		700,
		g.PlatformMaxH,
	)

	l.platforms = []core.RectF{starter}
	l.hazards = nil
	l.coins = nil

	l.nextSpawnX = starter.Right() + g.MinGap
	l.lastPlatTop = starter.Y
	l.lastHazardX = starter.X - 1e9
}

// EnsureAhead extends the world until the generation frontier covers the
// horizon ahead of the camera. Platforms spawn well off-screen so they
// never pop into view.
func (l *Level) EnsureAhead(camX, speed float64) {
	horizon := camX + l.cfg.Generator.HorizonFactor*l.cfg.World.ViewportW
	for l.nextSpawnX < horizon {
		l.spawnChunk(speed)
	}
}

// spawnChunk generates one platform with its optional hazard and coin
// cluster, then advances the frontier past a gap.
func (l *Level) spawnChunk(speed float64) {
	g := l.cfg.Generator

	w := l.rng.FloatRange(g.PlatformMinW, g.PlatformMaxW)
	h := l.rng.FloatRange(g.PlatformMinH, g.PlatformMaxH)
	top := l.pickTop(speed)

	plat := core.NewRectF(l.nextSpawnX, top, w, h)
	l.platforms = append(l.platforms, plat)
	l.lastPlatTop = top

	l.maybeSpawnHazard(plat, speed)
	l.maybeSpawnCoins(plat)

	gap := l.rng.FloatRange(g.MinGap, g.MaxGap)
	l.nextSpawnX = plat.Right() + gap
}

// pickTop chooses the next platform's top edge from the discrete height
// levels. The previous platform's height is duplicated into the candidate
// pool so runs of equal-height platforms are common, with a stronger bias
// at high speed where staircases get hard to read. The chosen height is
// then clamped to the maximum step from the previous top.
func (l *Level) pickTop(speed float64) float64 {
	g := l.cfg.Generator
	groundY := l.cfg.World.GroundY

	prevLevel := groundY - l.lastPlatTop

	dups := 2
	if speed > g.FastSpeed {
		dups = 3
	}

	pool := make([]float64, 0, len(g.HeightLevels)+dups)
	pool = append(pool, g.HeightLevels...)
	for range dups {
		pool = append(pool, prevLevel)
	}

	top := groundY - pool[l.rng.Intn(len(pool))]

	maxStep := g.MaxStep
	if speed > g.FastSpeed {
		maxStep = g.MaxStepFast
	}
	top = l.lastPlatTop + core.ClampF(top-l.lastPlatTop, -maxStep, maxStep)
	if top > groundY {
		top = groundY
	}
	return top
}

// maybeSpawnHazard rolls for a spike on the platform top. The spike sits
// at least a reaction window past the platform's leading edge and at least
// the minimum separation past the previous spike; when the platform cannot
// satisfy both, no spike spawns.
func (l *Level) maybeSpawnHazard(plat core.RectF, speed float64) {
	g := l.cfg.Generator

	chance := g.HazardChance
	if speed > g.HazardFastSpeed {
		chance *= g.HazardFastFactor
	}
	if !l.rng.Chance(chance) {
		return
	}

	hx := plat.X + speed*l.rng.FloatRange(g.MinReactionTime, g.MaxReactionTime)

	minSep := speed * g.MinHazardSepTime
	if hx < l.lastHazardX+minSep {
		hx = l.lastHazardX + minSep
	}
	if hx > plat.Right()-g.HazardSize {
		return
	}

	l.hazards = append(l.hazards, core.NewRectF(hx, plat.Y-g.HazardSize, g.HazardSize, g.HazardSize))
	l.lastHazardX = hx
}

// maybeSpawnCoins rolls for a coin cluster hovering above the platform,
// either in a flat line or a sine arc. Clusters shrink to fit short
// platforms but never below a single coin.
func (l *Level) maybeSpawnCoins(plat core.RectF) {
	g := l.cfg.Generator

	if !l.rng.Chance(g.CoinChance) {
		return
	}

	count := g.CoinMinCount + l.rng.Intn(g.CoinMaxCount-g.CoinMinCount+1)
	maxFit := int((plat.W-g.CoinSize)/g.CoinSpacing) + 1
	if count > maxFit {
		count = maxFit
	}
	if count < 1 {
		count = 1
	}

	span := float64(count-1) * g.CoinSpacing
	startX := plat.X + (plat.W-span-g.CoinSize)/2
	baseY := plat.Y - g.CoinHover
	arc := l.rng.Chance(g.CoinArcChance)

	for i := range count {
		y := baseY
		if arc && count > 1 {
			y -= math.Sin(math.Pi*float64(i)/float64(count-1)) * g.CoinArcHeight
		}
		l.coins = append(l.coins, core.NewRectF(startX+float64(i)*g.CoinSpacing, y, g.CoinSize, g.CoinSize))
	}
}

// Cleanup drops entities whose right edge scrolled past the prune margin
// behind the camera.
func (l *Level) Cleanup(camX float64) {
	cutoff := camX - l.cfg.Generator.PruneMargin

	platforms := l.platforms[:0]
	for _, p := range l.platforms {
		if p.Right() >= cutoff {
			platforms = append(platforms, p)
		}
	}
	l.platforms = platforms

	hazards := l.hazards[:0]
	for _, hz := range l.hazards {
		if hz.Right() >= cutoff {
			hazards = append(hazards, hz)
		}
	}
	l.hazards = hazards

	coins := l.coins[:0]
	for _, c := range l.coins {
		if c.Right() >= cutoff {
			coins = append(coins, c)
		}
	}
	l.coins = coins
}
