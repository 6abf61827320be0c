// Package runner implements a side-scrolling endless runner: an
// auto-scrolling world of one-way platforms, spike hazards, and coin
// clusters over a procedurally generated, seed-deterministic level. The
// simulation is pure: no I/O, no clocks, no platform dependencies.
package runner

import (
	"fmt"
	"math"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/core"
	"github.com/Gcxe/endless-runner-web/internal/registry"
)

// Visual characters for rendering
const (
	PlayerBody   = '█'
	PlayerHead   = '◆'
	PlatformChar = '█'
	HazardChar   = '▲'
	CoinChar     = '●'
	DustChar     = '·'
	SparkleChar  = '*'
	GroundChar   = '═'
)

// Mode selects the difficulty flavor a Game registers under.
// Each mode keeps its own leaderboard.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEasy
	ModeHard
)

// Preset returns the difficulty preset this mode plays with by default.
func (m Mode) Preset() config.DifficultyPreset {
	switch m {
	case ModeEasy:
		return config.DifficultyEasy
	case ModeHard:
		return config.DifficultyHard
	default:
		return config.DifficultyNormal
	}
}

// Game implements the endless runner simulation.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	params  RunParams

	camX    float64 // left edge of the world viewport
	speed   float64 // current scroll speed, px/s
	score   float64
	coins   int
	payout  int // currency credited on death
	dead    bool
	paused  bool
	tick    int
	elapsed float64 // run time in seconds, pause excluded

	player    Player
	level     *Level
	particles []Particle
	fxRNG     *SimpleRNG // particle randomness, separate stream from the level

	events []core.Event // scratch, rebuilt every tick
}

// Package-level knobs set by the CLI/platform before a run starts.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	upgradeLevels    UpgradeLevels
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the mode's default difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use the mode default
	}
}

// SetUpgradeLevels installs the player's persistent upgrades for the next
// run. Negative levels are rejected; levels above the config maximum are
// caught at run start by DeriveRunParams.
func SetUpgradeLevels(lv UpgradeLevels) error {
	if lv.Jump < 0 || lv.Coyote < 0 || lv.CoinMult < 0 || lv.Magnet < 0 {
		return fmt.Errorf("runner: upgrade levels must not be negative")
	}
	upgradeLevels = lv
	return nil
}

// New creates a normal-mode runner instance.
func New() *Game {
	return NewWithMode(ModeNormal)
}

// NewWithMode creates a runner instance for the given mode.
func NewWithMode(m Mode) *Game {
	return &Game{mode: m}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	switch g.mode {
	case ModeEasy:
		return "runner_easy"
	case ModeHard:
		return "runner_hard"
	default:
		return "runner"
	}
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	switch g.mode {
	case ModeEasy:
		return "Skyline Dash (Easy)"
	case ModeHard:
		return "Skyline Dash (Hard)"
	default:
		return "Skyline Dash"
	}
}

// Reset initializes or restarts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load gameplay config
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}

	preset := difficultyPreset
	if preset == "" {
		preset = g.mode.Preset()
	}
	config.ApplyRunnerPreset(&cfg, preset)

	// The CLI validates configs before starting; this guards direct
	// embedders and files edited between validation and reset.
	if cfg.Validate() != nil {
		cfg = config.DefaultRunnerConfig()
		config.ApplyRunnerPreset(&cfg, preset)
	}
	g.cfg = cfg

	params, err := DeriveRunParams(cfg, upgradeLevels)
	if err != nil {
		params, _ = DeriveRunParams(cfg, UpgradeLevels{})
	}
	g.params = params

	g.camX = 0
	g.speed = cfg.Physics.BaseSpeed
	g.score = 0
	g.coins = 0
	g.payout = 0
	g.dead = false
	g.paused = false
	g.tick = 0
	g.elapsed = 0
	g.particles = g.particles[:0]
	g.events = g.events[:0]

	g.fxRNG = NewSimpleRNG(runtime.Seed)
	g.level = NewLevel(runtime.Seed, &g.cfg)

	p := &g.player
	p.W = cfg.Player.Width
	p.H = cfg.Player.Height
	p.X = g.camX + cfg.Player.CameraOffsetX
	p.Y = cfg.World.GroundY - p.H
	p.VY = 0
	p.OnGround = true
	p.CoyoteLeft = params.Coyote
	p.BufferLeft = 0
	p.JumpCut = false
	p.AirTime = 0
	p.SquashLeft = 0

	g.level.EnsureAhead(g.camX, g.speed)
}

// Step advances the simulation by dt seconds. After death the state is
// frozen: ticks return the final state and no events until Reset.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.events = g.events[:0]

	if g.dead {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.WasPressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State(), Events: g.events}
	}

	// Clamp dt so timer stalls (missed ticks, suspended terminals) cannot
	// teleport the player through geometry.
	dt = core.ClampF(dt, 0, g.cfg.Physics.MaxDeltaTime)
	if dt == 0 {
		return core.StepResult{State: g.State(), Events: g.events}
	}

	g.tick++
	g.elapsed += dt

	// Speed ramps with run time; the whole tick sees the updated speed.
	ph := g.cfg.Physics
	g.speed = math.Min(ph.MaxSpeed, ph.BaseSpeed+ph.SpeedRamp*g.elapsed)
	g.score += g.speed * dt * g.cfg.Run.ScoreRate

	g.camX += g.speed * dt

	g.stepPlayer(in, dt)

	g.level.EnsureAhead(g.camX, g.speed)
	g.level.Cleanup(g.camX)

	g.applyMagnet(dt)
	g.collectCoins()
	g.checkHazards()

	g.stepParticles(dt)

	return core.StepResult{State: g.State(), Events: g.events}
}

// applyMagnet pulls coins within the magnet radius toward the player,
// stronger the closer they get.
func (g *Game) applyMagnet(dt float64) {
	radius := g.params.MagnetRadius
	if radius <= 0 {
		return
	}

	px, py := g.player.Rect().Center()
	for i := range g.level.coins {
		c := &g.level.coins[i]
		cx, cy := c.Center()
		dx, dy := px-cx, py-cy
		dist := math.Hypot(dx, dy)
		if dist >= radius || dist < 1e-6 {
			continue
		}
		f := (radius - dist) / radius * g.cfg.Run.MagnetPull * dt
		c.X += dx * f
		c.Y += dy * f
	}
}

// collectCoins removes coins overlapping the player and credits them.
func (g *Game) collectCoins() {
	pr := g.player.Rect()

	kept := g.level.coins[:0]
	for _, c := range g.level.coins {
		if pr.Intersects(c) {
			g.coins++
			g.spawnSparkles(c)
			g.emit(core.Event{
				Kind:  core.EventCoinCollected,
				Rect:  c,
				Score: int(g.score),
				Coins: g.coins,
			})
			continue
		}
		kept = append(kept, c)
	}
	g.level.coins = kept
}

// checkHazards ends the run on any hazard overlap. The payout is computed
// here, once, so the death event carries the final numbers.
func (g *Game) checkHazards() {
	pr := g.player.Rect()
	for _, hz := range g.level.hazards {
		if pr.Intersects(hz) {
			g.dead = true
			g.payout = int(math.Floor(float64(g.coins) * g.params.CoinMultiplier))
			g.emit(core.Event{
				Kind:   core.EventDied,
				Rect:   pr,
				Score:  int(g.score),
				Coins:  g.coins,
				Payout: g.payout,
			})
			return
		}
	}
}

func (g *Game) emit(ev core.Event) {
	g.events = append(g.events, ev)
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.score),
		Coins:    g.coins,
		GameOver: g.dead,
		Paused:   g.paused,
	}
}

// Payout returns the currency credited for this run. Zero until death.
func (g *Game) Payout() int {
	return g.payout
}

// Speed returns the current scroll speed in px/s.
func (g *Game) Speed() float64 {
	return g.speed
}

// Elapsed returns the run time in seconds, pauses excluded.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Render draws the current run state to the screen. The fixed world
// viewport is projected onto however many cells the terminal offers, so
// the same run looks the same at any size.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	sx := float64(dst.Width()) / g.cfg.World.ViewportW
	sy := float64(dst.Height()) / g.cfg.World.ViewportH

	// Ground line
	groundRow := int(g.cfg.World.GroundY * sy)
	dst.DrawHLineColored(0, groundRow, dst.Width(), GroundChar, core.ColorGray)

	// Platforms
	for _, p := range g.level.platforms {
		r := g.projectRect(p, sx, sy)
		dst.DrawRectColored(r, PlatformChar, core.ColorGreen)
	}

	// Hazards
	for _, hz := range g.level.hazards {
		r := g.projectRect(hz, sx, sy)
		dst.DrawRectColored(r, HazardChar, core.ColorBrightRed)
	}

	// Coins
	for _, c := range g.level.coins {
		cx, cy := c.Center()
		dst.SetCell(int((cx-g.camX)*sx), int(cy*sy), CoinChar, core.ColorBrightYellow)
	}

	// Particles
	for _, pt := range g.particles {
		ch, color := DustChar, core.ColorGray
		if pt.Kind == ParticleSparkle {
			ch, color = SparkleChar, core.ColorBrightYellow
		}
		dst.SetCell(int((pt.X-g.camX)*sx), int(pt.Y*sy), ch, color)
	}

	g.drawPlayer(dst, sx, sy)

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", int(g.score)))
	coinText := fmt.Sprintf(" %c %d ", CoinChar, g.coins)
	dst.DrawTextColored(2, 1, coinText, core.ColorBrightYellow)
	speedText := fmt.Sprintf(" Spd: %.0f ", g.speed)
	dst.DrawText(dst.Width()-len(speedText)-2, 0, speedText)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.dead {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  +%d coins  |  Press R to restart", int(g.score), g.payout))
	}
}

// projectRect maps a world rectangle to screen cells, keeping at least one
// cell in each dimension so thin entities stay visible.
func (g *Game) projectRect(r core.RectF, sx, sy float64) core.Rect {
	x0 := int((r.X - g.camX) * sx)
	x1 := int((r.Right() - g.camX) * sx)
	y0 := int(r.Y * sy)
	y1 := int(r.Bottom() * sy)
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// drawPlayer renders the runner sprite with a landing squash.
func (g *Game) drawPlayer(dst *core.Screen, sx, sy float64) {
	r := g.projectRect(g.player.Rect(), sx, sy)

	if g.player.SquashLeft > 0 && r.H > 1 {
		r.Y++
		r.H--
	}

	dst.DrawRectColored(r, PlayerBody, core.ColorBrightCyan)
	if r.W > 1 {
		dst.SetCell(r.Right()-1, r.Y, PlayerHead, core.ColorBrightCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register all runner modes with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return NewWithMode(ModeNormal)
	})
	registry.Register("runner_easy", func() registry.Game {
		return NewWithMode(ModeEasy)
	})
	registry.Register("runner_hard", func() registry.Game {
		return NewWithMode(ModeHard)
	})
}
