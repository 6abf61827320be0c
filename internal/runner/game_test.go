package runner

import (
	"math"
	"strings"
	"testing"

	"github.com/Gcxe/endless-runner-web/internal/core"
)

const testDT = 1.0 / 60

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame resets the package-level knobs so tests do not leak
// difficulty presets or upgrades into each other.
func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	SetConfigPath("")
	SetDifficultyPreset("")
	if err := SetUpgradeLevels(UpgradeLevels{}); err != nil {
		t.Fatal(err)
	}
	g := New()
	g.Reset(testRuntime(seed))
	return g
}

// stepClean removes already-spawned hazards before stepping, for tests
// that need the player to survive long scripted stretches. Newly spawned
// hazards are far past the horizon and unreachable within one tick.
func stepClean(g *Game, in core.InputFrame, dt float64) core.StepResult {
	g.level.hazards = g.level.hazards[:0]
	return g.Step(in, dt)
}

// scriptedInput returns the input frame for tick i of the standard test
// script: press jump every 30 ticks, release 8 ticks later.
func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	switch i % 30 {
	case 0:
		in.Press(core.ActionJump)
	case 1, 2, 3, 4, 5, 6, 7:
		in.Hold(core.ActionJump)
	case 8:
		in.Release(core.ActionJump)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and same input script must produce identical runs.
	run := func() (*Game, int) {
		g := newTestGame(t, 12345)
		ticks := 0
		for i := 0; i < 600; i++ {
			result := g.Step(scriptedInput(i), testDT)
			ticks++
			if result.State.GameOver {
				break
			}
		}
		return g, ticks
	}

	g1, ticks1 := run()
	g2, ticks2 := run()

	if ticks1 != ticks2 {
		t.Fatalf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", ticks1, ticks2)
	}
	if g1.State().Score != g2.State().Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", g1.State().Score, g2.State().Score)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: snapshot hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
}

func TestGameSeedChangesLayout(t *testing.T) {
	g1 := newTestGame(t, 1)
	g2 := newTestGame(t, 2)

	if len(g1.level.platforms) < 2 || len(g2.level.platforms) < 2 {
		t.Fatal("expected generated platforms after reset")
	}

	same := len(g1.level.platforms) == len(g2.level.platforms)
	if same {
		for i := range g1.level.platforms {
			if g1.level.platforms[i] != g2.level.platforms[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds should produce different layouts")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 42)

	for i := 0; i < 90; i++ {
		stepClean(g, scriptedInput(i), testDT)
	}

	g.Reset(testRuntime(42))

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %f", g.score)
	}
	if g.coins != 0 {
		t.Errorf("Reset should clear coins, got %d", g.coins)
	}
	if g.dead {
		t.Error("Reset should clear the dead flag")
	}
	if g.paused {
		t.Error("Reset should clear the paused flag")
	}
	if g.tick != 0 {
		t.Errorf("Reset should clear tick count, got %d", g.tick)
	}
	if g.camX != 0 {
		t.Errorf("Reset should rewind the camera, got %f", g.camX)
	}
	if !g.player.OnGround {
		t.Error("Reset should place the player on the ground")
	}
	if got := g.player.Y + g.player.H; got != g.cfg.World.GroundY {
		t.Errorf("player bottom after reset = %f, expected %f", got, g.cfg.World.GroundY)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)

	pauseInput := core.NewInputFrame()
	pauseInput.Press(core.ActionPause)
	g.Step(pauseInput, testDT)

	if !g.paused {
		t.Fatal("Game should be paused")
	}

	camBefore := g.camX
	yBefore := g.player.Y
	elapsedBefore := g.elapsed

	noInput := core.NewInputFrame()
	for range 10 {
		g.Step(noInput, testDT)
	}

	if g.camX != camBefore {
		t.Errorf("Camera should not move while paused, was %f, now %f", camBefore, g.camX)
	}
	if g.player.Y != yBefore {
		t.Errorf("Player should not move while paused, was %f, now %f", yBefore, g.player.Y)
	}
	if g.elapsed != elapsedBefore {
		t.Errorf("Run time should not advance while paused, was %f, now %f", elapsedBefore, g.elapsed)
	}

	g.Step(pauseInput, testDT)
	if g.paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameDtClamp(t *testing.T) {
	g := newTestGame(t, 1)

	// A huge wall-clock gap must advance the simulation by at most the
	// configured clamp.
	g.Step(core.NewInputFrame(), 10.0)

	max := g.cfg.Physics.MaxDeltaTime
	if g.elapsed != max {
		t.Errorf("elapsed = %f, expected clamp to %f", g.elapsed, max)
	}
	wantCam := g.speed * max
	if diff := g.camX - wantCam; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("camX = %f, expected %f", g.camX, wantCam)
	}
}

func TestGameDeathFreezesState(t *testing.T) {
	g := newTestGame(t, 7)
	g.coins = 5

	// Drop a spike onto the player's position.
	g.level.hazards = append(g.level.hazards, g.player.Rect())

	result := g.Step(core.NewInputFrame(), testDT)
	if !result.State.GameOver {
		t.Fatal("overlapping a hazard should end the run")
	}

	var died *core.Event
	for i := range result.Events {
		if result.Events[i].Kind == core.EventDied {
			died = &result.Events[i]
		}
	}
	if died == nil {
		t.Fatal("expected an EventDied on the death tick")
	}
	if died.Payout != 5 {
		t.Errorf("payout = %d, expected floor(5 * 1.0) = 5", died.Payout)
	}
	if g.Payout() != 5 {
		t.Errorf("Payout() = %d, expected 5", g.Payout())
	}

	// Further ticks must not mutate anything or emit events.
	snapBefore := g.Snapshot()
	for range 10 {
		result = g.Step(scriptedInput(0), testDT)
		if len(result.Events) != 0 {
			t.Fatal("dead game should not emit events")
		}
	}
	snapAfter := g.Snapshot()
	if snapAfter.Hash() != snapBefore.Hash() {
		t.Error("dead game state should be frozen until Reset")
	}
}

func TestGamePayoutUsesMultiplier(t *testing.T) {
	SetConfigPath("")
	SetDifficultyPreset("")
	if err := SetUpgradeLevels(UpgradeLevels{CoinMult: 2}); err != nil {
		t.Fatal(err)
	}
	g := New()
	g.Reset(testRuntime(3))

	// coin_mult 2 on the default config: 1.0 + 2*0.25 = 1.5
	g.coins = 3
	g.level.hazards = append(g.level.hazards, g.player.Rect())
	g.Step(core.NewInputFrame(), testDT)

	if !g.dead {
		t.Fatal("expected death")
	}
	if g.payout != 4 {
		t.Errorf("payout = %d, expected floor(3 * 1.5) = 4", g.payout)
	}

	if err := SetUpgradeLevels(UpgradeLevels{}); err != nil {
		t.Fatal(err)
	}
}

func TestGameCoinCollectedExactlyOnce(t *testing.T) {
	g := newTestGame(t, 9)

	// Place one coin directly on the player.
	px, py := g.player.Rect().Center()
	size := g.cfg.Generator.CoinSize
	g.level.coins = append(g.level.coins, core.NewRectF(px-size/2, py-size/2, size, size))
	countBefore := len(g.level.coins)

	result := stepClean(g, core.NewInputFrame(), testDT)

	collected := 0
	for _, ev := range result.Events {
		if ev.Kind == core.EventCoinCollected {
			collected++
			if ev.Coins != g.coins {
				t.Errorf("event coin total = %d, expected %d", ev.Coins, g.coins)
			}
		}
	}
	if collected != 1 {
		t.Fatalf("expected exactly one collect event, got %d", collected)
	}
	if g.coins != 1 {
		t.Errorf("coins = %d, expected 1", g.coins)
	}
	if len(g.level.coins) != countBefore-1 {
		t.Errorf("collected coin should be removed from the world")
	}

	// The same coin cannot be collected twice.
	result = stepClean(g, core.NewInputFrame(), testDT)
	for _, ev := range result.Events {
		if ev.Kind == core.EventCoinCollected {
			t.Error("coin collected twice")
		}
	}
}

func TestGameMagnetPullsCoins(t *testing.T) {
	SetConfigPath("")
	SetDifficultyPreset("")
	if err := SetUpgradeLevels(UpgradeLevels{Magnet: 2}); err != nil {
		t.Fatal(err)
	}
	g := New()
	g.Reset(testRuntime(11))

	// Coins are static in world space, so any change in coin Y can only
	// come from the magnet. One coin hovers inside the radius, one far
	// outside it.
	size := g.cfg.Generator.CoinSize
	px, py := g.player.Rect().Center()
	near := core.NewRectF(px-size/2, py-100-size/2, size, size)
	far := core.NewRectF(px-size/2, py-400-size/2, size, size)
	g.level.coins = append(g.level.coins, near, far)
	nearIdx := len(g.level.coins) - 2
	farIdx := len(g.level.coins) - 1

	stepClean(g, core.NewInputFrame(), testDT)

	if got := g.level.coins[nearIdx].Y; got <= near.Y {
		t.Errorf("magnet should pull the near coin down, was %f, now %f", near.Y, got)
	}
	if got := g.level.coins[farIdx].Y; got != far.Y {
		t.Errorf("coin outside the radius should not move, was %f, now %f", far.Y, got)
	}

	if err := SetUpgradeLevels(UpgradeLevels{}); err != nil {
		t.Fatal(err)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	str := screen.String()
	hasContent := false
	for _, ch := range str {
		if ch != ' ' && ch != '\n' {
			hasContent = true
			break
		}
	}
	if !hasContent {
		t.Fatal("Render should draw something to the screen")
	}

	// The player sprite must be visible somewhere.
	playerVisible := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Color == core.ColorBrightCyan {
				playerVisible = true
			}
		}
	}
	if !playerVisible {
		t.Error("player sprite should be drawn")
	}

	// HUD shows the score.
	row0 := screen.Row(0)
	if !strings.Contains(row0, "Score:") {
		t.Errorf("HUD should show the score, row 0 = %q", row0)
	}
}

func TestGameSpeedRamp(t *testing.T) {
	g := newTestGame(t, 1)
	ph := g.cfg.Physics

	prev := 0.0
	for i := range 150 {
		stepClean(g, core.NewInputFrame(), testDT)

		want := math.Min(ph.MaxSpeed, ph.BaseSpeed+ph.SpeedRamp*g.elapsed)
		if diff := g.speed - want; diff < -1e-9 || diff > 1e-9 {
			t.Fatalf("tick %d: speed = %f, expected %f", i, g.speed, want)
		}
		if g.speed < prev {
			t.Fatalf("tick %d: speed decreased from %f to %f", i, prev, g.speed)
		}
		prev = g.speed
	}

	// Far enough into a run the ramp hits the cap.
	g.elapsed = 1000
	stepClean(g, core.NewInputFrame(), testDT)
	if g.speed != ph.MaxSpeed {
		t.Errorf("speed = %f, expected cap %f", g.speed, ph.MaxSpeed)
	}
}

func TestGameScoreFollowsDistance(t *testing.T) {
	g := newTestGame(t, 1)

	var wantScore float64
	for range 60 {
		stepClean(g, core.NewInputFrame(), testDT)
		wantScore += g.speed * testDT * g.cfg.Run.ScoreRate
	}

	if diff := g.score - wantScore; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("score = %f, expected %f", g.score, wantScore)
	}
	if g.State().Score != int(g.score) {
		t.Errorf("reported score = %d, expected %d", g.State().Score, int(g.score))
	}
}

func TestGameModes(t *testing.T) {
	normal := NewWithMode(ModeNormal)
	easy := NewWithMode(ModeEasy)
	hard := NewWithMode(ModeHard)

	if normal.ID() != "runner" || easy.ID() != "runner_easy" || hard.ID() != "runner_hard" {
		t.Errorf("mode IDs wrong: %q, %q, %q", normal.ID(), easy.ID(), hard.ID())
	}
	if normal.Title() == easy.Title() || easy.Title() == hard.Title() {
		t.Error("mode titles should differ")
	}

	SetConfigPath("")
	SetDifficultyPreset("")
	if err := SetUpgradeLevels(UpgradeLevels{}); err != nil {
		t.Fatal(err)
	}
	easy.Reset(testRuntime(5))
	hard.Reset(testRuntime(5))

	if easy.cfg.Physics.BaseSpeed >= hard.cfg.Physics.BaseSpeed {
		t.Errorf("easy base speed %f should be below hard %f",
			easy.cfg.Physics.BaseSpeed, hard.cfg.Physics.BaseSpeed)
	}
}
