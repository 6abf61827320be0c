package runner

import (
	"testing"

	"github.com/Gcxe/endless-runner-web/internal/core"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g1 := newTestGame(t, 4242)
	for i := range 100 {
		stepClean(g1, scriptedInput(i), testDT)
	}

	snap := g1.Snapshot()

	g2 := newTestGame(t, 4242)
	g2.ApplySnapshot(snap)

	s1 := g1.Snapshot()
	s2 := g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Fatal("restored game should hash identically to the source")
	}
	if g1.player != g2.player {
		t.Errorf("player state differs after restore: %+v vs %+v", g1.player, g2.player)
	}
	if g1.camX != g2.camX || g1.speed != g2.speed || g1.elapsed != g2.elapsed {
		t.Error("camera or clock state differs after restore")
	}

	// A restored run must continue exactly like the original.
	for i := range 50 {
		in := scriptedInput(100 + i)
		stepClean(g1, in, testDT)
		stepClean(g2, in, testDT)
	}
	s1 = g1.Snapshot()
	s2 = g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Error("restored game diverged from the source after resuming")
	}
}

func TestSnapshotHashChangesWithState(t *testing.T) {
	g := newTestGame(t, 5)

	s0 := g.Snapshot()
	for range 10 {
		stepClean(g, core.NewInputFrame(), testDT)
	}
	s1 := g.Snapshot()

	if s0.Hash() == s1.Hash() {
		t.Error("hash should change when the simulation advances")
	}
}

func TestSnapshotMidJump(t *testing.T) {
	g := newTestGame(t, 6)

	g.Step(jumpPress(), testDT)
	g.Step(core.NewInputFrame(), testDT)
	g.Step(jumpRelease(), testDT)

	if g.player.OnGround || !g.player.JumpCut {
		t.Fatal("expected a cut jump in flight")
	}

	snap := g.Snapshot()
	g2 := newTestGame(t, 6)
	g2.ApplySnapshot(snap)

	if g2.player.VY != g.player.VY {
		t.Errorf("restored VY = %f, expected %f", g2.player.VY, g.player.VY)
	}
	if !g2.player.JumpCut {
		t.Error("restore should preserve the jump cut flag")
	}
	if g2.player.OnGround {
		t.Error("restore should leave the player airborne")
	}
}

func TestSnapshotCapturesDeath(t *testing.T) {
	g := newTestGame(t, 8)
	g.coins = 4
	g.level.hazards = append(g.level.hazards, g.player.Rect())
	g.Step(core.NewInputFrame(), testDT)
	if !g.dead {
		t.Fatal("expected a dead run")
	}

	snap := g.Snapshot()
	g2 := newTestGame(t, 8)
	g2.ApplySnapshot(snap)

	if !g2.dead {
		t.Error("restore should preserve the dead flag")
	}
	if g2.payout != g.payout {
		t.Errorf("restored payout = %d, expected %d", g2.payout, g.payout)
	}
	if g2.coins != 4 {
		t.Errorf("restored coins = %d, expected 4", g2.coins)
	}
}
