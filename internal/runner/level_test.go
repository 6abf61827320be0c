package runner

import (
	"testing"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/core"
)

func newTestLevel(seed int64) (*Level, *config.RunnerConfig) {
	cfg := config.DefaultRunnerConfig()
	return NewLevel(seed, &cfg), &cfg
}

func TestLevelStarterStrip(t *testing.T) {
	l, cfg := newTestLevel(1)

	if len(l.platforms) != 1 {
		t.Fatalf("expected only the starter strip, got %d platforms", len(l.platforms))
	}
	starter := l.platforms[0]
	if starter.Y != cfg.World.GroundY {
		t.Errorf("starter top = %f, expected ground line %f", starter.Y, cfg.World.GroundY)
	}

	// The player spawns at the camera offset; the strip must be under it.
	playerLeft := cfg.Player.CameraOffsetX
	playerRight := playerLeft + cfg.Player.Width
	if starter.X > playerLeft || starter.Right() < playerRight {
		t.Errorf("starter strip [%f, %f] does not cover the player spawn [%f, %f]",
			starter.X, starter.Right(), playerLeft, playerRight)
	}

	if want := starter.Right() + cfg.Generator.MinGap; l.nextSpawnX != want {
		t.Errorf("frontier = %f, expected %f", l.nextSpawnX, want)
	}
}

func TestLevelKeepsHorizonAhead(t *testing.T) {
	l, cfg := newTestLevel(42)

	for camX := 0.0; camX <= 30000; camX += 500 {
		l.EnsureAhead(camX, 340)
		horizon := camX + cfg.Generator.HorizonFactor*cfg.World.ViewportW
		if l.nextSpawnX < horizon {
			t.Fatalf("camX %f: frontier %f short of horizon %f", camX, l.nextSpawnX, horizon)
		}
	}
}

func TestLevelPlatformTopsOnGrid(t *testing.T) {
	l, cfg := newTestLevel(7)
	l.EnsureAhead(20000, 340)

	valid := make(map[float64]bool)
	for _, lv := range cfg.Generator.HeightLevels {
		valid[cfg.World.GroundY-lv] = true
	}

	for i, p := range l.platforms {
		if !valid[p.Y] {
			t.Errorf("platform %d top %f not on the height grid", i, p.Y)
		}
	}
}

func TestLevelStepClamp(t *testing.T) {
	tests := []struct {
		name    string
		speed   float64
		maxStep float64
	}{
		{"slow", 340, 170},
		{"fast", 600, 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, cfg := newTestLevel(99)
			l.EnsureAhead(30000, tt.speed)

			if len(l.platforms) < 20 {
				t.Fatalf("expected a long run of platforms, got %d", len(l.platforms))
			}
			for i := 1; i < len(l.platforms); i++ {
				step := l.platforms[i].Y - l.platforms[i-1].Y
				if step < 0 {
					step = -step
				}
				if step > tt.maxStep+1e-9 {
					t.Errorf("platforms %d->%d step %f above limit %f", i-1, i, step, tt.maxStep)
				}
				if l.platforms[i].Y > cfg.World.GroundY {
					t.Errorf("platform %d top %f below the ground line", i, l.platforms[i].Y)
				}
			}
		})
	}
}

func TestLevelHeightRunsAreCommon(t *testing.T) {
	l, _ := newTestLevel(3)
	l.EnsureAhead(200000, 340)

	same := 0
	for i := 1; i < len(l.platforms); i++ {
		if l.platforms[i].Y == l.platforms[i-1].Y {
			same++
		}
	}

	// The previous height is duplicated into the pick pool, so roughly
	// half of all platforms should repeat their predecessor.
	frac := float64(same) / float64(len(l.platforms)-1)
	if frac < 0.3 {
		t.Errorf("only %.0f%% of platforms repeat the previous height, expected a strong bias", frac*100)
	}
}

func TestLevelHazardSeparation(t *testing.T) {
	const speed = 500
	l, cfg := newTestLevel(11)
	l.EnsureAhead(60000, speed)

	if len(l.hazards) < 10 {
		t.Fatalf("expected a meaningful number of hazards, got %d", len(l.hazards))
	}

	minSep := speed * cfg.Generator.MinHazardSepTime
	for i := 1; i < len(l.hazards); i++ {
		sep := l.hazards[i].X - l.hazards[i-1].X
		if sep < minSep-1e-9 {
			t.Errorf("hazards %d->%d separated by %f, expected at least %f", i-1, i, sep, minSep)
		}
	}
}

func TestLevelHazardsSitOnPlatforms(t *testing.T) {
	l, _ := newTestLevel(13)
	l.EnsureAhead(60000, 450)

	for i, hz := range l.hazards {
		found := false
		for _, p := range l.platforms {
			if hz.X >= p.X && hz.Right() <= p.Right() && hz.Bottom() == p.Y {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("hazard %d at (%f, %f) is not resting on any platform", i, hz.X, hz.Y)
		}
	}
}

func TestLevelCoinsHoverOverPlatforms(t *testing.T) {
	l, cfg := newTestLevel(17)
	l.EnsureAhead(60000, 400)

	if len(l.coins) < 10 {
		t.Fatalf("expected coin clusters, got %d coins", len(l.coins))
	}

	g := cfg.Generator
	for i, c := range l.coins {
		var owner *core.RectF
		for pi := range l.platforms {
			p := &l.platforms[pi]
			if c.X >= p.X-1e-6 && c.Right() <= p.Right()+1e-6 {
				owner = p
				break
			}
		}
		if owner == nil {
			t.Errorf("coin %d at (%f, %f) hangs over no platform", i, c.X, c.Y)
			continue
		}
		top := owner.Y - g.CoinHover
		if c.Y > top+1e-6 {
			t.Errorf("coin %d at y=%f sits below the hover height %f", i, c.Y, top)
		}
		if c.Y < top-g.CoinArcHeight-1e-6 {
			t.Errorf("coin %d at y=%f is above the highest arc point %f", i, c.Y, top-g.CoinArcHeight)
		}
	}
}

func TestLevelCleanup(t *testing.T) {
	l, cfg := newTestLevel(23)
	l.EnsureAhead(5000, 340)

	before := len(l.platforms)
	l.Cleanup(5000)

	cutoff := 5000 - cfg.Generator.PruneMargin
	for i, p := range l.platforms {
		if p.Right() < cutoff {
			t.Errorf("platform %d right edge %f should have been pruned (cutoff %f)", i, p.Right(), cutoff)
		}
	}
	for i, hz := range l.hazards {
		if hz.Right() < cutoff {
			t.Errorf("hazard %d right edge %f should have been pruned", i, hz.Right())
		}
	}
	for i, c := range l.coins {
		if c.Right() < cutoff {
			t.Errorf("coin %d right edge %f should have been pruned", i, c.Right())
		}
	}

	if len(l.platforms) >= before {
		t.Error("cleanup should have dropped platforms far behind the camera")
	}
	if len(l.platforms) == 0 {
		t.Error("cleanup should keep platforms ahead of the camera")
	}
}

func TestLevelDeterministicLayout(t *testing.T) {
	l1, _ := newTestLevel(77)
	l2, _ := newTestLevel(77)
	l1.EnsureAhead(10000, 400)
	l2.EnsureAhead(10000, 400)

	if len(l1.platforms) != len(l2.platforms) {
		t.Fatalf("same seed produced %d vs %d platforms", len(l1.platforms), len(l2.platforms))
	}
	for i := range l1.platforms {
		if l1.platforms[i] != l2.platforms[i] {
			t.Fatalf("same seed diverged at platform %d: %+v vs %+v", i, l1.platforms[i], l2.platforms[i])
		}
	}
	if len(l1.hazards) != len(l2.hazards) || len(l1.coins) != len(l2.coins) {
		t.Error("same seed produced different hazard or coin counts")
	}

	l3, _ := newTestLevel(78)
	l3.EnsureAhead(10000, 400)
	differs := len(l3.platforms) != len(l1.platforms)
	if !differs {
		for i := range l1.platforms {
			if l1.platforms[i] != l3.platforms[i] {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("different seeds should produce different layouts")
	}
}
