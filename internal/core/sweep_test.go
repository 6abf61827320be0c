package core

import "testing"

func TestSweepVerticalLandsExactlyOnPlatformTop(t *testing.T) {
	platform := NewRectF(100, 440, 300, 20)
	player := NewRectF(150, 440-58-10, 44, 58) // bottom 10px above platform top

	tests := []struct {
		name   string
		deltaY float64
	}{
		{"barely crosses", 10.0},
		{"crosses with room to spare", 37.5},
		{"lands exactly on edge", 10.0},
		{"huge fall in one tick", 400.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			newY, landed, bumped := SweepVertical(player, tc.deltaY, []RectF{platform})
			if !landed {
				t.Fatalf("expected landing for deltaY=%f", tc.deltaY)
			}
			if bumped {
				t.Error("downward sweep should never bump")
			}
			if got := newY + player.H; got != platform.Y {
				t.Errorf("player bottom = %f, expected exactly %f", got, platform.Y)
			}
		})
	}
}

func TestSweepVerticalNoTunnelingThroughThinPlatform(t *testing.T) {
	// A 16px platform and a displacement far larger than one sub-step.
	platform := NewRectF(0, 300, 500, 16)
	player := NewRectF(100, 300-58-2, 44, 58)

	newY, landed, _ := SweepVertical(player, 250, []RectF{platform})
	if !landed {
		t.Fatal("fast fall tunneled through a thin platform")
	}
	if newY+player.H != platform.Y {
		t.Errorf("player bottom = %f, expected %f", newY+player.H, platform.Y)
	}
}

func TestSweepVerticalOneWayFromBelow(t *testing.T) {
	platform := NewRectF(0, 300, 500, 16)

	// Player's bottom already below the platform top: falling must pass through.
	player := NewRectF(100, 300-58+5, 44, 58)
	newY, landed, bumped := SweepVertical(player, 40, []RectF{platform})
	if landed || bumped {
		t.Fatal("player starting past the platform top must fall through")
	}
	if newY != player.Y+40 {
		t.Errorf("newY = %f, expected full displacement to %f", newY, player.Y+40)
	}
}

func TestSweepVerticalUpwardBump(t *testing.T) {
	platform := NewRectF(0, 200, 500, 16)

	// Player's top starts below the platform bottom and moves up into it.
	player := NewRectF(100, 230, 44, 58)
	newY, landed, bumped := SweepVertical(player, -40, []RectF{platform})
	if !bumped {
		t.Fatal("expected bump against platform underside")
	}
	if landed {
		t.Error("upward sweep should never land")
	}
	if newY != platform.Bottom() {
		t.Errorf("player top = %f, expected %f", newY, platform.Bottom())
	}
}

func TestSweepVerticalUpwardPassThroughFromInside(t *testing.T) {
	platform := NewRectF(0, 200, 500, 16)

	// Player's top already above the platform bottom: jumping up passes through.
	player := NewRectF(100, 210, 44, 58)
	newY, landed, bumped := SweepVertical(player, -60, []RectF{platform})
	if landed || bumped {
		t.Fatal("player starting inside the platform must pass through upward")
	}
	if newY != player.Y-60 {
		t.Errorf("newY = %f, expected %f", newY, player.Y-60)
	}
}

func TestSweepVerticalIgnoresPlatformsOutsideColumn(t *testing.T) {
	platform := NewRectF(500, 300, 100, 16)
	player := NewRectF(100, 230, 44, 58)

	newY, landed, bumped := SweepVertical(player, 200, []RectF{platform})
	if landed || bumped {
		t.Fatal("platform with no horizontal overlap must not catch the player")
	}
	if newY != player.Y+200 {
		t.Errorf("newY = %f, expected %f", newY, player.Y+200)
	}
}

func TestSweepVerticalZeroDelta(t *testing.T) {
	platform := NewRectF(0, 300, 500, 16)
	player := NewRectF(100, 242, 44, 58) // resting exactly on top

	newY, landed, bumped := SweepVertical(player, 0, []RectF{platform})
	if landed || bumped {
		t.Error("zero displacement must not trigger collisions")
	}
	if newY != player.Y {
		t.Errorf("newY = %f, expected unchanged %f", newY, player.Y)
	}
}

func TestSweepVerticalPicksFirstPlatformCrossed(t *testing.T) {
	high := NewRectF(0, 300, 500, 16)
	low := NewRectF(0, 400, 500, 16)
	player := NewRectF(100, 300-58-4, 44, 58)

	// Falling through both levels must stop at the higher platform.
	newY, landed, _ := SweepVertical(player, 300, []RectF{low, high})
	if !landed {
		t.Fatal("expected landing")
	}
	if newY+player.H != high.Y {
		t.Errorf("player bottom = %f, expected to stop at %f", newY+player.H, high.Y)
	}
}
