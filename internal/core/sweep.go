package core

// SweepStepPx is the maximum vertical distance covered by a single collision
// sub-step. Larger displacements are split into sub-steps so a fast fall
// cannot tunnel through a thin platform within one tick.
const SweepStepPx = 6.0

// SweepVertical moves rect vertically by deltaY and resolves it against a set
// of one-way platforms. It returns the final top y-coordinate plus two flags:
// landed is true when the rect came to rest on a platform top, bumped is true
// when upward motion was stopped by a platform underside.
//
// Platforms only catch the rect when it crosses an edge during the sweep:
// moving down, the rect lands only if its bottom started at or above the
// platform top; moving up, it bumps only if its top started at or below the
// platform bottom. A rect that begins inside or past a platform passes
// through freely, which is what makes the platforms one-way.
func SweepVertical(rect RectF, deltaY float64, platforms []RectF) (newY float64, landed, bumped bool) {
	y := rect.Y
	if deltaY == 0 {
		return y, false, false
	}

	steps := int(AbsF(deltaY)/SweepStepPx) + 1
	stepDY := deltaY / float64(steps)
	down := deltaY > 0

	for range steps {
		prevTop := y
		prevBottom := y + rect.H
		y += stepDY

		for _, p := range platforms {
			if !rect.OverlapsX(p) {
				continue
			}
			if down {
				if prevBottom <= p.Y && y+rect.H >= p.Y {
					return p.Y - rect.H, true, false
				}
			} else {
				if prevTop >= p.Bottom() && y <= p.Bottom() {
					return p.Bottom(), false, true
				}
			}
		}
	}

	// No hit: apply the exact displacement, not the sub-step sum.
	return rect.Y + deltaY, false, false
}
