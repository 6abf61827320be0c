package runner

import (
	"github.com/Gcxe/endless-runner-web/internal/core"
)

const (
	dustPerLanding  = 6
	sparklesPerCoin = 4
	dustLife        = 0.45
	sparkleLife     = 0.35
	particleGravity = 300.0
)

// ParticleKind distinguishes particle visuals.
type ParticleKind int

const (
	ParticleDust    ParticleKind = iota // landing dust at the feet
	ParticleSparkle                     // coin pickup burst
)

// Particle is a short-lived cosmetic entity. Particles never affect
// gameplay: they spawn from events, drift, and expire on their own.
type Particle struct {
	Kind   ParticleKind
	X, Y   float64
	VX, VY float64
	Life   float64 // seconds remaining
}

// spawnDust throws a puff of dust from the player's feet on landing.
func (g *Game) spawnDust(p *Player) {
	for range dustPerLanding {
		g.particles = append(g.particles, Particle{
			Kind: ParticleDust,
			X:    p.X + g.fxRNG.Float64()*p.W,
			Y:    p.Y + p.H - 2,
			VX:   g.fxRNG.FloatRange(-60, 60),
			VY:   g.fxRNG.FloatRange(-90, -20),
			Life: dustLife,
		})
	}
}

// spawnSparkles bursts sparkles where a coin was collected.
func (g *Game) spawnSparkles(coin core.RectF) {
	cx, cy := coin.Center()
	for range sparklesPerCoin {
		g.particles = append(g.particles, Particle{
			Kind: ParticleSparkle,
			X:    cx,
			Y:    cy,
			VX:   g.fxRNG.FloatRange(-80, 80),
			VY:   g.fxRNG.FloatRange(-80, 40),
			Life: sparkleLife,
		})
	}
}

// stepParticles integrates particle motion and prunes expired ones.
func (g *Game) stepParticles(dt float64) {
	live := g.particles[:0]
	for _, pt := range g.particles {
		pt.Life -= dt
		if pt.Life <= 0 {
			continue
		}
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VY += particleGravity * dt
		live = append(live, pt)
	}
	g.particles = live
}
