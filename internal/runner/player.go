package runner

import (
	"github.com/Gcxe/endless-runner-web/internal/core"
)

const squashDuration = 0.18

// Player holds the runner's kinematic state. Horizontal position is not
// free: the camera drags the player, so only vertical motion integrates.
type Player struct {
	X, Y float64 // Top-left corner, world pixels
	W, H float64
	VY   float64 // Vertical velocity, positive = down

	OnGround   bool
	CoyoteLeft float64 // Seconds of grace jump left after leaving ground
	BufferLeft float64 // Seconds the last jump press stays armed
	JumpCut    bool    // Whether this jump's ascent was already cut short
	AirTime    float64 // Seconds since last grounded
	SquashLeft float64 // Landing squash animation time remaining
}

// Rect returns the player's world-space collision box.
func (p *Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// stepPlayer advances the kinematics machine by dt seconds. The rule order
// is fixed and observable in play, so keep it: jump buffer, coyote, jump
// firing, gravity, jump cut, horizontal pin, vertical sweep, ground clamp.
func (g *Game) stepPlayer(in core.InputFrame, dt float64) {
	p := &g.player
	ph := g.cfg.Physics
	wasAirborne := !p.OnGround

	// A jump press arms the buffer for a short window; otherwise it decays.
	// A press just before landing still fires the jump on touchdown.
	if in.WasPressed(core.ActionJump) {
		p.BufferLeft = ph.JumpBuffer
	} else if p.BufferLeft > 0 {
		p.BufferLeft -= dt
		if p.BufferLeft < 0 {
			p.BufferLeft = 0
		}
	}

	// Coyote time refills while grounded and decays while airborne, so a
	// jump stays possible briefly after running off an edge.
	if p.OnGround {
		p.CoyoteLeft = g.params.Coyote
	} else if p.CoyoteLeft > 0 {
		p.CoyoteLeft -= dt
		if p.CoyoteLeft < 0 {
			p.CoyoteLeft = 0
		}
	}

	// The jump fires only while both windows are open.
	if p.BufferLeft > 0 && p.CoyoteLeft > 0 {
		p.VY = -g.params.JumpVelocity
		p.BufferLeft = 0
		p.CoyoteLeft = 0
		p.JumpCut = false
		p.OnGround = false
	}

	// Gravity applies every tick, including the launch tick, so a jump's
	// first-tick velocity is jump_velocity minus one gravity step. The
	// tuned jump_velocity already bakes that in.
	p.VY = core.ClampF(p.VY+ph.Gravity*dt, -5000, ph.MaxFallSpeed)

	// Releasing jump during the ascent trims the rest of it, once per jump.
	if in.WasReleased(core.ActionJump) && !p.OnGround && !p.JumpCut && p.VY < 0 {
		p.VY *= ph.JumpCutMultiplier
		p.JumpCut = true
	}

	// Horizontal pin: the camera decides where the player is.
	p.X = g.camX + g.cfg.Player.CameraOffsetX

	// Vertical sweep against one-way platforms.
	newY, landed, bumped := core.SweepVertical(p.Rect(), p.VY*dt, g.level.platforms)
	p.Y = newY
	if bumped {
		p.VY = 0
	}

	// The ground line catches the player no matter what the sweep said.
	if p.Y+p.H >= g.cfg.World.GroundY {
		p.Y = g.cfg.World.GroundY - p.H
		landed = true
	}

	if landed {
		p.VY = 0
		p.OnGround = true
		p.AirTime = 0
		if wasAirborne {
			p.SquashLeft = squashDuration
			g.spawnDust(p)
			g.emit(core.Event{
				Kind:  core.EventLanded,
				Rect:  p.Rect(),
				Score: int(g.score),
				Coins: g.coins,
			})
		}
	} else {
		p.OnGround = false
		p.AirTime += dt
	}

	if p.SquashLeft > 0 {
		p.SquashLeft -= dt
		if p.SquashLeft < 0 {
			p.SquashLeft = 0
		}
	}
}
