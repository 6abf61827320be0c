package runner

import (
	"math"

	"github.com/Gcxe/endless-runner-web/internal/core"
)

// Snapshot contains the complete run state for replay and determinism
// checks. Only primitive types are used, with float64 fields stored as
// IEEE-754 bits, so serialization and hashing stay stable across
// platforms.
type Snapshot struct {
	Tick    uint64
	Mode    int
	CamX    uint64
	Speed   uint64
	Score   uint64
	Elapsed uint64
	Coins   int
	Payout  int
	Dead    bool
	Paused  bool

	// Player state: X, Y, W, H, VY, CoyoteLeft, BufferLeft, AirTime,
	// SquashLeft as float bits, then OnGround and JumpCut as 0/1.
	PlayerData []uint64

	// World entities, 4 float-bit values per rectangle (X, Y, W, H)
	PlatformData []uint64
	HazardData   []uint64
	CoinData     []uint64

	// Particles, 6 values each: Kind, X, Y, VX, VY, Life
	ParticleData []uint64

	// Generator state
	NextSpawnX  uint64
	LastPlatTop uint64
	LastHazardX uint64
	LevelRNG    uint64
	FXRNG       uint64

	// Derived run parameters: JumpVelocity, Coyote, CoinMultiplier,
	// MagnetRadius as float bits
	ParamData []uint64
}

// Snapshot returns the current run state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	p := g.player
	playerData := []uint64{
		math.Float64bits(p.X),
		math.Float64bits(p.Y),
		math.Float64bits(p.W),
		math.Float64bits(p.H),
		math.Float64bits(p.VY),
		math.Float64bits(p.CoyoteLeft),
		math.Float64bits(p.BufferLeft),
		math.Float64bits(p.AirTime),
		math.Float64bits(p.SquashLeft),
		boolBit(p.OnGround),
		boolBit(p.JumpCut),
	}

	particleData := make([]uint64, 0, len(g.particles)*6)
	for _, pt := range g.particles {
		particleData = append(particleData,
			uint64(pt.Kind), //#nosec G115 -- kind is a small enum
			math.Float64bits(pt.X),
			math.Float64bits(pt.Y),
			math.Float64bits(pt.VX),
			math.Float64bits(pt.VY),
			math.Float64bits(pt.Life),
		)
	}

	return Snapshot{
		Tick:    uint64(g.tick), //#nosec G115 -- tick count is always positive
		Mode:    int(g.mode),
		CamX:    math.Float64bits(g.camX),
		Speed:   math.Float64bits(g.speed),
		Score:   math.Float64bits(g.score),
		Elapsed: math.Float64bits(g.elapsed),
		Coins:   g.coins,
		Payout:  g.payout,
		Dead:    g.dead,
		Paused:  g.paused,

		PlayerData: playerData,

		PlatformData: flattenRects(g.level.platforms),
		HazardData:   flattenRects(g.level.hazards),
		CoinData:     flattenRects(g.level.coins),

		ParticleData: particleData,

		NextSpawnX:  math.Float64bits(g.level.nextSpawnX),
		LastPlatTop: math.Float64bits(g.level.lastPlatTop),
		LastHazardX: math.Float64bits(g.level.lastHazardX),
		LevelRNG:    g.level.rng.state,
		FXRNG:       g.fxRNG.state,

		ParamData: []uint64{
			math.Float64bits(g.params.JumpVelocity),
			math.Float64bits(g.params.Coyote),
			math.Float64bits(g.params.CoinMultiplier),
			math.Float64bits(g.params.MagnetRadius),
		},
	}
}

// ApplySnapshot restores run state from a snapshot. The game must have
// been Reset first so the config and level exist.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tick = int(snap.Tick) //#nosec G115 -- tick count fits in int
	g.mode = Mode(snap.Mode)
	g.camX = math.Float64frombits(snap.CamX)
	g.speed = math.Float64frombits(snap.Speed)
	g.score = math.Float64frombits(snap.Score)
	g.elapsed = math.Float64frombits(snap.Elapsed)
	g.coins = snap.Coins
	g.payout = snap.Payout
	g.dead = snap.Dead
	g.paused = snap.Paused

	if len(snap.PlayerData) == 11 {
		d := snap.PlayerData
		g.player.X = math.Float64frombits(d[0])
		g.player.Y = math.Float64frombits(d[1])
		g.player.W = math.Float64frombits(d[2])
		g.player.H = math.Float64frombits(d[3])
		g.player.VY = math.Float64frombits(d[4])
		g.player.CoyoteLeft = math.Float64frombits(d[5])
		g.player.BufferLeft = math.Float64frombits(d[6])
		g.player.AirTime = math.Float64frombits(d[7])
		g.player.SquashLeft = math.Float64frombits(d[8])
		g.player.OnGround = d[9] == 1
		g.player.JumpCut = d[10] == 1
	}

	g.level.platforms = restoreRects(snap.PlatformData)
	g.level.hazards = restoreRects(snap.HazardData)
	g.level.coins = restoreRects(snap.CoinData)

	g.particles = g.particles[:0]
	for i := 0; i+5 < len(snap.ParticleData); i += 6 {
		d := snap.ParticleData[i:]
		g.particles = append(g.particles, Particle{
			Kind: ParticleKind(d[0]), //#nosec G115 -- kind is a small enum
			X:    math.Float64frombits(d[1]),
			Y:    math.Float64frombits(d[2]),
			VX:   math.Float64frombits(d[3]),
			VY:   math.Float64frombits(d[4]),
			Life: math.Float64frombits(d[5]),
		})
	}

	g.level.nextSpawnX = math.Float64frombits(snap.NextSpawnX)
	g.level.lastPlatTop = math.Float64frombits(snap.LastPlatTop)
	g.level.lastHazardX = math.Float64frombits(snap.LastHazardX)
	g.level.rng.state = snap.LevelRNG
	g.fxRNG.state = snap.FXRNG

	if len(snap.ParamData) == 4 {
		g.params.JumpVelocity = math.Float64frombits(snap.ParamData[0])
		g.params.Coyote = math.Float64frombits(snap.ParamData[1])
		g.params.CoinMultiplier = math.Float64frombits(snap.ParamData[2])
		g.params.MagnetRadius = math.Float64frombits(snap.ParamData[3])
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Mode)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Payout) //#nosec G115 -- hash computation
	h = h*31 + snap.CamX
	h = h*31 + snap.Speed
	h = h*31 + snap.Score
	h = h*31 + snap.Elapsed
	h = h*31 + boolBit(snap.Dead)
	h = h*31 + boolBit(snap.Paused)

	for _, v := range snap.PlayerData {
		h = h*31 + v
	}
	for _, v := range snap.PlatformData {
		h = h*31 + v
	}
	for _, v := range snap.HazardData {
		h = h*31 + v
	}
	for _, v := range snap.CoinData {
		h = h*31 + v
	}
	for _, v := range snap.ParticleData {
		h = h*31 + v
	}
	for _, v := range snap.ParamData {
		h = h*31 + v
	}

	h = h*31 + snap.NextSpawnX
	h = h*31 + snap.LastPlatTop
	h = h*31 + snap.LastHazardX
	h = h*31 + snap.LevelRNG
	h = h*31 + snap.FXRNG

	return h
}

func flattenRects(rs []core.RectF) []uint64 {
	out := make([]uint64, 0, len(rs)*4)
	for _, r := range rs {
		out = append(out,
			math.Float64bits(r.X),
			math.Float64bits(r.Y),
			math.Float64bits(r.W),
			math.Float64bits(r.H),
		)
	}
	return out
}

func restoreRects(data []uint64) []core.RectF {
	rs := make([]core.RectF, 0, len(data)/4)
	for i := 0; i+3 < len(data); i += 4 {
		rs = append(rs, core.RectF{
			X: math.Float64frombits(data[i]),
			Y: math.Float64frombits(data[i+1]),
			W: math.Float64frombits(data[i+2]),
			H: math.Float64frombits(data[i+3]),
		})
	}
	return rs
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
