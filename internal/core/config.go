package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Coins    int  // Coins collected during the current run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the run is paused
}

// EventKind identifies a gameplay event emitted by a simulation tick.
type EventKind int

const (
	// EventLanded fires when the player touches down after being airborne.
	EventLanded EventKind = iota
	// EventCoinCollected fires once per coin picked up.
	EventCoinCollected
	// EventDied fires exactly once, on the tick the run ends.
	EventDied
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLanded:
		return "Landed"
	case EventCoinCollected:
		return "CoinCollected"
	case EventDied:
		return "Died"
	default:
		return "Unknown"
	}
}

// Event describes something that happened during a simulation tick. Games
// return events rather than invoking callbacks so that the simulation stays
// free of platform references and replays stay deterministic.
type Event struct {
	Kind EventKind
	// Rect is the world-space rectangle the event refers to: the player on
	// landing or death, the coin on collection.
	Rect RectF
	// Score and Coins carry the run totals at the moment of the event.
	Score int
	Coins int
	// Payout is the currency credited for the run. Set on EventDied only.
	Payout int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred. The Events
// slice is only valid until the next call to Step.
type StepResult struct {
	State  GameState
	Events []Event
}
