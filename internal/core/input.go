package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up in menus
	ActionDown           // S, Down arrow - move down in menus
	ActionJump           // Space, W, Up - jump
	ActionDuck           // S, Down - early jump release (duck)
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart run after death
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame carries the input state for one simulation tick. The kinematics
// machine distinguishes edges from levels: a jump buffers on the press edge,
// variable jump height triggers on the release edge, and Held reports keys
// that are simply down. The platform layer is responsible for synthesizing
// release edges, since terminals only deliver key-down events.
type InputFrame struct {
	// Pressed holds actions whose key went down this tick.
	Pressed map[Action]bool
	// Held holds actions whose key is down this tick, including the press tick.
	Held map[Action]bool
	// Released holds actions whose key went up this tick.
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed:  make(map[Action]bool),
		Held:     make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Press records a press edge for the action. A pressed key is also held.
func (f *InputFrame) Press(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Pressed[a] = true
	f.Held[a] = true
}

// Hold records that the action's key is down without a fresh press edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Release records a release edge for the action.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// WasPressed returns true if the action's key went down this tick.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed[a]
}

// IsHeld returns true if the action's key is down this tick.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// WasReleased returns true if the action's key went up this tick.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Clear resets all edges and levels for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
	for k := range f.Released {
		delete(f.Released, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	for k, v := range f.Released {
		clone.Released[k] = v
	}
	return clone
}
