package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Gcxe/endless-runner-web/internal/core"
)

// repeatWindow is how long a jump key counts as held after its last key
// event. Terminals deliver no key-up, only an initial press and then
// auto-repeats after the OS repeat delay (typically ~500ms), so the window
// has to outlast that delay or every long press would read as a tap.
const repeatWindow = 550 * time.Millisecond

// KeyMapper translates Bubble Tea key messages into per-tick input frames.
// It is stateful: the runner cares about press, hold, and release edges,
// and a terminal only ever reports key-downs. The mapper reconstructs the
// missing edges from key repeat timing, and treats the duck key as an
// explicit early release of the jump.
type KeyMapper struct {
	jumpDown bool      // jump key currently considered held
	jumpNew  bool      // press edge not yet delivered to a frame
	jumpCut  bool      // duck key forced a release
	jumpLast time.Time // last jump key event

	pending []core.Action // one-shot presses queued for the next frame
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// HandleKey records a key event. Returns true for quit requests; all other
// keys accumulate until the next BuildFrame.
func (km *KeyMapper) HandleKey(msg tea.KeyMsg, now time.Time) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true

	case " ", "w", "up":
		if !km.jumpDown {
			km.jumpDown = true
			km.jumpNew = true
		}
		km.jumpLast = now

	case "s", "down":
		km.pending = append(km.pending, core.ActionDuck)
		if km.jumpDown {
			km.jumpCut = true
		}

	case "p", "esc":
		km.pending = append(km.pending, core.ActionPause)
	case "r":
		km.pending = append(km.pending, core.ActionRestart)
	case "enter":
		km.pending = append(km.pending, core.ActionConfirm)
	case "b":
		km.pending = append(km.pending, core.ActionBack)
	}

	return false
}

// BuildFrame fills the frame with this tick's edges and levels. The jump
// release fires when the duck key cut it or when no repeat arrived within
// the window; a press and its release may land in the same frame, which
// the simulation reads as a minimal tap.
func (km *KeyMapper) BuildFrame(frame *core.InputFrame, now time.Time) {
	if km.jumpDown {
		delivered := false
		if km.jumpNew {
			frame.Press(core.ActionJump)
			km.jumpNew = false
			delivered = true
		}

		if km.jumpCut || now.Sub(km.jumpLast) > repeatWindow {
			frame.Release(core.ActionJump)
			km.jumpDown = false
			km.jumpCut = false
		} else if !delivered {
			frame.Hold(core.ActionJump)
		}
	}

	for _, a := range km.pending {
		frame.Press(a)
	}
	km.pending = km.pending[:0]
}

// Reset drops all tracked key state, for use on restarts and screen
// transitions so a stale hold cannot leak into the new run.
func (km *KeyMapper) Reset() {
	km.jumpDown = false
	km.jumpNew = false
	km.jumpCut = false
	km.pending = km.pending[:0]
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionShop
)

// MapMenuAction translates a key to a menu action.
func MapMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "t":
		return MenuActionScoreboard
	case "u":
		return MenuActionShop
	}

	return MenuActionNone
}
