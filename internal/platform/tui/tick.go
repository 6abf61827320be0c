// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input edge synthesis, rendering, and
// persistence of finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. It carries the send time
// so the model can step the game by real elapsed time instead of assuming
// the tick rate was honored.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
