package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gcxe/endless-runner-web/internal/core"
	"github.com/Gcxe/endless-runner-web/internal/registry"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

// runMetrics is implemented by games that expose run telemetry beyond the
// basic GameState. The model records these into the run history.
type runMetrics interface {
	Speed() float64
	Elapsed() float64
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model for playing one game mode. It owns the
// tick loop, translates key events into input frames, and persists the
// run when it ends. It works standalone and embedded in a SessionModel.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   *KeyMapper
	frame  core.InputFrame
	state  core.GameState

	lastTick time.Time
	runStart time.Time
	topSpeed float64

	bestScore int
	balance   int

	runSaved   bool
	inSession  bool // Back returns to the session menu instead of being ignored
	backToMenu bool
	quitting   bool
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(),
		frame:  core.NewInputFrame(),
	}

	if store != nil {
		//nolint:errcheck // Missing history just means a zero best score
		m.bestScore, _ = store.BestScore(game.ID())
		//nolint:errcheck // Same: a fresh wallet reads as zero
		m.balance, _ = store.Balance()
	}

	return m
}

// gameHeight reserves the bottom row for the status bar.
func gameHeight(screenH int) int {
	if screenH <= 1 {
		return 1
	}
	return screenH - 1
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is a fixed-size viewport projected onto whatever
		// cells are available, so a resize never disturbs the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey feeds key events to the mapper; frames are built on ticks.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.HandleKey(msg, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation by the real elapsed time.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)

	dt := 1.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now
	if m.runStart.IsZero() {
		m.runStart = now
	}

	m.frame.Clear()
	m.keys.BuildFrame(&m.frame, now)

	if m.frame.WasPressed(core.ActionBack) && m.inSession &&
		(m.state.GameOver || m.state.Paused) {
		m.backToMenu = true
		return m, nil
	}

	if m.frame.WasPressed(core.ActionRestart) && m.state.GameOver {
		return m.restart(now)
	}

	result := m.game.Step(m.frame, dt)
	m.state = result.State

	if metrics, ok := m.game.(runMetrics); ok {
		if s := metrics.Speed(); s > m.topSpeed {
			m.topSpeed = s
		}
	}

	for _, ev := range result.Events {
		if ev.Kind == core.EventDied && !m.runSaved {
			m.saveRun(ev, now)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a fresh run with a new seed.
func (m Model) restart(now time.Time) (tea.Model, tea.Cmd) {
	m.config.Seed = now.UnixNano()
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.runSaved = false
	m.topSpeed = 0
	m.runStart = now
	m.keys.Reset()
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run and its wallet payout.
func (m *Model) saveRun(ev core.Event, now time.Time) {
	m.runSaved = true

	if ev.Score > m.bestScore {
		m.bestScore = ev.Score
	}

	if m.store == nil {
		m.balance += ev.Payout
		return
	}

	duration := now.Sub(m.runStart).Seconds()
	if metrics, ok := m.game.(runMetrics); ok {
		duration = metrics.Elapsed()
	}

	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.RecordRun(storage.RunEntry{
		GameID:       m.game.ID(),
		Score:        ev.Score,
		Coins:        ev.Coins,
		Payout:       ev.Payout,
		DurationSecs: int(duration),
		TopSpeed:     m.topSpeed,
	})
	//nolint:errcheck // Display-only value
	m.balance, _ = m.store.Balance()
}

// saveScreenshot dumps the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".endless-runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// statusBar renders the persistent bottom line.
func (m Model) statusBar() string {
	hints := "[p]ause  [q]uit"
	if m.state.GameOver {
		hints = "[r]estart  [q]uit"
		if m.inSession {
			hints = "[r]estart  [b]ack  [q]uit"
		}
	} else if m.state.Paused && m.inSession {
		hints = "[p] resume  [b]ack  [q]uit"
	}

	line := fmt.Sprintf(" %s   best %d   wallet %d   %s",
		m.game.Title(), m.bestScore, m.balance, hints)
	if len(line) > m.config.ScreenW && m.config.ScreenW > 0 {
		line = line[:m.config.ScreenW]
	}
	return statusStyle.Render(line)
}

// View renders the current frame plus the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusBar()
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
