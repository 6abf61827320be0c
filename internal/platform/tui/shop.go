package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gcxe/endless-runner-web/internal/config"
	"github.com/Gcxe/endless-runner-web/internal/runner"
	"github.com/Gcxe/endless-runner-web/internal/storage"
)

// upgradeInfo maps upgrade IDs to their shop listing text.
var upgradeInfo = map[string]struct {
	Title string
	Desc  string
}{
	runner.UpgradeJump:     {"Spring Boots", "higher jumps"},
	runner.UpgradeCoyote:   {"Feather Step", "longer coyote window"},
	runner.UpgradeCoinMult: {"Golden Touch", "bigger coin payouts"},
	runner.UpgradeMagnet:   {"Coin Magnet", "pulls nearby coins in"},
}

// ShopKeyMap defines the key bindings for the upgrade shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Buy},
		{k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShopModel is the Bubble Tea model for the upgrade shop.
type ShopModel struct {
	store     *storage.Store
	upgrades  config.UpgradeConfig
	ids       []string
	levels    map[string]int
	balance   int
	cursor    int
	status    string
	keys      ShopKeyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewShopModel creates a new shop model.
func NewShopModel(store *storage.Store, upgrades config.UpgradeConfig, width, height int) ShopModel {
	h := help.New()
	h.ShowAll = false

	m := ShopModel{
		store:    store,
		upgrades: upgrades,
		ids:      runner.UpgradeIDs,
		levels:   map[string]int{},
		keys:     DefaultShopKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.reload()
	return m
}

// reload refreshes levels and balance from storage.
func (m *ShopModel) reload() {
	if m.store == nil {
		return
	}
	if levels, err := m.store.UpgradeLevels(); err == nil {
		m.levels = levels
	}
	if balance, err := m.store.Balance(); err == nil {
		m.balance = balance
	}
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.status = ""
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				m.status = ""
			}

		case key.Matches(msg, m.keys.Buy):
			return m.buy()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// buy attempts to purchase the next level of the selected upgrade.
func (m ShopModel) buy() (tea.Model, tea.Cmd) {
	if m.store == nil || len(m.ids) == 0 {
		return m, nil
	}

	id := m.ids[m.cursor]
	cost := runner.UpgradeCost(m.upgrades, m.levels[id])

	level, err := m.store.PurchaseUpgrade(id, cost, m.upgrades.MaxLevel)
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		m.status = fmt.Sprintf("Not enough coins (need %d)", cost)
	case errors.Is(err, storage.ErrMaxLevel):
		m.status = "Already at max level"
	case err != nil:
		m.status = "Purchase failed"
	default:
		m.reload()
		m.status = fmt.Sprintf("%s upgraded to level %d", upgradeInfo[id].Title, level)
	}

	return m, nil
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("UPGRADE SHOP", m.width)))
	b.WriteString("\n\n")

	walletStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))
	b.WriteString(walletStyle.Render(centerText(fmt.Sprintf("Wallet: %d coins", m.balance), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2)

	var list strings.Builder
	for i, id := range m.ids {
		info := upgradeInfo[id]
		level := m.levels[id]

		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		price := fmt.Sprintf("%d coins", runner.UpgradeCost(m.upgrades, level))
		if level >= m.upgrades.MaxLevel {
			price = "maxed"
		}

		line := fmt.Sprintf("%s%-14s %s  %-8s  %s",
			cursor, info.Title, levelPips(level, m.upgrades.MaxLevel), price, info.Desc)
		list.WriteString(style.Render(line))
		list.WriteString("\n")
	}

	b.WriteString(centerText(boxStyle.Render(strings.TrimRight(list.String(), "\n")), m.width))
	b.WriteString("\n\n")

	if m.status != "" {
		statusLine := lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
		b.WriteString(statusLine.Render(centerText(m.status, m.width)))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// levelPips renders filled and empty level markers, e.g. "**---".
func levelPips(level, max int) string {
	if level > max {
		level = max
	}
	return strings.Repeat("*", level) + strings.Repeat("-", max-level)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}

// RunShop runs the shop screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunShop(store *storage.Store, upgrades config.UpgradeConfig, width, height int) (goBack bool, err error) {
	model := NewShopModel(store, upgrades, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ShopModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
