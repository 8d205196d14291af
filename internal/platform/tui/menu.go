package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

type menuRow int

const (
	rowPlay menuRow = iota
	rowSpeed
	rowScores
	rowQuit
	rowCount
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	gameID    string
	cursor    menuRow
	speeds    []config.SpeedPreset
	speed     int
	highScore int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
	quitting  bool
}

// NewMenuModel creates a new menu model. The store is only read for the
// best score and may be nil.
func NewMenuModel(store *storage.Store, gameID string, speed config.SpeedPreset, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		speeds:    config.SpeedPresets(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, s := range m.speeds {
		if s == speed {
			m.speed = i
		}
	}
	if store != nil {
		if high, err := store.HighScore(gameID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == rowSpeed {
			m.speed = (m.speed + len(m.speeds) - 1) % len(m.speeds)
		}

	case MenuActionRight:
		if m.cursor == rowSpeed {
			m.speed = (m.speed + 1) % len(m.speeds)
		}

	case MenuActionSelect:
		switch m.cursor {
		case rowPlay:
			m.choice = MenuChoicePlay
		case rowSpeed:
			m.speed = (m.speed + 1) % len(m.speeds)
			return m, nil
		case rowScores:
			m.choice = MenuChoiceScores
		case rowQuit:
			m.quitting = true
			m.choice = MenuChoiceQuit
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  T E T R I S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("Best score: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	labels := [rowCount]string{
		rowPlay:   "Play",
		rowSpeed:  fmt.Sprintf("Speed: < %s >", m.Speed()),
		rowScores: "High Scores",
		rowQuit:   "Quit",
	}
	for i, label := range labels {
		line := "  " + label
		if menuRow(i) == m.cursor {
			line = menuCursor.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Speed  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the user's pick, or MenuChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Speed returns the selected speed preset.
func (m MenuModel) Speed() config.SpeedPreset {
	return m.speeds[m.speed]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in cells,
// so styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Speed  config.SpeedPreset
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, gameID string, speed config.SpeedPreset, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, gameID, speed, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Choice: MenuChoiceQuit}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuResult{Config: cfg, Choice: MenuChoiceQuit, Speed: speed}, nil
	}

	return MenuResult{
		Choice: m.Choice(),
		Speed:  m.Speed(),
		Config: m.Config(),
	}, nil
}
