package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpRows is the space kept below the game for the key help line.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// resizer is implemented by games that can follow the terminal size
// without discarding the game in progress.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	tickGen    uint64
	savedRuns  int   // results written to the store
	saveErr    error // last failed save, shown under the game
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		tickGen:    nextTickGen(),
	}
}

// WithLogger returns a copy of the model that reports saves to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

func gameHeight(h int) int {
	return max(1, h-helpRows)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)

	return tickCmd(m.config.FrameDuration(), m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's action for the next frame. Actions are applied
// in arrival order when the frame runs.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Leaving is only offered while nothing is falling.
		st := m.gameState
		if !st.Started || st.Paused || st.GameOver {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize follows the terminal size. Games that can resize in place
// keep their progress; others are reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	h := gameHeight(msg.Height)
	m.screen.Resize(msg.Width, h)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, h)
		return m, nil
	}

	if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
	}
	return m, nil
}

// handleTick runs one frame and stores the result when a game ends.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Ended {
		m.saveResult()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.FrameDuration(), m.tickGen)
}

// saveResult writes the finished game once. A run ID makes repeated saves
// of the same run harmless.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}

	r := storage.Result{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		Duration: m.gameState.Elapsed,
	}
	if ri, ok := m.game.(registry.RunIdentifier); ok {
		r.RunID = ri.RunID()
	}

	_, err := m.store.SaveResult(r)
	switch {
	case errors.Is(err, storage.ErrDuplicateRun):
		m.logger.Debug("result already saved", "run", r.RunID)
	case err != nil:
		m.saveErr = err
		m.logger.Error("could not save result", "error", err)
	default:
		m.savedRuns++
		m.saveErr = nil
		m.logger.Info("result saved", "game", r.GameID, "score", r.Score, "lines", r.Lines, "secs", r.Duration)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	footer := m.help.View(m.keyMapper.Keys())
	if m.saveErr != nil {
		footer = "save failed: " + m.saveErr.Error()
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// GameState returns the state seen at the last frame.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// SavedRuns returns how many results this model has stored.
func (m Model) SavedRuns() int {
	return m.savedRuns
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game. Esc on a stopped
// game returns; the returned bool reports whether that was the way out.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg).WithLogger(logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
