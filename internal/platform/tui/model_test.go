package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// newTinyModel runs a 4x4 board, which fills up within a few pieces.
func newTinyModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Rows = 4
	cfg.Board.Columns = 4
	m := NewModel(tetris.NewWithConfig(cfg), store, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 7})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Gen: m.tickGen})
}

func playToEnd(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, runeKey("r"))
	m = tick(t, m)
	for i := 0; i < 500 && !m.GameState().GameOver; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = tick(t, m)
	}
	if !m.GameState().GameOver {
		t.Fatal("tiny board should end the game")
	}
	return m
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	m := playToEnd(t, newTinyModel(t, store))

	for range 20 {
		m = tick(t, m)
	}

	if m.SavedRuns() != 1 {
		t.Errorf("SavedRuns() = %d, expected 1", m.SavedRuns())
	}
	scores, err := store.AllScores(tetris.GameID)
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d results, expected 1", len(scores))
	}

	g := m.game.(*tetris.Game)
	if scores[0].RunID != g.RunID() {
		t.Errorf("stored run %q, expected %q", scores[0].RunID, g.RunID())
	}
	if scores[0].Score != m.GameState().Score || scores[0].DurationSecs != m.GameState().Elapsed {
		t.Errorf("stored %+v, state %+v", scores[0], m.GameState())
	}
}

func TestModelSavesEachGame(t *testing.T) {
	store := openStore(t)
	m := playToEnd(t, newTinyModel(t, store))
	m = playToEnd(t, m)

	scores, _ := store.AllScores(tetris.GameID)
	if len(scores) != 2 {
		t.Fatalf("stored %d results, expected 2", len(scores))
	}
	if scores[0].RunID == scores[1].RunID {
		t.Error("each game should have its own run ID")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTinyModel(t, nil)
	m = update(t, m, runeKey("r"))

	next, cmd := m.Update(TickMsg{Gen: m.tickGen + 100})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if next.(Model).GameState().Started {
		t.Error("stale tick should not run a frame")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m := newTinyModel(t, nil)
	m = update(t, m, runeKey("r"))
	m = tick(t, m)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc should not leave a running game")
	}

	m = update(t, m, runeKey("p"))
	m = tick(t, m)
	if !m.GameState().Paused {
		t.Fatal("game should be paused")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should leave a paused game")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTinyModel(t, nil)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTinyModel(t, nil)
	m = update(t, m, runeKey("r"))
	m = tick(t, m)
	g := m.game.(*tetris.Game)
	run := g.RunID()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.RunID() != run {
		t.Error("resize should keep the game in progress")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d, expected 100x%d", m.screen.Width(), m.screen.Height(), 40-helpRows)
	}
}

func TestModelView(t *testing.T) {
	m := newTinyModel(t, nil)
	out := m.View()
	for _, want := range []string{"NEXT", "SCORE", "rotate", "to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The board is empty before the start, so blocks come from the preview.
	if !strings.Contains(m.screen.String(), "██") {
		t.Errorf("preview pieces hidden by the start box:\n%s", m.screen.String())
	}
}
