package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 1}
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuSpeedCycles(t *testing.T) {
	m := NewMenuModel(nil, tetris.GameID, config.SpeedNormal, testRuntime())
	if m.Speed() != config.SpeedNormal {
		t.Fatalf("Speed() = %s, expected normal", m.Speed())
	}

	// Left/right only act on the speed row
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Speed() != config.SpeedNormal {
		t.Error("right on the Play row should not change speed")
	}

	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Speed() != config.SpeedHard {
		t.Errorf("Speed() = %s, expected hard", m.Speed())
	}
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Speed() != config.SpeedEasy {
		t.Errorf("Speed() = %s, expected to wrap to easy", m.Speed())
	}
	if m.Choice() != MenuChoiceNone {
		t.Error("changing speed should not close the menu")
	}
	if !strings.Contains(m.View(), "Speed: < easy >") {
		t.Error("view should show the selected speed")
	}
}

func TestMenuChoices(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		want  MenuChoice
	}{
		{"play", 0, MenuChoicePlay},
		{"scores", 2, MenuChoiceScores},
		{"quit", 3, MenuChoiceQuit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMenuModel(nil, tetris.GameID, config.SpeedFixed, testRuntime())
			for range tc.downs {
				m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
			}
			m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if m.Choice() != tc.want {
				t.Errorf("Choice() = %d, expected %d", m.Choice(), tc.want)
			}
			if cmd == nil {
				t.Error("a choice should close the menu")
			}
		})
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult(storage.Result{GameID: tetris.GameID, Score: 1200}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, tetris.GameID, config.SpeedFixed, testRuntime())
	if !strings.Contains(m.View(), "Best score: 1200") {
		t.Error("menu should show the best score")
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	store := openStore(t)
	m := NewSessionModel(store, testRuntime(), tetris.GameID, config.SpeedHard)
	if m.SessionID() == "" {
		t.Fatal("session should have an ID")
	}

	// Play with the preset chosen by the server
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %d, expected game", m.screen)
	}
	g := m.gameModel.game.(*tetris.Game)
	if ms := g.Config().Timing.DropIntervalMs; ms != 400 {
		t.Errorf("DropIntervalMs = %d, expected 400", ms)
	}
	if m.quitting {
		t.Fatal("starting a game should not quit the session")
	}

	// Esc before starting returns to the menu
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %d, expected menu", m.screen)
	}

	// Scores and back
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScores {
		t.Fatalf("screen = %d, expected scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Fatalf("esc on scores should return to the menu")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}

func TestScoreboardRows(t *testing.T) {
	store := openStore(t)
	for i, score := range []int{100, 300, 200} {
		_, err := store.SaveResult(storage.Result{GameID: tetris.GameID, Score: score, Lines: i, Duration: 65})
		if err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, tetris.GameID, 80, 30)
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("table has %d rows, expected 3", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "300" || rows[0][3] != "1:05" {
		t.Errorf("first row = %v", rows[0])
	}
	if !strings.Contains(m.View(), "3 games") {
		t.Error("view should show aggregate stats")
	}
}
