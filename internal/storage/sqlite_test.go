package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Result) int64 {
	t.Helper()
	id, err := store.SaveResult(r)
	if err != nil {
		t.Fatalf("SaveResult(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Result{GameID: "tetris", RunID: "r1", Score: 300})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tetris")
	if err != nil || high != 300 {
		t.Errorf("HighScore() after reopen = %d, %v; expected 300", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", RunID: "a", Score: 100, Lines: 1, Duration: 40})
	mustSave(t, store, Result{GameID: "tetris", RunID: "b", Score: 50, Lines: 0, Duration: 12})
	mustSave(t, store, Result{GameID: "tetris", RunID: "c", Score: 200, Lines: 2, Duration: 95})
	mustSave(t, store, Result{GameID: "other", RunID: "d", Score: 500})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}

	top := scores[0]
	if top.RunID != "c" || top.Lines != 2 || top.DurationSecs != 95 || top.GameID != "tetris" {
		t.Errorf("top entry = %+v, expected run c with 2 lines in 95s", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", RunID: "slow", Score: 100, Duration: 90})
	mustSave(t, store, Result{GameID: "tetris", RunID: "fast", Score: 100, Duration: 30})
	mustSave(t, store, Result{GameID: "tetris", RunID: "fast-later", Score: 100, Duration: 30})

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	got := []string{scores[0].RunID, scores[1].RunID, scores[2].RunID}
	want := []string{"fast", "fast-later", "slow"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, expected %v", got, want)
			break
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, Result{GameID: "tetris", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Default limit
	scores, err = store.TopScores("tetris", 0)
	if err != nil || len(scores) != 5 {
		t.Errorf("TopScores(0) = %d entries, %v; expected all 5", len(scores), err)
	}
}

func TestStoreDuplicateRun(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", RunID: "same", Score: 100})
	_, err := store.SaveResult(Result{GameID: "tetris", RunID: "same", Score: 900})
	if !errors.Is(err, ErrDuplicateRun) {
		t.Fatalf("second SaveResult error = %v, expected ErrDuplicateRun", err)
	}

	entry, err := store.ResultByRun("same")
	if err != nil || entry == nil {
		t.Fatalf("ResultByRun() = %v, %v", entry, err)
	}
	if entry.Score != 100 {
		t.Errorf("first save should win, got score %d", entry.Score)
	}
}

func TestStoreGeneratesRunID(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", Score: 10})
	mustSave(t, store, Result{GameID: "tetris", Score: 10})

	scores, _ := store.AllScores("tetris")
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Errorf("generated run IDs should be unique and non-empty: %q, %q", scores[0].RunID, scores[1].RunID)
	}
}

func TestStoreResultByRunMissing(t *testing.T) {
	store := openTestStore(t)

	entry, err := store.ResultByRun("nope")
	if err != nil || entry != nil {
		t.Errorf("ResultByRun(missing) = %v, %v; expected nil, nil", entry, err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, Result{GameID: "tetris", Score: 100})
	mustSave(t, store, Result{GameID: "tetris", Score: 300})
	mustSave(t, store, Result{GameID: "tetris", Score: 200})

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "tetris", Score: 100})
	mustSave(t, store, Result{GameID: "tetris", Score: 200})
	mustSave(t, store, Result{GameID: "other", Score: 300})

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("tetris", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Errorf("other game should not be affected by clearing tetris")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		mustSave(t, store, Result{GameID: "tetris", Score: i * 10})
	}

	scores, err := store.AllScores("tetris")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, Result{GameID: "tetris", Score: 100, Lines: 1, Duration: 60})
	mustSave(t, store, Result{GameID: "tetris", Score: 300, Lines: 3, Duration: 200})

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("HighScore/AvgScore = %d/%v, expected 300/200", stats.HighScore, stats.AvgScore)
	}
	if stats.TotalLines != 4 || stats.MostLines != 3 {
		t.Errorf("TotalLines/MostLines = %d/%d, expected 4/3", stats.TotalLines, stats.MostLines)
	}
	if stats.LongestSecs != 200 || stats.TotalSeconds != 260 {
		t.Errorf("LongestSecs/TotalSeconds = %d/%d, expected 200/260", stats.LongestSecs, stats.TotalSeconds)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/test.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "test.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}
