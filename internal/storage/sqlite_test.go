package storage

import (
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{GameID: "tilematch", Player: "ann", Score: 100, Moves: 12},
		{GameID: "tilematch", Player: "bob", Score: 50, Moves: 4},
		{GameID: "tilematch", Player: "ann", Score: 200, Moves: 30, Chains: 9, MaxChain: 3},
		{GameID: "tilematch_blitz", Player: "bob", Score: 500, Moves: 20},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("tilematch", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Moves != 30 || scores[0].MaxChain != 3 || scores[0].Player != "ann" {
		t.Errorf("top entry lost its fields: %+v", scores[0])
	}
	if scores[0].SessionID == "" {
		t.Error("SaveScore should generate a session ID")
	}
	if scores[0].SessionID == scores[1].SessionID {
		t.Error("session IDs should be unique")
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "tilematch", Player: "slow", Score: 100, Moves: 40})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Player: "fast", Score: 100, Moves: 10})

	scores, err := store.TopScores("tilematch", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "fast" {
		t.Errorf("equal scores should rank fewer moves first, got %q", scores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreDuplicateSessionID(t *testing.T) {
	store := openTestStore(t)

	e := ScoreEntry{GameID: "tilematch", SessionID: "fixed", Score: 10}
	if _, err := store.SaveScore(e); err != nil {
		t.Fatalf("first SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(e); err == nil {
		t.Error("saving the same session twice should fail")
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "tilematch", Player: "ann", Score: 30})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Player: "bob", Score: 90})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Player: "ann", Score: 60})

	scores, err := store.PlayerScores("tilematch", "ann", 0)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 60 {
		t.Errorf("PlayerScores() = %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tilematch")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 200})

	high, err = store.HighScore("tilematch")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 200})
	store.SaveScore(ScoreEntry{GameID: "tilematch_zen", Score: 300})

	if err := store.ClearScores("tilematch"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("tilematch", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(cleared))
	}
	other, _ := store.TopScores("tilematch_zen", 10)
	if len(other) != 1 {
		t.Errorf("other variants should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tilematch")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 100, Moves: 10, MaxChain: 2})
	store.SaveScore(ScoreEntry{GameID: "tilematch", Score: 300, Moves: 30, MaxChain: 5})

	stats, err := store.GetGameStats("tilematch")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.AvgMoves != 20 || stats.MaxChain != 5 {
		t.Errorf("averages = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
