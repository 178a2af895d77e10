package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/jumprope/internal/core"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("jumprope", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("jumprope", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("jumprope", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("other", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for jumprope
	scores, err := store.TopScores("jumprope", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for other
	otherScores, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(otherScores) != 1 {
		t.Errorf("Expected 1 other score, got %d", len(otherScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("jumprope")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("jumprope", 100)
	store.SaveScore("jumprope", 300)
	store.SaveScore("jumprope", 200)

	high, err = store.HighScore("jumprope")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("jumprope", 100)
	store.SaveScore("jumprope", 200)
	store.SaveScore("other", 300)

	// Clear only jumprope scores
	err = store.ClearScores("jumprope")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Flappy should be empty
	runScores, _ := store.TopScores("jumprope", 10)
	if len(runScores) != 0 {
		t.Errorf("Expected 0 jumprope scores after clear, got %d", len(runScores))
	}

	// Other should still have scores
	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other scores should not be affected by clearing jumprope")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := range 20 {
		if _, err := store.SaveScore("test", 200-i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("test", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	// Newest first: the last insert scored 10
	want := []int{10, 20, 30, 40, 50}
	for i, r := range runs {
		if r.Score != want[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, want[i])
		}
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRunRoundTrip(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveRun(RunRecord{
		GameID:   "jumprope",
		Score:    137,
		Level:    3,
		Won:      true,
		Duration: 28500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.RunID == uuid.Nil {
		t.Fatal("SaveRun() should assign a run id")
	}

	got, err := store.RunByID(saved.RunID)
	if err != nil || got == nil {
		t.Fatalf("RunByID() = %v, %v", got, err)
	}
	if got.Score != 137 || got.Level != 3 || !got.Won || got.Duration != 28500*time.Millisecond {
		t.Errorf("RunByID() = %+v", *got)
	}

	missing, err := store.RunByID(uuid.New())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; expected nil, nil", missing, err)
	}

	// Run ids are unique.
	if _, err := store.SaveRun(RunRecord{RunID: saved.RunID, GameID: "jumprope"}); err == nil {
		t.Error("saving a duplicate run id should fail")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "jumprope", Score: 100, Level: 1, Won: true})
	store.SaveRun(RunRecord{GameID: "jumprope", Score: 50, Level: 2})
	store.SaveRun(RunRecord{GameID: "jumprope", Score: 150, Level: 2, Won: true})

	stats, err := store.GetGameStats("jumprope")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 2 || stats.HighScore != 150 || stats.BestLevel != 2 {
		t.Errorf("stats = %+v", *stats)
	}
	if stats.AvgScore != 100 || stats.TotalScore != 300 {
		t.Errorf("avg/total = %v/%v, expected 100/300", stats.AvgScore, stats.TotalScore)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats(none) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", *empty)
	}
}

func TestStorePrefs(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Int("highScore"); ok || err != nil {
		t.Fatalf("Int() on empty store = %v, %v", ok, err)
	}
	if err := store.SetInt("highScore", 42); err != nil {
		t.Fatal(err)
	}
	if err := store.SetInt("highScore", 64); err != nil {
		t.Fatal(err)
	}
	v, ok, err := store.Int("highScore")
	if err != nil || !ok || v != 64 {
		t.Errorf("Int() = %d, %v, %v; expected 64", v, ok, err)
	}

	a := NewPrefs(store, "jumprope", log.New(io.Discard))
	b := NewPrefs(store, "other", log.New(io.Discard))
	a.Set("highScore", 10)
	if _, ok := b.Get("highScore"); ok {
		t.Error("namespaces must not share keys")
	}
	if v, ok := a.Get("highScore"); !ok || v != 10 {
		t.Errorf("Prefs.Get() = %d, %v", v, ok)
	}
}

func TestStoreClosed(t *testing.T) {
	store := openTestStore(t)
	prefs := NewPrefs(store, "jumprope", log.New(io.Discard))

	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() = %v, expected nil", err)
	}

	if _, err := store.SaveScore("jumprope", 1); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveScore() after close = %v, expected ErrClosed", err)
	}
	if _, err := store.HighScore("jumprope"); !errors.Is(err, ErrClosed) {
		t.Errorf("HighScore() after close = %v, expected ErrClosed", err)
	}

	// The adapter degrades to "absent".
	prefs.Set("highScore", 5)
	if _, ok := prefs.Get("highScore"); ok {
		t.Error("closed store should report absent prefs")
	}
}

func TestMemPrefs(t *testing.T) {
	m := NewMemPrefs()
	if _, ok := m.Get("highScore"); ok {
		t.Error("empty MemPrefs should not have keys")
	}
	m.Set("highScore", 3)
	if v, ok := m.Get("highScore"); !ok || v != 3 || m.Writes != 1 {
		t.Errorf("Get() = %d, %v, writes %d", v, ok, m.Writes)
	}
}

func TestStoreRecordRun(t *testing.T) {
	store := openTestStore(t)

	err := store.RecordRun(core.RunResult{GameID: "jumprope", Score: 77, Level: 2, Won: true, Duration: time.Second})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	runs, err := store.TopScores("jumprope", 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("TopScores() = %v, %v", runs, err)
	}
	if runs[0].Score != 77 || runs[0].Level != 2 || !runs[0].Won {
		t.Errorf("stored run = %+v", runs[0])
	}
}
