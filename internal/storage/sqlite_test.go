package storage

import (
	"os"
	"path/filepath"
	"testing"
)

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
	_, err = store.SaveScore("blockbreak", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("blockbreak", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("blockbreak", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("brawl", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for blockbreak
	scores, err := store.TopScores("blockbreak", 10)
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

	// Retrieve top scores for brawl
	brawlScores, err := store.TopScores("brawl", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(brawlScores) != 1 {
		t.Errorf("Expected 1 brawl score, got %d", len(brawlScores))
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
	high, err := store.HighScore("blockbreak")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("blockbreak", 100)
	store.SaveScore("blockbreak", 300)
	store.SaveScore("blockbreak", 200)

	high, err = store.HighScore("blockbreak")
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

	store.SaveScore("blockbreak", 100)
	store.SaveScore("blockbreak", 200)
	store.SaveScore("brawl", 300)

	// Clear only blockbreak scores
	err = store.ClearScores("blockbreak")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Blockbreak should be empty
	bbScores, _ := store.TopScores("blockbreak", 10)
	if len(bbScores) != 0 {
		t.Errorf("Expected 0 blockbreak scores after clear, got %d", len(bbScores))
	}

	// Brawl should still have scores
	brawlScores, _ := store.TopScores("brawl", 10)
	if len(brawlScores) != 1 {
		t.Errorf("Brawl scores should not be affected by clearing blockbreak")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreMatchResults(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	matches := []MatchResult{
		{GameID: "brawl", Winner: "Slash", Survivors: 1, Duration: 42},
		{GameID: "brawl", Winner: "Slash", Survivors: 2, Duration: 30},
		{GameID: "brawl", Winner: "Nobody", Survivors: 0, Duration: 90},
	}
	for _, m := range matches {
		if _, err := store.SaveMatchResult(m); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	recent, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 matches, got %d", len(recent))
	}

	counts, err := store.WinCounts("brawl")
	if err != nil {
		t.Fatalf("WinCounts() failed: %v", err)
	}
	if counts["Slash"] != 2 {
		t.Errorf("Expected Slash to have 2 wins, got %d", counts["Slash"])
	}
	if counts["Nobody"] != 1 {
		t.Errorf("Expected 1 draw, got %d", counts["Nobody"])
	}
}

func TestStoreBenchResults(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	results := []BenchResult{
		{Scene: "pyramid", Steps: 600, Bodies: 211, StepsPerS: 1200.5, Notes: "190/210 asleep"},
		{Scene: "pyramid", Steps: 600, Bodies: 211, StepsPerS: 1180.2},
		{Scene: "raycast-storm", Steps: 600, Bodies: 200, StepsPerS: 900.0, Notes: "5000 hits"},
	}
	for _, r := range results {
		if _, err := store.SaveBenchResult(r); err != nil {
			t.Fatalf("SaveBenchResult() failed: %v", err)
		}
	}

	pyramid, err := store.BenchHistory("pyramid", 10)
	if err != nil {
		t.Fatalf("BenchHistory() failed: %v", err)
	}
	if len(pyramid) != 2 {
		t.Errorf("Expected 2 pyramid runs, got %d", len(pyramid))
	}

	all, err := store.BenchHistory("", 10)
	if err != nil {
		t.Fatalf("BenchHistory() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 total runs, got %d", len(all))
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
