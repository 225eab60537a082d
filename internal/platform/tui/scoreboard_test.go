package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kvistberg/arena2d/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardMatchBoard(t *testing.T) {
	store := newTestStore(t)
	for _, winner := range []string{"Slash", "Slash", "Crush"} {
		if _, err := store.SaveMatchResult(storage.MatchResult{
			GameID: "brawl", Winner: winner, Duration: 42,
		}); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	rows, footer := loadMatchBoard(store)
	if len(rows) != 3 {
		t.Fatalf("match rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "42s" {
		t.Errorf("duration cell = %q, want 42s", rows[0][1])
	}
	if !strings.Contains(footer, "Slash 2") || !strings.Contains(footer, "Crush 1") {
		t.Errorf("win tally footer = %q", footer)
	}
}

func TestScoreboardBenchBoard(t *testing.T) {
	store := newTestStore(t)
	for _, scene := range []string{"pyramid", "joint-grid"} {
		if _, err := store.SaveBenchResult(storage.BenchResult{
			Scene: scene, Steps: 600, Bodies: 211, StepsPerS: 1234,
		}); err != nil {
			t.Fatalf("SaveBenchResult() failed: %v", err)
		}
	}

	rows, _ := loadBenchBoard(store)
	if len(rows) != 2 {
		t.Fatalf("bench rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "1234" {
		t.Errorf("steps/s cell = %q, want 1234", rows[0][1])
	}
}

func TestScoreboardModelHasOutcomeBoards(t *testing.T) {
	store := newTestStore(t)
	m := NewScoreboardModel(store, 100, 30)

	titles := make(map[string]bool)
	for _, b := range m.boards {
		titles[b.title] = true
	}
	if !titles["Brawl Matches"] || !titles["Bench Runs"] {
		t.Fatalf("boards = %v, want match and bench boards present", titles)
	}

	// Cycling through every board must keep the view renderable.
	for range m.boards {
		m.cursor = (m.cursor + 1) % len(m.boards)
		m.loadBoard()
		if out := m.View(); out == "" {
			t.Fatal("View() returned empty for a live model")
		}
	}
}
