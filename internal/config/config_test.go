package config

import (
	"testing"

	"github.com/kvistberg/arena2d/internal/session"
)

func TestLoadBrawlCustomPathBackfillsTuning(t *testing.T) {
	cfg, err := LoadBrawl("testdata/duel.yaml")
	if err != nil {
		t.Fatalf("LoadBrawl() failed: %v", err)
	}

	if len(cfg.Roster) != 2 {
		t.Fatalf("roster size = %d, want 2", len(cfg.Roster))
	}
	if cfg.Roster[0].Name != "Ada" || cfg.Roster[1].Name != "Bea" {
		t.Errorf("roster = %+v", cfg.Roster)
	}

	// The file has no tuning block: stock tuning must be backfilled so
	// fighters don't spawn with zero health.
	def := session.DefaultTuning()
	if cfg.Tuning.StartHealth != def.StartHealth {
		t.Errorf("StartHealth = %d, want backfilled %d", cfg.Tuning.StartHealth, def.StartHealth)
	}
	if cfg.Tuning.BaseDamage[session.KindSword] == 0 {
		t.Error("BaseDamage not backfilled")
	}
}

func TestFighterKindParsing(t *testing.T) {
	cfg, err := LoadBrawl("testdata/duel.yaml")
	if err != nil {
		t.Fatalf("LoadBrawl() failed: %v", err)
	}

	if k := cfg.Roster[0].Kind(); k != session.KindSword {
		t.Errorf("Ada's kind = %v, want sword", k)
	}
	// Weapon keys are case-insensitive.
	if k := cfg.Roster[1].Kind(); k != session.KindSaw {
		t.Errorf("Bea's kind = %v, want saw", k)
	}
	// Unknown or empty weapon falls back to unarmed.
	f := FighterConfig{Name: "X", Weapon: "banjo"}
	if k := f.Kind(); k != session.KindUnarmed {
		t.Errorf("unknown weapon kind = %v, want unarmed", k)
	}
}

func TestLoadBrawlMissingCustomPath(t *testing.T) {
	if _, err := LoadBrawl("testdata/nope.yaml"); err == nil {
		t.Error("expected error for missing custom config path")
	}
}

func TestDefaultBrawlConfigRosterIsValid(t *testing.T) {
	cfg := DefaultBrawlConfig()

	if len(cfg.Roster) == 0 {
		t.Fatal("default roster is empty")
	}
	teams := make(map[int]bool)
	for _, f := range cfg.Roster {
		if _, ok := session.ParseKind(f.Weapon); !ok {
			t.Errorf("default roster fighter %q has unknown weapon %q", f.Name, f.Weapon)
		}
		teams[f.Team] = true
	}
	if len(teams) < 2 {
		t.Error("default roster needs at least two teams for a match")
	}
	if cfg.Tuning.StartHealth <= 0 {
		t.Error("default tuning has no start health")
	}
}

func TestApplyBlockbreakPreset(t *testing.T) {
	easy := DefaultBlockbreakConfig()
	ApplyBlockbreakPreset(&easy, DifficultyEasy)

	hard := DefaultBlockbreakConfig()
	ApplyBlockbreakPreset(&hard, DifficultyHard)

	if easy.Gameplay.Lives <= hard.Gameplay.Lives {
		t.Errorf("easy lives (%d) should exceed hard lives (%d)", easy.Gameplay.Lives, hard.Gameplay.Lives)
	}
	if easy.Paddle.Width <= hard.Paddle.Width {
		t.Errorf("easy paddle (%v) should be wider than hard (%v)", easy.Paddle.Width, hard.Paddle.Width)
	}
	if easy.Physics.BallSpeed >= hard.Physics.BallSpeed {
		t.Errorf("easy ball (%v) should be slower than hard (%v)", easy.Physics.BallSpeed, hard.Physics.BallSpeed)
	}
}

func TestDifficultyManagerScaling(t *testing.T) {
	mgr := NewDifficultyManager(DefaultBlockbreakConfig().Difficulty)

	base := 10.0
	early := mgr.BallSpeed(base, 0, 0)
	late := mgr.BallSpeed(base, 500, 60*120)
	if late < early {
		t.Errorf("ball speed should not shrink with progress: early=%v late=%v", early, late)
	}

	wide := mgr.PaddleWidth(4.0, 0, 0)
	narrow := mgr.PaddleWidth(4.0, 500, 60*120)
	if narrow > wide {
		t.Errorf("paddle should not grow with progress: early=%v late=%v", wide, narrow)
	}
	if narrow < 1.5 {
		t.Errorf("paddle width %v below floor", narrow)
	}

	// A disabled manager holds its level constant regardless of progress.
	mgr.SetEnabled(false)
	if a, b := mgr.BallSpeed(base, 0, 0), mgr.BallSpeed(base, 500, 60*120); a != b {
		t.Errorf("disabled manager still progresses: %v vs %v", a, b)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	for _, id := range []string{"brawl", "blockbreak", "bench"} {
		if data := GetDefaultYAML(id); len(data) == 0 {
			t.Errorf("GetDefaultYAML(%q) returned empty data", id)
		}
	}
	if data := GetDefaultYAML("nope"); data != nil {
		t.Error("expected nil for unknown game id")
	}
}
