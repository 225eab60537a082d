package config

import (
	_ "embed"

	"github.com/kvistberg/arena2d/internal/session"
)

//go:embed defaults/brawl.yaml
var defaultBrawlYAML []byte

//go:embed defaults/blockbreak.yaml
var defaultBlockbreakYAML []byte

//go:embed defaults/bench.yaml
var defaultBenchYAML []byte

// DefaultBrawlConfig returns the default Weapon Brawl configuration.
func DefaultBrawlConfig() BrawlConfig {
	return BrawlConfig{
		Arena: ArenaConfig{
			Width:         40,
			Height:        22,
			Gravity:       -10,
			WallThickness: 0.5,
			KillzoneDepth: 4,
		},
		Roster: []FighterConfig{
			{Name: "Slash", Weapon: "sword", Team: 0},
			{Name: "Crush", Weapon: "mace", Team: 1},
			{Name: "Viper", Weapon: "venom", Team: 2},
			{Name: "Ripper", Weapon: "saw", Team: 3},
			{Name: "Pike", Weapon: "spear", Team: 4},
			{Name: "Reaper", Weapon: "scythe", Team: 5},
			{Name: "Boom", Weapon: "grenadier", Team: 6},
			{Name: "Flick", Weapon: "shuriken", Team: 7},
		},
		Turrets: TurretConfig{
			Enabled:         true,
			Count:           2,
			FireInterval:    1.5,
			ProjectileSpeed: 18,
			Range:           30,
		},
		Tuning: session.DefaultTuning(),
	}
}

// DefaultBlockbreakConfig returns the default Blockbreak configuration.
func DefaultBlockbreakConfig() BlockbreakConfig {
	return BlockbreakConfig{
		Physics: BlockbreakPhysics{
			BallSpeed:    11,
			PaddleSpeed:  16,
			MaxBallSpeed: 24,
		},
		Paddle: BlockbreakPaddle{
			Width:  4.0,
			Height: 0.5,
		},
		Layout: BlockbreakLayout{
			Rows:   5,
			Cols:   10,
			BrickW: 2.2,
			BrickH: 0.9,
		},
		Gameplay: BlockbreakGameplay{
			Lives:         3,
			BrickHealth:   3,
			BrickPoints:   10,
			SpeedUpEveryN: 10,
			SpeedUpAmount: 0.8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				PaddleShrink:    1.0,
			},
		},
	}
}

// DefaultBenchConfig returns the default benchmark configuration.
func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		Steps:         600,
		PyramidHeight: 20,
		GridSize:      8,
		Rays:          256,
		Seed:          1,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "brawl":
		return defaultBrawlYAML
	case "blockbreak":
		return defaultBlockbreakYAML
	case "bench":
		return defaultBenchYAML
	default:
		return nil
	}
}
