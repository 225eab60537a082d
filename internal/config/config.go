// Package config provides YAML-based game configuration loading and
// difficulty management for the arena platform.
package config

import (
	"github.com/kvistberg/arena2d/internal/session"
)

// BrawlConfig contains all configuration for the Weapon Brawl game.
type BrawlConfig struct {
	Arena   ArenaConfig     `yaml:"arena"`
	Roster  []FighterConfig `yaml:"roster"`
	Turrets TurretConfig    `yaml:"turrets"`
	Tuning  session.Tuning  `yaml:"tuning"`
}

// ArenaConfig defines the walled arena the fighters brawl in.
// Dimensions are in physics meters, not screen cells.
type ArenaConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Gravity       float64 `yaml:"gravity"`
	WallThickness float64 `yaml:"wall_thickness"`
	// KillzoneDepth is how far below the floor the projectile-reaping
	// sensor sits.
	KillzoneDepth float64 `yaml:"killzone_depth"`
}

// FighterConfig describes one fighter in the brawl roster.
type FighterConfig struct {
	Name   string `yaml:"name"`
	Weapon string `yaml:"weapon"` // short kind key, e.g. "saw", "grenadier"
	Team   int    `yaml:"team"`   // fighters on the same team skip each other
}

// Kind resolves the configured weapon name, defaulting to unarmed.
func (f FighterConfig) Kind() session.WeaponKind {
	if k, ok := session.ParseKind(f.Weapon); ok {
		return k
	}
	return session.KindUnarmed
}

// TurretConfig defines the wall-mounted turrets of the brawl arena.
type TurretConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Count           int     `yaml:"count"`
	FireInterval    float64 `yaml:"fire_interval"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Range           float64 `yaml:"range"`
}

// BlockbreakConfig contains all configuration for the Blockbreak game.
type BlockbreakConfig struct {
	Physics    BlockbreakPhysics  `yaml:"physics"`
	Paddle     BlockbreakPaddle   `yaml:"paddle"`
	Layout     BlockbreakLayout   `yaml:"layout"`
	Gameplay   BlockbreakGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// BlockbreakPhysics defines ball and paddle motion, in meters per second.
type BlockbreakPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
}

// BlockbreakPaddle defines paddle geometry in meters.
type BlockbreakPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BlockbreakLayout defines the brick wall.
type BlockbreakLayout struct {
	Rows   int     `yaml:"rows"`
	Cols   int     `yaml:"cols"`
	BrickW float64 `yaml:"brick_w"`
	BrickH float64 `yaml:"brick_h"`
}

// BlockbreakGameplay defines scoring and lives.
type BlockbreakGameplay struct {
	Lives       int `yaml:"lives"`
	BrickHealth int `yaml:"brick_health"`
	BrickPoints int `yaml:"brick_points"`
	// Ball speed grows by SpeedUpAmount every SpeedUpEveryN broken bricks.
	SpeedUpEveryN int     `yaml:"speed_up_every_n"`
	SpeedUpAmount float64 `yaml:"speed_up_amount"`
}

// BenchConfig contains configuration for the physics benchmark scenes.
type BenchConfig struct {
	Steps         int   `yaml:"steps"`
	PyramidHeight int   `yaml:"pyramid_height"`
	GridSize      int   `yaml:"grid_size"`
	Rays          int   `yaml:"rays"`
	Seed          int64 `yaml:"seed"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
	PaddleShrink    float64 `yaml:"paddle_shrink"`    // Paddle width lost at max difficulty, in meters
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
