package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kvistberg/arena2d/internal/session"
)

// LoadBrawl loads Weapon Brawl configuration.
// Search order: customPath -> ~/.arena2d/configs/brawl.yaml -> ./configs/brawl.yaml -> embedded default
func LoadBrawl(customPath string) (BrawlConfig, error) {
	var cfg BrawlConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return fillBrawl(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("brawl.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return fillBrawl(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/brawl.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return fillBrawl(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBrawlYAML, &cfg); err != nil {
		return DefaultBrawlConfig(), nil // Fallback to hardcoded if embed fails
	}
	return fillBrawl(cfg), nil
}

// fillBrawl patches in what a partial YAML file left out. A file with no
// tuning section gets the stock tuning; per-kind base damage keys on the
// WeaponKind enum and always comes from the stock table.
func fillBrawl(cfg BrawlConfig) BrawlConfig {
	if cfg.Tuning.StartHealth == 0 {
		cfg.Tuning = session.DefaultTuning()
	}
	if cfg.Tuning.BaseDamage == nil {
		cfg.Tuning.BaseDamage = session.DefaultTuning().BaseDamage
	}
	if len(cfg.Roster) == 0 {
		cfg.Roster = DefaultBrawlConfig().Roster
	}
	return cfg
}

// LoadBlockbreak loads Blockbreak configuration.
// Search order: customPath -> ~/.arena2d/configs/blockbreak.yaml -> ./configs/blockbreak.yaml -> embedded default
func LoadBlockbreak(customPath string) (BlockbreakConfig, error) {
	var cfg BlockbreakConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blockbreak.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blockbreak.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlockbreakYAML, &cfg); err != nil {
		return DefaultBlockbreakConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadBench loads benchmark configuration.
// Search order: customPath -> ~/.arena2d/configs/bench.yaml -> ./configs/bench.yaml -> embedded default
func LoadBench(customPath string) (BenchConfig, error) {
	var cfg BenchConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bench.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/bench.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBenchYAML, &cfg); err != nil {
		return DefaultBenchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena2d", "configs", filename)
}

// ApplyBlockbreakPreset modifies the config based on a difficulty preset.
func ApplyBlockbreakPreset(cfg *BlockbreakConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 5.0
		cfg.Physics.BallSpeed = 9
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 3.0
		cfg.Physics.BallSpeed = 14
	}
}
