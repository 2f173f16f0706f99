// Package config provides YAML-based game configuration loading for the
// blockfall platform.
package config

// BlockfallConfig contains all tuning parameters for the game.
type BlockfallConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Scoring ScoringConfig `yaml:"scoring"`
	Sprint  SprintConfig  `yaml:"sprint"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig defines how fast pieces fall and how speed scales with level.
// All delays are measured in simulation ticks (60 per second by default).
type GravityConfig struct {
	InitialDelayTicks int `yaml:"initial_delay_ticks"` // Delay between drops at level 1
	SpeedupPerLevel   int `yaml:"speedup_per_level"`   // Ticks removed from the delay per level
	MinDelayTicks     int `yaml:"min_delay_ticks"`     // Floor for the drop delay
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	// PerLine is the base award for one cleared row; it is multiplied by
	// the current level. Multi-row clears sum per row, with no combo bonus.
	PerLine int `yaml:"per_line"`
}

// SprintConfig defines the sprint game mode.
type SprintConfig struct {
	TargetLines int `yaml:"target_lines"` // Lines to clear to win
}

// DelayForLevel returns the gravity drop delay in ticks for a level.
func (g GravityConfig) DelayForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	delay := g.InitialDelayTicks - (level-1)*g.SpeedupPerLevel
	if delay < g.MinDelayTicks {
		delay = g.MinDelayTicks
	}
	return delay
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The "fixed" preset disables gravity progression entirely.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Gravity.SpeedupPerLevel = 0
	}
}
