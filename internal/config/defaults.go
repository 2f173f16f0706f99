package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default game configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gravity: GravityConfig{
			InitialDelayTicks: 48,
			SpeedupPerLevel:   4,
			MinDelayTicks:     3,
		},
		Scoring: ScoringConfig{
			PerLine: 100,
		},
		Sprint: SprintConfig{
			TargetLines: 40,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlockfallYAML
}
