package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in rules.
// It mirrors defaults/blockfall.yaml and is used if the embedded file fails to parse.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Spawn: SpawnConfig{
			X: 4,
			Y: 0,
		},
		Scoring: ScoringConfig{
			LineBonus: 100,
		},
		Speed: SpeedConfig{
			InitialMS: 500,
			MinMS:     100,
			StepMS:    50,
			Threshold: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Preset:  string(DifficultyNormal),
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `blockfall config`.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
