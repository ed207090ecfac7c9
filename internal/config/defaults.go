package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultGameConfig returns the default match-3 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Width:     8,
			Height:    8,
			TileKinds: 5,
		},
		Cascade: CascadeConfig{
			MaxDepth: 50,
		},
		Difficulty: DifficultyNormal,
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMatch3YAML
}
