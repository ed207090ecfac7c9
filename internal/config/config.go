// Package config provides YAML-based configuration loading and
// difficulty presets for the match-3 game.
package config

import (
	"fmt"

	"github.com/mubatu/match3-game/internal/engine"
)

// GameConfig contains all configuration for a match-3 session.
type GameConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// BoardConfig defines the board dimensions and tile variety.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TileKinds int `yaml:"tile_kinds"` // number of colored kinds in play, 2..6
}

// CascadeConfig defines cascade resolution limits.
type CascadeConfig struct {
	MaxDepth int `yaml:"max_depth"` // automatic cascades allowed per move
}

// DifficultyPreset represents a named difficulty level. Difficulty maps to
// tile variety: fewer kinds match more often and cascade deeper.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// KindsForPreset returns the colored tile kind count for a difficulty preset.
func KindsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyHard:
		return 6
	default:
		return 5
	}
}

// ApplyPreset overrides the tile variety from a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	cfg.Board.TileKinds = KindsForPreset(preset)
}

// Validate checks that the configuration describes a playable board.
func (c GameConfig) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("config: board %dx%d is too small to hold a match", c.Board.Width, c.Board.Height)
	}
	if c.Board.TileKinds < 2 || c.Board.TileKinds > len(engine.ColoredKinds) {
		return fmt.Errorf("config: tile_kinds must be 2..%d, got %d", len(engine.ColoredKinds), c.Board.TileKinds)
	}
	if c.Cascade.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative, got %d", c.Cascade.MaxDepth)
	}
	return nil
}

// EngineConfig converts the loaded configuration into the engine's
// construction surface. The seed is supplied by the caller so replays and
// simulations stay reproducible.
func (c GameConfig) EngineConfig(seed int64) engine.Config {
	return engine.Config{
		Width:           c.Board.Width,
		Height:          c.Board.Height,
		TileKinds:       engine.ColoredKinds[:c.Board.TileKinds],
		MaxCascadeDepth: c.Cascade.MaxDepth,
		Seed:            seed,
	}
}
