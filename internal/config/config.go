// Package config provides YAML-based tuning and difficulty management for
// the kitchen.
package config

import (
	"fmt"

	"github.com/vovakirdan/kitchen-defense/internal/feed"
)

// KitchenConfig contains the tuning shared by every level.
type KitchenConfig struct {
	Throw      feed.Spec        `yaml:"throw"`
	Simulation SimulationConfig `yaml:"simulation"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SimulationConfig defines tick and headless limits.
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"` // ticks per second
	MaxTicks int `yaml:"max_ticks"` // headless runs stop here
}

// ScoringConfig defines the points awarded at the end of a run.
type ScoringConfig struct {
	Sated     int `yaml:"sated"`
	Killed    int `yaml:"killed"`
	Wave      int `yaml:"wave"`       // per wave fully spawned
	Win       int `yaml:"win"`
	LifeBonus int `yaml:"life_bonus"` // per portal life left on a win
}

// Validate checks the tuning values.
func (c KitchenConfig) Validate() error {
	if err := c.Throw.Validate(); err != nil {
		return fmt.Errorf("config: throw: %w", err)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", c.Simulation.TickRate)
	}
	if c.Simulation.MaxTicks < 0 {
		return fmt.Errorf("config: max ticks must not be negative, got %d", c.Simulation.MaxTicks)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "waves", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Wave index or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	DecayMultiplier float64 `yaml:"decay_multiplier"` // Added to hunger decay at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

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
