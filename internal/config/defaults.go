package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/feed"
)

//go:embed defaults/kitchen.yaml
var defaultKitchenYAML []byte

// DefaultKitchenConfig returns the hardcoded kitchen configuration.
func DefaultKitchenConfig() KitchenConfig {
	return KitchenConfig{
		Throw: feed.Spec{
			FeedValue: 3,
			Speed:     10,
			Lifetime:  1500 * time.Millisecond,
			HitRadius: 0.45,
			Range:     7,
			Cooldown:  350 * time.Millisecond,
		},
		Simulation: SimulationConfig{
			TickRate: 30,
			MaxTicks: 54000,
		},
		Scoring: ScoringConfig{
			Sated:     10,
			Killed:    5,
			Wave:      50,
			Win:       200,
			LifeBonus: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "waves",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				DecayMultiplier: 0.75,
			},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultKitchenYAML
}
