// Package tower defines placed towers: unlimited ammo, finite health.
package tower

import (
	"fmt"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
)

// Stats are the per-kind tower parameters from the level file.
type Stats struct {
	Health   int           `yaml:"health"`
	Range    float64       `yaml:"range"`    // in cells, measured between centers
	Damage   int           `yaml:"damage"`   // per shot
	Cooldown time.Duration `yaml:"cooldown"` // between shots
	Glyph    string        `yaml:"glyph"`
}

// Validate checks that a tower kind can fight and be destroyed.
func (s Stats) Validate() error {
	switch {
	case s.Health <= 0:
		return fmt.Errorf("health must be positive, got %d", s.Health)
	case s.Range <= 0:
		return fmt.Errorf("range must be positive, got %g", s.Range)
	case s.Damage < 0:
		return fmt.Errorf("damage must not be negative, got %d", s.Damage)
	case s.Cooldown <= 0:
		return fmt.Errorf("cooldown must be positive, got %s", s.Cooldown)
	}
	return nil
}

// Rune returns the glyph used on the map.
func (s Stats) Rune() rune {
	for _, r := range s.Glyph {
		return r
	}
	return 'T'
}

// Tower is a placed tower instance.
type Tower struct {
	ID      int
	Kind    string
	Cell    grid.Point
	Health  int
	Stats   Stats
	BuiltBy core.PlayerID

	cooldown time.Duration
}

// New creates a tower with full health and a loaded first shot.
func New(id int, kind string, cell grid.Point, stats Stats, by core.PlayerID) *Tower {
	return &Tower{
		ID:      id,
		Kind:    kind,
		Cell:    cell,
		Health:  stats.Health,
		Stats:   stats,
		BuiltBy: by,
	}
}

// Alive reports whether the tower still stands.
func (t *Tower) Alive() bool {
	return t.Health > 0
}

// Center returns the tower position for range checks.
func (t *Tower) Center() core.Vec {
	return t.Cell.Center()
}

// InRange reports whether a position is within firing range.
func (t *Tower) InRange(v core.Vec) bool {
	return t.Center().Dist(v) <= t.Stats.Range
}

// TakeDamage lowers health, never below zero.
// Returns true only on the hit that destroys the tower.
func (t *Tower) TakeDamage(n int) bool {
	if !t.Alive() || n <= 0 {
		return false
	}
	t.Health -= n
	if t.Health <= 0 {
		t.Health = 0
		return true
	}
	return false
}

// Cool advances the shot cooldown.
func (t *Tower) Cool(dt time.Duration) {
	if t.cooldown > 0 {
		t.cooldown -= dt
	}
}

// Ready reports whether the tower can shoot this tick.
func (t *Tower) Ready() bool {
	return t.Alive() && t.cooldown <= 0
}

// Fire starts the cooldown and returns the shot damage.
func (t *Tower) Fire() int {
	t.cooldown += t.Stats.Cooldown
	return t.Stats.Damage
}

// HealthRatio returns health in [0, 1] for HUD bars.
func (t *Tower) HealthRatio() float64 {
	if t.Stats.Health <= 0 {
		return 0
	}
	return float64(t.Health) / float64(t.Stats.Health)
}
