// Package feed implements thrown food: single-use projectiles that home in on
// an enemy, or on a tower under attack, and apply a fixed feed value on hit.
package feed

import (
	"fmt"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

// TargetKind tells what a projectile was thrown at.
type TargetKind int

const (
	TargetEnemy TargetKind = iota
	TargetTower
)

func (k TargetKind) String() string {
	if k == TargetTower {
		return "tower"
	}
	return "enemy"
}

// Target identifies the entity a projectile homes in on.
type Target struct {
	Kind TargetKind
	ID   int
}

// Spec is the throw configuration shared by both seats.
type Spec struct {
	FeedValue float64       `yaml:"feed_value"`
	Speed     float64       `yaml:"speed"` // cells per second
	Lifetime  time.Duration `yaml:"lifetime"`
	HitRadius float64       `yaml:"hit_radius"`
	Range     float64       `yaml:"range"` // max distance to pick a target
	Cooldown  time.Duration `yaml:"cooldown"`
}

// Validate checks the throw parameters.
func (s Spec) Validate() error {
	switch {
	case s.FeedValue <= 0:
		return fmt.Errorf("feed value must be positive, got %g", s.FeedValue)
	case s.Speed <= 0:
		return fmt.Errorf("projectile speed must be positive, got %g", s.Speed)
	case s.Lifetime <= 0:
		return fmt.Errorf("projectile lifetime must be positive, got %s", s.Lifetime)
	case s.HitRadius <= 0:
		return fmt.Errorf("hit radius must be positive, got %g", s.HitRadius)
	case s.Range <= 0:
		return fmt.Errorf("throw range must be positive, got %g", s.Range)
	case s.Cooldown < 0:
		return fmt.Errorf("throw cooldown must not be negative, got %s", s.Cooldown)
	}
	return nil
}

// Projectile is one thrown food item.
type Projectile struct {
	ID        int
	By        core.PlayerID
	Pos       core.Vec
	Target    Target
	FeedValue float64

	speed    float64
	radius   float64
	ttl      time.Duration
	lastAim  core.Vec
	consumed bool
}

// Launch creates a projectile at from, aimed at a target currently at aim.
func Launch(id int, by core.PlayerID, from core.Vec, target Target, aim core.Vec, spec Spec) *Projectile {
	return &Projectile{
		ID:        id,
		By:        by,
		Pos:       from,
		Target:    target,
		FeedValue: spec.FeedValue,
		speed:     spec.Speed,
		radius:    spec.HitRadius,
		ttl:       spec.Lifetime,
		lastAim:   aim,
	}
}

// Active reports whether the projectile is still in flight.
func (p *Projectile) Active() bool {
	return !p.consumed && p.ttl > 0
}

// Radius returns the collision radius.
func (p *Projectile) Radius() float64 { return p.radius }

// Aim returns the last known target position.
func (p *Projectile) Aim() core.Vec { return p.lastAim }

// Advance flies toward the target. When the target is gone (found is false)
// the projectile keeps flying at the last known position.
// Returns false once the projectile has expired.
func (p *Projectile) Advance(dt time.Duration, aim core.Vec, found bool) bool {
	if !p.Active() {
		return false
	}
	if found {
		p.lastAim = aim
	}
	p.Pos, _ = p.Pos.MoveToward(p.lastAim, p.speed*dt.Seconds())
	p.ttl -= dt
	return p.ttl > 0
}

// Consume marks the projectile as used. Returns false if it already was.
func (p *Projectile) Consume() bool {
	if p.consumed {
		return false
	}
	p.consumed = true
	return true
}

// Collider decides whether two circles touch. It stands in for the physics
// engine so the simulation can run headless.
type Collider interface {
	Overlaps(a core.Vec, ra float64, b core.Vec, rb float64) bool
}

// CircleCollider is a plain distance test.
type CircleCollider struct{}

// Overlaps reports whether the circles intersect or touch.
func (CircleCollider) Overlaps(a core.Vec, ra float64, b core.Vec, rb float64) bool {
	return a.Dist(b) <= ra+rb
}
