package agent

import (
	"fmt"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

// HungerSpec configures an enemy kind's meter. The meter counts how much the
// enemy has eaten: feeding raises it, time lowers it.
type HungerSpec struct {
	Max          float64 `yaml:"max"`
	Start        float64 `yaml:"start"`
	DecayPerSec  float64 `yaml:"decay_per_second"`
	AggressiveAt float64 `yaml:"aggressive_at"` // aggressive while value <= this
	SatedAt      float64 `yaml:"sated_at"`      // removed once value reaches this; 0 means Max
}

// Validate checks the thresholds are ordered inside [0, Max].
func (s HungerSpec) Validate() error {
	sated := s.satedAt()
	switch {
	case s.Max <= 0:
		return fmt.Errorf("hunger max must be positive, got %g", s.Max)
	case s.Start < 0 || s.Start > s.Max:
		return fmt.Errorf("hunger start %g outside [0, %g]", s.Start, s.Max)
	case s.DecayPerSec < 0:
		return fmt.Errorf("hunger decay must not be negative, got %g", s.DecayPerSec)
	case sated <= 0 || sated > s.Max:
		return fmt.Errorf("sated threshold %g outside (0, %g]", sated, s.Max)
	case s.AggressiveAt < 0 || s.AggressiveAt >= sated:
		return fmt.Errorf("aggressive threshold %g must be in [0, %g)", s.AggressiveAt, sated)
	case s.Start >= sated:
		return fmt.Errorf("hunger start %g is already sated", s.Start)
	}
	return nil
}

func (s HungerSpec) satedAt() float64 {
	if s.SatedAt == 0 {
		return s.Max
	}
	return s.SatedAt
}

// Hunger is a bounded meter in [0, Max].
type Hunger struct {
	spec  HungerSpec
	value float64
	sated bool
}

// NewHunger creates a meter at the spec's start value.
func NewHunger(spec HungerSpec) Hunger {
	return Hunger{spec: spec, value: core.ClampF(spec.Start, 0, spec.Max)}
}

// Value returns the current meter value.
func (h *Hunger) Value() float64 { return h.value }

// Max returns the meter's upper bound.
func (h *Hunger) Max() float64 { return h.spec.Max }

// Ratio returns value/max for HUD bars.
func (h *Hunger) Ratio() float64 {
	if h.spec.Max <= 0 {
		return 0
	}
	return h.value / h.spec.Max
}

// Aggressive reports whether the enemy is hungry enough to attack towers.
func (h *Hunger) Aggressive() bool {
	return !h.sated && h.value <= h.spec.AggressiveAt
}

// Sated reports whether the sated threshold has been crossed.
func (h *Hunger) Sated() bool { return h.sated }

// Feed adds food to the meter, clamped to Max.
// Returns true only on the feed that crosses the sated threshold.
func (h *Hunger) Feed(amount float64) bool {
	if amount <= 0 {
		return false
	}
	h.value = core.ClampF(h.value+amount, 0, h.spec.Max)
	if h.sated || h.value < h.spec.satedAt() {
		return false
	}
	h.sated = true
	return true
}

// Decay lowers the meter by the per-second rate scaled by the multiplier.
// Sated enemies stop digesting.
func (h *Hunger) Decay(seconds, multiplier float64) {
	if h.sated || seconds <= 0 {
		return
	}
	h.value = core.ClampF(h.value-h.spec.DecayPerSec*multiplier*seconds, 0, h.spec.Max)
}
