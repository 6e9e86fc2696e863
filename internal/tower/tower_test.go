package tower

import (
	"testing"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
)

var cannon = Stats{Health: 10, Range: 2.5, Damage: 3, Cooldown: 500 * time.Millisecond, Glyph: "C"}

func TestTakeDamageDestroysOnce(t *testing.T) {
	tw := New(1, "cannon", grid.P(2, 2), cannon, core.Player1)

	if tw.TakeDamage(4) {
		t.Fatal("tower should survive the first hit")
	}
	if !tw.TakeDamage(20) {
		t.Fatal("second hit should destroy the tower")
	}
	if tw.Health != 0 || tw.Alive() {
		t.Errorf("Health = %d, Alive = %v", tw.Health, tw.Alive())
	}
	if tw.TakeDamage(1) {
		t.Error("a destroyed tower cannot be destroyed again")
	}
}

func TestFireCooldown(t *testing.T) {
	tw := New(1, "cannon", grid.P(0, 0), cannon, core.Player2)
	tick := time.Second / 30

	if !tw.Ready() {
		t.Fatal("new towers start loaded")
	}
	if dmg := tw.Fire(); dmg != 3 {
		t.Errorf("Fire() = %d, expected 3", dmg)
	}

	shots := 0
	for i := 0; i < 45; i++ {
		tw.Cool(tick)
		if tw.Ready() {
			tw.Fire()
			shots++
		}
	}
	if shots != 2 {
		t.Errorf("shots in 1.5s after the first = %d, expected 2", shots)
	}
}

func TestInRange(t *testing.T) {
	tw := New(1, "cannon", grid.P(0, 0), cannon, core.Player1)
	if !tw.InRange(grid.P(2, 0).Center()) {
		t.Error("cell two columns away should be in range 2.5")
	}
	if tw.InRange(grid.P(2, 2).Center()) {
		t.Error("diagonal distance 2.83 should be out of range")
	}
}

func TestStatsValidate(t *testing.T) {
	if err := cannon.Validate(); err != nil {
		t.Errorf("valid stats rejected: %v", err)
	}
	bad := cannon
	bad.Cooldown = 0
	if bad.Validate() == nil {
		t.Error("zero cooldown should be rejected")
	}
	if (Stats{}).Rune() != 'T' || cannon.Rune() != 'C' {
		t.Error("unexpected glyphs")
	}
}
