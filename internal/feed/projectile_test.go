package feed

import (
	"testing"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

var throw = Spec{FeedValue: 6, Speed: 10, Lifetime: time.Second, HitRadius: 0.4, Range: 6, Cooldown: 300 * time.Millisecond}

func TestProjectileHomesOnMovingTarget(t *testing.T) {
	p := Launch(1, core.Player1, core.Vec{X: 0, Y: 0}, Target{Kind: TargetEnemy, ID: 3}, core.Vec{X: 5, Y: 0}, throw)
	tick := 100 * time.Millisecond

	p.Advance(tick, core.Vec{X: 5, Y: 0}, true)
	if p.Pos.X < 0.99 || p.Pos.X > 1.01 {
		t.Errorf("after one tick X = %g, expected 1", p.Pos.X)
	}

	// target moved down; the projectile follows
	p.Advance(tick, core.Vec{X: 1, Y: 5}, true)
	if p.Pos.Y <= 0 {
		t.Errorf("projectile should turn toward the new position, got %+v", p.Pos)
	}
	if p.Aim() != (core.Vec{X: 1, Y: 5}) {
		t.Errorf("Aim() = %+v", p.Aim())
	}
}

func TestProjectileKeepsLastAimWhenTargetGone(t *testing.T) {
	p := Launch(1, core.Player2, core.Vec{}, Target{Kind: TargetEnemy, ID: 3}, core.Vec{X: 2, Y: 0}, throw)
	p.Advance(time.Second/2, core.Vec{X: 99, Y: 99}, false)
	if p.Pos != (core.Vec{X: 2, Y: 0}) {
		t.Errorf("projectile should land on the last known position, got %+v", p.Pos)
	}
}

func TestProjectileExpires(t *testing.T) {
	p := Launch(1, core.Player1, core.Vec{}, Target{Kind: TargetTower, ID: 1}, core.Vec{X: 50, Y: 0}, throw)
	alive := 0
	for p.Advance(100*time.Millisecond, core.Vec{X: 50, Y: 0}, true) {
		alive++
	}
	if alive != 9 || p.Active() {
		t.Errorf("projectile lived %d ticks, active=%v; expected 9 and expired", alive, p.Active())
	}
}

func TestConsumeIsSingleUse(t *testing.T) {
	p := Launch(1, core.Player1, core.Vec{}, Target{}, core.Vec{}, throw)
	if !p.Consume() {
		t.Fatal("first Consume should succeed")
	}
	if p.Consume() || p.Active() {
		t.Error("a consumed projectile cannot be used again")
	}
	if p.Advance(time.Millisecond, core.Vec{}, true) {
		t.Error("consumed projectiles do not fly")
	}
}

func TestCircleCollider(t *testing.T) {
	var c Collider = CircleCollider{}
	if !c.Overlaps(core.Vec{}, 0.4, core.Vec{X: 0.8}, 0.4) {
		t.Error("touching circles overlap")
	}
	if c.Overlaps(core.Vec{}, 0.4, core.Vec{X: 1}, 0.4) {
		t.Error("separated circles do not overlap")
	}
}

func TestSpecValidate(t *testing.T) {
	if err := throw.Validate(); err != nil {
		t.Fatal(err)
	}
	bad := throw
	bad.FeedValue = 0
	if bad.Validate() == nil {
		t.Error("zero feed value should be rejected")
	}
}
