// Package agent models the hungry enemies walking toward the portal.
package agent

import (
	"fmt"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
)

// Stats are the per-kind enemy parameters from the level file.
type Stats struct {
	Health         int           `yaml:"health"`
	Speed          float64       `yaml:"speed"` // cells per second
	Damage         int           `yaml:"damage"`
	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	AggroRange     float64       `yaml:"aggro_range"` // cells; 0 means any distance
	Hunger         HungerSpec    `yaml:"hunger"`
	SatedReward    ledger.Counts `yaml:"sated_reward"`
	KillReward     ledger.Counts `yaml:"kill_reward"`
	Glyph          string        `yaml:"glyph"`
}

// Validate checks an enemy kind.
func (s Stats) Validate() error {
	switch {
	case s.Health <= 0:
		return fmt.Errorf("health must be positive, got %d", s.Health)
	case s.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %g", s.Speed)
	case s.Damage < 0:
		return fmt.Errorf("damage must not be negative, got %d", s.Damage)
	case s.AttackCooldown <= 0:
		return fmt.Errorf("attack cooldown must be positive, got %s", s.AttackCooldown)
	case s.AggroRange < 0:
		return fmt.Errorf("aggro range must not be negative, got %g", s.AggroRange)
	}
	return s.Hunger.Validate()
}

// Rune returns the glyph used on the map.
func (s Stats) Rune() rune {
	for _, r := range s.Glyph {
		return r
	}
	return 'e'
}

// State is the lifecycle of an enemy.
type State int

const (
	StateWalking   State = iota // following its path
	StateAttacking              // standing next to a tower, hitting it
	StateSated                  // fed to the threshold, leaving
	StateKilled                 // health reached zero
	StateBreached               // reached the portal
)

func (s State) String() string {
	switch s {
	case StateWalking:
		return "walking"
	case StateAttacking:
		return "attacking"
	case StateSated:
		return "sated"
	case StateKilled:
		return "killed"
	case StateBreached:
		return "breached"
	default:
		return "unknown"
	}
}

// Enemy is one spawned agent.
type Enemy struct {
	ID     int
	Kind   string
	Wave   int
	Pos    core.Vec
	Health int
	Hunger Hunger
	Stats  Stats
	State  State

	// Target is the tower being chased or attacked, 0 when heading for the portal.
	Target int
	// Chasing is set when the enemy left its route on purpose to hunt Target.
	Chasing bool

	path     grid.Path
	next     int
	cooldown time.Duration
	credited bool
}

// New spawns an enemy at the center of a cell.
func New(id int, kind string, wave int, at grid.Point, stats Stats) *Enemy {
	return &Enemy{
		ID:     id,
		Kind:   kind,
		Wave:   wave,
		Pos:    at.Center(),
		Health: stats.Health,
		Hunger: NewHunger(stats.Hunger),
		Stats:  stats,
		State:  StateWalking,
	}
}

// Alive reports whether the enemy is still in the live set.
func (e *Enemy) Alive() bool {
	return e.State == StateWalking || e.State == StateAttacking
}

// Cell returns the cell the enemy stands in.
func (e *Enemy) Cell() grid.Point {
	return grid.CellOf(e.Pos)
}

// SetPath replaces the route. The first cell is treated as already reached
// when the enemy stands in it.
func (e *Enemy) SetPath(p grid.Path) {
	e.path = p
	e.next = 0
	if len(p) > 0 && p[0] == e.Cell() {
		e.next = 1
	}
}

// Path returns the current route.
func (e *Enemy) Path() grid.Path { return e.path }

// NextCell returns the cell the enemy is walking into.
func (e *Enemy) NextCell() (grid.Point, bool) {
	if e.next >= len(e.path) {
		return grid.Point{}, false
	}
	return e.path[e.next], true
}

// Remaining returns the distance left along the path, in cells.
func (e *Enemy) Remaining() float64 {
	if e.next >= len(e.path) {
		return 0
	}
	d := e.Pos.Dist(e.path[e.next].Center())
	d += float64(len(e.path) - 1 - e.next)
	return d
}

// MoveResult describes one movement step.
type MoveResult struct {
	Arrived   bool         // reached the last cell of the path
	Blocked   bool         // next cell is not passable
	BlockedAt grid.Point   // the blocking cell
	Passed    []grid.Point // cells whose center was reached, in order
	End       grid.Point   // cell the enemy stands in afterwards
}

// Crossed reports whether the step reached the center of p or ended inside p.
func (r MoveResult) Crossed(p grid.Point) bool {
	if r.End == p {
		return true
	}
	for _, c := range r.Passed {
		if c == p {
			return true
		}
	}
	return false
}

// Move walks along the path for dt at speed*multiplier. It stops in front of
// a cell that passable rejects.
func (e *Enemy) Move(dt time.Duration, multiplier float64, passable func(grid.Point) bool) MoveResult {
	var res MoveResult
	if e.Alive() {
		e.walk(dt, multiplier, passable, &res)
	}
	res.End = e.Cell()
	return res
}

func (e *Enemy) walk(dt time.Duration, multiplier float64, passable func(grid.Point) bool, res *MoveResult) {
	budget := e.Stats.Speed * multiplier * dt.Seconds()
	for budget > 0 {
		cell, ok := e.NextCell()
		if !ok {
			res.Arrived = len(e.path) > 0
			return
		}
		if !passable(cell) {
			res.Blocked = true
			res.BlockedAt = cell
			return
		}
		before := e.Pos
		pos, reached := e.Pos.MoveToward(cell.Center(), budget)
		e.Pos = pos
		budget -= before.Dist(pos)
		if !reached {
			break
		}
		res.Passed = append(res.Passed, cell)
		e.next++
	}
	res.Arrived = e.next >= len(e.path) && len(e.path) > 0
}

// Feed applies food. Returns true only on the feed that sates the enemy.
func (e *Enemy) Feed(amount float64) bool {
	if !e.Alive() {
		return false
	}
	if e.Hunger.Feed(amount) {
		e.State = StateSated
		e.Target = 0
		return true
	}
	return false
}

// TakeDamage lowers health. Returns true only on the killing hit.
func (e *Enemy) TakeDamage(n int) bool {
	if !e.Alive() || n <= 0 {
		return false
	}
	e.Health -= n
	if e.Health <= 0 {
		e.Health = 0
		e.State = StateKilled
		e.Target = 0
		return true
	}
	return false
}

// Breach marks the enemy as having reached the portal.
func (e *Enemy) Breach() {
	if e.Alive() {
		e.State = StateBreached
		e.Target = 0
	}
}

// Engage switches to attacking a tower.
func (e *Enemy) Engage(towerID int) {
	if !e.Alive() {
		return
	}
	if e.Target != towerID {
		e.cooldown = 0
	}
	e.Target = towerID
	e.State = StateAttacking
}

// Disengage returns to walking; the caller sets a fresh path.
func (e *Enemy) Disengage() {
	if !e.Alive() {
		return
	}
	e.Target = 0
	e.Chasing = false
	e.State = StateWalking
}

// Strike advances the attack cooldown and returns the damage dealt this tick.
func (e *Enemy) Strike(dt time.Duration) int {
	if e.State != StateAttacking {
		return 0
	}
	e.cooldown -= dt
	if e.cooldown > 0 {
		return 0
	}
	e.cooldown += e.Stats.AttackCooldown
	return e.Stats.Damage
}

// Reward returns the ingredients owed for how the enemy left, exactly once.
// Later calls, and calls for enemies that breached or are still alive, return nil.
func (e *Enemy) Reward() ledger.Counts {
	if e.credited {
		return nil
	}
	var reward ledger.Counts
	switch e.State {
	case StateSated:
		reward = e.Stats.SatedReward
	case StateKilled:
		reward = e.Stats.KillReward
	default:
		return nil
	}
	e.credited = true
	return reward.Clone()
}
