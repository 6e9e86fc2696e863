// Package outcome decides when a level ends. It is a three-state machine:
// Running can move to Won or Lost, and neither terminal state has exits.
package outcome

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a trigger the current state does not accept.
var ErrInvalidTransition = errors.New("outcome: invalid transition")

// State is the level result.
type State int

const (
	StateRunning State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level is over.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Trigger is an input to the evaluator.
type Trigger int

const (
	TriggerPortalOverrun Trigger = iota // breaches used up every portal life
	TriggerCleared                      // director complete and nobody left alive
)

var transitions = map[State]map[Trigger]State{
	StateRunning: {
		TriggerPortalOverrun: StateLost,
		TriggerCleared:       StateWon,
	},
}

// Next looks up the table.
func Next(from State, t Trigger) (State, bool) {
	to, ok := transitions[from][t]
	return to, ok
}

// Observation is what the evaluator sees at the end of a tick.
type Observation struct {
	Tick             uint64
	Breaches         int  // total enemies that reached the portal
	DirectorComplete bool // wave director reached Complete
	LiveEnemies      int  // enemies still in the live set
}

// Evaluator holds the level result.
type Evaluator struct {
	lives     int
	state     State
	decidedAt uint64
}

// NewEvaluator creates an evaluator. lives is how many breaches end the
// level; values below one are treated as one.
func NewEvaluator(lives int) *Evaluator {
	if lives < 1 {
		lives = 1
	}
	return &Evaluator{lives: lives}
}

// State returns the current result.
func (e *Evaluator) State() State { return e.state }

// Lives returns the configured breach budget.
func (e *Evaluator) Lives() int { return e.lives }

// LivesLeft returns how many more breaches the portal absorbs before the loss.
func (e *Evaluator) LivesLeft(breaches int) int {
	left := e.lives - breaches
	if left < 0 {
		return 0
	}
	return left
}

// DecidedAt returns the tick the level ended on.
func (e *Evaluator) DecidedAt() uint64 { return e.decidedAt }

// Evaluate checks the end conditions, loss first, and returns the state and
// whether it changed on this call. Once terminal it never changes again.
func (e *Evaluator) Evaluate(obs Observation) (State, bool) {
	if e.state.Terminal() {
		return e.state, false
	}

	// Loss is checked first: a breaching enemy has already left the live
	// set, so it must not be able to count toward a win on the same tick.
	var trig Trigger
	switch {
	case obs.Breaches >= e.lives:
		trig = TriggerPortalOverrun
	case obs.DirectorComplete && obs.LiveEnemies == 0:
		trig = TriggerCleared
	default:
		return e.state, false
	}

	if err := e.fire(trig, obs.Tick); err != nil {
		return e.state, false
	}
	return e.state, true
}

func (e *Evaluator) fire(t Trigger, tick uint64) error {
	to, ok := Next(e.state, t)
	if !ok {
		return fmt.Errorf("%w: %d on %s", ErrInvalidTransition, t, e.state)
	}
	e.state = to
	e.decidedAt = tick
	return nil
}
