package outcome

import (
	"errors"
	"math/rand"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		lives int
		obs   Observation
		want  State
	}{
		{"still running", 1, Observation{LiveEnemies: 3}, StateRunning},
		{"complete but enemies alive", 1, Observation{DirectorComplete: true, LiveEnemies: 1}, StateRunning},
		{"cleared", 1, Observation{DirectorComplete: true}, StateWon},
		{"single breach loses", 1, Observation{Breaches: 1}, StateLost},
		{"breach within lives", 3, Observation{Breaches: 2}, StateRunning},
		{"breach and cleared on the same tick", 1, Observation{Breaches: 1, DirectorComplete: true}, StateLost},
		{"zero lives means one", 0, Observation{Breaches: 1}, StateLost},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator(tc.lives)
			got, changed := e.Evaluate(tc.obs)
			if got != tc.want {
				t.Errorf("Evaluate() = %s, expected %s", got, tc.want)
			}
			if changed != tc.want.Terminal() {
				t.Errorf("changed = %v", changed)
			}
		})
	}
}

func TestTerminalExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 200; trial++ {
		e := NewEvaluator(1 + rng.Intn(3))
		changes := 0
		var first State
		for tick := uint64(0); tick < 300; tick++ {
			obs := Observation{
				Tick:             tick,
				Breaches:         rng.Intn(4),
				DirectorComplete: rng.Intn(3) == 0,
				LiveEnemies:      rng.Intn(3),
			}
			state, changed := e.Evaluate(obs)
			if changed {
				changes++
				first = state
				if e.DecidedAt() != tick {
					t.Fatalf("DecidedAt = %d, expected %d", e.DecidedAt(), tick)
				}
			}
			if changes > 0 && state != first {
				t.Fatalf("trial %d: outcome flipped from %s to %s", trial, first, state)
			}
		}
		if changes > 1 {
			t.Fatalf("trial %d: level ended %d times", trial, changes)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range []State{StateWon, StateLost} {
		for _, trig := range []Trigger{TriggerPortalOverrun, TriggerCleared} {
			if _, ok := Next(s, trig); ok {
				t.Errorf("%s accepts trigger %d", s, trig)
			}
		}
	}

	e := NewEvaluator(1)
	e.Evaluate(Observation{Breaches: 1})
	if err := e.fire(TriggerCleared, 9); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestLivesLeft(t *testing.T) {
	e := NewEvaluator(3)
	if e.LivesLeft(1) != 2 || e.LivesLeft(5) != 0 {
		t.Error("LivesLeft returned wrong values")
	}
}
