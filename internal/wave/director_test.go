package wave

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

const tick = time.Second / 30

func threeWaves() []Wave {
	return []Wave{
		{Countdown: 2 * time.Second, Spawns: []Spawn{{Enemy: "mouse", Count: 3, Interval: time.Second}}},
		{Countdown: 3 * time.Second, Spawns: []Spawn{
			{Enemy: "mouse", Count: 2, Interval: 500 * time.Millisecond},
			{Enemy: "rat", Count: 2, Interval: time.Second, Offset: 250 * time.Millisecond},
		}},
		{Countdown: time.Second, Spawns: []Spawn{{Enemy: "rat", Count: 1}}},
	}
}

func run(t *testing.T, d *Director, ticks int, resolveImmediately bool) []SpawnEvent {
	t.Helper()
	var all []SpawnEvent
	for i := 0; i < ticks; i++ {
		events, err := d.Tick(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		all = append(all, events...)
		if resolveImmediately && len(events) > 0 {
			if err := d.Resolve(len(events)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return all
}

func TestDirectorFollowsTable(t *testing.T) {
	d, err := NewDirector(threeWaves())
	if err != nil {
		t.Fatal(err)
	}
	if d.Declared() != 8 {
		t.Fatalf("Declared() = %d, expected 8", d.Declared())
	}

	events := run(t, d, 30*30, true)
	if len(events) != 8 {
		t.Fatalf("emitted %d events, expected 8", len(events))
	}
	if !d.Complete() {
		t.Fatalf("director should be complete, state %s", d.State())
	}

	want := []State{StateSpawning, StateInterWaveDelay, StateSpawning, StateInterWaveDelay, StateSpawning, StateDraining, StateComplete}
	hist := d.History()
	if len(hist) != len(want) {
		t.Fatalf("history has %d transitions, expected %d: %+v", len(hist), len(want), hist)
	}
	for i, tr := range hist {
		if tr.To != want[i] {
			t.Errorf("transition %d -> %s, expected %s", i, tr.To, want[i])
		}
	}

	// first spawn waits the first countdown
	if events[0].At != 2*time.Second {
		t.Errorf("first spawn at %s, expected 2s", events[0].At)
	}
	// wave 2 starts 3s after the last spawn of wave 1 (at 4s)
	if events[3].Wave != 1 || events[3].At != 7*time.Second {
		t.Errorf("wave 2 first spawn = %+v, expected at 7s", events[3])
	}
	// mixed groups interleave by time: mouse 7s, rat 7.25s, mouse 7.5s, rat 8.25s
	kinds := []string{events[3].Enemy, events[4].Enemy, events[5].Enemy, events[6].Enemy}
	if kinds[0] != "mouse" || kinds[1] != "rat" || kinds[2] != "mouse" || kinds[3] != "rat" {
		t.Errorf("wave 2 order = %v", kinds)
	}
}

func TestDirectorNeverOverEmitsAndKeepsOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 25; trial++ {
		waves := make([]Wave, 1+rng.Intn(4))
		for i := range waves {
			waves[i].Countdown = time.Duration(rng.Intn(3000)) * time.Millisecond
			for j := 0; j < 1+rng.Intn(3); j++ {
				waves[i].Spawns = append(waves[i].Spawns, Spawn{
					Enemy:    "mouse",
					Count:    1 + rng.Intn(5),
					Interval: time.Duration(rng.Intn(800)) * time.Millisecond,
					Offset:   time.Duration(rng.Intn(1500)) * time.Millisecond,
				})
			}
		}
		d, err := NewDirector(waves)
		if err != nil {
			t.Fatal(err)
		}

		var last time.Duration
		total := 0
		for i := 0; i < 60*30; i++ {
			step := time.Duration(rng.Intn(100)) * time.Millisecond
			events, err := d.Tick(step)
			if err != nil {
				t.Fatal(err)
			}
			for _, ev := range events {
				if ev.At < last {
					t.Fatalf("trial %d: spawn at %s after one at %s", trial, ev.At, last)
				}
				if ev.At > d.Elapsed() {
					t.Fatalf("trial %d: spawn scheduled in the future (%s > %s)", trial, ev.At, d.Elapsed())
				}
				last = ev.At
			}
			total += len(events)
			if total > d.Declared() {
				t.Fatalf("trial %d: emitted %d of %d declared", trial, total, d.Declared())
			}
			if len(events) > 0 && rng.Intn(2) == 0 {
				_ = d.Resolve(d.Live())
			}
		}
		_ = d.Resolve(d.Live())
		if total != d.Declared() || !d.Complete() {
			t.Errorf("trial %d: emitted %d/%d, state %s", trial, total, d.Declared(), d.State())
		}
	}
}

func TestDirectorWaitsForDraining(t *testing.T) {
	d, err := NewDirector([]Wave{{Spawns: []Spawn{{Enemy: "mouse", Count: 2}}}})
	if err != nil {
		t.Fatal(err)
	}

	events := run(t, d, 1, false)
	if len(events) != 2 || d.State() != StateDraining {
		t.Fatalf("events %d, state %s", len(events), d.State())
	}
	run(t, d, 10, false)
	if d.Complete() {
		t.Fatal("director cannot complete while enemies are live")
	}
	if err := d.Resolve(1); err != nil {
		t.Fatal(err)
	}
	if d.Complete() {
		t.Fatal("one enemy is still live")
	}
	if err := d.Resolve(1); err != nil {
		t.Fatal(err)
	}
	if !d.Complete() {
		t.Error("director should complete when the last enemy resolves")
	}
	if err := d.Resolve(1); err == nil {
		t.Error("resolving more than emitted must fail")
	}
}

func TestCountdown(t *testing.T) {
	d, _ := NewDirector(threeWaves())
	if d.Countdown() != 2*time.Second {
		t.Errorf("Countdown() = %s, expected 2s", d.Countdown())
	}
	if _, err := d.Tick(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if d.Countdown() != 1500*time.Millisecond {
		t.Errorf("Countdown() = %s, expected 1.5s", d.Countdown())
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from State
		trig Trigger
		to   State
		ok   bool
	}{
		{StateIdle, TriggerCountdownElapsed, StateSpawning, true},
		{StateSpawning, TriggerWaveEmitted, StateInterWaveDelay, true},
		{StateSpawning, TriggerFinalWaveEmitted, StateDraining, true},
		{StateInterWaveDelay, TriggerCountdownElapsed, StateSpawning, true},
		{StateDraining, TriggerAllResolved, StateComplete, true},
		{StateIdle, TriggerAllResolved, 0, false},
		{StateSpawning, TriggerAllResolved, 0, false},
		{StateComplete, TriggerCountdownElapsed, 0, false},
	}
	for _, tc := range tests {
		to, ok := Next(tc.from, tc.trig)
		if ok != tc.ok || (ok && to != tc.to) {
			t.Errorf("Next(%s, %s) = %s, %v", tc.from, tc.trig, to, ok)
		}
	}

	d, _ := NewDirector(threeWaves())
	if err := d.fire(TriggerAllResolved, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNewDirectorRejectsBadTables(t *testing.T) {
	if _, err := NewDirector(nil); err == nil {
		t.Error("empty table should be rejected")
	}
	if _, err := NewDirector([]Wave{{Countdown: time.Second}}); err == nil {
		t.Error("empty wave should be rejected")
	}
	if _, err := NewDirector([]Wave{{Countdown: -time.Second, Spawns: []Spawn{{Enemy: "m", Count: 1}}}}); err == nil {
		t.Error("negative countdown should be rejected")
	}
}
