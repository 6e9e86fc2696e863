// Package wave runs a level's wave table as an explicit state machine.
//
//	Idle --countdown--> Spawning(0) --emitted--> InterWaveDelay --countdown--> Spawning(1) ...
//	Spawning(last) --final--> Draining --resolved--> Complete
package wave

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidTransition is returned when a trigger is not allowed in the current state.
var ErrInvalidTransition = errors.New("wave: invalid transition")

// Spawn is one spawn instruction inside a wave.
type Spawn struct {
	Enemy    string        `yaml:"enemy"`
	Count    int           `yaml:"count"`
	Interval time.Duration `yaml:"interval"`
	Offset   time.Duration `yaml:"offset"` // from the start of the wave
}

// Wave is an ordered set of spawn instructions preceded by a countdown.
type Wave struct {
	Countdown time.Duration `yaml:"countdown"`
	Spawns    []Spawn       `yaml:"spawns"`
}

// Size returns the number of enemies the wave declares.
func (w Wave) Size() int {
	n := 0
	for _, s := range w.Spawns {
		n += s.Count
	}
	return n
}

// State is a director state.
type State int

const (
	StateIdle State = iota
	StateSpawning
	StateInterWaveDelay
	StateDraining
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpawning:
		return "spawning"
	case StateInterWaveDelay:
		return "inter_wave_delay"
	case StateDraining:
		return "draining"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Trigger is an input to the state machine.
type Trigger int

const (
	TriggerCountdownElapsed Trigger = iota // countdown before a wave ran out
	TriggerWaveEmitted                     // every spawn of a non-final wave emitted
	TriggerFinalWaveEmitted                // every spawn of the final wave emitted
	TriggerAllResolved                     // no emitted enemy is still alive
)

func (t Trigger) String() string {
	switch t {
	case TriggerCountdownElapsed:
		return "countdown_elapsed"
	case TriggerWaveEmitted:
		return "wave_emitted"
	case TriggerFinalWaveEmitted:
		return "final_wave_emitted"
	case TriggerAllResolved:
		return "all_resolved"
	default:
		return "unknown"
	}
}

// transitions is the complete table; anything missing is invalid.
var transitions = map[State]map[Trigger]State{
	StateIdle: {
		TriggerCountdownElapsed: StateSpawning,
	},
	StateSpawning: {
		TriggerWaveEmitted:      StateInterWaveDelay,
		TriggerFinalWaveEmitted: StateDraining,
	},
	StateInterWaveDelay: {
		TriggerCountdownElapsed: StateSpawning,
	},
	StateDraining: {
		TriggerAllResolved: StateComplete,
	},
}

// Next looks up the table.
func Next(from State, t Trigger) (State, bool) {
	to, ok := transitions[from][t]
	return to, ok
}

// SpawnEvent asks the simulation to create one enemy.
type SpawnEvent struct {
	Wave  int           // 0-based wave index
	Seq   int           // 0-based order within the wave
	Enemy string        // enemy kind
	At    time.Duration // scheduled time since the director started
}

// Transition records a state change for logging.
type Transition struct {
	From    State
	To      State
	Trigger Trigger
	Wave    int
	At      time.Duration
}

// Director emits spawn events on a fixed timeline.
type Director struct {
	waves []Wave

	state      State
	wave       int
	now        time.Duration
	stateStart time.Duration

	schedule []SpawnEvent
	cursor   int

	declared int
	emitted  int
	resolved int

	history []Transition
}

// NewDirector creates a director in the Idle state.
func NewDirector(waves []Wave) (*Director, error) {
	if len(waves) == 0 {
		return nil, errors.New("wave: no waves")
	}
	d := &Director{waves: waves}
	for i, w := range waves {
		if w.Countdown < 0 {
			return nil, fmt.Errorf("wave: wave %d has a negative countdown", i+1)
		}
		if w.Size() == 0 {
			return nil, fmt.Errorf("wave: wave %d spawns nothing", i+1)
		}
		for j, s := range w.Spawns {
			if s.Count < 0 || s.Interval < 0 || s.Offset < 0 {
				return nil, fmt.Errorf("wave: wave %d spawn %d has negative timing or count", i+1, j+1)
			}
		}
		d.declared += w.Size()
	}
	return d, nil
}

// State returns the current state.
func (d *Director) State() State { return d.state }

// Wave returns the 0-based index of the wave spawning or next to spawn.
func (d *Director) Wave() int { return d.wave }

// Waves returns the number of waves.
func (d *Director) Waves() int { return len(d.waves) }

// Declared returns the total number of enemies in the table.
func (d *Director) Declared() int { return d.declared }

// Emitted returns how many spawn events were emitted so far.
func (d *Director) Emitted() int { return d.emitted }

// Live returns emitted enemies not yet resolved.
func (d *Director) Live() int { return d.emitted - d.resolved }

// Elapsed returns the time since the director started.
func (d *Director) Elapsed() time.Duration { return d.now }

// History returns all transitions so far.
func (d *Director) History() []Transition {
	out := make([]Transition, len(d.history))
	copy(out, d.history)
	return out
}

// Complete reports whether the last wave's last enemy is resolved.
func (d *Director) Complete() bool { return d.state == StateComplete }

// Countdown returns the time left before the next wave starts, or 0 when no
// countdown is running.
func (d *Director) Countdown() time.Duration {
	if d.state != StateIdle && d.state != StateInterWaveDelay {
		return 0
	}
	left := d.waves[d.wave].Countdown - (d.now - d.stateStart)
	if left < 0 {
		return 0
	}
	return left
}

// Tick advances the timeline by dt and returns spawn events due in it,
// ordered by scheduled time.
func (d *Director) Tick(dt time.Duration) ([]SpawnEvent, error) {
	if dt < 0 {
		return nil, fmt.Errorf("wave: negative tick %s", dt)
	}
	d.now += dt

	var out []SpawnEvent
	// several transitions can happen in one tick when countdowns are zero
	for {
		switch d.state {
		case StateIdle, StateInterWaveDelay:
			if d.now-d.stateStart < d.waves[d.wave].Countdown {
				return out, nil
			}
			start := d.stateStart + d.waves[d.wave].Countdown
			if err := d.fire(TriggerCountdownElapsed, start); err != nil {
				return out, err
			}
			d.schedule = buildSchedule(d.wave, d.waves[d.wave], start)
			d.cursor = 0

		case StateSpawning:
			for d.cursor < len(d.schedule) && d.schedule[d.cursor].At <= d.now {
				out = append(out, d.schedule[d.cursor])
				d.cursor++
				d.emitted++
			}
			if d.cursor < len(d.schedule) {
				return out, nil
			}
			last := d.stateStart
			if n := len(d.schedule); n > 0 {
				last = d.schedule[n-1].At
			}
			if d.wave == len(d.waves)-1 {
				if err := d.fire(TriggerFinalWaveEmitted, last); err != nil {
					return out, err
				}
				continue
			}
			if err := d.fire(TriggerWaveEmitted, last); err != nil {
				return out, err
			}
			d.wave++

		case StateDraining:
			if d.Live() > 0 {
				return out, nil
			}
			if err := d.fire(TriggerAllResolved, d.now); err != nil {
				return out, err
			}

		default:
			return out, nil
		}
	}
}

// Resolve records that n emitted enemies left the live set.
// The director completes as soon as the final wave is drained.
func (d *Director) Resolve(n int) error {
	if n < 0 || d.resolved+n > d.emitted {
		return fmt.Errorf("wave: resolving %d with %d live", n, d.Live())
	}
	d.resolved += n
	if d.state == StateDraining && d.Live() == 0 {
		return d.fire(TriggerAllResolved, d.now)
	}
	return nil
}

func (d *Director) fire(t Trigger, at time.Duration) error {
	to, ok := Next(d.state, t)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, t, d.state)
	}
	d.history = append(d.history, Transition{From: d.state, To: to, Trigger: t, Wave: d.wave, At: at})
	d.state = to
	d.stateStart = at
	return nil
}

// buildSchedule expands a wave into spawn events sorted by time.
// Equal times keep table order.
func buildSchedule(index int, w Wave, start time.Duration) []SpawnEvent {
	events := make([]SpawnEvent, 0, w.Size())
	for _, s := range w.Spawns {
		for i := 0; i < s.Count; i++ {
			events = append(events, SpawnEvent{
				Wave:  index,
				Enemy: s.Enemy,
				At:    start + s.Offset + time.Duration(i)*s.Interval,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	for i := range events {
		events[i].Seq = i
	}
	return events
}
