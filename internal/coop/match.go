// Package coop describes who sits at the shared keyboard: the run's match id,
// how it is hosted, and which seats are driven by a human or the autoplayer.
package coop

import (
	"sort"

	"github.com/google/uuid"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID identifies one terminal, local or over SSH.
type SessionID string

// MatchID uniquely identifies one run of a level.
type MatchID string

// Mode defines where a match is played.
type Mode int

const (
	// ModeLocal is two players on one local terminal.
	ModeLocal Mode = iota

	// ModeSSH is two players sharing one SSH session's keyboard.
	ModeSSH

	// ModeSimulate is a headless run driven entirely by the autoplayer.
	ModeSimulate
)

// String returns the mode name stored with results.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeSSH:
		return "ssh"
	case ModeSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}

// Controller is what drives a seat.
type Controller int

const (
	Human Controller = iota
	CPU
)

func (c Controller) String() string {
	if c == CPU {
		return "CPU"
	}
	return "Human"
}

// Match is one run of a level by one session.
type Match struct {
	id      MatchID
	mode    Mode
	level   string
	session SessionID
	seats   map[PlayerID]Controller
}

// NewMatch creates a match with every seat human, except in ModeSimulate
// where every seat is CPU.
func NewMatch(mode Mode, levelID string, session SessionID) *Match {
	m := &Match{
		id:      MatchID(uuid.NewString()),
		mode:    mode,
		level:   levelID,
		session: session,
		seats:   make(map[PlayerID]Controller, len(core.Seats)),
	}
	for _, id := range core.Seats {
		if mode == ModeSimulate {
			m.seats[id] = CPU
		} else {
			m.seats[id] = Human
		}
	}
	return m
}

// NewSessionID returns a fresh session id with a readable prefix.
func NewSessionID(prefix string) SessionID {
	if prefix == "" {
		prefix = "local"
	}
	return SessionID(prefix + "-" + uuid.NewString()[:8])
}

// ID returns the match identifier.
func (m *Match) ID() MatchID { return m.id }

// Mode returns how this match is hosted.
func (m *Match) Mode() Mode { return m.mode }

// Level returns the level id.
func (m *Match) Level() string { return m.level }

// Session returns the owning session.
func (m *Match) Session() SessionID { return m.session }

// Controller returns who drives a seat.
func (m *Match) Controller(id PlayerID) Controller { return m.seats[id] }

// SetController hands a seat to a human or the CPU.
func (m *Match) SetController(id PlayerID, c Controller) {
	if _, ok := m.seats[id]; ok {
		m.seats[id] = c
	}
}

// Toggle flips a seat between human and CPU and returns the new controller.
func (m *Match) Toggle(id PlayerID) Controller {
	c := Human
	if m.seats[id] == Human {
		c = CPU
	}
	m.SetController(id, c)
	return m.seats[id]
}

// CPUSeats returns the seats the autoplayer drives, in input order.
func (m *Match) CPUSeats() []PlayerID {
	var out []PlayerID
	for id, c := range m.seats {
		if c == CPU {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge overlays CPU input onto human input: CPU seats take their frame from
// cpu, human seats keep theirs. Neither argument is modified.
func (m *Match) Merge(human, cpu core.MultiInputFrame) core.MultiInputFrame {
	out := core.NewMultiInputFrame()
	for _, id := range core.Seats {
		if m.seats[id] == CPU {
			out.SetPlayer(id, cpu.Player(id).Clone())
		} else {
			out.SetPlayer(id, human.Player(id).Clone())
		}
	}
	return out
}
