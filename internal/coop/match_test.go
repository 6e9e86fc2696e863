package coop

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

func TestNewMatchDefaults(t *testing.T) {
	m := NewMatch(ModeLocal, "corn-road", "local-1")

	if _, err := uuid.Parse(string(m.ID())); err != nil {
		t.Errorf("match id %q should be a uuid", m.ID())
	}
	if m.Level() != "corn-road" || m.Session() != "local-1" {
		t.Errorf("match metadata = %s/%s", m.Level(), m.Session())
	}
	for _, id := range core.Seats {
		if m.Controller(id) != Human {
			t.Errorf("%s should start human", id)
		}
	}
	if len(m.CPUSeats()) != 0 {
		t.Error("local match should have no CPU seats")
	}

	sim := NewMatch(ModeSimulate, "corn-road", "")
	if got := sim.CPUSeats(); len(got) != 2 || got[0] != Player1 {
		t.Errorf("simulate match CPU seats = %v", got)
	}
}

func TestToggleAndMerge(t *testing.T) {
	m := NewMatch(ModeLocal, "corn-road", "local-1")
	if m.Toggle(Player2) != CPU {
		t.Fatal("Toggle should hand P2 to the CPU")
	}

	human := core.NewMultiInputFrame()
	human.Press(Player1, core.ActionThrow)
	human.Press(Player2, core.ActionCraft)
	cpu := core.NewMultiInputFrame()
	cpu.Press(Player1, core.ActionCraft)
	cpu.Press(Player2, core.ActionLeft)

	out := m.Merge(human, cpu)
	if !out.Player1().Has(core.ActionThrow) || out.Player1().Has(core.ActionCraft) {
		t.Error("human seat should keep its own input")
	}
	if !out.Player2().Has(core.ActionLeft) || out.Player2().Has(core.ActionCraft) {
		t.Error("CPU seat should take the autoplayer input")
	}

	// inputs must not be aliased
	out.Press(Player1, core.ActionUp)
	if human.Player1().Has(core.ActionUp) {
		t.Error("Merge should copy frames")
	}

	if m.Toggle(Player2) != Human {
		t.Error("second Toggle should hand P2 back")
	}
}

func TestModeStrings(t *testing.T) {
	tests := map[Mode]string{
		ModeLocal:    "local",
		ModeSSH:      "ssh",
		ModeSimulate: "simulate",
		Mode(99):     "unknown",
	}
	for mode, want := range tests {
		if mode.String() != want {
			t.Errorf("Mode(%d).String() = %q, expected %q", mode, mode.String(), want)
		}
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID("alice")
	if !strings.HasPrefix(string(id), "alice-") || len(id) != len("alice-")+8 {
		t.Errorf("NewSessionID = %q", id)
	}
	if !strings.HasPrefix(string(NewSessionID("")), "local-") {
		t.Error("empty prefix should default to local")
	}
}
