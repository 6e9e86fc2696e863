package core

import "testing"

func TestMultiInputFramePressAndClone(t *testing.T) {
	m := NewMultiInputFrame()
	m.Press(Player1, ActionThrow)
	m.Press(Player2, ActionCraft)

	if !m.Player1().Has(ActionThrow) || m.Player1().Has(ActionCraft) {
		t.Error("Player1 should only have Throw")
	}
	if !m.Player2().Has(ActionCraft) {
		t.Error("Player2 should have Craft")
	}
	if !m.Any(ActionCraft) || m.Any(ActionPause) {
		t.Error("Any reported the wrong actions")
	}

	clone := m.Clone()
	m.Clear()
	if !m.Player1().Empty() {
		t.Error("Clear should empty every seat")
	}
	if !clone.Player1().Has(ActionThrow) {
		t.Error("Clone should not share frames with the original")
	}
}

func TestPlayerIDString(t *testing.T) {
	if Player1.String() != "P1" || Player2.String() != "P2" || PlayerID(7).String() != "P?" {
		t.Error("unexpected seat names")
	}
}
