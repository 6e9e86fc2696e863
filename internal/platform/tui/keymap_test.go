package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRouteSeparatesSeats(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{"P1 up", runeKey("w"), core.Player1, core.ActionUp},
		{"P1 left", runeKey("a"), core.Player1, core.ActionLeft},
		{"P1 prev recipe", runeKey("q"), core.Player1, core.ActionPrevRecipe},
		{"P1 next recipe", runeKey("e"), core.Player1, core.ActionNextRecipe},
		{"P1 craft", runeKey("f"), core.Player1, core.ActionCraft},
		{"P1 throw", runeKey(" "), core.Player1, core.ActionThrow},
		{"P2 up", tea.KeyMsg{Type: tea.KeyUp}, core.Player2, core.ActionUp},
		{"P2 right", tea.KeyMsg{Type: tea.KeyRight}, core.Player2, core.ActionRight},
		{"P2 prev recipe", runeKey(","), core.Player2, core.ActionPrevRecipe},
		{"P2 next recipe", runeKey("."), core.Player2, core.ActionNextRecipe},
		{"P2 craft", runeKey("/"), core.Player2, core.ActionCraft},
		{"P2 throw", tea.KeyMsg{Type: tea.KeyEnter}, core.Player2, core.ActionThrow},
		{"pause", runeKey("p"), core.Player1, core.ActionPause},
		{"restart", runeKey("r"), core.Player1, core.ActionRestart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewMultiInputFrame()
			if cmd := km.Route(tt.msg, &frame); cmd != CommandNone {
				t.Fatalf("Route() = command %d, expected none", cmd)
			}
			if !frame.Player(tt.player).Has(tt.action) {
				t.Errorf("%s should set %s for %s", tt.msg, tt.action, tt.player)
			}
			other := core.Player2
			if tt.player == core.Player2 {
				other = core.Player1
			}
			if !frame.Player(other).Empty() {
				t.Errorf("%s leaked into %s", tt.msg, other)
			}
		})
	}
}

func TestRouteCommands(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want Command
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, CommandQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, CommandBack},
		{tea.KeyMsg{Type: tea.KeyTab}, CommandPartner},
		{runeKey("?"), CommandHelp},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, CommandScreenshot},
		{runeKey("x"), CommandNone},
	}

	for _, tt := range tests {
		frame := core.NewMultiInputFrame()
		if got := km.Route(tt.msg, &frame); got != tt.want {
			t.Errorf("Route(%s) = %d, expected %d", tt.msg, got, tt.want)
		}
		if !frame.Player1().Empty() || !frame.Player2().Empty() {
			t.Errorf("command key %s should not produce seat input", tt.msg)
		}
	}
}

func TestKeyMapHelpCoversBothSeats(t *testing.T) {
	km := DefaultKeyMap()
	rows := km.FullHelp()
	if len(rows) != 3 {
		t.Fatalf("FullHelp() rows = %d, expected 3", len(rows))
	}
	for i, row := range rows[:2] {
		for _, b := range row {
			if b.Help().Key == "" {
				t.Errorf("seat row %d has a binding without help text: %v", i, b.Keys())
			}
		}
	}
}
