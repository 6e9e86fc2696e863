package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

// SeatKeys are the bindings of one player at the shared keyboard.
type SeatKeys struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PrevRecipe key.Binding
	NextRecipe key.Binding
	Craft      key.Binding
	Throw      key.Binding
}

type seatBinding struct {
	binding key.Binding
	action  core.Action
}

func (k SeatKeys) actions() []seatBinding {
	return []seatBinding{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.PrevRecipe, core.ActionPrevRecipe},
		{k.NextRecipe, core.ActionNextRecipe},
		{k.Craft, core.ActionCraft},
		{k.Throw, core.ActionThrow},
	}
}

func (k SeatKeys) row() []key.Binding {
	return []key.Binding{k.Up, k.PrevRecipe, k.Craft, k.Throw}
}

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	P1 SeatKeys
	P2 SeatKeys

	Pause      key.Binding
	Restart    key.Binding
	Partner    key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Partner, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.P1.row(),
		k.P2.row(),
		{k.Pause, k.Restart, k.Partner, k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the couch layout: player 1 on the left of the
// keyboard, player 2 on the arrows.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1: SeatKeys{
			Up:         key.NewBinding(key.WithKeys("w"), key.WithHelp("wasd", "P1 move")),
			Down:       key.NewBinding(key.WithKeys("s")),
			Left:       key.NewBinding(key.WithKeys("a")),
			Right:      key.NewBinding(key.WithKeys("d")),
			PrevRecipe: key.NewBinding(key.WithKeys("q"), key.WithHelp("q/e", "recipe")),
			NextRecipe: key.NewBinding(key.WithKeys("e")),
			Craft:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cook")),
			Throw:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "throw")),
		},
		P2: SeatKeys{
			Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("arrows", "P2 move")),
			Down:       key.NewBinding(key.WithKeys("down")),
			Left:       key.NewBinding(key.WithKeys("left")),
			Right:      key.NewBinding(key.WithKeys("right")),
			PrevRecipe: key.NewBinding(key.WithKeys(","), key.WithHelp(",/.", "recipe")),
			NextRecipe: key.NewBinding(key.WithKeys(".")),
			Craft:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "cook")),
			Throw:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "throw")),
		},
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Partner: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "CPU partner"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Command is a platform request that is not a seat action.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandBack
	CommandPartner
	CommandHelp
	CommandScreenshot
)

// Route translates a key to seat input or a platform command.
// Seat keys and pause/restart are written into frame; pause and restart
// belong to player 1 but the game accepts them from either seat.
func (k KeyMap) Route(msg tea.KeyMsg, frame *core.MultiInputFrame) Command {
	switch {
	case key.Matches(msg, k.Quit):
		return CommandQuit
	case key.Matches(msg, k.Back):
		return CommandBack
	case key.Matches(msg, k.Partner):
		return CommandPartner
	case key.Matches(msg, k.Help):
		return CommandHelp
	case key.Matches(msg, k.Screenshot):
		return CommandScreenshot
	case key.Matches(msg, k.Pause):
		frame.Press(core.Player1, core.ActionPause)
		return CommandNone
	case key.Matches(msg, k.Restart):
		frame.Press(core.Player1, core.ActionRestart)
		return CommandNone
	}

	for id, keys := range map[core.PlayerID]SeatKeys{core.Player1: k.P1, core.Player2: k.P2} {
		for _, b := range keys.actions() {
			if key.Matches(msg, b.binding) {
				frame.Press(id, b.action)
				return CommandNone
			}
		}
	}
	return CommandNone
}

// MenuKeyMap defines the key bindings of the level picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Partner key.Binding
	Scores  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Partner, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "cook!"),
		),
		Partner: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "CPU partner"),
		),
		Scores: key.NewBinding(
			key.WithKeys("ctrl+r", "h"),
			key.WithHelp("h", "results"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
