package kitchen

import "github.com/vovakirdan/kitchen-defense/internal/coop"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Outcome  string
	Wave     int
	Enemies  int
	Towers   int
	Pool     string
	Cursor1  [2]int
	Cursor2  [2]int
	Paused   bool
	TooSmall bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.world == nil {
		return Snapshot{Outcome: "error"}
	}
	w := g.world
	c1 := w.Seat(coop.Player1).Cursor
	c2 := w.Seat(coop.Player2).Cursor
	return Snapshot{
		Tick:     w.Tick(),
		Score:    w.Score(),
		Outcome:  w.Outcome().String(),
		Wave:     w.Director().Wave(),
		Enemies:  len(w.Enemies()),
		Towers:   len(w.Towers()),
		Pool:     w.Pool().Snapshot().String(),
		Cursor1:  [2]int{c1.X, c1.Y},
		Cursor2:  [2]int{c2.X, c2.Y},
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
}
