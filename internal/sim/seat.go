package sim

import (
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
)

// Seat is one local player: a map cursor and a selected recipe.
type Seat struct {
	ID     core.PlayerID
	Cursor grid.Point
	Recipe string
	// Notice is the last rejection shown to this player.
	Notice string

	cooldown time.Duration
}

// Ready reports whether the seat can throw.
func (s *Seat) Ready() bool {
	return s.cooldown <= 0
}

func (s *Seat) moveCursor(dx, dy int, g *grid.Grid) {
	s.Cursor.X = core.Clamp(s.Cursor.X+dx, 0, g.Width()-1)
	s.Cursor.Y = core.Clamp(s.Cursor.Y+dy, 0, g.Height()-1)
}
