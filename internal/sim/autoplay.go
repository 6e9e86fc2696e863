package sim

import (
	"github.com/vovakirdan/kitchen-defense/internal/agent"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
)

// Autoplayer drives both seats with a fixed policy:
// player 1 cooks the cheapest affordable tower next to the enemy route,
// player 2 throws at the enemy closest to the portal.
type Autoplayer struct {
	w    *World
	plan *craftPlan
}

type craftPlan struct {
	recipe string
	cell   grid.Point
	tower  bool
}

// NewAutoplayer creates a policy for a world.
func NewAutoplayer(w *World) *Autoplayer {
	return &Autoplayer{w: w}
}

// Next returns the input for the coming tick.
func (a *Autoplayer) Next() core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	in.SetPlayer(core.Player1, a.builder())
	in.SetPlayer(core.Player2, a.feeder())
	return in
}

func (a *Autoplayer) builder() core.InputFrame {
	f := core.NewInputFrame()
	seat := a.w.Seat(core.Player1)

	if a.plan == nil || !a.stillValid(a.plan) {
		a.plan = a.choose()
	}
	if a.plan == nil {
		return f
	}

	if seat.Recipe != a.plan.recipe {
		f.Set(core.ActionNextRecipe)
		return f
	}
	if a.plan.tower && seat.Cursor != a.plan.cell {
		stepToward(&f, seat.Cursor, a.plan.cell)
		return f
	}
	f.Set(core.ActionCraft)
	a.plan = nil
	return f
}

func (a *Autoplayer) stillValid(p *craftPlan) bool {
	r, ok := a.w.Book().Get(p.recipe)
	if !ok || !a.w.Pool().Covers(r.Cost) || !a.freeSite(r.Appliance) {
		return false
	}
	return !p.tower || a.w.Grid().CanBuild(p.cell) == nil
}

func (a *Autoplayer) freeSite(kind string) bool {
	for _, s := range a.w.Sites() {
		if s.Kind == kind && !s.Busy() {
			return true
		}
	}
	return false
}

// choose picks the next craft, or nil to wait.
func (a *Autoplayer) choose() *craftPlan {
	for _, r := range a.w.Book().Cheapest(a.w.Pool()) {
		if !a.freeSite(r.Appliance) {
			continue
		}
		if cell, ok := a.buildCell(); ok {
			return &craftPlan{recipe: r.ID, cell: cell, tower: true}
		}
		return nil
	}

	// Cook an ingredient only when some tower needs it.
	book := a.w.Book()
	for _, id := range book.IDs() {
		r, _ := book.Get(id)
		if !r.IsConversion() || !a.w.Pool().Covers(r.Cost) || !a.freeSite(r.Appliance) {
			continue
		}
		if a.feedsTower(r) {
			return &craftPlan{recipe: r.ID}
		}
	}
	return nil
}

func (a *Autoplayer) feedsTower(conv recipe.Recipe) bool {
	book := a.w.Book()
	for _, id := range book.IDs() {
		r, _ := book.Get(id)
		if r.IsConversion() {
			continue
		}
		for k := range r.Cost {
			if string(k) == conv.Output.ID {
				return true
			}
		}
	}
	return false
}

// buildCell returns the free cell off the route that is closest to it,
// preferring spots near the portal.
func (a *Autoplayer) buildCell() (grid.Point, bool) {
	g := a.w.Grid()
	onRoute := make(map[grid.Point]int) // cell -> steps left to the portal
	for _, s := range g.Spawns() {
		path, _ := g.Route(s)
		for i, p := range path {
			left := len(path) - 1 - i
			if prev, ok := onRoute[p]; !ok || left < prev {
				onRoute[p] = left
			}
		}
	}

	var best grid.Point
	bestDist, bestLeft := -1, 0
	for _, c := range g.BuildCells() {
		if _, ok := onRoute[c]; ok {
			continue
		}
		dist, left := -1, 0
		for p, l := range onRoute {
			d := c.Manhattan(p)
			if dist < 0 || d < dist || (d == dist && l < left) {
				dist, left = d, l
			}
		}
		if dist < 0 {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && left < bestLeft) {
			best, bestDist, bestLeft = c, dist, left
		}
	}
	return best, bestDist >= 0
}

func (a *Autoplayer) feeder() core.InputFrame {
	f := core.NewInputFrame()
	seat := a.w.Seat(core.Player2)

	target := a.w.leadEnemy()
	if target == nil {
		return f
	}
	cell := target.Cell()
	if seat.Cursor.Center().Dist(target.Pos) <= a.w.cfg.Throw.Range && seat.Ready() {
		f.Set(core.ActionThrow)
		return f
	}
	stepToward(&f, seat.Cursor, cell)
	return f
}

// leadEnemy returns the live enemy with the shortest way left.
func (w *World) leadEnemy() *agent.Enemy {
	var best *agent.Enemy
	for _, e := range w.enemies {
		if !e.Alive() {
			continue
		}
		if best == nil || e.Remaining() < best.Remaining() {
			best = e
		}
	}
	return best
}

func stepToward(f *core.InputFrame, from, to grid.Point) {
	switch {
	case to.X > from.X:
		f.Set(core.ActionRight)
	case to.X < from.X:
		f.Set(core.ActionLeft)
	}
	switch {
	case to.Y > from.Y:
		f.Set(core.ActionDown)
	case to.Y < from.Y:
		f.Set(core.ActionUp)
	}
}
