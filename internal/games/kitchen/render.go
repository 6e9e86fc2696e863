package kitchen

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/outcome"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
)

// Layout: three HUD rows, a gap, the map, a gap, then seats, feed and controls.
const (
	hudHeight   = 4
	cellWidth   = 2
	footerLines = 1 + 2 + feedLines + 1
	minWidth    = 60
)

func (g *Game) mapWidth() int  { return g.world.Grid().Width()*cellWidth + 1 }
func (g *Game) mapHeight() int { return g.world.Grid().Height() }

func (g *Game) fits() bool {
	if g.world == nil {
		return true
	}
	return g.screenW >= max(g.mapWidth(), minWidth) && g.screenH >= hudHeight+g.mapHeight()+footerLines
}

// Render draws the HUD, the kitchen map and the seat panels.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "LEVEL FAILED TO LOAD", core.ColorBrightRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "TERMINAL TOO SMALL", core.ColorBrightRed)
		need := fmt.Sprintf("need %dx%d", max(g.mapWidth(), minWidth), hudHeight+g.mapHeight()+footerLines)
		dst.DrawTextCentered(dst.Height()/2+1, need, core.ColorGray)
		return
	}

	g.renderHUD(dst)
	ox := (dst.Width() - g.mapWidth()) / 2
	g.renderMap(dst, ox, hudHeight)

	y := hudHeight + g.mapHeight() + 1
	g.renderSeat(dst, coop.Player1, y)
	g.renderSeat(dst, coop.Player2, y+1)
	for i, line := range g.feed {
		dst.DrawTextColored(2, y+2+i, line.text, line.color)
	}

	g.renderBanner(dst, ox)

	controls := "P1 wasd q/e f space  |  P2 arrows ,/. / enter  |  p pause  esc quit"
	if g.world.Over() {
		controls = "R: play again  |  ESC: back"
	}
	dst.DrawTextCentered(dst.Height()-1, controls, core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	dst.DrawTextColored(2, 0, strings.ToUpper(g.lvl.Name), core.ColorBrightWhite)
	score := fmt.Sprintf("SCORE %d", w.Score())
	dst.DrawTextColored(dst.Width()-len(score)-2, 0, score, core.ColorBrightYellow)

	d := w.Director()
	wave := fmt.Sprintf("Wave %d/%d", min(d.Wave()+1, d.Waves()), d.Waves())
	if left := d.Countdown(); left > 0 {
		wave += fmt.Sprintf("  next in %.1fs", left.Seconds())
	}
	lives := fmt.Sprintf("Lives %d/%d", w.LivesLeft(), g.lvl.PortalLives)
	enemies := fmt.Sprintf("Hungry %d", len(w.Enemies()))
	dst.DrawTextColored(2, 1, wave, core.ColorBrightBlue)
	dst.DrawTextColored(24, 1, lives, livesColor(w.LivesLeft(), g.lvl.PortalLives))
	dst.DrawTextColored(38, 1, enemies, core.ColorWhite)

	x := 2
	pool := w.Pool().Snapshot()
	for _, k := range w.Pool().Kinds() {
		item := fmt.Sprintf("%s %d", k, pool[k])
		dst.DrawTextColored(x, 2, item, core.ColorYellow)
		x += len(item) + 3
	}
}

func livesColor(left, total int) core.Color {
	switch {
	case left <= 1:
		return core.ColorBrightRed
	case left < total:
		return core.ColorOrange
	default:
		return core.ColorBrightGreen
	}
}

func (g *Game) renderMap(dst *core.Screen, ox, oy int) {
	w := g.world
	gr := w.Grid()
	at := func(p grid.Point) int { return ox + p.X*cellWidth + 1 }

	for y := 0; y < gr.Height(); y++ {
		for x := 0; x < gr.Width(); x++ {
			p := grid.P(x, y)
			t := gr.Terrain(p)
			if t == grid.TerrainAppliance {
				continue
			}
			c := terrainColor(t)
			if t == grid.TerrainWall {
				dst.SetColored(at(p)-1, oy+y, '#', c)
				if x == gr.Width()-1 {
					dst.SetColored(at(p)+1, oy+y, '#', c)
				}
			}
			dst.SetColored(at(p), oy+y, t.Symbol(), c)
		}
	}

	glyphs := make(map[grid.Point]rune, len(g.lvl.Appliances))
	for _, a := range g.lvl.Appliances {
		glyphs[a.Cell()] = a.Rune()
	}
	for _, s := range w.Sites() {
		dst.SetColored(at(s.Cell), oy+s.Cell.Y, glyphs[s.Cell], siteColor(s))
	}

	for _, t := range w.Towers() {
		c := core.ColorBrightGreen
		switch r := t.HealthRatio(); {
		case r <= 0.34:
			c = core.ColorBrightRed
		case r <= 0.67:
			c = core.ColorYellow
		}
		dst.SetColored(at(t.Cell), oy+t.Cell.Y, t.Stats.Rune(), c)
	}

	for _, e := range w.Enemies() {
		p := grid.CellOf(e.Pos)
		c := core.ColorWhite
		if e.Hunger.Aggressive() {
			c = core.ColorRed
		}
		dst.SetColored(at(p), oy+p.Y, e.Stats.Rune(), c)
	}

	for _, pr := range w.Projectiles() {
		if !pr.Active() {
			continue
		}
		p := grid.CellOf(pr.Pos)
		dst.SetColored(at(p), oy+p.Y, '*', core.ColorBrightYellow)
	}

	for _, id := range core.Seats {
		s := w.Seat(id)
		c := core.SeatColor(id)
		dst.SetColored(at(s.Cursor)-1, oy+s.Cursor.Y, '[', c)
		dst.SetColored(at(s.Cursor)+1, oy+s.Cursor.Y, ']', c)
	}
}

func terrainColor(t grid.Terrain) core.Color {
	switch t {
	case grid.TerrainWall:
		return core.ColorGray
	case grid.TerrainRoad:
		return core.ColorWhite
	case grid.TerrainSpawn:
		return core.ColorBrightRed
	case grid.TerrainPortal:
		return core.ColorBrightBlue
	default:
		return core.ColorGray
	}
}

func siteColor(s *recipe.Site) core.Color {
	if !s.Busy() {
		return core.ColorCyan
	}
	if s.Progress() >= 0.5 {
		return core.ColorBrightYellow
	}
	return core.ColorOrange
}

func (g *Game) renderSeat(dst *core.Screen, id coop.PlayerID, y int) {
	s := g.world.Seat(id)
	c := core.SeatColor(id)

	label := id.String()
	if g.match.Controller(id) == coop.CPU {
		label += " (CPU)"
	}
	line := fmt.Sprintf("%-9s %s", label, g.describe(s.Recipe))
	if !s.Ready() {
		line += "  reloading"
	}
	dst.DrawTextColored(2, y, line, c)
	if s.Notice != "" {
		dst.DrawTextColored(len(line)+4, y, s.Notice, core.ColorOrange)
	}
}

// describe formats a recipe as "cannon: corn:5 @rotisserie 1.5s".
func (g *Game) describe(id string) string {
	r, ok := g.world.Book().Get(id)
	if !ok {
		return "no recipe"
	}
	out := r.Output.ID
	if r.IsConversion() && r.Output.Quantity > 1 {
		out = fmt.Sprintf("%dx %s", r.Output.Quantity, out)
	}
	text := fmt.Sprintf("%s <- %s @%s", out, r.Cost, r.Appliance)
	if r.Cooking > 0 {
		text += fmt.Sprintf(" %.1fs", r.Cooking.Seconds())
	}
	if !g.world.Pool().Covers(r.Cost) {
		text += " (short)"
	}
	return text
}

func (g *Game) renderBanner(dst *core.Screen, ox int) {
	var (
		msg string
		c   core.Color
	)
	switch {
	case g.err != nil:
		msg, c = "SIMULATION ERROR", core.ColorBrightRed
	case g.world.Outcome() == outcome.StateWon:
		msg, c = fmt.Sprintf(" THE KITCHEN HOLDS!  SCORE %d ", g.world.Score()), core.ColorBrightYellow
	case g.world.Outcome() == outcome.StateLost:
		msg, c = fmt.Sprintf(" OVERRUN  SCORE %d ", g.world.Score()), core.ColorBrightRed
	case g.paused:
		msg, c = " PAUSED ", core.ColorBrightWhite
	default:
		return
	}
	y := hudHeight + g.mapHeight()/2
	box := core.NewRect(ox+(g.mapWidth()-len(msg))/2-1, y-1, len(msg)+2, 3)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box, c)
	dst.DrawTextColored(box.X+1, y, msg, c)
}
