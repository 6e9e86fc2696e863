// Package grid holds the level map: terrain, tower occupancy and routing.
package grid

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/kitchen-defense/internal/core"
)

var (
	ErrOutOfBounds  = errors.New("grid: cell out of bounds")
	ErrNotBuildable = errors.New("grid: cell is not buildable")
	ErrOccupied     = errors.New("grid: cell is occupied")
)

// Point is an integer cell coordinate.
type Point struct {
	X, Y int
}

// P is shorthand for Point{X: x, Y: y}.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Center returns the continuous position of the cell center.
func (p Point) Center() core.Vec {
	return core.Vec{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// Manhattan returns the taxicab distance between two cells.
func (p Point) Manhattan(o Point) int {
	return core.Abs(p.X-o.X) + core.Abs(p.Y-o.Y)
}

// Adjacent reports whether o touches p, diagonals included.
func (p Point) Adjacent(o Point) bool {
	dx, dy := core.Abs(p.X-o.X), core.Abs(p.Y-o.Y)
	return dx <= 1 && dy <= 1 && (dx+dy) > 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// CellOf returns the cell containing a continuous position.
func CellOf(v core.Vec) Point {
	x, y := int(v.X), int(v.Y)
	if v.X < 0 {
		x--
	}
	if v.Y < 0 {
		y--
	}
	return Point{X: x, Y: y}
}

// Terrain is the static kind of a cell.
type Terrain uint8

const (
	TerrainWall      Terrain = iota // impassable, unbuildable
	TerrainFloor                    // walkable and buildable
	TerrainRoad                     // walkable only
	TerrainSpawn                    // enemy entry, walkable
	TerrainPortal                   // enemy goal, walkable
	TerrainAppliance                // kitchen appliance, impassable
)

// Symbol returns the layout character for a terrain.
func (t Terrain) Symbol() rune {
	switch t {
	case TerrainFloor:
		return '.'
	case TerrainRoad:
		return '='
	case TerrainSpawn:
		return 'S'
	case TerrainPortal:
		return 'P'
	case TerrainAppliance:
		return 'A'
	default:
		return '#'
	}
}

// Walkable reports whether enemies can stand on the terrain.
func (t Terrain) Walkable() bool {
	switch t {
	case TerrainFloor, TerrainRoad, TerrainSpawn, TerrainPortal:
		return true
	}
	return false
}

// Grid is the level map. Tower occupancy is stored per cell as a tower id;
// zero means free.
type Grid struct {
	width    int
	height   int
	terrain  []Terrain
	occupant []int
	spawns   []Point
	portal   Point
}

// Parse builds a grid from layout rows. All rows must have the same width,
// and the layout needs at least one spawn and exactly one portal.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("grid: empty layout")
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, errors.New("grid: empty layout row")
	}

	g := &Grid{
		width:    width,
		height:   len(rows),
		terrain:  make([]Terrain, width*len(rows)),
		occupant: make([]int, width*len(rows)),
	}
	portals := 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("grid: row %d has width %d, expected %d", y, len(runes), width)
		}
		for x, r := range runes {
			var t Terrain
			switch r {
			case '#':
				t = TerrainWall
			case '.':
				t = TerrainFloor
			case '=':
				t = TerrainRoad
			case 'S':
				t = TerrainSpawn
				g.spawns = append(g.spawns, P(x, y))
			case 'P':
				t = TerrainPortal
				g.portal = P(x, y)
				portals++
			default:
				return nil, fmt.Errorf("grid: unknown symbol %q at %s", r, P(x, y))
			}
			g.terrain[g.index(P(x, y))] = t
		}
	}
	if len(g.spawns) == 0 {
		return nil, errors.New("grid: layout has no spawn")
	}
	if portals != 1 {
		return nil, fmt.Errorf("grid: layout has %d portals, expected 1", portals)
	}
	return g, nil
}

func (g *Grid) index(p Point) int {
	return p.Y*g.width + p.X
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Spawns returns the spawn cells in reading order.
func (g *Grid) Spawns() []Point {
	out := make([]Point, len(g.spawns))
	copy(out, g.spawns)
	return out
}

// Portal returns the portal cell.
func (g *Grid) Portal() Point { return g.portal }

// In reports whether p lies inside the grid.
func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Terrain returns the terrain of p; out-of-bounds cells read as walls.
func (g *Grid) Terrain(p Point) Terrain {
	if !g.In(p) {
		return TerrainWall
	}
	return g.terrain[g.index(p)]
}

// PlaceAppliance turns a floor or wall cell into an appliance cell.
func (g *Grid) PlaceAppliance(p Point) error {
	if !g.In(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	switch g.Terrain(p) {
	case TerrainFloor, TerrainWall:
	default:
		return fmt.Errorf("grid: appliance at %s would cover a %c cell", p, g.Terrain(p).Symbol())
	}
	g.terrain[g.index(p)] = TerrainAppliance
	return nil
}

// Occupant returns the tower id on p, or 0.
func (g *Grid) Occupant(p Point) int {
	if !g.In(p) {
		return 0
	}
	return g.occupant[g.index(p)]
}

// CanBuild checks whether a tower may be placed on p.
// The returned error is one of ErrOutOfBounds, ErrNotBuildable or ErrOccupied.
func (g *Grid) CanBuild(p Point) error {
	if !g.In(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if g.Terrain(p) != TerrainFloor {
		return fmt.Errorf("%w: %s", ErrNotBuildable, p)
	}
	if g.Occupant(p) != 0 {
		return fmt.Errorf("%w: %s", ErrOccupied, p)
	}
	return nil
}

// Occupy records tower id on p.
func (g *Grid) Occupy(p Point, id int) error {
	if err := g.CanBuild(p); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("grid: invalid tower id %d", id)
	}
	g.occupant[g.index(p)] = id
	return nil
}

// Vacate frees p.
func (g *Grid) Vacate(p Point) {
	if g.In(p) {
		g.occupant[g.index(p)] = 0
	}
}

// BuildCells returns every free buildable cell in reading order.
func (g *Grid) BuildCells() []Point {
	var out []Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.CanBuild(P(x, y)) == nil {
				out = append(out, P(x, y))
			}
		}
	}
	return out
}
