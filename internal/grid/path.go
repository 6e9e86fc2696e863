package grid

// Path is a sequence of cells from a start cell to a goal cell, both included.
type Path []Point

// Len returns the number of steps, which is one less than the number of cells.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Goal returns the last cell, or false for an empty path.
func (p Path) Goal() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1], true
}

// neighbor order is fixed so routes are deterministic
var steps = []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// passFunc decides whether a cell can be entered.
type passFunc func(Point) bool

// FindPath returns the shortest 4-connected path from start to goal,
// avoiding tower cells. Returns nil when the goal cannot be reached.
func (g *Grid) FindPath(start, goal Point) Path {
	return g.bfs(start, goal, func(p Point) bool {
		return p == goal || (g.Terrain(p).Walkable() && g.Occupant(p) == 0)
	})
}

// FindPathThroughTowers returns the shortest path that treats tower cells as
// walkable. Enemies use it when towers wall off the portal.
func (g *Grid) FindPathThroughTowers(start, goal Point) Path {
	return g.bfs(start, goal, func(p Point) bool {
		return p == goal || g.Terrain(p).Walkable()
	})
}

// Route returns the path an enemy standing on start takes to the portal.
// The bool is false when the route has to go through towers.
func (g *Grid) Route(start Point) (Path, bool) {
	if path := g.FindPath(start, g.portal); path != nil {
		return path, true
	}
	return g.FindPathThroughTowers(start, g.portal), false
}

func (g *Grid) bfs(start, goal Point, pass passFunc) Path {
	if !g.In(start) || !g.In(goal) {
		return nil
	}
	if start == goal {
		return Path{start}
	}

	prev := make(map[Point]Point, g.width*g.height)
	prev[start] = start
	queue := []Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range steps {
			next := cur.Add(d)
			if !g.In(next) {
				continue
			}
			if _, seen := prev[next]; seen {
				continue
			}
			if !pass(next) {
				continue
			}
			prev[next] = cur
			if next == goal {
				return walkBack(prev, start, goal)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func walkBack(prev map[Point]Point, start, goal Point) Path {
	var rev Path
	for p := goal; ; p = prev[p] {
		rev = append(rev, p)
		if p == start {
			break
		}
	}
	path := make(Path, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
