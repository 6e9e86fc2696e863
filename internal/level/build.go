package level

import (
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
	"github.com/vovakirdan/kitchen-defense/internal/wave"
)

// Parts are the fresh runtime pieces of one level run.
type Parts struct {
	Grid     *grid.Grid
	Pool     *ledger.Pool
	Book     *recipe.Book
	Sites    []*recipe.Site
	Director *wave.Director
}

// Build constructs the runtime pieces. Every call returns independent state.
// Errors are ValidationErrors.
func (l *Level) Build() (*Parts, error) {
	g, err := l.buildGrid()
	if err != nil {
		return nil, err
	}

	sites := make([]*recipe.Site, len(l.Appliances))
	for i, a := range l.Appliances {
		sites[i] = recipe.NewSite(i+1, a.Kind, a.Cell())
	}

	pool, err := ledger.New(l.Catalog(), l.StartCounts())
	if err != nil {
		return nil, invalid(CodeBadStart, "%v", err)
	}

	list, err := l.RecipeList()
	if err != nil {
		return nil, invalid(CodeBadRecipe, "%v", err)
	}
	book, err := recipe.NewBook(list, pool.Kinds(), l.ApplianceKinds(), l.TowerKinds())
	if err != nil {
		return nil, invalid(CodeBadRecipe, "%v", err)
	}

	director, err := wave.NewDirector(l.Waves)
	if err != nil {
		return nil, invalid(CodeBadWave, "%v", err)
	}

	return &Parts{
		Grid:     g,
		Pool:     pool,
		Book:     book,
		Sites:    sites,
		Director: director,
	}, nil
}

func (l *Level) buildGrid() (*grid.Grid, error) {
	spawns, portals := 0, 0
	for _, row := range l.Layout {
		for _, r := range row {
			switch r {
			case 'S':
				spawns++
			case 'P':
				portals++
			}
		}
	}
	if len(l.Layout) == 0 {
		return nil, invalid(CodeBadLayout, "layout is empty")
	}
	if spawns == 0 {
		return nil, invalid(CodeNoSpawn, "layout has no spawn cell (S)")
	}
	if portals != 1 {
		return nil, invalid(CodeNoPortal, "layout needs exactly one portal (P), found %d", portals)
	}

	g, err := grid.Parse(l.Layout)
	if err != nil {
		return nil, invalid(CodeBadLayout, "%v", err)
	}
	for _, a := range l.Appliances {
		if a.Kind == "" {
			return nil, invalid(CodeUnknownAppliance, "appliance at %s has no kind", a.Cell())
		}
		if err := g.PlaceAppliance(a.Cell()); err != nil {
			return nil, invalid(CodeUnknownAppliance, "%s: %v", a.Kind, err)
		}
	}
	for _, s := range g.Spawns() {
		if g.FindPath(s, g.Portal()) == nil {
			return nil, invalid(CodeNoPath, "spawn %s cannot reach the portal", s)
		}
	}
	return g, nil
}
