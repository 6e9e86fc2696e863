package recipe

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/tower"
)

// Reason is a machine-readable rejection code.
type Reason string

const (
	ReasonUnknownRecipe         Reason = "unknown_recipe"
	ReasonApplianceMissing      Reason = "appliance_missing"
	ReasonApplianceBusy         Reason = "appliance_busy"
	ReasonCellInvalid           Reason = "cell_invalid"
	ReasonCellOccupied          Reason = "cell_occupied"
	ReasonInsufficientResources Reason = "insufficient_resources"
)

// Rejection is returned by TryCraft when nothing was crafted.
// A rejection never changes the pool, the grid or any appliance.
type Rejection struct {
	Reason  Reason
	Recipe  string
	Message string
	Missing ledger.Counts // set for ReasonInsufficientResources
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("craft %s rejected [%s]: %s", r.Recipe, r.Reason, r.Message)
}

// ReasonOf extracts the rejection reason from an error, or "".
func ReasonOf(err error) Reason {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

// Request asks for one recipe to be cooked.
// Cell is where the tower goes; it is ignored for conversion recipes.
type Request struct {
	Recipe string
	Cell   grid.Point
	By     core.PlayerID
}

// Result describes a successful craft.
type Result struct {
	Recipe   Recipe
	Site     *Site
	Tower    *tower.Tower  // nil for conversions
	Credited ledger.Counts // conversions that finished instantly
}

// Completion is a conversion job that finished cooking.
type Completion struct {
	Site     *Site
	Job      Job
	Credited ledger.Counts
	Overflow ledger.Counts
}

// Crafter applies recipes to the shared pool. It is driven from the
// simulation goroutine; the pool it spends from has its own lock.
type Crafter struct {
	book   *Book
	pool   *ledger.Pool
	grid   *grid.Grid
	towers map[string]tower.Stats
	sites  []*Site
	nextID int
	taken  func(grid.Point) bool
}

// NewCrafter wires a rule set to a pool, a grid and the appliance sites.
func NewCrafter(book *Book, pool *ledger.Pool, g *grid.Grid, towers map[string]tower.Stats, sites []*Site) *Crafter {
	sorted := make([]*Site, len(sites))
	copy(sorted, sites)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Crafter{
		book:   book,
		pool:   pool,
		grid:   g,
		towers: towers,
		sites:  sorted,
	}
}

// SetOccupancy installs a check for cells held by something other than a
// tower, such as a live enemy. Tower recipes are rejected on those cells.
func (c *Crafter) SetOccupancy(taken func(grid.Point) bool) { c.taken = taken }

// Book returns the recipe set.
func (c *Crafter) Book() *Book { return c.book }

// Sites returns the appliance sites ordered by id.
func (c *Crafter) Sites() []*Site { return c.sites }

// TryCraft validates and performs one craft. On success the cost has been
// taken from the pool and, for tower recipes, the tower occupies its cell.
// On failure the returned error is a *Rejection and nothing changed.
func (c *Crafter) TryCraft(req Request) (Result, error) {
	r, ok := c.book.Get(req.Recipe)
	if !ok {
		return Result{}, &Rejection{Reason: ReasonUnknownRecipe, Recipe: req.Recipe, Message: "no such recipe"}
	}

	site, reason := c.pickSite(r.Appliance, req.Cell)
	if site == nil {
		msg := fmt.Sprintf("no %s in this kitchen", r.Appliance)
		if reason == ReasonApplianceBusy {
			msg = fmt.Sprintf("every %s is cooking", r.Appliance)
		}
		return Result{}, &Rejection{Reason: reason, Recipe: r.ID, Message: msg}
	}

	var id int
	if r.Output.Type == OutputTower {
		if c.taken != nil && c.taken(req.Cell) {
			return Result{}, &Rejection{Reason: ReasonCellOccupied, Recipe: r.ID, Message: fmt.Sprintf("%s is not clear", req.Cell)}
		}
		id = c.nextID + 1
		if err := c.grid.Occupy(req.Cell, id); err != nil {
			reason := ReasonCellInvalid
			if errors.Is(err, grid.ErrOccupied) {
				reason = ReasonCellOccupied
			}
			return Result{}, &Rejection{Reason: reason, Recipe: r.ID, Message: err.Error()}
		}
	}

	if err := c.pool.Spend(r.Cost); err != nil {
		if id != 0 {
			c.grid.Vacate(req.Cell)
		}
		rej := &Rejection{Reason: ReasonInsufficientResources, Recipe: r.ID, Message: err.Error()}
		var short *ledger.ShortfallError
		if errors.As(err, &short) {
			rej.Missing = short.Missing
		}
		return Result{}, rej
	}

	res := Result{Recipe: r, Site: site}
	switch r.Output.Type {
	case OutputTower:
		c.nextID = id
		res.Tower = tower.New(id, r.Output.ID, req.Cell, c.towers[r.Output.ID], req.By)
		if r.Cooking > 0 {
			site.start(r, req.By)
		}
	case OutputIngredient:
		if r.Cooking > 0 {
			site.start(r, req.By)
			break
		}
		credited := ledger.Counts{ledger.Ingredient(r.Output.ID): r.Output.Quantity}
		overflow, _ := c.pool.CreditAll(credited)
		for k, lost := range overflow {
			credited[k] -= lost
		}
		res.Credited = credited
	}
	return res, nil
}

// pickSite chooses the free site of a kind closest to the target cell.
// Returns the reason when none is usable.
func (c *Crafter) pickSite(kind string, near grid.Point) (*Site, Reason) {
	var best *Site
	seen := false
	for _, s := range c.sites {
		if s.Kind != kind {
			continue
		}
		seen = true
		if s.Busy() {
			continue
		}
		if best == nil || s.Cell.Manhattan(near) < best.Cell.Manhattan(near) {
			best = s
		}
	}
	if best != nil {
		return best, ""
	}
	if seen {
		return nil, ReasonApplianceBusy
	}
	return nil, ReasonApplianceMissing
}

// Advance cooks every busy site for dt. Finished conversion jobs credit their
// output to the pool; finished tower jobs just free the appliance.
func (c *Crafter) Advance(dt time.Duration) []Completion {
	var done []Completion
	for _, s := range c.sites {
		job := s.advance(dt)
		if job == nil {
			continue
		}
		comp := Completion{Site: s, Job: *job}
		if job.Recipe.IsConversion() {
			reward := ledger.Counts{ledger.Ingredient(job.Recipe.Output.ID): job.Recipe.Output.Quantity}
			overflow, _ := c.pool.CreditAll(reward)
			for k, lost := range overflow {
				reward[k] -= lost
			}
			comp.Credited = reward
			comp.Overflow = overflow
		}
		done = append(done, comp)
	}
	return done
}
