// Package recipe implements the crafting rule set: which appliance and which
// ingredients each product needs, and the atomic spend that places a tower or
// starts a conversion.
package recipe

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/ledger"
)

// OutputType tells what a recipe produces.
type OutputType string

const (
	OutputTower      OutputType = "tower"
	OutputIngredient OutputType = "ingredient"
)

// Output is the product of a recipe.
type Output struct {
	Type     OutputType
	ID       string // tower kind or ingredient kind
	Quantity int    // ingredients only; towers always produce one
}

// Recipe is immutable level data.
type Recipe struct {
	ID        string
	Appliance string
	Cost      ledger.Counts
	Output    Output
	Cooking   time.Duration
}

// IsConversion reports whether the recipe turns ingredients into ingredients.
func (r Recipe) IsConversion() bool {
	return r.Output.Type == OutputIngredient
}

// BookError describes an invalid recipe.
type BookError struct {
	Recipe  string
	Problem string
}

func (e *BookError) Error() string {
	return fmt.Sprintf("recipe %q: %s", e.Recipe, e.Problem)
}

// Book is the validated recipe set of a level.
type Book struct {
	recipes map[string]Recipe
	ids     []string
}

// NewBook validates recipes against the known ingredients, appliance kinds
// and tower kinds.
func NewBook(recipes []Recipe, ingredients []ledger.Ingredient, appliances, towers []string) (*Book, error) {
	knownIngredient := make(map[ledger.Ingredient]bool, len(ingredients))
	for _, k := range ingredients {
		knownIngredient[k] = true
	}
	knownAppliance := toSet(appliances)
	knownTower := toSet(towers)

	b := &Book{recipes: make(map[string]Recipe, len(recipes))}
	for _, r := range recipes {
		if r.ID == "" {
			return nil, &BookError{Recipe: r.ID, Problem: "missing id"}
		}
		if _, dup := b.recipes[r.ID]; dup {
			return nil, &BookError{Recipe: r.ID, Problem: "duplicate id"}
		}
		if !knownAppliance[r.Appliance] {
			return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("unknown appliance %q", r.Appliance)}
		}
		if len(r.Cost) == 0 {
			return nil, &BookError{Recipe: r.ID, Problem: "no ingredients"}
		}
		for _, k := range r.Cost.Kinds() {
			if !knownIngredient[k] {
				return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("unknown ingredient %q", k)}
			}
			if r.Cost[k] <= 0 {
				return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("non-positive amount of %q", k)}
			}
		}
		if r.Cooking < 0 {
			return nil, &BookError{Recipe: r.ID, Problem: "negative cooking time"}
		}

		switch r.Output.Type {
		case OutputTower:
			if !knownTower[r.Output.ID] {
				return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("unknown tower %q", r.Output.ID)}
			}
			r.Output.Quantity = 1
		case OutputIngredient:
			out := ledger.Ingredient(r.Output.ID)
			if !knownIngredient[out] {
				return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("unknown output ingredient %q", r.Output.ID)}
			}
			if _, loops := r.Cost[out]; loops {
				return nil, &BookError{Recipe: r.ID, Problem: "output is also an ingredient"}
			}
			if r.Output.Quantity <= 0 {
				return nil, &BookError{Recipe: r.ID, Problem: "output quantity must be positive"}
			}
		default:
			return nil, &BookError{Recipe: r.ID, Problem: fmt.Sprintf("unknown output type %q", r.Output.Type)}
		}

		r.Cost = r.Cost.Clone()
		b.recipes[r.ID] = r
		b.ids = append(b.ids, r.ID)
	}
	sort.Strings(b.ids)
	return b, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

// Get returns a recipe by id.
func (b *Book) Get(id string) (Recipe, bool) {
	r, ok := b.recipes[id]
	if ok {
		r.Cost = r.Cost.Clone()
	}
	return r, ok
}

// IDs returns recipe ids in sorted order.
func (b *Book) IDs() []string {
	out := make([]string, len(b.ids))
	copy(out, b.ids)
	return out
}

// Len returns the number of recipes.
func (b *Book) Len() int {
	return len(b.ids)
}

// Cycle returns the recipe id delta steps away from current, wrapping around.
// An unknown current id starts from the first recipe.
func (b *Book) Cycle(current string, delta int) string {
	if len(b.ids) == 0 {
		return ""
	}
	idx := sort.SearchStrings(b.ids, current)
	if idx >= len(b.ids) || b.ids[idx] != current {
		return b.ids[0]
	}
	n := len(b.ids)
	return b.ids[((idx+delta)%n+n)%n]
}

// Cheapest returns affordable tower recipes ordered by total cost, then id.
func (b *Book) Cheapest(pool *ledger.Pool) []Recipe {
	var out []Recipe
	for _, id := range b.ids {
		r := b.recipes[id]
		if r.Output.Type == OutputTower && pool.Covers(r.Cost) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cost.Total() < out[j].Cost.Total()
	})
	return out
}
