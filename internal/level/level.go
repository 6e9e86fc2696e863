// Package level loads level files: the kitchen layout, appliances, recipes,
// tower and enemy kinds, and the wave table.
//
// Levels are YAML. The default set is embedded in the binary; extra levels
// can be loaded from a directory.
package level

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/kitchen-defense/internal/agent"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
	"github.com/vovakirdan/kitchen-defense/internal/tower"
	"github.com/vovakirdan/kitchen-defense/internal/wave"
)

// Ingredient declares an ingredient the level uses.
type Ingredient struct {
	ID       string `yaml:"id"`
	MaxStack int    `yaml:"max_stack,omitempty"`
	Glyph    string `yaml:"glyph,omitempty"`
}

// Appliance places one appliance on the map.
type Appliance struct {
	Kind  string `yaml:"kind"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Glyph string `yaml:"glyph,omitempty"`
}

// Cell returns the appliance position.
func (a Appliance) Cell() grid.Point {
	return grid.P(a.X, a.Y)
}

// Rune returns the map glyph of the appliance.
func (a Appliance) Rune() rune {
	for _, r := range a.Glyph {
		return r
	}
	if a.Kind != "" {
		return []rune(a.Kind)[0]
	}
	return 'A'
}

// Output is what a recipe produces. Exactly one of Tower or Ingredient is set.
type Output struct {
	Tower      string `yaml:"tower,omitempty"`
	Ingredient string `yaml:"ingredient,omitempty"`
	Quantity   int    `yaml:"quantity,omitempty"`
}

// Recipe is the file form of a recipe.
type Recipe struct {
	ID          string         `yaml:"id"`
	Appliance   string         `yaml:"appliance"`
	Ingredients map[string]int `yaml:"ingredients"`
	Output      Output         `yaml:"output"`
	Cooking     time.Duration  `yaml:"cooking"`
}

// Seat is the starting cursor of a player.
type Seat struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Cell returns the seat position.
func (s Seat) Cell() grid.Point {
	return grid.P(s.X, s.Y)
}

// Level is a complete level definition.
type Level struct {
	ID          string                 `yaml:"id"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	PortalLives int                    `yaml:"portal_lives"`
	Layout      []string               `yaml:"layout"`
	Ingredients []Ingredient           `yaml:"ingredients"`
	Start       map[string]int         `yaml:"start"`
	Appliances  []Appliance            `yaml:"appliances"`
	Recipes     []Recipe               `yaml:"recipes"`
	Towers      map[string]tower.Stats `yaml:"towers"`
	Enemies     map[string]agent.Stats `yaml:"enemies"`
	Waves       []wave.Wave            `yaml:"waves"`
	Seats       []Seat                 `yaml:"seats,omitempty"`

	// FilePath is set by the loader; empty for embedded levels.
	FilePath string `yaml:"-"`
}

// applyDefaults fills optional fields.
func applyDefaults(l *Level) {
	if l.Name == "" {
		l.Name = l.ID
	}
	if l.PortalLives <= 0 {
		l.PortalLives = 1
	}
}

// TotalEnemies returns the number of enemies the wave table declares.
func (l *Level) TotalEnemies() int {
	n := 0
	for _, w := range l.Waves {
		n += w.Size()
	}
	return n
}

// TowerKinds returns tower kinds sorted.
func (l *Level) TowerKinds() []string {
	return sortedKeys(l.Towers)
}

// EnemyKinds returns enemy kinds sorted.
func (l *Level) EnemyKinds() []string {
	return sortedKeys(l.Enemies)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Catalog returns the ledger stock list.
func (l *Level) Catalog() []ledger.Stock {
	out := make([]ledger.Stock, len(l.Ingredients))
	for i, in := range l.Ingredients {
		out[i] = ledger.Stock{Kind: ledger.Ingredient(in.ID), MaxStack: in.MaxStack}
	}
	return out
}

// StartCounts returns the starting pool.
func (l *Level) StartCounts() ledger.Counts {
	out := make(ledger.Counts, len(l.Start))
	for k, v := range l.Start {
		out[ledger.Ingredient(k)] = v
	}
	return out
}

// RecipeList converts the file recipes to rule-set recipes.
func (l *Level) RecipeList() ([]recipe.Recipe, error) {
	out := make([]recipe.Recipe, 0, len(l.Recipes))
	for _, r := range l.Recipes {
		cost := make(ledger.Counts, len(r.Ingredients))
		for k, v := range r.Ingredients {
			cost[ledger.Ingredient(k)] = v
		}

		var o recipe.Output
		switch {
		case r.Output.Tower != "" && r.Output.Ingredient != "":
			return nil, fmt.Errorf("recipe %q: output names both a tower and an ingredient", r.ID)
		case r.Output.Tower != "":
			o = recipe.Output{Type: recipe.OutputTower, ID: r.Output.Tower, Quantity: 1}
		case r.Output.Ingredient != "":
			o = recipe.Output{Type: recipe.OutputIngredient, ID: r.Output.Ingredient, Quantity: r.Output.Quantity}
		default:
			return nil, fmt.Errorf("recipe %q: output is empty", r.ID)
		}

		out = append(out, recipe.Recipe{
			ID:        r.ID,
			Appliance: r.Appliance,
			Cost:      cost,
			Output:    o,
			Cooking:   r.Cooking,
		})
	}
	return out, nil
}

func toStrings(c ledger.Counts) map[string]int {
	out := make(map[string]int, len(c))
	for k, v := range c {
		out[string(k)] = v
	}
	return out
}

// ApplianceKinds returns the distinct kinds of placed appliances, sorted.
func (l *Level) ApplianceKinds() []string {
	set := make(map[string]bool)
	for _, a := range l.Appliances {
		set[a.Kind] = true
	}
	return sortedKeys(set)
}
