package recipe

import (
	"errors"
	"testing"

	"github.com/vovakirdan/kitchen-defense/internal/ledger"
)

func TestNewBookValidation(t *testing.T) {
	ingredients := []ledger.Ingredient{"corn", "popcorn"}
	appliances := []string{"rotisserie", "wok"}
	towers := []string{"cannon"}

	tests := []struct {
		name   string
		recipe Recipe
	}{
		{"unknown appliance", Recipe{ID: "a", Appliance: "oven", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: OutputTower, ID: "cannon"}}},
		{"unknown ingredient", Recipe{ID: "b", Appliance: "wok", Cost: ledger.Counts{"rice": 1}, Output: Output{Type: OutputTower, ID: "cannon"}}},
		{"unknown tower", Recipe{ID: "c", Appliance: "wok", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: OutputTower, ID: "laser"}}},
		{"unknown output ingredient", Recipe{ID: "d", Appliance: "wok", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: OutputIngredient, ID: "rice", Quantity: 1}}},
		{"self loop", Recipe{ID: "e", Appliance: "wok", Cost: ledger.Counts{"popcorn": 1}, Output: Output{Type: OutputIngredient, ID: "popcorn", Quantity: 2}}},
		{"no ingredients", Recipe{ID: "f", Appliance: "wok", Output: Output{Type: OutputTower, ID: "cannon"}}},
		{"zero quantity", Recipe{ID: "g", Appliance: "wok", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: OutputIngredient, ID: "popcorn"}}},
		{"bad output type", Recipe{ID: "h", Appliance: "wok", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: "soup", ID: "x"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook([]Recipe{tc.recipe}, ingredients, appliances, towers)
			var be *BookError
			if !errors.As(err, &be) {
				t.Fatalf("expected BookError, got %v", err)
			}
			if be.Recipe != tc.recipe.ID {
				t.Errorf("BookError.Recipe = %q, expected %q", be.Recipe, tc.recipe.ID)
			}
		})
	}
}

func TestBookCycle(t *testing.T) {
	book, err := NewBook([]Recipe{
		{ID: "popcorn", Appliance: "wok", Cost: ledger.Counts{"corn": 1}, Output: Output{Type: OutputIngredient, ID: "popcorn", Quantity: 1}},
		{ID: "cannon", Appliance: "wok", Cost: ledger.Counts{"corn": 5}, Output: Output{Type: OutputTower, ID: "cannon"}},
		{ID: "mortar", Appliance: "wok", Cost: ledger.Counts{"corn": 3, "popcorn": 2}, Output: Output{Type: OutputTower, ID: "cannon"}},
	}, []ledger.Ingredient{"corn", "popcorn"}, []string{"wok"}, []string{"cannon"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"cannon", 1, "mortar"},
		{"popcorn", 1, "cannon"},
		{"cannon", -1, "popcorn"},
		{"mortar", 4, "popcorn"},
		{"missing", 1, "cannon"},
	}
	for _, tc := range tests {
		if got := book.Cycle(tc.current, tc.delta); got != tc.want {
			t.Errorf("Cycle(%q, %d) = %q, expected %q", tc.current, tc.delta, got, tc.want)
		}
	}

	pool, _ := ledger.New([]ledger.Stock{{Kind: "corn"}, {Kind: "popcorn"}}, ledger.Counts{"corn": 6, "popcorn": 2})
	cheap := book.Cheapest(pool)
	if len(cheap) != 2 || cheap[0].ID != "cannon" || cheap[1].ID != "mortar" {
		t.Errorf("Cheapest() = %v", cheap)
	}
}
