package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/wave"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	levels, err := Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	want := []string{"corn-road", "popcorn-pass", "twin-doors"}
	if len(levels) != len(want) {
		t.Fatalf("expected %d embedded levels, got %d", len(want), len(levels))
	}
	for i, lvl := range levels {
		if lvl.ID != want[i] {
			t.Errorf("level %d: id = %q, expected %q", i, lvl.ID, want[i])
		}
		if lvl.FilePath != "" {
			t.Errorf("%s: embedded level should have no file path, got %q", lvl.ID, lvl.FilePath)
		}
		if lvl.TotalEnemies() == 0 {
			t.Errorf("%s: declares no enemies", lvl.ID)
		}
	}
}

func TestBuildReturnsIndependentState(t *testing.T) {
	lvl, err := Embedded().LoadByID("corn-road")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}

	a, err := lvl.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := lvl.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := a.Pool.Spend(lvl.StartCounts()); err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if b.Pool.Count("corn") != 20 {
		t.Errorf("second build shares the pool: corn = %d", b.Pool.Count("corn"))
	}

	cell := a.Grid.BuildCells()[0]
	if err := a.Grid.Occupy(cell, 1); err != nil {
		t.Fatalf("Occupy: %v", err)
	}
	if b.Grid.Occupant(cell) != 0 {
		t.Error("second build shares the grid")
	}

	if len(a.Sites) != 2 || a.Sites[0].Kind != "rotisserie" {
		t.Errorf("unexpected sites: %+v", a.Sites)
	}
	if a.Grid.Terrain(grid.P(4, 0)) != grid.TerrainAppliance {
		t.Error("appliance cell not marked on the grid")
	}
	if a.Director.State() != wave.StateIdle {
		t.Errorf("director starts in %s", a.Director.State())
	}
}

func TestLoadFile(t *testing.T) {
	lvl, err := LoadFile(filepath.Join("testdata", "minimal.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if lvl.Name != "minimal" {
		t.Errorf("name should default to the id, got %q", lvl.Name)
	}
	if lvl.PortalLives != 1 {
		t.Errorf("portal lives should default to 1, got %d", lvl.PortalLives)
	}
	if lvl.FilePath == "" {
		t.Error("file path not recorded")
	}

	_, err = LoadFile(filepath.Join("testdata", "broken.yaml"))
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeNoPortal {
		t.Errorf("broken level: expected %s, got %v", CodeNoPortal, err)
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	ids, err := NewLoader("testdata").ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "minimal" {
		t.Errorf("ListIDs = %v, expected [minimal]", ids)
	}

	if _, err := NewLoader("testdata").LoadByID("broken"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an invalid level, got %v", err)
	}
}

func TestChainPrefersEarlierSource(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "minimal.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	// Same id as an embedded level, different content.
	data = append([]byte("id: twin-doors\nname: Local Doors\n"), data[len("id: minimal\n"):]...)
	if err := os.WriteFile(filepath.Join(dir, "local.yml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	chain := Chain{NewLoader(dir), Embedded()}
	lvl, err := chain.LoadByID("twin-doors")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if lvl.Name != "Local Doors" {
		t.Errorf("expected the directory level to win, got %q", lvl.Name)
	}

	all, err := chain.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 merged levels, got %d", len(all))
	}

	if _, err := chain.LoadByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestValidationCodes(t *testing.T) {
	base := func(t *testing.T) Level {
		t.Helper()
		lvl, err := LoadFile(filepath.Join("testdata", "minimal.yaml"))
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		return lvl
	}

	tests := []struct {
		name   string
		mutate func(*Level)
		code   string
	}{
		{"missing id", func(l *Level) { l.ID = "" }, CodeMissingID},
		{"ragged layout", func(l *Level) { l.Layout[0] = "###" }, CodeBadLayout},
		{"unknown symbol", func(l *Level) { l.Layout[1] = "S.x.P" }, CodeBadLayout},
		{"no spawn", func(l *Level) { l.Layout[1] = "....P" }, CodeNoSpawn},
		{"two portals", func(l *Level) { l.Layout[1] = "S.P.P" }, CodeNoPortal},
		{"walled off", func(l *Level) { l.Layout[1] = "S.#.P" }, CodeNoPath},
		{"appliance blocks path", func(l *Level) { l.Appliances[0].Y = 1 }, CodeNoPath},
		{"appliance on spawn", func(l *Level) { l.Appliances[0].X, l.Appliances[0].Y = 0, 1 }, CodeUnknownAppliance},
		{"unknown recipe appliance", func(l *Level) { l.Recipes[0].Appliance = "oven" }, CodeBadRecipe},
		{"recipe with two outputs", func(l *Level) { l.Recipes[0].Output.Ingredient = "corn" }, CodeBadRecipe},
		{"start above stack", func(l *Level) { l.Ingredients[0].MaxStack = 2 }, CodeBadStart},
		{"no waves", func(l *Level) { l.Waves = nil }, CodeNoWaves},
		{"unknown enemy", func(l *Level) { l.Waves[0].Spawns[0].Enemy = "wolf" }, CodeUnknownEnemy},
		{"empty wave", func(l *Level) { l.Waves[0].Spawns[0].Count = 0 }, CodeBadWave},
		{"bad tower", func(l *Level) {
			st := l.Towers["post"]
			st.Health = 0
			l.Towers["post"] = st
		}, CodeBadTower},
		{"bad enemy", func(l *Level) {
			st := l.Enemies["ant"]
			st.Speed = 0
			l.Enemies["ant"] = st
		}, CodeBadEnemy},
		{"negative sated reward", func(l *Level) {
			st := l.Enemies["ant"]
			st.SatedReward = ledger.Counts{"corn": -3}
			l.Enemies["ant"] = st
		}, CodeBadEnemy},
		{"negative kill reward", func(l *Level) {
			st := l.Enemies["ant"]
			st.KillReward = ledger.Counts{"corn": -1}
			l.Enemies["ant"] = st
		}, CodeBadEnemy},
		{"seat off map", func(l *Level) { l.Seats = []Seat{{X: 9, Y: 9}} }, CodeBadSeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := base(t)
			tt.mutate(&lvl)
			err := lvl.Validate()
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected a ValidationError, got %v", err)
			}
			if ve.Code != tt.code {
				t.Errorf("code = %s, expected %s (%s)", ve.Code, tt.code, ve.Message)
			}
		})
	}
}
