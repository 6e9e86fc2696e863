package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/games/kitchen"
	"github.com/vovakirdan/kitchen-defense/internal/level"
	"github.com/vovakirdan/kitchen-defense/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func minimalModel(t *testing.T, store *storage.Store) (Model, *kitchen.Game) {
	t.Helper()
	lvl, err := level.LoadFile("../../level/testdata/minimal.yaml")
	if err != nil {
		t.Fatal(err)
	}
	g := kitchen.New(&lvl)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
	m := NewModel(g, cfg, Options{Store: store, Difficulty: "normal", Mode: coop.ModeLocal})
	m.Init()
	return m, g
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	m, _ := minimalModel(t, store)

	for i := 0; i < 1000 && !m.State().GameOver; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("minimal level should end")
	}
	for i := 0; i < 5; i++ {
		m = step(t, m, TickMsg{})
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one saved result, got %d", len(results))
	}
	r := results[0]
	if r.LevelID != "minimal" || r.Outcome != "lost" || r.Mode != "local" || r.Difficulty != "normal" {
		t.Errorf("saved result = %+v", r)
	}
	if r.Breaches != 1 {
		t.Errorf("breaches = %d, expected 1", r.Breaches)
	}

	// restart and finish again: a second row
	m = step(t, m, runeKey("r"))
	m = step(t, m, TickMsg{})
	if m.State().GameOver {
		t.Fatal("restart should begin a new run")
	}
	for i := 0; i < 1000 && !m.State().GameOver; i++ {
		m = step(t, m, TickMsg{})
	}
	if results, _ := store.RecentResults(10); len(results) != 2 {
		t.Errorf("expected two results after a replay, got %d", len(results))
	}
}

func TestModelPartnerToggle(t *testing.T) {
	m, g := minimalModel(t, nil)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if g.Match().Controller(coop.Player2) != coop.CPU {
		t.Error("tab should hand P2 to the CPU")
	}
	if !strings.Contains(m.View(), "P2 (CPU)") {
		t.Error("view should label the CPU seat")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if g.Match().Controller(coop.Player2) != coop.Human {
		t.Error("second tab should hand P2 back")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, _ := minimalModel(t, nil)

	back := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || back.IsQuitting() {
		t.Error("esc inside a session should return to the menu")
	}

	m.opts.Standalone = true
	quit := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !quit.IsQuitting() {
		t.Error("esc in standalone play should quit")
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30}
	m := NewMenuModel(nil, cfg, false)
	if len(m.items) == 0 {
		t.Fatal("menu should list the embedded levels")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(MenuModel)
	if !m.Partner() {
		t.Error("tab should enable the CPU partner")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	res := m.Result()
	if res.Quit || res.GameID != m.items[1].GameID || !res.Partner {
		t.Errorf("menu result = %+v", res)
	}
}

func TestScoreboardShowsResults(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{120, 300} {
		if _, err := store.SaveResult(storage.Result{LevelID: "corn-road", Outcome: "won", Score: score}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveResult(storage.Result{LevelID: "twin-doors", Outcome: "lost", Score: 10}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, "corn-road", 100, 30)
	if got := m.Results(); len(got) != 2 || got[0].Score != 300 {
		t.Fatalf("corn-road results = %+v", got)
	}
	if !strings.Contains(m.View(), "Corn Road") {
		t.Error("title should name the level")
	}

	next, _ := m.Update(runeKey("t"))
	m = next.(ScoreboardModel)
	if len(m.Results()) != 3 || m.Title() != "RECENT RUNS" {
		t.Errorf("recent view shows %d results titled %q", len(m.Results()), m.Title())
	}
}

func TestSessionMenuToLevelAndBack(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30, Seed: 3}
	var s tea.Model = NewSessionModel(cfg, Options{Mode: coop.ModeSSH}, "alice-1a2b3c4d")

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := s.(SessionModel)
	if sm.game == nil {
		t.Fatal("enter should start the selected level")
	}

	g, ok := sm.game.game.(*kitchen.Game)
	if !ok {
		t.Fatalf("session plays %T", sm.game.game)
	}
	match := g.Match()
	if match.Mode() != coop.ModeSSH || match.Session() != "alice-1a2b3c4d" {
		t.Errorf("match = %s %s, expected ssh session of alice", match.Mode(), match.Session())
	}
	if match.Controller(coop.Player2) != coop.CPU {
		t.Error("partner chosen in the menu should drive P2")
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = s.(SessionModel)
	if sm.game != nil || sm.quitting {
		t.Fatal("esc should return to the menu without closing the session")
	}
	if !sm.menu.Partner() {
		t.Error("menu should remember the partner choice")
	}
}
