// Package kitchen adapts a level simulation to the platform game interface:
// two seats on one keyboard, an optional CPU partner, pause and restart.
package kitchen

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kitchen-defense/internal/config"
	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/level"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
	"github.com/vovakirdan/kitchen-defense/internal/sim"
)

// feedLines is how many recent events the HUD keeps.
const feedLines = 4

// Settings are shared by every game the registry creates.
type Settings struct {
	Config config.KitchenConfig
	Logger *log.Logger
	Sound  sim.SoundSink
	// Partner hands player 2 to the autoplayer in new games.
	Partner bool
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.DefaultKitchenConfig()}
)

// Configure replaces the settings used by games reset after this call.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if s.Config.Simulation.TickRate == 0 {
		s.Config = config.DefaultKitchenConfig()
	}
	settings = s
}

// CurrentSettings returns the active settings.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	levels, err := level.Embedded().LoadAll()
	if err != nil {
		panic(fmt.Sprintf("kitchen: embedded levels: %v", err))
	}
	for _, l := range levels {
		Register(l, registry.Register)
	}
}

// Register adds a level to the registry through add, which is either
// registry.Register or registry.Replace.
func Register(l level.Level, add func(string, registry.Factory)) {
	lvl := l
	add(lvl.ID, func() registry.Game { return New(&lvl) })
}

// Game is one level being played.
type Game struct {
	lvl      *level.Level
	settings Settings
	world    *sim.World
	auto     *sim.Autoplayer
	match    *coop.Match

	seed    int64
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	err      error
	feed     []feedLine
}

type feedLine struct {
	text  string
	color core.Color
}

// New creates a game for a level. Reset must be called before Step.
func New(lvl *level.Level) *Game {
	g := &Game{lvl: lvl}
	g.match = coop.NewMatch(coop.ModeLocal, lvl.ID, "")
	if CurrentSettings().Partner {
		g.match.SetController(coop.Player2, coop.CPU)
	}
	return g
}

// ID returns the level id.
func (g *Game) ID() string { return g.lvl.ID }

// Title returns the level name.
func (g *Game) Title() string { return g.lvl.Name }

// Level returns the level definition.
func (g *Game) Level() *level.Level { return g.lvl }

// World returns the running simulation, or nil before Reset.
func (g *Game) World() *sim.World { return g.world }

// Match returns who is driving each seat.
func (g *Game) Match() *coop.Match { return g.match }

// SetMatch replaces the match, keeping the level.
func (g *Game) SetMatch(m *coop.Match) {
	if m != nil {
		g.match = m
	}
}

// Err returns the error that stopped the simulation, if any.
func (g *Game) Err() error { return g.err }

// Reset builds a fresh world.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.settings = CurrentSettings()
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.feed = nil
	g.err = nil

	opts := sim.Options{
		Config: g.settings.Config,
		Seed:   cfg.Seed,
		Logger: g.settings.Logger,
		Sound:  g.settings.Sound,
	}
	if cfg.TickRate > 0 {
		opts.Config.Simulation.TickRate = cfg.TickRate
	}
	w, err := sim.New(g.lvl, opts)
	if err != nil {
		g.world = nil
		g.auto = nil
		g.err = err
		return
	}
	g.world = w
	g.auto = sim.NewAutoplayer(w)
	g.tooSmall = !g.fits()
}

// Resize adapts the layout to a new screen without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	over := g.world == nil || g.world.Over() || g.err != nil

	if in.Any(core.ActionRestart) && over {
		g.Reset(core.RuntimeConfig{
			Seed:    g.seed + 1,
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	if over || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	frame := in
	if len(g.match.CPUSeats()) > 0 {
		frame = g.match.Merge(in, g.auto.Next())
	}

	res := g.world.Step(frame)
	if res.Err != nil {
		g.err = res.Err
	}
	for _, ev := range res.Events {
		g.record(ev)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) record(ev sim.Event) {
	var c core.Color
	switch ev.Kind {
	case sim.EventWaveStarted, sim.EventWaveCleared:
		c = core.ColorBrightBlue
	case sim.EventSated, sim.EventKilled, sim.EventCookingDone:
		c = core.ColorBrightGreen
	case sim.EventTowerPlaced:
		c = core.SeatColor(ev.Seat)
	case sim.EventBreached, sim.EventTowerDestroyed, sim.EventLost:
		c = core.ColorBrightRed
	case sim.EventCraftRejected:
		c = core.ColorOrange
	case sim.EventWon:
		c = core.ColorBrightYellow
	default:
		return
	}
	g.feed = append(g.feed, feedLine{text: ev.Text(), color: c})
	if len(g.feed) > feedLines {
		g.feed = g.feed[len(g.feed)-feedLines:]
	}
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: true, Outcome: "error"}
	}
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.Over() || g.err != nil,
		Paused:   g.paused,
		Outcome:  g.world.Outcome().String(),
		Wave:     g.world.Director().Wave() + 1,
	}
}

// Summary returns the run summary, or false before Reset.
func (g *Game) Summary() (sim.Summary, bool) {
	if g.world == nil {
		return sim.Summary{}, false
	}
	return g.world.Summary(), true
}
