// Package sim runs one level: it owns the grid, the shared pool, the towers
// and enemies in flight, and advances them in a fixed stage order per tick.
//
//	input -> movement -> combat -> crediting -> crafting -> evaluation
//
// A world is deterministic for a given level, config, seed and input sequence.
package sim

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kitchen-defense/internal/agent"
	"github.com/vovakirdan/kitchen-defense/internal/config"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/feed"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/level"
	"github.com/vovakirdan/kitchen-defense/internal/outcome"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
	"github.com/vovakirdan/kitchen-defense/internal/tower"
	"github.com/vovakirdan/kitchen-defense/internal/wave"
)

const (
	enemyRadius = 0.35
	towerRadius = 0.5
)

// Options configure a world. Zero values pick the defaults.
type Options struct {
	Config   config.KitchenConfig
	Seed     int64
	Logger   *log.Logger
	Sound    SoundSink
	Collider feed.Collider
}

// Stats count what happened during the run.
type Stats struct {
	Spawned      int
	Throws       int
	Fed          int
	Sated        int
	Killed       int
	Breaches     int
	Crafts       int
	Rejections   int
	TowersBuilt  int
	TowersLost   int
	WavesCleared int // waves resolved without a single breach
}

// StepResult describes one tick.
type StepResult struct {
	Tick    uint64
	Events  []Event
	Outcome outcome.State
	Err     error
}

type scale struct {
	speed float64
	decay float64
}

// World is the state of one run.
type World struct {
	level *level.Level
	cfg   config.KitchenConfig
	dt    time.Duration
	tick  uint64

	grid       *grid.Grid
	pool       *ledger.Pool
	crafter    *recipe.Crafter
	director   *wave.Director
	evaluator  *outcome.Evaluator
	difficulty *config.DifficultyManager

	towers      []*tower.Tower // standing towers, by id
	enemies     []*agent.Enemy // live set, by spawn order
	projectiles []*feed.Projectile
	seats       map[core.PlayerID]*Seat
	crafts      []recipe.Request
	scales      map[int]scale
	waveLeft    []int
	waveLeaked  []bool

	nextEnemy      int
	nextProjectile int
	repath         bool

	stats  Stats
	events []Event
	rng    *rand.Rand
	log    *log.Logger
	sound  SoundSink
	hit    feed.Collider
	err    error
}

// New builds a fresh world for a level.
func New(lvl *level.Level, opts Options) (*World, error) {
	cfg := opts.Config
	if cfg.Simulation.TickRate == 0 {
		cfg = config.DefaultKitchenConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parts, err := lvl.Build()
	if err != nil {
		return nil, fmt.Errorf("sim: level %s: %w", lvl.ID, err)
	}

	w := &World{
		level:      lvl,
		cfg:        cfg,
		dt:         time.Second / time.Duration(cfg.Simulation.TickRate),
		grid:       parts.Grid,
		pool:       parts.Pool,
		crafter:    recipe.NewCrafter(parts.Book, parts.Pool, parts.Grid, lvl.Towers, parts.Sites),
		director:   parts.Director,
		evaluator:  outcome.NewEvaluator(lvl.PortalLives),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seats:      make(map[core.PlayerID]*Seat, len(core.Seats)),
		scales:     make(map[int]scale),
		rng:        rand.New(rand.NewSource(opts.Seed)),
		log:        opts.Logger,
		sound:      opts.Sound,
		hit:        opts.Collider,
	}
	w.crafter.SetOccupancy(w.enemyOn)
	if w.log == nil {
		w.log = log.New(io.Discard)
	}
	if w.sound == nil {
		w.sound = NopSink{}
	}
	if w.hit == nil {
		w.hit = feed.CircleCollider{}
	}
	for _, wv := range lvl.Waves {
		w.waveLeft = append(w.waveLeft, wv.Size())
		w.waveLeaked = append(w.waveLeaked, false)
	}

	ids := parts.Book.IDs()
	for i, id := range core.Seats {
		s := &Seat{ID: id, Cursor: w.defaultCursor(i)}
		if i < len(lvl.Seats) {
			s.Cursor = lvl.Seats[i].Cell()
		}
		if len(ids) > 0 {
			s.Recipe = ids[i%len(ids)]
		}
		w.seats[id] = s
	}
	return w, nil
}

func (w *World) defaultCursor(i int) grid.Point {
	return grid.P(w.grid.Width()*(i+1)/(len(core.Seats)+1), w.grid.Height()/2)
}

// Level returns the level being played.
func (w *World) Level() *level.Level { return w.level }

// Tick returns the number of ticks run.
func (w *World) Tick() uint64 { return w.tick }

// Dt returns the tick length.
func (w *World) Dt() time.Duration { return w.dt }

// Grid returns the map.
func (w *World) Grid() *grid.Grid { return w.grid }

// Pool returns the shared ingredient pool.
func (w *World) Pool() *ledger.Pool { return w.pool }

// Book returns the level's recipes.
func (w *World) Book() *recipe.Book { return w.crafter.Book() }

// Sites returns the appliances.
func (w *World) Sites() []*recipe.Site { return w.crafter.Sites() }

// Director returns the wave director.
func (w *World) Director() *wave.Director { return w.director }

// Outcome returns the run state.
func (w *World) Outcome() outcome.State { return w.evaluator.State() }

// Over reports whether the run has ended.
func (w *World) Over() bool { return w.evaluator.State().Terminal() }

// LivesLeft returns how many more breaches the portal can take.
func (w *World) LivesLeft() int { return w.evaluator.LivesLeft(w.stats.Breaches) }

// Stats returns the run counters.
func (w *World) Stats() Stats { return w.stats }

// Seat returns a player's seat.
func (w *World) Seat(id core.PlayerID) *Seat { return w.seats[id] }

// Towers returns the standing towers.
func (w *World) Towers() []*tower.Tower { return w.towers }

// Enemies returns the live enemies.
func (w *World) Enemies() []*agent.Enemy { return w.enemies }

// Projectiles returns the projectiles in flight.
func (w *World) Projectiles() []*feed.Projectile { return w.projectiles }

// Err returns the first internal error, which stops the world.
func (w *World) Err() error { return w.err }

// Score returns the points earned so far.
func (w *World) Score() int {
	sc := w.cfg.Scoring
	score := w.stats.Sated*sc.Sated + w.stats.Killed*sc.Killed + w.stats.WavesCleared*sc.Wave
	if w.evaluator.State() == outcome.StateWon {
		score += sc.Win + sc.LifeBonus*w.LivesLeft()
	}
	return score
}

// Step advances the world by one tick. A finished world does not change.
func (w *World) Step(in core.MultiInputFrame) StepResult {
	if w.Over() || w.err != nil {
		return StepResult{Tick: w.tick, Outcome: w.Outcome(), Err: w.err}
	}

	w.tick++
	w.events = nil

	w.stageInput(in)
	if err := w.stageMovement(); err != nil {
		w.fail(err)
	}
	w.stageCombat()
	if err := w.stageCrediting(); err != nil {
		w.fail(err)
	}
	w.stageCrafting()
	w.stageEvaluation()

	for _, ev := range w.events {
		if cue := CueFor(ev.Kind); cue != CueNone {
			w.sound.Play(cue)
		}
	}
	return StepResult{Tick: w.tick, Events: w.events, Outcome: w.Outcome(), Err: w.err}
}

func (w *World) fail(err error) {
	if w.err == nil {
		w.err = err
		w.log.Error("simulation stopped", "tick", w.tick, "err", err)
	}
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.events = append(w.events, ev)
	w.log.Debug(ev.Kind.String(), ev.keyvals()...)
}

func (w *World) towerByID(id int) *tower.Tower {
	i := sort.Search(len(w.towers), func(i int) bool { return w.towers[i].ID >= id })
	if i < len(w.towers) && w.towers[i].ID == id {
		return w.towers[i]
	}
	return nil
}

func (w *World) enemyByID(id int) *agent.Enemy {
	i := sort.Search(len(w.enemies), func(i int) bool { return w.enemies[i].ID >= id })
	if i < len(w.enemies) && w.enemies[i].ID == id {
		return w.enemies[i]
	}
	return nil
}

// enemyOn reports whether a live enemy stands in p.
func (w *World) enemyOn(p grid.Point) bool {
	for _, e := range w.enemies {
		if e.Alive() && e.Cell() == p {
			return true
		}
	}
	return false
}

func (w *World) route(from grid.Point) grid.Path {
	p, _ := w.grid.Route(from)
	return p
}

func (w *World) passable(p grid.Point) bool {
	return w.grid.Occupant(p) == 0
}
