package sim

import (
	"errors"

	"github.com/vovakirdan/kitchen-defense/internal/agent"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/feed"
	"github.com/vovakirdan/kitchen-defense/internal/outcome"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
	"github.com/vovakirdan/kitchen-defense/internal/tower"
	"github.com/vovakirdan/kitchen-defense/internal/wave"
)

// stageInput moves cursors, cycles recipes and queues throws and crafts.
// Seats are handled in order, so player 1's craft runs first.
func (w *World) stageInput(in core.MultiInputFrame) {
	for _, id := range core.Seats {
		s := w.seats[id]
		f := in.Player(id)
		if s.cooldown > 0 {
			s.cooldown -= w.dt
		}

		if f.Has(core.ActionUp) {
			s.moveCursor(0, -1, w.grid)
		}
		if f.Has(core.ActionDown) {
			s.moveCursor(0, 1, w.grid)
		}
		if f.Has(core.ActionLeft) {
			s.moveCursor(-1, 0, w.grid)
		}
		if f.Has(core.ActionRight) {
			s.moveCursor(1, 0, w.grid)
		}
		if f.Has(core.ActionNextRecipe) {
			s.Recipe = w.Book().Cycle(s.Recipe, 1)
		}
		if f.Has(core.ActionPrevRecipe) {
			s.Recipe = w.Book().Cycle(s.Recipe, -1)
		}
		if f.Has(core.ActionCraft) {
			w.crafts = append(w.crafts, recipe.Request{Recipe: s.Recipe, Cell: s.Cursor, By: id})
		}
		if f.Has(core.ActionThrow) {
			w.throw(s)
		}
	}
}

// throw launches food from the cursor at the nearest enemy in range, or at
// the nearest tower under attack.
func (w *World) throw(s *Seat) {
	if !s.Ready() {
		return
	}
	spec := w.cfg.Throw
	from := s.Cursor.Center()

	var target feed.Target
	var aim core.Vec
	best := spec.Range
	for _, e := range w.enemies {
		if d := from.Dist(e.Pos); e.Alive() && d <= best {
			if target.ID == 0 || d < best {
				target, aim, best = feed.Target{Kind: feed.TargetEnemy, ID: e.ID}, e.Pos, d
			}
		}
	}
	if target.ID == 0 {
		best = spec.Range
		for _, tw := range w.towers {
			if d := from.Dist(tw.Center()); w.attackerOf(tw) != nil && d <= best {
				if target.ID == 0 || d < best {
					target, aim, best = feed.Target{Kind: feed.TargetTower, ID: tw.ID}, tw.Center(), d
				}
			}
		}
	}
	if target.ID == 0 {
		return
	}

	w.nextProjectile++
	w.projectiles = append(w.projectiles, feed.Launch(w.nextProjectile, s.ID, from, target, aim, spec))
	s.cooldown = spec.Cooldown
	w.stats.Throws++
	ev := Event{Kind: EventThrown, Seat: s.ID, Cell: s.Cursor}
	if target.Kind == feed.TargetEnemy {
		ev.Enemy = target.ID
	} else {
		ev.Tower = target.ID
	}
	w.emit(ev)
}

// stageMovement runs the director, walks enemies and flies projectiles.
func (w *World) stageMovement() error {
	spawns, err := w.director.Tick(w.dt)
	if err != nil {
		return err
	}
	for _, sp := range spawns {
		w.spawn(sp)
	}

	if w.repath {
		w.repathAll()
		w.repath = false
	}

	for _, e := range w.enemies {
		if !e.Alive() {
			continue
		}
		sc := w.scales[e.ID]
		e.Hunger.Decay(w.dt.Seconds(), sc.decay)
		w.steer(e)
		if e.State != agent.StateWalking {
			continue
		}

		res := e.Move(w.dt, sc.speed, w.passable)
		// any route through the portal counts, including a chase path
		if res.Crossed(w.grid.Portal()) {
			e.Breach()
			w.stats.Breaches++
			w.emit(Event{Kind: EventBreached, Enemy: e.ID, Subject: e.Kind, Wave: e.Wave})
			continue
		}
		switch {
		case res.Blocked:
			if id := w.grid.Occupant(res.BlockedAt); id != 0 {
				e.Engage(id)
			}
		case res.Arrived:
			e.Disengage()
			e.SetPath(w.route(e.Cell()))
		}
	}

	for _, p := range w.projectiles {
		aim, found := w.aimOf(p.Target)
		if !p.Advance(w.dt, aim, found) && p.Consume() {
			w.emit(Event{Kind: EventFizzled, Seat: p.By})
		}
	}
	return nil
}

func (w *World) spawn(sp wave.SpawnEvent) {
	if sp.Seq == 0 {
		w.emit(Event{Kind: EventWaveStarted, Wave: sp.Wave})
	}

	spawns := w.grid.Spawns()
	at := spawns[0]
	if len(spawns) > 1 {
		at = spawns[w.rng.Intn(len(spawns))]
	}

	w.nextEnemy++
	e := agent.New(w.nextEnemy, sp.Enemy, sp.Wave, at, w.level.Enemies[sp.Enemy])
	e.SetPath(w.route(at))
	w.enemies = append(w.enemies, e)

	ticks := int(w.tick)
	w.scales[e.ID] = scale{
		speed: w.difficulty.SpeedScale(sp.Wave, ticks),
		decay: w.difficulty.DecayScale(sp.Wave, ticks),
	}
	w.stats.Spawned++
	w.emit(Event{Kind: EventSpawned, Enemy: e.ID, Subject: e.Kind, Wave: sp.Wave, Cell: at})
}

// steer switches walking enemies between the portal route and hunting a tower.
func (w *World) steer(e *agent.Enemy) {
	switch e.State {
	case agent.StateAttacking:
		tw := w.towerByID(e.Target)
		if tw == nil || (e.Chasing && !e.Hunger.Aggressive()) {
			e.Disengage()
			e.SetPath(w.route(e.Cell()))
		}
	case agent.StateWalking:
		if e.Chasing {
			if w.towerByID(e.Target) == nil || !e.Hunger.Aggressive() {
				e.Disengage()
				e.SetPath(w.route(e.Cell()))
			}
			return
		}
		if !e.Hunger.Aggressive() {
			return
		}
		if tw := w.nearestTower(e); tw != nil {
			if p := w.grid.FindPath(e.Cell(), tw.Cell); p != nil {
				e.SetPath(p)
				e.Target = tw.ID
				e.Chasing = true
			}
		}
	}
}

func (w *World) nearestTower(e *agent.Enemy) *tower.Tower {
	var best *tower.Tower
	bestD := 0.0
	for _, tw := range w.towers {
		d := e.Pos.Dist(tw.Center())
		if e.Stats.AggroRange > 0 && d > e.Stats.AggroRange {
			continue
		}
		if best == nil || d < bestD {
			best, bestD = tw, d
		}
	}
	return best
}

// repathAll refreshes routes after the set of towers changed.
func (w *World) repathAll() {
	for _, e := range w.enemies {
		if e.State != agent.StateWalking {
			continue
		}
		if e.Chasing {
			if tw := w.towerByID(e.Target); tw != nil {
				if p := w.grid.FindPath(e.Cell(), tw.Cell); p != nil {
					e.SetPath(p)
					continue
				}
			}
			e.Disengage()
		}
		e.SetPath(w.route(e.Cell()))
	}
}

func (w *World) aimOf(t feed.Target) (core.Vec, bool) {
	switch t.Kind {
	case feed.TargetEnemy:
		if e := w.enemyByID(t.ID); e != nil && e.Alive() {
			return e.Pos, true
		}
	case feed.TargetTower:
		if tw := w.towerByID(t.ID); tw != nil {
			return tw.Center(), true
		}
	}
	return core.Vec{}, false
}

// attackerOf returns the attacker of a tower nearest to it.
func (w *World) attackerOf(tw *tower.Tower) *agent.Enemy {
	var best *agent.Enemy
	bestD := 0.0
	for _, e := range w.enemies {
		if e.State != agent.StateAttacking || e.Target != tw.ID {
			continue
		}
		if d := e.Pos.Dist(tw.Center()); best == nil || d < bestD {
			best, bestD = e, d
		}
	}
	return best
}

// stageCombat feeds enemies hit by food, fires towers and lets enemies bite.
func (w *World) stageCombat() {
	for _, p := range w.projectiles {
		if !p.Active() {
			continue
		}
		switch p.Target.Kind {
		case feed.TargetEnemy:
			if e := w.enemyByID(p.Target.ID); e != nil && e.Alive() {
				if w.hit.Overlaps(p.Pos, p.Radius(), e.Pos, enemyRadius) && p.Consume() {
					w.feed(p, e)
				}
				continue
			}
		case feed.TargetTower:
			if tw := w.towerByID(p.Target.ID); tw != nil {
				if w.hit.Overlaps(p.Pos, p.Radius(), tw.Center(), towerRadius) && p.Consume() {
					if e := w.attackerOf(tw); e != nil {
						w.feed(p, e)
					} else {
						w.emit(Event{Kind: EventFizzled, Seat: p.By, Tower: tw.ID})
					}
				}
				continue
			}
		}
		// target gone: the food lands where it was aimed
		if p.Pos == p.Aim() && p.Consume() {
			w.emit(Event{Kind: EventFizzled, Seat: p.By})
		}
	}
	w.pruneProjectiles()

	for _, tw := range w.towers {
		tw.Cool(w.dt)
		if !tw.Ready() {
			continue
		}
		e := w.towerTarget(tw)
		if e == nil {
			continue
		}
		if e.TakeDamage(tw.Fire()) {
			w.stats.Killed++
			w.emit(Event{Kind: EventKilled, Enemy: e.ID, Tower: tw.ID, Subject: e.Kind, Wave: e.Wave})
		}
	}

	for _, e := range w.enemies {
		if e.State != agent.StateAttacking {
			continue
		}
		tw := w.towerByID(e.Target)
		if tw == nil {
			continue
		}
		dmg := e.Strike(w.dt)
		if dmg <= 0 {
			continue
		}
		w.emit(Event{Kind: EventTowerHit, Enemy: e.ID, Tower: tw.ID, Subject: tw.Kind})
		if tw.TakeDamage(dmg) {
			w.destroy(tw)
		}
	}
}

func (w *World) feed(p *feed.Projectile, e *agent.Enemy) {
	sated := e.Feed(p.FeedValue)
	w.stats.Fed++
	w.emit(Event{Kind: EventFed, Seat: p.By, Enemy: e.ID, Subject: e.Kind, Hunger: e.Hunger.Value()})
	if sated {
		w.stats.Sated++
		w.emit(Event{Kind: EventSated, Seat: p.By, Enemy: e.ID, Subject: e.Kind, Wave: e.Wave})
	}
}

// towerTarget picks the live enemy in range closest to the portal.
func (w *World) towerTarget(tw *tower.Tower) *agent.Enemy {
	var best *agent.Enemy
	for _, e := range w.enemies {
		if !e.Alive() || !tw.InRange(e.Pos) {
			continue
		}
		if best == nil || e.Remaining() < best.Remaining() {
			best = e
		}
	}
	return best
}

func (w *World) destroy(tw *tower.Tower) {
	w.grid.Vacate(tw.Cell)
	for i, t := range w.towers {
		if t == tw {
			w.towers = append(w.towers[:i], w.towers[i+1:]...)
			break
		}
	}
	for _, e := range w.enemies {
		if e.Alive() && e.Target == tw.ID {
			e.Disengage()
			e.SetPath(w.route(e.Cell()))
		}
	}
	w.repath = true
	w.stats.TowersLost++
	w.emit(Event{Kind: EventTowerDestroyed, Tower: tw.ID, Subject: tw.Kind, Cell: tw.Cell})
}

func (w *World) pruneProjectiles() {
	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.Active() {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = live
}

// stageCrediting removes resolved enemies, credits their rewards once and
// finishes cooking jobs.
func (w *World) stageCrediting() error {
	resolved := 0
	live := w.enemies[:0]
	for _, e := range w.enemies {
		if e.Alive() {
			live = append(live, e)
			continue
		}
		resolved++
		delete(w.scales, e.ID)

		if reward := e.Reward(); len(reward) > 0 {
			overflow, err := w.pool.CreditAll(reward)
			if err != nil {
				return err
			}
			for k, lost := range overflow {
				reward[k] -= lost
			}
			w.emit(Event{Kind: EventCredited, Enemy: e.ID, Subject: e.Kind, Counts: reward})
		}

		if e.Wave < len(w.waveLeft) {
			if e.State == agent.StateBreached {
				w.waveLeaked[e.Wave] = true
			}
			w.waveLeft[e.Wave]--
			if w.waveLeft[e.Wave] == 0 && !w.waveLeaked[e.Wave] {
				w.stats.WavesCleared++
				w.emit(Event{Kind: EventWaveCleared, Wave: e.Wave})
			}
		}
	}
	for i := len(live); i < len(w.enemies); i++ {
		w.enemies[i] = nil
	}
	w.enemies = live

	if resolved > 0 {
		if err := w.director.Resolve(resolved); err != nil {
			return err
		}
	}

	for _, c := range w.crafter.Advance(w.dt) {
		w.emit(Event{
			Kind:    EventCookingDone,
			Seat:    c.Job.By,
			Subject: c.Job.Recipe.ID,
			Cell:    c.Site.Cell,
			Counts:  c.Credited,
		})
	}
	return nil
}

// stageCrafting runs queued crafts in order against the pool.
func (w *World) stageCrafting() {
	for _, req := range w.crafts {
		res, err := w.crafter.TryCraft(req)
		seat := w.seats[req.By]
		if err != nil {
			w.stats.Rejections++
			msg := err.Error()
			var rej *recipe.Rejection
			if errors.As(err, &rej) {
				msg = rej.Message
			}
			if seat != nil {
				seat.Notice = msg
			}
			w.emit(Event{
				Kind:    EventCraftRejected,
				Seat:    req.By,
				Subject: req.Recipe,
				Cell:    req.Cell,
				Reason:  recipe.ReasonOf(err),
				Message: msg,
			})
			continue
		}

		w.stats.Crafts++
		if seat != nil {
			seat.Notice = ""
		}
		switch {
		case res.Tower != nil:
			w.towers = append(w.towers, res.Tower)
			w.stats.TowersBuilt++
			w.repath = true
			w.emit(Event{Kind: EventTowerPlaced, Seat: req.By, Tower: res.Tower.ID, Subject: res.Tower.Kind, Cell: res.Tower.Cell})
		case res.Credited != nil:
			w.emit(Event{Kind: EventCookingDone, Seat: req.By, Subject: res.Recipe.ID, Cell: res.Site.Cell, Counts: res.Credited})
		default:
			w.emit(Event{Kind: EventCookingStarted, Seat: req.By, Subject: res.Recipe.ID, Cell: res.Site.Cell})
		}
	}
	w.crafts = w.crafts[:0]
}

// stageEvaluation decides the run; the evaluator checks loss before win.
func (w *World) stageEvaluation() {
	state, changed := w.evaluator.Evaluate(outcome.Observation{
		Tick:             w.tick,
		Breaches:         w.stats.Breaches,
		DirectorComplete: w.director.Complete(),
		LiveEnemies:      len(w.enemies),
	})
	if !changed {
		return
	}
	kind := EventWon
	if state == outcome.StateLost {
		kind = EventLost
	}
	w.emit(Event{Kind: kind})
	w.log.Info("level decided", "level", w.level.ID, "outcome", state, "tick", w.tick, "score", w.Score())
}
