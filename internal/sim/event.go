package sim

import (
	"fmt"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/grid"
	"github.com/vovakirdan/kitchen-defense/internal/ledger"
	"github.com/vovakirdan/kitchen-defense/internal/recipe"
)

// EventKind names something that happened during a tick.
type EventKind int

const (
	EventWaveStarted EventKind = iota
	EventWaveCleared
	EventSpawned
	EventThrown
	EventFed
	EventFizzled
	EventSated
	EventKilled
	EventBreached
	EventTowerPlaced
	EventTowerHit
	EventTowerDestroyed
	EventCraftRejected
	EventCookingStarted
	EventCookingDone
	EventCredited
	EventWon
	EventLost
)

var eventNames = map[EventKind]string{
	EventWaveStarted:    "wave_started",
	EventWaveCleared:    "wave_cleared",
	EventSpawned:        "spawned",
	EventThrown:         "thrown",
	EventFed:            "fed",
	EventFizzled:        "fizzled",
	EventSated:          "sated",
	EventKilled:         "killed",
	EventBreached:       "breached",
	EventTowerPlaced:    "tower_placed",
	EventTowerHit:       "tower_hit",
	EventTowerDestroyed: "tower_destroyed",
	EventCraftRejected:  "craft_rejected",
	EventCookingStarted: "cooking_started",
	EventCookingDone:    "cooking_done",
	EventCredited:       "credited",
	EventWon:            "won",
	EventLost:           "lost",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is one notable change. Only the fields relevant to Kind are set.
type Event struct {
	Tick    uint64
	Kind    EventKind
	Seat    core.PlayerID // who caused it, 0 for none
	Wave    int           // 0-based wave index
	Enemy   int
	Tower   int
	Subject string // enemy kind, tower kind or recipe id
	Cell    grid.Point
	Hunger  float64
	Counts  ledger.Counts
	Reason  recipe.Reason
	Message string
}

// Text renders the event for the HUD log.
func (e Event) Text() string {
	switch e.Kind {
	case EventWaveStarted:
		return fmt.Sprintf("wave %d incoming", e.Wave+1)
	case EventWaveCleared:
		return fmt.Sprintf("wave %d cleared", e.Wave+1)
	case EventSated:
		return fmt.Sprintf("%s sated by %s", e.Subject, e.Seat)
	case EventKilled:
		return fmt.Sprintf("%s knocked out", e.Subject)
	case EventBreached:
		return fmt.Sprintf("%s reached the portal!", e.Subject)
	case EventTowerPlaced:
		return fmt.Sprintf("%s built a %s at %s", e.Seat, e.Subject, e.Cell)
	case EventTowerDestroyed:
		return fmt.Sprintf("%s at %s destroyed", e.Subject, e.Cell)
	case EventCraftRejected:
		return fmt.Sprintf("%s: %s", e.Seat, e.Message)
	case EventCookingDone:
		if len(e.Counts) > 0 {
			return fmt.Sprintf("%s ready: +%s", e.Subject, e.Counts)
		}
		return fmt.Sprintf("%s done", e.Subject)
	case EventCredited:
		return fmt.Sprintf("+%s", e.Counts)
	case EventWon:
		return "the kitchen holds!"
	case EventLost:
		return "the portal is overrun"
	default:
		return e.Kind.String()
	}
}

func (e Event) keyvals() []interface{} {
	kv := []interface{}{"tick", e.Tick}
	if e.Seat != 0 {
		kv = append(kv, "seat", e.Seat)
	}
	if e.Enemy != 0 {
		kv = append(kv, "enemy", e.Enemy)
	}
	if e.Tower != 0 {
		kv = append(kv, "tower", e.Tower)
	}
	if e.Subject != "" {
		kv = append(kv, "subject", e.Subject)
	}
	if len(e.Counts) > 0 {
		kv = append(kv, "counts", e.Counts.String())
	}
	if e.Reason != "" {
		kv = append(kv, "reason", e.Reason)
	}
	return kv
}
