package sim

import (
	"context"
	"fmt"

	"github.com/vovakirdan/kitchen-defense/internal/outcome"
)

// Summary is the result of a headless run.
type Summary struct {
	Level   string
	Outcome outcome.State
	Ticks   uint64
	Score   int
	Waves   int
	Stats   Stats
	Pool    string
}

// Summary reports the world's current totals.
func (w *World) Summary() Summary {
	return Summary{
		Level:   w.level.ID,
		Outcome: w.Outcome(),
		Ticks:   w.tick,
		Score:   w.Score(),
		Waves:   w.stats.WavesCleared,
		Stats:   w.stats,
		Pool:    w.pool.Snapshot().String(),
	}
}

// Run drives the world with the autoplayer until it ends, maxTicks pass
// (0 means the configured limit) or ctx is done.
func Run(ctx context.Context, w *World, maxTicks int) (Summary, error) {
	if maxTicks <= 0 {
		maxTicks = w.cfg.Simulation.MaxTicks
	}
	bot := NewAutoplayer(w)

	for i := 0; i < maxTicks && !w.Over(); i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return w.Summary(), err
			}
		}
		if res := w.Step(bot.Next()); res.Err != nil {
			return w.Summary(), fmt.Errorf("sim: tick %d: %w", res.Tick, res.Err)
		}
	}
	return w.Summary(), nil
}
