package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/kitchen-defense/internal/audio"
	"github.com/vovakirdan/kitchen-defense/internal/config"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/games/kitchen"
	"github.com/vovakirdan/kitchen-defense/internal/level"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
	"github.com/vovakirdan/kitchen-defense/internal/sim"
	"github.com/vovakirdan/kitchen-defense/internal/storage"
)

// env is what every command shares once the global flags are applied.
type env struct {
	logger  *log.Logger
	preset  config.DifficultyPreset
	config  config.KitchenConfig
	sound   sim.SoundSink
	closers []func()
}

// newEnv loads tuning and extra levels and configures the kitchen.
// Interactive commands keep stderr quiet unless --log-file is set.
func newEnv(interactive bool) (*env, error) {
	e := &env{sound: sim.NopSink{}}

	var out io.Writer = os.Stderr
	if interactive {
		out = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		e.closers = append(e.closers, func() { f.Close() })
	}
	e.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "kitchen",
	})
	if flagVerbose {
		e.logger.SetLevel(log.DebugLevel)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.preset = preset

	cfg, err := config.Load(flagConfig)
	if err != nil {
		e.Close()
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		e.Close()
		return nil, err
	}
	e.config = cfg

	if flagLevels != "" {
		levels, err := level.NewLoader(flagLevels).LoadAll()
		if err != nil {
			e.Close()
			return nil, err
		}
		for _, l := range levels {
			kitchen.Register(l, registry.Replace)
		}
		e.logger.Info("levels loaded", "dir", flagLevels, "count", len(levels))
	}

	if flagSound {
		p := audio.NewPlayer()
		if err := p.Initialize(); err != nil {
			e.logger.Warn("sound disabled", "err", err)
		} else {
			e.sound = p
			e.closers = append(e.closers, p.Close)
		}
	}

	kitchen.Configure(kitchen.Settings{
		Config:  cfg,
		Logger:  e.logger,
		Sound:   e.sound,
		Partner: flagPartner,
	})
	return e, nil
}

// Close releases the log file and the sound device.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// openStore opens the results database. Play continues without it.
func (e *env) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen to the terminal, 80x24 when unknown.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// findLevel returns a registered level, or loads one from a file path.
func findLevel(arg string) (*level.Level, error) {
	if registry.Exists(arg) {
		game, err := registry.Create(arg)
		if err != nil {
			return nil, err
		}
		if g, ok := game.(*kitchen.Game); ok {
			return g.Level(), nil
		}
	}
	if _, err := os.Stat(arg); err == nil {
		lvl, err := level.LoadFile(arg)
		if err != nil {
			return nil, err
		}
		return &lvl, nil
	}
	return nil, fmt.Errorf("unknown level %q (run 'kitchen list')", arg)
}
