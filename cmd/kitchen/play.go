package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/platform/tui"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level with two players on one keyboard.

Controls:
  Player 1      W A S D move, Q/E recipe, F cook, Space throw
  Player 2      Arrows move, ,/. recipe, / cook, Enter throw
  P             Pause
  R             Restart (after the level ended)
  Tab           Hand player 2 to the CPU and back
  ?             All keys
  Esc/Ctrl+C    Quit

Difficulty options:
  easy   - Slower, less hungry crowd; progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  kitchen play corn-road
  kitchen play popcorn-pass --difficulty hard
  kitchen play twin-doors --partner
  kitchen play my-level --levels ./levels`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	levelID := args[0]
	if !registry.Exists(levelID) {
		return fmt.Errorf("unknown level %q (run 'kitchen list')", levelID)
	}
	game, err := registry.Create(levelID)
	if err != nil {
		return fmt.Errorf("creating level: %w", err)
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:      store,
		Logger:     e.logger,
		Difficulty: string(e.preset),
		Mode:       coop.ModeLocal,
	})
}
