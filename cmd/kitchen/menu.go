package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/games/kitchen"
	"github.com/vovakirdan/kitchen-defense/internal/platform/tui"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a level.
After a level ends you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Toggle the CPU partner for player 2
  H            - Results
  Q            - Quit

Examples:
  kitchen menu
  kitchen menu --fps 20
  kitchen menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	partner := flagPartner

	for {
		menuResult, err := tui.RunMenu(store, cfg, partner)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		partner = menuResult.Partner

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			continue
		}
		if k, ok := game.(*kitchen.Game); ok {
			seat := coop.Human
			if partner {
				seat = coop.CPU
			}
			k.Match().SetController(coop.Player2, seat)
		}

		// a fresh seed per run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:      store,
			Logger:     e.logger,
			Difficulty: string(e.preset),
			Mode:       coop.ModeLocal,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}
	}
}
