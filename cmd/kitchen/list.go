package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kitchen-defense/internal/games/kitchen"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and any loaded with --levels.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	e, err := newEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-16s  %5s  %5s\n", maxIDLen, "ID", "Title", "Waves", "Lives")
	fmt.Printf("  %-*s  %-16s  %5s  %5s\n", maxIDLen, "--", "-----", "-----", "-----")

	for _, g := range games {
		waves, lives := "-", "-"
		if inst, err := registry.Create(g.ID); err == nil {
			if k, ok := inst.(*kitchen.Game); ok {
				waves = fmt.Sprint(len(k.Level().Waves))
				lives = fmt.Sprint(k.Level().PortalLives)
			}
		}
		fmt.Printf("  %-*s  %-16s  %5s  %5s\n", maxIDLen, g.ID, g.Title, waves, lives)
	}

	fmt.Println()
	fmt.Println("Run 'kitchen play <id>' to play a level.")
	return nil
}
