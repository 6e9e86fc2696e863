package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kitchen-defense/internal/platform/tui"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
	"github.com/vovakirdan/kitchen-defense/internal/storage"
)

var (
	flagScoresPlain  bool
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show stored results",
	Long: `Display the best runs of a level, or the latest runs of every level.

Without --plain the interactive scoreboard opens.

Examples:
  kitchen scores
  kitchen scores corn-road --plain
  kitchen scores --plain --recent
  kitchen scores corn-road --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a table instead of opening the scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Latest runs of every level (with --plain)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored results of the level")
}

func runScores(_ *cobra.Command, args []string) error {
	e, err := newEnv(!flagScoresPlain)
	if err != nil {
		return err
	}
	defer e.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if !registry.Exists(levelID) {
			return fmt.Errorf("unknown level %q (run 'kitchen list')", levelID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if levelID == "" {
			return errors.New("--clear needs a level")
		}
		if err := store.ClearResults(levelID); err != nil {
			return err
		}
		fmt.Printf("Results of %s cleared.\n", levelID)
		return nil
	}

	if !flagScoresPlain {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, levelID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	var (
		results []storage.Result
		title   string
	)
	switch {
	case flagScoresRecent || levelID == "":
		title = "Recent runs"
		results, err = store.RecentResults(10)
	default:
		game, cerr := registry.Create(levelID)
		if cerr != nil {
			return cerr
		}
		title = "Best runs - " + game.Title()
		results, err = store.TopResults(levelID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-6s  %6s  %5s  %4s  %-8s  %s\n", "Rank", "Level", "Result", "Score", "Waves", "Fed", "Mode", "Date")
	fmt.Printf("  %-4s  %-14s  %-6s  %6s  %5s  %4s  %-8s  %s\n", "----", "-----", "------", "-----", "-----", "---", "----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-14s  %-6s  %6d  %5d  %4d  %-8s  %s\n",
			i+1, r.LevelID, r.Outcome, r.Score, r.Waves, r.Sated, r.Mode, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if levelID != "" {
		fmt.Println()
		if best, err := store.BestScore(levelID); err == nil {
			won, lost, _ := store.Record(levelID)
			fmt.Printf("Best: %d  (won %d, lost %d)\n", best, won, lost)
		}
	}
	return nil
}
