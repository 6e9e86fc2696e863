// kitchen is a couch-coop tower defense for the terminal: two players share
// one keyboard and one pantry, cook towers and feed the hungry crowd before
// it reaches the portal.
//
// Usage:
//
//	kitchen list                - List available levels
//	kitchen play <level>        - Play a level
//	kitchen menu                - Pick levels interactively
//	kitchen simulate <level>    - Run a level headless with the autoplayer
//	kitchen validate <files...> - Check level files
//	kitchen scores [level]      - Show stored results
//	kitchen serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Simulation tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Results database (default: ~/.kitchen/results.db)
//	--config <path>       - Tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Extra level directory
//	--sound               - Play tones for game events
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the built-in levels
	_ "github.com/vovakirdan/kitchen-defense/internal/games/kitchen"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagSound      bool
	flagLogFile    string
	flagVerbose    bool
	flagPartner    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kitchen",
	Short: "Kitchen Defense - couch-coop tower defense in your terminal",
	Long: `Kitchen Defense is a two-player tower defense played on one keyboard.
Hungry creatures walk from their spawn to your portal. Cook towers from the
shared pantry, throw food at the crowd and satisfy everyone before the
portal runs out of lives.

Available commands:
  list      - Show all levels
  play      - Play a level directly
  menu      - Interactive level picker
  simulate  - Run a level headless with the autoplayer
  validate  - Check level files
  scores    - View stored results
  serve     - Start SSH server for remote play

Examples:
  kitchen list
  kitchen play corn-road
  kitchen play twin-doors --partner
  kitchen simulate popcorn-pass --seed 7
  kitchen serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Simulation tick rate (ticks per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.kitchen/results.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	pf.BoolVar(&flagSound, "sound", false, "Play tones for game events")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every simulation event")
	pf.BoolVar(&flagPartner, "partner", false, "Start with the CPU playing seat 2")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
