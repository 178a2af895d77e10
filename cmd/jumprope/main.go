// jumprope is a one-button jump-rope runner for the terminal and the desktop.
//
// Usage:
//
//	jumprope                  - Title menu (play, difficulty, high scores)
//	jumprope play             - Play in the terminal
//	jumprope window           - Play in a desktop window
//	jumprope list             - List registered games
//	jumprope scores [game]    - Show high scores
//	jumprope config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.jumprope/scores.db)
//	--config <path>      - Use a custom YAML config
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register games
	_ "github.com/vovakirdan/jumprope/internal/games/jumprope"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagMute       bool
	flagStrict     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumprope",
	Short: "Jump Rope - a one-button arcade runner",
	Long: `Jump Rope is a one-button arcade runner. Time your taps to the swinging
rope, land clean jumps for points and beat the clock to clear the level.

Running jumprope with no command opens the title menu.

Examples:
  jumprope
  jumprope play --difficulty hard
  jumprope window --backdrop-dir ./assets
  jumprope scores --board
  jumprope config > my.yaml`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.jumprope/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "~/.jumprope/jumprope.log", "Log file path (empty disables logging)")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")
	pf.BoolVar(&flagMute, "mute", false, "Start without sound output")
	pf.BoolVar(&flagStrict, "strict", false, "Panic on engine invariant violations (development)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
