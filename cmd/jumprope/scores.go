package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumprope/internal/games/jumprope"
	"github.com/vovakirdan/jumprope/internal/platform/tui"
	"github.com/vovakirdan/jumprope/internal/registry"
	"github.com/vovakirdan/jumprope/internal/storage"
)

var flagBoard bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 runs for a game (default: jumprope).

Examples:
  jumprope scores
  jumprope scores --board`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := jumprope.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'jumprope list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagBoard {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, gameID, gameID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", gameID)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'jumprope play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-7s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-7s  %s\n", "----", "-----", "-----", "------", "----")
	for i, r := range scores {
		result := "-"
		if r.Won {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-7s  %s\n", i+1, r.Score, r.Level, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("\nBest: %d\n", best)
	}
	return nil
}
