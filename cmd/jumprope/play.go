package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/games/jumprope"
	"github.com/vovakirdan/jumprope/internal/platform/tui"
	"github.com/vovakirdan/jumprope/internal/platform/window"
	"github.com/vovakirdan/jumprope/internal/registry"
)

var flagBackdropDir string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Enter/Up/Click - Tap (start, pause, resume, play again)
  P/Esc                - Pause
  R                    - Restart (after the run ends or while paused)
  M                    - Toggle sound
  Ctrl+S               - Save a screenshot
  Q/Ctrl+C             - Quit

Difficulty options:
  easy   - Start at lowest difficulty, longer clock, lower target
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, shorter clock, higher target
  fixed  - No progression, stays at config's initial level

Examples:
  jumprope play
  jumprope play --difficulty easy
  jumprope play --seed 42 --config ./my-jumprope.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a run in a desktop window. Theme images named in the config are
loaded in the background from --backdrop-dir; until one is ready the theme's
flat color is shown.

Examples:
  jumprope window
  jumprope window --backdrop-dir ./assets/backdrops`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagBackdropDir, "backdrop-dir", "", "Directory with theme images")
}

func runPlay(_ *cobra.Command, _ []string) error {
	e := openEnv(true)
	defer e.close()
	return playTerminal(e, settings(), runtimeConfig())
}

func playTerminal(e *env, s registry.Settings, rt core.RuntimeConfig) error {
	game, err := registry.Create(jumprope.GameID, s)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	final, err := tui.Run(game, tui.Options{
		Runtime: rt,
		Prefs:   e.prefs,
		Results: e.results,
		Audio:   e.audioOut(),
		Logger:  e.logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	e.logger.Info("session over", "score", final.Score, "best", final.HighScore, "level", final.Level)
	return nil
}

func runWindow(_ *cobra.Command, _ []string) error {
	e := openEnv(true)
	defer e.close()

	cfg, _, err := config.LoadJumpRope(flagConfig)
	if err != nil {
		return err
	}
	var images []string
	for _, th := range cfg.Background.Themes {
		if th.Image != "" {
			images = append(images, th.Image)
		}
	}

	game, err := registry.Create(jumprope.GameID, settings())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	rt := runtimeConfig()
	rt.ScreenW = int(cfg.Screen.Width)
	rt.ScreenH = int(cfg.Screen.Height)

	final, err := window.Run(game, window.Options{
		Runtime:     rt,
		Prefs:       e.prefs,
		Results:     e.results,
		Audio:       e.audioOut(),
		Logger:      e.logger,
		BackdropDir: flagBackdropDir,
		Images:      images,
	})
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	e.logger.Info("session over", "score", final.Score, "best", final.HighScore, "level", final.Level)
	return nil
}

// runMenu loops between the title menu, runs and the scoreboard.
func runMenu(_ *cobra.Command, _ []string) error {
	e := openEnv(true)
	defer e.close()

	preset := config.DifficultyNormal
	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		preset = p
	}

	title := jumprope.GameID
	for _, info := range registry.List() {
		if info.ID == jumprope.GameID {
			title = info.Title
		}
	}
	cfg := runtimeConfig()

	for {
		best, _ := e.prefs.Get(jumprope.HighScoreKey)
		res, err := tui.RunMenu(title, best, preset, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		preset = res.Difficulty

		switch res.Choice {
		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(e.store, jumprope.GameID, title, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}
		case tui.ChoicePlay:
			rt := cfg
			if flagSeed == 0 {
				rt.Seed = time.Now().UnixNano()
			}
			s := settings()
			s.Difficulty = string(preset)
			if err := playTerminal(e, s, rt); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		default:
			return nil
		}
	}
}
