package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change the speed,
Enter to select. After a game, Esc returns to the menu.

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger("tetris")

	if _, err := tetris.LoadConfig(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	speed, _ := config.ParseSpeedPreset(flagSpeed)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, tetris.GameID, speed, cfg)
		if err != nil {
			return err
		}

		// Keep size and speed changes for the next round
		cfg = menuResult.Config
		speed = menuResult.Speed

		switch menuResult.Choice {
		case tui.MenuChoiceScores:
			goBack, err := tui.RunScoreboard(store, tetris.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case tui.MenuChoicePlay:
			game, err := registry.Create(tetris.GameID)
			if err != nil {
				return err
			}
			if g, ok := game.(*tetris.Game); ok {
				g.SetSpeed(speed)
			}

			// Fresh seed for each game unless one was pinned
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}

			backToMenu, err := tui.Run(game, store, cfg, nil)
			if err != nil {
				return fmt.Errorf("run game: %w", err)
			}
			if !backToMenu {
				return nil
			}

		default:
			return nil
		}
	}
}
