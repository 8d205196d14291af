package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing straight away.

Controls:
  Left/A, Right/D  - Move the piece
  Down/S           - Move the piece down one row
  Up/W             - Rotate clockwise
  P                - Pause/resume
  R/Space          - Start a new game
  Esc              - Leave (when paused or over)
  Q/Ctrl+C         - Quit

Speed options:
  easy   - Pieces drop every 1.5s
  normal - Pieces drop every second
  hard   - Pieces drop every 0.4s
  fixed  - Use the config's drop interval

Examples:
  tetris play
  tetris play --speed hard
  tetris play --config ./my-tetris.yaml
  tetris play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
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

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger("tetris")

	// Surface config errors before the alternate screen hides them
	if _, err := tetris.LoadConfig(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	game, err := registry.Create(tetris.GameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig(), nil); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
