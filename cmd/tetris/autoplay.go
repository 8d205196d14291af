package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/headless"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	flagGames     int
	flagMoveEvery time.Duration
	flagDrop      time.Duration
	flagNoSave    bool
	flagVerbose   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a random bot play headless games",
	Long: `Run games without a terminal UI. A bot presses random keys while
real timers drive gravity and the clock. Results are saved like any
other game unless --no-save is given.

Examples:
  tetris autoplay
  tetris autoplay --games 5 --drop 100ms --move-every 20ms
  tetris autoplay --seed 42 --verbose`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
	autoplayCmd.Flags().DurationVar(&flagMoveEvery, "move-every", 50*time.Millisecond, "Delay between bot moves")
	autoplayCmd.Flags().DurationVar(&flagDrop, "drop", 0, "Drop interval (0 = from config)")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store results")
	autoplayCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every lock and clear")
}

// botMoves weights moving down so games end in reasonable time.
var botMoves = []engine.Command{
	engine.CmdMoveLeft,
	engine.CmdMoveRight,
	engine.CmdRotate,
	engine.CmdMoveDown,
	engine.CmdMoveDown,
}

func runAutoplay(cmd *cobra.Command, _ []string) error {
	logger := newLogger("autoplay")
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	if flagMoveEvery <= 0 {
		return fmt.Errorf("--move-every must be positive, got %s", flagMoveEvery)
	}

	cfg, err := tetris.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for i := range flagGames {
		res, err := autoplayGame(ctx, cfg, seed+int64(i), logger)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("interrupted")
				return nil
			}
			return err
		}

		logger.Info("game over",
			"game", i+1,
			"score", res.Score,
			"lines", res.Lines,
			"elapsed", tetris.FormatElapsed(res.Elapsed),
		)

		if store != nil {
			_, err := store.SaveResult(storage.Result{
				GameID:   tetris.GameID,
				RunID:    res.RunID,
				Score:    res.Score,
				Lines:    res.Lines,
				Duration: res.Elapsed,
			})
			if err != nil {
				logger.Error("could not save result", "error", err)
			}
		}
	}
	return nil
}

// autoplayGame plays one game to the end. The headless loop owns the
// session; the bot only sends commands.
func autoplayGame(parent context.Context, cfg config.TetrisConfig, seed int64, logger *log.Logger) (engine.GameOver, error) {
	session := engine.NewSession(engine.Options{
		Rows:         cfg.Board.Rows,
		Cols:         cfg.Board.Columns,
		ScorePerLine: cfg.Scoring.ScorePerLine,
		PreviewSize:  cfg.Preview.Size,
		Seed:         seed,
	})

	over := make(chan engine.GameOver, 1)
	session.Subscribe(func(ev engine.Event) {
		switch e := ev.(type) {
		case engine.GameStarted:
			logger.Debug("game started", "run", e.RunID, "seed", seed)
		case engine.PieceLocked:
			logger.Debug("piece locked", "family", e.Family, "row", e.Pos.Row, "col", e.Pos.Col)
		case engine.RowsCleared:
			logger.Debug("rows cleared", "count", e.Count, "score", e.Score)
		case engine.GameOver:
			select {
			case over <- e:
			default:
			}
		}
	})

	drop := flagDrop
	if drop <= 0 {
		drop = cfg.Timing.DropInterval()
	}
	loop := headless.New(session, headless.Config{
		Drop:   headless.NewTickerTrigger(drop),
		Clock:  headless.NewTickerTrigger(cfg.Timing.TickInterval()),
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var result engine.GameOver
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		// Stops the loop once the game is over.
		defer cancel()
		res, err := runBot(gctx, loop, rand.New(rand.NewSource(seed)), over)
		result = res
		return err
	})

	err := g.Wait()
	if result.RunID != "" {
		return result, nil
	}
	if parent.Err() != nil {
		return result, parent.Err()
	}
	return result, err
}

func runBot(ctx context.Context, loop *headless.Loop, rng *rand.Rand, over <-chan engine.GameOver) (engine.GameOver, error) {
	if err := loop.Send(ctx, engine.CmdStart); err != nil {
		return engine.GameOver{}, err
	}

	ticker := time.NewTicker(flagMoveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return engine.GameOver{}, ctx.Err()
		case res := <-over:
			return res, nil
		case <-ticker.C:
			move := botMoves[rng.Intn(len(botMoves))]
			if err := loop.Send(ctx, move); err != nil {
				return engine.GameOver{}, err
			}
		}
	}
}
