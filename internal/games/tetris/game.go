// Package tetris adapts the falling-block engine to the arcade platform:
// it turns per-frame input into engine commands, converts frame time into
// drop and clock ticks, and draws the session into a core.Screen.
package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// GameID is the registry and score-table identifier.
const GameID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// speedPreset stores the speed preset set via CLI
var speedPreset config.SpeedPreset

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpeedPreset sets the speed preset from a CLI flag.
// Unknown names are ignored; the CLI validates them first.
func SetSpeedPreset(name string) {
	preset, err := config.ParseSpeedPreset(name)
	if err != nil {
		return
	}
	speedPreset = preset
}

// LoadConfig resolves the configuration the way the game does on Reset:
// file search order, environment overrides, then the speed preset.
func LoadConfig() (config.TetrisConfig, error) {
	return loadConfig(speedPreset)
}

func loadConfig(preset config.SpeedPreset) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		return config.DefaultTetrisConfig(), err
	}
	config.ApplySpeedPreset(&cfg, preset)
	return cfg, nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of an engine session.
type Game struct {
	cfg      config.TetrisConfig
	fixedCfg bool // cfg was injected and is not reloaded on Reset
	speed    config.SpeedPreset

	session *engine.Session
	frame   time.Duration
	dropAcc time.Duration
	tickAcc time.Duration
	frames  uint64

	layout   layout
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game that loads its configuration on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed configuration.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

// SetSpeed picks the speed preset for this game only, overriding the
// process-wide one. It takes effect on the next Reset.
func (g *Game) SetSpeed(p config.SpeedPreset) {
	g.speed = p
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset discards any game in progress and builds a fresh, not yet started
// session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		preset := speedPreset
		if g.speed != "" {
			preset = g.speed
		}
		loaded, err := loadConfig(preset)
		if err != nil {
			loaded = config.DefaultTetrisConfig()
		}
		g.cfg = loaded
	}

	g.session = engine.NewSession(engine.Options{
		Rows:         g.cfg.Board.Rows,
		Cols:         g.cfg.Board.Columns,
		ScorePerLine: g.cfg.Scoring.ScorePerLine,
		PreviewSize:  g.cfg.Preview.Size,
		Seed:         cfg.Seed,
	})
	g.frame = cfg.FrameDuration()
	g.dropAcc = 0
	g.tickAcc = 0
	g.frames = 0
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize recomputes the layout without touching the game in progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout = computeLayout(g.cfg.Board.Rows, g.cfg.Board.Columns, g.cfg.Preview.Size)
	g.tooSmall = w < g.layout.width || h < g.layout.height
	g.layout.center(w, h)
}

// Step applies the frame's actions in order, then advances the drop and
// clock timers by one frame. Timers only run while the session is Running
// and restart from zero whenever it enters Running.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frames++
	before := g.session.State()
	var res core.StepResult

	for _, a := range in.Actions {
		if cmd, ok := g.command(a); ok {
			out := g.session.Dispatch(cmd)
			res.Cleared += out.Cleared
			if out.From != out.To && out.To == engine.StateRunning {
				g.dropAcc, g.tickAcc = 0, 0
			}
		}
	}

	if !g.tooSmall {
		res.Cleared += g.advanceTimers()
	}

	res.State = g.State()
	res.Ended = before != engine.StateOver && g.session.State() == engine.StateOver
	return res
}

// command maps an action to the engine command it triggers in the current
// state. Pause toggles; Confirm only starts a game that has not begun.
func (g *Game) command(a core.Action) (engine.Command, bool) {
	state := g.session.State()
	switch a {
	case core.ActionLeft:
		return engine.CmdMoveLeft, true
	case core.ActionRight:
		return engine.CmdMoveRight, true
	case core.ActionDown:
		return engine.CmdMoveDown, true
	case core.ActionRotate:
		return engine.CmdRotate, true
	case core.ActionRestart:
		return engine.CmdStart, true
	case core.ActionConfirm:
		if state == engine.StateNotStarted {
			return engine.CmdStart, true
		}
	case core.ActionPause:
		if state == engine.StatePaused {
			return engine.CmdResume, true
		}
		return engine.CmdPause, true
	}
	return 0, false
}

func (g *Game) advanceTimers() int {
	if g.session.State() != engine.StateRunning {
		return 0
	}
	drop := g.cfg.Timing.DropInterval()
	tick := g.cfg.Timing.TickInterval()
	cleared := 0

	g.dropAcc += g.frame
	for drop > 0 && g.dropAcc >= drop {
		g.dropAcc -= drop
		out := g.session.DropTick()
		cleared += out.Cleared
		if out.To != engine.StateRunning {
			return cleared
		}
	}

	g.tickAcc += g.frame
	for tick > 0 && g.tickAcc >= tick {
		g.tickAcc -= tick
		g.session.ClockTick()
	}
	return cleared
}

// State returns the current game state for the platform.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Lines:    snap.Lines,
		Elapsed:  snap.Elapsed,
		Started:  snap.State != engine.StateNotStarted,
		GameOver: snap.State == engine.StateOver,
		Paused:   snap.State == engine.StatePaused,
	}
}

// RunID returns the identifier of the current play.
func (g *Game) RunID() string {
	if g.session == nil {
		return ""
	}
	return g.session.RunID()
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Config returns the configuration in effect since the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}
