package tetris

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Defaults for a standard game.
const (
	DefaultRows         = 20
	DefaultCols         = 10
	DefaultScorePerLine = 100
)

// Options configures a session. Zero fields take the defaults above.
type Options struct {
	Rows         int
	Cols         int
	ScorePerLine int
	PreviewSize  int
	Seed         int64
	// Rand overrides the seeded generator, mainly for tests.
	Rand Rand
}

func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Cols <= 0 {
		o.Cols = DefaultCols
	}
	if o.ScorePerLine <= 0 {
		o.ScorePerLine = DefaultScorePerLine
	}
	if o.PreviewSize <= 0 {
		o.PreviewSize = DefaultPreviewSize
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(o.Seed))
	}
	return o
}

// Session is one play of the game. All commands go through Dispatch, which
// applies each one completely before the next is admitted, so a drop tick
// and a key press arriving together can never both act on the same stale
// board and position.
type Session struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	opts Options
	rng  Rand

	state      State
	runID      string
	score      int
	elapsed    int
	lines      int
	pieceCount uint64

	board      Board
	controller Controller
	queue      Queue

	listeners []Listener
}

// NewSession creates a session in StateNotStarted with an empty board.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		opts:  opts,
		rng:   opts.Rand,
		state: StateNotStarted,
		board: NewBoard(opts.Rows, opts.Cols),
		queue: NewQueue(opts.PreviewSize, opts.Rand),
	}
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies one command. Concurrent callers are serialized; none is
// dropped. Listeners are notified after the session lock is released, in
// the order the commands were applied.
func (s *Session) Dispatch(cmd Command) Outcome {
	s.mu.Lock()
	out := Outcome{Command: cmd, From: s.state}
	if apply, ok := transitions[transitionKey{s.state, cmd}]; ok {
		out.Applied = true
		apply(s, &out)
	}
	out.To = s.state
	listeners := s.listeners

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, evt := range out.Events {
		for _, l := range listeners {
			l(evt)
		}
	}
	return out
}

// StartNewGame resets the board and counters and spawns the first piece.
// It is accepted in every state and discards any game in progress.
func (s *Session) StartNewGame() Outcome { return s.Dispatch(CmdStart) }

// PauseGame freezes a running game.
func (s *Session) PauseGame() Outcome { return s.Dispatch(CmdPause) }

// ResumeGame continues a paused game.
func (s *Session) ResumeGame() Outcome { return s.Dispatch(CmdResume) }

// MoveLeft attempts to shift the active piece one column left.
func (s *Session) MoveLeft() Outcome { return s.Dispatch(CmdMoveLeft) }

// MoveRight attempts to shift the active piece one column right.
func (s *Session) MoveRight() Outcome { return s.Dispatch(CmdMoveRight) }

// MoveDown attempts to shift the active piece one row down, locking it
// when it cannot move.
func (s *Session) MoveDown() Outcome { return s.Dispatch(CmdMoveDown) }

// Rotate attempts a clockwise quarter turn of the active piece.
func (s *Session) Rotate() Outcome { return s.Dispatch(CmdRotate) }

// DropTick is the periodic fall trigger.
func (s *Session) DropTick() Outcome { return s.Dispatch(CmdDropTick) }

// ClockTick advances elapsed time by one second.
func (s *Session) ClockTick() Outcome { return s.Dispatch(CmdClockTick) }

// transitions; called with s.mu held.

func (s *Session) startGame(out *Outcome) {
	s.board = NewBoard(s.opts.Rows, s.opts.Cols)
	s.controller.Clear()
	s.queue = NewQueue(s.opts.PreviewSize, s.rng)
	s.score = 0
	s.elapsed = 0
	s.lines = 0
	s.pieceCount = 0
	s.runID = uuid.NewString()

	out.Events = append(out.Events, GameStarted{RunID: s.runID})
	s.setState(StateRunning, out)
	s.spawnNext(out)
}

func (s *Session) pause(out *Outcome) {
	s.setState(StatePaused, out)
}

func (s *Session) resume(out *Outcome) {
	s.setState(StateRunning, out)
}

func (s *Session) moveLeft(out *Outcome) {
	out.Move = s.controller.MoveLeft(s.board)
}

func (s *Session) moveRight(out *Outcome) {
	out.Move = s.controller.MoveRight(s.board)
}

func (s *Session) rotate(out *Outcome) {
	out.Move = s.controller.Rotate(s.board)
}

func (s *Session) moveDown(out *Outcome) {
	res := s.controller.MoveDown(s.board)
	out.Drop = res.Outcome
	if res.Outcome != DropLocked {
		return
	}

	s.board = res.Board
	out.Cleared = res.Cleared
	out.Events = append(out.Events, PieceLocked{Family: res.Piece.Family, ID: res.Piece.ID, Pos: res.Piece.Pos})
	if res.Cleared > 0 {
		s.lines += res.Cleared
		s.score += res.Cleared * s.opts.ScorePerLine
		out.Events = append(out.Events, RowsCleared{Count: res.Cleared, Score: s.score})
	}
	s.spawnNext(out)
}

func (s *Session) clockTick(_ *Outcome) {
	s.elapsed++
}

// spawnNext consumes the queue front and makes it the active piece, or
// ends the game when it does not fit.
func (s *Session) spawnNext(out *Outcome) {
	var fam Family
	fam, s.queue = s.queue.Next(s.rng)
	s.pieceCount++
	if err := s.controller.Spawn(s.board, Instantiate(fam), s.pieceCount); err != nil {
		s.setState(StateOver, out)
		out.Events = append(out.Events, GameOver{RunID: s.runID, Score: s.score, Lines: s.lines, Elapsed: s.elapsed})
		return
	}
	out.Events = append(out.Events, PieceSpawned{Family: fam, ID: s.pieceCount})
}

func (s *Session) setState(next State, out *Outcome) {
	if next == s.state {
		return
	}
	out.Events = append(out.Events, StateChanged{From: s.state, To: next})
	s.state = next
}

// Queries.

// State returns the current run state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Elapsed returns whole seconds played while running.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// LinesCleared returns the total number of rows cleared this game.
func (s *Session) LinesCleared() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// RunID returns the identifier of the current game, empty before the first
// start.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Preview returns the upcoming families, next first.
func (s *Session) Preview() []Family {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Preview()
}

// Active returns a copy of the falling piece, or nil.
func (s *Session) Active() *Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Active()
}

// Board returns the locked board, without the active piece.
func (s *Session) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// Grid returns the renderable grid: locked cells with the active piece
// composited on top.
func (s *Session) Grid() [][]Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Overlay(s.controller.Active())
}
