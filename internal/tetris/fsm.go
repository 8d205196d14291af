package tetris

// transitionKey indexes the transition table.
type transitionKey struct {
	state State
	cmd   Command
}

// transition applies one (state, command) pair. It runs with the session
// lock held and records its effects in out.
type transition func(s *Session, out *Outcome)

// transitions is the complete behaviour of a session. Pairs missing from
// the table are ignored: movement while paused or over, pause while paused,
// ticks outside Running, and so on.
var transitions = map[transitionKey]transition{
	{StateNotStarted, CmdStart}: (*Session).startGame,
	{StateRunning, CmdStart}:    (*Session).startGame,
	{StatePaused, CmdStart}:     (*Session).startGame,
	{StateOver, CmdStart}:       (*Session).startGame,

	{StateRunning, CmdPause}:  (*Session).pause,
	{StatePaused, CmdResume}: (*Session).resume,

	{StateRunning, CmdMoveLeft}:  (*Session).moveLeft,
	{StateRunning, CmdMoveRight}: (*Session).moveRight,
	{StateRunning, CmdRotate}:    (*Session).rotate,
	{StateRunning, CmdMoveDown}:  (*Session).moveDown,
	{StateRunning, CmdDropTick}:  (*Session).moveDown,
	{StateRunning, CmdClockTick}: (*Session).clockTick,
}

// Accepts reports whether the table has an entry for cmd in state.
func Accepts(state State, cmd Command) bool {
	_, ok := transitions[transitionKey{state, cmd}]
	return ok
}
