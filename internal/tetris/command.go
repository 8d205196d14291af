package tetris

// State is the run state of a session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Command is one of the closed set of inputs a session accepts. Player
// input, drop-timer ticks and elapsed-time ticks all arrive as commands.
type Command int

const (
	CmdStart Command = iota
	CmdPause
	CmdResume
	CmdMoveLeft
	CmdMoveRight
	CmdMoveDown
	CmdRotate
	CmdDropTick  // periodic fall trigger
	CmdClockTick // one elapsed second
)

// Commands returns every command, for exhaustive table tests.
func Commands() []Command {
	return []Command{
		CmdStart, CmdPause, CmdResume,
		CmdMoveLeft, CmdMoveRight, CmdMoveDown, CmdRotate,
		CmdDropTick, CmdClockTick,
	}
}

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdMoveDown:
		return "move_down"
	case CmdRotate:
		return "rotate"
	case CmdDropTick:
		return "drop_tick"
	case CmdClockTick:
		return "clock_tick"
	default:
		return "unknown"
	}
}

// Outcome describes what a dispatched command did.
type Outcome struct {
	Command Command
	Applied bool // false when the transition table has no entry for (From, Command)
	From    State
	To      State

	// Move is set for MoveLeft, MoveRight and Rotate.
	Move MoveResult
	// Drop and Cleared are set for MoveDown and DropTick.
	Drop    DropOutcome
	Cleared int

	Events []Event
}
