package tetris

// Event is a notification emitted by a session for collaborators to react
// to. The set of implementations is closed.
type Event interface {
	sessionEvent()
}

// GameStarted is emitted when a new game begins.
type GameStarted struct {
	RunID string
}

func (GameStarted) sessionEvent() {}

// PieceSpawned is emitted when a piece becomes active.
type PieceSpawned struct {
	Family Family
	ID     uint64
}

func (PieceSpawned) sessionEvent() {}

// PieceLocked is emitted when the active piece merges into the board.
type PieceLocked struct {
	Family Family
	ID     uint64
	Pos    Position
}

func (PieceLocked) sessionEvent() {}

// RowsCleared is emitted after a lock that completed one or more rows.
type RowsCleared struct {
	Count int
	Score int // score after the clear
}

func (RowsCleared) sessionEvent() {}

// StateChanged is emitted on every run-state transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) sessionEvent() {}

// GameOver is emitted when the next piece cannot spawn.
type GameOver struct {
	RunID   string
	Score   int
	Lines   int
	Elapsed int
}

func (GameOver) sessionEvent() {}

// Listener receives session events in the order they were produced.
// Listeners must not dispatch commands to the session that notifies them.
type Listener func(Event)
