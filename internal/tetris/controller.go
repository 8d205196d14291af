package tetris

import "errors"

// ErrSpawnBlocked is returned by Controller.Spawn when the spawn position is
// occupied. The session turns it into the game-over transition.
var ErrSpawnBlocked = errors.New("tetris: spawn position blocked")

// MoveResult is the outcome of a horizontal move or a rotation.
type MoveResult int

const (
	Moved MoveResult = iota
	Illegal
	NoActivePiece
)

// String returns a human-readable name for the result.
func (r MoveResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case Illegal:
		return "illegal"
	case NoActivePiece:
		return "no active piece"
	default:
		return "unknown"
	}
}

// DropOutcome is the outcome of a downward move.
type DropOutcome int

const (
	DropMoved DropOutcome = iota
	DropLocked
	DropNoActivePiece
)

// String returns a human-readable name for the outcome.
func (o DropOutcome) String() string {
	switch o {
	case DropMoved:
		return "moved"
	case DropLocked:
		return "locked"
	case DropNoActivePiece:
		return "no active piece"
	default:
		return "unknown"
	}
}

// DropResult reports what MoveDown did. On DropLocked, Board is the board
// after merge and row clearing and Cleared is the number of rows removed;
// otherwise Board is the unchanged input board.
type DropResult struct {
	Outcome DropOutcome
	Cleared int
	Board   Board
	Piece   Piece // the piece that locked, for DropLocked
}

// Controller owns the single active piece. It never holds a board; every
// attempt is checked against the locked board passed in, which does not
// include the active piece.
type Controller struct {
	active *Piece
}

// Active returns a copy of the active piece, or nil when there is none.
func (c *Controller) Active() *Piece {
	if c.active == nil {
		return nil
	}
	p := *c.active
	return &p
}

// HasActive reports whether a piece is currently falling.
func (c *Controller) HasActive() bool {
	return c.active != nil
}

// Clear discards the active piece.
func (c *Controller) Clear() {
	c.active = nil
}

// Spawn places p at the board's spawn position with the given id.
// On ErrSpawnBlocked the controller is left without an active piece.
func (c *Controller) Spawn(b Board, p Piece, id uint64) error {
	c.active = nil
	if !b.CanSpawn(p.Shape) {
		return ErrSpawnBlocked
	}
	p.ID = id
	p.Pos = b.SpawnPosition()
	c.active = &p
	return nil
}

// MoveLeft shifts the active piece one column left if it fits.
func (c *Controller) MoveLeft(b Board) MoveResult {
	return c.shift(b, 0, -1)
}

// MoveRight shifts the active piece one column right if it fits.
func (c *Controller) MoveRight(b Board) MoveResult {
	return c.shift(b, 0, 1)
}

func (c *Controller) shift(b Board, dRow, dCol int) MoveResult {
	if c.active == nil {
		return NoActivePiece
	}
	candidate := c.active.Pos.Add(dRow, dCol)
	if !b.HasSpace(c.active.Shape, candidate) {
		return Illegal
	}
	c.active.Pos = candidate
	return Moved
}

// Rotate turns the active piece a quarter clockwise in place. There is no
// wall kick: if the rotated shape does not fit at the same position the
// piece is left as it was.
func (c *Controller) Rotate(b Board) MoveResult {
	if c.active == nil {
		return NoActivePiece
	}
	rotated := c.active.Shape.Rotate()
	if !b.HasSpace(rotated, c.active.Pos) {
		return Illegal
	}
	c.active.Shape = rotated
	return Moved
}

// MoveDown shifts the active piece one row down. When the piece cannot
// move it locks: it is merged into the board, completed rows are cleared,
// and the controller is left empty.
func (c *Controller) MoveDown(b Board) DropResult {
	if c.active == nil {
		return DropResult{Outcome: DropNoActivePiece, Board: b}
	}
	candidate := c.active.Pos.Add(1, 0)
	if b.HasSpace(c.active.Shape, candidate) {
		c.active.Pos = candidate
		return DropResult{Outcome: DropMoved, Board: b}
	}

	locked := *c.active
	c.active = nil
	merged, cleared := b.Merge(locked).ClearCompletedRows()
	return DropResult{Outcome: DropLocked, Cleared: cleared, Board: merged, Piece: locked}
}
