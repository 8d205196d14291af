package tetris

// Snapshot captures the complete observable session state for determinism
// tests and for the platform layer's per-frame rendering.
type Snapshot struct {
	State   State
	Score   int
	Elapsed int
	Lines   int
	Pieces  uint64 // pieces spawned this game

	Active  *Piece
	Preview []Family
	Board   Board
	Grid    [][]Cell
}

// Snapshot returns a consistent copy of the session state under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.controller.Active()
	return Snapshot{
		State:   s.state,
		Score:   s.score,
		Elapsed: s.elapsed,
		Lines:   s.lines,
		Pieces:  s.pieceCount,
		Active:  active,
		Preview: s.queue.Preview(),
		Board:   s.board,
		Grid:    s.board.Overlay(active),
	}
}
