package tetris

import engine "github.com/vovakirdan/tui-tetris/internal/tetris"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	engine.Snapshot
	Frames   uint64
	TooSmall bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return Snapshot{
		Snapshot: g.session.Snapshot(),
		Frames:   g.frames,
		TooSmall: g.tooSmall,
	}
}
