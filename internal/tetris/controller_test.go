package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnPlacesAtSpawnPosition(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyO), 1))

	p := c.Active()
	require.NotNil(t, p)
	assert.Equal(t, Position{0, 4}, p.Pos)
	assert.Equal(t, uint64(1), p.ID)

	grid := b.Overlay(p)
	for _, pos := range []Position{{0, 4}, {0, 5}, {1, 4}, {1, 5}} {
		assert.True(t, grid[pos.Row][pos.Col].Occupied, "%v", pos)
	}
}

func TestSpawnBlocked(t *testing.T) {
	var c Controller
	b := occupy(NewBoard(20, 10), Position{1, 5})
	err := c.Spawn(b, Instantiate(FamilyO), 1)
	assert.ErrorIs(t, err, ErrSpawnBlocked)
	assert.False(t, c.HasActive())
}

func TestODropsAndLocksAtBottom(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyO), 1))

	for i := range 18 {
		res := c.MoveDown(b)
		require.Equal(t, DropMoved, res.Outcome, "drop %d", i+1)
	}
	assert.Equal(t, Position{18, 4}, c.Active().Pos)

	res := c.MoveDown(b)
	require.Equal(t, DropLocked, res.Outcome)
	assert.Zero(t, res.Cleared)
	assert.False(t, c.HasActive())

	for _, pos := range []Position{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.True(t, res.Board.Occupied(pos.Row, pos.Col), "%v", pos)
	}
	assert.Equal(t, 4, res.Board.OccupiedCount())
	assert.Zero(t, b.OccupiedCount(), "input board must not change")
}

func TestLockClearsFilledRow(t *testing.T) {
	// Bottom row full except column 0; a vertical I dropped there fills it.
	b := fillRow(NewBoard(20, 10), 19, 0)
	var c Controller
	require.NoError(t, c.Spawn(b, Instantiate(FamilyI), 1))

	for range 4 {
		require.Equal(t, Moved, c.MoveLeft(b))
	}
	require.Equal(t, Illegal, c.MoveLeft(b))

	var res DropResult
	for range 20 {
		res = c.MoveDown(b)
		if res.Outcome == DropLocked {
			break
		}
	}
	require.Equal(t, DropLocked, res.Outcome)
	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, Position{16, 0}, res.Piece.Pos)

	for col := range 10 {
		assert.False(t, res.Board.Occupied(0, col), "top row col %d", col)
	}
	// The three remaining I cells slid down one row.
	for row := 17; row < 20; row++ {
		assert.True(t, res.Board.Occupied(row, 0), "row %d", row)
	}
	assert.Equal(t, 3, res.Board.OccupiedCount())
}

func TestMoveLeftAtWallIsIllegal(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyO), 1))
	for range 4 {
		require.Equal(t, Moved, c.MoveLeft(b))
	}
	require.Equal(t, 0, c.Active().Pos.Col)

	before := *c.Active()
	assert.Equal(t, Illegal, c.MoveLeft(b))
	assert.Equal(t, before.Pos, c.Active().Pos)
}

func TestMoveRightBlockedByLockedCell(t *testing.T) {
	var c Controller
	b := occupy(NewBoard(20, 10), Position{0, 6})
	require.NoError(t, c.Spawn(b, Instantiate(FamilyO), 1))
	assert.Equal(t, Illegal, c.MoveRight(b))
	assert.Equal(t, Position{0, 4}, c.Active().Pos)
}

func TestRotate(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyI), 1))

	require.Equal(t, Moved, c.Rotate(b))
	p := c.Active()
	assert.Equal(t, 1, p.Shape.Rows())
	assert.Equal(t, 4, p.Shape.Cols())
	assert.Equal(t, Position{0, 4}, p.Pos, "rotation keeps the anchor")
}

func TestRotateWithoutKick(t *testing.T) {
	// A vertical I against the right wall cannot turn horizontal in place.
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyI), 1))
	for c.MoveRight(b) == Moved {
	}
	require.Equal(t, 9, c.Active().Pos.Col)

	before := c.Active().Shape
	assert.Equal(t, Illegal, c.Rotate(b))
	assert.True(t, before.Equal(c.Active().Shape))
	assert.Equal(t, 9, c.Active().Pos.Col)
}

func TestNoActivePiece(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	assert.Equal(t, NoActivePiece, c.MoveLeft(b))
	assert.Equal(t, NoActivePiece, c.MoveRight(b))
	assert.Equal(t, NoActivePiece, c.Rotate(b))
	assert.Equal(t, DropNoActivePiece, c.MoveDown(b).Outcome)
	assert.Nil(t, c.Active())
}

func TestActiveReturnsCopy(t *testing.T) {
	var c Controller
	b := NewBoard(20, 10)
	require.NoError(t, c.Spawn(b, Instantiate(FamilyT), 1))
	p := c.Active()
	p.Pos = Position{10, 0}
	assert.Equal(t, Position{0, 4}, c.Active().Pos)
}
