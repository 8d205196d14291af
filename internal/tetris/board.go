package tetris

import "fmt"

// Position is the (row, column) of a shape's top-left corner on the board.
// Row 0 is the top edge; rows grow downward.
type Position struct {
	Row int
	Col int
}

// Add returns p shifted by the given deltas.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Cell is one square of the board. Occupied is the only field collision
// checks look at; Family and Key are carried for rendering.
type Cell struct {
	Occupied bool
	Family   Family
	Key      string
}

// Board is a fixed-size grid of locked cells. Every operation that changes
// the grid returns a new Board; a Board value is never modified after it is
// returned.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewBoard creates an empty rows x cols board.
func NewBoard(rows, cols int) Board {
	b := Board{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for r := range b.cells {
		b.cells[r] = make([]Cell, cols)
	}
	return b
}

// Rows returns the board height.
func (b Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b Board) Cols() int {
	return b.cols
}

// At returns the cell at (row, col). Out-of-range coordinates return an
// empty cell.
func (b Board) At(row, col int) Cell {
	if !b.inBounds(row, col) {
		return Cell{}
	}
	return b.cells[row][col]
}

// Occupied reports whether (row, col) holds a locked block.
func (b Board) Occupied(row, col int) bool {
	return b.At(row, col).Occupied
}

func (b Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// HasSpace reports whether every occupied cell of shape, translated by pos,
// lands inside the grid on an empty board cell. Empty cells of the shape's
// bounding box never collide.
func (b Board) HasSpace(shape Shape, pos Position) bool {
	for r := range shape.Rows() {
		for c := range shape.Cols() {
			if !shape.At(r, c) {
				continue
			}
			row, col := pos.Row+r, pos.Col+c
			if !b.inBounds(row, col) || b.cells[row][col].Occupied {
				return false
			}
		}
	}
	return true
}

// SpawnPosition returns where new pieces appear: row 0, column
// floor(cols/2)-1, for every family.
func (b Board) SpawnPosition() Position {
	return Position{Row: 0, Col: b.cols/2 - 1}
}

// CanSpawn reports whether shape fits at the spawn position.
func (b Board) CanSpawn(shape Shape) bool {
	return b.HasSpace(shape, b.SpawnPosition())
}

// Merge writes the piece's occupied cells into a copy of the board.
// The caller must have checked HasSpace for the piece's shape and position;
// merging onto occupied cells is not defined.
func (b Board) Merge(p Piece) Board {
	out := b.clone()
	for _, off := range p.Shape.Offsets() {
		row, col := p.Pos.Row+off.Row, p.Pos.Col+off.Col
		if !out.inBounds(row, col) {
			continue
		}
		out.cells[row][col] = Cell{
			Occupied: true,
			Family:   p.Family,
			Key:      fmt.Sprintf("%d-%d-%d", p.ID, off.Row, off.Col),
		}
	}
	return out
}

// ClearCompletedRows removes every fully occupied row at once and inserts
// the same number of empty rows at the top, keeping the remaining rows in
// order. It returns the receiver unchanged and 0 when no row is complete.
func (b Board) ClearCompletedRows() (Board, int) {
	kept := make([][]Cell, 0, b.rows)
	for _, row := range b.cells {
		if !rowComplete(row) {
			kept = append(kept, row)
		}
	}
	cleared := b.rows - len(kept)
	if cleared == 0 {
		return b, 0
	}

	out := Board{rows: b.rows, cols: b.cols, cells: make([][]Cell, 0, b.rows)}
	for range cleared {
		out.cells = append(out.cells, make([]Cell, b.cols))
	}
	for _, row := range kept {
		out.cells = append(out.cells, append([]Cell(nil), row...))
	}
	return out, cleared
}

// CompletedRows returns the indexes of full rows, top to bottom.
func (b Board) CompletedRows() []int {
	var rows []int
	for r, row := range b.cells {
		if rowComplete(row) {
			rows = append(rows, r)
		}
	}
	return rows
}

// OccupiedCount returns the number of locked cells.
func (b Board) OccupiedCount() int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell.Occupied {
				n++
			}
		}
	}
	return n
}

// Overlay returns a copy of the grid with the piece composited on top.
// Used for rendering; the board itself is unchanged.
func (b Board) Overlay(p *Piece) [][]Cell {
	grid := b.clone().cells
	if p == nil {
		return grid
	}
	for _, off := range p.Shape.Offsets() {
		row, col := p.Pos.Row+off.Row, p.Pos.Col+off.Col
		if !b.inBounds(row, col) {
			continue
		}
		grid[row][col] = Cell{
			Occupied: true,
			Family:   p.Family,
			Key:      fmt.Sprintf("%d-%d-%d", p.ID, off.Row, off.Col),
		}
	}
	return grid
}

// String renders the board as rows of family letters and '.', for tests.
func (b Board) String() string {
	buf := make([]byte, 0, b.rows*(b.cols+1))
	for r, row := range b.cells {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for _, cell := range row {
			if cell.Occupied {
				buf = append(buf, cell.Family.String()...)
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

func (b Board) clone() Board {
	out := Board{rows: b.rows, cols: b.cols, cells: make([][]Cell, b.rows)}
	for r, row := range b.cells {
		out.cells[r] = append([]Cell(nil), row...)
	}
	return out
}

func rowComplete(row []Cell) bool {
	for _, cell := range row {
		if !cell.Occupied {
			return false
		}
	}
	return true
}
