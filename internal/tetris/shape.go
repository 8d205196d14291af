// Package tetris implements the falling-block puzzle engine: the piece
// catalog, the board, the active-piece controller, the lookahead queue and
// the session state machine. It has no terminal or timer dependencies; the
// platform layer drives it with commands and reads its queries.
package tetris

import "fmt"

// Shape is an immutable occupancy matrix for one piece orientation.
// The zero value is not a valid shape; shapes come from the catalog or from
// rotating another shape.
type Shape struct {
	rows  int
	cols  int
	cells []bool // row-major, len == rows*cols
}

// mustShape builds a shape from a 0/1 matrix.
// Empty or ragged matrices are programming errors and panic.
func mustShape(matrix [][]int) Shape {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		panic("tetris: malformed shape: zero rows or columns")
	}
	rows, cols := len(matrix), len(matrix[0])
	s := Shape{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
	for r, row := range matrix {
		if len(row) != cols {
			panic(fmt.Sprintf("tetris: malformed shape: row %d has %d columns, want %d", r, len(row), cols))
		}
		for c, v := range row {
			s.cells[r*cols+c] = v != 0
		}
	}
	return s
}

// Rows returns the height of the bounding box.
func (s Shape) Rows() int {
	return s.rows
}

// Cols returns the width of the bounding box.
func (s Shape) Cols() int {
	return s.cols
}

// At reports whether the cell at (r, c) of the bounding box is occupied.
// Coordinates outside the box are empty.
func (s Shape) At(r, c int) bool {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return false
	}
	return s.cells[r*s.cols+c]
}

// Offsets returns the (row, col) offsets of every occupied cell.
func (s Shape) Offsets() []Position {
	out := make([]Position, 0, len(s.cells))
	for r := range s.rows {
		for c := range s.cols {
			if s.cells[r*s.cols+c] {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// Rotate returns the shape turned a quarter clockwise: transpose, then
// reverse each resulting row. The receiver is not modified.
func (s Shape) Rotate() Shape {
	out := Shape{rows: s.cols, cols: s.rows, cells: make([]bool, len(s.cells))}
	for r := range out.rows {
		for c := range out.cols {
			out.cells[r*out.cols+c] = s.cells[(s.rows-1-c)*s.cols+r]
		}
	}
	return out
}

// Equal reports whether two shapes have the same box and occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.rows != other.rows || s.cols != other.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the shape as rows of '#' and '.', for test failures.
func (s Shape) String() string {
	buf := make([]byte, 0, s.rows*(s.cols+1))
	for r := range s.rows {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for c := range s.cols {
			if s.At(r, c) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
