// Package taquin implements the sliding-tile puzzle as a search domain.
//
// A board holds the values 0..n-1 where 0 is the blank. A move slides the
// blank into one of its orthogonal neighbours.
package taquin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Blank is the value of the empty cell.
const Blank = 0

// ErrInvalidBoard is returned when a board is not a rectangular permutation of 0..n-1.
var ErrInvalidBoard = errors.New("invalid board")

// Board is an immutable puzzle configuration.
type Board struct {
	rows  int
	cols  int
	cells []int
	pos   []int
	key   string
}

// New builds a board from its rows.
func New(rows [][]int) (Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Board{}, fmt.Errorf("%w: empty board", ErrInvalidBoard)
	}
	cols := len(rows[0])
	cells := make([]int, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, i, len(row), cols)
		}
		cells = append(cells, row...)
	}

	seen := make([]bool, len(cells))
	for _, v := range cells {
		if v < 0 || v >= len(cells) {
			return Board{}, fmt.Errorf("%w: value %d out of range 0..%d", ErrInvalidBoard, v, len(cells)-1)
		}
		if seen[v] {
			return Board{}, fmt.Errorf("%w: duplicate value %d", ErrInvalidBoard, v)
		}
		seen[v] = true
	}

	return newBoard(len(rows), cols, cells), nil
}

// MustNew is like New but panics on invalid input. Intended for fixtures.
func MustNew(rows [][]int) Board {
	b, err := New(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// newBoard takes ownership of cells.
func newBoard(rows, cols int, cells []int) Board {
	pos := make([]int, len(cells))
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(rows))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(cols))
	sb.WriteByte(':')
	for i, v := range cells {
		pos[v] = i
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return Board{rows: rows, cols: cols, cells: cells, pos: pos, key: sb.String()}
}

// Key returns the canonical encoding of the board, e.g. "3x3:1,2,3,4,5,6,7,8,0".
func (b Board) Key() string { return b.key }

// Rows returns the number of rows.
func (b Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b Board) Cols() int { return b.cols }

// Size returns the number of cells.
func (b Board) Size() int { return len(b.cells) }

// At returns the value at row r, column c.
func (b Board) At(r, c int) int { return b.cells[r*b.cols+c] }

// Index returns the flat position of value v, or -1 if v is not on the board.
func (b Board) Index(v int) int {
	if v < 0 || v >= len(b.pos) {
		return -1
	}
	return b.pos[v]
}

// Grid returns a copy of the board as rows.
func (b Board) Grid() [][]int {
	out := make([][]int, b.rows)
	for r := range out {
		out[r] = make([]int, b.cols)
		copy(out[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return out
}

// Children returns the boards reachable by sliding the blank right, up, left
// or down, in that order.
func (b Board) Children() []Board {
	blank := b.pos[Blank]
	x, y := blank%b.cols, blank/b.cols

	children := make([]Board, 0, 4)
	if x != b.cols-1 {
		children = append(children, b.swap(blank, blank+1))
	}
	if y != 0 {
		children = append(children, b.swap(blank, blank-b.cols))
	}
	if x != 0 {
		children = append(children, b.swap(blank, blank-1))
	}
	if y != b.rows-1 {
		children = append(children, b.swap(blank, blank+b.cols))
	}
	return children
}

func (b Board) swap(i, j int) Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	cells[i], cells[j] = cells[j], cells[i]
	return newBoard(b.rows, b.cols, cells)
}

// String renders the board as a grid, one row per line.
func (b Board) String() string {
	width := len(strconv.Itoa(len(b.cells) - 1))
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte('|')
			}
			fmt.Fprintf(&sb, "%*d", width, b.At(r, c))
		}
	}
	return sb.String()
}
