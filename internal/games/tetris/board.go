package tetris

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// Board is the grid of settled cells.
//
// Occupancy is a set of integer keys row*cols+col. Every key in the set
// is in bounds; cells never overlap because a set cannot hold duplicates.
type Board struct {
	cols, rows int
	occupied   *intmap.Set[int]
}

// NewBoard creates an empty board.
func NewBoard(cols, rows int) *Board {
	return &Board{
		cols:     cols,
		rows:     rows,
		occupied: intmap.NewSet[int](cols * rows),
	}
}

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Len returns the number of occupied cells.
func (b *Board) Len() int { return b.occupied.Len() }

// Reset empties the board.
func (b *Board) Reset() {
	b.occupied.Clear()
}

func (b *Board) key(c Cell) int {
	return c.Row*b.cols + c.Col
}

func (b *Board) cellAt(k int) Cell {
	return Cell{Col: k % b.cols, Row: k / b.cols}
}

// InBounds reports whether a cell lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < b.cols && c.Row >= 0 && c.Row < b.rows
}

// Occupied reports whether a cell holds a settled block.
// Out-of-bounds cells are never occupied.
func (b *Board) Occupied(c Cell) bool {
	if !b.InBounds(c) {
		return false
	}
	return b.occupied.Has(b.key(c))
}

// Fits reports whether every cell is in bounds and free.
func (b *Board) Fits(cells Shape) bool {
	for _, c := range cells {
		if !b.InBounds(c) || b.Occupied(c) {
			return false
		}
	}
	return true
}

// Place marks a single cell occupied. Out-of-bounds cells are ignored.
// Returns false if the cell was not added.
func (b *Board) Place(c Cell) bool {
	if !b.InBounds(c) {
		return false
	}
	return b.occupied.Add(b.key(c))
}

// Lock commits a piece's cells to the board.
// Callers check Fits first; out-of-bounds cells are dropped.
func (b *Board) Lock(cells Shape) {
	for _, c := range cells {
		b.Place(c)
	}
}

// Cells returns the occupied cells ordered by row, then column.
func (b *Board) Cells() []Cell {
	out := make([]Cell, 0, b.occupied.Len())
	b.occupied.ForEach(func(k int) bool {
		out = append(out, b.cellAt(k))
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (b *Board) rowCounts() []int {
	counts := make([]int, b.rows)
	b.occupied.ForEach(func(k int) bool {
		counts[k/b.cols]++
		return true
	})
	return counts
}

// FullRows returns the indices of completely filled rows, ascending.
func (b *Board) FullRows() []int {
	var full []int
	for r, n := range b.rowCounts() {
		if n == b.cols {
			full = append(full, r)
		}
	}
	return full
}

// ClearLines removes every full row and drops the cells above.
// Each surviving cell moves down by the number of cleared rows beneath it.
// The occupancy set is rebuilt and swapped in one step. Returns the number
// of rows removed; with none full the board is left untouched.
func (b *Board) ClearLines() int {
	counts := b.rowCounts()

	// shift[r] = number of full rows strictly below r.
	shift := make([]int, b.rows)
	cleared := 0
	for r := b.rows - 1; r >= 0; r-- {
		shift[r] = cleared
		if counts[r] == b.cols {
			cleared++
		}
	}
	if cleared == 0 {
		return 0
	}

	next := intmap.NewSet[int](b.cols * b.rows)
	b.occupied.ForEach(func(k int) bool {
		c := b.cellAt(k)
		if counts[c.Row] == b.cols {
			return true
		}
		c.Row += shift[c.Row]
		next.Add(b.key(c))
		return true
	})
	b.occupied = next
	return cleared
}
