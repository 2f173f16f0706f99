package blockfall

import (
	"github.com/vovakirdan/blockfall/internal/core"
)

// EmptyCell marks an unoccupied board cell.
const EmptyCell = core.ColorDefault

// Board is the playfield: a height×width grid of cell color values,
// EmptyCell for free cells. It is mutated only by piece placement and
// line-clear compaction.
type Board struct {
	width  int
	height int
	cells  [][]core.Color
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.Reset()
	return b
}

// Reset clears every cell.
func (b *Board) Reset() {
	b.cells = make([][]core.Color, b.height)
	for y := range b.cells {
		b.cells[y] = make([]core.Color, b.width)
	}
}

// Width returns the board width in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the board height in cells.
func (b *Board) Height() int {
	return b.height
}

// Cell returns the color at (x, y), or EmptyCell when out of bounds.
func (b *Board) Cell(x, y int) core.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EmptyCell
	}
	return b.cells[y][x]
}

// SetCell writes a color at (x, y). Out-of-bounds writes are ignored.
func (b *Board) SetCell(x, y int, c core.Color) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y][x] = c
}

// Collides reports whether the piece, offset by (dx, dy), would overlap
// the grid bounds or an occupied cell. Cells above the visible board
// (negative row) are exempt from the occupied-cell check, which is what
// makes spawn overlap detectable for rows that are on the board.
func (b *Board) Collides(p Piece, dx, dy int) bool {
	collision := false
	p.Each(func(x, y int) {
		x += dx
		y += dy
		if x < 0 || x >= b.width || y >= b.height {
			collision = true
			return
		}
		if y >= 0 && b.cells[y][x] != EmptyCell {
			collision = true
		}
	})
	return collision
}

// Place commits the piece's occupied cells into the board. Cells above
// the visible board are dropped.
func (b *Board) Place(p Piece) {
	p.Each(func(x, y int) {
		b.SetCell(x, y, p.Color)
	})
}

// ClearFullRows removes every row with no empty cell, inserting an empty
// row at the top for each, and returns the number of rows cleared.
// Rows are scanned bottom-to-top and the same index is re-checked after
// a clear, since the rows above shift down into it.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := b.height - 1; y >= 0; y-- {
		if !b.rowFull(y) {
			continue
		}
		b.removeRow(y)
		cleared++
		y++ // re-check this index after the shift
	}
	return cleared
}

// rowFull reports whether row y has no empty cell.
func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if b.cells[y][x] == EmptyCell {
			return false
		}
	}
	return true
}

// removeRow deletes row y and inserts an empty row at the top,
// preserving the relative order of the remaining rows.
func (b *Board) removeRow(y int) {
	b.cells = append(b.cells[:y], b.cells[y+1:]...)
	b.cells = append([][]core.Color{make([]core.Color, b.width)}, b.cells...)
}

// FilledRowCount returns the number of rows that are completely full.
func (b *Board) FilledRowCount() int {
	n := 0
	for y := 0; y < b.height; y++ {
		if b.rowFull(y) {
			n++
		}
	}
	return n
}

// OccupiedCells returns the number of non-empty cells on the board.
func (b *Board) OccupiedCells() int {
	n := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != EmptyCell {
				n++
			}
		}
	}
	return n
}
