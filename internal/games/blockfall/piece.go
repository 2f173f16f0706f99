package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Piece is a falling tetromino: a boolean shape matrix, a fixed color and
// a board position. The position is the top-left corner of the shape
// matrix in board coordinates; Y may be negative while a freshly rotated
// piece still pokes above the visible board.
type Piece struct {
	Shape [][]bool
	Color core.Color
	X, Y  int
}

// The seven tetrominoes. Shape matrices are kept minimal (no padding);
// rotation produces the transposed dimensions.
var pieceTemplates = []Piece{
	{ // I
		Shape: [][]bool{
			{true, true, true, true},
		},
		Color: core.ColorCyan,
	},
	{ // O
		Shape: [][]bool{
			{true, true},
			{true, true},
		},
		Color: core.ColorYellow,
	},
	{ // T
		Shape: [][]bool{
			{false, true, false},
			{true, true, true},
		},
		Color: core.ColorMagenta,
	},
	{ // S
		Shape: [][]bool{
			{false, true, true},
			{true, true, false},
		},
		Color: core.ColorGreen,
	},
	{ // Z
		Shape: [][]bool{
			{true, true, false},
			{false, true, true},
		},
		Color: core.ColorRed,
	},
	{ // J
		Shape: [][]bool{
			{true, false, false},
			{true, true, true},
		},
		Color: core.ColorBlue,
	},
	{ // L
		Shape: [][]bool{
			{false, false, true},
			{true, true, true},
		},
		Color: core.ColorOrange,
	},
}

// PieceCount is the number of distinct tetromino shapes.
const PieceCount = 7

// NewPieceFromTemplate returns a fresh copy of the template at index i.
// The shape matrix is deep-copied so rotations never alias the template.
func NewPieceFromTemplate(i int) Piece {
	tpl := pieceTemplates[i%PieceCount]
	shape := make([][]bool, len(tpl.Shape))
	for r := range tpl.Shape {
		shape[r] = make([]bool, len(tpl.Shape[r]))
		copy(shape[r], tpl.Shape[r])
	}
	return Piece{Shape: shape, Color: tpl.Color}
}

// RandomPiece selects uniformly at random among the seven shapes.
func RandomPiece(rng *rand.Rand) Piece {
	return NewPieceFromTemplate(rng.Intn(PieceCount))
}

// Width returns the shape matrix width in cells.
func (p Piece) Width() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Height returns the shape matrix height in cells.
func (p Piece) Height() int {
	return len(p.Shape)
}

// SpawnAt centers the piece horizontally at the top row of a board with
// the given width and returns the positioned piece.
func (p Piece) SpawnAt(boardWidth int) Piece {
	p.X = (boardWidth - p.Width()) / 2
	p.Y = 0
	return p
}

// RotatedCW returns a copy of the piece with its shape matrix rotated 90°
// clockwise via transpose-and-reverse. Position and color are unchanged;
// the caller decides whether the rotation is legal.
func (p Piece) RotatedCW() Piece {
	rows := len(p.Shape)
	if rows == 0 {
		return p
	}
	cols := len(p.Shape[0])

	rotated := make([][]bool, cols)
	for r := range rotated {
		rotated[r] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rotated[c][rows-1-r] = p.Shape[r][c]
		}
	}

	p.Shape = rotated
	return p
}

// Each iterates over the occupied cells of the shape matrix, calling fn
// with board coordinates (piece position plus cell offset).
func (p Piece) Each(fn func(x, y int)) {
	for r, row := range p.Shape {
		for c, occupied := range row {
			if occupied {
				fn(p.X+c, p.Y+r)
			}
		}
	}
}
