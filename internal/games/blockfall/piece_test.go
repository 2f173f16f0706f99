package blockfall

import (
	"math/rand"
	"testing"
)

func shapesEqual(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

func TestRotateFourTimesRestoresShape(t *testing.T) {
	for i := range PieceCount {
		p := NewPieceFromTemplate(i)
		rotated := p.RotatedCW().RotatedCW().RotatedCW().RotatedCW()
		if !shapesEqual(p.Shape, rotated.Shape) {
			t.Errorf("piece %d: four clockwise rotations should restore the shape", i)
		}
	}
}

func TestRotateTransposesDimensions(t *testing.T) {
	p := NewPieceFromTemplate(0) // I piece, 1x4
	if p.Width() != 4 || p.Height() != 1 {
		t.Fatalf("I piece dimensions = %dx%d, expected 4x1", p.Width(), p.Height())
	}

	rotated := p.RotatedCW()
	if rotated.Width() != 1 || rotated.Height() != 4 {
		t.Errorf("rotated I dimensions = %dx%d, expected 1x4", rotated.Width(), rotated.Height())
	}

	// Vertical I has every cell occupied in its single column
	for r := range 4 {
		if !rotated.Shape[r][0] {
			t.Errorf("rotated I should occupy row %d", r)
		}
	}
}

func TestRotateClockwiseDirection(t *testing.T) {
	// J piece:          rotated clockwise:
	//  X . .             X X
	//  X X X             X .
	//                    X .
	p := NewPieceFromTemplate(5)
	rotated := p.RotatedCW()

	expected := [][]bool{
		{true, true},
		{true, false},
		{true, false},
	}
	if !shapesEqual(rotated.Shape, expected) {
		t.Errorf("J rotated CW = %v, expected %v", rotated.Shape, expected)
	}
}

func TestRotateDoesNotAliasTemplate(t *testing.T) {
	p := NewPieceFromTemplate(2)
	p.Shape[0][0] = true

	fresh := NewPieceFromTemplate(2)
	if fresh.Shape[0][0] {
		t.Error("mutating a piece must not affect the template")
	}
}

func TestSpawnAtCentersHorizontally(t *testing.T) {
	tests := []struct {
		name      string
		template  int
		boardW    int
		expectedX int
	}{
		{"I on standard board", 0, 10, 3},
		{"O on standard board", 1, 10, 4},
		{"T on standard board", 2, 10, 3},
		{"I on narrow board", 0, 8, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPieceFromTemplate(tc.template).SpawnAt(tc.boardW)
			if p.X != tc.expectedX {
				t.Errorf("spawn X = %d, expected %d", p.X, tc.expectedX)
			}
			if p.Y != 0 {
				t.Errorf("spawn Y = %d, expected 0 (top row)", p.Y)
			}
		})
	}
}

func TestRandomPieceIsDeterministicPerSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for range 50 {
		pa := RandomPiece(a)
		pb := RandomPiece(b)
		if !shapesEqual(pa.Shape, pb.Shape) || pa.Color != pb.Color {
			t.Fatal("same seed should produce the same piece sequence")
		}
	}
}

func TestRandomPieceCoversAllShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)

	for range 500 {
		p := RandomPiece(rng)
		for i := range PieceCount {
			if shapesEqual(p.Shape, pieceTemplates[i].Shape) {
				seen[i] = true
			}
		}
	}

	if len(seen) != PieceCount {
		t.Errorf("500 draws covered %d of %d shapes", len(seen), PieceCount)
	}
}

func TestPieceEachReportsBoardCoordinates(t *testing.T) {
	p := NewPieceFromTemplate(1) // O piece
	p.X, p.Y = 4, 7

	var cells [][2]int
	p.Each(func(x, y int) {
		cells = append(cells, [2]int{x, y})
	})

	expected := [][2]int{{4, 7}, {5, 7}, {4, 8}, {5, 8}}
	if len(cells) != len(expected) {
		t.Fatalf("Each visited %d cells, expected %d", len(cells), len(expected))
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell %d = %v, expected %v", i, cells[i], expected[i])
		}
	}
}
