package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is the falling tetromino.
//
// Cells always equals the shape for (Type, Rotation) translated by Origin.
// Pieces are values: a transition returns a new Piece and leaves the
// receiver untouched, so a rejected move never needs to be undone.
type Piece struct {
	Type     PieceType
	Rotation int
	Origin   Cell
	Cells    Shape
}

// placePiece builds a piece and computes its absolute cells.
func placePiece(t PieceType, rotation int, origin Cell) Piece {
	rotation = wrapRotation(rotation)
	p := Piece{Type: t, Rotation: rotation, Origin: origin}
	for i, off := range ShapeOf(t, rotation) {
		p.Cells[i] = origin.Add(off)
	}
	return p
}

// SpawnPiece returns a new piece at its spawn position for a board width.
func SpawnPiece(t PieceType, cols int) Piece {
	return placePiece(t, 0, Cell{Col: SpawnColumn(t, cols), Row: 0})
}

// Color returns the display color of the piece.
func (p Piece) Color() core.Color {
	return ColorOf(p.Type)
}

// Shifted returns the piece translated by (dCol, dRow).
func (p Piece) Shifted(dCol, dRow int) Piece {
	return placePiece(p.Type, p.Rotation, p.Origin.Add(Cell{Col: dCol, Row: dRow}))
}

// Move tries to translate the piece. On collision it returns the
// original piece and false.
func Move(b *Board, p Piece, dCol, dRow int) (Piece, bool) {
	next := p.Shifted(dCol, dRow)
	if !b.Fits(next.Cells) {
		return p, false
	}
	return next, true
}

// DropDistance returns how many rows the piece can fall before it is blocked.
func DropDistance(b *Board, p Piece) int {
	n := 0
	for b.Fits(p.Shifted(0, n+1).Cells) {
		n++
	}
	return n
}

// HardDrop moves the piece straight down until it rests on something.
// The second value is the number of rows fallen.
func HardDrop(b *Board, p Piece) (Piece, int) {
	n := DropDistance(b, p)
	return p.Shifted(0, n), n
}
