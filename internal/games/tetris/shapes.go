package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceType identifies one of the seven tetromino shapes.
type PieceType int

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceL
	PieceJ
)

// AllPieces lists every piece type in spawn-table order.
var AllPieces = [...]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceL, PieceJ}

// String returns the conventional letter for the piece.
func (p PieceType) String() string {
	if p < PieceI || p > PieceJ {
		return "?"
	}
	return "IOTSZLJ"[p : p+1]
}

// Cell is a board position. Col grows to the right, Row grows downward.
type Cell struct {
	Col, Row int
}

// Add returns the cell offset by another cell.
func (c Cell) Add(o Cell) Cell {
	return Cell{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// Shape is the four cell offsets of a piece relative to its origin.
type Shape [4]Cell

// shapeTable holds four rotation entries per piece type.
// O repeats a single shape; I, S and Z alternate between two.
var shapeTable = [7][4]Shape{
	PieceI: {
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	},
	PieceO: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	PieceT: {
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 0}},
	},
	PieceS: {
		{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
	},
	PieceZ: {
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{1, -1}, {1, 0}, {0, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{1, -1}, {1, 0}, {0, 0}, {0, 1}},
	},
	PieceL: {
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, -1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{-1, 1}, {0, -1}, {0, 0}, {0, 1}},
	},
	PieceJ: {
		{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
	},
}

// ShapeOf returns the offsets for a piece type at a rotation index.
// The rotation is taken modulo 4.
func ShapeOf(p PieceType, rotation int) Shape {
	return shapeTable[p][wrapRotation(rotation)]
}

func wrapRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// spawnOffset is the origin column relative to the board center.
// On a 10-wide board this puts I at 3, O at 4 and the rest at 5.
var spawnOffset = [7]int{
	PieceI: -2,
	PieceO: -1,
	PieceT: 0,
	PieceS: 0,
	PieceZ: 0,
	PieceL: 0,
	PieceJ: 0,
}

// SpawnColumn returns the origin column for a new piece on a board of the given width.
func SpawnColumn(p PieceType, cols int) int {
	return cols/2 + spawnOffset[p]
}

var pieceColors = [7]core.Color{
	PieceI: core.ColorCyan,
	PieceO: core.ColorYellow,
	PieceT: core.ColorMagenta,
	PieceS: core.ColorGreen,
	PieceZ: core.ColorBlue,
	PieceL: core.ColorRed,
	PieceJ: core.ColorBrightMagenta,
}

// LockedColor is the color of settled cells.
const LockedColor = core.ColorGray

// ColorOf returns the display color of an active piece.
func ColorOf(p PieceType) core.Color {
	return pieceColors[p]
}
