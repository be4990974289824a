package tetris

// Direction is a rotation direction.
type Direction int

const (
	CounterClockwise Direction = -1
	Clockwise        Direction = 1
)

// KickOffsets are the horizontal shifts tried, in order, when a rotation
// collides in place. Only columns move; there are no vertical kicks.
var KickOffsets = [...]int{0, -1, 1, -2, 2}

// Rotate turns the piece one step in dir. The first kick offset that fits
// wins and its column shift is applied to the origin. If no offset fits
// the original piece is returned with false.
func Rotate(b *Board, p Piece, dir Direction) (Piece, bool) {
	target := wrapRotation(p.Rotation + int(dir))
	for _, dc := range KickOffsets {
		origin := p.Origin.Add(Cell{Col: dc})
		next := placePiece(p.Type, target, origin)
		if b.Fits(next.Cells) {
			return next, true
		}
	}
	return p, false
}
