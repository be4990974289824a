package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Piece    PieceType
	Rotation int
	OriginX  int
	OriginY  int
	Board    []Cell // Settled cells, row-major order
	Score    int
	Level    int
	Lines    int
	Paused   bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	p := s.Piece()
	return Snapshot{
		Tick:     s.Ticks(),
		Phase:    s.Phase(),
		Piece:    p.Type,
		Rotation: p.Rotation,
		OriginX:  p.Origin.Col,
		OriginY:  p.Origin.Row,
		Board:    s.Board().Cells(),
		Score:    s.Score(),
		Level:    s.Level(),
		Lines:    s.Lines(),
		Paused:   g.paused,
	}
}
