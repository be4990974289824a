package tetris

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

const frame = 1.0 / 30

// queueRand returns queued picks in order and repeats the last one.
type queueRand struct {
	picks []PieceType
	next  int
}

func pieces(p ...PieceType) *queueRand {
	return &queueRand{picks: p}
}

func (q *queueRand) Intn(n int) int {
	i := min(q.next, len(q.picks)-1)
	q.next++
	return int(q.picks[i]) % n
}

func newTestSession(t *testing.T, cfg config.TetrisConfig, p ...PieceType) *Session {
	t.Helper()
	if len(p) == 0 {
		t.Fatal("newTestSession needs at least one piece")
	}
	return NewSession(cfg, pieces(p...))
}

// fillRows occupies every cell of the given rows except the listed columns.
func fillRows(b *Board, rows []int, skipCols ...int) {
	skip := make(map[int]bool, len(skipCols))
	for _, c := range skipCols {
		skip[c] = true
	}
	for _, r := range rows {
		for c := 0; c < b.Cols(); c++ {
			if !skip[c] {
				b.Place(Cell{Col: c, Row: r})
			}
		}
	}
}
