package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth = 2  // Terminal columns per board cell
	hudGap    = 2  // Columns between the well and the side panel
	hudWidth  = 18 // Side panel width
)

var controlsHelp = []string{
	"←/→  move",
	"↓    soft drop",
	"j ↑  rotate cw",
	"k z  rotate ccw",
	"spc  hard drop",
	"p    pause",
	"r    restart",
	"b    menu",
	"q    quit",
}

func (g *Game) wellSize() (int, int) {
	cols, rows := g.opts.Config.Board.Cols, g.opts.Config.Board.Rows
	return cols*cellWidth + 2, rows + 2
}

// minSize returns the smallest screen that fits the well and side panel.
func (g *Game) minSize() (int, int) {
	w, h := g.wellSize()
	return w + hudGap + hudWidth, h
}

// Render draws the well, settled cells, the falling piece, the side panel
// and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		return
	}
	if g.tooSmall {
		minW, minH := g.minSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
		return
	}

	totalW, totalH := g.minSize()
	area := core.CenteredRect(dst.Width(), dst.Height(), totalW, totalH)
	wellW, wellH := g.wellSize()
	well := core.NewRect(area.X, area.Y, wellW, wellH)

	dst.DrawBoxColored(well, core.ColorWhite)
	inner := well.Inset(1)

	for _, c := range g.session.Board().Cells() {
		drawBlock(dst, inner, c, LockedColor)
	}
	if !g.session.GameOver() {
		p := g.session.Piece()
		for _, c := range p.Cells {
			drawBlock(dst, inner, c, p.Color())
		}
	}

	g.renderHUD(dst, well.Right()+hudGap, well.Y)

	switch {
	case g.session.GameOver():
		g.renderOverlay(dst, inner, "GAME OVER", fmt.Sprintf("Score %d", g.session.Score()))
	case g.paused:
		g.renderOverlay(dst, inner, "PAUSED", "p to resume")
	}
}

func drawBlock(dst *core.Screen, inner core.Rect, c Cell, color core.Color) {
	x := inner.X + c.Col*cellWidth
	y := inner.Y + c.Row
	if !inner.Contains(x, y) {
		return
	}
	dst.SetColored(x, y, '█', color)
	dst.SetColored(x+1, y, '█', color)
}

func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "TETRIS", core.ColorBrightCyan)

	stats := []struct {
		label string
		value int
	}{
		{"Score", g.session.Score()},
		{"Level", g.session.Level()},
		{"Lines", g.session.Lines()},
	}
	row := y + 2
	for _, s := range stats {
		dst.DrawTextColored(x, row, s.label, core.ColorGray)
		dst.DrawText(x+7, row, fmt.Sprintf("%d", s.value))
		row++
	}

	row++
	_, wellH := g.wellSize()
	for _, line := range controlsHelp {
		if row >= y+wellH {
			break
		}
		dst.DrawTextColored(x, row, line, core.ColorGray)
		row++
	}
}

func (g *Game) renderOverlay(dst *core.Screen, inner core.Rect, title, sub string) {
	mid := inner.Y + inner.H/2
	center := func(row int, text string, color core.Color) {
		n := len([]rune(text))
		x := inner.X + (inner.W-n)/2
		dst.DrawTextColored(x, row, text, color)
	}
	for row := mid - 1; row <= mid+1; row++ {
		dst.DrawHLine(inner.X, row, inner.W, ' ')
	}
	center(mid-1, title, core.ColorBrightYellow)
	center(mid+1, sub, core.ColorWhite)
}
