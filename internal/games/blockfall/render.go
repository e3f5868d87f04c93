package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	cellWidth = 2 // Terminal columns per playfield cell
	wellW     = Cols*cellWidth + 2
	wellH     = Rows + 2
	panelW    = 20
	panelGap  = 2
)

// Render draws the well, the active piece and the HUD panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < wellW || h < wellH {
		g.renderTooSmall(dst)
		return
	}

	totalW := wellW
	showPanel := w >= wellW+panelGap+panelW
	if showPanel {
		totalW += panelGap + panelW
	}

	area := core.NewRect(0, 0, w, h).Centered(totalW, wellH)
	well := core.NewRect(area.X, area.Y, wellW, wellH)

	g.renderWell(dst, well)
	if showPanel {
		g.renderPanel(dst, well.Right()+panelGap, well.Y)
	}
	if g.st.Paused {
		g.renderPause(dst, well)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBox(well)

	for y := range Rows {
		for x := range Cols {
			if g.st.Field.IsOccupied(x, y) {
				drawCell(dst, well, x, y, core.ColorLime)
			} else {
				dst.SetColor(well.X+1+x*cellWidth+1, well.Y+1+y, '.', core.ColorGray)
			}
		}
	}

	if g.st.Phase != PhaseFalling {
		return
	}
	color := g.st.Piece.Kind.Color()
	for _, c := range g.st.Piece.Cells() {
		if c.Y < 0 {
			continue
		}
		drawCell(dst, well, c.X, c.Y, color)
	}
}

// drawCell paints one playfield cell as a two-column block.
func drawCell(dst *core.Screen, well core.Rect, x, y int, c core.Color) {
	px := well.X + 1 + x*cellWidth
	py := well.Y + 1 + y
	for i := range cellWidth {
		dst.SetColor(px+i, py, '█', c)
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColor(x, y, g.title, core.ColorCyan)
	dst.DrawText(x, y+2, fmt.Sprintf("Score: %d", g.st.Score))
	dst.DrawText(x, y+3, fmt.Sprintf("High:  %d", g.st.HighScore))
	dst.DrawText(x, y+4, fmt.Sprintf("Lines: %d", g.st.Lines))
	dst.DrawText(x, y+5, fmt.Sprintf("Speed: %dms", g.st.Interval.Milliseconds()))

	controls := []string{
		"←/→   move",
		"↓     drop",
		"↑/x   rotate",
		"p     pause",
		"q     quit",
	}
	for i, line := range controls {
		dst.DrawTextColor(x, y+8+i, line, core.ColorGray)
	}
}

func (g *Game) renderPause(dst *core.Screen, well core.Rect) {
	box := well.Centered(16, 4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColor(box.X+5, box.Y+1, "PAUSED", core.ColorYellow)
	dst.DrawText(box.X+2, box.Y+2, "p to resume")
}
