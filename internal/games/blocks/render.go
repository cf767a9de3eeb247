package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

const (
	cellWidth  = 2  // Terminal columns per board cell
	titleRows  = 1  // Rows above the board frame
	panelWidth = 18 // Side panel with counters and hints
)

// requiredSize returns the smallest screen that fits the framed board and title.
func (g *Game) requiredSize() (int, int) {
	board := g.boardConfig()
	return board.Width*cellWidth + 2, board.Height + 2 + titleRows
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.state.Snapshot()
	frameW := snap.Width*cellWidth + 2
	frameH := snap.Height + 2

	// Center board plus panel when there is room for both
	totalW := frameW
	showPanel := dst.Width() >= frameW+panelWidth+2
	if showPanel {
		totalW += panelWidth + 2
	}
	frame := core.NewRect((dst.Width()-totalW)/2, titleRows, frameW, frameH)

	dst.DrawTextCentered(0, g.Title())
	dst.DrawBox(frame, core.ColorGray)
	g.renderCells(dst, frame, snap)
	if showPanel {
		g.renderPanel(dst, frame.Right()+2, frame.Y+1)
	}
	g.renderOverlays(dst, frame)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.requiredSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, resize terminal", w, h))
}

// renderCells draws locked cells, highlighted rows and the active piece.
func (g *Game) renderCells(dst *core.Screen, frame core.Rect, snap engine.Snapshot) {
	ox, oy := frame.X+1, frame.Y+1

	for row, cells := range snap.Cells {
		for col, v := range cells {
			g.drawCell(dst, ox+col*cellWidth, oy+row, v)
		}
	}
	for _, ac := range snap.Active {
		if ac.Row < 0 {
			continue
		}
		g.drawCell(dst, ox+ac.Col*cellWidth, oy+ac.Row, ac.Value)
	}
}

func (g *Game) drawCell(dst *core.Screen, x, y int, v engine.Cell) {
	switch {
	case v == engine.CellEmpty:
		dst.SetColored(x, y, ' ', core.ColorDefault)
		dst.SetColored(x+1, y, '·', core.ColorGray)
	case v == engine.CellHighlight:
		c := g.colors[engine.CellHighlight]
		dst.SetColored(x, y, '▓', c)
		dst.SetColored(x+1, y, '▓', c)
	default:
		c := g.colors[v]
		dst.SetColored(x, y, '█', c)
		dst.SetColored(x+1, y, '█', c)
	}
}

// renderPanel draws counters and key hints beside the board.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, fmt.Sprintf("Lines  %d", g.lines))
	dst.DrawText(x, y+1, fmt.Sprintf("Pieces %d", g.locked))

	hints := []string{
		"←/→  move",
		"↑    rotate",
		"↓    soft drop",
		"spc  hard drop",
		"p    pause",
		"q    quit",
	}
	for i, h := range hints {
		dst.DrawTextColored(x, y+3+i, h, core.ColorGray)
	}
}

// renderOverlays draws pause and game-over banners over the board.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	var lines []string
	switch {
	case g.state.Mode == engine.ModeGameOver:
		lines = []string{
			"GAME OVER",
			fmt.Sprintf("Lines: %d", g.lines),
			"R restart",
			"B menu  Q quit",
		}
	case g.paused:
		lines = []string{
			"PAUSED",
			"P resume",
			"B menu  Q quit",
		}
	default:
		return
	}

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	box := frame.Centered(core.Min(boxW, frame.W), len(lines)+2)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		lx := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(lx, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
