package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	cellWidth    = 2 // Each board cell is drawn two characters wide
	hudHeight    = 2 // Top HUD lines
	sidebarWidth = 12
	blockRune    = '█'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	boardW := g.board.Width()*cellWidth + 2
	boardH := g.board.Height() + 2
	boardX := (g.screenW - boardW - sidebarWidth) / 2
	boardY := hudHeight

	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))
	g.renderBoard(dst, boardX+1, boardY+1)
	if g.phase == PhaseRunning || g.phase == PhasePaused {
		g.renderPiece(dst, boardX+1, boardY+1)
	}
	g.renderSidebar(dst, boardX+boardW+2, boardY)

	switch g.phase {
	case PhaseIdle:
		g.renderOverlay(dst, "Blockfall", "Press Enter to start")
	case PhasePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case PhaseGameOver:
		if g.won {
			g.renderOverlay(dst, "Sprint complete!", fmt.Sprintf("Final Score: %d", g.score))
		} else {
			g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  (R to restart)", g.score))
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Level: %d  Lines: %d", g.Title(), g.score, g.level, g.lines)
	if g.mode == ModeSprint {
		hud += fmt.Sprintf("/%d", g.cfg.Sprint.TargetLines)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the placed cells.
func (g *Game) renderBoard(dst *core.Screen, originX, originY int) {
	for y := 0; y < g.board.Height(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			c := g.board.Cell(x, y)
			if c == EmptyCell {
				continue
			}
			g.drawCell(dst, originX, originY, x, y, c)
		}
	}
}

// renderPiece draws the falling piece. Cells above the visible board
// are clipped.
func (g *Game) renderPiece(dst *core.Screen, originX, originY int) {
	g.piece.Each(func(x, y int) {
		if y < 0 {
			return
		}
		g.drawCell(dst, originX, originY, x, y, g.piece.Color)
	})
}

// drawCell paints one board cell as a two-character colored block.
func (g *Game) drawCell(dst *core.Screen, originX, originY, x, y int, c core.Color) {
	sx := originX + x*cellWidth
	sy := originY + y
	dst.SetCell(sx, sy, blockRune, c)
	dst.SetCell(sx+1, sy, blockRune, c)
}

// renderSidebar draws the next-piece preview and key hints.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "Next:")
	if g.phase == PhaseRunning || g.phase == PhasePaused {
		for r, row := range g.next.Shape {
			for c, occupied := range row {
				if !occupied {
					continue
				}
				sx := x + c*cellWidth
				sy := y + 2 + r
				dst.SetCell(sx, sy, blockRune, g.next.Color)
				dst.SetCell(sx+1, sy, blockRune, g.next.Color)
			}
		}
	}

	hints := []string{"←/→ move", "↑ rotate", "↓ soft drop", "space drop", "p pause"}
	for i, hint := range hints {
		dst.DrawTextColored(x, y+7+i, hint, core.ColorGray)
	}
}

// renderOverlay draws a centered boxed message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
