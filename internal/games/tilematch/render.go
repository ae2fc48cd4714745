package tilematch

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/match3"
)

const (
	cellWidth   = 3 // "[●]" with the cursor brackets
	hudHeight   = 3
	footerLines = 2
	hudWidth    = 40 // room for score, moves and clock on one line
	lowTime     = 30 // seconds at which the clock turns red
)

// glyphs gives each kind a distinct shape as well as a color.
var glyphs = []rune{'●', '■', '▲', '◆', '★', '♥', '♣', '♠'}

func glyph(t match3.Tile) rune {
	if t == match3.Empty {
		return '·'
	}
	return glyphs[int(t)%len(glyphs)]
}

// boardSize returns the bordered board size in screen cells.
func (g *Game) boardSize() (w, h int) {
	return g.cfg.Board.Cols*cellWidth + 2, g.cfg.Board.Rows + 2
}

func (g *Game) minScreen() (w, h int) {
	bw, bh := g.boardSize()
	return max(bw, hudWidth), bh + hudHeight + footerLines
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.runtime.ScreenW - boardW) / 2
	boardY := hudHeight
	hudW := max(boardW, hudWidth)

	g.renderHUD(dst, (g.runtime.ScreenW-hudW)/2, hudW)
	g.renderBoard(dst, boardX, boardY, boardW, boardH)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.runtime.ScreenH / 2
	dst.DrawTextCenteredColored(y-1, "Cannot start game", core.ColorBrightRed)
	if g.err != nil {
		dst.DrawTextCentered(y, g.err.Error())
	}
	dst.DrawTextCentered(y+2, "Press Q to quit")
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minScreen()
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (g *Game) renderHUD(dst *core.Screen, hudX, hudW int) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightCyan)

	dst.DrawText(hudX, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	moves := fmt.Sprintf("Moves: %d", g.session.Moves())
	dst.DrawText(hudX+(hudW-len(moves))/2, 1, moves)

	remaining := g.session.TimeRemaining()
	clock := "Time " + FormatClock(remaining)
	clockColor := core.ColorDefault
	if remaining <= lowTime {
		clockColor = core.ColorBrightRed
	}
	dst.DrawTextColored(hudX+hudW-len(clock), 1, clock, clockColor)

	switch {
	case g.message != "":
		dst.DrawTextCenteredColored(2, g.message, core.ColorYellow)
	case g.session.Busy() && g.gain > 0:
		feedback := fmt.Sprintf("+%d", g.gain)
		if g.chainRound > 1 {
			feedback = fmt.Sprintf("Chain x%d  +%d", g.chainRound, g.gain)
		}
		dst.DrawTextCenteredColored(2, feedback, core.ColorBrightGreen)
	}
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	borderColor := core.ColorGray
	if g.session.Phase() == match3.PhaseEnded {
		borderColor = core.ColorRed
	}
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), borderColor)

	for r := 0; r < g.session.Rows(); r++ {
		for c := 0; c < g.session.Cols(); c++ {
			p := match3.P(r, c)
			x := boardX + 1 + c*cellWidth
			y := boardY + 1 + r

			t := g.session.Cell(r, c)
			color := core.TileColor(int(t))
			if g.highlighted(p) {
				color = core.ColorBrightWhite
			}
			dst.SetColored(x+1, y, glyph(t), color)

			left, right, markColor := g.marker(p)
			if left != 0 {
				dst.SetColored(x, y, left, markColor)
				dst.SetColored(x+2, y, right, markColor)
			}
		}
	}
}

// marker returns the brackets drawn around p, if any.
func (g *Game) marker(p match3.Pos) (left, right rune, color core.Color) {
	active := g.session.Phase() == match3.PhaseActive
	switch {
	case active && g.selected && p == g.selection:
		return '<', '>', core.ColorBrightYellow
	case active && p == g.cursor:
		return '[', ']', core.ColorBrightWhite
	case g.hint != nil && (p == g.hint.A || p == g.hint.B):
		return '(', ')', core.ColorBrightGreen
	}
	return 0, 0, core.ColorDefault
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	dst.DrawTextCenteredColored(y, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.State().GameOver:
		chains, longest, _ := g.session.ChainStats()
		g.drawOverlay(dst, centerX, centerY,
			"TIME UP",
			fmt.Sprintf("Score: %d", g.session.Score()),
			fmt.Sprintf("Moves: %d  Chains: %d  Best: x%d", g.session.Moves(), chains, longest),
			"Press R to restart",
		)
	}
}

// drawOverlay draws a boxed, centered block of lines.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxW := 0
	for _, line := range lines {
		maxW = max(maxW, runewidth.StringWidth(line))
	}

	boxW := maxW + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - runewidth.StringWidth(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move  Enter: Select  Esc: Cancel  ?: Hint  P: Pause  Q: Quit"
}
