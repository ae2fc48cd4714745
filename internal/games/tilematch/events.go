package tilematch

import (
	"fmt"

	"github.com/vovakirdan/tilecrush/internal/match3"
)

// onEvent turns engine events into HUD feedback.
func (g *Game) onEvent(e match3.Event) {
	switch e.Kind {
	case match3.EventBoardInitialized:
		g.highlight = nil
		g.gain = 0
		g.chainRound = 0

	case match3.EventScoreChanged:
		g.gain = e.Points
		g.chainRound = e.Round
		g.highlight = g.highlight[:0]
		for _, m := range e.Matches {
			g.highlight = append(g.highlight, m.Cells...)
		}

	case match3.EventCellsRemoved:
		g.highlight = nil

	case match3.EventSwapReverted:
		g.flash("No match")

	case match3.EventSwapRejected:
		if e.Reason == match3.RejectBusy {
			g.flash("Wait for the board to settle")
		}

	case match3.EventCascadeSettled:
		if e.Round > 1 {
			g.flash(fmt.Sprintf("Chain x%d  +%d", e.Round, e.Points))
		}

	case match3.EventSessionEnded:
		g.selected = false
		g.hint = nil
	}
}

func (g *Game) highlighted(p match3.Pos) bool {
	for _, h := range g.highlight {
		if h == p {
			return true
		}
	}
	return false
}
