package tilematch

import "github.com/vovakirdan/tilecrush/internal/match3"

// StateType summarizes what the game is doing.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateSettling    StateType = "settling"
	StatePaused      StateType = "paused"
	StateTimeUp      StateType = "time_up"
	StatePausedSmall StateType = "paused_small_window"
	StateError       StateType = "error"
)

// Snapshot captures the game state for determinism testing and screenshots.
type Snapshot struct {
	Tick          uint64
	Variant       string
	Score         int
	Moves         int
	TimeRemaining int
	Stage         match3.Stage
	Board         string
	Cursor        match3.Pos
	Selected      bool
	Selection     match3.Pos
	State         StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Variant:   g.variant,
		Cursor:    g.cursor,
		Selected:  g.selected,
		Selection: g.selection,
	}
	if g.session == nil {
		snap.State = StateError
		return snap
	}

	snap.Score = g.session.Score()
	snap.Moves = g.session.Moves()
	snap.TimeRemaining = g.session.TimeRemaining()
	snap.Stage = g.session.Next()
	snap.Board = g.session.Board().String()

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.State().GameOver:
		snap.State = StateTimeUp
	case g.paused:
		snap.State = StatePaused
	case g.session.Busy():
		snap.State = StateSettling
	default:
		snap.State = StatePlaying
	}
	return snap
}
