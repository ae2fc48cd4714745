package match3

// EventKind identifies what happened inside a Session.
type EventKind uint8

const (
	EventBoardInitialized EventKind = iota
	EventSwapRejected
	EventSwapped
	EventSwapReverted
	EventCellsRemoved
	EventGravityApplied
	EventCellsRefilled
	EventScoreChanged
	EventMovesChanged
	EventTimeChanged
	EventCascadeSettled
	EventSessionEnded
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventBoardInitialized:
		return "board-initialized"
	case EventSwapRejected:
		return "swap-rejected"
	case EventSwapped:
		return "swapped"
	case EventSwapReverted:
		return "swap-reverted"
	case EventCellsRemoved:
		return "cells-removed"
	case EventGravityApplied:
		return "gravity-applied"
	case EventCellsRefilled:
		return "cells-refilled"
	case EventScoreChanged:
		return "score-changed"
	case EventMovesChanged:
		return "moves-changed"
	case EventTimeChanged:
		return "time-changed"
	case EventCascadeSettled:
		return "cascade-settled"
	case EventSessionEnded:
		return "session-ended"
	default:
		return "unknown"
	}
}

// Event is a notification for the presentation layer. Only the fields
// relevant to Kind are set; Score, Moves and TimeRemaining always carry the
// session counters after the event.
type Event struct {
	Kind EventKind

	// A and B are the swapped cells for swap events.
	A, B   Pos
	Reason RejectReason

	// Round is the 1-based cascade round for cascade events, or the number of
	// rounds played for EventCascadeSettled.
	Round   int
	Matches []Match
	Cells   []Pos
	Falls   []Fall

	// Points is the score delta for EventScoreChanged, or the cascade total
	// for EventCascadeSettled.
	Points int

	Score         int
	Moves         int
	TimeRemaining int
}

// EventHandler receives session events synchronously, on the goroutine that
// called into the session. Handlers must not call back into the session.
type EventHandler func(Event)
