package match3

import "math/rand"

// DefaultMaxCascadeRounds bounds a chain reaction. Refills can in theory keep
// producing matches forever; no real game gets near this.
const DefaultMaxCascadeRounds = 100

// Stage is the next unit of work a session or cascade performs.
type Stage uint8

const (
	StageIdle Stage = iota
	StageSettleSwap
	StageRemove
	StageGravity
	StageRefill
	StageRescan
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSettleSwap:
		return "settle-swap"
	case StageRemove:
		return "remove"
	case StageGravity:
		return "gravity"
	case StageRefill:
		return "refill"
	case StageRescan:
		return "rescan"
	default:
		return "unknown"
	}
}

// Step describes one executed cascade stage.
type Step struct {
	Stage Stage
	Round int

	// Matches and Points are set by a rescan that found a new round.
	Matches []Match
	Points  int

	// Cells lists removed cells (StageRemove) or refilled cells (StageRefill).
	Cells []Pos
	Falls []Fall
}

// Cascade runs remove, gravity, refill and rescan rounds on a board until no
// match remains. Each round is scored when its matches are detected, before
// its cells are removed.
type Cascade struct {
	board     *Board
	kinds     int
	rng       *rand.Rand
	maxRounds int

	matches     []Match
	next        Stage
	round       int
	roundPoints int
	total       int
	capped      bool
}

// NewCascade starts a cascade from matches already detected on b and scores
// the first round. maxRounds <= 0 means no cap.
func NewCascade(b *Board, kinds int, rng *rand.Rand, initial []Match, maxRounds int) *Cascade {
	c := &Cascade{
		board:     b,
		kinds:     kinds,
		rng:       rng,
		maxRounds: maxRounds,
		next:      StageIdle,
	}
	if len(initial) > 0 {
		c.beginRound(initial)
	}
	return c
}

func (c *Cascade) beginRound(matches []Match) {
	c.matches = matches
	c.round++
	c.roundPoints = RoundPoints(matches)
	c.total += c.roundPoints
	c.next = StageRemove
}

// Done reports whether the board has settled.
func (c *Cascade) Done() bool {
	return c.next == StageIdle
}

// Next returns the stage the following Step will run.
func (c *Cascade) Next() Stage {
	return c.next
}

// Round returns the current 1-based round.
func (c *Cascade) Round() int {
	return c.round
}

// Matches returns the matches of the current round.
func (c *Cascade) Matches() []Match {
	return c.matches
}

// RoundPoints returns the points scored by the current round.
func (c *Cascade) RoundPoints() int {
	return c.roundPoints
}

// Total returns the points scored by every round so far.
func (c *Cascade) Total() int {
	return c.total
}

// Capped reports whether the round cap stopped the cascade with matches
// still on the board.
func (c *Cascade) Capped() bool {
	return c.capped
}

// Step runs the next stage. Calling Step on a settled cascade returns a
// StageIdle step and changes nothing.
func (c *Cascade) Step() Step {
	step := Step{Stage: c.next, Round: c.round}

	switch c.next {
	case StageRemove:
		step.Cells = distinctCells(c.matches)
		for _, p := range step.Cells {
			c.board.SetAt(p, Empty)
		}
		c.next = StageGravity

	case StageGravity:
		step.Falls = c.board.ApplyGravity()
		c.next = StageRefill

	case StageRefill:
		step.Cells = c.board.FillEmpty(c.kinds, c.rng)
		c.next = StageRescan

	case StageRescan:
		found := FindAllMatches(c.board)
		switch {
		case len(found) == 0:
			c.matches = nil
			c.next = StageIdle
		case c.maxRounds > 0 && c.round >= c.maxRounds:
			c.matches = nil
			c.capped = true
			c.next = StageIdle
		default:
			c.beginRound(found)
			step.Round = c.round
			step.Matches = found
			step.Points = c.roundPoints
		}
	}

	return step
}

// CascadeResult summarizes a fully resolved cascade.
type CascadeResult struct {
	Points int
	Rounds int
	Capped bool
	Steps  []Step
}

// Resolve runs a cascade from initial to completion and returns the total
// score delta. With no initial matches it does nothing.
func Resolve(b *Board, kinds int, rng *rand.Rand, initial []Match, maxRounds int) CascadeResult {
	c := NewCascade(b, kinds, rng, initial, maxRounds)
	var steps []Step
	for !c.Done() {
		steps = append(steps, c.Step())
	}
	return CascadeResult{
		Points: c.Total(),
		Rounds: c.Round(),
		Capped: c.Capped(),
		Steps:  steps,
	}
}
