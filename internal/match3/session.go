package match3

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the session lifecycle state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Config sizes a session.
type Config struct {
	Rows  int
	Cols  int
	Kinds int
	// Duration is the countdown length in seconds.
	Duration int
	// MaxCascadeRounds caps a chain reaction; 0 disables the cap.
	MaxCascadeRounds int
}

// DefaultConfig returns the reference 15x15 board with six tile kinds and a
// five minute clock.
func DefaultConfig() Config {
	return Config{
		Rows:             15,
		Cols:             15,
		Kinds:            6,
		Duration:         5 * 60,
		MaxCascadeRounds: DefaultMaxCascadeRounds,
	}
}

// Validate checks the configuration. A session needs at least three kinds:
// with fewer, the initial scrub cannot produce a match-free board.
func (c Config) Validate() error {
	switch {
	case c.Rows < MinRun || c.Cols < MinRun:
		return fmt.Errorf("%w: board must be at least %dx%d, got %dx%d", ErrInvalidConfig, MinRun, MinRun, c.Rows, c.Cols)
	case c.Kinds < 3:
		return fmt.Errorf("%w: need at least 3 tile kinds, got %d", ErrInvalidConfig, c.Kinds)
	case c.Kinds > 127:
		return fmt.Errorf("%w: at most 127 tile kinds, got %d", ErrInvalidConfig, c.Kinds)
	case c.Duration < 1:
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidConfig, c.Duration)
	case c.MaxCascadeRounds < 0:
		return fmt.Errorf("%w: max cascade rounds must not be negative, got %d", ErrInvalidConfig, c.MaxCascadeRounds)
	}
	return nil
}

// Option customizes a Session.
type Option func(*Session)

// WithSeed seeds the session's tile generator.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses rng for tile generation.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithEventHandler registers the receiver of session events.
func WithEventHandler(h EventHandler) Option {
	return func(s *Session) {
		s.handler = h
	}
}

// WithStepping makes RequestSwap stop after the swap itself; the caller
// drives the remaining stages with Advance, one per presentation beat.
func WithStepping() Option {
	return func(s *Session) {
		s.stepped = true
	}
}

// Session is one timed game: a board, its counters and the swap/cascade
// state machine. It is not safe for concurrent use; one goroutine owns it.
type Session struct {
	cfg     Config
	rng     *rand.Rand
	handler EventHandler
	stepped bool

	board         *Board
	phase         Phase
	score         int
	moves         int
	timeRemaining int

	swapInFlight    bool
	cascadeInFlight bool
	swapA, swapB    Pos
	cascade         *Cascade

	chains       int
	longestChain int
	cappedChains int
}

// NewSession validates cfg and returns an Idle session. Without WithSeed or
// WithRand the generator is seeded from the clock.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, phase: PhaseIdle}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// Start (re)starts the session: counters reset, a fresh match-free board,
// phase Active. Any swap or cascade in flight is discarded with the old
// board.
func (s *Session) Start() {
	s.score = 0
	s.moves = 0
	s.timeRemaining = s.cfg.Duration
	s.swapInFlight = false
	s.cascadeInFlight = false
	s.cascade = nil
	s.chains = 0
	s.longestChain = 0
	s.cappedChains = 0

	s.board = Initialize(s.cfg.Rows, s.cfg.Cols, s.cfg.Kinds, s.rng)
	s.scrub()
	s.phase = PhaseActive

	s.emit(Event{Kind: EventBoardInitialized})
}

// scrub re-randomizes matched cells until the board has no run.
func (s *Session) scrub() {
	for {
		matches := FindAllMatches(s.board)
		if len(matches) == 0 {
			return
		}
		s.board.Randomize(distinctCells(matches), s.cfg.Kinds, s.rng)
	}
}

// RequestSwap asks to exchange a and b. Rejected requests change nothing.
// An accepted request always costs one move; a swap that makes no match is
// reverted.
func (s *Session) RequestSwap(a, b Pos) SwapResult {
	var reason RejectReason
	switch {
	case s.phase != PhaseActive:
		reason = RejectNotActive
	case s.Busy():
		reason = RejectBusy
	case !s.board.InBounds(a) || !s.board.InBounds(b):
		reason = RejectOutOfBounds
	case !Adjacent(a, b):
		reason = RejectNotAdjacent
	}
	if reason != RejectNone {
		s.emit(Event{Kind: EventSwapRejected, A: a, B: b, Reason: reason})
		return SwapResult{Outcome: OutcomeRejected, Reason: reason}
	}

	s.moves++
	s.emit(Event{Kind: EventMovesChanged})

	s.board.Swap(a, b)
	s.swapA, s.swapB = a, b
	s.swapInFlight = true
	s.emit(Event{Kind: EventSwapped, A: a, B: b})

	if s.stepped {
		return SwapResult{Accepted: true, Outcome: OutcomePending}
	}

	s.Advance()
	if s.cascade == nil {
		return SwapResult{Accepted: true, Outcome: OutcomeReverted}
	}
	c := s.cascade
	for s.Busy() {
		s.Advance()
	}
	return SwapResult{Accepted: true, Outcome: OutcomeMatched, Points: c.Total(), Rounds: c.Round()}
}

// SetBoard replaces the board of a started session, for puzzles and
// scripted scenarios. Counters are kept. The board must have the configured
// size and no swap or cascade may be in flight.
func (s *Session) SetBoard(b *Board) error {
	switch {
	case s.board == nil:
		return fmt.Errorf("%w: session not started", ErrNotReady)
	case s.Busy():
		return fmt.Errorf("%w: swap or cascade in flight", ErrNotReady)
	case b.Rows() != s.cfg.Rows || b.Cols() != s.cfg.Cols:
		return fmt.Errorf("%w: board is %dx%d, session is %dx%d", ErrInvalidConfig, b.Rows(), b.Cols(), s.cfg.Rows, s.cfg.Cols)
	}
	s.board = b.Clone()
	return nil
}

// Busy reports whether a swap or cascade is in flight.
func (s *Session) Busy() bool {
	return s.swapInFlight || s.cascadeInFlight
}

// Next returns the stage the following Advance will run.
func (s *Session) Next() Stage {
	switch {
	case s.swapInFlight:
		return StageSettleSwap
	case s.cascadeInFlight:
		return s.cascade.Next()
	default:
		return StageIdle
	}
}

// Advance runs the next stage of the in-flight swap or cascade and reports
// whether anything ran. It keeps working after the session ended so that a
// started cascade finishes.
func (s *Session) Advance() bool {
	switch {
	case s.swapInFlight:
		s.settleSwap()
		return true
	case s.cascadeInFlight:
		s.stepCascade()
		return true
	default:
		return false
	}
}

func (s *Session) settleSwap() {
	s.swapInFlight = false
	s.cascade = nil
	matches := FindAllMatches(s.board)
	if len(matches) == 0 {
		s.board.Swap(s.swapA, s.swapB)
		s.emit(Event{Kind: EventSwapReverted, A: s.swapA, B: s.swapB})
		return
	}

	s.cascade = NewCascade(s.board, s.cfg.Kinds, s.rng, matches, s.cfg.MaxCascadeRounds)
	s.cascadeInFlight = true
	s.addPoints(s.cascade.RoundPoints(), s.cascade.Round(), matches)
}

func (s *Session) stepCascade() {
	c := s.cascade
	step := c.Step()

	switch step.Stage {
	case StageRemove:
		s.emit(Event{Kind: EventCellsRemoved, Round: step.Round, Cells: step.Cells, Matches: c.Matches()})
	case StageGravity:
		s.emit(Event{Kind: EventGravityApplied, Round: step.Round, Falls: step.Falls})
	case StageRefill:
		s.emit(Event{Kind: EventCellsRefilled, Round: step.Round, Cells: step.Cells})
	case StageRescan:
		if len(step.Matches) > 0 {
			s.addPoints(step.Points, step.Round, step.Matches)
		}
	}

	if c.Done() {
		s.cascadeInFlight = false
		s.chains++
		if c.Round() > s.longestChain {
			s.longestChain = c.Round()
		}
		if c.Capped() {
			s.cappedChains++
		}
		s.emit(Event{Kind: EventCascadeSettled, Round: c.Round(), Points: c.Total()})
	}
}

func (s *Session) addPoints(points, round int, matches []Match) {
	s.score += points
	s.emit(Event{Kind: EventScoreChanged, Round: round, Matches: matches, Points: points})
}

// Tick advances the countdown by one second and reports whether this tick
// ended the session. It does nothing unless the session is Active.
func (s *Session) Tick() bool {
	if s.phase != PhaseActive {
		return false
	}
	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	s.emit(Event{Kind: EventTimeChanged})
	if s.timeRemaining > 0 {
		return false
	}
	s.phase = PhaseEnded
	s.emit(Event{Kind: EventSessionEnded})
	return true
}

func (s *Session) emit(e Event) {
	if s.handler == nil {
		return
	}
	e.Score = s.score
	e.Moves = s.moves
	e.TimeRemaining = s.timeRemaining
	s.handler(e)
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the points scored since Start.
func (s *Session) Score() int {
	return s.score
}

// Moves returns the number of accepted swaps since Start.
func (s *Session) Moves() int {
	return s.moves
}

// TimeRemaining returns the countdown in seconds.
func (s *Session) TimeRemaining() int {
	return s.timeRemaining
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Rows returns the board height.
func (s *Session) Rows() int {
	return s.cfg.Rows
}

// Cols returns the board width.
func (s *Session) Cols() int {
	return s.cfg.Cols
}

// Cell returns the tile at (row, col). It panics before Start.
func (s *Session) Cell(row, col int) Tile {
	return s.board.Get(row, col)
}

// Board returns a copy of the current board, or nil before Start.
func (s *Session) Board() *Board {
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

// ChainStats returns how many cascades ran, the longest in rounds and how
// many hit the round cap.
func (s *Session) ChainStats() (chains, longest, capped int) {
	return s.chains, s.longestChain, s.cappedChains
}
