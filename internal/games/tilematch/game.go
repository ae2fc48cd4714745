// Package tilematch is the playable tile-matching game: a cursor, tile
// selection and paced cascades on top of the match3 engine.
package tilematch

import (
	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/match3"
	"github.com/vovakirdan/tilecrush/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

const (
	hintSeconds    = 3
	messageSeconds = 2
)

// Game implements registry.Game for one variant.
type Game struct {
	variant     string
	title       string
	description string

	preset  config.DifficultyPreset
	runtime core.RuntimeConfig
	cfg     config.TileMatchConfig
	session *match3.Session
	err     error

	tick        uint64
	secondTicks int // ticks since the countdown last moved
	stageWait   int // ticks left before the next cascade stage runs

	cursor    match3.Pos
	selected  bool
	selection match3.Pos

	hint      *match3.Candidate
	hintTicks int

	highlight  []match3.Pos // matched cells waiting to be removed
	gain       int          // points of the latest scoring round
	chainRound int
	message    string
	msgTicks   int

	paused   bool
	tooSmall bool
}

// New creates a game for the given variant ID.
func New(variant string) *Game {
	def := config.DefaultTileMatchConfig()
	v := def.Variants[variant]
	return &Game{
		variant:     variant,
		title:       v.Title,
		description: v.Description,
		preset:      difficultyPreset,
	}
}

// SetPreset overrides the difficulty preset for this game. It takes
// effect on the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// Resize updates the screen size without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.session != nil {
		g.checkScreenSize()
	}
}

func init() {
	for _, id := range config.DefaultTileMatchConfig().VariantIDs() {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.title == "" {
		return g.variant
	}
	return g.title
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return g.description
}

// Reset loads the configuration and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}
	g.tick = 0
	g.secondTicks = 0
	g.stageWait = 0
	g.selected = false
	g.hint = nil
	g.hintTicks = 0
	g.highlight = nil
	g.gain = 0
	g.chainRound = 0
	g.message = ""
	g.msgTicks = 0
	g.paused = false

	cfg, err := config.Resolve(configPath, g.variant, g.preset)
	if err != nil {
		g.err = err
		g.session = nil
		return
	}
	g.cfg = cfg

	session, err := match3.NewSession(cfg.Engine(),
		match3.WithSeed(runtime.Seed),
		match3.WithStepping(),
		match3.WithEventHandler(g.onEvent),
	)
	if err != nil {
		g.err = err
		g.session = nil
		return
	}
	g.err = nil
	g.session = session
	g.session.Start()

	g.cursor = match3.P(cfg.Board.Rows/2, cfg.Board.Cols/2)
	g.checkScreenSize()
}

// Err returns the configuration error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

func (g *Game) checkScreenSize() {
	minW, minH := g.minScreen()
	g.tooSmall = g.runtime.ScreenW < minW || g.runtime.ScreenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.session == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	active := g.session.Phase() == match3.PhaseActive
	if in.Has(core.ActionPause) && active {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.countdown()
	g.advanceStage()
	g.decayFeedback()

	if active {
		g.handleInput(in)
	}
	return core.StepResult{State: g.State()}
}

// countdown moves the session clock once per second of ticks.
func (g *Game) countdown() {
	if g.session.Phase() != match3.PhaseActive {
		return
	}
	g.secondTicks++
	if g.secondTicks >= g.runtime.TickRate {
		g.secondTicks = 0
		g.session.Tick()
	}
}

// advanceStage runs the next staged step once its delay has passed.
func (g *Game) advanceStage() {
	if !g.session.Busy() {
		return
	}
	if g.stageWait > 0 {
		g.stageWait--
		if g.stageWait > 0 {
			return
		}
	}
	g.session.Advance()
	if g.session.Busy() {
		g.stageWait = g.cfg.Pacing.Ticks(g.session.Next(), g.runtime.TickRate)
	}
}

func (g *Game) decayFeedback() {
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionBack) {
		g.selected = false
	}
	if in.Has(core.ActionConfirm) {
		g.confirm()
	}

	dr, dc := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dr = -1
	case in.Has(core.ActionDown):
		dr = 1
	case in.Has(core.ActionLeft):
		dc = -1
	case in.Has(core.ActionRight):
		dc = 1
	default:
		return
	}

	target := match3.P(
		core.Clamp(g.cursor.Row+dr, 0, g.cfg.Board.Rows-1),
		core.Clamp(g.cursor.Col+dc, 0, g.cfg.Board.Cols-1),
	)
	if g.selected {
		// A direction with a tile selected swaps it with that neighbour.
		g.selected = false
		if target != g.selection {
			g.cursor = target
			g.requestSwap(g.selection, target)
		}
		return
	}
	g.cursor = target
}

// confirm selects the tile under the cursor, deselects it, or swaps it with
// an adjacent selection.
func (g *Game) confirm() {
	switch {
	case !g.selected:
		g.selected = true
		g.selection = g.cursor
	case g.selection == g.cursor:
		g.selected = false
	case match3.Adjacent(g.selection, g.cursor):
		g.selected = false
		g.requestSwap(g.selection, g.cursor)
	default:
		g.selection = g.cursor
	}
}

func (g *Game) requestSwap(a, b match3.Pos) {
	res := g.session.RequestSwap(a, b)
	if res.Outcome == match3.OutcomePending {
		g.hint = nil
		g.hintTicks = 0
		g.stageWait = g.cfg.Pacing.Ticks(match3.StageSettleSwap, g.runtime.TickRate)
	}
}

func (g *Game) showHint() {
	best, ok := match3.BestSwap(g.session.Board())
	if !ok {
		g.flash("No moves left")
		return
	}
	g.hint = &best
	g.hintTicks = hintSeconds * g.runtime.TickRate
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.msgTicks = messageSeconds * g.runtime.TickRate
}

// State returns the current game state. The game is over once the clock
// has run out and any cascade started before that has settled.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Moves:    g.session.Moves(),
		GameOver: g.session.Phase() == match3.PhaseEnded && !g.session.Busy(),
		Paused:   g.paused || g.tooSmall,
	}
}

// ChainStats reports cascade counters for the leaderboard.
func (g *Game) ChainStats() (chains, longest, capped int) {
	if g.session == nil {
		return 0, 0, 0
	}
	return g.session.ChainStats()
}

// Duration returns the configured countdown length in seconds.
func (g *Game) Duration() int {
	return g.cfg.Session.DurationSeconds
}
