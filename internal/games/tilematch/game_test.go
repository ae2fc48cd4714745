package tilematch

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/match3"
	"github.com/vovakirdan/tilecrush/internal/registry"
)

var runtime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     42,
}

// newSmallGame starts a 3x3, three-kind game with the given clock.
func newSmallGame(t *testing.T, duration string) *Game {
	t.Helper()
	t.Setenv("TILECRUSH_ROWS", "3")
	t.Setenv("TILECRUSH_COLS", "3")
	t.Setenv("TILECRUSH_KINDS", "3")
	t.Setenv("TILECRUSH_DURATION", duration)

	g := New(config.VariantClassic)
	g.Reset(runtime)
	if g.Err() != nil {
		t.Fatalf("Reset failed: %v", g.Err())
	}
	return g
}

func setBoard(t *testing.T, g *Game, rows [][]match3.Tile) {
	t.Helper()
	if err := g.session.SetBoard(match3.FromRows(rows)); err != nil {
		t.Fatalf("SetBoard failed: %v", err)
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{config.VariantClassic, config.VariantBlitz, config.VariantZen} {
		if !registry.Exists(id) {
			t.Errorf("variant %s is not registered", id)
		}
		info, _ := registry.Info(id)
		if info.Description == "" {
			t.Errorf("variant %s has no description", id)
		}
	}
}

func TestResetStartsSession(t *testing.T) {
	g := New(config.VariantClassic)
	g.Reset(runtime)

	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("State = %s, want playing (err %v)", snap.State, g.Err())
	}
	if snap.Score != 0 || snap.Moves != 0 {
		t.Errorf("new game should start at zero, got score %d moves %d", snap.Score, snap.Moves)
	}
	if snap.TimeRemaining != 300 {
		t.Errorf("TimeRemaining = %d, want 300", snap.TimeRemaining)
	}
	if snap.Cursor != match3.P(7, 7) {
		t.Errorf("Cursor = %v, want board centre", snap.Cursor)
	}
	if strings.Contains(snap.Board, ".") {
		t.Error("new board should have no empty cells")
	}
}

func TestBlitzVariant(t *testing.T) {
	g := New(config.VariantBlitz)
	g.Reset(runtime)

	if g.session.Rows() != 8 || g.session.Cols() != 8 {
		t.Errorf("blitz board = %dx%d, want 8x8", g.session.Rows(), g.session.Cols())
	}
	if g.session.TimeRemaining() != 60 {
		t.Errorf("blitz clock = %d, want 60", g.session.TimeRemaining())
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionHint, core.ActionConfirm, core.ActionRight, core.ActionUp,
		core.ActionConfirm, core.ActionDown, core.ActionLeft, core.ActionConfirm,
	}

	run := func() Snapshot {
		g := New(config.VariantBlitz)
		g.Reset(runtime)
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(script[(i/20)%len(script)])
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and input should give the same game:\n%+v\n%+v", a, b)
	}
}

func TestCursorClamped(t *testing.T) {
	g := newSmallGame(t, "60")

	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionUp))
		g.Step(press(core.ActionLeft))
	}
	if g.cursor != match3.P(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}

	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionDown))
		g.Step(press(core.ActionRight))
	}
	if g.cursor != match3.P(2, 2) {
		t.Errorf("cursor = %v, want (2,2)", g.cursor)
	}
}

func TestSelectAndSwap(t *testing.T) {
	g := newSmallGame(t, "60")
	setBoard(t, g, [][]match3.Tile{
		{0, 0, 1},
		{2, 1, 0},
		{1, 0, 0},
	})

	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionConfirm))
	if !g.selected || g.selection != match3.P(0, 2) {
		t.Fatalf("selection = %v (selected %v), want (0,2)", g.selection, g.selected)
	}

	g.Step(press(core.ActionDown))

	snap := g.Snapshot()
	if snap.Moves != 1 {
		t.Errorf("Moves = %d, want 1", snap.Moves)
	}
	if snap.State != StateSettling || snap.Stage != match3.StageSettleSwap {
		t.Errorf("after swap state %s stage %v, want settling before settle-swap", snap.State, snap.Stage)
	}
	if snap.Board != "0 0 0\n2 1 1\n1 0 0" {
		t.Errorf("board after swap:\n%s", snap.Board)
	}

	// The swap is held on screen for swap_ms before it is scored.
	ticks := 0
	for g.session.Score() == 0 && ticks < 100 {
		idle(g, 1)
		ticks++
	}
	if ticks != 18 {
		t.Errorf("swap settled after %d ticks, want 18 (300ms at 60 ticks/s)", ticks)
	}
	if g.session.Score() != 10 {
		t.Errorf("Score = %d, want 10", g.session.Score())
	}
	if len(g.highlight) != 3 {
		t.Errorf("matched cells should be highlighted, got %v", g.highlight)
	}

	for i := 0; g.session.Busy() && i < 10000; i++ {
		idle(g, 1)
	}
	snap = g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s after cascade, want playing", snap.State)
	}
	if strings.Contains(snap.Board, ".") {
		t.Errorf("board has holes after cascade:\n%s", snap.Board)
	}
	if snap.Score < 10 {
		t.Errorf("Score = %d, want at least 10", snap.Score)
	}
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	g := newSmallGame(t, "60")
	quiet := [][]match3.Tile{
		{0, 1, 2},
		{1, 2, 0},
		{0, 1, 2},
	}
	setBoard(t, g, quiet)

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionUp))
	idle(g, 18)

	snap := g.Snapshot()
	if snap.Moves != 1 {
		t.Errorf("a reverted swap still costs a move, got %d", snap.Moves)
	}
	if snap.Board != match3.FromRows(quiet).String() {
		t.Errorf("board should be restored:\n%s", snap.Board)
	}
	if g.message != "No match" {
		t.Errorf("message = %q, want \"No match\"", g.message)
	}
}

func TestConfirmToggleAndCancel(t *testing.T) {
	g := newSmallGame(t, "60")

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionConfirm))
	if g.selected {
		t.Error("confirming the selected tile again should deselect it")
	}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionBack))
	if g.selected {
		t.Error("Back should cancel the selection")
	}
	if g.session.Moves() != 0 {
		t.Errorf("no swap should have happened, moves %d", g.session.Moves())
	}
}

func TestHint(t *testing.T) {
	g := newSmallGame(t, "60")
	setBoard(t, g, [][]match3.Tile{
		{0, 1, 2},
		{1, 2, 0},
		{0, 1, 2},
	})

	g.Step(press(core.ActionHint))
	if g.hint == nil {
		t.Fatal("hint should be shown")
	}

	trial := g.session.Board()
	trial.Swap(g.hint.A, g.hint.B)
	if !match3.HasMatch(trial) {
		t.Errorf("hinted swap %v-%v does not match", g.hint.A, g.hint.B)
	}

	idle(g, hintSeconds*runtime.TickRate)
	if g.hint != nil {
		t.Error("hint should expire")
	}
}

func TestCountdownEndsGame(t *testing.T) {
	g := newSmallGame(t, "1")

	idle(g, 59)
	if g.State().GameOver {
		t.Fatal("game should not be over before a full second")
	}

	idle(g, 1)
	if !g.State().GameOver {
		t.Fatal("game should be over after the clock runs out")
	}
	if g.Snapshot().State != StateTimeUp {
		t.Errorf("State = %s, want time_up", g.Snapshot().State)
	}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionRight))
	if g.session.Moves() != 0 || g.selected {
		t.Error("input after time up should be ignored")
	}
}

func TestPauseStopsClock(t *testing.T) {
	g := newSmallGame(t, "60")

	g.Step(press(core.ActionPause))
	idle(g, 300)
	if g.session.TimeRemaining() != 60 {
		t.Errorf("clock moved while paused: %d", g.session.TimeRemaining())
	}
	if !g.State().Paused {
		t.Error("State should report paused")
	}

	g.Step(press(core.ActionPause))
	idle(g, 60)
	if g.session.TimeRemaining() != 59 {
		t.Errorf("clock = %d after resuming for a second, want 59", g.session.TimeRemaining())
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New(config.VariantClassic)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message should be rendered")
	}
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("TILECRUSH_KINDS", "2")

	g := New(config.VariantClassic)
	g.Reset(runtime)

	if g.Err() == nil {
		t.Fatal("two kinds should be rejected")
	}
	if !g.State().GameOver {
		t.Error("a game that cannot start should report game over")
	}
	g.Step(press(core.ActionConfirm))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start game") {
		t.Error("config error should be rendered")
	}
}

func TestRenderHUD(t *testing.T) {
	g := newSmallGame(t, "90")
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Score: 0", "Moves: 0", "Time 01:30", "Enter: Select"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q:\n%s", want, out)
		}
	}

	clockX := strings.Index(screen.Row(1), "Time")
	if c := screen.GetCell(clockX, 1); c.Color != core.ColorDefault {
		t.Errorf("clock color = %v with 90s left, want default", c.Color)
	}

	idle(g, 60*60)
	g.Render(screen)
	clockX = strings.Index(screen.Row(1), "Time")
	if c := screen.GetCell(clockX, 1); c.Color != core.ColorBrightRed {
		t.Errorf("clock color = %v with 30s left, want red", c.Color)
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newSmallGame(t, "1")
	idle(g, 60)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "TIME UP") {
		t.Errorf("time-up overlay missing:\n%s", screen.String())
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		300: "05:00",
		90:  "01:30",
		59:  "00:59",
		0:   "00:00",
		-5:  "00:00",
	}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newSmallGame(t, "60")
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionUp))
	moves := g.session.Moves()

	g.Resize(20, 8)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s after shrinking, want paused_small_window", g.Snapshot().State)
	}

	g.Resize(80, 24)
	if g.session.Moves() != moves {
		t.Errorf("resize restarted the session: moves %d, want %d", g.session.Moves(), moves)
	}
}

func TestSetPreset(t *testing.T) {
	g := New(config.VariantClassic)
	g.SetPreset(config.DifficultyHard)
	g.Reset(runtime)

	if g.session.TimeRemaining() != 200 {
		t.Errorf("hard preset clock = %d, want 200", g.session.TimeRemaining())
	}
	if g.cfg.Board.Kinds != 7 {
		t.Errorf("hard preset kinds = %d, want 7", g.cfg.Board.Kinds)
	}
}
