package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/registry"
)

func init() {
	registry.Register("zz_stub", func() registry.Game { return &stubGame{endAfter: 1} })
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func stubIndex(t *testing.T, m MenuModel) int {
	t.Helper()
	for i, item := range m.items {
		if item.GameID == "zz_stub" {
			return i
		}
	}
	t.Fatal("stub game missing from menu")
	return -1
}

func TestMenuSelectsVariantAndDifficulty(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m.cursor = stubIndex(t, m)

	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.Selected() != nil {
		t.Fatal("first Enter should open the difficulty picker")
	}
	if !strings.Contains(m.View(), "select difficulty") {
		t.Error("difficulty picker not shown")
	}

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || cmd == nil {
		t.Fatal("second Enter should select and quit the menu")
	}
	if sel.GameID != "zz_stub" || sel.Preset != config.DifficultyHard {
		t.Errorf("selected %+v, expected zz_stub on hard", *sel)
	}
}

func TestMenuDifficultyBack(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.inDifficulty {
		t.Error("Esc should return to the variant list")
	}
	if m.Selected() != nil {
		t.Error("nothing should be selected")
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	for i := 0; i < len(m.items)+3; i++ {
		m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("Tab should open the scoreboard")
	}

	m = NewMenuModel(nil, testConfig())
	m, _ = menuUpdate(t, m, runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abcdef", 4, "abcdef"},
		{"日本", 8, "  日本"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestSessionModelFlow(t *testing.T) {
	s := NewSessionModel(nil, testConfig(), "ann", quietLogger())
	s.menu.cursor = stubIndex(t, s.menu)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("expected to be in a game")
	}

	step(TickMsg{})
	step(runeKey("m"))
	if s.screen != screenMenu || s.gameModel != nil {
		t.Fatal("menu key after game over should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScoreboard {
		t.Fatal("Tab should open the scoreboard")
	}
	step(tea.KeyMsg{Type: tea.KeyEscape})
	if s.screen != screenMenu {
		t.Fatal("Esc should leave the scoreboard")
	}
	if s.quitting {
		t.Error("session should still be running")
	}
}
