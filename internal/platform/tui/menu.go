package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/registry"
	"github.com/vovakirdan/tilecrush/internal/storage"
)

// MenuItem represents a selectable game variant in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
	Preset      config.DifficultyPreset
}

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy    - more time, fewer tile kinds"},
	{config.DifficultyNormal, "Normal  - the configured board"},
	{config.DifficultyHard, "Hard    - less time, more tile kinds"},
	{config.DifficultyFixed, "Fixed   - config exactly as written"},
}

// MenuModel is the Bubble Tea model for the variant picker. Choosing a
// variant opens a difficulty picker before the game starts.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	diffCursor     int
	inDifficulty   bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered variant. High
// scores come from store when it is available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:      items,
		diffCursor: 1,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inDifficulty {
			return m.handleDifficultyKey(action)
		}
		return m.handleListKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleListKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.inDifficulty = true
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(difficultyOptions)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		item := m.items[m.cursor]
		item.Preset = difficultyOptions[m.diffCursor].preset
		m.selected = &item
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("T I L E C R U S H", m.width)))
	b.WriteString("\n\n")

	if m.inDifficulty {
		m.viewDifficulty(&b)
	} else {
		m.viewList(&b)
	}
	return b.String()
}

func (m MenuModel) viewList(b *strings.Builder) {
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = menuPickStyle
		}
		line := fmt.Sprintf("%s%-18s best %6d", cursor, item.Title, item.Best)
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		b.WriteString("\n")
		b.WriteString(menuDimStyle.Render(centerText(m.items[m.cursor].Description, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width)))
	b.WriteString("\n")
}

func (m MenuModel) viewDifficulty(b *strings.Builder) {
	b.WriteString(centerText(m.items[m.cursor].Title+" - select difficulty", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.diffCursor {
			cursor = "> "
			style = menuPickStyle
		}
		b.WriteString(style.Render(centerText(cursor+opt.label, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(centerText("Enter: Start  |  Esc: Back  |  Q: Quit", m.width)))
	b.WriteString("\n")
}

// Selected returns the chosen variant and difficulty, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.Preset = m.Selected().Preset
	default:
		result.Quit = true
	}
	return result, nil
}
