package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tilecrush/internal/config"
	"github.com/vovakirdan/tilecrush/internal/core"
	"github.com/vovakirdan/tilecrush/internal/registry"
	"github.com/vovakirdan/tilecrush/internal/storage"
)

// Optional game capabilities the platform uses when present.
type (
	resizer interface {
		Resize(w, h int)
	}
	chainReporter interface {
		ChainStats() (chains, longest, capped int)
	}
	durationReporter interface {
		Duration() int
	}
	presetter interface {
		SetPreset(p config.DifficultyPreset)
	}
)

// GameOptions configures a GameModel.
type GameOptions struct {
	// Player is recorded with saved scores.
	Player string
	// Preset overrides the difficulty for this game when set.
	Preset config.DifficultyPreset
	// Logger receives score persistence and session messages.
	Logger *log.Logger
	// Standalone makes the model quit its program when the player asks
	// for the menu. Embedded models leave that to their parent.
	Standalone bool
}

// GameModel runs one game: fixed-rate ticks, key mapping, score saving.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	sessionID  string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the clock.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Preset != "" {
		if p, ok := game.(presetter); ok {
			p.SetPreset(opts.Preset)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		sessionID:  uuid.NewString(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.opts.Logger.Debug("screenshot saved", "path", path)
		}
		return m, nil

	case key.Matches(msg, keys.Menu):
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.opts.Standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize resizes the screen. Games that can follow a resize keep
// their session; others restart unless they are already over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	switch g := m.game.(type) {
	case resizer:
		g.Resize(msg.Width, msg.Height)
	default:
		if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.sessionID = uuid.NewString()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished session. Failures are logged; play
// continues regardless.
func (m *GameModel) saveScore() {
	entry := storage.ScoreEntry{
		GameID:    m.game.ID(),
		SessionID: m.sessionID,
		Player:    m.opts.Player,
		Score:     m.gameState.Score,
		Moves:     m.gameState.Moves,
	}
	if d, ok := m.game.(durationReporter); ok {
		entry.Duration = d.Duration()
	}
	if c, ok := m.game.(chainReporter); ok {
		var capped int
		entry.Chains, entry.MaxChain, capped = c.ChainStats()
		if capped > 0 {
			m.opts.Logger.Warn("cascades stopped at the round cap", "game", entry.GameID, "count", capped)
		}
	}

	m.opts.Logger.Info("session finished",
		"game", entry.GameID,
		"player", entry.Player,
		"score", entry.Score,
		"moves", entry.Moves,
	)

	if m.store == nil || entry.Score == 0 {
		return
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.opts.Logger.Error("could not save score", "game", entry.GameID, "error", err)
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.tilecrush/screenshots and returns the file path.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".tilecrush", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the player asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in its own Bubble Tea program. It reports whether the
// player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	opts.Standalone = true
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
