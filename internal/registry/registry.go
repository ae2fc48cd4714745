// Package registry holds the playable game variants. Each variant registers
// a factory in init(); the CLI, the SSH menu and the simulator look games
// up by ID without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tilecrush/internal/core"
)

// Game is what the platform drives: fixed-tick steps, rendering into a
// screen buffer and a state summary for the HUD and the leaderboard.
type Game interface {
	// ID is the unique variant identifier used on the command line and in
	// the scores table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst. The screen is cleared before this call.
	Render(dst *core.Screen)

	// State returns the current score, moves and game-over flag.
	State() core.GameState
}

// Describer is implemented by games that carry a one-line description for
// menus and the list command.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	factories[id] = f
	infos[id] = info
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
