// Package registry provides a global registry of oscillator variants.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/core"
)

// Game is what the platform drives once per frame.
// Implementations hold no terminal or Bubble Tea state.
type Game interface {
	// ID returns the variant identifier (e.g., "course", "shrooms").
	// Used for CLI commands, config file names and replay storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset discards the session and returns to the initial menu.
	// The RuntimeConfig provides screen dimensions and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies the frame's input edges and advances the session
	// to the frame's timestamp.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current host-facing state.
	State() core.GameState
}

// VariantInfo contains metadata about a registered variant.
type VariantInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a game instance bound to a set of constants.
type Factory func(c config.GameConstants) Game

type entry struct {
	info    VariantInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if a variant with the same ID is already registered.
func Register(info VariantInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered variants, sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]VariantInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata for a registered variant.
func Info(id string) (VariantInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a variant with the given constants.
// The constants are validated before the factory is called.
func Create(id string, c config.GameConstants) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("registry: variant %q: %w", id, err)
	}

	return e.factory(c), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
