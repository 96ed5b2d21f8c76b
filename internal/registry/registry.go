// Package registry defines the contract every puzzle engine satisfies and a
// global registry of engine factories. Engines register themselves in init()
// functions, so the platform can construct them by name without hardcoded
// dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/stacker/internal/core"
)

// ErrInvalidDimensions is returned by factories for non-positive board sizes.
var ErrInvalidDimensions = errors.New("registry: invalid board dimensions")

// Grid is the read-only view of an engine that renderers need.
type Grid interface {
	// Dims returns the board size in columns and rows, without walls.
	Dims() (width, height int)

	// DisplayGet returns the colour of cell (x, y), including the falling piece.
	DisplayGet(x, y int) core.CellColor
}

// Engine is the falling-block puzzle engine driven by the game loop.
// The stacking rules live behind this interface; the loop only issues
// commands and asks what to draw. Every boolean result reports whether the
// visible state changed.
type Engine interface {
	Grid

	// Slide moves the falling piece dx columns (-1 or +1).
	Slide(dx int) bool

	// Down moves the falling piece one row down.
	Down() bool

	RotateClockwise() bool
	RotateAnticlockwise() bool

	// Drop moves the falling piece as far down as it can go.
	Drop()

	// Merge fixes the falling piece into the board.
	Merge()

	// Random spawns a new random piece.
	Random()

	// Tick applies one gravity step.
	Tick() bool

	IsGameOver() bool
}

// Factory creates a new engine with the given board size.
// It returns an error wrapping ErrInvalidDimensions for non-positive sizes.
type Factory func(width, height int) (Engine, error)

// EngineInfo contains metadata about a registered engine.
type EngineInfo struct {
	Name        string
	Description string
}

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds an engine factory to the registry.
// Typically called from an engine package's init() function.
// Panics if an engine with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: engine %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered engines, sorted by name.
func List() []EngineInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EngineInfo, 0, len(factories))
	for name := range factories {
		result = append(result, EngineInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown engine %q", name)
	}
	return f, nil
}

// Exists checks if an engine with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// CheckDims validates a board size for factories.
func CheckDims(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}
