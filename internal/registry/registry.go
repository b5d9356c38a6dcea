// Package registry provides a global registry of play modes.
// Modes register themselves in init() functions, allowing the platform
// to list and select them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Mode describes a selectable way to play.
type Mode struct {
	// ID is a unique identifier used on the command line and in the
	// session journal (e.g., "classic", "wrap").
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary shown by the modes command.
	Description string

	// Boundary names the boundary policy ("walled" or "wraparound").
	Boundary string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a mode by its ID.
// Returns an error if the ID is not registered.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
