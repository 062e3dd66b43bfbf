package checker

import "sync"

// globalRegistry is the single global registry of conformance checkers.
var globalRegistry = &registry{checkers: make(map[Kind]Checker)}

type registry struct {
	mu       sync.RWMutex
	checkers map[Kind]Checker
}

// Register adds a checker to the global registry, keyed by its kind.
// Call this from init() functions in checker packages.
func Register(c Checker) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.checkers[c.Kind()] = c
}

// All returns every registered checker.
func All() []Checker {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	out := make([]Checker, 0, len(globalRegistry.checkers))
	for _, c := range globalRegistry.checkers {
		out = append(out, c)
	}
	return out
}

// Get returns the checker registered for a kind.
func Get(kind Kind) (Checker, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	c, ok := globalRegistry.checkers[kind]
	return c, ok
}

// Clear removes all registered checkers. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.checkers = make(map[Kind]Checker)
}
