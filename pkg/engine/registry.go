package engine

import (
	"fmt"
	"sort"
	"sync"
)

// The registry maps well-known engine identifiers to factories. Engine
// implementations register themselves from an init function, the same way
// database/sql drivers do, and the resolver probes identifiers in its
// declared strategy order.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine factory available under the given identifier.
// It panics if the identifier is already taken or the factory is nil, so
// wiring mistakes surface at process start rather than at resolution time.
func Register(identifier string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("engine: Register(%q) with nil factory", identifier))
	}
	if _, dup := registry[identifier]; dup {
		panic(fmt.Sprintf("engine: Register called twice for identifier %q", identifier))
	}
	registry[identifier] = factory
}

// Lookup returns the factory registered under the given identifier.
func Lookup(identifier string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := registry[identifier]
	return factory, ok
}

// Identifiers returns the sorted list of registered engine identifiers.
func Identifiers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
