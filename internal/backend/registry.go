package backend

import (
	"fmt"
	"sort"
)

// Factory is a function that creates a new backend instance.
type Factory func() Backend

// registry holds the registered backend factories.
var registry = make(map[string]Factory)

// Register registers a backend factory under the given name.
// It is called from each backend package's init() and panics on a
// duplicate name, which would indicate a programming error.
func Register(name string, factory Factory) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("backend %q already registered", name))
	}
	registry[name] = factory
}

// Get returns a new backend instance for the given name.
// Returns an error if no backend is registered under that name.
func Get(name string) (Backend, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (registered: %v)", name, RegisteredNames())
	}
	return factory(), nil
}

// RegisteredNames returns the names of all registered backends, sorted.
func RegisteredNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
