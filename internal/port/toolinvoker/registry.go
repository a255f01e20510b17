package toolinvoker

import (
	"fmt"
	"sync"
)

// Factory is a constructor function that creates a new Invoker instance.
type Factory func(config map[string]string) (Invoker, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes an invoker factory available by tool type.
// It is typically called from an init() function in the adapter package.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("toolinvoker: duplicate registration for %q", name))
	}
	factories[name] = factory
}

// New creates a new Invoker by tool type using the registered factory.
func New(name string, config map[string]string) (Invoker, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("toolinvoker: unknown tool type %q", name)
	}
	return factory(config)
}

// Available returns the names of all registered invokers.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
