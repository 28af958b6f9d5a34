package model

import (
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// Builder constructs a model from the architecture-specific config section
// of a manifest.
type Builder func(cfg json.RawMessage) (Model, error)

// Registry maps architecture names to builders. Architectures register
// themselves once at program start; loading resolves names against the
// registry instead of reflecting over anything at call time.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder for an architecture name.
// Registering the same name twice panics: two architectures claiming one
// name is a programming error, not a runtime condition.
func (r *Registry) Register(name string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		panic(fmt.Sprintf("model: architecture %q registered twice", name))
	}
	r.builders[name] = b
}

// Get returns the builder for an architecture name.
func (r *Registry) Get(name string) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[name]
	return b, ok
}

// Architectures returns all registered architecture names.
func (r *Registry) Architectures() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	return names
}

// defaultRegistry holds the process-wide architecture registrations.
var defaultRegistry = NewRegistry()

// Register adds a builder to the default registry.
func Register(name string, b Builder) {
	defaultRegistry.Register(name, b)
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}
