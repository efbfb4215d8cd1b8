package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps runtime names to their providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry. Registering the same name twice
// is an error.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("cannot register nil provider")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("cannot register provider with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.providers[name] = p
	return nil
}

// Get returns the provider for a runtime name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown runtime %q", name)
	}
	return p, nil
}

// Names returns all registered runtime names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is populated by provider packages at init time via
// blank imports in main.
var defaultRegistry = NewRegistry()

// Register adds a provider to the default registry
func Register(p Provider) error {
	return defaultRegistry.Register(p)
}

// Get returns a provider from the default registry
func Get(name string) (Provider, error) {
	return defaultRegistry.Get(name)
}

// List returns all runtime names in the default registry
func List() []string {
	return defaultRegistry.Names()
}
