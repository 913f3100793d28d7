package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/pkg/domain"
)

// Registry holds the triggers known to an engine, keyed by name.
type Registry struct {
	mu       sync.RWMutex
	triggers map[string]*domain.Trigger
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		triggers: make(map[string]*domain.Trigger),
	}
}

// Register adds triggers to the registry.
// A trigger with an existing name overwrites the previous definition.
func (r *Registry) Register(triggers ...*domain.Trigger) error {
	for _, t := range triggers {
		if t == nil || t.Name == "" {
			return fmt.Errorf("trigger must have a name")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range triggers {
		r.triggers[t.Name] = t
	}
	return nil
}

// Load parses a definition document and registers every trigger it declares.
func (r *Registry) Load(src io.Reader) error {
	triggers, err := compiler.LoadDefinitions(src)
	if err != nil {
		return err
	}
	return r.Register(triggers...)
}

// Get looks up a trigger by name.
func (r *Registry) Get(name string) (*domain.Trigger, error) {
	r.mu.RLock()
	t, ok := r.triggers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTrigger, name)
	}
	return t, nil
}

// Names returns the registered trigger names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.triggers))
	for name := range r.triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
