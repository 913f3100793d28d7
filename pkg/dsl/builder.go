package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/registry"
)

// Styles is shorthand for a style map literal.
type Styles = domain.StyleMap

// Builder manages the construction of a set of triggers.
type Builder struct {
	order    []string
	triggers map[string]*TriggerBuilder
}

// New creates a new trigger builder.
func New() *Builder {
	return &Builder{
		triggers: make(map[string]*TriggerBuilder),
	}
}

// Add starts declaring a trigger.
// If the trigger already exists, it returns the existing builder.
func (b *Builder) Add(name string) *TriggerBuilder {
	if tb, ok := b.triggers[name]; ok {
		return tb
	}
	tb := NewTrigger(name)
	b.triggers[name] = tb
	b.order = append(b.order, name)
	return tb
}

// Triggers builds every declared trigger in declaration order.
func (b *Builder) Triggers() ([]*domain.Trigger, error) {
	out := make([]*domain.Trigger, 0, len(b.order))
	var errs []error
	for _, name := range b.order {
		t, err := b.triggers[name].Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Build compiles the declared triggers into a Registry.
func (b *Builder) Build() (*registry.Registry, error) {
	triggers, err := b.Triggers()
	if err != nil {
		return nil, fmt.Errorf("failed to build triggers: %w", err)
	}
	reg := registry.NewRegistry()
	if err := reg.Register(triggers...); err != nil {
		return nil, err
	}
	return reg, nil
}
