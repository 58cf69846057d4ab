package chain

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Context provides environmental information that effect factories need.
// Rand is an exclusively-owned stream for effects with random behavior; it
// may be nil for effects that do not use one.
type Context struct {
	SampleRate float64
	Rand       *rand.Rand
}

// Factory builds one processor instance for a chain node.
type Factory func(ctx Context, params Params) (Processor, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("chain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Types returns all registered effect type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}

	sort.Strings(types)

	return types
}
