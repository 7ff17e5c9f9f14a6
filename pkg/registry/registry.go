// Package registry keeps the ordered set of components hosted by the core and
// runs the bulk lifecycle operations over them.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/germanamz/fabricator/pkg/component"
)

// Registry is an ordered collection of components. Insertion order is
// preserved across Add and RemoveByName, and every bulk operation walks the
// components in that order.
//
// Names are not required to be unique. Lookups return the first match and
// RemoveByName removes every match.
//
// A Registry is not safe for concurrent use; the core mutates and iterates it
// from a single goroutine.
type Registry struct {
	components []component.Component
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add appends c to the registry. No duplicate-name check is performed.
func (r *Registry) Add(c component.Component) {
	r.components = append(r.components, c)
}

// RemoveByName removes every component named name and returns how many were
// removed. Survivors keep their relative order.
func (r *Registry) RemoveByName(name string) int {
	before := len(r.components)
	r.components = slices.DeleteFunc(r.components, func(c component.Component) bool {
		return c.Name() == name
	})

	return before - len(r.components)
}

// Get returns the first component named name.
func (r *Registry) Get(name string) (component.Component, bool) {
	for _, c := range r.components {
		if c.Name() == name {
			return c, true
		}
	}

	return nil, false
}

// Len returns the number of registered components.
func (r *Registry) Len() int { return len(r.components) }

// Names returns the component names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.components))
	for i, c := range r.components {
		names[i] = c.Name()
	}

	return names
}

// Components returns a copy of the registered components in insertion order.
func (r *Registry) Components() []component.Component {
	return slices.Clone(r.components)
}

// InitializeAll initializes every component in insertion order and returns
// the ones that reported failure. A failing component never stops the walk.
func (r *Registry) InitializeAll() []component.Component {
	var failed []component.Component

	for _, c := range r.components {
		if !c.Initialize() {
			failed = append(failed, c)
		}
	}

	return failed
}

// ShutdownAll shuts down every component in insertion order regardless of
// its status. A component that panics is recorded and the walk continues.
func (r *Registry) ShutdownAll() error {
	var errs []error

	for _, c := range r.components {
		if err := shutdown(c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// UpdateAll ticks every component once, in insertion order.
func (r *Registry) UpdateAll() {
	for _, c := range r.components {
		c.Update()
	}
}

func shutdown(c component.Component) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("registry: shutdown %s: panicked: %v", c.Name(), rec)
		}
	}()

	c.Shutdown()

	return nil
}
