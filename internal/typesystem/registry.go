package typesystem

import "fmt"

// Registry maps type designator names to classes. One registry exists per
// expansion run; it is seeded with the host model classes and extended
// from project configuration before any definition is expanded.
type Registry struct {
	classes map[string]*TClass
	order   []string // declaration order, for deterministic listing
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*TClass)}
}

// Define registers a new class under the given parent. The parent must
// already be defined (empty parent name declares a hierarchy root).
func (r *Registry) Define(name, parentName string) (*TClass, error) {
	if name == "" {
		return nil, fmt.Errorf("class name is required")
	}
	if _, exists := r.classes[name]; exists {
		return nil, fmt.Errorf("class %s is already defined", name)
	}
	var parent *TClass
	if parentName != "" {
		p, ok := r.classes[parentName]
		if !ok {
			return nil, fmt.Errorf("class %s: unknown parent %s", name, parentName)
		}
		parent = p
	}
	c := &TClass{Name: name, Parent: parent}
	r.classes[name] = c
	r.order = append(r.order, name)
	return c, nil
}

// Lookup resolves a type designator name to its class.
func (r *Registry) Lookup(name string) (*TClass, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Names returns all registered class names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
