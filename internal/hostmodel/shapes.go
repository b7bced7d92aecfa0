// Package hostmodel holds the fixed facts about the host engine's
// object model that the expander consults: the two host-object shapes
// and their access capabilities, the lifecycle message registry, and
// the field persistence collaborator invoked by synthesized
// serialization callbacks.
package hostmodel

import (
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/typesystem"
)

// Shape is one of the two concrete host-object kinds. The pair is
// closed: every engine-managed value an accessor can receive is rooted
// in exactly one of them.
type Shape int

const (
	ShapeEntity Shape = iota
	ShapeComponent
)

func (s Shape) String() string {
	switch s {
	case ShapeEntity:
		return "Entity"
	case ShapeComponent:
		return "Component"
	}
	return "Shape(?)"
}

// TargetKind is the statically known kind of an accessor target: a
// type designator or a name string.
type TargetKind int

const (
	TargetByType TargetKind = iota
	TargetByName
)

func (k TargetKind) String() string {
	switch k {
	case TargetByType:
		return "ByType"
	case TargetByName:
		return "ByName"
	}
	return "TargetKind(?)"
}

// AccessOp returns the host primitive that performs a direct fetch for
// the given shape and target kind. Both shapes support both operations
// directly; the component variants reach through the owning entity
// inside the host, so the expander never has to emit that hop.
func AccessOp(shape Shape, kind TargetKind) string {
	switch shape {
	case ShapeEntity:
		if kind == TargetByType {
			return "entityGetByType"
		}
		return "entityGetByName"
	default:
		if kind == TargetByType {
			return "componentGetByType"
		}
		return "componentGetByName"
	}
}

// SeedRegistry defines the host class hierarchy in a fresh type
// registry: the two shape roots, the primitive classes, and the
// built-in component classes the engine ships with.
func SeedRegistry(r *typesystem.Registry) error {
	roots := []string{
		config.EntityClassName,
		config.ComponentClassName,
		config.TypeClassName,
		config.IntClassName,
		config.FloatClassName,
		config.StringClassName,
	}
	for _, name := range roots {
		if _, err := r.Define(name, ""); err != nil {
			return err
		}
	}
	builtins := []struct{ name, parent string }{
		{"Transform", config.ComponentClassName},
		{"Collider", config.ComponentClassName},
		{"BoxCollider", "Collider"},
		{"Rigidbody", config.ComponentClassName},
		{"Camera", config.ComponentClassName},
	}
	for _, b := range builtins {
		if _, err := r.Define(b.name, b.parent); err != nil {
			return err
		}
	}
	return nil
}

// ShapeOf classifies a static type as one of the two host shapes.
// Returns false when the type is Unknown or not engine-managed, in
// which case the accessor must branch on the runtime tag.
func ShapeOf(t typesystem.Type) (Shape, bool) {
	c, ok := typesystem.AsClass(t)
	if !ok {
		return 0, false
	}
	switch typesystem.RootOf(c).Name {
	case config.EntityClassName:
		return ShapeEntity, true
	case config.ComponentClassName:
		return ShapeComponent, true
	}
	return 0, false
}
