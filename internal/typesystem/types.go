package typesystem

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Concrete() bool
}

// TClass represents a concrete host class with single inheritance.
// The host class hierarchy is the subtyping relation used by the
// expander: a class is assignable to itself and to every ancestor.
type TClass struct {
	Name   string
	Parent *TClass // nil for hierarchy roots
}

func (t *TClass) String() string { return t.Name }

func (t *TClass) Concrete() bool { return true }

// UnknownType is the explicit absence of static type knowledge.
// It is a value, not nil: the resolver is total and never fails.
type UnknownType struct{}

func (UnknownType) String() string { return "Unknown" }

func (UnknownType) Concrete() bool { return false }

// Unknown is the canonical UnknownType value.
var Unknown Type = UnknownType{}

// IsUnknown reports whether t carries no static knowledge.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(UnknownType)
	return ok
}

// AsClass extracts the concrete class from a type, if any.
func AsClass(t Type) (*TClass, bool) {
	c, ok := t.(*TClass)
	return c, ok && c != nil
}

// SubclassOf reports whether a is a strict subclass of b.
func SubclassOf(a, b *TClass) bool {
	if a == nil || b == nil {
		return false
	}
	for p := a.Parent; p != nil; p = p.Parent {
		if p == b {
			return true
		}
	}
	return false
}

// AssignableTo reports whether a value of class a can stand where class b
// is expected (subclass-or-equal).
func AssignableTo(a, b *TClass) bool {
	return a == b || SubclassOf(a, b)
}

// RootOf returns the topmost ancestor of a class.
func RootOf(a *TClass) *TClass {
	for a != nil && a.Parent != nil {
		a = a.Parent
	}
	return a
}
