package lower

// MethodOrigin distinguishes user-declared method records from the
// defaults force-inserted by the Definition Compiler.
type MethodOrigin int

const (
	OriginUser MethodOrigin = iota
	OriginDefault
)

// Field is one serialized component field. Every field is individually
// mutable: the host's serialization and inspection machinery writes
// fields directly after construction.
type Field struct {
	Name    string
	Mutable bool
}

// Method is one normalized method record.
type Method struct {
	Name   string
	Params []string
	Body   *Block
	Origin MethodOrigin
}

// Impl is one implementation block: all methods of one interface.
type Impl struct {
	Interface string
	Methods   []Method
}

// Definition is the lowered component definition consumed by the host
// compilation stage.
type Definition struct {
	Name   string
	Fields []Field
	Impls  []Impl
}

// Impl returns the implementation block for an interface, if present.
func (d *Definition) Impl(name string) (*Impl, bool) {
	for i := range d.Impls {
		if d.Impls[i].Interface == name {
			return &d.Impls[i], true
		}
	}
	return nil, false
}

// Method returns the method record with the given name, searching all
// implementation blocks.
func (d *Definition) Method(name string) (*Method, bool) {
	for i := range d.Impls {
		for j := range d.Impls[i].Methods {
			if d.Impls[i].Methods[j].Name == name {
				return &d.Impls[i].Methods[j], true
			}
		}
	}
	return nil, false
}
