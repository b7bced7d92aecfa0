package symbols

import (
	"github.com/tetherlang/tether/internal/typesystem"
)

// Symbol is a globally resolvable value: a host global, a registered
// collaborator function, or a builtin. Callable symbols never carry a
// usable static result type; call results are not tracked.
type Symbol struct {
	Name     string
	Type     typesystem.Type
	Callable bool
}

// SymbolTable holds the global symbols visible to every definition.
type SymbolTable struct {
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

func (st *SymbolTable) Define(sym Symbol) {
	if sym.Type == nil {
		sym.Type = typesystem.Unknown
	}
	st.symbols[sym.Name] = sym
}

func (st *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// TypeEnv is the lexical type environment of one expansion: a mapping
// from local binding name to its statically known type. Environments
// are immutable snapshots; With returns a child extension so sibling
// branches never observe each other's bindings.
type TypeEnv struct {
	parent   *TypeEnv
	bindings map[string]typesystem.Type
}

func NewTypeEnv() *TypeEnv {
	return &TypeEnv{bindings: make(map[string]typesystem.Type)}
}

// With returns a new environment extending e with one binding. A nil
// type records the binding with no static knowledge.
func (e *TypeEnv) With(name string, t typesystem.Type) *TypeEnv {
	if t == nil {
		t = typesystem.Unknown
	}
	return &TypeEnv{parent: e, bindings: map[string]typesystem.Type{name: t}}
}

// Lookup returns the recorded static type of a binding, and whether the
// binding exists at all. A bound name with no static knowledge yields
// (Unknown, true).
func (e *TypeEnv) Lookup(name string) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.bindings[name]; ok {
			return t, true
		}
	}
	return typesystem.Unknown, false
}
