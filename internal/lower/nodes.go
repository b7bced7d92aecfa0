// Package lower defines the expansion output: a small lowered IR, a
// source printer for the host compilation stage, and a reference
// interpreter used for tracing and property tests.
package lower

import (
	"github.com/tetherlang/tether/internal/typesystem"
)

// Node is the base interface for all lowered IR nodes.
type Node interface {
	node()
}

// VarRef reads a binding.
type VarRef struct {
	Name string
}

// IntLit is an integer constant.
type IntLit struct {
	Value int64
}

// FloatLit is a floating point constant.
type FloatLit struct {
	Value float64
}

// StringLit is a string constant.
type StringLit struct {
	Value string
}

// TypeLit is a type designator in value position, e.g. the target of a
// by-type fetch.
type TypeLit struct {
	Class *typesystem.TClass
}

// Member reads a field (or the owner link) of a host object.
type Member struct {
	Target Node
	Name   string
}

// Call invokes a function. The callee is almost always a VarRef naming
// a host primitive or a user function.
type Call struct {
	Callee Node
	Args   []Node
}

// Block is a statement sequence; its value is the last node's value.
type Block struct {
	Nodes []Node
}

// Let introduces a binding. A non-nil Class marks a checked re-bind at
// a narrowed type; the cast is guaranteed by construction and performs
// no runtime test.
type Let struct {
	Name  string
	Class *typesystem.TClass
	Value Node
}

// TypeTest is one runtime instance-of test. When the test passes, the
// subject is re-bound to Binder at the tested class and Then executes;
// otherwise Else (a further TypeTest, a Block, or nil).
type TypeTest struct {
	Subject Node
	Class   *typesystem.TClass
	Binder  string
	Then    *Block
	Else    Node
}

// ShapeSwitch is the closed two-way branch over the host-object
// shapes. It costs exactly one runtime tag check; there is no third
// case, so the component arm needs no test of its own.
type ShapeSwitch struct {
	Subject   Node
	Binder    string
	Entity    *Block
	Component *Block
}

// Noop is the value-less placeholder emitted when every clause of a
// conditional cast is pruned and no default exists.
type Noop struct{}

func (*VarRef) node()      {}
func (*IntLit) node()      {}
func (*FloatLit) node()    {}
func (*StringLit) node()   {}
func (*TypeLit) node()     {}
func (*Member) node()      {}
func (*Call) node()        {}
func (*Block) node()       {}
func (*Let) node()         {}
func (*TypeTest) node()    {}
func (*ShapeSwitch) node() {}
func (*Noop) node()        {}
