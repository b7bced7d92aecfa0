package lower

import (
	"fmt"

	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/typesystem"
)

// Value is a runtime value in the reference interpreter.
type Value interface {
	Inspect() string
}

type IntValue struct{ Value int64 }

func (v *IntValue) Inspect() string { return fmt.Sprintf("%d", v.Value) }

type FloatValue struct{ Value float64 }

func (v *FloatValue) Inspect() string { return fmt.Sprintf("%g", v.Value) }

type StringValue struct{ Value string }

func (v *StringValue) Inspect() string { return fmt.Sprintf("%q", v.Value) }

// TypeValue is a reified type designator.
type TypeValue struct{ Class *typesystem.TClass }

func (v *TypeValue) Inspect() string { return v.Class.Name }

type NilValue struct{}

func (v *NilValue) Inspect() string { return "nil" }

// Nil is the canonical nil value.
var Nil = &NilValue{}

// HostObject is a mock engine-managed object: an entity holding
// components, or a component linked to its owning entity.
type HostObject struct {
	Class      *typesystem.TClass
	Name       string
	Fields     *hostmodel.FieldStore
	Owner      *HostObject   // set on components
	Components []*HostObject // set on entities
}

func (v *HostObject) Inspect() string { return v.Class.Name + ":" + v.Name }

// Builtin is a host-side or test-side function callable from lowered
// code.
type Builtin func(args []Value) (Value, error)

// Interp executes lowered IR against mock host objects. It counts
// every runtime type test so property tests can assert exactly how
// many tests a specialization performs.
type Interp struct {
	Funcs map[string]Builtin

	TypeTests int      // runtime type tests executed
	Guards    []string // module names passed to ensureLoaded
	saved     []byte   // last persistFields snapshot
}

func NewInterp() *Interp {
	return &Interp{Funcs: make(map[string]Builtin)}
}

// ResetCounters clears the instrumentation between runs.
func (in *Interp) ResetCounters() {
	in.TypeTests = 0
	in.Guards = nil
}

// Exec evaluates a lowered node. The env maps binding names to values;
// blocks and branches extend copies, so sibling branches never observe
// each other's bindings.
func (in *Interp) Exec(n Node, env map[string]Value) (Value, error) {
	switch node := n.(type) {
	case *Noop:
		return Nil, nil

	case *VarRef:
		if v, ok := env[node.Name]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("unbound name %s", node.Name)

	case *IntLit:
		return &IntValue{Value: node.Value}, nil
	case *FloatLit:
		return &FloatValue{Value: node.Value}, nil
	case *StringLit:
		return &StringValue{Value: node.Value}, nil
	case *TypeLit:
		return &TypeValue{Class: node.Class}, nil

	case *Member:
		target, err := in.Exec(node.Target, env)
		if err != nil {
			return nil, err
		}
		obj, ok := target.(*HostObject)
		if !ok {
			return nil, fmt.Errorf("member access on non-object %s", target.Inspect())
		}
		if node.Name == "owner" {
			if obj.Owner == nil {
				return Nil, nil
			}
			return obj.Owner, nil
		}
		if v, ok := obj.Fields.Get(node.Name); ok {
			return hostValue(v), nil
		}
		return nil, fmt.Errorf("object %s has no field %s", obj.Inspect(), node.Name)

	case *Call:
		return in.execCall(node, env)

	case *Block:
		inner := copyEnv(env)
		var result Value = Nil
		for _, child := range node.Nodes {
			v, err := in.Exec(child, inner)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil

	case *Let:
		v, err := in.Exec(node.Value, env)
		if err != nil {
			return nil, err
		}
		env[node.Name] = v
		return Nil, nil

	case *TypeTest:
		in.TypeTests++
		subject, err := in.Exec(node.Subject, env)
		if err != nil {
			return nil, err
		}
		if instanceOf(subject, node.Class) {
			inner := copyEnv(env)
			if node.Binder != "" {
				inner[node.Binder] = subject
			}
			return in.Exec(node.Then, inner)
		}
		if node.Else == nil {
			return Nil, nil
		}
		return in.Exec(node.Else, env)

	case *ShapeSwitch:
		in.TypeTests++
		subject, err := in.Exec(node.Subject, env)
		if err != nil {
			return nil, err
		}
		obj, ok := subject.(*HostObject)
		if !ok {
			return nil, fmt.Errorf("shape branch on non-object %s", subject.Inspect())
		}
		inner := copyEnv(env)
		if node.Binder != "" {
			inner[node.Binder] = obj
		}
		if typesystem.RootOf(obj.Class).Name == config.EntityClassName {
			return in.Exec(node.Entity, inner)
		}
		return in.Exec(node.Component, inner)

	default:
		return nil, fmt.Errorf("cannot execute node %T", n)
	}
}

func (in *Interp) execCall(call *Call, env map[string]Value) (Value, error) {
	ref, ok := call.Callee.(*VarRef)
	if !ok {
		return nil, fmt.Errorf("indirect calls are not supported in lowered code")
	}

	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := in.Exec(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := in.Funcs[ref.Name]; ok {
		return fn(args)
	}
	if fn, ok := in.hostPrimitive(ref.Name); ok {
		return fn(args)
	}
	return nil, fmt.Errorf("unknown function %s", ref.Name)
}

// hostPrimitive resolves the built-in operations emitted by the
// expander: the four direct access ops, the hot-reload guard, and the
// field persistence pair.
func (in *Interp) hostPrimitive(name string) (Builtin, bool) {
	switch name {
	case "entityGetByType":
		return func(args []Value) (Value, error) {
			entity, target, err := accessArgs(args)
			if err != nil {
				return nil, err
			}
			return findByType(entity.Components, target)
		}, true
	case "entityGetByName":
		return func(args []Value) (Value, error) {
			entity, name, err := accessNameArgs(args)
			if err != nil {
				return nil, err
			}
			return findByName(entity.Components, name)
		}, true
	case "componentGetByType":
		return func(args []Value) (Value, error) {
			comp, target, err := accessArgs(args)
			if err != nil {
				return nil, err
			}
			if comp.Owner == nil {
				return Nil, nil
			}
			return findByType(comp.Owner.Components, target)
		}, true
	case "componentGetByName":
		return func(args []Value) (Value, error) {
			comp, name, err := accessNameArgs(args)
			if err != nil {
				return nil, err
			}
			if comp.Owner == nil {
				return Nil, nil
			}
			return findByName(comp.Owner.Components, name)
		}, true
	case config.EnsureLoadedFuncName:
		return func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%s expects 1 argument", config.EnsureLoadedFuncName)
			}
			mod, ok := args[0].(*StringValue)
			if !ok {
				return nil, fmt.Errorf("%s expects a module name", config.EnsureLoadedFuncName)
			}
			in.Guards = append(in.Guards, mod.Value)
			return Nil, nil
		}, true
	case config.PersistFieldsFuncName:
		return func(args []Value) (Value, error) {
			obj, err := selfArg(args, config.PersistFieldsFuncName)
			if err != nil {
				return nil, err
			}
			data, err := obj.Fields.Snapshot()
			if err != nil {
				return nil, err
			}
			in.saved = data
			return Nil, nil
		}, true
	case config.RestoreFieldsFuncName:
		return func(args []Value) (Value, error) {
			obj, err := selfArg(args, config.RestoreFieldsFuncName)
			if err != nil {
				return nil, err
			}
			if in.saved == nil {
				return Nil, nil
			}
			return Nil, obj.Fields.Restore(in.saved)
		}, true
	}
	return nil, false
}

func accessArgs(args []Value) (*HostObject, *TypeValue, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("access op expects 2 arguments, got %d", len(args))
	}
	obj, ok := args[0].(*HostObject)
	if !ok {
		return nil, nil, fmt.Errorf("access op on non-object %s", args[0].Inspect())
	}
	target, ok := args[1].(*TypeValue)
	if !ok {
		return nil, nil, fmt.Errorf("by-type access with non-type target %s", args[1].Inspect())
	}
	return obj, target, nil
}

func accessNameArgs(args []Value) (*HostObject, string, error) {
	if len(args) != 2 {
		return nil, "", fmt.Errorf("access op expects 2 arguments, got %d", len(args))
	}
	obj, ok := args[0].(*HostObject)
	if !ok {
		return nil, "", fmt.Errorf("access op on non-object %s", args[0].Inspect())
	}
	name, ok := args[1].(*StringValue)
	if !ok {
		return nil, "", fmt.Errorf("by-name access with non-string target %s", args[1].Inspect())
	}
	return obj, name.Value, nil
}

func selfArg(args []Value, op string) (*HostObject, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects 1 argument", op)
	}
	obj, ok := args[0].(*HostObject)
	if !ok {
		return nil, fmt.Errorf("%s expects a host object", op)
	}
	return obj, nil
}

func findByType(components []*HostObject, target *TypeValue) (Value, error) {
	for _, c := range components {
		if typesystem.AssignableTo(c.Class, target.Class) {
			return c, nil
		}
	}
	return Nil, nil
}

func findByName(components []*HostObject, name string) (Value, error) {
	for _, c := range components {
		if c.Name == name {
			return c, nil
		}
	}
	return Nil, nil
}

// instanceOf is the runtime counterpart of the static subtyping
// relation: the semantics pruning must preserve.
func instanceOf(v Value, c *typesystem.TClass) bool {
	switch val := v.(type) {
	case *HostObject:
		return typesystem.AssignableTo(val.Class, c)
	case *TypeValue:
		return c.Name == config.TypeClassName
	case *StringValue:
		return c.Name == config.StringClassName
	case *IntValue:
		return c.Name == config.IntClassName
	case *FloatValue:
		return c.Name == config.FloatClassName
	}
	return false
}

func hostValue(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Nil
	case int:
		return &IntValue{Value: int64(val)}
	case int64:
		return &IntValue{Value: val}
	case float64:
		return &FloatValue{Value: val}
	case string:
		return &StringValue{Value: val}
	case Value:
		return val
	}
	return Nil
}

func copyEnv(env map[string]Value) map[string]Value {
	inner := make(map[string]Value, len(env)+1)
	for k, v := range env {
		inner[k] = v
	}
	return inner
}
