package expand

import (
	"fmt"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// methodRecord is one normalized method before bucketing: shorthand
// forms resolved through the message registry, explicit group methods
// tagged with their group's interface, defaults synthesized.
type methodRecord struct {
	name   string
	iface  string
	params []string
	body   *ast.BlockStatement // nil for synthesized defaults
	origin lower.MethodOrigin
	early  bool
}

// CompileComponent normalizes one component declaration into a lowered
// definition: the leading shorthand run is resolved through the
// message registry, explicit interface groups are flattened, the four
// required lifecycle and serialization methods get defaults when
// absent, early-delivered methods get a module-load guard prepended,
// and everything is bucketed per interface in first-appearance order.
//
// Warnings may accompany a successful result; the definition is nil
// only when an error-severity diagnostic is present.
func (e *Expander) CompileComponent(cd *ast.ComponentDeclaration) (*lower.Definition, []*diagnostics.DiagnosticError) {
	var diags []*diagnostics.DiagnosticError
	fail := func(code diagnostics.ErrorCode, node ast.TokenProvider, format string, args ...interface{}) {
		d := diagnostics.NewError(code, node.GetToken(), fmt.Sprintf(format, args...))
		d.File = e.file
		diags = append(diags, d)
	}

	fields := make([]lower.Field, 0, len(cd.Fields))
	seenField := make(map[string]bool, len(cd.Fields))
	for _, f := range cd.Fields {
		if f.Name == nil || f.Name.Value == "" {
			fail(diagnostics.ErrE006, f, "field declaration has no name")
			continue
		}
		if seenField[f.Name.Value] {
			fail(diagnostics.ErrE006, f, "duplicate field %s", f.Name.Value)
			continue
		}
		seenField[f.Name.Value] = true
		fields = append(fields, lower.Field{Name: f.Name.Value, Mutable: true})
	}

	records, declDiags := e.normalizeMembers(cd)
	diags = append(diags, declDiags...)
	if diagnostics.HasErrors(diags) {
		return nil, diags
	}

	records = e.injectDefaults(records)

	selfClass := e.componentClass(cd.Name.Value)
	env := symbols.NewTypeEnv().With(config.SelfName, selfClass)
	for _, f := range fields {
		env = env.With(f.Name, typesystem.Unknown)
	}

	def := &lower.Definition{Name: cd.Name.Value, Fields: fields}
	bucket := make(map[string]int)
	for _, rec := range records {
		method, err := e.lowerMethod(rec, env)
		if err != nil {
			diags = append(diags, err)
			return nil, diags
		}
		idx, ok := bucket[rec.iface]
		if !ok {
			idx = len(def.Impls)
			bucket[rec.iface] = idx
			def.Impls = append(def.Impls, lower.Impl{Interface: rec.iface})
		}
		def.Impls[idx].Methods = append(def.Impls[idx].Methods, method)
	}
	return def, diags
}

// normalizeMembers splits the member list into the leading shorthand
// run and the trailing explicit groups, resolving shorthand names
// through the message registry. A duplicate shorthand message is a
// warning; the later declaration replaces the earlier one.
func (e *Expander) normalizeMembers(cd *ast.ComponentDeclaration) ([]methodRecord, []*diagnostics.DiagnosticError) {
	var diags []*diagnostics.DiagnosticError
	var records []methodRecord
	declared := make(map[string]int)
	seenGroup := false

	for _, member := range cd.Members {
		switch m := member.(type) {
		case *ast.MessageDeclaration:
			if seenGroup {
				d := diagnostics.NewError(diagnostics.ErrE005, m.GetToken(),
					fmt.Sprintf("shorthand message %s must precede interface groups", m.Name.Value))
				d.File = e.file
				diags = append(diags, d)
				continue
			}
			spec, ok := e.msgs.Lookup(m.Name.Value)
			if !ok {
				d := diagnostics.NewError(diagnostics.ErrE001, m.GetToken(),
					fmt.Sprintf("message %s is not in the registry and has no explicit interface", m.Name.Value))
				d.File = e.file
				diags = append(diags, d)
				continue
			}
			rec := methodRecord{
				name:   spec.Name,
				iface:  spec.Interface,
				params: spec.Params,
				body:   m.Body,
				origin: lower.OriginUser,
				early:  spec.Early,
			}
			if prev, dup := declared[spec.Name]; dup {
				d := diagnostics.NewWarning(diagnostics.ErrE004, m.GetToken(),
					fmt.Sprintf("message %s declared more than once; the last declaration wins", spec.Name))
				d.File = e.file
				diags = append(diags, d)
				records[prev] = rec
				continue
			}
			declared[spec.Name] = len(records)
			records = append(records, rec)

		case *ast.InterfaceGroup:
			seenGroup = true
			for _, method := range m.Methods {
				params := make([]string, len(method.Params))
				for i, p := range method.Params {
					params[i] = p.Value
				}
				early := false
				if spec, ok := e.msgs.Lookup(method.Name.Value); ok {
					early = spec.Early
				}
				records = append(records, methodRecord{
					name:   method.Name.Value,
					iface:  m.Interface.Value,
					params: params,
					body:   method.Body,
					origin: lower.OriginUser,
					early:  early,
				})
			}
		}
	}
	return records, diags
}

// injectDefaults appends the four required lifecycle and serialization
// methods the user did not declare: no-op bodies for the two
// initialization messages, field-persistence delegation for the two
// serialization callbacks.
func (e *Expander) injectDefaults(records []methodRecord) []methodRecord {
	declared := make(map[string]bool, len(records))
	for _, rec := range records {
		declared[rec.name] = true
	}
	for _, name := range []string{config.MsgReady, config.MsgEnter, config.MsgSaveState, config.MsgLoadState} {
		if declared[name] {
			continue
		}
		spec, ok := e.msgs.Lookup(name)
		if !ok {
			continue
		}
		records = append(records, methodRecord{
			name:   spec.Name,
			iface:  spec.Interface,
			params: spec.Params,
			origin: lower.OriginDefault,
			early:  spec.Early,
		})
	}
	return records
}

// lowerMethod lowers one record's body, synthesizing default bodies
// and prepending the hot-reload guard on early-delivered user methods.
// The host may invoke early messages before the owning module is known
// to be loaded; the guard forces module initialization first.
func (e *Expander) lowerMethod(rec methodRecord, env *symbols.TypeEnv) (lower.Method, *diagnostics.DiagnosticError) {
	var body *lower.Block
	if rec.origin == lower.OriginDefault {
		body = e.defaultBody(rec.name)
	} else {
		for _, p := range rec.params {
			env = env.With(p, typesystem.Unknown)
		}
		var err *diagnostics.DiagnosticError
		body, err = e.lowerBlock(rec.body, env)
		if err != nil {
			return lower.Method{}, err
		}
		if rec.early {
			guard := &lower.Call{
				Callee: &lower.VarRef{Name: config.EnsureLoadedFuncName},
				Args:   []lower.Node{&lower.StringLit{Value: e.module}},
			}
			body.Nodes = append([]lower.Node{guard}, body.Nodes...)
		}
	}
	return lower.Method{Name: rec.name, Params: rec.params, Body: body, Origin: rec.origin}, nil
}

func (e *Expander) defaultBody(name string) *lower.Block {
	switch name {
	case config.MsgSaveState:
		return delegateBody(config.PersistFieldsFuncName)
	case config.MsgLoadState:
		return delegateBody(config.RestoreFieldsFuncName)
	}
	return &lower.Block{Nodes: []lower.Node{&lower.Noop{}}}
}

func delegateBody(fn string) *lower.Block {
	return &lower.Block{Nodes: []lower.Node{
		&lower.Call{
			Callee: &lower.VarRef{Name: fn},
			Args:   []lower.Node{&lower.VarRef{Name: config.SelfName}},
		},
	}}
}

// componentClass ensures the component's own class exists in the type
// registry as a Component subclass, so self carries a usable static
// shape inside method bodies.
func (e *Expander) componentClass(name string) *typesystem.TClass {
	if c, ok := e.types.Lookup(name); ok {
		return c
	}
	c, err := e.types.Define(name, config.ComponentClassName)
	if err != nil {
		if existing, ok := e.types.Lookup(config.ComponentClassName); ok {
			return existing
		}
		return nil
	}
	return c
}
