package expand

import (
	"testing"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

func fetchCall(args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Function: id("fetch"), Arguments: args}
}

// world builds an entity holding a BoxCollider named hull and a
// Rigidbody named body, for exercising every specialization level.
func world(t *testing.T, e *Expander) (entity, hull, body *lower.HostObject) {
	t.Helper()
	hull = makeComp(t, e, "BoxCollider", "hull")
	body = makeComp(t, e, "Rigidbody", "body")
	entity = makeEntity(t, e, "player", hull, body)
	return entity, hull, body
}

func execFetch(t *testing.T, compiled lower.Node, env map[string]lower.Value) (lower.Value, int) {
	t.Helper()
	in := lower.NewInterp()
	v, err := in.Exec(compiled, env)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	return v, in.TypeTests
}

// Full static knowledge compiles to one direct call: no branches, no
// runtime tests.
func TestFetchDirectCall(t *testing.T) {
	e := newTestExpander(t)
	player, err := e.types.Define("Player", "Component")
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	env := symbols.NewTypeEnv().With("self", player)

	compiled, derr := e.CompileFetch(fetchCall(id("self"), designator("Collider")), env)
	if derr != nil {
		t.Fatalf("CompileFetch: %v", derr)
	}
	call, ok := compiled.(*lower.Call)
	if !ok {
		t.Fatalf("compiled = %T, want direct Call", compiled)
	}
	if callee := call.Callee.(*lower.VarRef).Name; callee != "componentGetByType" {
		t.Errorf("callee = %s, want componentGetByType", callee)
	}

	_, hull, body := world(t, e)
	v, tests := execFetch(t, compiled, map[string]lower.Value{"self": body})
	if v != lower.Value(hull) {
		t.Errorf("result = %s, want hull", v.Inspect())
	}
	if tests != 0 {
		t.Errorf("type tests = %d, want 0", tests)
	}
}

// Known shape with unknown target kind branches once on the kind and
// then calls directly.
func TestFetchKindBranch(t *testing.T) {
	e := newTestExpander(t)
	entityClass := mustClass(t, e, "Entity")
	env := symbols.NewTypeEnv().With("e", entityClass).With("target", typesystem.Unknown)

	compiled, derr := e.CompileFetch(fetchCall(id("e"), id("target")), env)
	if derr != nil {
		t.Fatalf("CompileFetch: %v", derr)
	}
	if _, ok := compiled.(*lower.TypeTest); !ok {
		t.Fatalf("compiled = %T, want kind branch", compiled)
	}

	entity, hull, _ := world(t, e)

	byType := map[string]lower.Value{
		"e":      entity,
		"target": &lower.TypeValue{Class: mustClass(t, e, "Collider")},
	}
	v, tests := execFetch(t, compiled, byType)
	if v != lower.Value(hull) {
		t.Errorf("by-type result = %s, want hull", v.Inspect())
	}
	if tests != 1 {
		t.Errorf("by-type tests = %d, want 1", tests)
	}

	byName := map[string]lower.Value{
		"e":      entity,
		"target": &lower.StringValue{Value: "body"},
	}
	v, tests = execFetch(t, compiled, byName)
	if v.Inspect() != "Rigidbody:body" {
		t.Errorf("by-name result = %s, want body", v.Inspect())
	}
	if tests != 2 {
		t.Errorf("by-name tests = %d, want 2", tests)
	}
}

// Unknown shape with known target kind branches once on the host-object
// tag; both arms call directly.
func TestFetchShapeBranch(t *testing.T) {
	e := newTestExpander(t)
	env := symbols.NewTypeEnv().With("o", typesystem.Unknown)

	compiled, derr := e.CompileFetch(fetchCall(id("o"), designator("Collider")), env)
	if derr != nil {
		t.Fatalf("CompileFetch: %v", derr)
	}
	if _, ok := compiled.(*lower.ShapeSwitch); !ok {
		t.Fatalf("compiled = %T, want shape branch", compiled)
	}

	entity, hull, body := world(t, e)

	v, tests := execFetch(t, compiled, map[string]lower.Value{"o": entity})
	if v != lower.Value(hull) {
		t.Errorf("entity arm result = %s, want hull", v.Inspect())
	}
	if tests != 1 {
		t.Errorf("entity arm tests = %d, want 1", tests)
	}

	v, tests = execFetch(t, compiled, map[string]lower.Value{"o": body})
	if v != lower.Value(hull) {
		t.Errorf("component arm result = %s, want hull", v.Inspect())
	}
	if tests != 1 {
		t.Errorf("component arm tests = %d, want 1", tests)
	}
}

// No static knowledge at all degrades to nested branches: shape outer,
// target kind inner. The result never changes, only the test count.
func TestFetchFullyDynamic(t *testing.T) {
	e := newTestExpander(t)
	env := symbols.NewTypeEnv().With("o", typesystem.Unknown).With("target", typesystem.Unknown)

	compiled, derr := e.CompileFetch(fetchCall(id("o"), id("target")), env)
	if derr != nil {
		t.Fatalf("CompileFetch: %v", derr)
	}

	entity, hull, body := world(t, e)
	collider := &lower.TypeValue{Class: mustClass(t, e, "Collider")}

	v, tests := execFetch(t, compiled, map[string]lower.Value{"o": entity, "target": collider})
	if v != lower.Value(hull) {
		t.Errorf("result = %s, want hull", v.Inspect())
	}
	if tests != 2 {
		t.Errorf("tests = %d, want 2 (tag check + kind test)", tests)
	}

	v, tests = execFetch(t, compiled, map[string]lower.Value{"o": body, "target": &lower.StringValue{Value: "hull"}})
	if v != lower.Value(hull) {
		t.Errorf("result = %s, want hull", v.Inspect())
	}
	if tests != 3 {
		t.Errorf("tests = %d, want 3 (tag check + two kind tests)", tests)
	}
}

// Non-trivial arguments are hoisted to temporaries left to right, so
// each side effect happens exactly once per call.
func TestFetchArgumentsEvaluatedOnce(t *testing.T) {
	e := newTestExpander(t)
	env := symbols.NewTypeEnv()

	compiled, derr := e.CompileFetch(fetchCall(
		&ast.CallExpression{Function: id("getObj")},
		&ast.CallExpression{Function: id("getTarget")},
	), env)
	if derr != nil {
		t.Fatalf("CompileFetch: %v", derr)
	}

	entity, hull, _ := world(t, e)
	objCalls, targetCalls := 0, 0

	in := lower.NewInterp()
	in.Funcs["getObj"] = func(args []lower.Value) (lower.Value, error) {
		objCalls++
		return entity, nil
	}
	in.Funcs["getTarget"] = func(args []lower.Value) (lower.Value, error) {
		targetCalls++
		return &lower.TypeValue{Class: mustClass(t, e, "Collider")}, nil
	}

	v, err := in.Exec(compiled, map[string]lower.Value{})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v != lower.Value(hull) {
		t.Errorf("result = %s, want hull", v.Inspect())
	}
	if objCalls != 1 || targetCalls != 1 {
		t.Errorf("evaluations = (%d, %d), want (1, 1)", objCalls, targetCalls)
	}
}

func TestFetchArity(t *testing.T) {
	e := newTestExpander(t)
	_, err := e.CompileFetch(fetchCall(id("self")), symbols.NewTypeEnv())
	if err == nil {
		t.Fatal("expected a diagnostic")
	}
	if err.Code != diagnostics.ErrE003 {
		t.Errorf("code = %s, want %s", err.Code, diagnostics.ErrE003)
	}
}
