package lower

import (
	"strings"
	"testing"

	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/typesystem"
)

func testHierarchy(t *testing.T) *typesystem.Registry {
	t.Helper()
	r := typesystem.NewRegistry()
	if err := hostmodel.SeedRegistry(r); err != nil {
		t.Fatalf("SeedRegistry: %v", err)
	}
	return r
}

func class(t *testing.T, r *typesystem.Registry, name string) *typesystem.TClass {
	t.Helper()
	c, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%s) failed", name)
	}
	return c
}

// makeEntity builds an entity with the given components attached.
func makeEntity(r *typesystem.Registry, name string, comps ...*HostObject) *HostObject {
	entity := &HostObject{Name: name, Fields: hostmodel.NewFieldStore()}
	if c, ok := r.Lookup("Entity"); ok {
		entity.Class = c
	}
	for _, comp := range comps {
		comp.Owner = entity
		entity.Components = append(entity.Components, comp)
	}
	return entity
}

func TestTypeTestChain(t *testing.T) {
	r := testHierarchy(t)
	collider := class(t, r, "Collider")
	rigidbody := class(t, r, "Rigidbody")
	box := class(t, r, "BoxCollider")

	var hits []string
	record := func(tag string) Builtin {
		return func(args []Value) (Value, error) {
			hits = append(hits, tag)
			return Nil, nil
		}
	}

	chain := &Block{Nodes: []Node{
		&Let{Name: "__t0", Value: &VarRef{Name: "subject"}},
		&TypeTest{
			Subject: &VarRef{Name: "__t0"},
			Class:   collider,
			Binder:  "c",
			Then:    &Block{Nodes: []Node{&Call{Callee: &VarRef{Name: "hitCollider"}, Args: []Node{&VarRef{Name: "c"}}}}},
			Else: &TypeTest{
				Subject: &VarRef{Name: "__t0"},
				Class:   rigidbody,
				Binder:  "rb",
				Then:    &Block{Nodes: []Node{&Call{Callee: &VarRef{Name: "hitRigidbody"}, Args: []Node{&VarRef{Name: "rb"}}}}},
			},
		},
	}}

	tests := []struct {
		name      string
		class     *typesystem.TClass
		wantHits  []string
		wantTests int
	}{
		{"first clause", collider, []string{"hitCollider"}, 1},
		{"subclass matches first clause", box, []string{"hitCollider"}, 1},
		{"second clause", rigidbody, []string{"hitRigidbody"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits = nil
			in := NewInterp()
			in.Funcs["hitCollider"] = record("hitCollider")
			in.Funcs["hitRigidbody"] = record("hitRigidbody")

			subject := &HostObject{Class: tt.class, Fields: hostmodel.NewFieldStore()}
			env := map[string]Value{"subject": subject}
			if _, err := in.Exec(chain, env); err != nil {
				t.Fatalf("Exec: %v", err)
			}
			if strings.Join(hits, ",") != strings.Join(tt.wantHits, ",") {
				t.Errorf("hits = %v, want %v", hits, tt.wantHits)
			}
			if in.TypeTests != tt.wantTests {
				t.Errorf("type tests = %d, want %d", in.TypeTests, tt.wantTests)
			}
		})
	}
}

func TestShapeSwitchCountsOneTest(t *testing.T) {
	r := testHierarchy(t)
	collider := class(t, r, "Collider")

	sw := &ShapeSwitch{
		Subject:   &VarRef{Name: "obj"},
		Binder:    "o",
		Entity:    &Block{Nodes: []Node{&StringLit{Value: "entity"}}},
		Component: &Block{Nodes: []Node{&StringLit{Value: "component"}}},
	}

	in := NewInterp()
	entity := makeEntity(r, "root")
	v, err := in.Exec(sw, map[string]Value{"obj": entity})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v.(*StringValue).Value != "entity" {
		t.Errorf("entity arm not taken: %s", v.Inspect())
	}

	comp := &HostObject{Class: collider, Fields: hostmodel.NewFieldStore()}
	v, err = in.Exec(sw, map[string]Value{"obj": comp})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v.(*StringValue).Value != "component" {
		t.Errorf("component arm not taken: %s", v.Inspect())
	}
	if in.TypeTests != 2 {
		t.Errorf("type tests = %d, want 2 (one tag check per run)", in.TypeTests)
	}
}

func TestAccessPrimitives(t *testing.T) {
	r := testHierarchy(t)
	collider := class(t, r, "Collider")
	box := class(t, r, "BoxCollider")
	rigidbody := class(t, r, "Rigidbody")

	boxComp := &HostObject{Class: box, Name: "hull", Fields: hostmodel.NewFieldStore()}
	body := &HostObject{Class: rigidbody, Name: "body", Fields: hostmodel.NewFieldStore()}
	entity := makeEntity(r, "player", boxComp, body)

	in := NewInterp()
	env := map[string]Value{"e": entity, "c": body}

	// by-type lookup from the entity: subclass instances satisfy
	// supertype requests
	v, err := in.Exec(&Call{
		Callee: &VarRef{Name: "entityGetByType"},
		Args:   []Node{&VarRef{Name: "e"}, &TypeLit{Class: collider}},
	}, env)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v != Value(boxComp) {
		t.Errorf("entityGetByType = %s, want hull", v.Inspect())
	}

	// by-name lookup routed through a sibling component's owner
	v, err = in.Exec(&Call{
		Callee: &VarRef{Name: "componentGetByName"},
		Args:   []Node{&VarRef{Name: "c"}, &StringLit{Value: "hull"}},
	}, env)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v != Value(boxComp) {
		t.Errorf("componentGetByName = %s, want hull", v.Inspect())
	}

	// missing component yields nil, not an error
	v, err = in.Exec(&Call{
		Callee: &VarRef{Name: "entityGetByName"},
		Args:   []Node{&VarRef{Name: "e"}, &StringLit{Value: "missing"}},
	}, env)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if v != Value(Nil) {
		t.Errorf("missing lookup = %s, want nil", v.Inspect())
	}
}

func TestPersistPrimitives(t *testing.T) {
	r := testHierarchy(t)
	collider := class(t, r, "Collider")

	comp := &HostObject{Class: collider, Fields: hostmodel.NewFieldStore("health", "speed")}
	if err := comp.Fields.Set("health", 42); err != nil {
		t.Fatalf("Set: %v", err)
	}

	in := NewInterp()
	env := map[string]Value{"self": comp}
	if _, err := in.Exec(&Call{Callee: &VarRef{Name: "persistFields"}, Args: []Node{&VarRef{Name: "self"}}}, env); err != nil {
		t.Fatalf("persistFields: %v", err)
	}

	if err := comp.Fields.Set("health", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := in.Exec(&Call{Callee: &VarRef{Name: "restoreFields"}, Args: []Node{&VarRef{Name: "self"}}}, env); err != nil {
		t.Fatalf("restoreFields: %v", err)
	}
	if v, _ := comp.Fields.Get("health"); v != 42 {
		t.Errorf("health = %v, want 42", v)
	}
}

func TestBranchScopesDoNotLeak(t *testing.T) {
	r := testHierarchy(t)
	collider := class(t, r, "Collider")

	// The binder from a taken branch must not escape the branch.
	n := &Block{Nodes: []Node{
		&TypeTest{
			Subject: &VarRef{Name: "subject"},
			Class:   collider,
			Binder:  "c",
			Then:    &Block{Nodes: []Node{&VarRef{Name: "c"}}},
		},
		&VarRef{Name: "c"},
	}}

	in := NewInterp()
	subject := &HostObject{Class: collider, Fields: hostmodel.NewFieldStore()}
	_, err := in.Exec(n, map[string]Value{"subject": subject})
	if err == nil || !strings.Contains(err.Error(), "unbound name c") {
		t.Errorf("err = %v, want unbound name c", err)
	}
}
