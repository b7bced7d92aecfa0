package lower

import (
	"strings"
	"testing"

	"github.com/tetherlang/tether/internal/typesystem"
)

func TestPrintDefinition(t *testing.T) {
	collider := &typesystem.TClass{Name: "Collider"}

	def := &Definition{
		Name: "Player",
		Fields: []Field{
			{Name: "health", Mutable: true},
			{Name: "speed", Mutable: true},
		},
		Impls: []Impl{
			{
				Interface: "Ready",
				Methods: []Method{
					{
						Name: "ready",
						Body: &Block{Nodes: []Node{
							&Let{Name: "__t0", Value: &Call{
								Callee: &VarRef{Name: "entityGetByType"},
								Args:   []Node{&VarRef{Name: "self"}, &TypeLit{Class: collider}},
							}},
						}},
					},
				},
			},
			{
				Interface: "Persistable",
				Methods: []Method{
					{
						Name:   "saveState",
						Origin: OriginDefault,
						Body: &Block{Nodes: []Node{
							&Call{Callee: &VarRef{Name: "persistFields"}, Args: []Node{&VarRef{Name: "self"}}},
						}},
					},
				},
			},
		},
	}

	out := NewPrinter().Print(def)

	for _, want := range []string{
		"class Player {",
		"    mut health",
		"    mut speed",
		"    impl Ready {",
		"        ready() {",
		"            let __t0 = entityGetByType(self, Collider)",
		"    impl Persistable {",
		"        saveState() {",
		"            persistFields(self)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTypeTestChain(t *testing.T) {
	collider := &typesystem.TClass{Name: "Collider"}
	rigidbody := &typesystem.TClass{Name: "Rigidbody"}

	chain := &TypeTest{
		Subject: &VarRef{Name: "__t0"},
		Class:   collider,
		Binder:  "c",
		Then:    &Block{Nodes: []Node{&Call{Callee: &VarRef{Name: "handle"}, Args: []Node{&VarRef{Name: "c"}}}}},
		Else: &TypeTest{
			Subject: &VarRef{Name: "__t0"},
			Class:   rigidbody,
			Binder:  "r",
			Then:    &Block{Nodes: []Node{&Call{Callee: &VarRef{Name: "push"}, Args: []Node{&VarRef{Name: "r"}}}}},
		},
	}

	out := NewPrinter().PrintNode(chain)
	for _, want := range []string{
		"if __t0 is Collider {",
		"let c = __t0 as Collider",
		"handle(c)",
		"} else {",
		"if __t0 is Rigidbody {",
		"let r = __t0 as Rigidbody",
		"push(r)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintShapeSwitchAndNoop(t *testing.T) {
	out := NewPrinter().PrintNode(&ShapeSwitch{
		Subject:   &VarRef{Name: "__t0"},
		Binder:    "o",
		Entity:    &Block{Nodes: []Node{&Noop{}}},
		Component: &Block{Nodes: []Node{&Noop{}}},
	})
	for _, want := range []string{
		"if isEntity(__t0) {",
		"let o = __t0 as Entity",
		"let o = __t0 as Component",
		"pass",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
