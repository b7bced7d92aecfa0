package expand

import (
	"testing"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/lexer"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/parser"
	"github.com/tetherlang/tether/internal/token"
	"github.com/tetherlang/tether/internal/typesystem"
)

func newTestExpander(t *testing.T) *Expander {
	t.Helper()
	r := typesystem.NewRegistry()
	if err := hostmodel.SeedRegistry(r); err != nil {
		t.Fatalf("SeedRegistry: %v", err)
	}
	return New(r, hostmodel.DefaultMessages(), nil, nil, "game")
}

func mustClass(t *testing.T, e *Expander, name string) *typesystem.TClass {
	t.Helper()
	c, ok := e.types.Lookup(name)
	if !ok {
		t.Fatalf("class %s not in registry", name)
	}
	return c
}

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return prog
}

func parseComponent(t *testing.T, src string) *ast.ComponentDeclaration {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(prog.Components))
	}
	return prog.Components[0]
}

// AST construction helpers for targeted compiler-unit tests.

func id(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Type: token.IDENT_LOWER, Lexeme: name, Literal: name}, Value: name}
}

func tref(name string) *ast.TypeRef {
	return &ast.TypeRef{Token: token.Token{Type: token.IDENT_UPPER, Lexeme: name, Literal: name}, Name: name}
}

func designator(name string) *ast.TypeDesignatorExpression {
	return &ast.TypeDesignatorExpression{Ref: tref(name)}
}

func callStmt(fn string, args ...ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Expression: &ast.CallExpression{
		Function:  id(fn),
		Arguments: args,
	}}
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

func clause(typeName, binder string, stmts ...ast.Statement) *ast.TypecaseClause {
	cl := &ast.TypecaseClause{Type: tref(typeName), Body: block(stmts...)}
	if binder != "" {
		cl.Binder = id(binder)
	}
	return cl
}

// Mock host-object helpers mirroring the reference interpreter's model.

func makeEntity(t *testing.T, e *Expander, name string, comps ...*lower.HostObject) *lower.HostObject {
	t.Helper()
	entity := &lower.HostObject{Class: mustClass(t, e, "Entity"), Name: name, Fields: hostmodel.NewFieldStore()}
	for _, comp := range comps {
		comp.Owner = entity
		entity.Components = append(entity.Components, comp)
	}
	return entity
}

func makeComp(t *testing.T, e *Expander, className, name string) *lower.HostObject {
	t.Helper()
	return &lower.HostObject{Class: mustClass(t, e, className), Name: name, Fields: hostmodel.NewFieldStore()}
}

// recorder returns a builtin that appends its tag on every call.
func recorder(hits *[]string, tag string) lower.Builtin {
	return func(args []lower.Value) (lower.Value, error) {
		*hits = append(*hits, tag)
		return lower.Nil, nil
	}
}
