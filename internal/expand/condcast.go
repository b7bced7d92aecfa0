package expand

import (
	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// loweredClause is one (class, binder, body) triple ready for chain
// assembly. The access specializer reuses this shape for its synthetic
// branches.
type loweredClause struct {
	class  *typesystem.TClass
	binder string
	body   *lower.Block
}

// CompileTypecase compiles a conditional cast. Every clause designator
// must resolve; then the subject's static type decides the emitted
// form:
//
//   - exact clause match: that clause's body alone, binder re-bound
//     without any runtime test
//   - partial knowledge: a test chain over only the clauses the static
//     type could still satisfy, original order preserved
//   - no knowledge: the full chain, clause order preserved
//
// Clauses the static type can never satisfy are deleted outright; if
// nothing survives, the default (or a no-op) is emitted.
func (e *Expander) CompileTypecase(tc *ast.TypecaseExpression, env *symbols.TypeEnv) (lower.Node, *diagnostics.DiagnosticError) {
	clauses := make([]loweredClause, 0, len(tc.Clauses))
	for _, cl := range tc.Clauses {
		class, ok := e.types.Lookup(cl.Type.Name)
		if !ok {
			return nil, e.designatorError(cl.Type)
		}
		binder := ""
		clauseEnv := env
		if cl.Binder != nil {
			binder = cl.Binder.Value
			clauseEnv = env.With(binder, class)
		}
		body, err := e.lowerBlock(cl.Body, clauseEnv)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, loweredClause{class: class, binder: binder, body: body})
	}

	var dflt *lower.Block
	if tc.Default != nil {
		var err *diagnostics.DiagnosticError
		dflt, err = e.lowerBlock(tc.Default, env)
		if err != nil {
			return nil, err
		}
	}

	subject, err := e.lowerExpr(tc.Subject, env)
	if err != nil {
		return nil, err
	}
	static := e.staticTypeOf(tc.Subject, env)
	return e.compileClauses(subject, static, clauses, dflt), nil
}

// compileClauses is the shared chain builder behind both the
// conditional cast and the access specializer's branch generation.
// Pruning is semantics-preserving against a first-match scan of the
// full clause list: a clause is deleted only when no runtime value of
// the static type could ever reach and pass its test.
func (e *Expander) compileClauses(subject lower.Node, static typesystem.Type, clauses []loweredClause, dflt *lower.Block) lower.Node {
	if staticClass, ok := typesystem.AsClass(static); ok {
		// An exact clause wins outright, wherever it appears: the
		// static type decides the branch at compile time.
		for _, cl := range clauses {
			if cl.class == staticClass {
				return e.decidedClause(subject, cl)
			}
		}

		// Otherwise only clauses every value of the static type
		// satisfies can fire; the rest are deleted.
		survivors := clauses[:0:0]
		for _, cl := range clauses {
			if typesystem.AssignableTo(staticClass, cl.class) {
				survivors = append(survivors, cl)
			}
		}
		clauses = survivors
	}

	if len(clauses) == 0 {
		if dflt != nil {
			return dflt
		}
		return &lower.Noop{}
	}
	return e.chain(subject, clauses, dflt)
}

// decidedClause emits a statically decided clause: the binder is
// re-bound at the clause class with a checked cast that performs no
// runtime test, then the body runs unconditionally.
func (e *Expander) decidedClause(subject lower.Node, cl loweredClause) lower.Node {
	nodes := make([]lower.Node, 0, len(cl.body.Nodes)+1)
	if cl.binder != "" {
		nodes = append(nodes, &lower.Let{Name: cl.binder, Class: cl.class, Value: subject})
	}
	nodes = append(nodes, cl.body.Nodes...)
	return &lower.Block{Nodes: nodes}
}

// chain emits sequential type tests in clause order. A non-trivial
// subject is bound to a temporary first so it is evaluated exactly
// once regardless of how many tests fail.
func (e *Expander) chain(subject lower.Node, clauses []loweredClause, dflt *lower.Block) lower.Node {
	ref := subject
	var pre []lower.Node
	if !isTrivial(subject) {
		tmp := e.freshTemp()
		pre = append(pre, &lower.Let{Name: tmp, Value: subject})
		ref = &lower.VarRef{Name: tmp}
	}

	var next lower.Node
	if dflt != nil {
		next = dflt
	}
	for i := len(clauses) - 1; i >= 0; i-- {
		cl := clauses[i]
		next = &lower.TypeTest{
			Subject: ref,
			Class:   cl.class,
			Binder:  cl.binder,
			Then:    cl.body,
			Else:    next,
		}
	}
	if len(pre) > 0 {
		return &lower.Block{Nodes: append(pre, next)}
	}
	return next
}
