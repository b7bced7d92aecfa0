package expand

import (
	"fmt"

	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// CompileFetch specializes one fetch(object, target) invocation. The
// decision table combines two independent facts: whether the object's
// shape is statically known, and whether the target's kind (type
// designator vs. name string) is statically known. Full knowledge
// yields a single direct call; each missing fact costs one runtime
// branch level. The result is observably identical at every level;
// only the number of executed runtime tests differs.
func (e *Expander) CompileFetch(call *ast.CallExpression, env *symbols.TypeEnv) (lower.Node, *diagnostics.DiagnosticError) {
	if len(call.Arguments) != 2 {
		d := diagnostics.NewError(diagnostics.ErrE003, call.GetToken(),
			fmt.Sprintf("%s expects 2 arguments, got %d", config.FetchFuncName, len(call.Arguments)))
		d.File = e.file
		return nil, d
	}
	objExpr, targetExpr := call.Arguments[0], call.Arguments[1]

	objNode, err := e.lowerExpr(objExpr, env)
	if err != nil {
		return nil, err
	}
	targetNode, err := e.lowerExpr(targetExpr, env)
	if err != nil {
		return nil, err
	}

	// Argument hygiene: non-trivial arguments are bound to fresh
	// temporaries left to right, so each side effect happens exactly
	// once however many branches mention the argument.
	var pre []lower.Node
	hoist := func(n lower.Node) lower.Node {
		if isTrivial(n) {
			return n
		}
		tmp := e.freshTemp()
		pre = append(pre, &lower.Let{Name: tmp, Value: n})
		return &lower.VarRef{Name: tmp}
	}
	objRef := hoist(objNode)
	targetRef := hoist(targetNode)

	shape, shapeKnown := hostmodel.ShapeOf(e.staticTypeOf(objExpr, env))
	kind, kindKnown := e.targetKind(targetExpr, env)

	var result lower.Node
	switch {
	case shapeKnown && kindKnown:
		result = directAccess(shape, kind, objRef, targetRef)
	case shapeKnown:
		result = e.kindBranch(shape, objRef, targetRef)
	case kindKnown:
		result = e.shapeBranch(objRef, func(s hostmodel.Shape) lower.Node {
			return directAccess(s, kind, objRef, targetRef)
		})
	default:
		result = e.shapeBranch(objRef, func(s hostmodel.Shape) lower.Node {
			return e.kindBranch(s, objRef, targetRef)
		})
	}

	if len(pre) > 0 {
		return &lower.Block{Nodes: append(pre, result)}, nil
	}
	return result, nil
}

// targetKind classifies the accessor target. Syntactic forms decide
// immediately; otherwise the resolver's static type is consulted, so an
// annotated or let-bound target still specializes.
func (e *Expander) targetKind(expr ast.Expression, env *symbols.TypeEnv) (hostmodel.TargetKind, bool) {
	switch expr.(type) {
	case *ast.TypeDesignatorExpression:
		return hostmodel.TargetByType, true
	case *ast.StringLiteral:
		return hostmodel.TargetByName, true
	}
	if c, ok := typesystem.AsClass(e.staticTypeOf(expr, env)); ok {
		switch c.Name {
		case config.TypeClassName:
			return hostmodel.TargetByType, true
		case config.StringClassName:
			return hostmodel.TargetByName, true
		}
	}
	return 0, false
}

func directAccess(shape hostmodel.Shape, kind hostmodel.TargetKind, obj, target lower.Node) lower.Node {
	return &lower.Call{
		Callee: &lower.VarRef{Name: hostmodel.AccessOp(shape, kind)},
		Args:   []lower.Node{obj, target},
	}
}

// kindBranch emits the 2-way branch on the target's runtime kind. It
// routes through the conditional-cast chain builder so a target whose
// kind later becomes statically known collapses for free.
func (e *Expander) kindBranch(shape hostmodel.Shape, obj, target lower.Node) lower.Node {
	clauses := make([]loweredClause, 0, 2)
	for _, k := range []struct {
		class string
		kind  hostmodel.TargetKind
	}{
		{config.TypeClassName, hostmodel.TargetByType},
		{config.StringClassName, hostmodel.TargetByName},
	} {
		c, ok := e.types.Lookup(k.class)
		if !ok {
			continue
		}
		clauses = append(clauses, loweredClause{
			class: c,
			body:  &lower.Block{Nodes: []lower.Node{directAccess(shape, k.kind, obj, target)}},
		})
	}
	return e.compileClauses(target, typesystem.Unknown, clauses, nil)
}

// shapeBranch emits the closed 2-way branch over the host-object
// shapes: one runtime tag check, no third case, so the component arm
// needs no test of its own.
func (e *Expander) shapeBranch(obj lower.Node, arm func(hostmodel.Shape) lower.Node) lower.Node {
	return &lower.ShapeSwitch{
		Subject:   obj,
		Entity:    &lower.Block{Nodes: []lower.Node{arm(hostmodel.ShapeEntity)}},
		Component: &lower.Block{Nodes: []lower.Node{arm(hostmodel.ShapeComponent)}},
	}
}
