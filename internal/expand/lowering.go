package expand

import (
	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// lowerBlock lowers a statement block. Let statements extend the type
// environment for the statements that follow them; the caller's
// environment is never mutated.
func (e *Expander) lowerBlock(block *ast.BlockStatement, env *symbols.TypeEnv) (*lower.Block, *diagnostics.DiagnosticError) {
	out := &lower.Block{}
	if block == nil {
		return out, nil
	}
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			value, err := e.lowerExpr(s.Value, env)
			if err != nil {
				return nil, err
			}
			candidates := []typesystem.Type{e.Resolve(s.Value, env)}
			if s.TypeAnnotation != nil {
				if c, ok := e.types.Lookup(s.TypeAnnotation.Name); ok {
					candidates = append(candidates, c)
				} else {
					return nil, e.designatorError(s.TypeAnnotation)
				}
			}
			env = env.With(s.Name.Value, e.MostSpecific(candidates))
			out.Nodes = append(out.Nodes, &lower.Let{Name: s.Name.Value, Value: value})

		case *ast.ExpressionStatement:
			n, err := e.lowerExpr(s.Expression, env)
			if err != nil {
				return nil, err
			}
			out.Nodes = append(out.Nodes, n)

		default:
			return nil, diagnostics.NewError(diagnostics.ErrP001, stmt.GetToken(), "unexpected statement in block")
		}
	}
	return out, nil
}

// lowerExpr lowers a single expression. Accessor invocations and
// conditional casts are intercepted here and specialized; everything
// else maps structurally.
func (e *Expander) lowerExpr(expr ast.Expression, env *symbols.TypeEnv) (lower.Node, *diagnostics.DiagnosticError) {
	switch node := expr.(type) {
	case *ast.Identifier:
		return &lower.VarRef{Name: node.Value}, nil

	case *ast.IntegerLiteral:
		return &lower.IntLit{Value: node.Value}, nil
	case *ast.FloatLiteral:
		return &lower.FloatLit{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &lower.StringLit{Value: node.Value}, nil

	case *ast.TypeDesignatorExpression:
		c, ok := e.types.Lookup(node.Ref.Name)
		if !ok {
			return nil, e.designatorError(node.Ref)
		}
		return &lower.TypeLit{Class: c}, nil

	case *ast.AnnotatedExpression:
		// Annotations carry static knowledge only; they leave no
		// trace in the lowered code.
		if node.TypeAnnotation != nil {
			if _, ok := e.types.Lookup(node.TypeAnnotation.Name); !ok {
				return nil, e.designatorError(node.TypeAnnotation)
			}
		}
		return e.lowerExpr(node.Expression, env)

	case *ast.MemberExpression:
		target, err := e.lowerExpr(node.Left, env)
		if err != nil {
			return nil, err
		}
		return &lower.Member{Target: target, Name: node.Member.Value}, nil

	case *ast.CallExpression:
		if ident, ok := node.Function.(*ast.Identifier); ok && ident.Value == config.FetchFuncName {
			return e.CompileFetch(node, env)
		}
		callee, err := e.lowerExpr(node.Function, env)
		if err != nil {
			return nil, err
		}
		args := make([]lower.Node, len(node.Arguments))
		for i, a := range node.Arguments {
			args[i], err = e.lowerExpr(a, env)
			if err != nil {
				return nil, err
			}
		}
		return &lower.Call{Callee: callee, Args: args}, nil

	case *ast.TypecaseExpression:
		return e.CompileTypecase(node, env)
	}
	return nil, diagnostics.NewError(diagnostics.ErrP001, expr.GetToken(), "unexpected expression")
}

func (e *Expander) designatorError(ref *ast.TypeRef) *diagnostics.DiagnosticError {
	d := diagnostics.NewError(diagnostics.ErrE002, ref.GetToken(), "type designator "+ref.Name+" does not resolve to a concrete type")
	d.File = e.file
	return d
}

// isTrivial reports whether re-evaluating a node is free of side
// effects and cheap, so it need not be hoisted to a temporary.
func isTrivial(n lower.Node) bool {
	switch n.(type) {
	case *lower.VarRef, *lower.IntLit, *lower.FloatLit, *lower.StringLit, *lower.TypeLit:
		return true
	}
	return false
}
