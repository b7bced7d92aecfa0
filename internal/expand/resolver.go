package expand

import (
	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// Resolve infers the statically known type of an expression within a
// lexical environment. It is pure and total: absence of information is
// Unknown, never an error.
//
// An explicit annotation wins outright. A name bound in the
// environment yields its recorded type. A global symbol yields its
// declared type unless it is callable; call results are not tracked,
// so anything callable resolves to Unknown.
func (e *Expander) Resolve(expr ast.Expression, env *symbols.TypeEnv) typesystem.Type {
	switch node := expr.(type) {
	case *ast.AnnotatedExpression:
		if node.TypeAnnotation != nil {
			if c, ok := e.types.Lookup(node.TypeAnnotation.Name); ok {
				return c
			}
		}
		return typesystem.Unknown

	case *ast.Identifier:
		if t, ok := env.Lookup(node.Value); ok {
			return t
		}
		if sym, ok := e.globals.Lookup(node.Value); ok {
			if sym.Callable {
				return typesystem.Unknown
			}
			return sym.Type
		}
		return typesystem.Unknown

	case *ast.TypeDesignatorExpression:
		// A reified type designator is itself a value of class Type.
		if c, ok := e.types.Lookup(config.TypeClassName); ok {
			return c
		}
		return typesystem.Unknown

	case *ast.IntegerLiteral:
		return e.primitive(config.IntClassName)
	case *ast.FloatLiteral:
		return e.primitive(config.FloatClassName)
	case *ast.StringLiteral:
		return e.primitive(config.StringClassName)

	case *ast.CallExpression:
		return typesystem.Unknown
	}
	return typesystem.Unknown
}

func (e *Expander) primitive(name string) typesystem.Type {
	if c, ok := e.types.Lookup(name); ok {
		return c
	}
	return typesystem.Unknown
}

// staticTypeOf combines the resolver's verdict with any annotation
// already attached to the expression, reduced through the ranker.
func (e *Expander) staticTypeOf(expr ast.Expression, env *symbols.TypeEnv) typesystem.Type {
	if ann, ok := expr.(*ast.AnnotatedExpression); ok {
		candidates := []typesystem.Type{e.Resolve(ann, env), e.Resolve(ann.Expression, env)}
		return e.MostSpecific(candidates)
	}
	return e.MostSpecific([]typesystem.Type{e.Resolve(expr, env)})
}
