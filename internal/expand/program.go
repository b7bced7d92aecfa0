package expand

import (
	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
)

// ExpandProgram compiles every component in a parsed program. A
// component that fails leaves its diagnostics and halts that component
// only; the remaining components still expand.
func (e *Expander) ExpandProgram(prog *ast.Program) ([]*lower.Definition, []*diagnostics.DiagnosticError) {
	if prog.File != "" {
		e.SetFile(prog.File)
	}
	var defs []*lower.Definition
	var diags []*diagnostics.DiagnosticError
	for _, cd := range prog.Components {
		def, ds := e.CompileComponent(cd)
		diags = append(diags, ds...)
		if def != nil {
			defs = append(defs, def)
		}
	}
	return defs, diags
}
