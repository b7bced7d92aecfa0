// Package expand implements the expansion stage: the type resolver,
// the specificity ranker, the conditional-cast compiler, the access
// specializer, and the definition compiler. It rewrites parsed
// component declarations into lowered definitions, using partial
// static type knowledge to delete runtime type tests wherever the
// dynamic fallback's behavior is provably preserved.
package expand

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// Expander holds the collaborators of one expansion session. It is not
// safe for concurrent use; expand one definition at a time per
// Expander. The shared TypeLog is safe to pass to several expanders.
type Expander struct {
	types   *typesystem.Registry
	msgs    *hostmodel.MessageRegistry
	globals *symbols.SymbolTable
	log     *TypeLog

	module  string // script module name baked into hot-reload guards
	file    string
	session uuid.UUID
	tempN   int
}

// New creates an expander over the given registries. A nil log gets a
// private one; a nil symbol table gets an empty one.
func New(types *typesystem.Registry, msgs *hostmodel.MessageRegistry, globals *symbols.SymbolTable, log *TypeLog, module string) *Expander {
	if globals == nil {
		globals = symbols.NewSymbolTable()
	}
	if log == nil {
		log = NewTypeLog()
	}
	if module == "" {
		module = "main"
	}
	return &Expander{
		types:   types,
		msgs:    msgs,
		globals: globals,
		log:     log,
		module:  module,
		session: uuid.New(),
	}
}

// SetFile tags subsequent diagnostics with a source path.
func (e *Expander) SetFile(file string) { e.file = file }

// Session identifies this expansion in the diagnostic log.
func (e *Expander) Session() uuid.UUID { return e.session }

// Log exposes the inferred-type log for observability; nothing in the
// expander reads it back.
func (e *Expander) Log() *TypeLog { return e.log }

// freshTemp returns the next compiler-generated temporary name.
func (e *Expander) freshTemp() string {
	name := config.TempPrefix + strconv.Itoa(e.tempN)
	e.tempN++
	return name
}
