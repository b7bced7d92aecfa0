package expand

import (
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/pipeline"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/token"
	"github.com/tetherlang/tether/internal/typesystem"
)

// Processor is the pipeline stage that expands a parsed program into
// lowered definitions. Each file gets fresh registries seeded with the
// host model and overlaid with the project configuration; the type log
// is shared across files so one trace covers a whole build.
type Processor struct {
	project *hostmodel.ProjectConfig
	log     *TypeLog
}

func NewProcessor(project *hostmodel.ProjectConfig, log *TypeLog) *Processor {
	if log == nil {
		log = NewTypeLog()
	}
	return &Processor{project: project, log: log}
}

func (p *Processor) Log() *TypeLog { return p.log }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.HasErrors() {
		return ctx
	}

	types := typesystem.NewRegistry()
	if err := hostmodel.SeedRegistry(types); err != nil {
		ctx.Errors = append(ctx.Errors, configError(ctx.FilePath, err))
		return ctx
	}
	msgs := hostmodel.DefaultMessages()
	globals := symbols.NewSymbolTable()

	module := ""
	if p.project != nil {
		if err := p.project.Apply(types, msgs, globals); err != nil {
			ctx.Errors = append(ctx.Errors, configError(ctx.FilePath, err))
			return ctx
		}
		module = p.project.Module
	}

	e := New(types, msgs, globals, p.log, module)
	defs, diags := e.ExpandProgram(ctx.Program)
	ctx.Definitions = defs
	ctx.Errors = append(ctx.Errors, diags...)
	return ctx
}

func configError(file string, err error) *diagnostics.DiagnosticError {
	d := diagnostics.NewError(diagnostics.ErrC001, token.Token{}, err.Error())
	d.File = file
	return d
}
