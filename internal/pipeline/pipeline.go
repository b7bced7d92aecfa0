// Package pipeline wires the expansion stages together: parse, expand,
// emit. Stages communicate through a shared context; a failing stage
// records diagnostics and later stages skip their work, so one run
// collects diagnostics from every stage that could produce them.
package pipeline

import (
	"github.com/tetherlang/tether/internal/ast"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/lower"
)

// PipelineContext carries one source file through the stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	IsTestMode bool

	Program     *ast.Program
	Definitions []*lower.Definition
	Output      string

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

// HasErrors reports whether any stage recorded an error-severity
// diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return diagnostics.HasErrors(ctx.Errors)
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
