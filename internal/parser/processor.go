package parser

import (
	"github.com/tetherlang/tether/internal/lexer"
	"github.com/tetherlang/tether/internal/pipeline"
)

// ParseProcessor is the pipeline stage that turns source text into a
// parsed program. The parser drives the lexer directly, so lexing and
// parsing are one stage.
type ParseProcessor struct{}

func (pp *ParseProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := NewWithFile(lexer.New(ctx.SourceCode), ctx.FilePath)
	ctx.Program = p.ParseProgram()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
