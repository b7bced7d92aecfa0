package pipeline

import (
	"strings"

	"github.com/tetherlang/tether/internal/lower"
)

// EmitProcessor renders the expanded definitions to the source form
// consumed by the host compilation stage.
type EmitProcessor struct{}

func (ep *EmitProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.HasErrors() || len(ctx.Definitions) == 0 {
		return ctx
	}
	printer := lower.NewPrinter()
	parts := make([]string, len(ctx.Definitions))
	for i, def := range ctx.Definitions {
		parts[i] = printer.Print(def)
	}
	ctx.Output = strings.Join(parts, "\n")
	return ctx
}
