package pipeline_test

import (
	"strings"
	"testing"

	"github.com/tetherlang/tether/internal/expand"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/parser"
	"github.com/tetherlang/tether/internal/pipeline"
)

func runSource(t *testing.T, src string, project *hostmodel.ProjectConfig) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = "test.tet"
	p := pipeline.New(
		&parser.ParseProcessor{},
		expand.NewProcessor(project, nil),
		&pipeline.EmitProcessor{},
	)
	return p.Run(ctx)
}

func TestPipelineExpandsComponent(t *testing.T) {
	ctx := runSource(t, `
component Player (health, speed) {
    ready {
        let c = fetch(self, Collider)
    }
}
`, nil)

	if ctx.HasErrors() {
		t.Fatalf("errors: %v", ctx.Errors)
	}
	if len(ctx.Definitions) != 1 {
		t.Fatalf("definitions = %d, want 1", len(ctx.Definitions))
	}

	for _, want := range []string{
		"class Player {",
		"mut health",
		"mut speed",
		"impl Ready {",
		// self is a Component subclass and the target is a designator,
		// so the accessor compiles to one direct call
		"componentGetByType(self, Collider)",
		`ensureLoaded("main")`,
		"impl Persistable {",
		"persistFields(self)",
		"restoreFields(self)",
	} {
		if !strings.Contains(ctx.Output, want) {
			t.Errorf("output missing %q:\n%s", want, ctx.Output)
		}
	}
}

func TestPipelineStopsExpansionOnParseError(t *testing.T) {
	ctx := runSource(t, `component {`, nil)
	if !ctx.HasErrors() {
		t.Fatal("expected parse errors")
	}
	if ctx.Definitions != nil {
		t.Errorf("definitions = %+v, want none after parse failure", ctx.Definitions)
	}
	if ctx.Output != "" {
		t.Errorf("output = %q, want empty", ctx.Output)
	}
}

func TestPipelineAppliesProjectOverlay(t *testing.T) {
	project := &hostmodel.ProjectConfig{
		Module:  "game",
		Classes: []hostmodel.ClassDef{{Name: "Hitbox", Parent: "Collider"}},
		Globals: []hostmodel.GlobalDef{{Name: "world", Type: "Entity"}},
	}
	ctx := runSource(t, `
component Sensor () {
    step {
        let h = fetch(world, Hitbox)
    }
}
`, project)

	if ctx.HasErrors() {
		t.Fatalf("errors: %v", ctx.Errors)
	}
	for _, want := range []string{
		// world is a declared Entity global, so the fetch is direct
		"entityGetByType(world, Hitbox)",
	} {
		if !strings.Contains(ctx.Output, want) {
			t.Errorf("output missing %q:\n%s", want, ctx.Output)
		}
	}
	if strings.Contains(ctx.Output, `ensureLoaded("main")`) {
		t.Errorf("guard uses default module, want project module:\n%s", ctx.Output)
	}
}

func TestPipelineCollectsExpansionDiagnostics(t *testing.T) {
	ctx := runSource(t, `
component A () {
    teleport {
        jump(self)
    }
}
`, nil)
	if !ctx.HasErrors() {
		t.Fatal("expected expansion errors")
	}
	found := false
	for _, d := range ctx.Errors {
		if strings.Contains(d.Error(), "teleport") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want one naming teleport", ctx.Errors)
	}
}
