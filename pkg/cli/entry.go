// Package cli implements the tether command: expanding component
// source files into host-compilable definitions, checking them, and
// tracing the type decisions the expander made.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/tetherlang/tether/internal/cache"
	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/diagnostics"
	"github.com/tetherlang/tether/internal/expand"
	"github.com/tetherlang/tether/internal/hostmodel"
	"github.com/tetherlang/tether/internal/parser"
	"github.com/tetherlang/tether/internal/pipeline"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// useColor is true when stderr is a terminal; diagnostics get severity
// colors only then.
var useColor = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printDiagnostics(diags []*diagnostics.DiagnosticError) {
	for _, d := range diags {
		line := d.Error()
		if useColor {
			if d.Severity == diagnostics.SeverityWarning {
				line = colorYellow + line + colorReset
			} else {
				line = colorRed + line + colorReset
			}
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

// loadProjectFor locates and parses the tether.yaml governing a source
// file. Returns the config (nil when none exists) and its path.
func loadProjectFor(sourcePath string) (*hostmodel.ProjectConfig, string, error) {
	configPath, err := hostmodel.FindProject(filepath.Dir(sourcePath))
	if err != nil {
		return nil, "", err
	}
	if configPath == "" {
		return nil, "", nil
	}
	project, err := hostmodel.LoadProject(configPath)
	if err != nil {
		return nil, "", err
	}
	return project, configPath, nil
}

// expandFile runs the full pipeline on one source file, consulting the
// expansion cache unless noCache is set. Returns the final context and
// whether the result came from the cache.
func expandFile(path string, log *expand.TypeLog, noCache bool) (*pipeline.PipelineContext, bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}

	project, configPath, err := loadProjectFor(path)
	if err != nil {
		return nil, false, err
	}

	processor := expand.NewProcessor(project, log)

	var store *cache.Cache
	var key string
	if !noCache {
		fingerprint, err := cache.ConfigFingerprint(configPath)
		if err != nil {
			return nil, false, err
		}
		key = cache.Key(source, fingerprint)
		projectDir := filepath.Dir(path)
		if configPath != "" {
			projectDir = filepath.Dir(configPath)
		}
		if store, err = cache.Open(projectDir); err == nil {
			defer store.Close()
			if output, ok := store.Lookup(key); ok {
				ctx := pipeline.NewPipelineContext(string(source))
				ctx.FilePath = path
				ctx.Output = output
				return ctx, true, nil
			}
		}
		// A cache that fails to open is skipped, not fatal.
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = path
	ctx = pipeline.New(
		&parser.ParseProcessor{},
		processor,
		&pipeline.EmitProcessor{},
	).Run(ctx)

	if store != nil && !ctx.HasErrors() && ctx.Output != "" {
		// Best effort; a failed write just means a cold cache next run.
		_ = store.Store(key, ctx.Output, uuid.New())
	}
	return ctx, false, nil
}

func handleVersion() bool {
	if len(os.Args) != 2 {
		return false
	}
	switch os.Args[1] {
	case "-v", "-version", "--version":
		fmt.Println("tether " + config.Version)
		return true
	}
	return false
}

func handleHelp() bool {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "-help", "--help", "-h":
		default:
			return false
		}
	} else {
		return false
	}

	fmt.Print(`tether — component definition expander

Usage:
  tether <file.tet> [-o <output>]   expand a source file
  tether check <file|dir>...        report diagnostics without emitting
  tether trace <file.tet>           expand and print inferred-type log
  tether cache clean                drop the project expansion cache
  tether cache info                 show cache entry count

Flags:
  -o <output>    write emitted definitions to a file instead of stdout
  --no-cache     expand even when a cached result exists
  -v, --version  print the toolchain version
`)
	return true
}

func handleCheck() bool {
	if len(os.Args) < 2 || os.Args[1] != "check" {
		return false
	}
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s check <file|dir>...\n", os.Args[0])
		os.Exit(1)
	}

	var files []string
	for _, arg := range os.Args[2:] {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if info.IsDir() {
			entries, err := os.ReadDir(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading directory: %s\n", err)
				os.Exit(1)
			}
			for _, entry := range entries {
				if !entry.IsDir() && isSourceFile(entry.Name()) {
					files = append(files, filepath.Join(arg, entry.Name()))
				}
			}
		} else {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Println("No source files found")
		return true
	}

	log := expand.NewTypeLog()
	failed := false
	for _, file := range files {
		ctx, _, err := expandFile(file, log, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			failed = true
			continue
		}
		printDiagnostics(ctx.Errors)
		if ctx.HasErrors() {
			failed = true
		} else {
			fmt.Printf("%s: ok (%d definitions)\n", file, len(ctx.Definitions))
		}
	}
	if failed {
		os.Exit(1)
	}
	return true
}

func handleTrace() bool {
	if len(os.Args) < 3 || os.Args[1] != "trace" {
		return false
	}
	path := os.Args[2]

	log := expand.NewTypeLog()
	ctx, _, err := expandFile(path, log, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	printDiagnostics(ctx.Errors)
	if ctx.HasErrors() {
		os.Exit(1)
	}

	for _, entry := range log.Entries() {
		fmt.Printf("%s  %s\n", entry.Session, entry.Text)
	}
	return true
}

func handleCache() bool {
	if len(os.Args) < 3 || os.Args[1] != "cache" {
		return false
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if configPath, err := hostmodel.FindProject(dir); err == nil && configPath != "" {
		dir = filepath.Dir(configPath)
	}

	store, err := cache.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %s\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch os.Args[2] {
	case "clean":
		if err := store.Clean(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache cleaned")
	case "info":
		n, err := store.Len()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d cached expansions in %s\n", n, filepath.Join(dir, ".tether"))
	default:
		fmt.Fprintf(os.Stderr, "Unknown cache command: %s\n", os.Args[2])
		os.Exit(1)
	}
	return true
}

// handleExpand is the default command: expand a source file and write
// the emitted definitions.
func handleExpand() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "expand" {
		args = args[1:]
	}

	var path, output string
	noCache := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "-o requires an argument")
				os.Exit(1)
			}
			i++
			output = args[i]
		case "--no-cache":
			noCache = true
		default:
			if path == "" && !strings.HasPrefix(args[i], "-") {
				path = args[i]
			}
		}
	}
	if path == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s <file%s> [-o <output>]\n", os.Args[0], config.SourceFileExt)
		os.Exit(1)
	}

	ctx, cached, err := expandFile(path, expand.NewTypeLog(), noCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	printDiagnostics(ctx.Errors)
	if ctx.HasErrors() {
		os.Exit(1)
	}

	if output == "" {
		fmt.Print(ctx.Output)
		return
	}
	if err := os.WriteFile(output, []byte(ctx.Output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", output, err)
		os.Exit(1)
	}
	if cached {
		fmt.Printf("%s -> %s (cached)\n", path, output)
	} else {
		fmt.Printf("%s -> %s\n", path, output)
	}
}

func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("TETHER_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if handleVersion() {
		return
	}
	if handleHelp() {
		return
	}
	if handleCheck() {
		return
	}
	if handleTrace() {
		return
	}
	if handleCache() {
		return
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file%s> [-o <output>]\n", os.Args[0], config.SourceFileExt)
		os.Exit(1)
	}
	handleExpand()
}
