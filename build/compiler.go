// Package build drives compilation: it runs every phase of the transpiler over
// a compilation unit and handles reading sources and writing generated files.
package build

import (
	"golf/ast"
	"golf/generate"
	"golf/mods"
	"golf/report"
	"golf/syntax"
	"golf/walk"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The project being compiled.
	project *mods.Project

	// The directory to write output to.  If this is empty, each generated
	// file is written alongside its source.
	outputDir string

	// Whether the compiler should only check its input without writing any
	// output.
	checkOnly bool

	// Whether the compiler should print the parsed program of each unit.
	dumpAST bool

	// The logger used to trace compilation phases.
	logger *slog.Logger

	// The writer AST dumps are printed to along with the mutex guarding it.
	out   io.Writer
	outMu sync.Mutex
}

// Options configures a compiler.  Values set here override the project.
type Options struct {
	// OutputDir overrides the output directory of the project.
	OutputDir string

	// CheckOnly disables writing output files.
	CheckOnly bool

	// DumpAST prints the parsed program of each unit.
	DumpAST bool

	// Out receives AST dumps.  It defaults to standard out.
	Out io.Writer
}

// NewCompiler creates a new compiler for a project.  A nil logger discards
// all trace records.
func NewCompiler(project *mods.Project, opts Options, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = report.DiscardLogger()
	}

	c := &Compiler{
		project:   project,
		outputDir: project.OutputDir,
		checkOnly: opts.CheckOnly,
		dumpAST:   opts.DumpAST,
		logger:    logger,
		out:       opts.Out,
	}

	if opts.OutputDir != "" {
		c.outputDir = opts.OutputDir
	}

	if c.out == nil {
		c.out = os.Stdout
	}

	return c
}

// -----------------------------------------------------------------------------

// Result is the outcome of transpiling a single unit.
type Result struct {
	// Program is the parsed statement list.
	Program []ast.Stmt

	// Warnings are the non-fatal diagnostics of the checker.
	Warnings []*walk.Warning

	// Lua is the generated Lua source.
	Lua string
}

// Transpile runs every phase over the source text of a single unit.  The
// first error stops the pipeline; it is a *report.CompileError for all errors
// in the input program.  The partial result is returned with the error so
// callers can inspect the parsed program.
func (c *Compiler) Transpile(src string) (*Result, error) {
	res := &Result{}

	start := time.Now()
	prog, err := syntax.Parse(src)
	if err != nil {
		return res, err
	}
	res.Program = prog
	c.logger.Debug("parsed unit", "statements", len(prog), "duration", time.Since(start))

	start = time.Now()
	warnings, err := walk.WalkProgram(prog, walk.NewGlobalScope())
	res.Warnings = warnings
	if err != nil {
		return res, err
	}
	c.logger.Debug("checked unit", "warnings", len(warnings), "duration", time.Since(start))

	start = time.Now()
	lua, err := generate.NewGenerator(c.project.ReservedPrefix).Generate(prog)
	if err != nil {
		return res, err
	}
	res.Lua = lua
	c.logger.Debug("generated unit", "bytes", len(lua), "duration", time.Since(start))

	return res, nil
}
