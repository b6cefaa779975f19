package build

import (
	"fmt"
	"golf/ast"
	"golf/common"
	"golf/report"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kr/pretty"
)

// generatedHeader is the first line of generated files when the project asks
// for a header.
const generatedHeader = "-- Code generated by golf. DO NOT EDIT.\n\n"

// Compile compiles the file or directory at path.  It returns the number of
// units compiled and the number of those which failed.  All errors are
// reported.
func (c *Compiler) Compile(path string) (units, failed int) {
	finfo, err := os.Stat(path)
	if err != nil {
		report.ReportStdError(path, fmt.Errorf("error loading input: %w", err))
		return 0, 1
	}

	if finfo.IsDir() {
		return c.CompileDir(path)
	}

	if c.CompileFile(path) {
		return 1, 0
	}

	return 1, 1
}

// CompileDir compiles every source file directly inside dir.  Units are
// compiled concurrently; a failing unit does not stop the others.
func (c *Compiler) CompileDir(dir string) (units, failed int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		report.ReportStdError(dir, fmt.Errorf("error reading directory: %w", err))
		return 0, 1
	}

	wg := &sync.WaitGroup{}
	var failCount int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != common.SrcFileExtension {
			continue
		}

		units++
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			if !c.CompileFile(path) {
				atomic.AddInt64(&failCount, 1)
			}
		}(filepath.Join(dir, entry.Name()))
	}

	wg.Wait()

	c.logger.Info("compiled directory", "path", dir, "units", units, "failed", failCount)
	return units, int(failCount)
}

// CompileFile compiles a single source file and writes its output.  It
// returns whether compilation succeeded.
func (c *Compiler) CompileFile(path string) bool {
	start := time.Now()

	buff, err := os.ReadFile(path)
	if err != nil {
		report.ReportStdError(path, fmt.Errorf("error reading source file: %w", err))
		return false
	}
	src := string(buff)

	res, err := c.Transpile(src)

	if c.dumpAST && res.Program != nil {
		c.printAST(path, res.Program)
	}

	for _, w := range res.Warnings {
		report.ReportCompileWarning(path, src, w.Pos, "%s", w.Message)
	}

	if err != nil {
		c.logger.Debug("unit failed", "path", path, "error", err)
		report.ReportError(path, src, err)
		return false
	}

	if c.checkOnly {
		c.logger.Info("checked unit", "path", path, "duration", time.Since(start))
		return true
	}

	outPath := c.OutputPath(path)
	if err := c.writeOutput(outPath, res.Lua); err != nil {
		report.ReportStdError(path, err)
		return false
	}

	c.logger.Info("transpiled unit", "path", path, "output", outPath, "duration", time.Since(start))
	return true
}

// OutputPath returns the path of the file generated for the source at path.
func (c *Compiler) OutputPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), common.SrcFileExtension) + common.TargetFileExtension

	if c.outputDir != "" {
		return filepath.Join(c.outputDir, name)
	}

	return filepath.Join(filepath.Dir(path), name)
}

// writeOutput writes generated Lua to outPath.
func (c *Compiler) writeOutput(outPath, lua string) error {
	if c.project.Header {
		lua = generatedHeader + lua
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(lua), 0644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	return nil
}

// printAST prints the parsed program of a unit: first in its compact form
// and then as a full structure dump.
func (c *Compiler) printAST(path string, prog []ast.Stmt) {
	c.outMu.Lock()
	defer c.outMu.Unlock()

	fmt.Fprintf(c.out, "-- %s\n%s\n", path, ast.SprintProgram(prog))
	pretty.Fprintf(c.out, "%# v\n", prog)
}
