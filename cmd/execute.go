// Package cmd implements the `golf` command line.
package cmd

import (
	"fmt"
	"golf/build"
	"golf/common"
	"golf/mods"
	"golf/report"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

const usage = `usage: golf [path] [--loglevel|-ll level] [--check|-c] [--dump-ast|-da] [--output|-o dir]
       golf init [dir]
       golf version

Transpiles a golf source file, or every golf source file in a directory, to Lua.`

// Execute is the main entry point for the `golf` CLI utility.  It returns the
// exit code of the process.
func Execute() int {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		pterm.DisableColor()
	}

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("golf", "golf is a transpiler from golf to Lua", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, report.LogLevelNames)
	cli.AddFlag("check", "c", "check the input without writing any output")
	cli.AddFlag("dump-ast", "da", "print the parsed program of each source file")
	cli.AddStringArg("output", "o", "the directory to write generated files to", false)
	cli.AddPrimaryArg("path", "the source file or directory to transpile", false)

	initCmd := cli.AddSubcommand("init", "create a project file", true)
	initCmd.AddPrimaryArg("project-dir", "the directory to create the project file in", false)

	cli.AddSubcommand("version", "print the golf version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	// process the inputed command line
	if subcmdName, subResult, ok := result.Subcommand(); ok {
		switch subcmdName {
		case "init":
			return execInitCommand(subResult)
		case "version":
			report.ReportInfo("golf version", common.GolfVersion)
			return 0
		}
	}

	path, ok := result.PrimaryArg()
	if !ok || path == "" {
		fmt.Println(usage)
		return 0
	}

	return execBuild(result, path)
}

// execBuild transpiles the file or directory at path and handles all errors.
func execBuild(result *olive.ArgParseResult, path string) int {
	// the project file lives next to the input
	root := path
	if finfo, err := os.Stat(path); err != nil || !finfo.IsDir() {
		root = filepath.Dir(path)
	}

	proj, err := mods.LoadProject(root)
	if err != nil {
		report.ReportStdError(root, err)
		return 1
	}

	// command line arguments override the project
	logLevelName := "verbose"
	if proj.LogLevel != "" {
		logLevelName = proj.LogLevel
	}
	if arg, ok := result.Arguments["loglevel"]; ok {
		logLevelName = arg.(string)
	}

	logLevel, ok := report.LogLevelFromName(logLevelName)
	if !ok {
		report.ReportFatal("unknown log level `%s`", logLevelName)
		return 1
	}
	report.InitReporter(logLevel)

	logger, closeLog, err := report.NewLogger(logLevel, proj.LogFile)
	if err != nil {
		report.ReportStdError(root, err)
		return 1
	}
	defer closeLog()

	opts := build.Options{
		CheckOnly: result.HasFlag("check"),
		DumpAST:   result.HasFlag("dump-ast"),
	}
	if arg, ok := result.Arguments["output"]; ok {
		opts.OutputDir = arg.(string)
	}

	c := build.NewCompiler(proj, opts, logger)
	units, failed := c.Compile(path)

	report.ReportCompilationFinished(units)

	if failed > 0 {
		return 1
	}

	return 0
}

// execInitCommand executes the `init` subcommand.
func execInitCommand(result *olive.ArgParseResult) int {
	dir, ok := result.PrimaryArg()
	if !ok || dir == "" {
		dir = "."
	}

	name, err := mods.InitProject(dir)
	if err != nil {
		report.ReportStdError(dir, err)
		return 1
	}

	report.ReportInfo("project", "initialized project `%s` in %s", name, dir)
	return 0
}
