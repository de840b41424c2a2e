package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/hashicorp/cli"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/fsys"
	"github.com/rill-lang/rill/internal/parser"
)

// commonArgs pulls the "-stdlib=<path>" flag every command shares off
// args, returning whatever is left as the positional arguments (expected
// to be exactly one path). "-log-level=" is stripped beforehand by
// logLevelFromFlag.
func commonArgs(args []string) (rest []string, stdlib string) {
	rest = make([]string, 0, len(args))
	for _, a := range args {
		if v, ok := stripFlag(a, "-stdlib="); ok {
			stdlib = v
			continue
		}
		rest = append(rest, a)
	}
	return rest, stdlib
}

// ParseCommand parses one module and reports a summary of what it found
// plus every diagnostic the reporter accumulated.
type ParseCommand struct{}

func parseCommandFactory() (cli.Command, error) {
	return &ParseCommand{}, nil
}

func (c *ParseCommand) Help() string {
	return strings.TrimSpace(`
Usage: rillparse parse [options] <path>

  Parses the module rooted at path (a single file or a module
  directory) and prints a summary of its top-level members plus any
  diagnostics raised along the way.

Options:

  -stdlib=<path>    Directory imports fall back to when a relative
                     import doesn't resolve against the source file's
                     own directory.
  -log-level=<level> Logging verbosity for module-loader and recovery
                     tracing (trace, debug, info, warn, error; default
                     off).
`)
}

func (c *ParseCommand) Synopsis() string {
	return "parse a module and print a summary"
}

func (c *ParseCommand) Run(args []string) int {
	args, logger := logLevelFromFlag(args)
	args, stdlib := commonArgs(args)
	if len(args) != 1 {
		fmt.Println(c.Help())
		return 1
	}

	reporter := diag.NewReporter()
	ok, program := parser.ParseWithLogger(fsys.NewOS(), args[0], stdlib, reporter, logger)

	for _, mod := range program.Members {
		fmt.Printf("module %s: %d member(s)\n", mod.Name, len(mod.Members))
		for _, m := range mod.Members {
			fmt.Printf("  %s %s\n", kindLabel(m.Kind), m.Name)
		}
	}
	printDiagnostics(reporter)

	if !ok {
		return reportFailure(reporter)
	}
	return 0
}

// ImportsCommand prints the canonical path of every module file
// transitively pulled into path's import graph, one per line, in
// discovery order.
type ImportsCommand struct{}

func importsCommandFactory() (cli.Command, error) {
	return &ImportsCommand{}, nil
}

func (c *ImportsCommand) Help() string {
	return strings.TrimSpace(`
Usage: rillparse imports [options] <path>

  Lists the canonical path of every module transitively imported from
  path, one per line, in the order the loader discovered them.

Options:

  -stdlib=<path>    See 'rillparse parse -help'.
`)
}

func (c *ImportsCommand) Synopsis() string {
	return "list a module's transitive imports"
}

func (c *ImportsCommand) Run(args []string) int {
	args, _ = logLevelFromFlag(args)
	args, stdlib := commonArgs(args)
	if len(args) != 1 {
		fmt.Println(c.Help())
		return 1
	}

	reporter := diag.NewReporter()
	paths := parser.ListImports(fsys.NewOS(), args[0], stdlib, reporter)
	for _, p := range paths {
		fmt.Println(p)
	}
	printDiagnostics(reporter)
	if reporter.Failed() {
		return reportFailure(reporter)
	}
	return 0
}

// FmtCheckCommand reports whether a module parses free of diagnostics.
// There is no pretty-printer in this front end, so "formatted" here means
// "well-formed enough to round-trip through the grammar cleanly" rather
// than byte-for-byte canonical spacing.
type FmtCheckCommand struct{}

func fmtCheckCommandFactory() (cli.Command, error) {
	return &FmtCheckCommand{}, nil
}

func (c *FmtCheckCommand) Help() string {
	return strings.TrimSpace(`
Usage: rillparse fmt-check [options] <path>

  Parses path and exits non-zero if any diagnostic was raised. Prints
  every diagnostic it collected along the way.

Options:

  -stdlib=<path>    See 'rillparse parse -help'.
`)
}

func (c *FmtCheckCommand) Synopsis() string {
	return "check that a module parses clean of diagnostics"
}

func (c *FmtCheckCommand) Run(args []string) int {
	args, logger := logLevelFromFlag(args)
	args, stdlib := commonArgs(args)
	if len(args) != 1 {
		fmt.Println(c.Help())
		return 1
	}

	reporter := diag.NewReporter()
	ok, _ := parser.ParseWithLogger(fsys.NewOS(), args[0], stdlib, reporter, logger)
	printDiagnostics(reporter)
	if !ok {
		return reportFailure(reporter)
	}
	return 0
}

func printDiagnostics(r *diag.Reporter) {
	diag.NewFormatter(os.Stdout).FormatAll(r.Diagnostics())
}

// reportFailure folds the reporter's accumulated errors into a single
// go-multierror-joined error and prints it to stderr as a one-line
// summary, separate from printDiagnostics' per-location snippet dump.
func reportFailure(r *diag.Reporter) int {
	if err := r.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return 1
}

func kindLabel(k ast.Kind) string {
	switch k {
	case ast.KClass:
		return "class"
	case ast.KInterface:
		return "interface"
	case ast.KTypeAlias:
		return "type"
	case ast.KUsing:
		return "using"
	case ast.KField:
		return "field"
	case ast.KFunction:
		return "function"
	default:
		return "member"
	}
}
