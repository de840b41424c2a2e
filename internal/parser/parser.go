// Package parser is the grammar engine: a hand-written, backtracking
// recursive-descent parser driven off internal/parser's token stream
// adapter, building internal/ast trees while threading a symbol-table
// stack (internal/symtab) for scope-aware disambiguation and a diagnostic
// sink (internal/diag) for panic-mode error recovery.
package parser

import (
	hclog "github.com/hashicorp/go-hclog"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/fsys"
	"github.com/rill-lang/rill/internal/intern"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/symtab"
)

// LanguageExtension is the file extension the module loader matches
// against when listing a module directory's entries.
const LanguageExtension = ".rl"

// Parser holds everything shared across an entire parse invocation: the
// scope stack, the diagnostic sink, and the module loader's import list
// survive across files and modules, while
// stream is swapped out for each file parsed.
type Parser struct {
	stream   *Stream
	origin   string // the current file's source directory, for module resolution
	scope    *symtab.Stack
	reporter *diag.Reporter
	loader   *loader
	logger   hclog.Logger
}

// Parse runs the parser against path (a file or module directory),
// resolving any further module imports discovered during parsing against
// stdlibPath, and recording diagnostics into reporter. It returns whether
// the parse succeeded and the program tree (always non-nil; partial on
// failure).
func Parse(fs fsys.FS, path, stdlibPath string, reporter *diag.Reporter) (bool, *ast.Node) {
	return ParseWithLogger(fs, path, stdlibPath, reporter, hclog.NewNullLogger())
}

// ParseWithLogger is Parse with an explicit logger, used by the CLI to
// route module-loader and recovery tracing through its own -log-level.
func ParseWithLogger(fs fsys.FS, path, stdlibPath string, reporter *diag.Reporter, logger hclog.Logger) (bool, *ast.Node) {
	program := ast.NewProgram(lexer.Location{})

	ld := newLoader(fs, stdlibPath, reporter, logger)
	canon := fs.Canonical(path)
	if canon == "" {
		reporter.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Kind:     diag.KindIO,
			Message:  "cannot resolve input path: " + path,
		})
		return false, program
	}
	ld.addOrReuse(canon)

	p := &Parser{
		scope:    symtab.New(reporter),
		reporter: reporter,
		loader:   ld,
		logger:   logger,
	}

	for i := 0; i < len(ld.entries); i++ {
		ld.loadModule(p, i)
	}

	for i, entry := range ld.entries {
		name := intern.ModuleName(i)
		entry.node.Name = name
		program.Members = append(program.Members, entry.node)
		program.Table.Insert(name, entry.node)
	}

	return !reporter.Failed(), program
}

// ListImports runs the module loader to completion exactly as Parse does,
// but returns the canonical paths of every module file transitively
// pulled in (in discovery order) instead of a program tree, for tooling
// that only needs the dependency list.
func ListImports(fs fsys.FS, path, stdlibPath string, reporter *diag.Reporter) []string {
	ld := newLoader(fs, stdlibPath, reporter, hclog.NewNullLogger())
	canon := fs.Canonical(path)
	if canon == "" {
		reporter.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Kind:     diag.KindIO,
			Message:  "cannot resolve input path: " + path,
		})
		return nil
	}
	ld.addOrReuse(canon)

	p := &Parser{
		scope:    symtab.New(reporter),
		reporter: reporter,
		loader:   ld,
		logger:   ld.logger,
	}
	for i := 0; i < len(ld.entries); i++ {
		ld.loadModule(p, i)
	}

	paths := make([]string, len(ld.entries))
	for i, e := range ld.entries {
		paths[i] = e.path
	}
	return paths
}

func (p *Parser) atEnd() bool {
	return p.stream.Current().Kind == lexer.End
}

// expect consumes a token of kind/text via Has, reporting a
// "lexical alternative missing" diagnostic at the token that was actually
// there when it fails to match. The token returned is always the one that
// was current before the call, whether or not the match succeeded, so
// callers can still use its location for span-building in the error path.
func (p *Parser) expect(kind lexer.Kind, text, what string) (lexer.Token, bool) {
	tok := p.stream.Current()
	if p.stream.Has(kind, text) {
		return tok, true
	}
	p.reportExpected(what, tok.Loc)
	return tok, false
}

func (p *Parser) reportExpected(what string, loc lexer.Location) {
	p.reporter.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Kind:     diag.KindExpected,
		Message:  "expected " + what,
		Loc:      loc,
	})
}

func (p *Parser) reportShape(message string, loc lexer.Location) {
	p.reporter.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Kind:     diag.KindShapeViolation,
		Message:  message,
		Loc:      loc,
	})
}

func (p *Parser) reportUnrecoverable(message string, loc lexer.Location) {
	p.reporter.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Kind:     diag.KindUnrecoverable,
		Message:  message,
		Loc:      loc,
	})
}
