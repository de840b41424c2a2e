package parser

import (
	hclog "github.com/hashicorp/go-hclog"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/fsys"
	"github.com/rill-lang/rill/internal/lexer"
)

// moduleEntry is one slot of the loader's import list: a canonical path,
// the module entity files are parsed into, and whether a moduledef
// directive has already been seen for it.
type moduleEntry struct {
	path         string
	node         *ast.Node
	sawModuleDef bool
}

// loader discovers module files by extension, deduplicates imports by
// canonical path, and assigns the module indices the parser's
// "$module-<i>" identifiers are built from.
type loader struct {
	fs       fsys.FS
	stdlib   string
	reporter *diag.Reporter
	logger   hclog.Logger
	entries  []*moduleEntry
}

func newLoader(fs fsys.FS, stdlib string, reporter *diag.Reporter, logger hclog.Logger) *loader {
	return &loader{fs: fs, stdlib: stdlib, reporter: reporter, logger: logger}
}

func (l *loader) indexOf(canon string) (int, bool) {
	for i, e := range l.entries {
		if e.path == canon {
			return i, true
		}
	}
	return -1, false
}

// addOrReuse returns canon's index in the import list, appending a fresh
// entry if this is the first time canon has been seen.
func (l *loader) addOrReuse(canon string) int {
	if i, ok := l.indexOf(canon); ok {
		return i
	}
	l.entries = append(l.entries, &moduleEntry{path: canon, node: ast.NewModule(lexer.Location{})})
	return len(l.entries) - 1
}

// resolve tries join(origin, raw) then join(stdlib, raw), canonicalising
// each; it returns the canonical path and both attempted paths (for the
// "both missing" diagnostic) and whether resolution succeeded.
func (l *loader) resolve(origin, raw string) (canon, triedSource, triedStdlib string, ok bool) {
	triedSource = l.fs.Join(origin, raw)
	l.logger.Trace("resolving import", "raw", raw, "tried", triedSource)
	if c := l.fs.Canonical(triedSource); c != "" {
		return c, triedSource, "", true
	}
	triedStdlib = l.fs.Join(l.stdlib, raw)
	l.logger.Trace("resolving import", "raw", raw, "tried", triedStdlib)
	if c := l.fs.Canonical(triedStdlib); c != "" {
		return c, triedSource, triedStdlib, true
	}
	l.logger.Debug("import unresolved", "raw", raw, "tried_source", triedSource, "tried_stdlib", triedStdlib)
	return "", triedSource, triedStdlib, false
}

// loadModule opens the i-th import, discovering its files (or treating it
// as a single file, for the testing hook mentioned in the loader's spec)
// and parsing each into the entry's shared module entity.
func (l *loader) loadModule(p *Parser, i int) {
	entry := l.entries[i]
	l.logger.Debug("loading module", "index", i, "path", entry.path)

	if l.fs.IsDirectory(entry.path) {
		names, err := l.fs.Files(entry.path)
		if err != nil {
			l.reporter.Report(diag.Diagnostic{
				Severity: diag.SeverityError,
				Kind:     diag.KindIO,
				Message:  "cannot list module directory " + entry.path + ": " + err.Error(),
			})
			return
		}
		var matching []string
		for _, name := range names {
			if l.fs.Extension(name) == LanguageExtension {
				matching = append(matching, name)
			}
		}
		if len(matching) == 0 {
			l.reporter.Report(diag.Diagnostic{
				Severity: diag.SeverityError,
				Kind:     diag.KindIO,
				Message:  "module directory contains no " + LanguageExtension + " files: " + entry.path,
			})
			return
		}
		for _, name := range matching {
			l.parseFile(p, entry, l.fs.Join(entry.path, name), entry.path)
		}
		return
	}

	l.parseFile(p, entry, entry.path, l.fs.ToDirectory(entry.path))
}

func (l *loader) parseFile(p *Parser, entry *moduleEntry, filePath, origin string) {
	contents, err := l.fs.ReadFile(filePath)
	if err != nil {
		l.reporter.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Kind:     diag.KindIO,
			Message:  "cannot read " + filePath + ": " + err.Error(),
		})
		return
	}
	src := &lexer.Source{Path: filePath, Origin: origin, Text: contents}
	p.stream = NewStream(src)
	p.origin = origin
	p.parseModuleFile(entry)
}

// parseModuleFile parses one file's worth of top-level members into
// entry's module entity, which is shared across every file of the same
// module.
func (p *Parser) parseModuleFile(entry *moduleEntry) {
	guard := p.scope.Push(entry.node)
	defer guard.Close()

	for !p.atEnd() {
		if p.stream.Current().Is(lexer.KwModule, "") {
			p.parseModuleDef(entry)
			continue
		}
		member, outcome := p.parseMember()
		if outcome == Skip {
			tok := p.stream.Current()
			p.reportExpected("a class, interface, type, using, field, or function declaration", tok.Loc)
			// A stray ';' would stop restartBefore in place, so step past
			// the offending token first.
			if !isOpenDelim(tok.Kind) {
				p.stream.Take()
			}
			p.restartBefore(memberRecoveryKinds...)
			continue
		}
		if member != nil {
			entry.node.Members = append(entry.node.Members, member)
			if member.Name != "" {
				p.scope.SetSym(member.Name, member)
			}
		}
	}
}

// parseModuleDef handles the optional "module typeparams? oftype? ;"
// directive, at most once per module entity. A second occurrence is a
// shape violation; the parser does not re-parse its grammar at all, it
// just resyncs past the next ';' the way panic-mode recovery resyncs
// past any other malformed construct.
func (p *Parser) parseModuleDef(entry *moduleEntry) {
	start := p.stream.Take() // 'module'

	if entry.sawModuleDef {
		p.restartAfter(lexer.Semi)
		p.reportShape("duplicate module directive", start.Loc)
		return
	}

	typeParams := p.parseTypeParamListOpt()
	var inherits *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		inherits = p.parseInheritsClause()
	}
	semiTok, _ := p.expect(lexer.Semi, "", "';' after module directive")
	loc := mergeSpan(start.Loc, semiTok.Loc)

	entry.sawModuleDef = true
	entry.node.TypeParams = append(entry.node.TypeParams, typeParams...)
	entry.node.Inherits = inherits
	entry.node.Loc = entry.node.Loc.Range(loc)
}

// rawStringBody strips the delimiting quote characters from an escaped
// or unescaped string token's raw text. It does not decode escapes
// (escape decoding belongs to the lexical tokeniser, not the parser);
// the module loader only needs the delimiters removed to get a path.
func rawStringBody(tok lexer.Token) string {
	if len(tok.Text) < 2 {
		return tok.Text
	}
	return tok.Text[1 : len(tok.Text)-1]
}
