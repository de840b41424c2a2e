package parser

import (
	"testing"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/symtab"
)

func newTestParser(src string) *Parser {
	source := &lexer.Source{Path: "test", Text: src}
	reporter := diag.NewReporter()
	return &Parser{
		stream:   NewStream(source),
		scope:    symtab.New(reporter),
		reporter: reporter,
		logger:   hclog.NewNullLogger(),
	}
}

func TestParseMemberReturnsFailureWhenADiagnosticWasReported(t *testing.T) {
	p := newTestParser(`class C: A | B {}`)
	guard := p.scope.Push(ast.NewProgram(lexer.Location{}))
	defer guard.Close()

	_, outcome := p.parseMember()
	if outcome != Failure {
		t.Fatalf("expected Failure for a malformed inherits clause, got %v", outcome)
	}
	if !p.reporter.Failed() {
		t.Fatalf("expected the inherits-clause shape violation to be reported")
	}
}

func TestParseMemberReturnsSuccessWhenClean(t *testing.T) {
	p := newTestParser(`x: I32 = 1;`)
	guard := p.scope.Push(ast.NewProgram(lexer.Location{}))
	defer guard.Close()

	_, outcome := p.parseMember()
	if outcome != Success {
		t.Fatalf("expected Success for a well-formed field, got %v", outcome)
	}
	if p.reporter.Failed() {
		t.Fatalf("did not expect any diagnostic, got %v", p.reporter.Diagnostics())
	}
}

func TestParseMemberReturnsSkipOnNoAlternative(t *testing.T) {
	p := newTestParser(`=> x`)
	_, outcome := p.parseMember()
	if outcome != Skip {
		t.Fatalf("expected Skip when no member alternative starts here, got %v", outcome)
	}
}
