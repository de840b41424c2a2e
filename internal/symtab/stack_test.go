package symtab_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/symtab"
)

func loc(start, end int) lexer.Location {
	return lexer.Location{Start: start, End: end, Line: 1, Column: start + 1}
}

func TestPushLinksParentAndGuardPops(t *testing.T) {
	stack := symtab.New(diag.NewReporter())

	program := ast.NewProgram(loc(0, 0))
	guard := stack.Push(program)
	if stack.Current() != program.Table {
		t.Fatalf("push should make the node's table current")
	}

	class := ast.NewClass(ast.NewIdent("C", loc(0, 1)), nil, nil, loc(0, 1))
	classGuard := stack.Push(class)
	if class.Table.Parent != program.Table {
		t.Fatalf("child scope's parent must be the enclosing scope's table")
	}

	classGuard.Done()
	if stack.Current() != program.Table {
		t.Fatalf("Done should pop back to the enclosing scope")
	}

	// A second Done (or the deferred Close) must be a no-op.
	classGuard.Done()
	if stack.Current() != program.Table {
		t.Fatalf("repeated Done must not pop twice")
	}

	guard.Done()
	if stack.Current() != nil {
		t.Fatalf("popping the outermost scope should leave no current scope")
	}
}

func TestSetSymDuplicateKeepsFirstAndReports(t *testing.T) {
	reporter := diag.NewReporter()
	stack := symtab.New(reporter)

	program := ast.NewProgram(loc(0, 0))
	stack.Push(program)

	first := ast.NewField("x", nil, nil, loc(0, 1))
	second := ast.NewField("x", nil, nil, loc(5, 6))

	stack.SetSym("x", first)
	if reporter.Failed() {
		t.Fatalf("first definition should not fail")
	}

	stack.SetSym("x", second)
	if !reporter.Failed() {
		t.Fatalf("duplicate definition should report an error")
	}

	got, _ := stack.Get("x")
	if got != first {
		t.Fatalf("table should retain the first definition, got %v", got)
	}

	diags := reporter.Diagnostics()
	last := diags[len(diags)-1]
	if len(last.Secondary) != 1 || last.Secondary[0].Label != "previous definition is here" {
		t.Fatalf("duplicate diagnostic should carry a 'previous definition is here' secondary span")
	}
}

func TestGetScopeWalksUpThroughPushedScopes(t *testing.T) {
	stack := symtab.New(diag.NewReporter())
	program := ast.NewProgram(loc(0, 0))
	stack.Push(program)

	outer := ast.NewIdent("y", loc(0, 1))
	stack.SetSym("y", outer)

	class := ast.NewClass(ast.NewIdent("C", loc(0, 1)), nil, nil, loc(0, 1))
	defer stack.Push(class).Close()

	if _, ok := stack.Get("y"); ok {
		t.Fatalf("Get must only consult the current scope")
	}
	got, ok := stack.GetScope("y")
	if !ok || got != outer {
		t.Fatalf("GetScope should find 'y' in the enclosing scope")
	}
}
