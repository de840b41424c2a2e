// Package symtab implements the parser's lexical symbol-table stack: a
// push/pop discipline over the per-scope tables owned by scope-bearing
// ast.Node values, used during parsing to disambiguate a bare identifier
// as either a local reference or a selector.
package symtab

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
)

// Stack tracks the current scope while parsing. It does not own any
// ast.Node: every table it touches is owned by the node that carries it.
type Stack struct {
	reporter *diag.Reporter
	current  *ast.Table
}

// New returns an empty stack reporting duplicate-symbol diagnostics to r.
func New(r *diag.Reporter) *Stack {
	return &Stack{reporter: r}
}

// Current returns the innermost scope's table, or nil before any Push.
func (s *Stack) Current() *ast.Table {
	return s.current
}

// Guard pairs a Push with its Pop: Pop runs once, either when Done is
// called explicitly (a scope that ends before all its syntactic contents
// do, e.g. a function pushing its body as a separate lambda scope) or via
// Close in a defer, whichever comes first.
type Guard struct {
	stack *Stack
	prev  *ast.Table
	done  bool
}

// Done pops the scope early. Safe to call at most meaningfully once;
// subsequent calls (including the deferred Close) are no-ops.
func (g *Guard) Done() {
	if g.done {
		return
	}
	g.done = true
	g.stack.current = g.prev
}

// Close is Done under another name, meant to be deferred:
// defer stack.Push(node).Close()
func (g *Guard) Close() {
	g.Done()
}

// Push makes node the current scope, linking its table's Parent to the
// scope that was current before the call. node must be scope-bearing
// (node.Table must already be non-nil, as built by the ast constructors).
func (s *Stack) Push(node *ast.Node) *Guard {
	if node.Table == nil {
		node.Table = ast.NewTable(s.current)
	} else {
		node.Table.Parent = s.current
	}
	prev := s.current
	s.current = node.Table
	return &Guard{stack: s, prev: prev}
}

// Pop discards the current scope outright, without a guard. Prefer Push's
// returned Guard; Pop exists for callers that already tracked the
// enclosing table themselves.
func (s *Stack) Pop() {
	if s.current != nil {
		s.current = s.current.Parent
	}
}

// Get looks up name in the current scope only.
func (s *Stack) Get(name string) (*ast.Node, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current.Get(name)
}

// GetScope looks up name by walking the scope chain outward from the
// current scope.
func (s *Stack) GetScope(name string) (*ast.Node, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current.GetScope(name)
}

// SetSym inserts name -> decl in the current scope. On a duplicate it
// reports a dual-location diagnostic (the new location plus "previous
// definition is here" at the first one) and leaves the first definition in
// place; it never overwrites.
func (s *Stack) SetSym(name string, decl *ast.Node) {
	if s.current == nil {
		return
	}
	previous, inserted := s.current.Insert(name, decl)
	if inserted {
		return
	}
	d := diag.Diagnostic{
		Severity: diag.SeverityError,
		Kind:     diag.KindShapeViolation,
		Message:  "duplicate definition of '" + name + "'",
		Loc:      decl.Loc,
	}.WithSecondary(previous.Loc, "previous definition is here")
	if s.reporter != nil {
		s.reporter.Report(d)
	}
}
