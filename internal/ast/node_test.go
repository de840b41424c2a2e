package ast_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

func loc(start, end int) lexer.Location {
	return lexer.Location{Start: start, End: end, Line: 1, Column: start + 1}
}

func TestTableDuplicateInsertKeepsFirst(t *testing.T) {
	table := ast.NewTable(nil)
	first := ast.NewIdent("x", loc(0, 1))
	second := ast.NewIdent("x", loc(5, 6))

	if _, inserted := table.Insert("x", first); !inserted {
		t.Fatalf("first insert should succeed")
	}
	prev, inserted := table.Insert("x", second)
	if inserted {
		t.Fatalf("duplicate insert should report inserted=false")
	}
	if prev != first {
		t.Fatalf("duplicate insert should return the first definition")
	}
	got, _ := table.Get("x")
	if got != first {
		t.Fatalf("table should retain the first definition")
	}
}

func TestTableGetScopeWalksParentChain(t *testing.T) {
	root := ast.NewTable(nil)
	decl := ast.NewIdent("outer", loc(0, 1))
	root.Insert("outer", decl)

	child := ast.NewTable(root)

	if _, ok := child.Get("outer"); ok {
		t.Fatalf("Get must not consult the parent scope")
	}
	got, ok := child.GetScope("outer")
	if !ok || got != decl {
		t.Fatalf("GetScope should find %v through the parent chain, got %v", decl, got)
	}
}

func TestWalkVisitsChildren(t *testing.T) {
	a := ast.NewIdent("a", loc(0, 1))
	b := ast.NewIdent("b", loc(1, 2))
	tuple := ast.NewTuple([]*ast.Node{a, b}, loc(0, 2))

	var visited []string
	ast.Walk(tuple, func(n *ast.Node) bool {
		if n.Kind == ast.KIdent {
			visited = append(visited, n.Name)
		}
		return true
	})

	if len(visited) != 2 || visited[0] != "a" || visited[1] != "b" {
		t.Fatalf("unexpected walk order: %v", visited)
	}
}

func TestScopeBearingKindsOwnTable(t *testing.T) {
	class := ast.NewClass(ast.NewIdent("C", loc(0, 1)), nil, nil, loc(0, 1))
	if !class.IsScope() || class.Table == nil {
		t.Fatalf("class should own a symbol table")
	}

	field := ast.NewField("x", nil, nil, loc(0, 1))
	if field.IsScope() || field.Table != nil {
		t.Fatalf("field is not scope-bearing")
	}
}
