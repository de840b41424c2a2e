package dnf_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/dnf"
	"github.com/rill-lang/rill/internal/lexer"
)

func loc(start, end int) lexer.Location {
	return lexer.Location{Start: start, End: end, Line: 1, Column: start + 1}
}

func named(name string) *ast.Node {
	return ast.NewTypeName(name, nil, loc(0, len(name)))
}

func assertNoNestedUnion(t *testing.T, n *ast.Node) {
	t.Helper()
	ast.Walk(n, func(node *ast.Node) bool {
		if node.Kind == ast.KIsectType || node.Kind == ast.KThrowType {
			for _, op := range node.Operands {
				if op.Kind == ast.KUnionType {
					t.Fatalf("found Union nested under %v", node.Kind)
				}
			}
			if node.Target != nil && node.Target.Kind == ast.KUnionType {
				t.Fatalf("found Union nested under Throw")
			}
		}
		return true
	})
}

func TestConjunctionDistributesOverUnion(t *testing.T) {
	// A & (B | C) = (A & B) | (A & C)
	a, b, c := named("A"), named("B"), named("C")
	union := dnf.Disjunction(b, c, loc(0, 1))
	result := dnf.Conjunction(a, union, loc(0, 1))

	if result.Kind != ast.KUnionType {
		t.Fatalf("expected top-level Union, got %v", result.Kind)
	}
	if len(result.Operands) != 2 {
		t.Fatalf("expected 2 disjuncts, got %d", len(result.Operands))
	}
	for _, op := range result.Operands {
		if op.Kind != ast.KIsectType {
			t.Fatalf("expected each disjunct to be an Isect, got %v", op.Kind)
		}
	}
	assertNoNestedUnion(t, result)
}

func TestThrowDistributesOverUnion(t *testing.T) {
	a, b := named("A"), named("B")
	union := dnf.Disjunction(a, b, loc(0, 1))
	result := dnf.Throw(union, loc(0, 1))

	if result.Kind != ast.KUnionType {
		t.Fatalf("expected top-level Union, got %v", result.Kind)
	}
	for _, op := range result.Operands {
		if op.Kind != ast.KThrowType {
			t.Fatalf("expected each disjunct to be a Throw, got %v", op.Kind)
		}
	}
	assertNoNestedUnion(t, result)
}

func TestConjunctionFlattensNestedIntersections(t *testing.T) {
	a, b, c := named("A"), named("B"), named("C")
	ab := dnf.Conjunction(a, b, loc(0, 1))
	abc := dnf.Conjunction(ab, c, loc(0, 1))

	if abc.Kind != ast.KIsectType {
		t.Fatalf("expected Isect, got %v", abc.Kind)
	}
	if len(abc.Operands) != 3 {
		t.Fatalf("expected 3 flattened operands, got %d: %v", len(abc.Operands), abc.Operands)
	}
}

func TestConjunctionDeduplicatesOperands(t *testing.T) {
	a := named("A")
	result := dnf.Conjunction(a, named("A"), loc(0, 1))
	if result.Kind != ast.KTypeName || result.Name != "A" {
		t.Fatalf("A & A should collapse to A, got %v", result)
	}
}

func TestDisjunctionFlattensNestedUnions(t *testing.T) {
	a, b, c := named("A"), named("B"), named("C")
	ab := dnf.Disjunction(a, b, loc(0, 1))
	abc := dnf.Disjunction(ab, c, loc(0, 1))

	if abc.Kind != ast.KUnionType {
		t.Fatalf("expected Union, got %v", abc.Kind)
	}
	if len(abc.Operands) != 3 {
		t.Fatalf("expected 3 flattened operands, got %d", len(abc.Operands))
	}
}

func TestDisjunctionIsAssociativeAndCommutativeModuloOrder(t *testing.T) {
	a, b, c := named("A"), named("B"), named("C")

	left := dnf.Disjunction(dnf.Disjunction(a, b, loc(0, 1)), c, loc(0, 1))
	right := dnf.Disjunction(a, dnf.Disjunction(b, c, loc(0, 1)), loc(0, 1))

	if !dnf.Equal(left, right) {
		t.Fatalf("expected associative union to compare equal modulo order")
	}
}
