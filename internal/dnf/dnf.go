// Package dnf builds union, intersection, and throw type nodes in
// disjunctive normal form: no Union ever appears nested beneath an Isect
// or a Throw. Conjunction, Disjunction, and Throw are the only functions
// allowed to produce KIsectType/KUnionType/KThrowType nodes; everywhere
// else in the parser builds these through them.
package dnf

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// Conjunction builds an intersection of a and b such that the result is in
// DNF: if either operand is a union, the other side is distributed over
// it. Nested intersections are flattened and trivially-equal operands are
// deduplicated.
func Conjunction(a, b *ast.Node, loc lexer.Location) *ast.Node {
	if a.Kind == ast.KUnionType {
		parts := make([]*ast.Node, len(a.Operands))
		for i, u := range a.Operands {
			parts[i] = Conjunction(u, b, loc)
		}
		return foldDisjunction(parts, loc)
	}
	if b.Kind == ast.KUnionType {
		parts := make([]*ast.Node, len(b.Operands))
		for i, u := range b.Operands {
			parts[i] = Conjunction(a, u, loc)
		}
		return foldDisjunction(parts, loc)
	}

	operands := dedupe(append(flattenIsect(a), flattenIsect(b)...))
	if len(operands) == 1 {
		return withLoc(operands[0], loc)
	}
	return ast.NewIsectTypeRaw(operands, loc)
}

// Disjunction builds a union of a and b, flattening nested unions and
// deduplicating trivially-equal operands.
func Disjunction(a, b *ast.Node, loc lexer.Location) *ast.Node {
	operands := dedupe(append(flattenUnion(a), flattenUnion(b)...))
	if len(operands) == 1 {
		return withLoc(operands[0], loc)
	}
	return ast.NewUnionTypeRaw(operands, loc)
}

// Throw wraps t as a throw type, distributing over any top-level union:
// throw(u1|...|un) = throw(u1) | ... | throw(un).
func Throw(t *ast.Node, loc lexer.Location) *ast.Node {
	if t.Kind == ast.KUnionType {
		parts := make([]*ast.Node, len(t.Operands))
		for i, u := range t.Operands {
			parts[i] = ast.NewThrowTypeRaw(u, loc)
		}
		return foldDisjunction(parts, loc)
	}
	return ast.NewThrowTypeRaw(t, loc)
}

func foldDisjunction(parts []*ast.Node, loc lexer.Location) *ast.Node {
	if len(parts) == 0 {
		return nil
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result = Disjunction(result, p, loc)
	}
	return result
}

func flattenIsect(n *ast.Node) []*ast.Node {
	if n.Kind == ast.KIsectType {
		return n.Operands
	}
	return []*ast.Node{n}
}

func flattenUnion(n *ast.Node) []*ast.Node {
	if n.Kind == ast.KUnionType {
		return n.Operands
	}
	return []*ast.Node{n}
}

// withLoc returns n with its span widened to cover loc, without mutating
// the shared node (a single-operand DNF collapse must not silently alias
// a node's span across the whole tree).
func withLoc(n *ast.Node, loc lexer.Location) *ast.Node {
	copyOf := *n
	copyOf.Loc = n.Loc.Range(loc)
	return &copyOf
}

func dedupe(operands []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(operands))
	for _, candidate := range operands {
		dup := false
		for _, kept := range out {
			if Equal(candidate, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, candidate)
		}
	}
	return out
}

// Equal reports whether two type nodes are structurally equal modulo
// location and operand order within a single union/intersection level.
func Equal(a, b *ast.Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.KIso, ast.KMut, ast.KImm, ast.KSelfType, ast.KInferType:
		return true
	case ast.KTypeList:
		return a.Name == b.Name
	case ast.KTypeName, ast.KModuleName:
		return a.Name == b.Name && equalSlice(a.TypeArgs, b.TypeArgs)
	case ast.KTypeRef:
		return equalSlice(a.Elements, b.Elements) && equalSlice(a.TypeArgs, b.TypeArgs)
	case ast.KTupleType:
		return equalSlice(a.Elements, b.Elements)
	case ast.KFunctionType:
		return equalSlice(a.Params, b.Params) && equalOptional(a.Type, b.Type)
	case ast.KViewType:
		return a.Name == b.Name && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case ast.KExtractType:
		return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case ast.KThrowType:
		return Equal(a.Target, b.Target)
	case ast.KIsectType, ast.KUnionType:
		return equalSet(a.Operands, b.Operands)
	default:
		return a.Name == b.Name && a.Text == b.Text
	}
}

func equalOptional(a, b *ast.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(a, b)
}

func equalSlice(a, b []*ast.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// equalSet compares two operand lists order-independently, for Union and
// Isect whose construction may have reordered operands.
func equalSet(a, b []*ast.Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for i, y := range b {
			if used[i] {
				continue
			}
			if Equal(x, y) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
