package parser_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func TestViewTypeArrowBuildsViewType(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `x: A ~> B = y;`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	x := findMember(mod, "x")
	if x.Type.Kind != ast.KViewType {
		t.Fatalf("expected '~>' to build a ViewType, got %+v", x.Type)
	}
}

func TestViewTypeLeftTildeBuildsExtractType(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `x: A <~ B = y;`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	x := findMember(mod, "x")
	if x.Type.Kind != ast.KExtractType {
		t.Fatalf("expected '<~' to build an ExtractType, not a ViewType distinguished only by name, got %+v", x.Type)
	}
	if x.Type.Left == nil || x.Type.Left.Elements[0].Name != "A" || x.Type.Right == nil || x.Type.Right.Elements[0].Name != "B" {
		t.Fatalf("expected the extract type's operands to be A and B, got %+v", x.Type)
	}
}
