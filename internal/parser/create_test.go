package parser_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/intern"
)

func findMember(mod *ast.Node, name string) *ast.Node {
	for _, m := range mod.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func TestTrivialCreateSynthesizedWhenAllFieldsHaveInitialisers(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	x: I32 = 1;
	y: I32 = 2;
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	if class == nil || class.Kind != ast.KClass {
		t.Fatalf("expected class C, got %+v", mod.Members)
	}
	create := findMember(class, intern.Create)
	if create == nil {
		t.Fatalf("expected a synthesized create function, members: %+v", class.Members)
	}
	if create.Lambda == nil || len(create.Lambda.Stmts) != 1 {
		t.Fatalf("expected create's body to hold a single synthesized 'new' expression")
	}
	if create.Lambda.Stmts[0].Kind != ast.KNew {
		t.Fatalf("expected create's body to be a 'new' expression, got kind %v", create.Lambda.Stmts[0].Kind)
	}
}

func TestCreateNotSynthesizedWhenAFieldHasNoInitialiser(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	x: I32;
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	if create := findMember(class, intern.Create); create != nil {
		t.Fatalf("did not expect a synthesized create function when a field lacks an initialiser")
	}
}

func TestExplicitCreateIsNotOverwritten(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	x: I32 = 1;
	create(n: I32): Self & iso { new C {} }
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	var creates int
	for _, m := range class.Members {
		if m.Name == intern.Create {
			creates++
		}
	}
	if creates != 1 {
		t.Fatalf("expected exactly one create (the explicit one), found %d", creates)
	}
	create := findMember(class, intern.Create)
	if len(create.Params) != 1 {
		t.Fatalf("expected the explicit create's own parameter list to survive, got %+v", create.Params)
	}
}
