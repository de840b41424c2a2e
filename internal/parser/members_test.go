package parser_test

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
)

func TestFieldVsFunctionDisambiguation(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	x: I32 = 1;
	f(): I32 { x }
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	x := findMember(class, "x")
	if x == nil || x.Kind != ast.KField {
		t.Fatalf("expected x to parse as a field, got %+v", x)
	}
	f := findMember(class, "f")
	if f == nil || f.Kind != ast.KFunction {
		t.Fatalf("expected f to parse as a function, got %+v", f)
	}
}

func TestFunctionNameDefaultsToApplyWhenOmitted(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	(n: I32): I32 { n }
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	if len(class.Members) != 2 {
		t.Fatalf("expected the apply function plus the synthesized create, got %+v", class.Members)
	}
	fn := class.Members[0]
	if fn.Kind != ast.KFunction || fn.Name != "apply" {
		t.Fatalf("expected an 'apply' function, got %+v", fn)
	}
}

func TestBracketedFunctionNameAlsoDefaultsToApply(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	[T](x: T): T { x }
}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	fn := class.Members[0]
	if fn.Kind != ast.KFunction || fn.Name != "apply" {
		t.Fatalf("expected an 'apply' function, got %+v", fn)
	}
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("expected a single type parameter T, got %+v", fn.TypeParams)
	}
}

func TestValidInheritsClauseAcceptsTypeRefAndIntersection(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class A { create(): Self & iso { new A {} } }
class B { create(): Self & iso { new B {} } }
class C: A & B {}
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	if class.Inherits == nil || class.Inherits.Kind != ast.KIsectType {
		t.Fatalf("expected an intersection inherits clause, got %+v", class.Inherits)
	}
}

func TestInvalidInheritsClauseReportsShapeViolation(t *testing.T) {
	ok, _, reporter := parseSingleFile(t, `
class A { create(): Self & iso { new A {} } }
class B { create(): Self & iso { new B {} } }
class C: A | B {}
`)
	if ok {
		t.Fatalf("expected a shape violation for a union inherits clause")
	}
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.Kind == diag.KindShapeViolation && strings.Contains(d.Message, "inherits clause") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an inherits-clause shape violation, got %v", reporter.Diagnostics())
	}
}

func TestTypeAliasDistributesUnionOverIntersection(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class A { create(): Self & iso { new A {} } }
class B { create(): Self & iso { new B {} } }
class D { create(): Self & iso { new D {} } }
type T = A | B & D;
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	alias := findMember(mod, "T")
	if alias == nil || alias.Kind != ast.KTypeAlias {
		t.Fatalf("expected a type alias T, got %+v", alias)
	}
	if alias.Type == nil || alias.Type.Kind != ast.KUnionType {
		t.Fatalf("expected the alias's type to be a union, got %+v", alias.Type)
	}
	if len(alias.Type.Operands) != 2 {
		t.Fatalf("expected the union to have two operands, got %+v", alias.Type.Operands)
	}
}

func TestUsingDirectiveParsesTypeRef(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class A { create(): Self & iso { new A {} } }
using A;
`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	var using *ast.Node
	for _, m := range mod.Members {
		if m.Kind == ast.KUsing {
			using = m
		}
	}
	if using == nil || using.Type == nil {
		t.Fatalf("expected a using directive referencing a type, got %+v", using)
	}
}

func TestMalformedMemberResynchronisesOnMemberRecoveryKinds(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `
class C {
	42
	x: I32 = 1;
}
`)
	if ok {
		t.Fatalf("expected failure due to the malformed member")
	}
	mod := firstModule(program)
	class := findMember(mod, "C")
	if x := findMember(class, "x"); x == nil {
		t.Fatalf("expected parsing to recover and still find field x, got %+v", class.Members)
	}
	if len(reporter.Diagnostics()) == 0 {
		t.Fatalf("expected at least one diagnostic for the malformed member")
	}
}
