package parser_test

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/fsys"
	"github.com/rill-lang/rill/internal/parser"
)

func parseSingleFile(t *testing.T, src string) (bool, *ast.Node, *diag.Reporter) {
	t.Helper()
	fs := fsys.NewMem()
	fs.AddFile("/src/main.rl", src)
	reporter := diag.NewReporter()
	ok, program := parser.Parse(fs, "/src/main.rl", "/stdlib", reporter)
	return ok, program, reporter
}

func firstModule(program *ast.Node) *ast.Node {
	if len(program.Members) == 0 {
		return nil
	}
	return program.Members[0]
}

func TestParseEmptyModuleSucceeds(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, "")
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	if mod == nil || mod.Kind != ast.KModule {
		t.Fatalf("expected a single module entity, got %+v", program.Members)
	}
}

func TestModuleDirectiveAttachesTypeParamsAndInherits(t *testing.T) {
	ok, program, reporter := parseSingleFile(t, `module[T]: Base;`)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	mod := firstModule(program)
	if len(mod.TypeParams) != 1 || mod.TypeParams[0].Name != "T" {
		t.Fatalf("expected module type param T, got %+v", mod.TypeParams)
	}
	if mod.Inherits == nil {
		t.Fatalf("expected module inherits clause to be recorded")
	}
}

func TestDuplicateModuleDirectiveIsShapeViolation(t *testing.T) {
	ok, _, reporter := parseSingleFile(t, "module; module;")
	if ok {
		t.Fatalf("expected failure for duplicate module directive")
	}
	found := false
	for _, d := range reporter.Diagnostics() {
		if d.Kind == diag.KindShapeViolation && strings.Contains(d.Message, "duplicate module") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-module-directive diagnostic, got %v", reporter.Diagnostics())
	}
}

func TestUnresolvedModuleImportReportsBothAttemptedPaths(t *testing.T) {
	ok, _, reporter := parseSingleFile(t, `x: "missing"::Foo;`)
	if ok {
		t.Fatalf("expected failure for an unresolved module import")
	}
	var msg string
	for _, d := range reporter.Diagnostics() {
		if d.Kind == diag.KindIO {
			msg = d.Message
		}
	}
	if !strings.Contains(msg, "/src/missing") || !strings.Contains(msg, "/stdlib/missing") {
		t.Fatalf("expected diagnostic naming both attempted paths, got %q", msg)
	}
}

func TestModuleResolvesRelativeToSourceDirectory(t *testing.T) {
	fs := fsys.NewMem()
	fs.AddFile("/src/main.rl", `x: "lib.rl"::Widget;`)
	fs.AddFile("/src/lib.rl", `class Widget { create(): Self & iso { new Widget {} } }`)
	reporter := diag.NewReporter()
	ok, program := parser.Parse(fs, "/src/main.rl", "/stdlib", reporter)
	if !ok {
		t.Fatalf("expected success, got diagnostics: %v", reporter.Diagnostics())
	}
	if len(program.Members) != 2 {
		t.Fatalf("expected two module entities (main + lib), got %d", len(program.Members))
	}
}
