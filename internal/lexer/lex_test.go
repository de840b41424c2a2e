package lexer_test

import (
	"testing"

	"github.com/rill-lang/rill/internal/lexer"
)

func scanAll(t *testing.T, text string) []lexer.Token {
	t.Helper()
	src := &lexer.Source{Path: "<test>", Text: text}
	sc := lexer.NewScanner(src)
	var toks []lexer.Token
	for {
		tok := sc.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.End {
			return toks
		}
	}
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "class C { x: I32 = 1; }")

	want := []lexer.Kind{
		lexer.KwClass, lexer.Ident, lexer.LBrace,
		lexer.Ident, lexer.Colon, lexer.Ident, lexer.Assign, lexer.Int,
		lexer.Semi, lexer.RBrace, lexer.End,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks := scanAll(t, ":: => ~> <~ -> & | ...")
	want := []lexer.Kind{
		lexer.DoubleColon, lexer.FatArrow, lexer.TildeArrow, lexer.LTilde,
		lexer.Arrow, lexer.Amp, lexer.Pipe, lexer.Ellipsis, lexer.End,
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexNumberKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind lexer.Kind
	}{
		{"42", lexer.Int},
		{"3.14", lexer.Float},
		{"0xFF", lexer.Hex},
		{"0b101", lexer.Binary},
	}
	for _, c := range cases {
		toks := scanAll(t, c.src)
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Kind, c.kind)
		}
		if toks[0].Text != c.src {
			t.Errorf("%q: got text %q", c.src, toks[0].Text)
		}
	}
}

func TestLexStrings(t *testing.T) {
	toks := scanAll(t, `"a\"b" ` + "`raw\\n`" + ` 'c'`)
	if toks[0].Kind != lexer.EscapedString {
		t.Fatalf("expected EscapedString, got %s", toks[0].Kind)
	}
	if toks[1].Kind != lexer.UnescapedString {
		t.Fatalf("expected UnescapedString, got %s", toks[1].Kind)
	}
	if toks[2].Kind != lexer.Character {
		t.Fatalf("expected Character, got %s", toks[2].Kind)
	}
}

func TestLexSkipsComments(t *testing.T) {
	toks := scanAll(t, "// line\nclass /* block */ C")
	want := []lexer.Kind{lexer.KwClass, lexer.Ident, lexer.End}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
}

func TestLexLineColumnTracking(t *testing.T) {
	toks := scanAll(t, "a\nbb")
	if toks[0].Loc.Line != 1 || toks[0].Loc.Column != 1 {
		t.Errorf("first token loc = %+v", toks[0].Loc)
	}
	if toks[1].Loc.Line != 2 || toks[1].Loc.Column != 1 {
		t.Errorf("second token loc = %+v", toks[1].Loc)
	}
}
