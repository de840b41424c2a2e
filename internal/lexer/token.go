// Package lexer provides the token model consumed by the parser and a
// reference scanner implementing the pure (source, position) -> (token,
// new position) step function the grammar engine drives.
package lexer

// Kind is a closed enumeration of token kinds.
type Kind int

const (
	End Kind = iota

	Ident

	// Literals.
	Int
	Float
	Hex
	Binary
	Character
	EscapedString
	UnescapedString
	Bool

	// Punctuation.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Semi
	Colon
	DoubleColon
	Assign
	FatArrow
	Dot
	Tilde      // ~
	TildeArrow // ~>
	LTilde     // <~
	Arrow      // ->
	Amp        // &
	Pipe       // |
	At         // @
	Ellipsis   // ...

	// Keywords.
	KwWhen
	KwTry
	KwCatch
	KwMatch
	KwNew
	KwThrow
	KwLet
	KwVar
	KwType
	KwClass
	KwInterface
	KwUsing
	KwModule
	KwIso
	KwMut
	KwImm
	KwSelf
)

var kindNames = map[Kind]string{
	End: "End", Ident: "Ident",
	Int: "Int", Float: "Float", Hex: "Hex", Binary: "Binary",
	Character: "Character", EscapedString: "EscapedString",
	UnescapedString: "UnescapedString", Bool: "Bool",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Comma: ",", Semi: ";", Colon: ":",
	DoubleColon: "::", Assign: "=", FatArrow: "=>", Dot: ".",
	Tilde: "~", TildeArrow: "~>", LTilde: "<~", Arrow: "->",
	Amp: "&", Pipe: "|", At: "@", Ellipsis: "...",
	KwWhen: "when", KwTry: "try", KwCatch: "catch", KwMatch: "match",
	KwNew: "new", KwThrow: "throw", KwLet: "let", KwVar: "var",
	KwType: "type", KwClass: "class", KwInterface: "interface",
	KwUsing: "using", KwModule: "module", KwIso: "iso", KwMut: "mut",
	KwImm: "imm", KwSelf: "Self",
}

// String renders a kind for diagnostics and tests.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

var keywords = map[string]Kind{
	"when": KwWhen, "try": KwTry, "catch": KwCatch, "match": KwMatch,
	"new": KwNew, "throw": KwThrow, "let": KwLet, "var": KwVar,
	"type": KwType, "class": KwClass, "interface": KwInterface,
	"using": KwUsing, "module": KwModule, "iso": KwIso, "mut": KwMut,
	"imm": KwImm, "Self": KwSelf, "true": Bool, "false": Bool,
}

// LookupIdent classifies a scanned identifier as a keyword or a plain Ident.
func LookupIdent(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// Token is one lexical token with its source span.
type Token struct {
	Kind Kind
	// Text is the raw source text for the token (identifier name, operator
	// spelling, or the literal exactly as written, escapes undecoded).
	Text string
	Loc  Location
}

// Is reports whether the token has the given kind, and, when text is
// non-empty, the given exact text.
func (t Token) Is(k Kind, text string) bool {
	if t.Kind != k {
		return false
	}
	return text == "" || t.Text == text
}
