package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// mergeSpan returns the location spanning from a's start through b's end,
// used throughout the grammar to give composite nodes a span covering
// every token that went into them.
func mergeSpan(a, b lexer.Location) lexer.Location {
	return a.Range(b)
}

// symbolNameKinds are the punctuation tokens that can stand in for an
// identifier as a function name, letting a class or interface define an
// operator method (e.g. overloading '&' or '|' on a value type distinct
// from their meaning in the type grammar).
var symbolNameKinds = []lexer.Kind{
	lexer.Amp, lexer.Pipe, lexer.Arrow, lexer.TildeArrow, lexer.LTilde,
}

func isSymbolNameKind(k lexer.Kind) bool {
	for _, want := range symbolNameKinds {
		if want == k {
			return true
		}
	}
	return false
}

// isFunctionNameKind reports whether tok could be consumed as a member's
// name token (an identifier or one of the operator spellings).
func isFunctionNameKind(k lexer.Kind) bool {
	return k == lexer.Ident || isSymbolNameKind(k)
}

// widenLoc returns a copy of n with its span replaced by loc, without
// mutating the original node (needed whenever a parenthesised or
// singleton group collapses to its one element but must still report the
// enclosing span).
func widenLoc(n *ast.Node, loc lexer.Location) *ast.Node {
	c := *n
	c.Loc = loc
	return &c
}

// memberRecoveryKinds is the resynchronisation set used when a module
// file or type body contains a token that starts none of the member
// alternatives.
var memberRecoveryKinds = []lexer.Kind{
	lexer.KwClass, lexer.KwInterface, lexer.KwType, lexer.KwUsing,
	lexer.KwModule, lexer.Ident, lexer.LBracket, lexer.LParen, lexer.Semi,
	lexer.Amp, lexer.Pipe, lexer.Arrow, lexer.TildeArrow, lexer.LTilde,
}
