package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diag"
	"github.com/rill-lang/rill/internal/dnf"
	"github.com/rill-lang/rill/internal/intern"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseTypeExpr parses the full type grammar from its lowest precedence
// (union) down through intersections, function types, view types, and
// capability/reference atoms, normalising union/intersection/throw nodes
// into disjunctive normal form as it goes.
func (p *Parser) parseTypeExpr() *ast.Node {
	left := p.parseThrowType()
	for p.stream.Has(lexer.Pipe, "") {
		right := p.parseThrowType()
		left = dnf.Disjunction(left, right, mergeSpan(left.Loc, right.Loc))
	}
	return left
}

func (p *Parser) parseThrowType() *ast.Node {
	start := p.stream.Current().Loc
	if p.stream.Has(lexer.KwThrow, "") {
		t := p.parseIsectType()
		return dnf.Throw(t, mergeSpan(start, t.Loc))
	}
	return p.parseIsectType()
}

func (p *Parser) parseIsectType() *ast.Node {
	left := p.parseFunctionType()
	for p.stream.Has(lexer.Amp, "") {
		right := p.parseFunctionType()
		left = dnf.Conjunction(left, right, mergeSpan(left.Loc, right.Loc))
	}
	return left
}

// parseFunctionType is right-associative: a -> b -> c parses as a -> (b -> c).
func (p *Parser) parseFunctionType() *ast.Node {
	left := p.parseViewType()
	if p.stream.Has(lexer.Arrow, "") {
		right := p.parseFunctionType()
		return ast.NewFunctionType([]*ast.Node{left}, right, mergeSpan(left.Loc, right.Loc))
	}
	return left
}

// parseViewType is left-associative over '~>' and '<~'. The two operators
// build distinct kinds - ViewType for '~>', ExtractType for '<~' - rather
// than sharing one kind distinguished only by an operator name.
func (p *Parser) parseViewType() *ast.Node {
	left := p.parseCapType()
	for {
		tok := p.stream.Current()
		if tok.Kind != lexer.TildeArrow && tok.Kind != lexer.LTilde {
			break
		}
		p.stream.Take()
		right := p.parseCapType()
		if tok.Kind == lexer.LTilde {
			left = ast.NewExtractType(left, right, mergeSpan(left.Loc, right.Loc))
		} else {
			left = ast.NewViewType(left, right, mergeSpan(left.Loc, right.Loc))
		}
	}
	return left
}

func (p *Parser) parseCapType() *ast.Node {
	tok := p.stream.Current()
	switch tok.Kind {
	case lexer.KwIso:
		p.stream.Take()
		return ast.NewIso(tok.Loc)
	case lexer.KwMut:
		p.stream.Take()
		return ast.NewMut(tok.Loc)
	case lexer.KwImm:
		p.stream.Take()
		return ast.NewImm(tok.Loc)
	case lexer.KwSelf:
		p.stream.Take()
		return ast.NewSelf(tok.Loc)
	case lexer.LParen:
		return p.parseTupleType()
	case lexer.Ident:
		if p.peekIsTypeList() {
			p.stream.Take()
			ellipsis := p.stream.Take()
			name := tok.Text
			loc := mergeSpan(tok.Loc, ellipsis.Loc)
			if decl, ok := p.scope.GetScope(name); !ok || decl.Kind != ast.KTypeParamList {
				p.reportShape("'"+name+"...' does not resolve to a type parameter list", loc)
			}
			return ast.NewTypeList(name, loc)
		}
		return p.parseTypeRef()
	case lexer.EscapedString:
		return p.parseTypeRef()
	default:
		p.reportExpected("a type", tok.Loc)
		p.stream.Take()
		return ast.NewInferType(tok.Loc)
	}
}

// peekIsTypeList reports whether the current ident is immediately
// followed by '...', without consuming either token.
func (p *Parser) peekIsTypeList() bool {
	p.stream.Rewind()
	ok := p.stream.Peek(lexer.Ident, "") && p.stream.Peek(lexer.Ellipsis, "")
	p.stream.Rewind()
	return ok
}

func (p *Parser) parseTupleType() *ast.Node {
	open := p.stream.Take() // '('
	var elems []*ast.Node
	if !p.stream.Current().Is(lexer.RParen, "") {
		for {
			elems = append(elems, p.parseTypeExpr())
			if !p.stream.Has(lexer.Comma, "") {
				break
			}
		}
	}
	closeTok, _ := p.expect(lexer.RParen, "", "')' to close a tuple type")
	loc := mergeSpan(open.Loc, closeTok.Loc)
	if len(elems) == 1 {
		return widenLoc(elems[0], loc)
	}
	return ast.NewTupleType(elems, loc)
}

func (p *Parser) parseTypeRef() *ast.Node {
	var first *ast.Node
	if p.stream.Current().Kind == lexer.EscapedString {
		first = p.parseModuleName()
	} else {
		first = p.parseTypeName()
	}
	segments := []*ast.Node{first}
	for p.stream.Has(lexer.DoubleColon, "") {
		segments = append(segments, p.parseTypeName())
	}
	loc := segments[0].Loc
	if len(segments) > 1 {
		loc = mergeSpan(loc, segments[len(segments)-1].Loc)
	}
	return ast.NewTypeRef(segments, nil, loc)
}

func (p *Parser) parseTypeName() *ast.Node {
	tok := p.stream.Take()
	typeArgs, argsLoc := p.parseTypeArgsOpt()
	loc := tok.Loc
	if argsLoc.End > loc.End {
		loc = mergeSpan(loc, argsLoc)
	}
	return ast.NewTypeName(tok.Text, typeArgs, loc)
}

// parseModuleName decodes an EscapedString literal as a module path,
// resolves it against the current file's origin and the stdlib path, and
// renames it to its assigned "$module-<i>" identifier. Escape sequences
// within the string are left exactly as written: the parser only strips
// delimiting quotes, never decodes them.
func (p *Parser) parseModuleName() *ast.Node {
	tok := p.stream.Take()
	typeArgs, argsLoc := p.parseTypeArgsOpt()
	loc := tok.Loc
	if argsLoc.End > loc.End {
		loc = mergeSpan(loc, argsLoc)
	}

	raw := rawStringBody(tok)
	p.logger.Debug("resolving module name", "raw", raw, "origin", p.origin)
	canon, triedSource, triedStdlib, ok := p.loader.resolve(p.origin, raw)
	if !ok {
		p.reporter.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Kind:     diag.KindIO,
			Message:  "cannot resolve module \"" + raw + "\": tried " + triedSource + " and " + triedStdlib,
			Loc:      tok.Loc,
		})
		return ast.NewModuleName(raw, typeArgs, loc)
	}
	index := p.loader.addOrReuse(canon)
	return ast.NewModuleName(intern.ModuleName(index), typeArgs, loc)
}

func (p *Parser) parseTypeArgsOpt() ([]*ast.Node, lexer.Location) {
	if !p.stream.Current().Is(lexer.LBracket, "") {
		return nil, lexer.Location{}
	}
	open := p.stream.Take()
	var args []*ast.Node
	if !p.stream.Current().Is(lexer.RBracket, "") {
		for {
			args = append(args, p.parseTypeExpr())
			if !p.stream.Has(lexer.Comma, "") {
				break
			}
		}
	}
	closeTok, _ := p.expect(lexer.RBracket, "", "']' to close a type argument list")
	return args, mergeSpan(open.Loc, closeTok.Loc)
}
