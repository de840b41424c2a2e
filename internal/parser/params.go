package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseTypeParamListOpt parses an optional '[' typeparam (',' typeparam)* ']'.
func (p *Parser) parseTypeParamListOpt() []*ast.Node {
	if !p.stream.Current().Is(lexer.LBracket, "") {
		return nil
	}
	p.stream.Take()
	var params []*ast.Node
	if !p.stream.Current().Is(lexer.RBracket, "") {
		for {
			params = append(params, p.parseTypeParam())
			if !p.stream.Has(lexer.Comma, "") {
				break
			}
		}
	}
	p.expect(lexer.RBracket, "", "']' to close a type parameter list")
	return params
}

// parseTypeParam parses one type-parameter declaration: a plain
// TypeParam (optional bound and default) or, when the name is followed by
// '...', a TypeParamList (a parameter pack, no default).
func (p *Parser) parseTypeParam() *ast.Node {
	nameTok, _ := p.expect(lexer.Ident, "", "a type parameter name")
	loc := nameTok.Loc
	if p.stream.Has(lexer.Ellipsis, "") {
		var bound *ast.Node
		if p.stream.Has(lexer.Colon, "") {
			bound = p.parseTypeExpr()
		}
		return ast.NewTypeParamList(nameTok.Text, bound, loc)
	}
	var bound, def *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		bound = p.parseTypeExpr()
	}
	if p.stream.Has(lexer.Assign, "") {
		def = p.parseTypeExpr()
	}
	return ast.NewTypeParam(nameTok.Text, bound, def, loc)
}

// parseFunctionParamList parses a typed, always-parenthesised parameter
// list for a top-level function declaration. Every parameter must carry
// an explicit type; a missing one is a shape-violation diagnostic, not a
// grammar alternative (unlike a lambda's pattern-position parameters).
func (p *Parser) parseFunctionParamList() ([]*ast.Node, lexer.Location) {
	open := p.stream.Take() // '('
	var params []*ast.Node
	if !p.stream.Current().Is(lexer.RParen, "") {
		for {
			params = append(params, p.parseFunctionParam())
			if !p.stream.Has(lexer.Comma, "") {
				break
			}
		}
	}
	closeTok, _ := p.expect(lexer.RParen, "", "')' to close a parameter list")
	return params, mergeSpan(open.Loc, closeTok.Loc)
}

func (p *Parser) parseFunctionParam() *ast.Node {
	nameTok, _ := p.expect(lexer.Ident, "", "a parameter name")
	var typ, def *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		typ = p.parseTypeExpr()
	} else {
		p.reportShape("parameter '"+nameTok.Text+"' has no type", nameTok.Loc)
		typ = ast.NewInferType(nameTok.Loc)
	}
	if p.stream.Has(lexer.Assign, "") {
		def = p.wrapInitLambda(p.parseExpr())
	}
	loc := nameTok.Loc
	if typ != nil {
		loc = mergeSpan(loc, typ.Loc)
	}
	if def != nil {
		loc = mergeSpan(loc, def.Loc)
	}
	return ast.NewParam(nameTok.Text, typ, def, loc)
}

// parseLambdaParamList parses the untyped, pattern-position parameter
// list that sits between a lambda's '{' and '=>'. Each element is either
// a genuine parameter binding or a plain expression used as a match
// pattern, disambiguated per-element by parseLambdaParam.
func (p *Parser) parseLambdaParamList() []*ast.Node {
	var params []*ast.Node
	if p.stream.Current().Is(lexer.FatArrow, "") {
		return params
	}
	for {
		params = append(params, p.parseLambdaParam())
		if !p.stream.Has(lexer.Comma, "") {
			break
		}
	}
	return params
}

// parseLambdaParam applies the parameter-vs-expression rule: an
// identifier immediately followed by ':', '=', ',', '=>', or ')' is a
// parameter binding; anything else starts a plain expression used as a
// pattern.
func (p *Parser) parseLambdaParam() *ast.Node {
	tok := p.stream.Current()
	if tok.Kind == lexer.Ident && p.nextIsParamPunctuation() {
		p.stream.Take()
		var typ, def *ast.Node
		if p.stream.Has(lexer.Colon, "") {
			typ = p.parseTypeExpr()
		} else {
			typ = ast.NewInferType(tok.Loc)
		}
		if p.stream.Has(lexer.Assign, "") {
			def = p.wrapInitLambda(p.parseExpr())
		}
		loc := tok.Loc
		if typ != nil {
			loc = mergeSpan(loc, typ.Loc)
		}
		if def != nil {
			loc = mergeSpan(loc, def.Loc)
		}
		return ast.NewParam(tok.Text, typ, def, loc)
	}
	return p.parseExpr()
}

func (p *Parser) nextIsParamPunctuation() bool {
	p.stream.Rewind()
	if !p.stream.Peek(lexer.Ident, "") {
		p.stream.Rewind()
		return false
	}
	next := p.stream.Lookahead()
	p.stream.Rewind()
	switch next.Kind {
	case lexer.Colon, lexer.Assign, lexer.Comma, lexer.FatArrow, lexer.RParen:
		return true
	default:
		return false
	}
}

// wrapInitLambda implements init-expression lambda wrapping: a field or
// parameter initialiser is deferred to construction time by wrapping it
// in a zero-argument lambda. The wrapped expression was already parsed
// against the ambient scope, so the synthetic lambda is pushed and
// immediately popped purely to link its (otherwise empty) table to an
// ancestor, satisfying the same invariant every parsed scope satisfies.
func (p *Parser) wrapInitLambda(expr *ast.Node) *ast.Node {
	lambdaNode := ast.NewLambda(nil, nil, nil, expr.Loc)
	guard := p.scope.Push(lambdaNode)
	guard.Close()
	lambdaNode.Stmts = []*ast.Node{expr}
	return lambdaNode
}
