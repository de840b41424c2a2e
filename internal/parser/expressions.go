package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/intern"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseExpr parses the full expression grammar: an exprstart, optionally
// annotated with ': type', optionally assigned with '= expr'. Both
// suffixes wrap the preceding node rather than feeding into it, so
// "let x: I32 = 1" parses as Assign(Oftype(Let(x), I32), 1).
func (p *Parser) parseExpr() *ast.Node {
	expr := p.parseExprStart()
	if p.stream.Has(lexer.Colon, "") {
		typ := p.parseTypeExpr()
		expr = ast.NewOftype(expr, typ, mergeSpan(expr.Loc, typ.Loc))
	}
	if p.stream.Has(lexer.Assign, "") {
		value := p.parseExpr()
		expr = ast.NewAssign(expr, value, mergeSpan(expr.Loc, value.Loc))
	}
	return expr
}

func (p *Parser) parseExprStart() *ast.Node {
	tok := p.stream.Current()
	switch tok.Kind {
	case lexer.KwLet:
		p.stream.Take()
		nameTok, _ := p.expect(lexer.Ident, "", "an identifier after 'let'")
		node := ast.NewLet(nameTok.Text, nil, mergeSpan(tok.Loc, nameTok.Loc))
		p.scope.SetSym(nameTok.Text, node)
		return node
	case lexer.KwVar:
		p.stream.Take()
		nameTok, _ := p.expect(lexer.Ident, "", "an identifier after 'var'")
		node := ast.NewVar(nameTok.Text, nil, mergeSpan(tok.Loc, nameTok.Loc))
		p.scope.SetSym(nameTok.Text, node)
		return node
	case lexer.KwThrow:
		p.stream.Take()
		value := p.parseExpr()
		return ast.NewThrowRaw(value, mergeSpan(tok.Loc, value.Loc))
	default:
		return p.parseInfix()
	}
}

// parseInfix assembles a run of postfix/selector elements into a single
// expression. An additional element fills the running expression's args
// slot if that's a selector with no args yet (the realised infix-operator
// call); otherwise, if the new element is itself an args-less selector, the
// running expression becomes its receiver; two elements that combine
// neither way are joined through a synthesised "apply" selector (the
// sugar behind juxtaposition calls like "f x").
func (p *Parser) parseInfix() *ast.Node {
	expr, ok := p.tryParseInfixElement()
	if !ok {
		tok := p.stream.Current()
		p.reportExpected("an expression", tok.Loc)
		p.stream.Take()
		return ast.NewTuple(nil, tok.Loc)
	}
	for {
		next, ok := p.tryParseInfixElement()
		if !ok {
			break
		}
		expr = combineInfix(expr, next)
	}
	return expr
}

func combineInfix(expr, next *ast.Node) *ast.Node {
	if expr.Kind == ast.KSelect && len(expr.Args) == 0 {
		expr.Args = append(expr.Args, next)
		expr.Loc = mergeSpan(expr.Loc, next.Loc)
		return expr
	}
	if next.Kind == ast.KSelect && len(next.Args) == 0 {
		next.Target = expr
		next.Loc = mergeSpan(expr.Loc, next.Loc)
		return next
	}
	return ast.NewSelect(intern.Apply, nil, expr, []*ast.Node{next}, mergeSpan(expr.Loc, next.Loc))
}

// tryParseInfixElement parses one element of an infix run: a postfix
// expression (applysugar or atom, each followed by any number of '.'
// selections) when the element starts with a local binding or an atom,
// or a bare (possibly "::"-chained) selector otherwise. Returns false,
// consuming nothing, if the current token starts neither.
func (p *Parser) tryParseInfixElement() (*ast.Node, bool) {
	tok := p.stream.Current()
	switch {
	case tok.Kind == lexer.Ident && p.isLocalIdent(tok.Text):
		return p.parseSelectChain(p.parseApplySugar()), true
	case tok.Kind == lexer.Ident || isSymbolNameKind(tok.Kind):
		_, outer := p.parseSelectorChain()
		return outer, true
	case isAtomStartKind(tok.Kind):
		return p.parseSelectChain(p.parseAtom()), true
	default:
		return nil, false
	}
}

func (p *Parser) isLocalIdent(name string) bool {
	decl, ok := p.scope.GetScope(name)
	if !ok {
		return false
	}
	return decl.Kind == ast.KParam || decl.Kind == ast.KLet || decl.Kind == ast.KVar
}

func isAtomStartKind(k lexer.Kind) bool {
	switch k {
	case lexer.LParen, lexer.LBrace, lexer.KwNew, lexer.KwWhen, lexer.KwTry, lexer.KwMatch,
		lexer.Int, lexer.Float, lexer.Hex, lexer.Binary, lexer.Bool,
		lexer.Character, lexer.EscapedString, lexer.UnescapedString:
		return true
	default:
		return false
	}
}

// parsePostfix parses a postfixstart (applysugar or atom, never a bare
// selector) followed by any number of '.' selections. Used where the
// grammar requires a postfix specifically rather than either
// alternative of infix's "postfix | selector" - the targets of when and
// match.
func (p *Parser) parsePostfix() *ast.Node {
	tok := p.stream.Current()
	if tok.Kind == lexer.Ident && p.isLocalIdent(tok.Text) {
		return p.parseSelectChain(p.parseApplySugar())
	}
	return p.parseSelectChain(p.parseAtom())
}

// parseApplySugar parses a local reference, desugaring a following '['
// or '(' into an explicit ".apply[...](...)" selection.
func (p *Parser) parseApplySugar() *ast.Node {
	tok := p.stream.Take()
	decl, _ := p.scope.GetScope(tok.Text)
	ref := ast.NewRef(decl, tok.Text, tok.Loc)

	cur := p.stream.Current()
	if cur.Kind != lexer.LBracket && cur.Kind != lexer.LParen {
		return ref
	}
	typeArgs, argsLoc := p.parseTypeArgsOpt()
	loc := ref.Loc
	if argsLoc.End > loc.End {
		loc = mergeSpan(loc, argsLoc)
	}
	applyNode := ast.NewSelect(intern.Apply, typeArgs, ref, nil, loc)
	if p.stream.Current().Is(lexer.LParen, "") {
		args, tupLoc := p.parseParenList()
		applyNode.Args = append(applyNode.Args, args...)
		applyNode.Loc = mergeSpan(applyNode.Loc, tupLoc)
	}
	return applyNode
}

// parseSelectChain consumes a run of '.' selections off receiver.
func (p *Parser) parseSelectChain(receiver *ast.Node) *ast.Node {
	for p.stream.Current().Is(lexer.Dot, "") {
		receiver = p.parseSelect(receiver)
	}
	return receiver
}

// parseSelect parses one '.' selection: a (possibly "::"-chained)
// selector name whose innermost segment's receiver slot is filled by
// receiver, optionally followed by a call argument list.
func (p *Parser) parseSelect(receiver *ast.Node) *ast.Node {
	p.stream.Take() // '.'
	inner, outer := p.parseSelectorChain()
	inner.Target = receiver
	if p.stream.Current().Is(lexer.LParen, "") {
		args, tupLoc := p.parseParenList()
		outer.Args = append(outer.Args, args...)
		outer.Loc = mergeSpan(outer.Loc, tupLoc)
	}
	outer.Loc = mergeSpan(receiver.Loc, outer.Loc)
	return outer
}

// parseSelectorChain parses name ('::' name)*, returning both the
// innermost Select (whose receiver slot a caller may still fill) and the
// outermost one (what the caller actually threads onward). Each '::' link
// becomes the next segment's receiver, never a call argument.
func (p *Parser) parseSelectorChain() (inner, outer *ast.Node) {
	name, typeArgs, loc := p.parseSelectorName()
	inner = ast.NewSelect(name, typeArgs, nil, nil, loc)
	outer = inner
	for p.stream.Has(lexer.DoubleColon, "") {
		name2, typeArgs2, loc2 := p.parseSelectorName()
		outer = ast.NewSelect(name2, typeArgs2, outer, nil, mergeSpan(outer.Loc, loc2))
	}
	return inner, outer
}

func (p *Parser) parseSelectorName() (string, []*ast.Node, lexer.Location) {
	tok := p.stream.Current()
	if !isFunctionNameKind(tok.Kind) {
		p.reportExpected("a selector name", tok.Loc)
		return "", nil, tok.Loc
	}
	p.stream.Take()
	typeArgs, argsLoc := p.parseTypeArgsOpt()
	loc := tok.Loc
	if argsLoc.End > loc.End {
		loc = mergeSpan(loc, argsLoc)
	}
	return tok.Text, typeArgs, loc
}

func (p *Parser) parseAtom() *ast.Node {
	tok := p.stream.Current()
	switch tok.Kind {
	case lexer.LParen:
		return p.parseTupleAtom()
	case lexer.LBrace:
		return p.parseLambda()
	case lexer.KwNew:
		return p.parseNew()
	case lexer.KwWhen:
		return p.parseWhen()
	case lexer.KwTry:
		return p.parseTry()
	case lexer.KwMatch:
		return p.parseMatch()
	default:
		return p.parseConstant()
	}
}

func (p *Parser) parseConstant() *ast.Node {
	tok := p.stream.Take()
	switch tok.Kind {
	case lexer.Bool:
		return ast.NewBoolLiteral(tok.Text == "true", tok.Text, tok.Loc)
	case lexer.Int, lexer.Float, lexer.Hex, lexer.Binary, lexer.Character,
		lexer.EscapedString, lexer.UnescapedString:
		return ast.NewLiteral(literalKind(tok.Kind), tok.Text, tok.Loc)
	default:
		p.reportExpected("a constant", tok.Loc)
		return ast.NewLiteral(ast.KInt, "", tok.Loc)
	}
}

func literalKind(k lexer.Kind) ast.Kind {
	switch k {
	case lexer.Int:
		return ast.KInt
	case lexer.Float:
		return ast.KFloat
	case lexer.Hex:
		return ast.KHex
	case lexer.Binary:
		return ast.KBinary
	case lexer.Character:
		return ast.KCharacter
	case lexer.EscapedString:
		return ast.KEscapedString
	default:
		return ast.KUnescapedString
	}
}

// parseParenList parses a raw, comma-separated element list between '('
// and ')', without collapsing a single element - shared between call
// argument lists (where a single argument must stay a single argument)
// and parseTupleAtom (which collapses on top of this).
func (p *Parser) parseParenList() ([]*ast.Node, lexer.Location) {
	open := p.stream.Take() // '('
	var elems []*ast.Node
	if !p.stream.Current().Is(lexer.RParen, "") {
		for {
			elems = append(elems, p.parseExpr())
			if !p.stream.Has(lexer.Comma, "") {
				break
			}
		}
	}
	closeTok, _ := p.expect(lexer.RParen, "", "')' to close a parenthesised list")
	return elems, mergeSpan(open.Loc, closeTok.Loc)
}

// parseTupleAtom parses a parenthesised atom: '()' is the empty tuple,
// '(x)' collapses to x widened to the parens' span, and '(x, y, ...)' is
// a genuine tuple.
func (p *Parser) parseTupleAtom() *ast.Node {
	elems, loc := p.parseParenList()
	if len(elems) == 1 {
		return widenLoc(elems[0], loc)
	}
	return ast.NewTuple(elems, loc)
}

// parseNew parses 'new' followed by a tuple, a bare type body (an
// anonymous object literal), or a type expression and its body, with an
// optional trailing '@' actor-name annotation.
func (p *Parser) parseNew() *ast.Node {
	start := p.stream.Take() // 'new'
	var typ, body *ast.Node
	switch {
	case p.stream.Current().Is(lexer.LParen, ""):
		body = p.parseTupleAtom()
	case p.stream.Current().Is(lexer.LBrace, ""):
		body = p.parseObjectLiteral()
	default:
		typ = p.parseTypeExpr()
		body = p.parseObjectLiteral()
	}

	loc := start.Loc
	if body != nil {
		loc = mergeSpan(loc, body.Loc)
	}
	at := ""
	if p.stream.Has(lexer.At, "") {
		nameTok, _ := p.expect(lexer.Ident, "", "an identifier after '@'")
		at = nameTok.Text
		loc = mergeSpan(loc, nameTok.Loc)
	}
	return ast.NewNew(typ, body, at, loc)
}

// parseObjectLiteral parses a type body used as an object literal. It is
// not scope-bearing (ast.KObjectLiteral carries no Table), so its members
// register into whatever scope is already current rather than one of
// their own.
func (p *Parser) parseObjectLiteral() *ast.Node {
	members, loc := p.parseTypeBody()
	return ast.NewObjectLiteral(members, loc)
}

func (p *Parser) parseWhen() *ast.Node {
	start := p.stream.Take() // 'when'
	target := p.parsePostfix()
	lambda := p.parseLambda()
	return ast.NewWhen(target, lambda, mergeSpan(start.Loc, lambda.Loc))
}

func (p *Parser) parseTry() *ast.Node {
	start := p.stream.Take() // 'try'
	body := p.parseLambda()
	p.expect(lexer.KwCatch, "", "'catch' after a try body")
	p.expect(lexer.LBrace, "", "'{' to open a catch block")
	var catches []*ast.Node
	for !p.stream.Current().Is(lexer.RBrace, "") && !p.atEnd() {
		catches = append(catches, p.parseLambda())
	}
	closeTok, _ := p.expect(lexer.RBrace, "", "'}' to close a catch block")
	return ast.NewTry(body, catches, mergeSpan(start.Loc, closeTok.Loc))
}

func (p *Parser) parseMatch() *ast.Node {
	start := p.stream.Take() // 'match'
	target := p.parsePostfix()
	p.expect(lexer.LBrace, "", "'{' to open a match block")
	var cases []*ast.Node
	for !p.stream.Current().Is(lexer.RBrace, "") && !p.atEnd() {
		cases = append(cases, p.parseLambda())
	}
	closeTok, _ := p.expect(lexer.RBrace, "", "'}' to close a match block")
	return ast.NewMatch(target, cases, mergeSpan(start.Loc, closeTok.Loc))
}

// parseLambda parses the ambiguous lambda form: '{' followed either by
// a params list and '=>' then a body, or directly by the body. The two
// shapes are disambiguated with a balanced-group-aware lookahead for
// '=>' before the closing '}', since a params list may itself contain
// bracketed type arguments or defaults with nested braces.
func (p *Parser) parseLambda() *ast.Node {
	open, _ := p.expect(lexer.LBrace, "", "'{' to open a lambda")
	lambdaNode := ast.NewLambda(nil, nil, nil, open.Loc)
	guard := p.scope.Push(lambdaNode)
	defer guard.Close()

	hasArrow := p.stream.PeekDelimited(lexer.FatArrow, "", lexer.RBrace)
	p.stream.Rewind()

	var typeParams, params []*ast.Node
	if hasArrow {
		typeParams = p.parseTypeParamListOpt()
		params = p.parseLambdaParamList()
		p.expect(lexer.FatArrow, "", "'=>' after a lambda parameter list")
	}
	for _, tp := range typeParams {
		p.scope.SetSym(tp.Name, tp)
	}
	for _, pa := range params {
		if pa.Kind == ast.KParam {
			p.scope.SetSym(pa.Name, pa)
		}
	}

	stmts := p.parseStatements()
	closeTok, _ := p.expect(lexer.RBrace, "", "'}' to close a lambda")

	lambdaNode.TypeParams = typeParams
	lambdaNode.Params = params
	lambdaNode.Stmts = stmts
	lambdaNode.Loc = mergeSpan(open.Loc, closeTok.Loc)
	return lambdaNode
}

// parseFunctionBody parses a function declaration's body: a lambda whose
// type parameters and parameters were already consumed as part of the
// function's own grammar, so here they're only registered for name
// resolution inside the body, never reparsed or re-stored on the lambda
// itself.
func (p *Parser) parseFunctionBody(typeParams, params []*ast.Node) *ast.Node {
	open, _ := p.expect(lexer.LBrace, "", "'{' to open a function body")
	lambdaNode := ast.NewLambda(nil, nil, nil, open.Loc)
	guard := p.scope.Push(lambdaNode)
	defer guard.Close()

	for _, tp := range typeParams {
		p.scope.SetSym(tp.Name, tp)
	}
	for _, pa := range params {
		p.scope.SetSym(pa.Name, pa)
	}

	stmts := p.parseStatements()
	closeTok, _ := p.expect(lexer.RBrace, "", "'}' to close a function body")
	lambdaNode.Stmts = stmts
	lambdaNode.Loc = mergeSpan(open.Loc, closeTok.Loc)
	return lambdaNode
}

// parseStatements parses (expr ';'*)* up to a closing '}'. parseExpr
// always consumes at least one token even on error, so this loop always
// makes progress.
func (p *Parser) parseStatements() []*ast.Node {
	var stmts []*ast.Node
	for !p.stream.Current().Is(lexer.RBrace, "") && !p.atEnd() {
		stmts = append(stmts, p.parseExpr())
		for p.stream.Has(lexer.Semi, "") {
		}
	}
	return stmts
}
