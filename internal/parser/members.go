package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/intern"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseMember dispatches on the current token to one of class, interface,
// typealias, using, field, or function. Returns Skip (no tokens consumed)
// when none of those alternatives starts here, so the caller can report
// "expected a ..." and resynchronise. A member whose own parse reported a
// diagnostic - a malformed inherits clause, a missing name, an unclosed
// body - comes back as Failure rather than Success, even though (per
// panic-mode recovery) it may still carry a best-effort node.
func (p *Parser) parseMember() (*ast.Node, Outcome) {
	tok := p.stream.Current()
	before := len(p.reporter.Diagnostics())

	var node *ast.Node
	var outcome Outcome
	switch tok.Kind {
	case lexer.KwClass:
		node, outcome = p.parseClass()
	case lexer.KwInterface:
		node, outcome = p.parseInterface()
	case lexer.KwType:
		node, outcome = p.parseTypeAlias()
	case lexer.KwUsing:
		node, outcome = p.parseUsing()
	default:
		if tok.Kind == lexer.LBracket || tok.Kind == lexer.LParen || isFunctionNameKind(tok.Kind) {
			node, outcome = p.parseFieldOrFunction(), Success
		} else {
			return nil, Skip
		}
	}

	if outcome == Success && len(p.reporter.Diagnostics()) > before {
		outcome = Failure
	}
	return node, outcome
}

// parseMemberList parses member* up to (but not including) a closing '}',
// resynchronising on any token that starts no member alternative.
func (p *Parser) parseMemberList() []*ast.Node {
	var members []*ast.Node
	for !p.stream.Current().Is(lexer.RBrace, "") && !p.atEnd() {
		m, outcome := p.parseMember()
		if outcome == Skip {
			tok := p.stream.Current()
			p.reportExpected("a class, interface, type, using, field, or function declaration", tok.Loc)
			// A stray recovery token (';', 'module') would stop restartBefore
			// in place, so step past the offending token first.
			if !isOpenDelim(tok.Kind) {
				p.stream.Take()
			}
			p.restartBefore(append(append([]lexer.Kind{}, memberRecoveryKinds...), lexer.RBrace)...)
			continue
		}
		if m == nil {
			continue
		}
		members = append(members, m)
		if m.Name != "" {
			p.scope.SetSym(m.Name, m)
		}
	}
	return members
}

// parseTypeBody parses '{' member* '}'. The caller is responsible for
// having pushed whatever scope the members should register into; an
// object literal's body (which is not itself scope-bearing) calls this
// against its enclosing scope instead of pushing its own.
func (p *Parser) parseTypeBody() ([]*ast.Node, lexer.Location) {
	open, _ := p.expect(lexer.LBrace, "", "'{' to open a body")
	members := p.parseMemberList()
	closeTok, _ := p.expect(lexer.RBrace, "", "'}' to close a body")
	return members, mergeSpan(open.Loc, closeTok.Loc)
}

func (p *Parser) parseClass() (*ast.Node, Outcome) {
	start := p.stream.Take() // 'class'
	nameTok, _ := p.expect(lexer.Ident, "", "a class name")
	typeParams := p.parseTypeParamListOpt()
	var inherits *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		inherits = p.parseInheritsClause()
	}
	classNode := ast.NewClass(ast.NewIdent(nameTok.Text, nameTok.Loc), typeParams, inherits, start.Loc)

	guard := p.scope.Push(classNode)
	for _, tp := range typeParams {
		p.scope.SetSym(tp.Name, tp)
	}
	members, bodyLoc := p.parseTypeBody()
	members = p.maybeSynthesizeCreate(classNode, members)
	guard.Close()

	classNode.Members = members
	classNode.Loc = mergeSpan(start.Loc, bodyLoc)
	return classNode, Success
}

func (p *Parser) parseInterface() (*ast.Node, Outcome) {
	start := p.stream.Take() // 'interface'
	nameTok, _ := p.expect(lexer.Ident, "", "an interface name")
	typeParams := p.parseTypeParamListOpt()
	var inherits *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		inherits = p.parseInheritsClause()
	}
	ifaceNode := ast.NewInterface(ast.NewIdent(nameTok.Text, nameTok.Loc), typeParams, inherits, start.Loc)

	guard := p.scope.Push(ifaceNode)
	for _, tp := range typeParams {
		p.scope.SetSym(tp.Name, tp)
	}
	members, bodyLoc := p.parseTypeBody()
	guard.Close()

	ifaceNode.Members = members
	ifaceNode.Loc = mergeSpan(start.Loc, bodyLoc)
	return ifaceNode, Success
}

func (p *Parser) parseTypeAlias() (*ast.Node, Outcome) {
	start := p.stream.Take() // 'type'
	nameTok, _ := p.expect(lexer.Ident, "", "a type alias name")
	typeParams := p.parseTypeParamListOpt()
	for _, tp := range typeParams {
		p.scope.SetSym(tp.Name, tp)
	}
	p.expect(lexer.Assign, "", "'=' in a type alias")
	typ := p.parseTypeExpr()
	semiTok, _ := p.expect(lexer.Semi, "", "';' after a type alias")
	return ast.NewTypeAlias(nameTok.Text, typeParams, typ, mergeSpan(start.Loc, semiTok.Loc)), Success
}

func (p *Parser) parseUsing() (*ast.Node, Outcome) {
	start := p.stream.Take() // 'using'
	ref := p.parseTypeRef()
	semiTok, _ := p.expect(lexer.Semi, "", "';' after a using directive")
	return ast.NewUsing(ref, mergeSpan(start.Loc, semiTok.Loc)), Success
}

// parseFieldOrFunction disambiguates a field from a function: a function
// either omits its name outright (starting directly with '[' or '(') or
// follows its name immediately with one of those, since a field name is
// always followed by ':', '=', or ';'.
func (p *Parser) parseFieldOrFunction() *ast.Node {
	tok := p.stream.Current()
	if tok.Kind == lexer.LBracket || tok.Kind == lexer.LParen {
		return p.parseFunction(nil)
	}
	nameTok := p.stream.Take()
	next := p.stream.Current()
	if next.Kind == lexer.LBracket || next.Kind == lexer.LParen {
		return p.parseFunction(&nameTok)
	}
	return p.parseField(nameTok)
}

func (p *Parser) parseField(nameTok lexer.Token) *ast.Node {
	var typ, init *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		typ = p.parseTypeExpr()
	}
	if p.stream.Has(lexer.Assign, "") {
		init = p.wrapInitLambda(p.parseExpr())
	}
	semiTok, _ := p.expect(lexer.Semi, "", "';' after a field declaration")
	return ast.NewField(nameTok.Text, typ, init, mergeSpan(nameTok.Loc, semiTok.Loc))
}

// parseFunction parses the shared function tail (type params, a typed
// parameter list, an optional return type, and a body or a bare ';')
// once the caller has decided this is a function, not a field. A nil
// nameTok means the name was omitted and defaults to "apply".
func (p *Parser) parseFunction(nameTok *lexer.Token) *ast.Node {
	var start lexer.Location
	name := intern.Apply
	if nameTok != nil {
		start = nameTok.Loc
		name = nameTok.Text
	} else {
		start = p.stream.Current().Loc
	}

	typeParams := p.parseTypeParamListOpt()
	params, _ := p.parseFunctionParamList()
	var retType *ast.Node
	if p.stream.Has(lexer.Colon, "") {
		retType = p.parseTypeExpr()
	}

	var lambda *ast.Node
	var end lexer.Location
	if p.stream.Current().Is(lexer.LBrace, "") {
		lambda = p.parseFunctionBody(typeParams, params)
		end = lambda.Loc
	} else {
		semiTok, _ := p.expect(lexer.Semi, "", "';' or a function body")
		end = semiTok.Loc
	}
	return ast.NewFunction(name, typeParams, params, retType, lambda, mergeSpan(start, end))
}

// parseInheritsClause parses the type expression following an inherits
// ':', checking the well-formedness rule: it must be a plain type
// reference or an intersection of type references.
func (p *Parser) parseInheritsClause() *ast.Node {
	t := p.parseTypeExpr()
	if !isValidInherits(t) {
		p.reportShape("an inherits clause must be a type or an intersection of types", t.Loc)
	}
	return t
}

func isValidInherits(t *ast.Node) bool {
	switch t.Kind {
	case ast.KTypeRef:
		return true
	case ast.KIsectType:
		for _, o := range t.Operands {
			if o.Kind != ast.KTypeRef {
				return false
			}
		}
		return true
	default:
		return false
	}
}
