package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/dnf"
	"github.com/rill-lang/rill/internal/intern"
)

// maybeSynthesizeCreate implements trivial create synthesis: when a class
// defines no "create" member and every field it declared has an
// initialiser, a zero-argument "create(): Self & iso = { new Name[...] }"
// is appended, forwarding the class's own type parameters as the type
// arguments to the synthesized "new". Called while the class's scope is
// still current, so the synthetic function registers alongside its
// parsed siblings.
func (p *Parser) maybeSynthesizeCreate(classNode *ast.Node, members []*ast.Node) []*ast.Node {
	hasCreate := false
	allFieldsInit := true
	for _, m := range members {
		if m.Name == intern.Create {
			hasCreate = true
		}
		if m.Kind == ast.KField && m.Init == nil {
			allFieldsInit = false
		}
	}
	if hasCreate || !allFieldsInit {
		return members
	}

	loc := classNode.Loc
	retType := dnf.Conjunction(ast.NewSelf(loc), ast.NewIso(loc), loc)

	var typeArgs []*ast.Node
	for _, tp := range classNode.TypeParams {
		switch tp.Kind {
		case ast.KTypeParamList:
			typeArgs = append(typeArgs, ast.NewTypeList(tp.Name, loc))
		default:
			typeArgs = append(typeArgs, ast.NewTypeRef([]*ast.Node{ast.NewTypeName(tp.Name, nil, loc)}, nil, loc))
		}
	}
	classRef := ast.NewTypeRef([]*ast.Node{ast.NewTypeName(classNode.Name, typeArgs, loc)}, nil, loc)
	newExpr := ast.NewNew(classRef, nil, "", loc)

	body := ast.NewLambda(nil, nil, []*ast.Node{newExpr}, loc)
	guard := p.scope.Push(body)
	guard.Close()

	create := ast.NewFunction(intern.Create, nil, nil, retType, body, loc)
	p.scope.SetSym(intern.Create, create)
	return append(members, create)
}
