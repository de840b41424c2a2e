package ast

import "github.com/rill-lang/rill/internal/lexer"

// This file is the AST builder: one small factory per node kind, so every
// node is born with a non-empty Location and the right shape for its Kind.
// Downstream code should prefer these over constructing Node{} literals.

func NewIdent(name string, loc lexer.Location) *Node {
	return &Node{Kind: KIdent, Name: name, Loc: loc}
}

func NewProgram(loc lexer.Location) *Node {
	n := &Node{Kind: KProgram, Loc: loc}
	n.Table = NewTable(nil)
	return n
}

func NewClass(name *Node, typeParams []*Node, inherits *Node, loc lexer.Location) *Node {
	n := &Node{Kind: KClass, Loc: loc, TypeParams: typeParams, Inherits: inherits}
	if name != nil {
		n.Name = name.Name
	}
	n.Table = NewTable(nil)
	return n
}

func NewInterface(name *Node, typeParams []*Node, inherits *Node, loc lexer.Location) *Node {
	n := &Node{Kind: KInterface, Loc: loc, TypeParams: typeParams, Inherits: inherits}
	if name != nil {
		n.Name = name.Name
	}
	n.Table = NewTable(nil)
	return n
}

func NewModule(loc lexer.Location) *Node {
	n := &Node{Kind: KModule, Loc: loc}
	n.Table = NewTable(nil)
	return n
}

func NewTypeAlias(name string, typeParams []*Node, typ *Node, loc lexer.Location) *Node {
	return &Node{Kind: KTypeAlias, Name: name, TypeParams: typeParams, Type: typ, Loc: loc}
}

func NewUsing(ref *Node, loc lexer.Location) *Node {
	return &Node{Kind: KUsing, Type: ref, Loc: loc}
}

func NewField(name string, typ *Node, init *Node, loc lexer.Location) *Node {
	return &Node{Kind: KField, Name: name, Type: typ, Init: init, Loc: loc}
}

func NewFunction(name string, typeParams, params []*Node, retType *Node, lambda *Node, loc lexer.Location) *Node {
	return &Node{Kind: KFunction, Name: name, TypeParams: typeParams, Params: params, Type: retType, Lambda: lambda, Loc: loc}
}

func NewParam(name string, typ *Node, def *Node, loc lexer.Location) *Node {
	return &Node{Kind: KParam, Name: name, Type: typ, Default: def, Loc: loc}
}

func NewLet(name string, typ *Node, loc lexer.Location) *Node {
	return &Node{Kind: KLet, Name: name, Type: typ, Loc: loc}
}

func NewVar(name string, typ *Node, loc lexer.Location) *Node {
	return &Node{Kind: KVar, Name: name, Type: typ, Loc: loc}
}

func NewTypeParam(name string, bound *Node, def *Node, loc lexer.Location) *Node {
	return &Node{Kind: KTypeParam, Name: name, Bound: bound, Default: def, Loc: loc}
}

func NewTypeParamList(name string, bound *Node, loc lexer.Location) *Node {
	return &Node{Kind: KTypeParamList, Name: name, Bound: bound, Loc: loc}
}

func NewTypeRef(segments []*Node, typeArgs []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KTypeRef, Elements: segments, TypeArgs: typeArgs, Loc: loc}
}

func NewTypeName(name string, typeArgs []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KTypeName, Name: name, TypeArgs: typeArgs, Loc: loc}
}

func NewModuleName(name string, typeArgs []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KModuleName, Name: name, TypeArgs: typeArgs, Loc: loc}
}

func NewTupleType(elems []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KTupleType, Elements: elems, Loc: loc}
}

// NewIsectTypeRaw/NewUnionTypeRaw build a non-normalised container; the DNF
// normaliser (package dnf) is the only code allowed to produce the
// normalised KIsectType/KUnionType nodes actually installed into the tree.
func NewIsectTypeRaw(operands []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KIsectType, Operands: operands, Loc: loc}
}

func NewUnionTypeRaw(operands []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KUnionType, Operands: operands, Loc: loc}
}

func NewViewType(left, right *Node, loc lexer.Location) *Node {
	return &Node{Kind: KViewType, Name: "~>", Left: left, Right: right, Loc: loc}
}

func NewExtractType(left, right *Node, loc lexer.Location) *Node {
	return &Node{Kind: KExtractType, Left: left, Right: right, Loc: loc}
}

func NewFunctionType(params []*Node, ret *Node, loc lexer.Location) *Node {
	return &Node{Kind: KFunctionType, Params: params, Type: ret, Loc: loc}
}

func NewThrowTypeRaw(target *Node, loc lexer.Location) *Node {
	return &Node{Kind: KThrowType, Target: target, Loc: loc}
}

func NewIso(loc lexer.Location) *Node  { return &Node{Kind: KIso, Loc: loc} }
func NewMut(loc lexer.Location) *Node  { return &Node{Kind: KMut, Loc: loc} }
func NewImm(loc lexer.Location) *Node  { return &Node{Kind: KImm, Loc: loc} }
func NewSelf(loc lexer.Location) *Node { return &Node{Kind: KSelfType, Loc: loc} }

func NewTypeList(name string, loc lexer.Location) *Node {
	return &Node{Kind: KTypeList, Name: name, Loc: loc}
}

func NewInferType(loc lexer.Location) *Node {
	return &Node{Kind: KInferType, Loc: loc}
}

func NewTuple(elems []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KTuple, Elements: elems, Loc: loc}
}

// NewSelect builds a selector: name/typeArgs identify the method, receiver
// is its left-hand-side (nil until infix assembly or a '.' select fills
// it), and args are its call arguments - a distinct slot from receiver, so
// "selector with no args" (infix assembly rule 2) is testable independently
// of whether the receiver has been filled in yet.
func NewSelect(name string, typeArgs []*Node, receiver *Node, args []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KSelect, Name: name, TypeArgs: typeArgs, Target: receiver, Args: args, Loc: loc}
}

func NewRef(decl *Node, name string, loc lexer.Location) *Node {
	return &Node{Kind: KRef, Name: name, Target: decl, Loc: loc}
}

func NewLambda(typeParams, params []*Node, stmts []*Node, loc lexer.Location) *Node {
	n := &Node{Kind: KLambda, TypeParams: typeParams, Params: params, Stmts: stmts, Loc: loc}
	n.Table = NewTable(nil)
	return n
}

func NewWhen(target *Node, lambda *Node, loc lexer.Location) *Node {
	return &Node{Kind: KWhen, Target: target, Lambda: lambda, Loc: loc}
}

func NewTry(body *Node, catches []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KTry, Body: body, Catches: catches, Loc: loc}
}

func NewMatch(target *Node, cases []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KMatch, Target: target, Cases: cases, Loc: loc}
}

func NewNew(typ *Node, body *Node, at string, loc lexer.Location) *Node {
	return &Node{Kind: KNew, Type: typ, Body: body, Name: at, Loc: loc}
}

func NewObjectLiteral(members []*Node, loc lexer.Location) *Node {
	return &Node{Kind: KObjectLiteral, Members: members, Loc: loc}
}

func NewThrowRaw(value *Node, loc lexer.Location) *Node {
	return &Node{Kind: KThrow, Value: value, Loc: loc}
}

func NewAssign(target, value *Node, loc lexer.Location) *Node {
	return &Node{Kind: KAssign, Target: target, Value: value, Loc: loc}
}

func NewOftype(target, typ *Node, loc lexer.Location) *Node {
	return &Node{Kind: KOftype, Target: target, Type: typ, Loc: loc}
}

func NewLiteral(kind Kind, text string, loc lexer.Location) *Node {
	return &Node{Kind: kind, Text: text, Loc: loc}
}

func NewBoolLiteral(value bool, text string, loc lexer.Location) *Node {
	return &Node{Kind: KBool, Text: text, Bool: value, Loc: loc}
}
