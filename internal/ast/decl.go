package ast

import "github.com/revision-lang/revision/internal/intern"

// declBase holds what every declaration has.
type declBase struct {
	node
	Name intern.Name
}

// DeclName returns the declared name.
func (d *declBase) DeclName() intern.Name { return d.Name }

// EnumDecl declares an enumeration.
type EnumDecl struct {
	declBase
	Items []EnumItem
}

// AggregateDecl declares a struct or a union.
type AggregateDecl struct {
	declBase
	Kind  AggregateKind
	Items []AggregateItem
}

// VarDecl declares a variable. At least one of Type and Expr is set.
type VarDecl struct {
	declBase
	Type Typespec
	Expr Expr
}

// ConstDecl declares a constant.
type ConstDecl struct {
	declBase
	Expr Expr
}

// TypedefDecl declares a type alias.
type TypedefDecl struct {
	declBase
	Type Typespec
}

// FuncDecl declares a function. RetType is nil for functions returning nothing.
type FuncDecl struct {
	declBase
	Params  []FuncParam
	RetType Typespec
	Block   StmtBlock
}

func (*EnumDecl) declNode()      {}
func (*AggregateDecl) declNode() {}
func (*VarDecl) declNode()       {}
func (*ConstDecl) declNode()     {}
func (*TypedefDecl) declNode()   {}
func (*FuncDecl) declNode()      {}
