package ast

import (
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

// IntExpr is an integer or character literal.
type IntExpr struct {
	node
	Val uint64
	Mod lexer.Mod
}

// FloatExpr is a floating-point literal.
type FloatExpr struct {
	node
	Val float64
}

// StrExpr is a string literal holding the decoded, interned bytes.
type StrExpr struct {
	node
	Val intern.Name
}

// NameExpr references a name.
type NameExpr struct {
	node
	Name intern.Name
}

// CastExpr converts Expr to Type.
type CastExpr struct {
	node
	Type Typespec
	Expr Expr
}

// CallExpr calls Expr with Args.
type CallExpr struct {
	node
	Expr Expr
	Args []Expr
}

// IndexExpr is Expr[Index].
type IndexExpr struct {
	node
	Expr  Expr
	Index Expr
}

// FieldExpr is Expr.Name.
type FieldExpr struct {
	node
	Expr Expr
	Name intern.Name
}

// CompoundExpr is a compound literal. Type is nil when it is inferred.
type CompoundExpr struct {
	node
	Type Typespec
	Args []Expr
}

// UnaryExpr applies a prefix operator.
type UnaryExpr struct {
	node
	Op   lexer.TokenType
	Expr Expr
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	node
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

// TernaryExpr is Cond ? Then : Else.
type TernaryExpr struct {
	node
	Cond Expr
	Then Expr
	Else Expr
}

// SizeofExpr is sizeof applied to an expression.
type SizeofExpr struct {
	node
	Expr Expr
}

// SizeofTypeExpr is sizeof applied to a type.
type SizeofTypeExpr struct {
	node
	Type Typespec
}

func (*IntExpr) exprNode()        {}
func (*FloatExpr) exprNode()      {}
func (*StrExpr) exprNode()        {}
func (*NameExpr) exprNode()       {}
func (*CastExpr) exprNode()       {}
func (*CallExpr) exprNode()       {}
func (*IndexExpr) exprNode()      {}
func (*FieldExpr) exprNode()      {}
func (*CompoundExpr) exprNode()   {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*TernaryExpr) exprNode()    {}
func (*SizeofExpr) exprNode()     {}
func (*SizeofTypeExpr) exprNode() {}
