// Package ast defines the syntax tree built by the parser. Nodes are
// allocated from a compilation unit's arena through a Builder and live until
// the arena is released.
package ast

import (
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

// Node represents any AST node with an associated source position.
type Node interface {
	Pos() lexer.Pos
}

// Typespec represents a type annotation.
type Typespec interface {
	Node
	typespecNode()
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
	// DeclName returns the declared name.
	DeclName() intern.Name
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// node carries the position shared by every concrete node type.
type node struct {
	pos lexer.Pos
}

// Pos returns the position of the first token of the node.
func (n *node) Pos() lexer.Pos { return n.pos }

// SetPos updates the node position.
func (n *node) SetPos(pos lexer.Pos) { n.pos = pos }

// StmtBlock is an ordered list of statements. Order is execution order.
type StmtBlock struct {
	Stmts []Stmt
}

// Append adds s to the end of the block.
func (b *StmtBlock) Append(s Stmt) {
	if s == nil {
		panic("ast: nil statement appended to block")
	}
	b.Stmts = append(b.Stmts, s)
}

// Len returns the number of statements in the block.
func (b *StmtBlock) Len() int { return len(b.Stmts) }

// FuncParam is one parameter of a function declaration.
type FuncParam struct {
	Name intern.Name
	Type Typespec
}

// EnumItem is one enumerator. Expr is nil when no value is given.
type EnumItem struct {
	Name intern.Name
	Expr Expr
}

// AggregateItem declares one or more fields sharing a type.
type AggregateItem struct {
	Names []intern.Name
	Type  Typespec
}

// ElseIf is an "else if" arm of an if statement.
type ElseIf struct {
	Cond  Expr
	Block StmtBlock
}

// SwitchCase is one arm of a switch. A default arm may also list values.
type SwitchCase struct {
	Exprs     []Expr
	IsDefault bool
	Block     StmtBlock
}

// AggregateKind selects between struct and union declarations.
type AggregateKind int

const (
	AggregateStruct AggregateKind = iota + 1
	AggregateUnion
)

func (k AggregateKind) String() string {
	switch k {
	case AggregateStruct:
		return "struct"
	case AggregateUnion:
		return "union"
	}
	return "aggregate(?)"
}
