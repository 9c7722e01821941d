package ast

import (
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

// ReturnStmt returns from a function. Expr is nil for a bare return.
type ReturnStmt struct {
	node
	Expr Expr
}

// BreakStmt leaves the innermost loop or switch.
type BreakStmt struct {
	node
}

// ContinueStmt starts the next iteration of the innermost loop.
type ContinueStmt struct {
	node
}

// BlockStmt is a nested block.
type BlockStmt struct {
	node
	Block StmtBlock
}

// IfStmt is an if statement with optional else-if arms and else block.
type IfStmt struct {
	node
	Cond    Expr
	Then    StmtBlock
	ElseIfs []ElseIf
	Else    StmtBlock
}

// WhileStmt tests Cond before each iteration.
type WhileStmt struct {
	node
	Cond  Expr
	Block StmtBlock
}

// DoWhileStmt tests Cond after each iteration.
type DoWhileStmt struct {
	node
	Cond  Expr
	Block StmtBlock
}

// ForStmt is a C-style for loop. Init, Cond and Next may each be nil.
type ForStmt struct {
	node
	Init  Stmt
	Cond  Expr
	Next  Stmt
	Block StmtBlock
}

// SwitchStmt selects one of Cases by the value of Expr.
type SwitchStmt struct {
	node
	Expr  Expr
	Cases []SwitchCase
}

// AssignStmt is an assignment. For INC and DEC, Right is nil.
type AssignStmt struct {
	node
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

// InitStmt declares Name and initializes it from Expr (name := expr).
type InitStmt struct {
	node
	Name intern.Name
	Expr Expr
}

// ExprStmt evaluates Expr for its side effects.
type ExprStmt struct {
	node
	Expr Expr
}

func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*SwitchStmt) stmtNode()   {}
func (*AssignStmt) stmtNode()   {}
func (*InitStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
