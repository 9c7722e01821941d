package ast

import "fmt"

// Walk traverses the AST starting from node, calling fn for each node in
// pre-order. Nil children are skipped. If fn returns false, Walk stops
// traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	// Typespecs
	case *NameTypespec:
	case *FuncTypespec:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
		Walk(n.Ret, fn)
	case *ArrayTypespec:
		Walk(n.Elem, fn)
		Walk(n.Size, fn)
	case *PtrTypespec:
		Walk(n.Elem, fn)

	// Declarations
	case *EnumDecl:
		for _, item := range n.Items {
			Walk(item.Expr, fn)
		}
	case *AggregateDecl:
		for _, item := range n.Items {
			Walk(item.Type, fn)
		}
	case *VarDecl:
		Walk(n.Type, fn)
		Walk(n.Expr, fn)
	case *ConstDecl:
		Walk(n.Expr, fn)
	case *TypedefDecl:
		Walk(n.Type, fn)
	case *FuncDecl:
		for _, p := range n.Params {
			Walk(p.Type, fn)
		}
		Walk(n.RetType, fn)
		walkBlock(n.Block, fn)

	// Expressions
	case *IntExpr, *FloatExpr, *StrExpr, *NameExpr:
	case *CastExpr:
		Walk(n.Type, fn)
		Walk(n.Expr, fn)
	case *CallExpr:
		Walk(n.Expr, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *IndexExpr:
		Walk(n.Expr, fn)
		Walk(n.Index, fn)
	case *FieldExpr:
		Walk(n.Expr, fn)
	case *CompoundExpr:
		Walk(n.Type, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *UnaryExpr:
		Walk(n.Expr, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *TernaryExpr:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *SizeofExpr:
		Walk(n.Expr, fn)
	case *SizeofTypeExpr:
		Walk(n.Type, fn)

	// Statements
	case *ReturnStmt:
		Walk(n.Expr, fn)
	case *BreakStmt, *ContinueStmt:
	case *BlockStmt:
		walkBlock(n.Block, fn)
	case *IfStmt:
		Walk(n.Cond, fn)
		walkBlock(n.Then, fn)
		for _, ei := range n.ElseIfs {
			Walk(ei.Cond, fn)
			walkBlock(ei.Block, fn)
		}
		walkBlock(n.Else, fn)
	case *WhileStmt:
		Walk(n.Cond, fn)
		walkBlock(n.Block, fn)
	case *DoWhileStmt:
		walkBlock(n.Block, fn)
		Walk(n.Cond, fn)
	case *ForStmt:
		Walk(n.Init, fn)
		Walk(n.Cond, fn)
		Walk(n.Next, fn)
		walkBlock(n.Block, fn)
	case *SwitchStmt:
		Walk(n.Expr, fn)
		for _, c := range n.Cases {
			for _, e := range c.Exprs {
				Walk(e, fn)
			}
			walkBlock(c.Block, fn)
		}
	case *AssignStmt:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *InitStmt:
		Walk(n.Expr, fn)
	case *ExprStmt:
		Walk(n.Expr, fn)

	default:
		panic(fmt.Sprintf("ast: Walk: unexpected node type %T", node))
	}
}

func walkBlock(b StmtBlock, fn func(Node) bool) {
	for _, s := range b.Stmts {
		Walk(s, fn)
	}
}
