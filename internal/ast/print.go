package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revision-lang/revision/internal/lexer"
)

// Print renders node as a single-line S-expression, e.g. (+ 1 (* 2 3)).
// Absent optional children print as nil.
func Print(node Node) string {
	var p printer
	p.node(node)
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) open(head string) {
	p.WriteByte('(')
	p.WriteString(head)
}

func (p *printer) close() {
	p.WriteByte(')')
}

func (p *printer) sp() {
	p.WriteByte(' ')
}

func (p *printer) block(b StmtBlock) {
	p.open("block")
	for _, s := range b.Stmts {
		p.sp()
		p.node(s)
	}
	p.close()
}

func (p *printer) list(nodes []Expr) {
	p.WriteByte('(')
	for i, n := range nodes {
		if i > 0 {
			p.sp()
		}
		p.node(n)
	}
	p.close()
}

func (p *printer) node(node Node) {
	if node == nil {
		p.WriteString("nil")
		return
	}

	switch n := node.(type) {
	// Typespecs
	case *NameTypespec:
		p.WriteString(n.Name.String())
	case *FuncTypespec:
		p.open("func (")
		for i, arg := range n.Args {
			if i > 0 {
				p.sp()
			}
			p.node(arg)
		}
		p.WriteString(") ")
		p.node(n.Ret)
		p.close()
	case *ArrayTypespec:
		p.open("array ")
		p.node(n.Elem)
		p.sp()
		p.node(n.Size)
		p.close()
	case *PtrTypespec:
		p.open("ptr ")
		p.node(n.Elem)
		p.close()

	// Declarations
	case *EnumDecl:
		p.open("enum " + n.Name.String())
		for _, item := range n.Items {
			p.sp()
			p.open(item.Name.String())
			if item.Expr != nil {
				p.sp()
				p.node(item.Expr)
			}
			p.close()
		}
		p.close()
	case *AggregateDecl:
		p.open(n.Kind.String() + " " + n.Name.String())
		for _, item := range n.Items {
			p.WriteString(" (")
			for _, name := range item.Names {
				p.WriteString(name.String())
				p.sp()
			}
			p.node(item.Type)
			p.close()
		}
		p.close()
	case *VarDecl:
		p.open("var " + n.Name.String() + " ")
		p.node(n.Type)
		p.sp()
		p.node(n.Expr)
		p.close()
	case *ConstDecl:
		p.open("const " + n.Name.String() + " ")
		p.node(n.Expr)
		p.close()
	case *TypedefDecl:
		p.open("typedef " + n.Name.String() + " ")
		p.node(n.Type)
		p.close()
	case *FuncDecl:
		p.open("func " + n.Name.String() + " (")
		for i, param := range n.Params {
			if i > 0 {
				p.sp()
			}
			p.WriteString("(" + param.Name.String() + " ")
			p.node(param.Type)
			p.close()
		}
		p.WriteString(") ")
		p.node(n.RetType)
		p.sp()
		p.block(n.Block)
		p.close()

	// Expressions
	case *IntExpr:
		p.WriteString(formatInt(n.Val, n.Mod))
	case *FloatExpr:
		p.WriteString(strconv.FormatFloat(n.Val, 'g', -1, 64))
	case *StrExpr:
		p.WriteString(strconv.Quote(n.Val.String()))
	case *NameExpr:
		p.WriteString(n.Name.String())
	case *CastExpr:
		p.open("cast ")
		p.node(n.Type)
		p.sp()
		p.node(n.Expr)
		p.close()
	case *CallExpr:
		p.open("call ")
		p.node(n.Expr)
		for _, arg := range n.Args {
			p.sp()
			p.node(arg)
		}
		p.close()
	case *IndexExpr:
		p.open("index ")
		p.node(n.Expr)
		p.sp()
		p.node(n.Index)
		p.close()
	case *FieldExpr:
		p.open("field ")
		p.node(n.Expr)
		p.WriteString(" " + n.Name.String())
		p.close()
	case *CompoundExpr:
		p.open("compound ")
		p.node(n.Type)
		for _, arg := range n.Args {
			p.sp()
			p.node(arg)
		}
		p.close()
	case *UnaryExpr:
		p.open(n.Op.String() + " ")
		p.node(n.Expr)
		p.close()
	case *BinaryExpr:
		p.open(n.Op.String() + " ")
		p.node(n.Left)
		p.sp()
		p.node(n.Right)
		p.close()
	case *TernaryExpr:
		p.open("? ")
		p.node(n.Cond)
		p.sp()
		p.node(n.Then)
		p.sp()
		p.node(n.Else)
		p.close()
	case *SizeofExpr:
		p.open("sizeof-expr ")
		p.node(n.Expr)
		p.close()
	case *SizeofTypeExpr:
		p.open("sizeof-type ")
		p.node(n.Type)
		p.close()

	// Statements
	case *ReturnStmt:
		p.open("return")
		if n.Expr != nil {
			p.sp()
			p.node(n.Expr)
		}
		p.close()
	case *BreakStmt:
		p.WriteString("(break)")
	case *ContinueStmt:
		p.WriteString("(continue)")
	case *BlockStmt:
		p.block(n.Block)
	case *IfStmt:
		p.open("if ")
		p.node(n.Cond)
		p.sp()
		p.block(n.Then)
		for _, ei := range n.ElseIfs {
			p.WriteString(" (elseif ")
			p.node(ei.Cond)
			p.sp()
			p.block(ei.Block)
			p.close()
		}
		if n.Else.Len() > 0 {
			p.WriteString(" (else ")
			p.block(n.Else)
			p.close()
		}
		p.close()
	case *WhileStmt:
		p.open("while ")
		p.node(n.Cond)
		p.sp()
		p.block(n.Block)
		p.close()
	case *DoWhileStmt:
		p.open("do-while ")
		p.node(n.Cond)
		p.sp()
		p.block(n.Block)
		p.close()
	case *ForStmt:
		p.open("for ")
		p.node(n.Init)
		p.sp()
		p.node(n.Cond)
		p.sp()
		p.node(n.Next)
		p.sp()
		p.block(n.Block)
		p.close()
	case *SwitchStmt:
		p.open("switch ")
		p.node(n.Expr)
		for _, c := range n.Cases {
			if c.IsDefault {
				p.WriteString(" (default ")
			} else {
				p.WriteString(" (case ")
			}
			p.list(c.Exprs)
			p.sp()
			p.block(c.Block)
			p.close()
		}
		p.close()
	case *AssignStmt:
		p.open(n.Op.String() + " ")
		p.node(n.Left)
		if n.Right != nil {
			p.sp()
			p.node(n.Right)
		}
		p.close()
	case *InitStmt:
		p.open(":= " + n.Name.String() + " ")
		p.node(n.Expr)
		p.close()
	case *ExprStmt:
		p.node(n.Expr)

	default:
		panic(fmt.Sprintf("ast: Print: unexpected node type %T", node))
	}
}

func formatInt(v uint64, mod lexer.Mod) string {
	switch mod {
	case lexer.ModHex:
		return "0x" + strconv.FormatUint(v, 16)
	case lexer.ModBin:
		return "0b" + strconv.FormatUint(v, 2)
	case lexer.ModOct:
		return "0" + strconv.FormatUint(v, 8)
	case lexer.ModChar:
		return strconv.QuoteRune(rune(v))
	}
	return strconv.FormatUint(v, 10)
}
