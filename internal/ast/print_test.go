package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

func TestPrint(t *testing.T) {
	f := newFixture()
	b := f.b
	x, y := f.ref("x"), f.ref("y")
	p := pos(1)

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"int", f.int(42), "42"},
		{"hex", b.NewIntExpr(p, 255, lexer.ModHex), "0xff"},
		{"bin", b.NewIntExpr(p, 5, lexer.ModBin), "0b101"},
		{"oct", b.NewIntExpr(p, 8, lexer.ModOct), "010"},
		{"char", b.NewIntExpr(p, 'a', lexer.ModChar), "'a'"},
		{"float", b.NewFloatExpr(p, 1.5), "1.5"},
		{"string", b.NewStrExpr(p, f.name("hi\n")), `"hi\n"`},
		{"unary", b.NewUnaryExpr(p, lexer.SUB, x), "(- x)"},
		{"ternary", b.NewTernaryExpr(p, x, f.int(1), f.int(2)), "(? x 1 2)"},
		{"call", b.NewCallExpr(p, f.ref("f"), []Expr{x, y}), "(call f x y)"},
		{"index", b.NewIndexExpr(p, x, f.int(0)), "(index x 0)"},
		{"field", b.NewFieldExpr(p, x, f.name("len")), "(field x len)"},
		{"cast", b.NewCastExpr(p, b.NewPtrTypespec(p, f.typ("char")), x), "(cast (ptr char) x)"},
		{"compound", b.NewCompoundExpr(p, nil, []Expr{f.int(1)}), "(compound nil 1)"},
		{"sizeof", b.NewSizeofExpr(p, x), "(sizeof-expr x)"},
		{"sizeof type", b.NewSizeofTypeExpr(p, f.typ("int")), "(sizeof-type int)"},
		{"array", b.NewArrayTypespec(p, f.typ("int"), f.int(4)), "(array int 4)"},
		{"func type", b.NewFuncTypespec(p, []Typespec{f.typ("int"), f.typ("char")}, nil), "(func (int char) nil)"},
		{"assign", b.NewAssignStmt(p, lexer.ADD_ASSIGN, x, y), "(+= x y)"},
		{"inc", b.NewAssignStmt(p, lexer.INC, x, nil), "(++ x)"},
		{"init", b.NewInitStmt(p, f.name("z"), f.int(0)), "(:= z 0)"},
		{"return", b.NewReturnStmt(p, nil), "(return)"},
		{"expr stmt", b.NewExprStmt(p, b.NewCallExpr(p, f.ref("g"), nil)), "(call g)"},
		{"nil", nil, "nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(tt.node))
		})
	}
}

func TestPrintDecls(t *testing.T) {
	f := newFixture()
	b := f.b
	p := pos(1)

	enum := b.NewEnumDecl(p, f.name("Color"), []EnumItem{
		{Name: f.name("RED"), Expr: f.int(1)},
		{Name: f.name("GREEN")},
	})
	assert.Equal(t, "(enum Color (RED 1) (GREEN))", Print(enum))

	st := b.NewStructDecl(p, f.name("Vec"), []AggregateItem{
		{Names: []intern.Name{f.name("x"), f.name("y")}, Type: f.typ("float")},
	})
	assert.Equal(t, "(struct Vec (x y float))", Print(st))

	assert.Equal(t, "(typedef T (ptr int))", Print(b.NewTypedefDecl(p, f.name("T"), b.NewPtrTypespec(p, f.typ("int")))))
	assert.Equal(t, "(const N 8)", Print(b.NewConstDecl(p, f.name("N"), f.int(8))))
	assert.Equal(t, "(var v nil 3)", Print(b.NewVarDecl(p, f.name("v"), nil, f.int(3))))

	fn := b.NewFuncDecl(p, f.name("inc"),
		[]FuncParam{{Name: f.name("n"), Type: f.typ("int")}},
		f.typ("int"),
		StmtBlock{Stmts: []Stmt{
			b.NewReturnStmt(p, b.NewBinaryExpr(p, lexer.ADD, f.ref("n"), f.int(1))),
		}},
	)
	assert.Equal(t, "(func inc ((n int)) int (block (return (+ n 1))))", Print(fn))
}

func TestPrintControlFlow(t *testing.T) {
	f := newFixture()
	b := f.b
	p := pos(1)
	brk := StmtBlock{Stmts: []Stmt{b.NewBreakStmt(p)}}

	ifs := b.NewIfStmt(p, f.ref("a"), brk, []ElseIf{{Cond: f.ref("b"), Block: StmtBlock{}}}, StmtBlock{})
	assert.Equal(t, "(if a (block (break)) (elseif b (block)))", Print(ifs))

	withElse := b.NewIfStmt(p, f.ref("a"), StmtBlock{}, nil, StmtBlock{Stmts: []Stmt{b.NewContinueStmt(p)}})
	assert.Equal(t, "(if a (block) (else (block (continue))))", Print(withElse))

	loop := b.NewForStmt(p,
		b.NewInitStmt(p, f.name("i"), f.int(0)),
		b.NewBinaryExpr(p, lexer.LT, f.ref("i"), f.int(10)),
		b.NewAssignStmt(p, lexer.INC, f.ref("i"), nil),
		StmtBlock{},
	)
	assert.Equal(t, "(for (:= i 0) (< i 10) (++ i) (block))", Print(loop))

	assert.Equal(t, "(while x (block (break)))", Print(b.NewWhileStmt(p, f.ref("x"), brk)))
	assert.Equal(t, "(do-while x (block (break)))", Print(b.NewDoWhileStmt(p, f.ref("x"), brk)))
	assert.Equal(t, "(block (break))", Print(b.NewBlockStmt(p, brk)))

	sw := b.NewSwitchStmt(p, f.ref("k"), []SwitchCase{
		{Exprs: []Expr{f.int(1), f.int(2)}, Block: brk},
		{IsDefault: true},
	})
	assert.Equal(t, "(switch k (case (1 2) (block (break))) (default () (block)))", Print(sw))
}
