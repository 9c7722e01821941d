package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revision-lang/revision/internal/arena"
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

type fixture struct {
	arena *arena.Arena
	tab   *intern.Table
	b     *Builder
}

func newFixture() *fixture {
	a := arena.New()
	return &fixture{arena: a, tab: intern.NewTable(a), b: NewBuilder(a)}
}

func (f *fixture) name(s string) intern.Name { return f.tab.Intern(s) }

func pos(line int) lexer.Pos { return lexer.Pos{Filename: "t.rv", Line: line, Column: 1} }

func (f *fixture) int(v uint64) Expr { return f.b.NewIntExpr(pos(1), v, lexer.ModNone) }

func (f *fixture) ref(s string) Expr { return f.b.NewNameExpr(pos(1), f.name(s)) }

func (f *fixture) typ(s string) Typespec { return f.b.NewNameTypespec(pos(1), f.name(s)) }

func TestBuilderPopulatesVariant(t *testing.T) {
	f := newFixture()

	e := f.b.NewBinaryExpr(pos(3), lexer.ADD, f.int(1), f.b.NewBinaryExpr(pos(3), lexer.MUL, f.int(2), f.int(3)))
	assert.Equal(t, lexer.ADD, e.Op)
	assert.Equal(t, pos(3), e.Pos())
	right, ok := e.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.MUL, right.Op)
	assert.Equal(t, "(+ 1 (* 2 3))", Print(e))

	d := f.b.NewVarDecl(pos(4), f.name("x"), f.typ("int32"), f.int(7))
	var decl Decl = d
	assert.True(t, decl.DeclName() == f.name("x"))
	assert.Equal(t, pos(4), decl.Pos())
}

func TestBuilderAllocatesFromArena(t *testing.T) {
	f := newFixture()
	char := f.name("char")
	before := f.arena.Stats().Objects
	f.b.NewIntExpr(pos(1), 1, lexer.ModNone)
	f.b.NewBreakStmt(pos(1))
	f.b.NewPtrTypespec(pos(1), f.b.NewNameTypespec(pos(1), char))
	assert.Equal(t, before+4, f.arena.Stats().Objects)
}

func TestStmtBlockKeepsOrder(t *testing.T) {
	f := newFixture()
	var blk StmtBlock
	for i := 0; i < 50; i++ {
		blk.Append(f.b.NewExprStmt(pos(i+1), f.int(uint64(i))))
	}
	require.Equal(t, 50, blk.Len())
	for i, s := range blk.Stmts {
		es := s.(*ExprStmt)
		assert.Equal(t, uint64(i), es.Expr.(*IntExpr).Val)
		assert.Equal(t, i+1, es.Pos().Line)
	}
	assert.Panics(t, func() { blk.Append(nil) })
}

func TestAggregateKindIsChecked(t *testing.T) {
	f := newFixture()
	items := []AggregateItem{{Names: []intern.Name{f.name("x"), f.name("y")}, Type: f.typ("int32")}}

	s := f.b.NewStructDecl(pos(1), f.name("Vec"), items)
	assert.Equal(t, AggregateStruct, s.Kind)
	u := f.b.NewUnionDecl(pos(1), f.name("Bits"), items)
	assert.Equal(t, AggregateUnion, u.Kind)

	assert.Panics(t, func() { f.b.NewAggregateDecl(pos(1), AggregateKind(0), f.name("Bad"), items) })
	assert.Panics(t, func() { f.b.NewAggregateDecl(pos(1), AggregateKind(9), f.name("Bad"), items) })
	assert.Panics(t, func() {
		f.b.NewStructDecl(pos(1), f.name("Empty"), []AggregateItem{{Type: f.typ("int")}})
	})
}

func TestOperatorShapeIsChecked(t *testing.T) {
	f := newFixture()
	x := f.ref("x")

	for _, op := range []lexer.TokenType{lexer.ADD, lexer.SUB, lexer.NEG, lexer.NOT, lexer.MUL, lexer.AND, lexer.INC, lexer.DEC} {
		assert.NotPanics(t, func() { f.b.NewUnaryExpr(pos(1), op, x) }, "unary %s", op)
	}
	for _, op := range []lexer.TokenType{lexer.DIV, lexer.ASSIGN, lexer.LPAREN, lexer.EQ} {
		assert.Panics(t, func() { f.b.NewUnaryExpr(pos(1), op, x) }, "unary %s", op)
	}

	for tt := lexer.EOF; tt <= lexer.ILLEGAL; tt++ {
		op := tt
		binary := op.IsMulOp() || op.IsAddOp() || op.IsCmpOp() || op == lexer.AND_AND || op == lexer.OR_OR
		if binary {
			assert.NotPanics(t, func() { f.b.NewBinaryExpr(pos(1), op, x, x) }, "binary %s", op)
		} else {
			assert.Panics(t, func() { f.b.NewBinaryExpr(pos(1), op, x, x) }, "binary %s", op)
		}
	}
}

func TestAssignShapeIsChecked(t *testing.T) {
	f := newFixture()
	x, one := f.ref("x"), f.int(1)

	assert.NotPanics(t, func() { f.b.NewAssignStmt(pos(1), lexer.ASSIGN, x, one) })
	assert.NotPanics(t, func() { f.b.NewAssignStmt(pos(1), lexer.LSHIFT_ASSIGN, x, one) })
	assert.NotPanics(t, func() { f.b.NewAssignStmt(pos(1), lexer.INC, x, nil) })
	assert.NotPanics(t, func() { f.b.NewAssignStmt(pos(1), lexer.DEC, x, nil) })

	assert.Panics(t, func() { f.b.NewAssignStmt(pos(1), lexer.ADD, x, one) })
	assert.Panics(t, func() { f.b.NewAssignStmt(pos(1), lexer.ASSIGN, x, nil) })
	assert.Panics(t, func() { f.b.NewAssignStmt(pos(1), lexer.INC, x, one) })
	assert.Panics(t, func() { f.b.NewAssignStmt(pos(1), lexer.ASSIGN, nil, one) })
}

func TestRequiredChildrenAreChecked(t *testing.T) {
	f := newFixture()
	x := f.ref("x")
	var zero intern.Name

	cases := map[string]func(){
		"ptr elem":         func() { f.b.NewPtrTypespec(pos(1), nil) },
		"array elem":       func() { f.b.NewArrayTypespec(pos(1), nil, x) },
		"name typespec":    func() { f.b.NewNameTypespec(pos(1), zero) },
		"cast operand":     func() { f.b.NewCastExpr(pos(1), f.typ("int"), nil) },
		"call callee":      func() { f.b.NewCallExpr(pos(1), nil, nil) },
		"call arg":         func() { f.b.NewCallExpr(pos(1), x, []Expr{nil}) },
		"index":            func() { f.b.NewIndexExpr(pos(1), x, nil) },
		"field name":       func() { f.b.NewFieldExpr(pos(1), x, zero) },
		"ternary":          func() { f.b.NewTernaryExpr(pos(1), x, nil, x) },
		"sizeof":           func() { f.b.NewSizeofExpr(pos(1), nil) },
		"sizeof type":      func() { f.b.NewSizeofTypeExpr(pos(1), nil) },
		"if cond":          func() { f.b.NewIfStmt(pos(1), nil, StmtBlock{}, nil, StmtBlock{}) },
		"elseif cond":      func() { f.b.NewIfStmt(pos(1), x, StmtBlock{}, []ElseIf{{}}, StmtBlock{}) },
		"while cond":       func() { f.b.NewWhileStmt(pos(1), nil, StmtBlock{}) },
		"do-while cond":    func() { f.b.NewDoWhileStmt(pos(1), nil, StmtBlock{}) },
		"switch expr":      func() { f.b.NewSwitchStmt(pos(1), nil, nil) },
		"init value":       func() { f.b.NewInitStmt(pos(1), f.name("y"), nil) },
		"expr stmt":        func() { f.b.NewExprStmt(pos(1), nil) },
		"var type or init": func() { f.b.NewVarDecl(pos(1), f.name("v"), nil, nil) },
		"const value":      func() { f.b.NewConstDecl(pos(1), f.name("c"), nil) },
		"typedef type":     func() { f.b.NewTypedefDecl(pos(1), f.name("t"), nil) },
		"decl name":        func() { f.b.NewEnumDecl(pos(1), zero, nil) },
		"param type":       func() { f.b.NewFuncDecl(pos(1), f.name("fn"), []FuncParam{{Name: f.name("p")}}, nil, StmtBlock{}) },
	}
	for name, fn := range cases {
		assert.Panics(t, fn, name)
	}

	// Optional children may be nil.
	assert.NotPanics(t, func() { f.b.NewReturnStmt(pos(1), nil) })
	assert.NotPanics(t, func() { f.b.NewForStmt(pos(1), nil, nil, nil, StmtBlock{}) })
	assert.NotPanics(t, func() { f.b.NewArrayTypespec(pos(1), f.typ("int"), nil) })
	assert.NotPanics(t, func() { f.b.NewCompoundExpr(pos(1), nil, []Expr{x}) })
	assert.NotPanics(t, func() { f.b.NewFuncTypespec(pos(1), nil, nil) })
}

func TestSwitchAllowsOneDefault(t *testing.T) {
	f := newFixture()
	x := f.ref("x")

	ok := []SwitchCase{
		{Exprs: []Expr{f.int(1), f.int(2)}},
		{IsDefault: true},
	}
	s := f.b.NewSwitchStmt(pos(1), x, ok)
	assert.Len(t, s.Cases, 2)

	twoDefaults := []SwitchCase{{IsDefault: true}, {IsDefault: true}}
	assert.Panics(t, func() { f.b.NewSwitchStmt(pos(1), x, twoDefaults) })

	noValues := []SwitchCase{{}}
	assert.Panics(t, func() { f.b.NewSwitchStmt(pos(1), x, noValues) })
}

func TestBuilderCopiesSlices(t *testing.T) {
	f := newFixture()
	b := f.b
	p := pos(1)

	scratch := []Expr{f.int(1), f.int(2)}
	call := b.NewCallExpr(p, f.ref("f"), scratch)
	compound := b.NewCompoundExpr(p, nil, scratch)
	scratch = append(scratch[:0], f.int(9), f.int(9))
	require.Len(t, scratch, 2)
	assert.Equal(t, "(call f 1 2)", Print(call))
	assert.Equal(t, "(compound nil 1 2)", Print(compound))

	stmts := []Stmt{b.NewBreakStmt(p)}
	blk := StmtBlock{Stmts: stmts}
	loop := b.NewWhileStmt(p, f.ref("x"), blk)
	fn := b.NewFuncDecl(p, f.name("g"), nil, nil, blk)
	stmts[0] = b.NewContinueStmt(p)
	assert.Equal(t, "(while x (block (break)))", Print(loop))
	assert.Equal(t, "(func g () nil (block (break)))", Print(fn))

	names := []intern.Name{f.name("x"), f.name("y")}
	items := []AggregateItem{{Names: names, Type: f.typ("int")}}
	st := b.NewStructDecl(p, f.name("P"), items)
	names[1] = f.name("z")
	items[0].Type = f.typ("char")
	assert.Equal(t, "(struct P (x y int))", Print(st))

	values := []Expr{f.int(1)}
	cases := []SwitchCase{{Exprs: values, Block: blk}}
	sw := b.NewSwitchStmt(p, f.ref("k"), cases)
	values[0] = f.int(5)
	assert.Equal(t, "(switch k (case (1) (block (continue))))", Print(sw))

	args := []Typespec{f.typ("int")}
	ft := b.NewFuncTypespec(p, args, nil)
	args[0] = f.typ("char")
	assert.Equal(t, "(func (int) nil)", Print(ft))

	// Appending to a node's block leaves the caller's slice alone.
	loop.Block.Append(b.NewBreakStmt(p))
	assert.Len(t, stmts, 1)
	assert.Equal(t, 2, loop.Block.Len())
}
