package ast

import (
	"fmt"

	"github.com/revision-lang/revision/internal/arena"
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/lexer"
)

// Builder constructs nodes in an arena. It checks the shape of what it is
// given (operator classes, required children) and panics on a mismatch,
// since that is a bug in the caller. It does no semantic checking.
type Builder struct {
	arena *arena.Arena
}

// NewBuilder returns a builder allocating from a.
func NewBuilder(a *arena.Arena) *Builder {
	if a == nil {
		panic("ast: nil arena")
	}
	return &Builder{arena: a}
}

func check(ok bool, format string, args ...any) {
	if !ok {
		panic("ast: " + fmt.Sprintf(format, args...))
	}
}

func checkName(n intern.Name, what string) {
	check(!n.IsZero(), "%s requires a name", what)
}

// Slices handed to a factory are copied into the arena, so callers may reuse
// their buffers once the node is built.

func (b *Builder) block(blk StmtBlock) StmtBlock {
	return StmtBlock{Stmts: arena.Clone(b.arena, blk.Stmts)}
}

func (b *Builder) aggregateItems(items []AggregateItem) []AggregateItem {
	out := arena.Clone(b.arena, items)
	for i := range out {
		out[i].Names = arena.Clone(b.arena, out[i].Names)
	}
	return out
}

func (b *Builder) elseIfs(arms []ElseIf) []ElseIf {
	out := arena.Clone(b.arena, arms)
	for i := range out {
		out[i].Block = b.block(out[i].Block)
	}
	return out
}

func (b *Builder) switchCases(cases []SwitchCase) []SwitchCase {
	out := arena.Clone(b.arena, cases)
	for i := range out {
		out[i].Exprs = arena.Clone(b.arena, out[i].Exprs)
		out[i].Block = b.block(out[i].Block)
	}
	return out
}

// Typespecs

// NewNameTypespec constructs a named type reference.
func (b *Builder) NewNameTypespec(pos lexer.Pos, name intern.Name) *NameTypespec {
	checkName(name, "name typespec")
	t := arena.Make[NameTypespec](b.arena)
	t.pos = pos
	t.Name = name
	return t
}

// NewFuncTypespec constructs a function type from its argument and result types.
func (b *Builder) NewFuncTypespec(pos lexer.Pos, args []Typespec, ret Typespec) *FuncTypespec {
	for i, arg := range args {
		check(arg != nil, "func typespec argument %d is nil", i)
	}
	t := arena.Make[FuncTypespec](b.arena)
	t.pos = pos
	t.Args = arena.Clone(b.arena, args)
	t.Ret = ret
	return t
}

// NewArrayTypespec constructs an array type. size may be nil for an unsized array.
func (b *Builder) NewArrayTypespec(pos lexer.Pos, elem Typespec, size Expr) *ArrayTypespec {
	check(elem != nil, "array typespec requires an element type")
	t := arena.Make[ArrayTypespec](b.arena)
	t.pos = pos
	t.Elem = elem
	t.Size = size
	return t
}

// NewPtrTypespec constructs a pointer type.
func (b *Builder) NewPtrTypespec(pos lexer.Pos, elem Typespec) *PtrTypespec {
	check(elem != nil, "pointer typespec requires an element type")
	t := arena.Make[PtrTypespec](b.arena)
	t.pos = pos
	t.Elem = elem
	return t
}

// Declarations

// NewEnumDecl constructs an enum declaration.
func (b *Builder) NewEnumDecl(pos lexer.Pos, name intern.Name, items []EnumItem) *EnumDecl {
	checkName(name, "enum declaration")
	for i, item := range items {
		checkName(item.Name, fmt.Sprintf("enum item %d", i))
	}
	d := arena.Make[EnumDecl](b.arena)
	d.pos = pos
	d.Name = name
	d.Items = arena.Clone(b.arena, items)
	return d
}

// NewAggregateDecl constructs a struct or union declaration.
func (b *Builder) NewAggregateDecl(pos lexer.Pos, kind AggregateKind, name intern.Name, items []AggregateItem) *AggregateDecl {
	check(kind == AggregateStruct || kind == AggregateUnion, "aggregate declaration must be a struct or a union, got %d", int(kind))
	checkName(name, kind.String()+" declaration")
	for i, item := range items {
		check(len(item.Names) > 0, "%s item %d declares no fields", kind, i)
		check(item.Type != nil, "%s item %d has no type", kind, i)
	}
	d := arena.Make[AggregateDecl](b.arena)
	d.pos = pos
	d.Kind = kind
	d.Name = name
	d.Items = b.aggregateItems(items)
	return d
}

// NewStructDecl is NewAggregateDecl for a struct.
func (b *Builder) NewStructDecl(pos lexer.Pos, name intern.Name, items []AggregateItem) *AggregateDecl {
	return b.NewAggregateDecl(pos, AggregateStruct, name, items)
}

// NewUnionDecl is NewAggregateDecl for a union.
func (b *Builder) NewUnionDecl(pos lexer.Pos, name intern.Name, items []AggregateItem) *AggregateDecl {
	return b.NewAggregateDecl(pos, AggregateUnion, name, items)
}

// NewVarDecl constructs a variable declaration. Either typ or expr may be nil, not both.
func (b *Builder) NewVarDecl(pos lexer.Pos, name intern.Name, typ Typespec, expr Expr) *VarDecl {
	checkName(name, "var declaration")
	check(typ != nil || expr != nil, "var declaration %q needs a type or an initializer", name)
	d := arena.Make[VarDecl](b.arena)
	d.pos = pos
	d.Name = name
	d.Type = typ
	d.Expr = expr
	return d
}

// NewConstDecl constructs a constant declaration.
func (b *Builder) NewConstDecl(pos lexer.Pos, name intern.Name, expr Expr) *ConstDecl {
	checkName(name, "const declaration")
	check(expr != nil, "const declaration %q needs a value", name)
	d := arena.Make[ConstDecl](b.arena)
	d.pos = pos
	d.Name = name
	d.Expr = expr
	return d
}

// NewTypedefDecl constructs a type alias declaration.
func (b *Builder) NewTypedefDecl(pos lexer.Pos, name intern.Name, typ Typespec) *TypedefDecl {
	checkName(name, "typedef declaration")
	check(typ != nil, "typedef %q needs a type", name)
	d := arena.Make[TypedefDecl](b.arena)
	d.pos = pos
	d.Name = name
	d.Type = typ
	return d
}

// NewFuncDecl constructs a function declaration. ret may be nil.
func (b *Builder) NewFuncDecl(pos lexer.Pos, name intern.Name, params []FuncParam, ret Typespec, block StmtBlock) *FuncDecl {
	checkName(name, "func declaration")
	for i, p := range params {
		checkName(p.Name, fmt.Sprintf("parameter %d of %q", i, name))
		check(p.Type != nil, "parameter %q of %q has no type", p.Name, name)
	}
	d := arena.Make[FuncDecl](b.arena)
	d.pos = pos
	d.Name = name
	d.Params = arena.Clone(b.arena, params)
	d.RetType = ret
	d.Block = b.block(block)
	return d
}

// Expressions

// NewIntExpr constructs an integer literal.
func (b *Builder) NewIntExpr(pos lexer.Pos, val uint64, mod lexer.Mod) *IntExpr {
	e := arena.Make[IntExpr](b.arena)
	e.pos = pos
	e.Val = val
	e.Mod = mod
	return e
}

// NewFloatExpr constructs a floating-point literal.
func (b *Builder) NewFloatExpr(pos lexer.Pos, val float64) *FloatExpr {
	e := arena.Make[FloatExpr](b.arena)
	e.pos = pos
	e.Val = val
	return e
}

// NewStrExpr constructs a string literal.
func (b *Builder) NewStrExpr(pos lexer.Pos, val intern.Name) *StrExpr {
	check(!val.IsZero(), "string literal requires an interned value")
	e := arena.Make[StrExpr](b.arena)
	e.pos = pos
	e.Val = val
	return e
}

// NewNameExpr constructs a reference to a name.
func (b *Builder) NewNameExpr(pos lexer.Pos, name intern.Name) *NameExpr {
	checkName(name, "name expression")
	e := arena.Make[NameExpr](b.arena)
	e.pos = pos
	e.Name = name
	return e
}

// NewCastExpr constructs a type conversion.
func (b *Builder) NewCastExpr(pos lexer.Pos, typ Typespec, expr Expr) *CastExpr {
	check(typ != nil && expr != nil, "cast requires a type and an operand")
	e := arena.Make[CastExpr](b.arena)
	e.pos = pos
	e.Type = typ
	e.Expr = expr
	return e
}

// NewCallExpr constructs a function call.
func (b *Builder) NewCallExpr(pos lexer.Pos, fn Expr, args []Expr) *CallExpr {
	check(fn != nil, "call requires a callee")
	for i, arg := range args {
		check(arg != nil, "call argument %d is nil", i)
	}
	e := arena.Make[CallExpr](b.arena)
	e.pos = pos
	e.Expr = fn
	e.Args = arena.Clone(b.arena, args)
	return e
}

// NewIndexExpr constructs an index expression.
func (b *Builder) NewIndexExpr(pos lexer.Pos, expr, index Expr) *IndexExpr {
	check(expr != nil && index != nil, "index requires an operand and an index")
	e := arena.Make[IndexExpr](b.arena)
	e.pos = pos
	e.Expr = expr
	e.Index = index
	return e
}

// NewFieldExpr constructs a field access.
func (b *Builder) NewFieldExpr(pos lexer.Pos, expr Expr, name intern.Name) *FieldExpr {
	check(expr != nil, "field access requires an operand")
	checkName(name, "field access")
	e := arena.Make[FieldExpr](b.arena)
	e.pos = pos
	e.Expr = expr
	e.Name = name
	return e
}

// NewCompoundExpr constructs a compound literal. typ may be nil.
func (b *Builder) NewCompoundExpr(pos lexer.Pos, typ Typespec, args []Expr) *CompoundExpr {
	for i, arg := range args {
		check(arg != nil, "compound literal element %d is nil", i)
	}
	e := arena.Make[CompoundExpr](b.arena)
	e.pos = pos
	e.Type = typ
	e.Args = arena.Clone(b.arena, args)
	return e
}

// IsUnaryOp reports whether op may be used as a prefix operator.
func IsUnaryOp(op lexer.TokenType) bool {
	switch op {
	case lexer.ADD, lexer.SUB, lexer.NEG, lexer.NOT, lexer.MUL, lexer.AND, lexer.INC, lexer.DEC:
		return true
	}
	return false
}

// IsBinaryOp reports whether op may be used as an infix operator.
func IsBinaryOp(op lexer.TokenType) bool {
	return op.IsMulOp() || op.IsAddOp() || op.IsCmpOp() || op == lexer.AND_AND || op == lexer.OR_OR
}

// NewUnaryExpr constructs a prefix operation.
func (b *Builder) NewUnaryExpr(pos lexer.Pos, op lexer.TokenType, expr Expr) *UnaryExpr {
	check(IsUnaryOp(op), "%s is not a unary operator", op)
	check(expr != nil, "unary %s requires an operand", op)
	e := arena.Make[UnaryExpr](b.arena)
	e.pos = pos
	e.Op = op
	e.Expr = expr
	return e
}

// NewBinaryExpr constructs an infix operation.
func (b *Builder) NewBinaryExpr(pos lexer.Pos, op lexer.TokenType, left, right Expr) *BinaryExpr {
	check(IsBinaryOp(op), "%s is not a binary operator", op)
	check(left != nil && right != nil, "binary %s requires two operands", op)
	e := arena.Make[BinaryExpr](b.arena)
	e.pos = pos
	e.Op = op
	e.Left = left
	e.Right = right
	return e
}

// NewTernaryExpr constructs a conditional expression.
func (b *Builder) NewTernaryExpr(pos lexer.Pos, cond, then, els Expr) *TernaryExpr {
	check(cond != nil && then != nil && els != nil, "ternary requires three operands")
	e := arena.Make[TernaryExpr](b.arena)
	e.pos = pos
	e.Cond = cond
	e.Then = then
	e.Else = els
	return e
}

// NewSizeofExpr constructs sizeof applied to an expression.
func (b *Builder) NewSizeofExpr(pos lexer.Pos, expr Expr) *SizeofExpr {
	check(expr != nil, "sizeof requires an operand")
	e := arena.Make[SizeofExpr](b.arena)
	e.pos = pos
	e.Expr = expr
	return e
}

// NewSizeofTypeExpr constructs sizeof applied to a type.
func (b *Builder) NewSizeofTypeExpr(pos lexer.Pos, typ Typespec) *SizeofTypeExpr {
	check(typ != nil, "sizeof requires a type")
	e := arena.Make[SizeofTypeExpr](b.arena)
	e.pos = pos
	e.Type = typ
	return e
}

// Statements

// NewReturnStmt constructs a return statement. expr may be nil.
func (b *Builder) NewReturnStmt(pos lexer.Pos, expr Expr) *ReturnStmt {
	s := arena.Make[ReturnStmt](b.arena)
	s.pos = pos
	s.Expr = expr
	return s
}

// NewBreakStmt constructs a break statement.
func (b *Builder) NewBreakStmt(pos lexer.Pos) *BreakStmt {
	s := arena.Make[BreakStmt](b.arena)
	s.pos = pos
	return s
}

// NewContinueStmt constructs a continue statement.
func (b *Builder) NewContinueStmt(pos lexer.Pos) *ContinueStmt {
	s := arena.Make[ContinueStmt](b.arena)
	s.pos = pos
	return s
}

// NewBlockStmt constructs a nested block.
func (b *Builder) NewBlockStmt(pos lexer.Pos, block StmtBlock) *BlockStmt {
	s := arena.Make[BlockStmt](b.arena)
	s.pos = pos
	s.Block = b.block(block)
	return s
}

// NewIfStmt constructs an if statement with its else-if arms and else block.
func (b *Builder) NewIfStmt(pos lexer.Pos, cond Expr, then StmtBlock, elseIfs []ElseIf, els StmtBlock) *IfStmt {
	check(cond != nil, "if requires a condition")
	for i, ei := range elseIfs {
		check(ei.Cond != nil, "else-if arm %d requires a condition", i)
	}
	s := arena.Make[IfStmt](b.arena)
	s.pos = pos
	s.Cond = cond
	s.Then = b.block(then)
	s.ElseIfs = b.elseIfs(elseIfs)
	s.Else = b.block(els)
	return s
}

// NewWhileStmt constructs a while loop.
func (b *Builder) NewWhileStmt(pos lexer.Pos, cond Expr, block StmtBlock) *WhileStmt {
	check(cond != nil, "while requires a condition")
	s := arena.Make[WhileStmt](b.arena)
	s.pos = pos
	s.Cond = cond
	s.Block = b.block(block)
	return s
}

// NewDoWhileStmt constructs a do-while loop.
func (b *Builder) NewDoWhileStmt(pos lexer.Pos, cond Expr, block StmtBlock) *DoWhileStmt {
	check(cond != nil, "do-while requires a condition")
	s := arena.Make[DoWhileStmt](b.arena)
	s.pos = pos
	s.Cond = cond
	s.Block = b.block(block)
	return s
}

// NewForStmt constructs a for loop. init, cond and next may each be nil.
func (b *Builder) NewForStmt(pos lexer.Pos, init Stmt, cond Expr, next Stmt, block StmtBlock) *ForStmt {
	s := arena.Make[ForStmt](b.arena)
	s.pos = pos
	s.Init = init
	s.Cond = cond
	s.Next = next
	s.Block = b.block(block)
	return s
}

// NewSwitchStmt constructs a switch statement.
func (b *Builder) NewSwitchStmt(pos lexer.Pos, expr Expr, cases []SwitchCase) *SwitchStmt {
	check(expr != nil, "switch requires an expression")
	defaults := 0
	for i, c := range cases {
		if c.IsDefault {
			defaults++
		} else {
			check(len(c.Exprs) > 0, "switch case %d has no values", i)
		}
		for j, e := range c.Exprs {
			check(e != nil, "switch case %d value %d is nil", i, j)
		}
	}
	check(defaults <= 1, "switch has %d default cases", defaults)
	s := arena.Make[SwitchStmt](b.arena)
	s.pos = pos
	s.Expr = expr
	s.Cases = b.switchCases(cases)
	return s
}

// NewAssignStmt constructs an assignment, or an increment or decrement when right is nil.
func (b *Builder) NewAssignStmt(pos lexer.Pos, op lexer.TokenType, left, right Expr) *AssignStmt {
	check(left != nil, "assignment requires a target")
	switch {
	case op == lexer.INC || op == lexer.DEC:
		check(right == nil, "%s takes no right operand", op)
	case op.IsAssignOp():
		check(right != nil, "%s requires a right operand", op)
	default:
		panic(fmt.Sprintf("ast: %s is not an assignment operator", op))
	}
	s := arena.Make[AssignStmt](b.arena)
	s.pos = pos
	s.Op = op
	s.Left = left
	s.Right = right
	return s
}

// NewInitStmt constructs a short variable declaration.
func (b *Builder) NewInitStmt(pos lexer.Pos, name intern.Name, expr Expr) *InitStmt {
	checkName(name, "init statement")
	check(expr != nil, "init of %q requires a value", name)
	s := arena.Make[InitStmt](b.arena)
	s.pos = pos
	s.Name = name
	s.Expr = expr
	return s
}

// NewExprStmt constructs an expression statement.
func (b *Builder) NewExprStmt(pos lexer.Pos, expr Expr) *ExprStmt {
	check(expr != nil, "expression statement requires an expression")
	s := arena.Make[ExprStmt](b.arena)
	s.pos = pos
	s.Expr = expr
	return s
}
