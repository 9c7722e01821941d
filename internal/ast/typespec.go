package ast

import "github.com/revision-lang/revision/internal/intern"

// NameTypespec refers to a type by name, e.g. int32 or Vector.
type NameTypespec struct {
	node
	Name intern.Name
}

// FuncTypespec is a function type. Ret is nil for functions returning nothing.
type FuncTypespec struct {
	node
	Args []Typespec
	Ret  Typespec
}

// ArrayTypespec is an array type. Size is nil for an unsized array.
type ArrayTypespec struct {
	node
	Elem Typespec
	Size Expr
}

// PtrTypespec is a pointer type.
type PtrTypespec struct {
	node
	Elem Typespec
}

func (*NameTypespec) typespecNode()  {}
func (*FuncTypespec) typespecNode()  {}
func (*ArrayTypespec) typespecNode() {}
func (*PtrTypespec) typespecNode()   {}
