// Package keyword holds the reserved words of the language and classifies
// interned identifiers against them.
package keyword

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/revision-lang/revision/internal/intern"
)

// Keyword identifies one reserved word. Values are in registration order.
type Keyword int

const (
	// Control flow
	Asm Keyword = iota // inline assembly
	Do
	Switch
	While
	If
	Else
	For
	Jmp   // goto
	Jmpif // conditional goto
	Break
	Continue
	Return
	Case
	Default

	// Scope
	Use // reduces scope to a capture list
	Namespace
	Import

	// Declarations and composite types
	Typedef
	Enum
	Struct
	Union
	Func
	Class
	Const
	Auto

	// Primitive types
	Bool
	Int     // 32 or 64 bits
	Uint    // same width as int
	Uintptr // holds any address or size
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex32
	Complex64
	Char  // alias for uint8
	Wchar // alias for int32
	String
	Wstring

	// Operators
	New
	Delete
	Sizeof
	Alignof
	Typeof
	Offsetof

	numKeywords
)

var keywordText = [numKeywords]string{
	Asm:       "asm",
	Do:        "do",
	Switch:    "switch",
	While:     "while",
	If:        "if",
	Else:      "else",
	For:       "for",
	Jmp:       "jmp",
	Jmpif:     "jmpif",
	Break:     "break",
	Continue:  "continue",
	Return:    "return",
	Case:      "case",
	Default:   "default",
	Use:       "use",
	Namespace: "namespace",
	Import:    "import",
	Typedef:   "typedef",
	Enum:      "enum",
	Struct:    "struct",
	Union:     "union",
	Func:      "func",
	Class:     "class",
	Const:     "const",
	Auto:      "auto",
	Bool:      "bool",
	Int:       "int",
	Uint:      "uint",
	Uintptr:   "uintptr",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Uint8:     "uint8",
	Uint16:    "uint16",
	Uint32:    "uint32",
	Uint64:    "uint64",
	Float32:   "float32",
	Float64:   "float64",
	Complex32: "complex32",
	Complex64: "complex64",
	Char:      "char",
	Wchar:     "wchar",
	String:    "string",
	Wstring:   "wstring",
	New:       "new",
	Delete:    "delete",
	Sizeof:    "sizeof",
	Alignof:   "alignof",
	Typeof:    "typeof",
	Offsetof:  "offsetof",
}

// String returns the source spelling of k.
func (k Keyword) String() string {
	if k < 0 || k >= numKeywords {
		return "keyword(?)"
	}
	return keywordText[k]
}

// All returns every keyword in registration order.
func All() []Keyword {
	out := make([]Keyword, numKeywords)
	for i := range out {
		out[i] = Keyword(i)
	}
	return out
}

// Registry interns the keywords into one table and answers membership
// queries with an explicit set of handles, so classification does not
// depend on the order in which anything else was interned.
type Registry struct {
	table  *intern.Table
	names  [numKeywords]intern.Name
	set    mapset.Set
	inited bool
}

// NewRegistry returns a registry for t. Call Init before classifying.
func NewRegistry(t *intern.Table) *Registry {
	if t == nil {
		panic("keyword: nil intern table")
	}
	return &Registry{table: t}
}

// Init interns every keyword in order. Later calls do nothing.
func (r *Registry) Init() {
	if r.inited {
		return
	}
	r.set = mapset.NewThreadUnsafeSet()
	for k := Keyword(0); k < numKeywords; k++ {
		n := r.table.Intern(k.String())
		r.names[k] = n
		r.set.Add(n)
	}
	r.inited = true
}

// IsKeyword reports whether n is one of the registered keywords.
func (r *Registry) IsKeyword(n intern.Name) bool {
	if !r.inited || n.IsZero() {
		return false
	}
	return r.set.Contains(n)
}

// Name returns the interned handle of k. It is the zero Name before Init.
func (r *Registry) Name(k Keyword) intern.Name {
	return r.names[k]
}

// Names returns the keyword handles in registration order.
func (r *Registry) Names() []intern.Name {
	if !r.inited {
		return nil
	}
	out := make([]intern.Name, numKeywords)
	copy(out, r.names[:])
	return out
}

// First returns the first registered keyword handle.
func (r *Registry) First() intern.Name { return r.names[0] }

// Last returns the last registered keyword handle.
func (r *Registry) Last() intern.Name { return r.names[numKeywords-1] }

// Len returns the number of keywords.
func (r *Registry) Len() int { return int(numKeywords) }
