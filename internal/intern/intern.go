// Package intern deduplicates identifier and literal text so that equal
// strings share one canonical, arena-owned copy. Callers compare Names with
// == instead of comparing bytes.
package intern

import (
	"unsafe"

	"github.com/revision-lang/revision/internal/arena"
)

// Name is a handle to an interned string. The zero Name means "no name".
type Name struct {
	e *entry
}

type entry struct {
	s string
}

// String returns the interned text.
func (n Name) String() string {
	if n.e == nil {
		return ""
	}
	return n.e.s
}

// Len returns the length of the interned text in bytes.
func (n Name) Len() int {
	return len(n.String())
}

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool {
	return n.e == nil
}

// Table maps content to canonical Names. A Table belongs to one
// compilation unit and is not safe for concurrent use.
type Table struct {
	arena *arena.Arena
	index map[string]Name
}

// NewTable returns an empty table storing its strings in a.
func NewTable(a *arena.Arena) *Table {
	if a == nil {
		panic("intern: nil arena")
	}
	return &Table{
		arena: a,
		index: make(map[string]Name),
	}
}

// Intern returns the canonical Name for s, copying s into the arena the
// first time it is seen.
func (t *Table) Intern(s string) Name {
	if n, ok := t.index[s]; ok {
		return n
	}
	return t.insert(s)
}

// InternBytes is Intern for a byte slice. b is not retained.
func (t *Table) InternBytes(b []byte) Name {
	if n, ok := t.index[string(b)]; ok {
		return n
	}
	return t.insert(string(b))
}

// Lookup returns the Name for s without interning it.
func (t *Table) Lookup(s string) (Name, bool) {
	n, ok := t.index[s]
	return n, ok
}

// Len returns the number of distinct strings interned.
func (t *Table) Len() int {
	return len(t.index)
}

func (t *Table) insert(s string) Name {
	var canonical string
	if len(s) > 0 {
		buf := t.arena.Alloc(len(s))
		copy(buf, s)
		// buf is never written again, so viewing it as a string is safe.
		canonical = unsafe.String(&buf[0], len(buf))
	}

	e := arena.Make[entry](t.arena)
	e.s = canonical
	n := Name{e: e}
	t.index[canonical] = n
	return n
}
