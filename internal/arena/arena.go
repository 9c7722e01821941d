// Package arena implements the bump allocator that owns every long-lived
// object of a compilation unit: interned string bytes and AST nodes.
//
// Memory handed out by an Arena is never moved, resized or freed on its own.
// Everything goes away together when the unit calls Release.
package arena

import (
	"fmt"
	"unsafe"
)

const (
	// Alignment is the alignment of every Alloc result.
	Alignment = 8
	// MinBlockSize is the smallest block the arena requests from the runtime.
	MinBlockSize = 1024

	minSlabLen = 16
)

// Stats summarises what an arena currently holds.
type Stats struct {
	Blocks   int // byte blocks
	Chunks   int // typed slab chunks
	Reserved int // bytes obtained from the runtime
	Used     int // bytes handed out by Alloc, including alignment padding
	Objects  int // values handed out by Make and Clone
}

// Arena is a bump allocator. The zero value is ready to use with
// MinBlockSize blocks. An Arena must not be shared between goroutines.
type Arena struct {
	blockSize int

	block  []byte // current block
	off    int    // next free offset in block
	blocks [][]byte

	slabs map[any]any

	stats Stats
}

// New returns an arena using MinBlockSize blocks.
func New() *Arena {
	return NewWithBlockSize(MinBlockSize)
}

// NewWithBlockSize returns an arena whose blocks are at least n bytes.
// Values below MinBlockSize are raised to it.
func NewWithBlockSize(n int) *Arena {
	if n < MinBlockSize {
		n = MinBlockSize
	}
	return &Arena{blockSize: alignUp(n, Alignment)}
}

// BlockSize reports the minimum block size.
func (a *Arena) BlockSize() int {
	if a.blockSize == 0 {
		return MinBlockSize
	}
	return a.blockSize
}

// Alloc returns size zeroed bytes whose first byte is Alignment-aligned.
// The returned slice has its capacity clipped to size so appends can never
// spill into a neighbouring allocation.
func (a *Arena) Alloc(size int) []byte {
	if size < 0 {
		panic(fmt.Sprintf("arena: negative allocation size %d", size))
	}
	if size > len(a.block)-a.off {
		a.grow(size)
	}
	p := a.block[a.off : a.off+size : a.off+size]
	next := alignUp(a.off+size, Alignment)
	if next > len(a.block) {
		next = len(a.block)
	}
	a.stats.Used += next - a.off
	a.off = next
	return p
}

// grow starts a new block large enough for minSize bytes.
func (a *Arena) grow(minSize int) {
	size := alignUp(max(a.BlockSize(), minSize), Alignment)

	// Backing the block with uint64 words pins its base address to an
	// 8-byte boundary regardless of the runtime's size classes.
	words := make([]uint64, size/Alignment)
	var block []byte
	if len(words) > 0 {
		block = unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	}

	a.block = block
	a.off = 0
	a.blocks = append(a.blocks, block)
	a.stats.Blocks++
	a.stats.Reserved += size
}

// Release drops every block and slab. Slices and pointers obtained before
// the call must not be used afterwards. The arena can be reused.
func (a *Arena) Release() {
	a.block = nil
	a.off = 0
	a.blocks = nil
	a.slabs = nil
	a.stats = Stats{}
}

// Stats returns allocation counters since creation or the last Release.
func (a *Arena) Stats() Stats {
	return a.stats
}

// slab hands out values of one type from fixed-capacity chunks. A chunk is
// only ever resliced within its capacity, so earlier elements never move.
type slab[T any] struct {
	chunk []T
}

func slabFor[T any](a *Arena) *slab[T] {
	key := (*T)(nil)
	s, _ := a.slabs[key].(*slab[T])
	if s == nil {
		if a.slabs == nil {
			a.slabs = make(map[any]any)
		}
		s = &slab[T]{}
		a.slabs[key] = s
	}
	return s
}

// reserve makes room for n more values in the current chunk of s.
func reserve[T any](a *Arena, s *slab[T], n int) {
	if cap(s.chunk)-len(s.chunk) >= n {
		return
	}
	var zero T
	elem := max(int(unsafe.Sizeof(zero)), 1)
	size := max(a.BlockSize()/elem, minSlabLen, n)
	s.chunk = make([]T, 0, size)
	a.stats.Chunks++
	a.stats.Reserved += size * elem
}

// Make allocates a zeroed T owned by a. The pointer stays valid until
// a.Release.
func Make[T any](a *Arena) *T {
	s := slabFor[T](a)
	reserve(a, s, 1)
	s.chunk = s.chunk[:len(s.chunk)+1]
	a.stats.Objects++
	return &s.chunk[len(s.chunk)-1]
}

// Clone copies src into storage owned by a. The result has no spare
// capacity, so appending to it never writes into the arena. An empty src
// yields nil.
func Clone[T any](a *Arena, src []T) []T {
	n := len(src)
	if n == 0 {
		return nil
	}
	s := slabFor[T](a)
	reserve(a, s, n)
	start := len(s.chunk)
	s.chunk = s.chunk[:start+n]
	a.stats.Objects += n
	dst := s.chunk[start : start+n : start+n]
	copy(dst, src)
	return dst
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
