// Package arena implements a bump allocator with scope-based reset.
//
// It is the single owner of all program-lifetime memory for a compile and
// execute session: AST nodes, strings, runtime values, meshes, and rings all
// live here. There is no per-block free; Reset invalidates every outstanding
// pointer at once.
package arena

import (
	"errors"
	"fmt"
)

// ErrOOM is returned when an allocation would overrun the arena's capacity.
var ErrOOM = errors.New("arena: out of memory")

// Arena is a fixed-capacity bump allocator.
type Arena struct {
	buf []byte
	off int
}

// New creates an Arena with the given byte capacity.
func New(capBytes int) *Arena {
	return &Arena{buf: make([]byte, capBytes)}
}

// Cap returns the arena's total byte capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() int { return a.off }

func alignUp(off, align int) int {
	if align <= 1 {
		return off
	}
	return (off + align - 1) &^ (align - 1)
}

// Alloc reserves sz bytes aligned to align and returns a zeroed slice backed
// by the arena. It returns ErrOOM without mutating the arena if the aligned
// request would overrun capacity; allocation failure is not retried.
func (a *Arena) Alloc(sz, align int) ([]byte, error) {
	off := alignUp(a.off, align)
	if off+sz > len(a.buf) || off+sz < off {
		return nil, fmt.Errorf("%w: requested %d bytes at offset %d, capacity %d", ErrOOM, sz, off, len(a.buf))
	}
	b := a.buf[off : off+sz : off+sz]
	for i := range b {
		b[i] = 0
	}
	a.off = off + sz
	return b, nil
}

// Reset rewinds the arena to empty. Every pointer or slice handed out by a
// prior Alloc becomes invalid; callers must ensure no live handle survives
// a Reset.
func (a *Arena) Reset() { a.off = 0 }

// CopyString copies s into arena-owned storage and returns a fresh Go string
// over that copy; the bytes are accounted against the arena's budget and
// fail the same OOM path as mesh growth. The lexer, parser and evaluator
// do not call it: their strings are ordinary Go strings outside the
// arena's accounting.
func (a *Arena) CopyString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := a.Alloc(len(s), 1)
	if err != nil {
		return "", err
	}
	copy(b, s)
	return string(b), nil
}

// Reserve accounts nBytes of arena capacity without returning them, used by
// callers (the mesh kernel's allocator handle) that grow ordinary
// GC-managed Go slices but still must observe the arena's exhaustion
// contract. See Allocator in package meshkernel.
func (a *Arena) Reserve(nBytes int) error {
	_, err := a.Alloc(nBytes, 8)
	return err
}
