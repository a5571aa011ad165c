package deque

import "fmt"

type cursorFlags uint8

const (
	readOnly cursorFlags = 1 << iota
	reverse
)

// Cursor is a position in a Deque: a directory slot plus an offset inside the
// chunk bound to that slot. Cursors are values; moving one returns a new
// Cursor and leaves the receiver untouched.
//
// Stepping and jumping are O(1) regardless of how many chunks are crossed.
// A Cursor is invalidated by any call that reallocates the directory,
// allocates or releases a chunk of its Deque, or shifts elements to insert or
// erase away from the ends. Reading or writing through an
// invalidated Cursor panics; Valid reports whether it is still usable.
// Swapping two Deques does not invalidate cursors, but they follow their
// elements into the other Deque.
//
// A read-only Cursor panics on Set and Ptr. A reverse Cursor walks from back
// to front: a reverse Cursor built from base position b refers to the element
// before b, so End().Reverse() refers to the last element.
type Cursor[T any] struct {
	dir   *directory[T]
	node  int
	off   int
	gen   uint64
	flags cursorFlags
}

/*****************************************************************************
 * ARITHMETIC
 *****************************************************************************/

func (c *Cursor[T]) inc() {
	c.off++
	if c.off == c.dir.chunk {
		c.node++
		c.off = 0
	}
}

func (c *Cursor[T]) dec() {
	if c.off == 0 {
		c.node--
		c.off = c.dir.chunk
	}
	c.off--
}

// advance jumps n elements, crossing whole chunks at once.
func (c *Cursor[T]) advance(n int) {
	b := c.dir.chunk
	offset := n + c.off
	if offset >= 0 && offset < b {
		c.off = offset
		return
	}
	var nodes int
	if offset > 0 {
		nodes = offset / b
	} else {
		// Floor division, so negative offsets land in the earlier chunk.
		nodes = -((-offset - 1) / b) - 1
	}
	c.node += nodes
	c.off = offset - nodes*b
}

// plus returns c moved by n, ignoring flags.
func (c Cursor[T]) plus(n int) Cursor[T] {
	c.advance(n)
	return c
}

// distance returns the number of elements from o to c.
func (c Cursor[T]) distance(o Cursor[T]) int {
	b := c.dir.chunk
	return b*(c.node-o.node-1) + c.off + (b - o.off)
}

func (c Cursor[T]) same(o Cursor[T]) bool {
	return c.node == o.node && c.off == o.off
}

func (c Cursor[T]) before(o Cursor[T]) bool {
	if c.node == o.node {
		return c.off < o.off
	}
	return c.node < o.node
}

func (c Cursor[T]) slot() *T {
	return &c.dir.slots[c.node][c.off]
}

/*****************************************************************************
 * CURSOR API
 *****************************************************************************/

// Next returns the cursor one element further in its direction.
func (c Cursor[T]) Next() Cursor[T] {
	if c.IsReverse() {
		c.dec()
	} else {
		c.inc()
	}
	return c
}

// Prev returns the cursor one element back in its direction.
func (c Cursor[T]) Prev() Cursor[T] {
	if c.IsReverse() {
		c.inc()
	} else {
		c.dec()
	}
	return c
}

// Add returns the cursor n elements further in its direction. Negative n
// moves back.
func (c Cursor[T]) Add(n int) Cursor[T] {
	if c.IsReverse() {
		n = -n
	}
	c.advance(n)
	return c
}

// Sub returns the number of steps from o to c in c's direction. Both cursors
// must belong to the same Deque.
func (c Cursor[T]) Sub(o Cursor[T]) int {
	if c.IsReverse() {
		return o.distance(c)
	}
	return c.distance(o)
}

// Compare returns -1, 0 or +1 depending on whether c comes before, at or
// after o in c's direction.
func (c Cursor[T]) Compare(o Cursor[T]) int {
	switch {
	case c.same(o):
		return 0
	case c.before(o) != c.IsReverse():
		return -1
	default:
		return 1
	}
}

// Less reports whether c comes before o in c's direction.
func (c Cursor[T]) Less(o Cursor[T]) bool { return c.Compare(o) < 0 }

// Equal reports whether both cursors refer to the same position of the same
// Deque. Flags are ignored.
func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.dir == o.dir && c.same(o)
}

// Valid reports whether c belongs to a Deque and has not been invalidated
// since it was issued.
func (c Cursor[T]) Valid() bool {
	return c.dir != nil && c.gen == c.dir.gen
}

// Value returns the element c refers to.
func (c Cursor[T]) Value() T {
	return *c.target()
}

// Set overwrites the element c refers to. It panics on a read-only cursor.
func (c Cursor[T]) Set(v T) {
	c.mustWrite()
	*c.target() = v
}

// Ptr returns the address of the element c refers to. The address stays
// valid until the element is removed, even across directory reallocations.
// It panics on a read-only cursor.
func (c Cursor[T]) Ptr() *T {
	c.mustWrite()
	return c.target()
}

// ReadOnly returns a copy of c that cannot be written through.
func (c Cursor[T]) ReadOnly() Cursor[T] {
	c.flags |= readOnly
	return c
}

// IsReadOnly reports whether c rejects writes.
func (c Cursor[T]) IsReadOnly() bool { return c.flags&readOnly != 0 }

// Reverse flips the direction of c. A forward cursor at position b becomes a
// reverse cursor referring to the element before b, and vice versa.
func (c Cursor[T]) Reverse() Cursor[T] {
	c.flags ^= reverse
	return c
}

// IsReverse reports whether c walks back to front.
func (c Cursor[T]) IsReverse() bool { return c.flags&reverse != 0 }

// Base returns the forward cursor underlying c, keeping its read-only flag.
func (c Cursor[T]) Base() Cursor[T] {
	c.flags &^= reverse
	return c
}

func (c Cursor[T]) target() *T {
	if !c.Valid() {
		panic("deque: use of invalidated cursor")
	}
	if c.IsReverse() {
		c.dec()
	}
	if c.node < 0 || c.node >= len(c.dir.slots) || c.dir.slots[c.node] == nil {
		panic(fmt.Sprintf("deque: cursor at slot %d offset %d is outside the live chunks", c.node, c.off))
	}
	return c.slot()
}

func (c Cursor[T]) mustWrite() {
	if c.IsReadOnly() {
		panic("deque: write through read-only cursor")
	}
}
