package deque

import (
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// Deque is a double-ended queue that can be used for either LIFO or FIFO
// ordering, or something in between, with O(1) indexed access.
//
// Elements live in fixed-size chunks. A directory lists the chunks in order
// and keeps spare slots at both ends, so growing at either end only ever
// allocates one chunk, and the directory itself is reallocated only when it
// runs out of spare slots. Elements never move because the Deque grew, so a
// pointer obtained from Cursor.Ptr stays valid until its element is removed.
//
// To create a Deque instance, you must use one of the available constructors,
// New, Filled, FromSlice or Collect. Even an empty Deque owns one chunk.
// Creating a Deque in the following way is wrong:
//
//	var deque Deque[int] // wrong
//
// A Deque is not safe for concurrent use. Calls that may allocate return an
// error: operations at either end and whole constructions leave the Deque
// unchanged when they fail, while inserts in the middle only guarantee that
// the Deque stays usable.
type Deque[T any] struct {
	dir           *directory[T]
	start, finish Cursor[T]

	directorySize int
	construct     Constructor[T]
	log           *zap.Logger
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New returns an empty Deque owning a single chunk.
func New[T any](opts ...Option[T]) (*Deque[T], error) {
	d := newDeque(buildOptions(opts))
	if err := d.initialize(0); err != nil {
		return nil, err
	}
	return d, nil
}

// Filled returns a Deque holding n copies of v. It returns ErrNegativeCount
// if n is negative.
func Filled[T any](n int, v T, opts ...Option[T]) (*Deque[T], error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	d := newDeque(buildOptions(opts))
	if err := d.rangeInitialize(n, func(int) T { return v }); err != nil {
		return nil, err
	}
	return d, nil
}

// FromSlice returns a Deque holding a copy of every element of s, in order.
// Memory is not shared with s.
func FromSlice[T any](s []T, opts ...Option[T]) (*Deque[T], error) {
	d := newDeque(buildOptions(opts))
	if err := d.rangeInitialize(len(s), func(i int) T { return s[i] }); err != nil {
		return nil, err
	}
	return d, nil
}

// Collect returns a Deque holding every value yielded by seq, in order. Since
// the length is unknown upfront, the Deque grows one push at a time.
func Collect[T any](seq iter.Seq[T], opts ...Option[T]) (*Deque[T], error) {
	d, err := New(opts...)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		if err := d.PushBack(v); err != nil {
			d.finalize(d.start, d.finish)
			d.release()
			return nil, err
		}
	}
	return d, nil
}

// Clone returns a copy of d with the same chunk size, allocator, constructor
// and logger.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	c := d.sibling()
	if err := c.rangeInitialize(d.Len(), d.reader(d.start)); err != nil {
		return nil, err
	}
	return c, nil
}

func newDeque[T any](o options[T]) *Deque[T] {
	return &Deque[T]{
		dir:           &directory[T]{chunk: o.chunkSize, alloc: o.alloc},
		directorySize: o.directorySize,
		construct:     o.construct,
		log:           o.log,
	}
}

// sibling returns an uninitialized Deque sharing d's settings.
func (d *Deque[T]) sibling() *Deque[T] {
	return &Deque[T]{
		dir:           &directory[T]{chunk: d.dir.chunk, alloc: d.dir.alloc},
		directorySize: d.directorySize,
		construct:     d.construct,
		log:           d.log,
	}
}

// rangeInitialize allocates room for n elements at once and constructs
// value(0) ... value(n-1) in place. On failure every constructed element is
// finalized and all storage released.
func (d *Deque[T]) rangeInitialize(n int, value func(int) T) error {
	if err := d.initialize(n); err != nil {
		return err
	}
	if err := d.constructRange(d.start, d.finish, value); err != nil {
		d.finalize(d.start, d.finish)
		d.release()
		return err
	}
	return nil
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.finish.distance(d.start)
}

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.start.same(d.finish) }

// PushBack constructs v after the last element. Unless the last chunk is
// about to fill up, this never allocates. Otherwise a new chunk is allocated,
// and possibly a larger directory; if anything fails the Deque is left as it
// was.
func (d *Deque[T]) PushBack(v T) error {
	x, err := d.constructOne(v)
	if err != nil {
		return err
	}
	return d.pushBack(x)
}

// pushBack stores an already constructed x after the last element.
func (d *Deque[T]) pushBack(x T) error {
	if d.finish.off != d.dir.chunk-1 {
		*d.finish.slot() = x
		d.finish.off++
		return nil
	}
	return d.pushBackAux(x)
}

func (d *Deque[T]) pushBackAux(x T) error {
	chunk, err := d.allocateChunk()
	if err != nil {
		return err
	}
	if err := d.reserveDirectoryAtBack(1); err != nil {
		d.dir.alloc.Free(chunk)
		return err
	}
	d.dir.slots[d.finish.node+1] = chunk
	*d.finish.slot() = x
	d.finish.node++
	d.finish.off = 0
	d.dir.gen++
	return nil
}

// PushFront constructs v before the first element. Like PushBack, it either
// succeeds or leaves the Deque as it was.
func (d *Deque[T]) PushFront(v T) error {
	x, err := d.constructOne(v)
	if err != nil {
		return err
	}
	return d.pushFront(x)
}

func (d *Deque[T]) pushFront(x T) error {
	if d.start.off != 0 {
		d.start.off--
		*d.start.slot() = x
		return nil
	}
	return d.pushFrontAux(x)
}

func (d *Deque[T]) pushFrontAux(x T) error {
	chunk, err := d.allocateChunk()
	if err != nil {
		return err
	}
	if err := d.reserveDirectoryAtFront(1); err != nil {
		d.dir.alloc.Free(chunk)
		return err
	}
	d.dir.slots[d.start.node-1] = chunk
	d.start.node--
	d.start.off = d.dir.chunk - 1
	*d.start.slot() = x
	d.dir.gen++
	return nil
}

// PopBack removes the last element in the Deque and returns it. If it's empty,
// returns false. The vacated slot is zeroed, and the last chunk is released
// once drained unless it is the only one.
func (d *Deque[T]) PopBack() (t T, ok bool) {
	if d.Empty() {
		return
	}
	if d.finish.off == 0 {
		d.freeChunk(d.finish.node)
		d.finish.node--
		d.finish.off = d.dir.chunk
		d.dir.gen++
	}
	d.finish.off--
	slot := d.finish.slot()
	t, *slot = *slot, t
	return t, true
}

// PopFront removes the first element in the Deque and returns it. If it's
// empty, returns false. The vacated slot is zeroed, and the first chunk is
// released once drained unless it is the only one.
func (d *Deque[T]) PopFront() (t T, ok bool) {
	if d.Empty() {
		return
	}
	slot := d.start.slot()
	t, *slot = *slot, t
	if d.start.off != d.dir.chunk-1 {
		d.start.off++
	} else {
		d.freeChunk(d.start.node)
		d.start.node++
		d.start.off = 0
		d.dir.gen++
	}
	return t, true
}

// Front returns the first element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) Front() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return *d.start.slot(), true
}

// Back returns the last element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) Back() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return *d.finish.plus(-1).slot(), true
}

// Clear removes every element and releases every chunk but the first, which
// the empty Deque keeps.
func (d *Deque[T]) Clear() {
	d.finalize(d.start, d.finish)
	for node := d.start.node + 1; node <= d.finish.node; node++ {
		d.freeChunk(node)
	}
	d.finish = d.start
	d.dir.gen++
}

// Resize grows the Deque with zero values or shrinks it from the back until
// it holds n elements.
func (d *Deque[T]) Resize(n int) error {
	var zero T
	return d.ResizeWith(n, zero)
}

// ResizeWith grows the Deque with copies of v or shrinks it from the back
// until it holds n elements.
func (d *Deque[T]) ResizeWith(n int, v T) error {
	if n < 0 {
		return ErrNegativeCount
	}
	l := d.Len()
	if n < l {
		d.EraseRange(d.CursorAt(n), d.End())
		return nil
	}
	return d.InsertN(d.End(), n-l, v)
}

// Swap exchanges the contents of d and o in O(1). Settings such as the
// constructor and logger stay with each Deque; chunk size and allocator
// follow the chunks. Cursors remain valid and follow their elements.
func (d *Deque[T]) Swap(o *Deque[T]) {
	d.dir, o.dir = o.dir, d.dir
	d.start, o.start = o.start, d.start
	d.finish, o.finish = o.finish, d.finish
}

// Assign replaces the contents of d with a copy of src, reusing d's chunks.
// Extra elements are constructed at the back before anything is overwritten,
// so a failure leaves d unchanged.
func (d *Deque[T]) Assign(src *Deque[T]) error {
	if d == src {
		return nil
	}
	l, n := d.Len(), src.Len()
	if l >= n {
		end := d.copyFrom(src.start, src.finish, d.start)
		d.EraseRange(d.public(end), d.End())
		return nil
	}
	mid := src.start.plus(l)
	if err := d.insertRange(d.finish, n-l, d.reader(mid)); err != nil {
		return err
	}
	d.copyFrom(src.start, mid, d.start)
	return nil
}

/*****************************************************************************
 * INDEX API
 *****************************************************************************/

// At indexes into the i-th position in the Deque. Panics if out of bounds.
func (d *Deque[T]) At(i int) T {
	d.checkBounds(i)
	return *d.start.plus(i).slot()
}

// Set writes t to the i-th position in the Deque. Panics if out of bounds.
func (d *Deque[T]) Set(i int, t T) {
	d.checkBounds(i)
	*d.start.plus(i).slot() = t
}

// CursorAt returns a cursor to the i-th position. i may equal Len, which
// yields End. Panics if out of bounds.
func (d *Deque[T]) CursorAt(i int) Cursor[T] {
	if i != d.Len() {
		d.checkBounds(i)
	}
	return d.public(d.start.plus(i))
}

// IndexOf returns the index of the element c refers to, or Len for End.
// Panics if c does not belong to d or was invalidated.
func (d *Deque[T]) IndexOf(c Cursor[T]) int {
	base := c.Base()
	d.checkCursor(base)
	i := base.distance(d.start)
	if c.IsReverse() {
		i--
	}
	return i
}

// MakeSliceCopy allocates a slice to hold every Deque element and copies them.
// Prefer passing a buffer to CopySlice for memory reuse.
func (d *Deque[T]) MakeSliceCopy() []T {
	s := make([]T, d.Len())
	_ = d.CopySlice(0, s)
	return s
}

// MakeSliceIndexCopy allocates a slice and copies the elements from the start
// index (inclusive) to the end index (non-inclusive). This is regular slice
// semantics, except it's a copy that doesn't share memory with the Deque, so
// it panics with invalid indexes.
func (d *Deque[T]) MakeSliceIndexCopy(start, end int) []T {
	if end > d.Len() || start > end {
		panic(fmt.Sprintf("deque: slice bounds [%d:%d] out of range with length %d", start, end, d.Len()))
	}
	s := make([]T, end-start)
	_ = d.CopySlice(start, s)
	return s
}

// CopySlice has the same semantics as the copy() built-in function. It copies
// elements in the Deque starting at the start index up until the buffer is
// full or the Deque is over, whichever happens first.
//
// CopySlice returns the number of elements copied, which will be the minimum
// of len(buf) and d.Len()-start.
func (d *Deque[T]) CopySlice(start int, buf []T) int {
	if start < 0 || start > d.Len() {
		panic(fmt.Sprintf("deque: index %d out of bounds with length %d", start, d.Len()))
	}
	n := 0
	d.dir.spans(d.start.plus(start), d.finish, func(s []T) bool {
		n += copy(buf[n:], s)
		return n < len(buf)
	})
	return n
}

/*****************************************************************************
 * CURSOR API
 *****************************************************************************/

// Begin returns a cursor to the first element.
func (d *Deque[T]) Begin() Cursor[T] { return d.public(d.start) }

// End returns a cursor one past the last element.
func (d *Deque[T]) End() Cursor[T] { return d.public(d.finish) }

// RBegin returns a reverse cursor to the last element.
func (d *Deque[T]) RBegin() Cursor[T] { return d.End().Reverse() }

// REnd returns a reverse cursor one before the first element.
func (d *Deque[T]) REnd() Cursor[T] { return d.Begin().Reverse() }

// ChunkSize returns the number of elements per chunk.
func (d *Deque[T]) ChunkSize() int { return d.dir.chunk }

// Chunks returns the number of chunks currently allocated.
func (d *Deque[T]) Chunks() int { return d.finish.node - d.start.node + 1 }

// DirectoryCap returns the number of chunk slots in the directory.
func (d *Deque[T]) DirectoryCap() int { return len(d.dir.slots) }

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// All returns an iterator over index-value pairs in order. If you don't need
// indexes, use Iter instead. The Deque must not be modified during iteration.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d == nil {
			return
		}
		i := 0
		d.dir.spans(d.start, d.finish, func(s []T) bool {
			for _, t := range s {
				if !yield(i, t) {
					return false
				}
				i++
			}
			return true
		})
	}
}

// Iter returns an iterator over values only in order. If you need indexes,
// use All instead.
func (d *Deque[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if d == nil {
			return
		}
		d.dir.spans(d.start, d.finish, func(s []T) bool {
			for _, t := range s {
				if !yield(t) {
					return false
				}
			}
			return true
		})
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d == nil {
			return
		}
		i := d.Len() - 1
		d.dir.rspans(d.start, d.finish, func(s []T) bool {
			for j := len(s) - 1; j >= 0; j-- {
				if !yield(i, s[j]) {
					return false
				}
				i--
			}
			return true
		})
	}
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrAllocation wraps an error returned by the Allocator while allocating a
// chunk or a directory.
var ErrAllocation = errors.New("allocation failed")

// ErrConstruct wraps an error returned by the Constructor hook.
var ErrConstruct = errors.New("element construction failed")

// ErrNegativeCount is returned when asked for a negative number of elements.
var ErrNegativeCount = errors.New("count cannot be negative")

// ErrInvalidConfig is returned for configuration values out of range.
var ErrInvalidConfig = errors.New("invalid config")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

// public stamps an internal cursor so it can be handed out.
func (d *Deque[T]) public(c Cursor[T]) Cursor[T] {
	c.dir = d.dir
	c.gen = d.dir.gen
	return c
}

func (d *Deque[T]) constructOne(v T) (T, error) {
	if d.construct == nil {
		return v, nil
	}
	x, err := d.construct(v)
	if err != nil {
		return x, fmt.Errorf("%w: %w", ErrConstruct, err)
	}
	return x, nil
}

// constructRange constructs value(0), value(1), ... into [first, last).
func (d *Deque[T]) constructRange(first, last Cursor[T], value func(int) T) error {
	i := 0
	var err error
	d.dir.spans(first, last, func(s []T) bool {
		for j := range s {
			if s[j], err = d.constructOne(value(i)); err != nil {
				clear(s[j:])
				return false
			}
			i++
		}
		return true
	})
	return err
}

// reader returns a value source walking from first, for constructRange.
func (*Deque[T]) reader(first Cursor[T]) func(int) T {
	return func(int) T {
		v := *first.slot()
		first.inc()
		return v
	}
}

// copyFrom overwrites the range starting at dst with [first, last) of another
// Deque and returns the end of the overwritten range.
func (d *Deque[T]) copyFrom(first, last, dst Cursor[T]) Cursor[T] {
	b := d.dir.chunk
	first.dir.spans(first, last, func(s []T) bool {
		for len(s) > 0 {
			k := copy(d.dir.slots[dst.node][dst.off:b], s)
			s = s[k:]
			dst.advance(k)
		}
		return true
	})
	return dst
}

func (d *Deque[T]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("deque: index %d out of bounds with length %d", i, d.Len()))
	}
}

// checkCursor panics unless c is a live forward position in [start, finish].
func (d *Deque[T]) checkCursor(c Cursor[T]) {
	switch {
	case c.IsReverse():
		panic("deque: position given by a reverse cursor, use its Base")
	case c.dir != d.dir:
		panic("deque: cursor belongs to another deque")
	case c.gen != d.dir.gen:
		panic("deque: use of invalidated cursor")
	case c.before(d.start) || d.finish.before(c):
		panic(fmt.Sprintf("deque: cursor at slot %d offset %d is outside the live range", c.node, c.off))
	}
}
