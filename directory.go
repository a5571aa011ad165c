package deque

import (
	"fmt"

	"go.uber.org/zap"
)

// directory is the storage shared by a Deque and its cursors: the ordered
// chunk slots, the chunk size and the allocator owning the chunks. Only the
// slots between the Deque's start and finish nodes hold chunks.
type directory[T any] struct {
	slots [][]T
	chunk int
	alloc Allocator[T]
	// gen changes whenever cursors into this directory become invalid.
	gen uint64
}

func (d *Deque[T]) allocateChunk() ([]T, error) {
	chunk, err := d.dir.alloc.Allocate(d.dir.chunk)
	if err != nil {
		d.log.Debug("chunk allocation failed",
			zap.Int("chunkSize", d.dir.chunk),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return chunk, nil
}

// freeChunk releases the chunk bound to node and unbinds it.
func (d *Deque[T]) freeChunk(node int) {
	d.dir.alloc.Free(d.dir.slots[node])
	d.dir.slots[node] = nil
}

// initialize allocates a directory and the chunks needed to hold n elements,
// centred in the directory, and points start and finish at them. Element
// slots are left zeroed. On failure nothing stays allocated.
func (d *Deque[T]) initialize(n int) error {
	b := d.dir.chunk
	nodes := n/b + 1
	size := max(d.directorySize, nodes+2)
	slots, err := d.dir.alloc.AllocateDirectory(size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	d.dir.slots = slots

	nstart := (size - nodes) / 2
	nfinish := nstart + nodes - 1
	for node := nstart; node <= nfinish; node++ {
		chunk, err := d.allocateChunk()
		if err != nil {
			for n := nstart; n < node; n++ {
				d.freeChunk(n)
			}
			d.dir.alloc.FreeDirectory(slots)
			d.dir.slots = nil
			return err
		}
		slots[node] = chunk
	}
	d.start = Cursor[T]{dir: d.dir, node: nstart}
	d.finish = Cursor[T]{dir: d.dir, node: nfinish, off: n % b}
	return nil
}

// release frees every chunk and the directory itself.
func (d *Deque[T]) release() {
	for node := d.start.node; node <= d.finish.node; node++ {
		d.freeChunk(node)
	}
	d.dir.alloc.FreeDirectory(d.dir.slots)
	d.dir.slots = nil
	d.dir.gen++
}

/*****************************************************************************
 * DIRECTORY GROWTH
 *****************************************************************************/

func (d *Deque[T]) reserveDirectoryAtBack(nodes int) error {
	if nodes+1 > len(d.dir.slots)-d.finish.node {
		return d.reallocateDirectory(nodes, false)
	}
	return nil
}

func (d *Deque[T]) reserveDirectoryAtFront(nodes int) error {
	if nodes > d.start.node {
		return d.reallocateDirectory(nodes, true)
	}
	return nil
}

// reallocateDirectory makes room for nodes more chunks at one end. If the
// directory is more than twice as large as needed, the live slots are only
// recentred; otherwise a bigger directory is allocated. Either way chunks are
// moved by reference and the spare slots are biased towards the growing end.
func (d *Deque[T]) reallocateDirectory(nodes int, atFront bool) error {
	oldNodes := d.finish.node - d.start.node + 1
	newNodes := oldNodes + nodes
	oldSize := len(d.dir.slots)
	live := d.dir.slots[d.start.node : d.finish.node+1]

	var newStart int
	inPlace := oldSize > 2*newNodes
	if inPlace {
		newStart = (oldSize - newNodes) / 2
		if atFront {
			newStart += nodes
		}
		copy(d.dir.slots[newStart:], live)
		clear(d.dir.slots[:newStart])
		clear(d.dir.slots[newStart+oldNodes:])
	} else {
		newSize := oldSize + max(oldSize, nodes) + 2
		slots, err := d.dir.alloc.AllocateDirectory(newSize)
		if err != nil {
			d.log.Debug("directory allocation failed",
				zap.Int("oldCapacity", oldSize),
				zap.Int("newCapacity", newSize),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		newStart = (newSize - newNodes) / 2
		if atFront {
			newStart += nodes
		}
		copy(slots[newStart:], live)
		d.dir.alloc.FreeDirectory(d.dir.slots)
		d.dir.slots = slots
	}

	d.start.node = newStart
	d.finish.node = newStart + oldNodes - 1
	d.dir.gen++
	d.log.Debug("directory reallocated",
		zap.Int("oldCapacity", oldSize),
		zap.Int("newCapacity", len(d.dir.slots)),
		zap.Int("nodesToAdd", nodes),
		zap.Bool("atFront", atFront),
		zap.Bool("inPlace", inPlace),
	)
	return nil
}

/*****************************************************************************
 * BULK RESERVATION
 *****************************************************************************/

// reserveElementsAtFront makes room for n elements before start and returns
// the would-be new start. start itself does not move.
func (d *Deque[T]) reserveElementsAtFront(n int) (Cursor[T], error) {
	if vacancies := d.start.off; n > vacancies {
		if err := d.newElementsAtFront(n - vacancies); err != nil {
			return Cursor[T]{}, err
		}
	}
	return d.start.plus(-n), nil
}

// reserveElementsAtBack makes room for n elements after finish and returns the
// would-be new finish. finish itself does not move.
func (d *Deque[T]) reserveElementsAtBack(n int) (Cursor[T], error) {
	if vacancies := d.dir.chunk - d.finish.off - 1; n > vacancies {
		if err := d.newElementsAtBack(n - vacancies); err != nil {
			return Cursor[T]{}, err
		}
	}
	return d.finish.plus(n), nil
}

func (d *Deque[T]) newElementsAtFront(n int) error {
	b := d.dir.chunk
	nodes := (n + b - 1) / b
	if err := d.reserveDirectoryAtFront(nodes); err != nil {
		return err
	}
	for i := 1; i <= nodes; i++ {
		chunk, err := d.allocateChunk()
		if err != nil {
			for j := 1; j < i; j++ {
				d.freeChunk(d.start.node - j)
			}
			return err
		}
		d.dir.slots[d.start.node-i] = chunk
	}
	d.dir.gen++
	return nil
}

func (d *Deque[T]) newElementsAtBack(n int) error {
	b := d.dir.chunk
	nodes := (n + b - 1) / b
	if err := d.reserveDirectoryAtBack(nodes); err != nil {
		return err
	}
	for i := 1; i <= nodes; i++ {
		chunk, err := d.allocateChunk()
		if err != nil {
			for j := 1; j < i; j++ {
				d.freeChunk(d.finish.node + j)
			}
			return err
		}
		d.dir.slots[d.finish.node+i] = chunk
	}
	d.dir.gen++
	return nil
}

// destroyNodesAtFront releases the chunks reserved before start down to
// newStart.
func (d *Deque[T]) destroyNodesAtFront(newStart Cursor[T]) {
	for node := newStart.node; node < d.start.node; node++ {
		d.freeChunk(node)
	}
}

// destroyNodesAtBack releases the chunks reserved after finish up to
// newFinish.
func (d *Deque[T]) destroyNodesAtBack(newFinish Cursor[T]) {
	for node := d.finish.node + 1; node <= newFinish.node; node++ {
		d.freeChunk(node)
	}
}

/*****************************************************************************
 * CHUNK-WISE BULK MOVES
 *****************************************************************************/

// spans yields the chunk slices covering [first, last) in order.
func (dir *directory[T]) spans(first, last Cursor[T], yield func([]T) bool) {
	for first.node < last.node {
		if !yield(dir.slots[first.node][first.off:]) {
			return
		}
		first.node++
		first.off = 0
	}
	if first.off < last.off {
		yield(dir.slots[first.node][first.off:last.off])
	}
}

// rspans yields the chunk slices covering [first, last) from back to front.
func (dir *directory[T]) rspans(first, last Cursor[T], yield func([]T) bool) {
	for first.node < last.node {
		if last.off > 0 && !yield(dir.slots[last.node][:last.off]) {
			return
		}
		last.node--
		last.off = dir.chunk
	}
	if first.off < last.off {
		yield(dir.slots[first.node][first.off:last.off])
	}
}

// copyForward copies [first, last) to the range starting at dst, front to
// back, and returns the end of the destination range. Safe when dst precedes
// first.
func (d *Deque[T]) copyForward(first, last, dst Cursor[T]) Cursor[T] {
	b := d.dir.chunk
	for n := last.distance(first); n > 0; {
		k := min(n, b-first.off, b-dst.off)
		copy(d.dir.slots[dst.node][dst.off:dst.off+k], d.dir.slots[first.node][first.off:first.off+k])
		first.advance(k)
		dst.advance(k)
		n -= k
	}
	return dst
}

// copyBackward copies [first, last) to the range ending at dstLast, back to
// front, and returns the start of the destination range. Safe when dstLast
// follows last.
func (d *Deque[T]) copyBackward(first, last, dstLast Cursor[T]) Cursor[T] {
	b := d.dir.chunk
	for n := last.distance(first); n > 0; {
		srcRoom := last.off
		if srcRoom == 0 {
			srcRoom = b
		}
		dstRoom := dstLast.off
		if dstRoom == 0 {
			dstRoom = b
		}
		k := min(n, srcRoom, dstRoom)
		last.advance(-k)
		dstLast.advance(-k)
		copy(d.dir.slots[dstLast.node][dstLast.off:dstLast.off+k], d.dir.slots[last.node][last.off:last.off+k])
		n -= k
	}
	return dstLast
}

// finalize zeroes [first, last) so vacated slots hold no references.
func (d *Deque[T]) finalize(first, last Cursor[T]) {
	d.dir.spans(first, last, func(s []T) bool {
		clear(s)
		return true
	})
}
