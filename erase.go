package deque

// Erase removes the element at pos and returns a cursor to the element that
// followed it. The shorter side of the Deque is shifted over the gap. Every
// outstanding cursor is invalidated. Panics if pos is End.
func (d *Deque[T]) Erase(pos Cursor[T]) Cursor[T] {
	d.checkCursor(pos)
	if pos.same(d.finish) {
		panic("deque: erase at end")
	}
	next := pos.plus(1)
	index := pos.distance(d.start)
	if index < d.Len()>>1 {
		d.copyBackward(d.start, pos, next)
		d.PopFront()
	} else {
		d.copyForward(next, d.finish, pos)
		d.PopBack()
	}
	d.dir.gen++
	return d.public(d.start.plus(index))
}

// EraseAt removes the i-th element and returns it. Panics if out of bounds.
func (d *Deque[T]) EraseAt(i int) T {
	d.checkBounds(i)
	v := *d.start.plus(i).slot()
	d.Erase(d.CursorAt(i))
	return v
}

// EraseRange removes [first, last) and returns a cursor to the element that
// followed the range. The shorter side is shifted over the gap in one pass
// and chunks left outside the remaining elements are released. Every
// outstanding cursor is invalidated.
func (d *Deque[T]) EraseRange(first, last Cursor[T]) Cursor[T] {
	d.checkCursor(first)
	d.checkCursor(last)
	if last.before(first) {
		panic("deque: erase range ends before it starts")
	}
	if first.same(last) {
		return d.public(first)
	}
	if first.same(d.start) && last.same(d.finish) {
		d.Clear()
		return d.End()
	}

	n := last.distance(first)
	before := first.distance(d.start)
	if before < (d.Len()-n)/2 {
		d.copyBackward(d.start, first, last)
		newStart := d.start.plus(n)
		d.finalize(d.start, newStart)
		for node := d.start.node; node < newStart.node; node++ {
			d.freeChunk(node)
		}
		d.start = newStart
	} else {
		d.copyForward(last, d.finish, first)
		newFinish := d.finish.plus(-n)
		d.finalize(newFinish, d.finish)
		for node := newFinish.node + 1; node <= d.finish.node; node++ {
			d.freeChunk(node)
		}
		d.finish = newFinish
	}
	d.dir.gen++
	return d.public(d.start.plus(before))
}
