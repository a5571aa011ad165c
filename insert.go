package deque

// Insert constructs v before pos and returns a cursor to the new element.
//
// Inserting at Begin or End is a PushFront or PushBack. Anywhere else, the
// shorter side of the Deque is shifted by one to open a hole: the first (or
// last) element is pushed again and every element up to pos moves one step
// towards that end. v is constructed before anything moves, so a failure
// leaves the Deque unchanged. Every outstanding cursor is invalidated.
func (d *Deque[T]) Insert(pos Cursor[T], v T) (Cursor[T], error) {
	d.checkCursor(pos)
	switch {
	case pos.same(d.start):
		if err := d.PushFront(v); err != nil {
			return Cursor[T]{}, err
		}
		return d.Begin(), nil
	case pos.same(d.finish):
		if err := d.PushBack(v); err != nil {
			return Cursor[T]{}, err
		}
		return d.End().Prev(), nil
	}
	return d.insertAux(pos, v)
}

func (d *Deque[T]) insertAux(pos Cursor[T], v T) (Cursor[T], error) {
	index := pos.distance(d.start)
	x, err := d.constructOne(v)
	if err != nil {
		return Cursor[T]{}, err
	}
	if index <= d.Len()-index {
		if err := d.pushFront(*d.start.slot()); err != nil {
			return Cursor[T]{}, err
		}
		front1 := d.start.plus(1)
		pos = d.start.plus(index)
		d.copyForward(front1.plus(1), pos.plus(1), front1)
	} else {
		if err := d.pushBack(*d.finish.plus(-1).slot()); err != nil {
			return Cursor[T]{}, err
		}
		back1 := d.finish.plus(-1)
		pos = d.start.plus(index)
		d.copyBackward(pos, back1.plus(-1), back1)
	}
	*pos.slot() = x
	d.dir.gen++
	return d.public(pos), nil
}

// InsertAt inserts v so that it ends up at index i. i may equal Len.
func (d *Deque[T]) InsertAt(i int, v T) error {
	_, err := d.Insert(d.CursorAt(i), v)
	return err
}

// InsertN constructs n copies of v before pos. Room for all n elements is
// reserved at once, so the directory is reallocated at most once. At either
// end the call is all-or-nothing. In the middle, elements are shifted before
// the copies are constructed: a construction failure leaves the Deque n
// elements longer with the unconstructed slots zeroed or duplicated. Callers
// needing all-or-nothing semantics there should insert into a Clone and Swap.
func (d *Deque[T]) InsertN(pos Cursor[T], n int, v T) error {
	if n < 0 {
		return ErrNegativeCount
	}
	d.checkCursor(pos)
	return d.insertRange(pos, n, func(int) T { return v })
}

// InsertSlice constructs a copy of every element of s before pos, keeping
// their order. It behaves like InsertN otherwise.
func (d *Deque[T]) InsertSlice(pos Cursor[T], s []T) error {
	d.checkCursor(pos)
	return d.insertRange(pos, len(s), func(i int) T { return s[i] })
}

// insertRange constructs value(0) ... value(n-1) before pos.
func (d *Deque[T]) insertRange(pos Cursor[T], n int, value func(int) T) error {
	if n == 0 {
		return nil
	}
	switch {
	case pos.same(d.start):
		newStart, err := d.reserveElementsAtFront(n)
		if err != nil {
			return err
		}
		if err := d.constructRange(newStart, d.start, value); err != nil {
			d.finalize(newStart, d.start)
			d.destroyNodesAtFront(newStart)
			return err
		}
		d.start = newStart
		return nil
	case pos.same(d.finish):
		newFinish, err := d.reserveElementsAtBack(n)
		if err != nil {
			return err
		}
		if err := d.constructRange(d.finish, newFinish, value); err != nil {
			d.finalize(d.finish, newFinish)
			d.destroyNodesAtBack(newFinish)
			return err
		}
		d.finish = newFinish
		return nil
	}

	index := pos.distance(d.start)
	defer func() { d.dir.gen++ }()
	if index < d.Len()/2 {
		newStart, err := d.reserveElementsAtFront(n)
		if err != nil {
			return err
		}
		pos = d.start.plus(index)
		d.copyForward(d.start, pos, newStart)
		d.start = newStart
		return d.constructRange(pos.plus(-n), pos, value)
	}
	newFinish, err := d.reserveElementsAtBack(n)
	if err != nil {
		return err
	}
	pos = d.start.plus(index)
	d.copyBackward(pos, d.finish, newFinish)
	d.finish = newFinish
	return d.constructRange(pos, pos.plus(n), value)
}
