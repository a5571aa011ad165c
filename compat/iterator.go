package compat

import "github.com/lucasgdosr/deque/v2"

// Iterator walks a deque with gods iterator semantics: it starts one before
// the first element, and Next/Prev report whether they landed on an element.
// It moves a read-only cursor, so every step is O(1).
type Iterator[T any] struct {
	d     *deque.Deque[T]
	index int
	cur   deque.Cursor[T]
}

// Next moves to the next element and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	if it.index < it.d.Len() {
		it.index++
		it.cur = it.cur.Next()
	}
	return it.within()
}

// Prev moves to the previous element and reports whether there is one.
func (it *Iterator[T]) Prev() bool {
	if it.index >= 0 {
		it.index--
		it.cur = it.cur.Prev()
	}
	return it.within()
}

// Value returns the current element. Only call it after a successful
// Next, Prev, First or Last.
func (it *Iterator[T]) Value() interface{} {
	return it.cur.Value()
}

// Index returns the position of the current element.
func (it *Iterator[T]) Index() int {
	return it.index
}

// Begin resets the iterator to one before the first element.
func (it *Iterator[T]) Begin() {
	it.index = -1
	it.cur = it.d.Begin().ReadOnly().Prev()
}

// End moves the iterator to one past the last element.
func (it *Iterator[T]) End() {
	it.index = it.d.Len()
	it.cur = it.d.End().ReadOnly()
}

// First moves to the first element and reports whether there is one.
func (it *Iterator[T]) First() bool {
	it.Begin()
	return it.Next()
}

// Last moves to the last element and reports whether there is one.
func (it *Iterator[T]) Last() bool {
	it.End()
	return it.Prev()
}

// NextTo moves forward to the next element satisfying f and reports whether
// one was found.
func (it *Iterator[T]) NextTo(f func(index int, value interface{}) bool) bool {
	for it.Next() {
		if f(it.index, it.Value()) {
			return true
		}
	}
	return false
}

// PrevTo moves back to the previous element satisfying f and reports whether
// one was found.
func (it *Iterator[T]) PrevTo(f func(index int, value interface{}) bool) bool {
	for it.Prev() {
		if f(it.index, it.Value()) {
			return true
		}
	}
	return false
}

func (it *Iterator[T]) within() bool {
	return it.index >= 0 && it.index < it.d.Len()
}
