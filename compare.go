package deque

import (
	"cmp"
	"slices"
)

/*****************************************************************************
 * COMPARISON
 *****************************************************************************/

// Equal returns whether both Deques have the same length and the same elements
// in the same order. Two nil Deques are equal, but an empty Deque and nil are
// not. This must not be a method, otherwise Deque would be constrained to
// comparable elements.
func Equal[T comparable](d1, d2 *Deque[T]) bool {
	return d1.EqualFunc(d2, func(a, b T) bool { return a == b })
}

// EqualFunc returns whether both Deques have the same length and f reports
// every pair of elements at the same index as equal. Two nil Deques are equal,
// but an empty Deque and nil are not.
func (d1 *Deque[T]) EqualFunc(d2 *Deque[T], f func(T, T) bool) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.Len() != d2.Len() {
		return false
	}
	return d1.CompareFunc(d2, func(a, b T) int {
		if f(a, b) {
			return 0
		}
		return 1
	}) == 0
}

// Compare compares the elements of both Deques lexicographically, the way
// slices.Compare does. A nil Deque compares like an empty one.
func Compare[T cmp.Ordered](d1, d2 *Deque[T]) int {
	return d1.CompareFunc(d2, cmp.Compare[T])
}

// CompareFunc is like Compare but uses f to compare elements.
func (d1 *Deque[T]) CompareFunc(d2 *Deque[T], f func(T, T) int) int {
	a, b := d1.pull(), d2.pull()
	for {
		x, ok1 := a()
		y, ok2 := b()
		switch {
		case !ok1 && !ok2:
			return 0
		case !ok1:
			return -1
		case !ok2:
			return 1
		}
		if c := f(x, y); c != 0 {
			return c
		}
	}
}

// pull returns a pull-style walk over d's elements.
func (d *Deque[T]) pull() func() (T, bool) {
	if d == nil {
		return func() (t T, ok bool) { return }
	}
	c := d.start
	return func() (t T, ok bool) {
		if c.same(d.finish) {
			return
		}
		t = *c.slot()
		c.inc()
		return t, true
	}
}

/*****************************************************************************
 * SEARCH
 *****************************************************************************/

// Contains returns whether the element is in the Deque. This must not be a
// method, otherwise Deque would be constrained to comparable elements. It has
// the same semantics as slices.Contains.
func Contains[T comparable](d *Deque[T], t T) bool {
	return Index(d, t) >= 0
}

// ContainsFunc returns whether an element satisfying f is in the Deque. It has
// the same semantics as slices.ContainsFunc.
func (d *Deque[T]) ContainsFunc(f func(T) bool) bool {
	return d.IndexFunc(f) >= 0
}

// Index returns the index of the first ocurrence of t in the Deque or -1 if
// absent. It has the same semantics as slices.Index.
func Index[T comparable](d *Deque[T], t T) int {
	return d.IndexFunc(func(v T) bool { return v == t })
}

// IndexFunc returns the index of the first element that satisfies f in the
// Deque or -1 if none do. IndexFunc has the same semantics as
// slices.IndexFunc.
func (d *Deque[T]) IndexFunc(f func(T) bool) int {
	for i, t := range d.All() {
		if f(t) {
			return i
		}
	}
	return -1
}

/*****************************************************************************
 * AGGREGATES
 *****************************************************************************/

// Max returns the maximum element in the Deque. It must not be a method,
// otherwise Deque would be constrained to ordered elements only. Like
// slices.Max, it panics on an empty Deque.
func Max[T cmp.Ordered](d *Deque[T]) T {
	return d.MaxFunc(cmp.Compare[T])
}

// MaxFunc returns the maximum element in the Deque according to f, the first
// one if several are maximal. It panics on an empty Deque.
func (d *Deque[T]) MaxFunc(f func(T, T) int) T {
	if d.Empty() {
		panic("deque: maximum of an empty deque")
	}
	result := *d.start.slot()
	d.dir.spans(d.start, d.finish, func(s []T) bool {
		if m := slices.MaxFunc(s, f); f(m, result) > 0 {
			result = m
		}
		return true
	})
	return result
}

// Min returns the minimum element in the Deque. Like slices.Min, it panics on
// an empty Deque.
func Min[T cmp.Ordered](d *Deque[T]) T {
	return d.MinFunc(cmp.Compare[T])
}

// MinFunc returns the minimum element in the Deque according to f, the first
// one if several are minimal. It panics on an empty Deque.
func (d *Deque[T]) MinFunc(f func(T, T) int) T {
	if d.Empty() {
		panic("deque: minimum of an empty deque")
	}
	result := *d.start.slot()
	d.dir.spans(d.start, d.finish, func(s []T) bool {
		if m := slices.MinFunc(s, f); f(m, result) < 0 {
			result = m
		}
		return true
	})
	return result
}
