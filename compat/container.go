// Package compat exposes deques through the container interfaces of
// github.com/emirpasic/gods, so they can be handed to code written against
// gods lists and queues.
package compat

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/containers"

	"github.com/lucasgdosr/deque/v2"
)

var (
	_ containers.Container                = (*Container[int])(nil)
	_ containers.ReverseIteratorWithIndex = (*Iterator[int])(nil)
)

// Container adapts a *deque.Deque to containers.Container. It holds no state
// of its own: changes made through either side are visible on the other.
type Container[T any] struct {
	d *deque.Deque[T]
}

// Wrap returns a Container backed by d.
func Wrap[T any](d *deque.Deque[T]) *Container[T] {
	return &Container[T]{d: d}
}

// Deque returns the wrapped deque.
func (c *Container[T]) Deque() *deque.Deque[T] { return c.d }

func (c *Container[T]) Empty() bool { return c.d.Empty() }

func (c *Container[T]) Size() int { return c.d.Len() }

func (c *Container[T]) Clear() { c.d.Clear() }

// Values returns the elements in order, boxed.
func (c *Container[T]) Values() []interface{} {
	values := make([]interface{}, 0, c.d.Len())
	for v := range c.d.Iter() {
		values = append(values, v)
	}
	return values
}

func (c *Container[T]) String() string {
	str := "Deque\n"
	values := make([]string, 0, c.d.Len())
	for v := range c.d.Iter() {
		values = append(values, fmt.Sprintf("%v", v))
	}
	str += strings.Join(values, ", ")
	return str
}

// Iterator returns a stateful iterator positioned before the first element.
// Modifying the deque while iterating invalidates it.
func (c *Container[T]) Iterator() *Iterator[T] {
	it := &Iterator[T]{d: c.d}
	it.Begin()
	return it
}
