package deque

import (
	"fmt"
	"math"
	"slices"
	"testing"

	ref "github.com/gammazero/deque"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const (
	opPushBack = iota
	opPushFront
	opPopBack
	opPopFront
	opInsert
	opErase
	opInsertN
	opEraseRange
	opCount
)

// model is a reference deque. Edits away from the ends go through a slice
// copy since the reference only supports access at the ends.
type model struct {
	q *ref.Deque[int]
}

func (m *model) slice() []int {
	s := make([]int, m.q.Len())
	for i := range s {
		s[i] = m.q.At(i)
	}
	return s
}

func (m *model) edit(f func([]int) []int) {
	s := f(m.slice())
	m.q = ref.New[int]()
	for _, v := range s {
		m.q.PushBack(v)
	}
}

// diff returns a description of how d differs from want, or "" if it
// doesn't.
func diff(d *Deque[int], want []int) string {
	if d.Len() != len(want) {
		return fmt.Sprintf("length %d, want %d", d.Len(), len(want))
	}
	if n := d.End().Sub(d.Begin()); n != len(want) {
		return fmt.Sprintf("cursor distance %d, want %d", n, len(want))
	}
	for i, v := range want {
		if got := d.At(i); got != v {
			return fmt.Sprintf("element %d is %d, want %d", i, got, v)
		}
	}
	if d.Empty() && d.Chunks() != 1 {
		return fmt.Sprintf("empty deque owns %d chunks", d.Chunks())
	}
	return ""
}

func TestOperationsMatchReference(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("random operations match a reference deque", prop.ForAll(
		func(chunk int, ops []int) string {
			pool := NewPool[int](PoolConfig{})
			d, err := New(WithChunkSize[int](chunk), WithAllocator[int](pool))
			if err != nil {
				return err.Error()
			}
			m := &model{q: ref.New[int]()}

			for step, op := range ops {
				v := op / opCount
				l := m.q.Len()
				switch op % opCount {
				case opPushBack:
					err = d.PushBack(v)
					m.q.PushBack(v)
				case opPushFront:
					err = d.PushFront(v)
					m.q.PushFront(v)
				case opPopBack:
					got, ok := d.PopBack()
					if ok != (l > 0) {
						return fmt.Sprintf("step %d: PopBack ok=%t with length %d", step, ok, l)
					}
					if ok && got != m.q.PopBack() {
						return fmt.Sprintf("step %d: PopBack returned %d", step, got)
					}
				case opPopFront:
					got, ok := d.PopFront()
					if ok != (l > 0) {
						return fmt.Sprintf("step %d: PopFront ok=%t with length %d", step, ok, l)
					}
					if ok && got != m.q.PopFront() {
						return fmt.Sprintf("step %d: PopFront returned %d", step, got)
					}
				case opInsert:
					i := v % (l + 1)
					err = d.InsertAt(i, v)
					m.edit(func(s []int) []int { return slices.Insert(s, i, v) })
				case opErase:
					if l == 0 {
						continue
					}
					i := v % l
					if got := d.EraseAt(i); got != m.q.At(i) {
						return fmt.Sprintf("step %d: EraseAt(%d) returned %d", step, i, got)
					}
					m.edit(func(s []int) []int { return slices.Delete(s, i, i+1) })
				case opInsertN:
					i, n := v%(l+1), v%(2*chunk+3)
					err = d.InsertN(d.CursorAt(i), n, v)
					m.edit(func(s []int) []int { return slices.Insert(s, i, slices.Repeat([]int{v}, n)...) })
				case opEraseRange:
					i := v % (l + 1)
					j := i + v%(l-i+1)
					d.EraseRange(d.CursorAt(i), d.CursorAt(j))
					m.edit(func(s []int) []int { return slices.Delete(s, i, j) })
				}
				if err != nil {
					return fmt.Sprintf("step %d: %v", step, err)
				}
				if msg := diff(d, m.slice()); msg != "" {
					return fmt.Sprintf("step %d: %s", step, msg)
				}
				if live := pool.Live(); live != d.Chunks() {
					return fmt.Sprintf("step %d: %d live chunks for %d in use", step, live, d.Chunks())
				}
			}
			return ""
		},
		gen.IntRange(1, 6),
		gen.SliceOf(gen.IntRange(0, math.MaxInt32)),
	))

	properties.TestingRun(t)
}

func TestRoundTrips(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("push front then pop front restores the deque", prop.ForAll(
		func(chunk int, vs []int, x int) string {
			d, err := FromSlice(vs, WithChunkSize[int](chunk))
			if err != nil {
				return err.Error()
			}
			if err := d.PushFront(x); err != nil {
				return err.Error()
			}
			if got, _ := d.PopFront(); got != x {
				return fmt.Sprintf("popped %d, want %d", got, x)
			}
			return diff(d, vs)
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.Int()),
		gen.Int(),
	))

	properties.Property("inserting then erasing a range restores the deque", prop.ForAll(
		func(chunk int, vs []int, at, n int) string {
			d, err := FromSlice(vs, WithChunkSize[int](chunk))
			if err != nil {
				return err.Error()
			}
			i := at % (len(vs) + 1)
			if err := d.InsertN(d.CursorAt(i), n, -1); err != nil {
				return err.Error()
			}
			next := d.EraseRange(d.CursorAt(i), d.CursorAt(i+n))
			if d.IndexOf(next) != i {
				return fmt.Sprintf("erase returned index %d, want %d", d.IndexOf(next), i)
			}
			return diff(d, vs)
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.Int()),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 40),
	))

	properties.Property("jumps match repeated steps", prop.ForAll(
		func(chunk int, size, from, n int) string {
			d, err := Filled(size, 0, WithChunkSize[int](chunk))
			if err != nil {
				return err.Error()
			}
			i := from % (size + 1)
			n %= size + 1 - i
			c := d.CursorAt(i)
			jumped := c.Add(n)
			for k := 0; k < n; k++ {
				c = c.Next()
			}
			if !jumped.Equal(c) {
				return fmt.Sprintf("Add(%d) from %d disagrees with stepping", n, i)
			}
			if jumped.Sub(d.CursorAt(i)) != n {
				return fmt.Sprintf("Sub after Add(%d) from %d is %d", n, i, jumped.Sub(d.CursorAt(i)))
			}
			if back := jumped.Add(-n); !back.Equal(d.CursorAt(i)) {
				return fmt.Sprintf("Add(-%d) does not undo Add(%d)", n, n)
			}
			return ""
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 60),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
