package deque

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEraseEveryPosition(t *testing.T) {
	for _, chunk := range []int{1, 3, 4} {
		for size := 1; size <= 12; size++ {
			for i := 0; i < size; i++ {
				t.Run(fmt.Sprintf("chunk=%d/size=%d/at=%d", chunk, size, i), func(t *testing.T) {
					require := require.New(t)

					pool := NewPool[int](PoolConfig{})
					d, err := FromSlice(seq(0, size), WithChunkSize[int](chunk), WithAllocator[int](pool))
					require.NoError(err)

					next := d.Erase(d.CursorAt(i))
					require.Equal(i, d.IndexOf(next))
					if i < size-1 {
						require.Equal(i+1, next.Value())
					} else {
						require.True(next.Equal(d.End()))
					}
					requireContents(t, slices.Delete(seq(0, size), i, i+1), d)
					require.Equal(d.Chunks(), pool.Live())
				})
			}
		}
	}
}

func TestEraseAt(t *testing.T) {
	require := require.New(t)

	d, err := FromSlice(seq(0, 10), WithChunkSize[int](4))
	require.NoError(err)
	require.Equal(6, d.EraseAt(6))
	require.Equal(0, d.EraseAt(0))
	require.Equal(9, d.EraseAt(7))
	requireContents(t, []int{1, 2, 3, 4, 5, 7, 8}, d)
	require.Panics(func() { d.EraseAt(7) })
}

func TestEraseAtEndPanics(t *testing.T) {
	d, err := FromSlice([]int{1}, WithChunkSize[int](4))
	require.NoError(t, err)
	require.PanicsWithValue(t, "deque: erase at end", func() { d.Erase(d.End()) })
}

func TestEraseRangeEveryPair(t *testing.T) {
	const size = 13
	for _, chunk := range []int{1, 3, 4} {
		for i := 0; i <= size; i++ {
			for j := i; j <= size; j++ {
				t.Run(fmt.Sprintf("chunk=%d/from=%d/to=%d", chunk, i, j), func(t *testing.T) {
					require := require.New(t)

					pool := NewPool[int](PoolConfig{})
					d, err := FromSlice(seq(0, size), WithChunkSize[int](chunk), WithAllocator[int](pool))
					require.NoError(err)

					next := d.EraseRange(d.CursorAt(i), d.CursorAt(j))
					require.Equal(i, d.IndexOf(next))
					requireContents(t, slices.Delete(seq(0, size), i, j), d)
					require.Equal(d.Chunks(), pool.Live())

					// The deque keeps working at both ends.
					require.NoError(d.PushFront(-1))
					require.NoError(d.PushBack(-2))
					require.Equal(size-(j-i)+2, d.Len())
				})
			}
		}
	}
}

func TestEraseRangeBackwardsPanics(t *testing.T) {
	d, err := FromSlice(seq(0, 5), WithChunkSize[int](4))
	require.NoError(t, err)
	require.PanicsWithValue(t, "deque: erase range ends before it starts", func() {
		d.EraseRange(d.CursorAt(3), d.CursorAt(1))
	})
}

func TestEraseRangeAll(t *testing.T) {
	require := require.New(t)

	pool := NewPool[int](PoolConfig{})
	d, err := FromSlice(seq(0, 30), WithChunkSize[int](4), WithAllocator[int](pool))
	require.NoError(err)

	next := d.EraseRange(d.Begin(), d.End())
	require.True(next.Equal(d.End()))
	requireContents(t, nil, d)
	require.Equal(1, pool.Live())
}

func TestEraseZeroesVacatedSlots(t *testing.T) {
	require := require.New(t)

	d, err := New(WithChunkSize[*int](4))
	require.NoError(err)
	for i := 0; i < 12; i++ {
		v := i
		require.NoError(d.PushBack(&v))
	}

	d.EraseRange(d.CursorAt(8), d.CursorAt(10))
	for node := d.start.node; node <= d.finish.node; node++ {
		for off, p := range d.dir.slots[node] {
			c := Cursor[*int]{dir: d.dir, node: node, off: off}
			live := !c.before(d.start) && c.before(d.finish)
			require.Equal(live, p != nil, "slot %d offset %d", node, off)
		}
	}
}
