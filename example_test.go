package deque_test

import (
	"errors"
	"fmt"

	"github.com/lucasgdosr/deque/v2"
)

func Example() {
	d, err := deque.New(deque.WithChunkSize[int](4))
	if err != nil {
		panic(err)
	}
	for i := 1; i <= 5; i++ {
		_ = d.PushBack(i)
	}
	_ = d.PushFront(0)
	d.Erase(d.CursorAt(2))

	fmt.Println(d.MakeSliceCopy(), d.Chunks())
	// Output: [0 1 3 4 5] 2
}

func ExampleDeque_Insert() {
	d, _ := deque.FromSlice([]string{"a", "c", "d"})
	c, _ := d.Insert(d.CursorAt(1), "b")
	fmt.Println(c.Value(), d.MakeSliceCopy())
	// Output: b [a b c d]
}

func ExampleDeque_Backward() {
	d, _ := deque.FromSlice([]int{1, 2, 3})
	for i, v := range d.Backward() {
		fmt.Println(i, v)
	}
	// Output:
	// 2 3
	// 1 2
	// 0 1
}

func ExampleCursor_Reverse() {
	d, _ := deque.FromSlice([]int{1, 2, 3, 4})
	for c := d.RBegin(); !c.Equal(d.REnd()); c = c.Next() {
		fmt.Print(c.Value(), " ")
	}
	fmt.Println()
	// Output: 4 3 2 1
}

func ExampleWithConstructor() {
	errNegative := errors.New("negative")
	d, _ := deque.New(deque.WithConstructor(func(v int) (int, error) {
		if v < 0 {
			return 0, errNegative
		}
		return v, nil
	}))
	fmt.Println(d.PushBack(-1), d.Len())
	// Output: element construction failed: negative 0
}

func ExamplePool() {
	pool := deque.NewPool[int](deque.PoolConfig{MaxChunks: 2})
	d, _ := deque.New(deque.WithChunkSize[int](2), deque.WithAllocator[int](pool))
	for i := 0; i < 4; i++ {
		if err := d.PushBack(i); err != nil {
			fmt.Println(err)
		}
	}
	fmt.Println(d.MakeSliceCopy(), pool.Live())
	// Output:
	// allocation failed: chunk limit reached
	// [0 1 2] 2
}
