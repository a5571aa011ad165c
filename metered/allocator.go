// Package metered instruments deque allocators with Prometheus metrics.
package metered

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lucasgdosr/deque/v2"
)

var _ deque.Allocator[int] = (*Allocator[int])(nil)

// Allocator wraps another deque.Allocator and counts what flows through it.
// Like the allocator it wraps, it is not safe for concurrent use.
type Allocator[T any] struct {
	metrics
	allocator deque.Allocator[T]
}

// NewAllocator registers the metrics of a new Allocator under namespace and
// returns it. A nil allocator wraps a default deque.Pool.
func NewAllocator[T any](
	namespace string,
	registerer prometheus.Registerer,
	allocator deque.Allocator[T],
) (*Allocator[T], error) {
	if allocator == nil {
		allocator = deque.NewPool[T](deque.PoolConfig{})
	}
	a := &Allocator[T]{allocator: allocator}
	return a, a.metrics.Initialize(namespace, registerer)
}

func (a *Allocator[T]) Allocate(size int) ([]T, error) {
	chunk, err := a.allocator.Allocate(size)
	if err != nil {
		a.allocationFailures.Inc()
		return nil, err
	}
	a.chunksAllocated.Inc()
	a.liveChunks.Inc()
	return chunk, nil
}

func (a *Allocator[T]) Free(chunk []T) {
	a.allocator.Free(chunk)
	a.chunksFreed.Inc()
	a.liveChunks.Dec()
}

func (a *Allocator[T]) AllocateDirectory(size int) ([][]T, error) {
	slots, err := a.allocator.AllocateDirectory(size)
	if err != nil {
		a.allocationFailures.Inc()
		return nil, err
	}
	a.directoriesAllocated.Inc()
	return slots, nil
}

func (a *Allocator[T]) FreeDirectory(slots [][]T) {
	a.allocator.FreeDirectory(slots)
}
