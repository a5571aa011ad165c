package deque

import "errors"

// Allocator hands out the raw storage a Deque is built from: fixed-size chunks
// of elements and the directory that orders them. An Allocator never
// initializes or finalizes elements; the Deque does that itself.
//
// A chunk passed to Free is never used by the Deque again, and every chunk
// obtained from Allocate is eventually handed back to Free unless the Deque
// is simply dropped, in which case the garbage collector reclaims it.
type Allocator[T any] interface {
	// Allocate returns a chunk with len(chunk) == size.
	Allocate(size int) ([]T, error)
	// Free takes back a chunk previously returned by Allocate.
	Free(chunk []T)
	// AllocateDirectory returns a directory with size nil slots.
	AllocateDirectory(size int) ([][]T, error)
	// FreeDirectory takes back a directory previously returned by
	// AllocateDirectory. Its slots have already been copied elsewhere.
	FreeDirectory(slots [][]T)
}

var _ Allocator[int] = (*Pool[int])(nil)

// PoolConfig bounds a Pool. Zero values mean no bound.
type PoolConfig struct {
	// MaxFree is the number of released chunks kept for reuse. Chunks
	// released beyond it are left to the garbage collector.
	MaxFree int
	// MaxChunks is the number of chunks that may be live at once.
	MaxChunks int
	// MaxDirectory is the largest directory the pool hands out.
	MaxDirectory int
}

// Pool is the default Allocator. It keeps a free list of released chunks so
// that a deque oscillating around a chunk boundary does not allocate on every
// crossing. A Pool is not safe for concurrent use; share one between deques
// only if their writers are serialized.
type Pool[T any] struct {
	config PoolConfig
	free   [][]T
	live   int
}

// NewPool returns a Pool bounded by config.
func NewPool[T any](config PoolConfig) *Pool[T] {
	return &Pool[T]{config: config}
}

// Live returns the number of chunks handed out and not yet freed.
func (p *Pool[T]) Live() int { return p.live }

// Idle returns the number of released chunks waiting on the free list.
func (p *Pool[T]) Idle() int { return len(p.free) }

func (p *Pool[T]) Allocate(size int) ([]T, error) {
	if p.config.MaxChunks > 0 && p.live >= p.config.MaxChunks {
		return nil, ErrChunkLimit
	}
	p.live++
	for n := len(p.free); n > 0; n = len(p.free) {
		chunk := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		if len(chunk) == size {
			return chunk, nil
		}
	}
	return make([]T, size), nil
}

// Free clears the chunk so it holds no references and keeps it for reuse if
// the free list has room.
func (p *Pool[T]) Free(chunk []T) {
	if chunk == nil {
		return
	}
	p.live--
	if p.config.MaxFree > 0 && len(p.free) >= p.config.MaxFree {
		return
	}
	clear(chunk)
	p.free = append(p.free, chunk)
}

func (p *Pool[T]) AllocateDirectory(size int) ([][]T, error) {
	if p.config.MaxDirectory > 0 && size > p.config.MaxDirectory {
		return nil, ErrDirectoryLimit
	}
	return make([][]T, size), nil
}

// FreeDirectory drops the directory; only chunks are pooled.
func (*Pool[T]) FreeDirectory([][]T) {}

/*****************************************************************************
 * ALLOCATOR ERRORS
 *****************************************************************************/

// ErrChunkLimit is returned by a Pool asked for more live chunks than its
// MaxChunks.
var ErrChunkLimit = errors.New("chunk limit reached")

// ErrDirectoryLimit is returned by a Pool asked for a directory larger than
// its MaxDirectory.
var ErrDirectoryLimit = errors.New("directory limit reached")
