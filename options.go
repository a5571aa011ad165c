package deque

import (
	"fmt"
	"unsafe"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	// chunkBytes is the chunk footprint B is derived from when no explicit
	// chunk size is given.
	chunkBytes = 512

	// DefaultDirectorySize is the smallest directory a Deque starts with.
	DefaultDirectorySize = 8
)

// Constructor builds the element stored in a new slot from the value handed
// to the Deque. It runs whenever an element is constructed (pushes, inserts,
// fills, copies) and never when an existing slot is overwritten by a shift.
// An error aborts the triggering call.
type Constructor[T any] func(v T) (T, error)

// Config holds the plain settings of a Deque, decodable from configuration
// maps. Zero fields fall back to defaults.
type Config struct {
	// ChunkSize is the number of elements per chunk.
	ChunkSize int `mapstructure:"chunk-size" json:"chunkSize"`
	// DirectorySize is the minimum number of directory slots allocated at
	// construction.
	DirectorySize int `mapstructure:"directory-size" json:"directorySize"`
}

// Verify returns ErrInvalidConfig if a field is negative.
func (c Config) Verify() error {
	switch {
	case c.ChunkSize < 0:
		return fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, c.ChunkSize)
	case c.DirectorySize < 0:
		return fmt.Errorf("%w: directory size %d", ErrInvalidConfig, c.DirectorySize)
	default:
		return nil
	}
}

// ParseConfig decodes raw, as produced by a JSON, YAML or flag layer, into a
// verified Config. Unknown keys are rejected.
func ParseConfig(raw map[string]any) (Config, error) {
	var c Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c, c.Verify()
}

// Option configures a Deque at construction.
type Option[T any] func(*options[T])

type options[T any] struct {
	chunkSize     int
	directorySize int
	alloc         Allocator[T]
	construct     Constructor[T]
	log           *zap.Logger
}

// WithChunkSize overrides the number of elements per chunk. Values <= 0 keep
// the default of 512 bytes worth of elements.
func WithChunkSize[T any](n int) Option[T] {
	return func(o *options[T]) { o.chunkSize = n }
}

// WithDirectorySize sets the minimum directory size allocated at
// construction. Values <= 0 keep DefaultDirectorySize.
func WithDirectorySize[T any](n int) Option[T] {
	return func(o *options[T]) { o.directorySize = n }
}

// WithAllocator replaces the default Pool.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(o *options[T]) { o.alloc = a }
}

// WithConstructor installs a hook run on every element construction.
func WithConstructor[T any](f Constructor[T]) Option[T] {
	return func(o *options[T]) { o.construct = f }
}

// WithLogger sets the logger used for directory and allocation events.
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(o *options[T]) { o.log = log }
}

// WithConfig applies every non-zero field of c.
func WithConfig[T any](c Config) Option[T] {
	return func(o *options[T]) {
		if c.ChunkSize > 0 {
			o.chunkSize = c.ChunkSize
		}
		if c.DirectorySize > 0 {
			o.directorySize = c.DirectorySize
		}
	}
}

func buildOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	o.chunkSize = chunkSize[T](o.chunkSize)
	if o.directorySize <= 0 {
		o.directorySize = DefaultDirectorySize
	}
	if o.alloc == nil {
		o.alloc = NewPool[T](PoolConfig{})
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o
}

// chunkSize returns the number of T per chunk: the override if positive,
// else as many elements as fit in chunkBytes, and at least one.
func chunkSize[T any](override int) int {
	if override > 0 {
		return override
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		size = 1
	}
	if size < chunkBytes {
		return int(chunkBytes / size)
	}
	return 1
}
