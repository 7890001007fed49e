// Package memory implements a first-fit block allocator over a single
// pre-reserved byte buffer. Blocks are kept in strict address order and
// always partition the whole buffer; freeing coalesces with both neighbours
// so no two adjacent blocks are ever free at the same time.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/kernsim/internal/mmap"
)

// SplitThreshold is the smallest leftover worth keeping as a separate free
// block. A fit whose remainder is at or below the threshold grants the whole
// block to the caller instead of splitting.
const SplitThreshold = 16

// ErrOutOfMemory is returned by Allocate when no free block is large enough.
var ErrOutOfMemory = errors.New("memory: out of memory")

type blockStatus uint8

const (
	statusFree blockStatus = iota
	statusAllocated
)

// block describes one maximal contiguous run of bytes within the buffer.
type block struct {
	offset uint64
	size   uint64
	status blockStatus
}

// Config controls pool construction.
type Config struct {
	// PoolSize is the managed buffer capacity in bytes.
	PoolSize uint64 `json:"poolSize" yaml:"poolSize"`
	// MapAnonymous backs the buffer with an anonymous mapping instead of a
	// Go-allocated slice. Unsupported on windows.
	MapAnonymous bool `json:"mapAnonymous" yaml:"mapAnonymous"`
}

// DefaultConfig returns a 1 MiB heap-backed pool configuration.
func DefaultConfig() Config {
	return Config{PoolSize: 1 << 20}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c.PoolSize == 0 {
		return fmt.Errorf("memory.poolSize must be > 0")
	}
	return nil
}

// Pool sub-divides a fixed byte buffer into named allocations. All public
// operations take the pool lock and may block briefly under contention.
type Pool struct {
	mu     sync.Mutex
	buf    []byte
	size   uint64
	used   uint64
	blocks []block
	unmap  func([]byte) error
}

// New creates a pool managing config.PoolSize bytes; the buffer starts as a
// single free block.
func New(config Config) (*Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &Pool{size: config.PoolSize}
	if config.MapAnonymous {
		data, err := mmap.MapAnon(int(config.PoolSize))
		if err != nil {
			return nil, fmt.Errorf("failed to map pool buffer: %w", err)
		}
		p.buf = data
		p.unmap = mmap.Unmap
	} else {
		p.buf = make([]byte, config.PoolSize)
	}
	p.blocks = []block{{offset: 0, size: config.PoolSize, status: statusFree}}
	return p, nil
}

// Close releases the managed buffer. References obtained from the pool must
// not be used afterwards.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmap != nil {
		err := p.unmap(p.buf)
		p.unmap = nil
		p.buf = nil
		return err
	}
	p.buf = nil
	return nil
}

// Allocate returns a reference to n contiguous bytes using first-fit search
// in address order. A zero n yields NilRef without touching pool state; when
// no free block of length >= n exists the call fails with ErrOutOfMemory.
// The granted length may exceed n when the leftover was too small to split.
func (p *Pool) Allocate(n uint64) (Ref, error) {
	if n == 0 {
		return NilRef, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.blocks {
		if p.blocks[i].status != statusFree || p.blocks[i].size < n {
			continue
		}
		if rest := p.blocks[i].size - n; rest > SplitThreshold {
			offset := p.blocks[i].offset + n
			p.blocks[i].size = n
			p.insertAt(i+1, block{offset: offset, size: rest, status: statusFree})
		}
		p.blocks[i].status = statusAllocated
		p.used += p.blocks[i].size
		return Ref{pool: p, offset: p.blocks[i].offset, size: p.blocks[i].size, valid: true}, nil
	}
	return NilRef, fmt.Errorf("%w: requested %d bytes, %d free", ErrOutOfMemory, n, p.size-p.used)
}

// Deallocate returns the referenced block to the free pool and merges it with
// free neighbours on both sides. Nil references, references from another pool
// and references that no longer match a live allocation are ignored.
func (p *Pool) Deallocate(ref Ref) {
	if ref.IsNil() || ref.pool != p {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free(ref.offset)
}

// free releases the allocated block starting at offset and reports whether
// the offset matched one. Callers hold the pool lock.
func (p *Pool) free(offset uint64) bool {
	i := p.locate(offset)
	if i < 0 || p.blocks[i].status != statusAllocated {
		return false
	}
	p.blocks[i].status = statusFree
	p.used -= p.blocks[i].size
	if i+1 < len(p.blocks) && p.blocks[i+1].status == statusFree {
		p.blocks[i].size += p.blocks[i+1].size
		p.removeAt(i + 1)
	}
	if i > 0 && p.blocks[i-1].status == statusFree {
		p.blocks[i-1].size += p.blocks[i].size
		p.removeAt(i)
	}
	return true
}

// locate finds the index of the block starting exactly at offset, or -1.
func (p *Pool) locate(offset uint64) int {
	i := sort.Search(len(p.blocks), func(i int) bool {
		return p.blocks[i].offset >= offset
	})
	if i == len(p.blocks) || p.blocks[i].offset != offset {
		return -1
	}
	return i
}

func (p *Pool) insertAt(i int, b block) {
	p.blocks = append(p.blocks, block{})
	copy(p.blocks[i+1:], p.blocks[i:])
	p.blocks[i] = b
}

func (p *Pool) removeAt(i int) {
	p.blocks = append(p.blocks[:i], p.blocks[i+1:]...)
}

// Size returns the managed buffer capacity.
func (p *Pool) Size() uint64 {
	return p.size
}

// Used returns the number of currently allocated bytes.
func (p *Pool) Used() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used
}

// Free returns the number of currently free bytes.
func (p *Pool) Free() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size - p.used
}

// FragmentationRatio reports 1 - (largest free block / total free bytes),
// or 0 when no free memory remains.
func (p *Pool) FragmentationRatio() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fragmentation()
}

func (p *Pool) fragmentation() float64 {
	free := p.size - p.used
	if free == 0 {
		return 0
	}
	return 1 - float64(p.largestFree())/float64(free)
}

func (p *Pool) largestFree() uint64 {
	var largest uint64
	for _, b := range p.blocks {
		if b.status == statusFree && b.size > largest {
			largest = b.size
		}
	}
	return largest
}
