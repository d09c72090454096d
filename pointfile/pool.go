package pointfile

import (
	"runtime"
	"sync"
)

// Pool hands out fixed-capacity Blocks (heap or off-heap) and frees them on Close.
type Pool struct {
	mu         sync.Mutex
	blocks     []Block
	capacity   int
	UseOffheap bool // when true and CGO available, use C.malloc
}

// NewPool creates a block pool. capacity is the number of points per block.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	p := &Pool{
		blocks:   make([]Block, 0, 2),
		capacity: capacity,
	}
	runtime.SetFinalizer(p, (*Pool).Close)
	return p
}

// AllocBlock allocates a new Block. Uses off-heap when UseOffheap is true (requires CGO).
func (p *Pool) AllocBlock() Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	var b Block
	if p.UseOffheap {
		b = allocBlockOffheap(p.capacity)
	}
	if b == nil {
		b = NewDataBlock(p.capacity)
	}
	p.blocks = append(p.blocks, b)
	return b
}

// BlockCount returns the number of allocated blocks.
func (p *Pool) BlockCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.blocks)
}

// Capacity returns the number of points each block holds.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Close releases all blocks. Call when the pool is no longer needed.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.blocks {
		b.Close()
	}
	p.blocks = nil
	runtime.SetFinalizer(p, nil)
}
