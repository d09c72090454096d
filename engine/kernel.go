package engine

import (
	"time"

	"github.com/ic-timon/pairdist/histogram"
	"github.com/ic-timon/pairdist/pointfile"
)

// KernelStats summarises one Accumulate call.
type KernelStats struct {
	Self     bool          // a and b were the same block
	Pairs    uint64        // pairs evaluated
	Binned   uint64        // pairs counted into h
	Dropped  uint64        // pairs outside [0, MaxBin)
	Duration time.Duration // wall time
}

// Kernel computes binned distances for all point pairs between two blocks
// using a fixed pool of workers with private partial histograms.
type Kernel struct {
	pool     *kernelWorkerPool
	rowChunk int
}

// NewKernel starts workers goroutines for blocks holding up to blockCap points.
func NewKernel(workers, blockCap, rowChunk int) *Kernel {
	if workers <= 0 {
		workers = 1
	}
	if rowChunk <= 0 {
		rowChunk = defaultRowChunk
	}
	return &Kernel{
		pool:     newKernelWorkerPool(workers, blockCap),
		rowChunk: rowChunk,
	}
}

// Accumulate adds the bins of every unordered pair between a and b to h.
// When a and b are the same block only pairs i < j are counted; otherwise
// the full cross product is. Blocks are only read. The result does not
// depend on the number of workers.
func (k *Kernel) Accumulate(a, b pointfile.Block, h *histogram.Histogram) KernelStats {
	start := time.Now()
	stats := KernelStats{Self: a == b}
	if a.Len() == 0 || b.Len() == 0 {
		return stats
	}
	job := &pairJob{self: stats.Self, rowChunk: k.rowChunk}
	job.ax, job.ay, job.az = a.Columns()
	job.bx, job.by, job.bz = b.Columns()
	for _, buf := range k.pool.bufs {
		buf.ensure(len(job.bx))
	}
	k.pool.Run(job)

	for _, buf := range k.pool.bufs {
		pairs, dropped := buf.mergeInto(h)
		stats.Pairs += pairs
		stats.Dropped += dropped
	}
	stats.Binned = stats.Pairs - stats.Dropped
	stats.Duration = time.Since(start)
	return stats
}

// Workers returns the size of the worker pool.
func (k *Kernel) Workers() int {
	return len(k.pool.chans)
}

// Close stops the workers.
func (k *Kernel) Close() {
	k.pool.Close()
}
