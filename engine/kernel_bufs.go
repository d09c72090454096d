package engine

import "github.com/ic-timon/pairdist/histogram"

// workerBufs holds per-worker reusable buffers to avoid cross-core sharing.
type workerBufs struct {
	hist    histogram.Histogram // partial counts, merged after every kernel call
	dist    []float64           // squared distances of one row
	pairs   uint64
	dropped uint64
}

func newWorkerBufs(blockCap int) *workerBufs {
	return &workerBufs{dist: make([]float64, blockCap)}
}

// ensure grows the distance buffer to hold rows of n points.
func (b *workerBufs) ensure(n int) {
	if len(b.dist) < n {
		b.dist = make([]float64, n)
	}
}

// mergeInto adds the partial counts to h and resets the buffers.
func (b *workerBufs) mergeInto(h *histogram.Histogram) (pairs, dropped uint64) {
	if b.pairs > 0 {
		h.Add(&b.hist)
		b.hist.Reset()
	}
	pairs, dropped = b.pairs, b.dropped
	b.pairs, b.dropped = 0, 0
	return pairs, dropped
}
