package engine

import (
	"sync"
	"sync/atomic"

	"github.com/ic-timon/pairdist/histogram"
	"github.com/ic-timon/pairdist/simd"
)

// pairJob is one kernel call shared by every worker. Workers claim rows of
// block A in chunks of rowChunk through next until all rows are taken.
type pairJob struct {
	ax, ay, az []int16
	bx, by, bz []int16
	self       bool // upper triangle only: j > i
	rowChunk   int
	next       atomic.Int64
	wg         sync.WaitGroup
}

// kernelWorkerPool is a resident worker pool, one channel and one buffer set per worker.
type kernelWorkerPool struct {
	chans []chan *pairJob
	bufs  []*workerBufs
	wg    sync.WaitGroup
	once  sync.Once
}

// newKernelWorkerPool creates and starts nWorkers workers for blocks of up to blockCap points.
func newKernelWorkerPool(nWorkers, blockCap int) *kernelWorkerPool {
	p := &kernelWorkerPool{
		chans: make([]chan *pairJob, nWorkers),
		bufs:  make([]*workerBufs, nWorkers),
	}
	for i := 0; i < nWorkers; i++ {
		p.chans[i] = make(chan *pairJob, 1)
		p.bufs[i] = newWorkerBufs(blockCap)
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *kernelWorkerPool) worker(idx int) {
	defer p.wg.Done()
	buf := p.bufs[idx]
	for job := range p.chans[idx] {
		job.run(buf)
		job.wg.Done()
	}
}

// Run hands job to every worker and waits until all rows are processed.
func (p *kernelWorkerPool) Run(job *pairJob) {
	job.wg.Add(len(p.chans))
	for _, ch := range p.chans {
		ch <- job
	}
	job.wg.Wait()
}

// Close stops the workers and waits for them to exit. Later calls are no-ops.
func (p *kernelWorkerPool) Close() {
	p.once.Do(func() {
		for i := range p.chans {
			close(p.chans[i])
		}
	})
	p.wg.Wait()
}

func (job *pairJob) run(buf *workerBufs) {
	na, nb := len(job.ax), len(job.bx)
	chunk := int64(job.rowChunk)
	for {
		start := int(job.next.Add(chunk) - chunk)
		if start >= na {
			return
		}
		end := min(start+job.rowChunk, na)
		for i := start; i < end; i++ {
			j0 := 0
			if job.self {
				j0 = i + 1
			}
			if j0 >= nb {
				continue
			}
			n := simd.SquaredDistances(job.ax[i], job.ay[i], job.az[i],
				job.bx[j0:], job.by[j0:], job.bz[j0:], buf.dist)
			for _, sq := range buf.dist[:n] {
				if bin, ok := histogram.Bin(sq); ok {
					buf.hist[bin]++
				} else {
					buf.dropped++
				}
			}
			buf.pairs += uint64(n)
		}
	}
}
