package engine

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ic-timon/pairdist/histogram"
	"github.com/ic-timon/pairdist/metrics"
	"github.com/ic-timon/pairdist/pointfile"
	"github.com/ic-timon/pairdist/simd"
)

// Result is the outcome of a Run.
type Result struct {
	Histogram     histogram.Histogram
	Points        uint64        // total point count N given to Run
	Blocks        int           // ceil(N / BlockSize)
	BlockPairs    int           // kernel invocations, self pairs included
	Pairs         uint64        // point pairs evaluated
	Dropped       uint64        // pairs outside the binning range
	PartialBlocks int           // block loads that decoded fewer points than expected
	ReadErrors    int           // block loads that failed to seek or read
	Elapsed       time.Duration // wall time of the block loop
}

// WriteTo writes the histogram in output format.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	return r.Histogram.WriteTo(w)
}

// Digest returns the histogram fingerprint as 16 hex digits.
func (r *Result) Digest() string {
	return fmt.Sprintf("%016x", r.Histogram.Digest())
}

// Engine drives the block-pair loop. It owns exactly two point blocks and the
// kernel worker pool; a single goroutine performs all file I/O.
type Engine struct {
	cfg     *Config
	log     *zap.Logger
	metrics *metrics.Recorder

	pool   *pointfile.Pool
	blockA pointfile.Block
	blockB pointfile.Block
	kernel *Kernel
}

// New validates cfg, allocates the two blocks and starts the kernel workers.
// Uses default config if cfg is nil.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	cfg = cfg.OrDefault()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	pool := pointfile.NewPool(cfg.BlockSize)
	pool.UseOffheap = cfg.UseOffheap
	e := &Engine{
		cfg:     cfg,
		log:     o.logger,
		metrics: o.metrics,
		pool:    pool,
		blockA:  pool.AllocBlock(),
		blockB:  pool.AllocBlock(),
		kernel:  NewKernel(cfg.Workers, cfg.BlockSize, cfg.RowChunk),
	}
	e.log.Debug("engine ready",
		zap.Int("workers", cfg.Workers),
		zap.Int("block_size", cfg.BlockSize),
		zap.Int64("block_bytes", cfg.BlockBytes()),
		zap.Bool("offheap", cfg.UseOffheap),
		zap.String("kernel", simd.Desc()),
	)
	return e, nil
}

// Config returns the normalised configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Run computes the histogram of the first total points of src, which must be
// laid out as RecordWidth-byte records. Block a is read from byte offset
// a*BlockSize*RecordWidth. Short or failed block reads are logged as warnings
// and the run continues with the points actually decoded.
func (e *Engine) Run(src io.ReadSeeker, total uint64) (*Result, error) {
	if err := CheckPoints(total); err != nil {
		return nil, err
	}
	bs := uint64(e.cfg.BlockSize)
	numBlocks := int((total + bs - 1) / bs)
	res := &Result{Points: total, Blocks: numBlocks}
	reader := pointfile.NewBlockReader(src, e.cfg.BlockSize)
	progress := rate.Sometimes{Interval: e.cfg.ProgressInterval}

	e.log.Info("run started",
		zap.Uint64("points", total),
		zap.Int("blocks", numBlocks),
		zap.Int("block_size", e.cfg.BlockSize),
		zap.Int("workers", e.kernel.Workers()),
	)
	start := time.Now()
	for a := 0; a < numBlocks; a++ {
		e.load(reader, a, e.blockA, blockLen(a, bs, total), res)
		e.accumulate(e.blockA, e.blockA, res)

		for b := a + 1; b < numBlocks; b++ {
			progress.Do(func() {
				e.log.Info("progress", zap.Int("a", a), zap.Int("b", b), zap.Int("blocks", numBlocks))
			})
			e.load(reader, b, e.blockB, blockLen(b, bs, total), res)
			e.accumulate(e.blockA, e.blockB, res)
		}
	}
	res.Elapsed = time.Since(start)

	e.log.Info("run complete",
		zap.Uint64("pairs", res.Pairs),
		zap.Uint64("dropped", res.Dropped),
		zap.Int("block_pairs", res.BlockPairs),
		zap.Int("partial_blocks", res.PartialBlocks),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("digest", res.Digest()),
	)
	return res, nil
}

// blockLen is BlockSize except for the last block, which holds the remainder.
func blockLen(idx int, bs, total uint64) int {
	start := uint64(idx) * bs
	return int(min(bs, total-start))
}

func (e *Engine) load(r *pointfile.Reader, idx int, blk pointfile.Block, want int, res *Result) {
	offset := int64(idx) * int64(e.cfg.BlockSize) * pointfile.RecordWidth
	n, end, err := r.ReadBlock(offset, blk, want)
	partial := n != want
	if err != nil {
		res.ReadErrors++
		e.log.Warn("block read failed",
			zap.Int("block", idx),
			zap.Int64("offset", offset),
			zap.Int("decoded", n),
			zap.Error(err),
		)
	}
	if partial {
		res.PartialBlocks++
		e.log.Warn("parsed fewer points than expected",
			zap.Int("block", idx),
			zap.Int("expected", want),
			zap.Int("decoded", n),
			zap.Int64("offset", offset),
			zap.Int64("end", end),
		)
	}
	e.metrics.BlockRead(n, partial, err)
}

func (e *Engine) accumulate(a, b pointfile.Block, res *Result) {
	st := e.kernel.Accumulate(a, b, &res.Histogram)
	res.BlockPairs++
	res.Pairs += st.Pairs
	res.Dropped += st.Dropped
	e.metrics.KernelCall(st.Self, st.Binned, st.Dropped, st.Duration)
}

// Close stops the kernel workers and frees both blocks. It is safe to call more than once.
func (e *Engine) Close() {
	e.kernel.Close()
	e.pool.Close()
}
