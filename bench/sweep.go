package bench

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ic-timon/pairdist/engine"
	"github.com/ic-timon/pairdist/logging"
)

// ErrDigestMismatch is returned when two configurations of a sweep produce
// different histograms for the same input.
var ErrDigestMismatch = errors.New("histogram digest differs between configurations")

// SweepConfig 扫描参数
type SweepConfig struct {
	BlockSizes []int
	Workers    []int
	UseOffheap bool
	Logger     *zap.Logger
}

// Sweep runs the engine over the first total points of src once per
// (block size, workers) combination and reports one Row per run. Every run
// must yield the same histogram digest.
func Sweep(src io.ReadSeeker, total uint64, sc SweepConfig) ([]Row, error) {
	log := logging.OrNop(sc.Logger)
	var rows []Row
	for _, bs := range sc.BlockSizes {
		if err := engine.CheckBlockSize(bs); err != nil {
			return rows, err
		}
		for _, w := range sc.Workers {
			row, err := runOne(src, total, &engine.Config{BlockSize: bs, Workers: w, UseOffheap: sc.UseOffheap}, log)
			if err != nil {
				return rows, fmt.Errorf("block_size=%d workers=%d: %w", bs, w, err)
			}
			log.Info("sweep point",
				zap.Int("block_size", bs),
				zap.Int("workers", w),
				zap.Float64("elapsed_ms", row.ElapsedMs),
				zap.String("pairs_per_sec", humanize.SIWithDigits(row.PairsPerSec, 2, "")),
				zap.String("heap", humanize.IBytes(uint64(row.HeapAllocMB*1024*1024))),
				zap.String("digest", row.Digest),
			)
			if len(rows) > 0 && rows[0].Digest != row.Digest {
				rows = append(rows, row)
				return rows, fmt.Errorf("%w: %s vs %s (block_size=%d workers=%d)",
					ErrDigestMismatch, rows[0].Digest, row.Digest, bs, w)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func runOne(src io.ReadSeeker, total uint64, cfg *engine.Config, log *zap.Logger) (Row, error) {
	// 引擎自身日志只保留 warn 以上，避免刷屏
	eng, err := engine.New(cfg, engine.WithLogger(log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))))
	if err != nil {
		return Row{}, err
	}
	defer eng.Close()

	GC()
	before := Take()
	res, err := eng.Run(src, total)
	if err != nil {
		return Row{}, err
	}
	after := Take()
	allocBps, gcDelta := Diff(before, after)

	row := Row{
		BlockSize:   eng.Config().BlockSize,
		Workers:     eng.Config().Workers,
		Points:      total,
		BlockPairs:  res.BlockPairs,
		ElapsedMs:   float64(res.Elapsed.Nanoseconds()) / 1e6,
		AllocMBps:   allocBps / 1024 / 1024,
		NumGC:       gcDelta,
		HeapAllocMB: float64(after.HeapAlloc) / 1024 / 1024,
		Digest:      res.Digest(),
	}
	if s := res.Elapsed.Seconds(); s > 0 {
		row.PairsPerSec = float64(res.Pairs) / s
	}
	return row, nil
}
