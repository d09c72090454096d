package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ic-timon/pairdist/bench"
	"github.com/ic-timon/pairdist/engine"
	"github.com/ic-timon/pairdist/gen"
	"github.com/ic-timon/pairdist/histogram"
	"github.com/ic-timon/pairdist/metrics"
	"github.com/ic-timon/pairdist/pointfile"
	"github.com/ic-timon/pairdist/pointfile/store"
)

// countPoints returns the number of valid records in src. Mapped sources are
// counted in parallel chunks.
func countPoints(src store.Source, workers int) (uint64, error) {
	if data := src.Bytes(); data != nil {
		return pointfile.CountBytes(data, workers)
	}
	return pointfile.Count(src)
}

func runCommand(c *cli.Context, logger *zap.Logger) (err error) {
	if err := engine.CheckBlockSize(c.Int(flagBlockSize)); err != nil {
		return err
	}
	cfg := (&engine.Config{
		Workers:    c.Int(flagThreads),
		BlockSize:  c.Int(flagBlockSize),
		UseOffheap: c.Bool(flagOffheap),
	}).OrDefault()

	var rec *metrics.Recorder
	gateway := c.String(flagPushGateway)
	if gateway != "" {
		rec = metrics.NewRecorder()
	}

	// config errors are reported before the file is touched
	eng, err := engine.New(cfg, engine.WithLogger(logger), engine.WithMetrics(rec))
	if err != nil {
		return err
	}
	defer eng.Close()

	path := c.String(flagFile)
	src, err := store.Open(path, c.Bool(flagMmap))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	total, err := countPoints(src, cfg.Workers)
	if err != nil {
		return fmt.Errorf("count %s: %w", path, err)
	}
	logger.Info("point file",
		zap.String("path", path),
		zap.String("size", humanize.IBytes(uint64(src.Size()))),
		zap.String("points", humanize.Comma(int64(total))),
		zap.Int("workers", cfg.Workers),
		zap.Int("block_size", cfg.BlockSize),
		zap.String("block_memory", humanize.IBytes(uint64(cfg.BlockBytes()))),
	)

	res, err := eng.Run(src, total)
	if err != nil {
		return err
	}
	if err := writeHistogram(c, res); err != nil {
		return err
	}
	if res.PartialBlocks > 0 {
		logger.Warn("some blocks were incomplete",
			zap.Int("partial_blocks", res.PartialBlocks),
			zap.Int("read_errors", res.ReadErrors),
		)
	}
	if err := rec.Push(gateway, metricsJob); err != nil {
		// the histogram is already written
		logger.Warn("metrics push failed", zap.Error(err))
	}
	return nil
}

func writeHistogram(c *cli.Context, res *engine.Result) (err error) {
	out := c.String(flagOutput)
	if out == "" || out == "-" {
		_, err = res.WriteTo(c.App.Writer)
		return err
	}
	sink, err := histogram.Create(out)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sink.Close()) }()
	_, err = res.WriteTo(sink)
	return err
}

func countCommand(c *cli.Context, logger *zap.Logger) (err error) {
	path := c.String(flagFile)
	src, err := store.Open(path, c.Bool(flagMmap))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	total, err := countPoints(src, engine.DefaultConfig().Workers)
	if err != nil {
		return fmt.Errorf("count %s: %w", path, err)
	}
	logger.Debug("counted", zap.String("path", path), zap.String("points", humanize.Comma(int64(total))))
	fmt.Fprintln(c.App.Writer, total)
	return nil
}

func generateCommand(c *cli.Context, logger *zap.Logger) (err error) {
	n := c.Uint64(flagPoints)
	path := c.String(flagOutput)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create point file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if err := gen.Write(f, n, c.Int64(flagSeed)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("generated point file",
		zap.String("path", path),
		zap.String("points", humanize.Comma(int64(n))),
		zap.String("size", humanize.IBytes(n*pointfile.RecordWidth)),
	)
	return nil
}

func benchCommand(c *cli.Context, logger *zap.Logger) (err error) {
	path := c.String(flagFile)
	src, err := store.Open(path, c.Bool(flagMmap))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	total, err := countPoints(src, engine.DefaultConfig().Workers)
	if err != nil {
		return fmt.Errorf("count %s: %w", path, err)
	}

	rows, sweepErr := bench.Sweep(src, total, bench.SweepConfig{
		BlockSizes: c.IntSlice(flagBlockSizes),
		Workers:    c.IntSlice(flagThreads),
		UseOffheap: c.Bool(flagOffheap),
		Logger:     logger,
	})
	// rows gathered before a failure are still reported
	report := c.String(flagReport)
	if report == "" {
		report = bench.ReportPath("sweep_")
	}
	if len(rows) > 0 {
		if err := bench.WriteCSV(rows, report); err != nil {
			return multierr.Append(sweepErr, fmt.Errorf("write report: %w", err))
		}
		logger.Info("report written", zap.String("path", report), zap.Int("rows", len(rows)))
	}
	return sweepErr
}
