package main

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ic-timon/pairdist/logging"
)

const (
	// Flags.
	flagLogLevel    = "log-level"
	flagLogJSON     = "log-json"
	flagThreads     = "threads"
	flagBlockSize   = "blocksize"
	flagFile        = "file"
	flagMmap        = "mmap"
	flagOffheap     = "offheap"
	flagOutput      = "output"
	flagPushGateway = "push-gateway"
	flagPoints      = "points"
	flagSeed        = "seed"
	flagBlockSizes  = "blocksizes"
	flagReport      = "report"

	defaultFile = "./cells"
	metricsJob  = "pairhist"
)

func newApp() *cli.App {
	var logger *zap.Logger

	return &cli.App{
		Name:  "pairhist",
		Usage: "histogram of pairwise distances between 3D points",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  flagLogJSON,
				Usage: "write logs as JSON",
			},
		},
		Before: func(c *cli.Context) error {
			l, err := logging.New(c.String(flagLogLevel), c.Bool(flagLogJSON))
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "compute the distance histogram of a point file",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    flagThreads,
						Aliases: []string{"t"},
						Usage:   "kernel worker count (0 = number of CPUs)",
					},
					&cli.IntFlag{
						Name:    flagBlockSize,
						Aliases: []string{"n"},
						Value:   10000,
						Usage:   "points per block",
					},
					fileFlag(),
					mmapFlag(),
					offheapFlag(),
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the histogram to `FILE` (.zst and .lz4 are compressed); stdout if empty",
					},
					&cli.StringFlag{
						Name:  flagPushGateway,
						Usage: "push run metrics to the Pushgateway at `URL`",
					},
				},
				Action: func(c *cli.Context) error {
					return runCommand(c, logger)
				},
			},
			{
				Name:  "count",
				Usage: "count the valid records of a point file",
				Flags: []cli.Flag{fileFlag(), mmapFlag()},
				Action: func(c *cli.Context) error {
					return countCommand(c, logger)
				},
			},
			{
				Name:  "generate",
				Usage: "write a point file with coordinates uniform in [-10, 10)",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     flagPoints,
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "number of points",
					},
					&cli.StringFlag{
						Name:     flagOutput,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write points to `FILE`",
					},
					&cli.Int64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "random seed",
					},
				},
				Action: func(c *cli.Context) error {
					return generateCommand(c, logger)
				},
			},
			{
				Name:  "bench",
				Usage: "sweep block sizes and worker counts and write a CSV report",
				Flags: []cli.Flag{
					fileFlag(),
					mmapFlag(),
					offheapFlag(),
					&cli.IntSliceFlag{
						Name:  flagBlockSizes,
						Value: cli.NewIntSlice(1000, 5000, 10000, 50000),
						Usage: "block sizes to try",
					},
					&cli.IntSliceFlag{
						Name:    flagThreads,
						Aliases: []string{"t"},
						Value:   cli.NewIntSlice(1, 2, 4, 8),
						Usage:   "worker counts to try",
					},
					&cli.StringFlag{
						Name:  flagReport,
						Usage: "CSV report `FILE` (default report/sweep_<date>.csv)",
					},
				},
				Action: func(c *cli.Context) error {
					return benchCommand(c, logger)
				},
			},
		},
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFile,
		Aliases: []string{"f"},
		Value:   defaultFile,
		Usage:   "read points from `FILE`",
	}
}

func mmapFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagMmap,
		Usage: "map the point file into memory instead of reading through the file cursor",
	}
}

func offheapFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagOffheap,
		Usage: "allocate point blocks outside the Go heap (requires cgo)",
	}
}
