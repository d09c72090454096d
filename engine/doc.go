// Package engine computes the pairwise-distance histogram of a point file
// while holding at most two blocks of points in memory.
//
// Quick start:
//
//	cfg := engine.DefaultConfig()
//	cfg.Workers = 8
//	eng, err := engine.New(cfg, engine.WithLogger(logger))
//	defer eng.Close()
//	src, err := store.OpenFile("cells")
//	n, err := pointfile.Count(src)
//	res, err := eng.Run(src, n)
//	res.Histogram.WriteTo(os.Stdout)
package engine
