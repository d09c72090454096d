// Package metrics records counters for a histogram run in a Prometheus
// registry and can push them to a Pushgateway when the run ends.
//
// A nil *Recorder is valid and records nothing, so callers never need to
// check whether metrics are configured.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "pairdist"

// Recorder holds the run's collectors.
type Recorder struct {
	reg *prometheus.Registry

	blocksRead     prometheus.Counter
	pointsDecoded  prometheus.Counter
	partialBlocks  prometheus.Counter
	readErrors     prometheus.Counter
	kernelCalls    *prometheus.CounterVec // by kind: self | cross
	pairsBinned    prometheus.Counter
	pairsDropped   prometheus.Counter
	kernelDuration prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		blocksRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_read_total",
			Help:      "Blocks loaded from the point file.",
		}),
		pointsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_decoded_total",
			Help:      "Point records decoded across all block loads.",
		}),
		partialBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_blocks_total",
			Help:      "Block loads that decoded fewer points than expected.",
		}),
		readErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_errors_total",
			Help:      "Block loads that failed to seek or read.",
		}),
		kernelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kernel_calls_total",
			Help:      "Pair kernel invocations, partitioned by self or cross block pair.",
		}, []string{"kind"}),
		pairsBinned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_binned_total",
			Help:      "Point pairs counted into a histogram bin.",
		}),
		pairsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_dropped_total",
			Help:      "Point pairs whose distance fell outside the binning range.",
		}),
		kernelDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kernel_seconds",
			Help:      "Wall time of one pair kernel invocation.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}),
	}
	r.reg.MustRegister(
		r.blocksRead,
		r.pointsDecoded,
		r.partialBlocks,
		r.readErrors,
		r.kernelCalls,
		r.pairsBinned,
		r.pairsDropped,
		r.kernelDuration,
	)
	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// BlockRead records one block load. partial marks a load that decoded fewer points than expected.
func (r *Recorder) BlockRead(decoded int, partial bool, err error) {
	if r == nil {
		return
	}
	r.blocksRead.Inc()
	r.pointsDecoded.Add(float64(decoded))
	if partial {
		r.partialBlocks.Inc()
	}
	if err != nil {
		r.readErrors.Inc()
	}
}

// KernelCall records one pair kernel invocation.
func (r *Recorder) KernelCall(self bool, binned, dropped uint64, d time.Duration) {
	if r == nil {
		return
	}
	kind := "cross"
	if self {
		kind = "self"
	}
	r.kernelCalls.WithLabelValues(kind).Inc()
	r.pairsBinned.Add(float64(binned))
	r.pairsDropped.Add(float64(dropped))
	r.kernelDuration.Observe(d.Seconds())
}

// Push sends the current values to the Pushgateway at url under job.
func (r *Recorder) Push(url, job string) error {
	if r == nil || url == "" {
		return nil
	}
	if job == "" {
		job = namespace
	}
	if err := push.New(url, job).Gatherer(r.reg).Push(); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", url, err)
	}
	return nil
}
