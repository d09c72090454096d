package engine

import (
	"go.uber.org/zap"

	"github.com/ic-timon/pairdist/logging"
	"github.com/ic-timon/pairdist/metrics"
)

type options struct {
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger for warnings and progress. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records block reads and kernel calls into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNop(o.logger)
	return o
}
