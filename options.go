package docquery

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/docquery-io/docquery/internal/metrics"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for debug-level outcome logging.
// The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMetrics registers Prometheus validation metrics with reg and
// enables outcome counting on this Validator.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(v *Validator) {
		metrics.Register(reg)
		v.observe = true
	}
}

// WithMaxJoinDepth caps the nesting of $collection(...) references in
// filter expressions.
func WithMaxJoinDepth(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxJoinDepth = n
		}
	}
}
