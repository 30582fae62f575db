package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/docquery-io/docquery/query"
)

// Validation Prometheus metrics.
var (
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docquery",
			Name:      "validations_total",
			Help:      "Total number of expression validations",
		},
		[]string{"grammar", "status"},
	)

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docquery",
			Name:      "validation_errors_total",
			Help:      "Validation failures by error kind",
		},
		[]string{"grammar", "kind"},
	)
)

var registered bool

// Register registers the validation metrics with the given registerer.
// Subsequent calls are no-ops.
func Register(reg prometheus.Registerer) {
	if registered {
		return
	}
	reg.MustRegister(ValidationsTotal)
	reg.MustRegister(ValidationErrorsTotal)
	registered = true
}

// Observe counts one validation outcome for the given grammar.
func Observe(grammar string, err error) {
	if err == nil {
		ValidationsTotal.WithLabelValues(grammar, "valid").Inc()
		return
	}
	ValidationsTotal.WithLabelValues(grammar, "invalid").Inc()

	kind := "unknown"
	var qe *query.Error
	if errors.As(err, &qe) {
		kind = qe.Kind.String()
	}
	ValidationErrorsTotal.WithLabelValues(grammar, kind).Inc()
}
