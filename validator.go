package docquery

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/docquery-io/docquery/internal/metrics"
	"github.com/docquery-io/docquery/query"
	"github.com/docquery-io/docquery/schema"
)

// Validator is the entry point for schema-aware expression validation.
// It resolves collections in a registry, applies the three grammar
// validators, and optionally reports outcomes to a logger and
// Prometheus. A Validator is immutable after construction and safe for
// concurrent use.
type Validator struct {
	reg          *schema.Registry
	log          *zap.Logger
	observe      bool
	maxJoinDepth int
}

// New creates a Validator over the given registry.
func New(reg *schema.Registry, opts ...Option) *Validator {
	v := &Validator{
		reg:          reg,
		log:          zap.NewNop(),
		maxJoinDepth: query.DefaultMaxJoinDepth,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Registry returns the registry the validator reads from.
func (v *Validator) Registry() *schema.Registry { return v.reg }

// Filter validates a filter expression against the named collection.
func (v *Validator) Filter(collection, expr string) error {
	return v.run("filter", collection, expr, func(col *schema.Collection) error {
		return query.ValidateFilterDepth(expr, col, v.reg, v.maxJoinDepth)
	})
}

// Sort validates a sort expression against the named collection.
func (v *Validator) Sort(collection, expr string) error {
	return v.run("sort", collection, expr, func(col *schema.Collection) error {
		return query.ValidateSort(expr, col, v.reg)
	})
}

// Eval validates a scoring expression against the named collection.
func (v *Validator) Eval(collection, expr string) error {
	return v.run("eval", collection, expr, func(col *schema.Collection) error {
		return query.ValidateEval(expr, col, v.reg)
	})
}

func (v *Validator) run(grammar, collection, expr string, fn func(*schema.Collection) error) error {
	var err error
	col, ok := v.reg.Lookup(collection)
	if !ok {
		err = &query.Error{
			Kind:    query.KindSchema,
			Message: fmt.Sprintf("unknown collection '%s'", collection),
		}
	} else {
		err = fn(col)
	}

	if v.observe {
		metrics.Observe(grammar, err)
	}
	if err != nil {
		v.log.Debug("expression rejected",
			zap.String("grammar", grammar),
			zap.String("collection", collection),
			zap.String("expression", expr),
			zap.Error(err),
		)
		return err
	}
	v.log.Debug("expression accepted",
		zap.String("grammar", grammar),
		zap.String("collection", collection),
		zap.String("expression", expr),
	)
	return nil
}
