package join

import (
	"city-comparison/core/table"

	"go.uber.org/zap"
)

// Engine joins tables. It holds no per-join state and is safe for concurrent use.
type Engine struct {
	opts       Options
	comparator *Comparator
	logger     *zap.Logger
}

// NewEngine validates opts, fills unset fields with defaults and returns an engine.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	return &Engine{
		opts: opts,
		comparator: &Comparator{
			Threshold: opts.Threshold,
			Strict:    opts.StrictMatching,
			Logger:    logger,
		},
		logger: logger,
	}, nil
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Join uses ExactJoin when both tables have the same kind and FuzzyJoin
// otherwise. The result has the left table's kind and suffix.
func (e *Engine) Join(left, right *table.Table) (*table.Table, error) {
	if left == nil || right == nil {
		return nil, &table.ConfigurationError{Reason: "join needs two tables"}
	}
	if left.Kind().Name() == right.Kind().Name() {
		return e.ExactJoin(left, right)
	}
	return e.FuzzyJoin(left, right)
}
