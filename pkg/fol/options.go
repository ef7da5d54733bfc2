package fol

import (
	"runtime"

	"go.uber.org/zap"
)

// config carries the tunable behavior shared by clause stores and inference
// engines.
type config struct {
	logger         *zap.Logger
	workers        int
	removeSubsumed bool
}

func defaultConfig() config {
	return config{
		logger:         zap.NewNop(),
		workers:        runtime.GOMAXPROCS(0),
		removeSubsumed: true,
	}
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a clause store or inference engine.
type Option func(*config)

// WithLogger attaches a structured logger. Stores and engines emit
// debug-level events for tells, derivations, subsumption rejections, and
// cancellations. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithWorkers bounds the number of goroutines the resolution engine uses to
// expand a search frontier. Values below one restore the default of
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n >= 1 {
			cfg.workers = n
		} else {
			cfg.workers = runtime.GOMAXPROCS(0)
		}
	}
}

// WithBackwardSubsumption controls whether a subsumption-filtered store, on
// accepting a new clause, also removes stored clauses the newcomer subsumes.
// Forward subsumption (rejecting newcomers an existing clause subsumes) is
// always on. Backward subsumption defaults to on.
func WithBackwardSubsumption(enabled bool) Option {
	return func(cfg *config) {
		cfg.removeSubsumed = enabled
	}
}
