package operate

import "log/slog"

// OperatorBuilderOption is a functional option for configuring an Operator.
type OperatorBuilderOption func(*operator)

// WithWorkers sets the number of concurrent fragment builds.
func WithWorkers(n int) OperatorBuilderOption {
	return func(o *operator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithKind registers a data type at construction, replacing a built-in one of the same name.
func WithKind(dataType string, kind Kind) OperatorBuilderOption {
	return func(o *operator) {
		o.kinds[dataType] = kind
	}
}

// WithLogger sets the logger. Defaults to the environment's logger, then slog.Default.
func WithLogger(logger *slog.Logger) OperatorBuilderOption {
	return func(o *operator) {
		if logger != nil {
			o.logger = logger
		}
	}
}
