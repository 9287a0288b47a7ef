package host

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/reglet-dev/rosmsg-sdk/go/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions replaces the default string-message registry.
// The executor then owns no adapter and Adapter returns nil.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithConfig sets the host configuration. Defaults to entities.DefaultConfig().
func WithConfig(cfg entities.Config) Option {
	return func(e *Executor) {
		e.config = cfg
	}
}

// WithLogger sets the logger for host function calls and guest log records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics registers host function metrics on registerer.
// Without this option no metrics are collected.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(e *Executor) {
		e.registerer = registerer
		e.metricsEnabled = true
	}
}

// WithTracing wraps every host function call in an OpenTelemetry span
// from the global tracer provider.
func WithTracing() Option {
	return func(e *Executor) {
		e.tracing = true
	}
}
