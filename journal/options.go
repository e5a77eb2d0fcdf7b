package journal

import (
	"errors"
	"time"
)

// ErrNilOption is returned by NewJournal when an option was configured with a nil dependency.
var ErrNilOption = errors.New("journal option must not be nil")

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
//
// Debug level: every query and append with its duration
// Info level: concurrency conflicts
// Error level: failed operations, e.g. canceled contexts.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		if logger == nil {
			return ErrNilOption
		}

		j.logger = logger

		return nil
	}
}

// WithContextualLogger sets a context-aware logger; it takes precedence over the plain Logger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(j *Journal) error {
		if logger == nil {
			return ErrNilOption
		}

		j.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
func WithMetrics(collector MetricsCollector) Option {
	return func(j *Journal) error {
		if collector == nil {
			return ErrNilOption
		}

		j.metricsCollector = collector

		return nil
	}
}

// WithTracing sets the tracing collector for the Journal.
func WithTracing(collector TracingCollector) Option {
	return func(j *Journal) error {
		if collector == nil {
			return ErrNilOption
		}

		j.tracingCollector = collector

		return nil
	}
}

// WithClock replaces time.Now, which stamps snapshots and measures durations.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) error {
		if now == nil {
			return ErrNilOption
		}

		j.now = now

		return nil
	}
}
