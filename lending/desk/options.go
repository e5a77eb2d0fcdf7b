package desk

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

var (
	// ErrNilClock is returned by WithClock(nil).
	ErrNilClock = errors.New("clock must not be nil")

	// ErrNilCorrelationID is returned by WithCorrelationID(uuid.Nil).
	ErrNilCorrelationID = errors.New("correlation id must not be nil")
)

// Option configures a Desk.
type Option func(*config) error

func WithCorrelationID(correlationID uuid.UUID) Option {
	return func(c *config) error {
		if correlationID == uuid.Nil {
			return ErrNilCorrelationID
		}

		c.correlationID = correlationID

		return nil
	}
}

// WithClock sets where the OccurredAt of each command comes from.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return ErrNilClock
		}

		c.now = now

		return nil
	}
}

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(c *config) error {
		c.retryOptions = opts
		return nil
	}
}

// WithoutSnapshots makes every state query a full replay of the journal.
func WithoutSnapshots() Option {
	return func(c *config) error {
		c.snapshotsEnabled = false
		return nil
	}
}

func WithMetrics(collector shell.MetricsCollector) Option {
	return func(c *config) error {
		c.metricsCollector = collector
		return nil
	}
}

func WithTracing(collector shell.TracingCollector) Option {
	return func(c *config) error {
		c.tracingCollector = collector
		return nil
	}
}

func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(c *config) error {
		c.contextualLogger = logger
		return nil
	}
}

func WithLogging(logger shell.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
