package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// The shell reuses the journal's observability interfaces.

type Logger = journal.Logger
type ContextualLogger = journal.ContextualLogger
type MetricsCollector = journal.MetricsCollector
type ContextualMetricsCollector = journal.ContextualMetricsCollector
type TracingCollector = journal.TracingCollector
type SpanContext = journal.SpanContext

// Command is implemented by every command of the lending features.
// CommandType must work on the zero value, the observable wrapper calls it that way.
type Command interface {
	CommandType() string
}

// CoreCommandHandler processes one command type: query, project, decide, append.
// It carries no observability, see package observable for the decorator.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}
