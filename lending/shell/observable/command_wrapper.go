package observable

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

// ErrNilCoreHandler is returned by NewCommandWrapper without a handler to wrap.
var ErrNilCoreHandler = errors.New("core handler must not be nil")

// CommandWrapper instruments any CoreCommandHandler and delegates the actual work to it.
type CommandWrapper[C shell.Command] struct {
	coreHandler      shell.CoreCommandHandler[C]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
	now              func() time.Time
}

// NewCommandWrapper creates the wrapper; the command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command](
	coreHandler shell.CoreCommandHandler[C],
	opts ...CommandOption[C],
) (*CommandWrapper[C], error) {

	if coreHandler == nil {
		return nil, ErrNilCoreHandler
	}

	var zeroCommand C

	wrapper := &CommandWrapper[C]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
		now:         time.Now,
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle runs the wrapped handler and records what happened.
func (w *CommandWrapper[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	start := w.now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)

	duration := w.now().Sub(start)
	status := shell.CommandStatus(result, err)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, result, duration)
	shell.FinishCommandSpan(w.tracingCollector, span, status, result, duration, err)

	if err != nil {
		shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, status, err)

		return result, err
	}

	shell.LogCommandOutcome(ctx, w.logger, w.contextualLogger, w.commandType, status, result, duration)

	return result, nil
}

// CommandOption configures a CommandWrapper.
type CommandOption[C shell.Command] func(*CommandWrapper[C]) error

func WithCommandMetrics[C shell.Command](collector shell.MetricsCollector) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.metricsCollector = collector
		return nil
	}
}

func WithCommandTracing[C shell.Command](collector shell.TracingCollector) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging takes precedence over WithCommandLogging.
func WithCommandContextualLogging[C shell.Command](logger shell.ContextualLogger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.contextualLogger = logger
		return nil
	}
}

func WithCommandLogging[C shell.Command](logger shell.Logger) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		w.logger = logger
		return nil
	}
}

// WithCommandClock replaces time.Now for duration measurement.
func WithCommandClock[C shell.Command](now func() time.Time) CommandOption[C] {
	return func(w *CommandWrapper[C]) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}

		w.now = now

		return nil
	}
}
