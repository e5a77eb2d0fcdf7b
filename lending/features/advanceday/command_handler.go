package advanceday

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

// Journal is the part of the journal the CommandHandler needs.
type Journal interface {
	Query(ctx context.Context, filter journal.Filter) (journal.StorableEvents, journal.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter journal.Filter,
		expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
		storableEvents ...journal.StorableEvent,
	) error
}

// CommandHandler runs Query -> Unmarshal -> Decide -> Append, retried on concurrency conflicts.
// Two concurrent day advances never produce the same day twice: the loser retries on the new day.
type CommandHandler struct {
	journal       Journal
	policy        circulation.Policy
	correlationID uuid.UUID
	retryOptions  []shell.RetryOption
}

type Option func(*CommandHandler)

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func WithCorrelationID(correlationID uuid.UUID) Option {
	return func(h *CommandHandler) {
		h.correlationID = correlationID
	}
}

func NewCommandHandler(j Journal, policy circulation.Policy, opts ...Option) CommandHandler {
	handler := CommandHandler{
		journal:       j,
		policy:        policy,
		correlationID: uuid.New(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryOnConflict(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewDecisionResult(decision, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	filter := BuildEventFilter()

	storableEvents, maxSequenceNumber, err := h.journal.Query(ctx, filter)
	if err != nil {
		return core.DecisionResult{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return core.DecisionResult{}, err
	}

	decision := Decide(history, command, h.policy)

	storableEvent, err := shell.StorableEventFrom(decision.Event, shell.NewEventMetadata(h.correlationID))
	if err != nil {
		return core.DecisionResult{}, err
	}

	if err = h.journal.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return core.DecisionResult{}, err
	}

	return decision, nil
}

func BuildEventFilter() journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.DayAdvancedEventType).
		Finalize()
}
