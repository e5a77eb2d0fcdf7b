package librarystate

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

// Journal is the part of the journal the QueryHandler needs.
type Journal interface {
	QueryFrom(
		ctx context.Context,
		filter journal.Filter,
		fromSequenceNumber journal.MaxSequenceNumberUint,
	) (journal.StorableEvents, journal.MaxSequenceNumberUint, error)
	LoadSnapshot(ctx context.Context, projectionType string, filter journal.Filter) (*journal.Snapshot, error)
	SaveSnapshot(ctx context.Context, snapshot journal.Snapshot) error
}

// QueryHandler runs LoadSnapshot -> QueryFrom -> Unmarshal -> Project -> SaveSnapshot.
type QueryHandler struct {
	journal          Journal
	policy           circulation.Policy
	snapshotsEnabled bool
	metricsCollector shell.MetricsCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
	now              func() time.Time
}

type Option func(*QueryHandler)

// WithoutSnapshots makes every query a full replay.
func WithoutSnapshots() Option {
	return func(h *QueryHandler) {
		h.snapshotsEnabled = false
	}
}

func WithMetrics(collector shell.MetricsCollector) Option {
	return func(h *QueryHandler) {
		h.metricsCollector = collector
	}
}

func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

func WithLogging(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

func NewQueryHandler(j Journal, policy circulation.Policy, opts ...Option) QueryHandler {
	handler := QueryHandler{
		journal:          j,
		policy:           policy,
		snapshotsEnabled: true,
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.LibraryState, error) {
	start := h.now()
	filter := BuildEventFilter()

	base, fromSequenceNumber, reason := h.loadSnapshot(ctx, query, filter)

	storableEvents, maxSequenceNumber, err := h.journal.QueryFrom(ctx, filter, fromSequenceNumber)
	if err != nil {
		h.observe(ctx, query, shell.StatusError, reason, start, err)
		return circulation.LibraryState{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		h.observe(ctx, query, shell.StatusError, reason, start, err)
		return circulation.LibraryState{}, err
	}

	state := core.ProjectLibraryState(h.policy, history, base...)

	if h.snapshotsEnabled && (reason != shell.SnapshotReasonHit || len(history) > 0) {
		h.saveSnapshot(ctx, query, filter, maxSequenceNumber, state)
	}

	h.observe(ctx, query, shell.StatusSuccess, reason, start, nil)

	return state, nil
}

// BuildEventFilter selects every event that changes the state; refusals do not.
func BuildEventFilter() journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.CopyCheckedOutEventType,
			core.CopyReturnedEventType,
			core.FinePaidEventType,
			core.DayAdvancedEventType,
		).
		Finalize()
}

func (h QueryHandler) loadSnapshot(
	ctx context.Context,
	query Query,
	filter journal.Filter,
) ([]circulation.LibraryState, journal.MaxSequenceNumberUint, string) {

	if !h.snapshotsEnabled {
		return nil, 0, ""
	}

	snapshot, err := h.journal.LoadSnapshot(ctx, query.SnapshotType(), filter)
	if err != nil {
		h.logError(ctx, shell.LogMsgSnapshotError, err)
		return nil, 0, shell.SnapshotReasonError
	}

	if snapshot == nil {
		h.logDebug(ctx, shell.LogMsgSnapshotMiss)
		return nil, 0, shell.SnapshotReasonMiss
	}

	state, err := shell.LibraryStateFromSnapshotData(snapshot.Data)
	if err != nil {
		h.logError(ctx, shell.LogMsgSnapshotError, err)
		return nil, 0, shell.SnapshotReasonError
	}

	h.logDebug(ctx, shell.LogMsgSnapshotHit, shell.LogAttrFromSequence, snapshot.SequenceNumber)

	return []circulation.LibraryState{state}, snapshot.SequenceNumber, shell.SnapshotReasonHit
}

func (h QueryHandler) saveSnapshot(
	ctx context.Context,
	query Query,
	filter journal.Filter,
	sequenceNumber journal.MaxSequenceNumberUint,
	state circulation.LibraryState,
) {

	data, err := shell.SnapshotDataFrom(state)
	if err == nil {
		var snapshot journal.Snapshot
		snapshot, err = journal.BuildSnapshot(query.SnapshotType(), filter.Hash(), sequenceNumber, data)
		if err == nil {
			err = h.journal.SaveSnapshot(ctx, snapshot)
		}
	}

	if err != nil {
		h.logError(ctx, shell.LogMsgSnapshotError, err)
		return
	}

	h.logDebug(ctx, shell.LogMsgSnapshotSaved, shell.LogAttrFromSequence, sequenceNumber)
}

func (h QueryHandler) observe(ctx context.Context, query Query, status, reason string, start time.Time, err error) {
	duration := h.now().Sub(start)
	shell.RecordQueryMetrics(ctx, h.metricsCollector, query.QueryType(), status, reason, duration)

	if err != nil {
		h.logError(ctx, shell.LogMsgQueryFailed, err)
		return
	}

	h.logDebug(ctx, shell.LogMsgQueryCompleted,
		shell.LogAttrQueryType, query.QueryType(),
		shell.LogAttrSnapshotReason, reason,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)
}

func (h QueryHandler) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.DebugContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Debug(msg, args...)
	}
}

func (h QueryHandler) logError(ctx context.Context, msg string, err error) {
	args := []any{shell.LogAttrError, err.Error(), shell.LogAttrErrorType, shell.ErrorType(err)}

	switch {
	case h.contextualLogger != nil:
		h.contextualLogger.ErrorContext(ctx, msg, args...)
	case h.logger != nil:
		h.logger.Error(msg, args...)
	}
}
