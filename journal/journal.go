package journal

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// Journal is an in-memory, append-only event log with optimistic concurrency on "dynamic event streams".
//
// A dynamic event stream is the set of events selected by a Filter. Writers query it, decide,
// then append with the max sequence number they saw; if a matching event was appended in between
// the append fails with ErrConcurrencyConflict.
//
// A Journal is safe for concurrent use.
type Journal struct {
	mu        sync.RWMutex
	events    StorableEvents
	snapshots map[snapshotKey]Snapshot

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	now              func() time.Time
}

// NewJournal creates an empty Journal.
func NewJournal(options ...Option) (*Journal, error) {
	j := &Journal{
		snapshots: make(map[snapshotKey]Snapshot),
		now:       time.Now,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Len returns the number of events in the Journal.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}

// Query returns all events matching the filter in sequence order, plus the max sequence number
// of the matching events (0 if there are none), which is the expectation to Append with.
func (j *Journal) Query(ctx context.Context, filter Filter) (StorableEvents, MaxSequenceNumberUint, error) {
	return j.QueryFrom(ctx, filter, 0)
}

// QueryFrom is Query restricted to events with a sequence number greater than fromSequenceNumber,
// used to bring a snapshot up to date. The returned max sequence number still covers the whole stream.
func (j *Journal) QueryFrom(
	ctx context.Context,
	filter Filter,
	fromSequenceNumber MaxSequenceNumberUint,
) (StorableEvents, MaxSequenceNumberUint, error) {

	start := j.now()
	ctx, span := j.startSpan(ctx, SpanNameQuery, map[string]string{AttrOperation: OperationQuery})

	if err := ctx.Err(); err != nil {
		j.observeFailure(ctx, span, OperationQuery, MetricQueryDuration, start, err)

		return nil, 0, errors.Join(ErrQueryingEventsFailed, err)
	}

	j.mu.RLock()
	events := StorableEvents{}
	maxSequenceNumber := MaxSequenceNumberUint(0)

	for _, event := range j.events {
		if !filter.Matches(event) {
			continue
		}

		maxSequenceNumber = event.SequenceNumber

		if event.SequenceNumber > fromSequenceNumber {
			events = append(events, event)
		}
	}
	j.mu.RUnlock()

	duration := j.now().Sub(start)
	j.recordDuration(ctx, MetricQueryDuration, duration, OperationQuery, StatusSuccess)
	j.recordValue(ctx, MetricEventsQueried, float64(len(events)), OperationQuery, StatusSuccess)
	j.logDebug(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrMaxSequence, maxSequenceNumber,
		logAttrDurationMS, toMilliseconds(duration),
	)
	j.finishSpan(span, StatusSuccess, map[string]string{
		AttrEventCount:  itoa(len(events)),
		AttrMaxSequence: utoa(maxSequenceNumber),
		AttrDurationMS:  formatMilliseconds(duration),
	})

	return events, maxSequenceNumber, nil
}

// Append appends one or more events if no event matching the filter was appended after expectedMaxSequenceNumber.
// The events get consecutive sequence numbers; all of them are appended or none.
func (j *Journal) Append(
	ctx context.Context,
	filter Filter,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
	events ...StorableEvent,
) error {

	start := j.now()
	spanAttrs := map[string]string{
		AttrOperation:   OperationAppend,
		AttrEventCount:  itoa(len(events)),
		AttrExpectedSeq: utoa(expectedMaxSequenceNumber),
	}
	if len(events) > 0 {
		spanAttrs[AttrEventType] = events[0].EventType
	}
	ctx, span := j.startSpan(ctx, SpanNameAppend, spanAttrs)

	if len(events) == 0 {
		j.observeFailure(ctx, span, OperationAppend, MetricAppendDuration, start, ErrNoEventsToAppend)

		return ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		j.observeFailure(ctx, span, OperationAppend, MetricAppendDuration, start, err)

		return errors.Join(ErrAppendingEventsFailed, err)
	}

	j.mu.Lock()
	currentMax := MaxSequenceNumberUint(0)
	for _, event := range j.events {
		if filter.Matches(event) {
			currentMax = event.SequenceNumber
		}
	}

	if currentMax != expectedMaxSequenceNumber {
		j.mu.Unlock()
		j.recordConflict(ctx)
		j.logInfo(ctx, logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrMaxSequence, currentMax,
		)
		j.observeFailure(ctx, span, OperationAppend, MetricAppendDuration, start, ErrConcurrencyConflict)

		return ErrConcurrencyConflict
	}

	next := MaxSequenceNumberUint(len(j.events))
	appended := slices.Clone(events)
	for i := range appended {
		next++
		appended[i].SequenceNumber = next
	}
	j.events = append(j.events, appended...)
	j.mu.Unlock()

	duration := j.now().Sub(start)
	j.recordDuration(ctx, MetricAppendDuration, duration, OperationAppend, StatusSuccess)
	j.incrementCounter(ctx, MetricEventsAppended, map[string]string{
		AttrOperation: OperationAppend,
		AttrEventType: events[0].EventType,
	})
	j.logDebug(ctx, logMsgEventsAppended,
		logAttrEventCount, len(appended),
		logAttrExpectedSequence, expectedMaxSequenceNumber,
		logAttrDurationMS, toMilliseconds(duration),
	)
	j.finishSpan(span, StatusSuccess, map[string]string{
		AttrEventCount:  itoa(len(appended)),
		AttrMaxSequence: utoa(next),
		AttrDurationMS:  formatMilliseconds(duration),
	})

	return nil
}

// SaveSnapshot stores the snapshot, replacing an older one for the same projection type and filter hash.
func (j *Journal) SaveSnapshot(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrSavingSnapshotFailed, err)
	}

	if err := snapshot.Validate(); err != nil {
		return errors.Join(ErrSavingSnapshotFailed, err)
	}

	snapshot.CreatedAt = j.now()
	snapshot.Data = slices.Clone(snapshot.Data)

	j.mu.Lock()
	j.snapshots[snapshotKey{projectionType: snapshot.ProjectionType, filterHash: snapshot.FilterHash}] = snapshot
	j.mu.Unlock()

	j.logDebug(ctx, logMsgSnapshotSaved,
		logAttrProjectionType, snapshot.ProjectionType,
		logAttrMaxSequence, snapshot.SequenceNumber,
	)

	return nil
}

// LoadSnapshot returns the snapshot for the projection type and filter, or nil if none was saved.
func (j *Journal) LoadSnapshot(ctx context.Context, projectionType string, filter Filter) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingSnapshotFailed, err)
	}

	if projectionType == "" {
		return nil, errors.Join(ErrLoadingSnapshotFailed, ErrEmptyProjectionType)
	}

	j.mu.RLock()
	snapshot, ok := j.snapshots[snapshotKey{projectionType: projectionType, filterHash: filter.Hash()}]
	j.mu.RUnlock()

	if !ok {
		return nil, nil //nolint:nilnil
	}

	snapshot.Data = slices.Clone(snapshot.Data)

	return &snapshot, nil
}
