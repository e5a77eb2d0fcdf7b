// Package journal provides an in-memory, append-only event journal for event-sourced
// library circulation.
//
// The journal keeps every appended event with a sequence number and answers queries by Filter.
// A Filter selects events by event type and by predicates on top-level fields of the JSON payload.
//
// Appending is guarded by optimistic concurrency: the caller passes the filter it used for its
// decision together with the max sequence number it saw. If an event matching that filter has been
// appended in the meantime, Append fails with ErrConcurrencyConflict and appends nothing.
//
// Projections may be cached as a Snapshot, stored per projection type and filter hash, so that a
// later query only needs to replay the events appended after the snapshot's sequence number.
//
// Nothing is written to disk; a journal lives exactly as long as the process holding it.
//
// Common usage pattern:
//
//	filter := journal.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.CopyCheckedOutEventType,
//			core.CopyReturnedEventType).
//		AndAnyPredicateOf(journal.P("MemberClass", "2")).
//		Finalize()
//
//	events, maxSeq, err := j.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, err := journal.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = j.Append(ctx, filter, maxSeq, newEvent)
package journal
