package journal

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when the "dynamic event stream" selected by the filter
	// has moved past the expected max sequence number.
	ErrConcurrencyConflict = errors.New("concurrency conflict, events were appended in the meantime")

	// ErrNoEventsToAppend is returned by Append when called without any event.
	ErrNoEventsToAppend = errors.New("no events to append")

	// ErrQueryingEventsFailed is returned when a query could not be completed.
	ErrQueryingEventsFailed = errors.New("querying events failed")

	// ErrAppendingEventsFailed is returned when an append could not be completed.
	ErrAppendingEventsFailed = errors.New("appending events failed")
)

// MaxSequenceNumberUint is a type alias for uint, representing the maximum sequence number for a "dynamic event stream".
type MaxSequenceNumberUint = uint
