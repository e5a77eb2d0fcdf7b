package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

// FakeClockStart is the instant the lending fixtures start from.
var FakeClockStart = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

func GivenEmptyJournal(t testing.TB, options ...journal.Option) *journal.Journal {
	j, err := journal.NewJournal(options...)
	require.NoError(t, err, "error in arranging test data")

	return j
}

func ToStorable(t testing.TB, domainEvent core.DomainEvent) journal.StorableEvent {
	return ToStorableWithMetadata(t, domainEvent, shell.NewEventMetadata(uuid.New()))
}

func ToStorableWithMetadata(t testing.TB, domainEvent core.DomainEvent, eventMetadata shell.EventMetadata) journal.StorableEvent {
	storableEvent, err := shell.StorableEventFrom(domainEvent, eventMetadata)
	assert.NoError(t, err, "error in arranging test data")

	return storableEvent
}

// GivenEventsWereAppended appends the events unconditionally, one by one, and returns them.
func GivenEventsWereAppended(t testing.TB, ctx context.Context, j *journal.Journal, events ...core.DomainEvent) core.DomainEvents {
	filter := journal.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		_, maxSequenceNumber, err := j.Query(ctx, filter)
		require.NoError(t, err, "error in arranging test data")

		err = j.Append(ctx, filter, maxSequenceNumber, ToStorable(t, event))
		require.NoError(t, err, "error in arranging test data")
	}

	return events
}

func FixtureCopyCheckedOut(memberClass core.MemberClassID, title core.TitleID, day core.Day) core.DomainEvent {
	return core.BuildCopyCheckedOut(memberClass, title, day, FakeClockStart)
}

func FixtureCopyReturned(memberClass core.MemberClassID, title core.TitleID, day core.Day, lateDays int, fine core.MinorUnits) core.DomainEvent {
	return core.BuildCopyReturned(memberClass, title, day, lateDays, fine, FakeClockStart)
}

func FixtureFinePaid(memberClass core.MemberClassID, amount core.MinorUnits, day core.Day) core.DomainEvent {
	return core.BuildFinePaid(memberClass, amount, day, FakeClockStart)
}

func FixtureDayAdvanced(day core.Day) core.DomainEvent {
	return core.BuildDayAdvanced(day, FakeClockStart)
}

// QueryDomainEvents returns all events of the given types in journal order.
func QueryDomainEvents(t testing.TB, ctx context.Context, j *journal.Journal, eventType string, eventTypes ...string) core.DomainEvents {
	filter := journal.BuildEventFilter().Matching().AnyEventTypeOf(eventType, eventTypes...).Finalize()

	storableEvents, _, err := j.Query(ctx, filter)
	require.NoError(t, err, "error in querying test data")

	domainEvents, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err, "error in querying test data")

	return domainEvents
}
