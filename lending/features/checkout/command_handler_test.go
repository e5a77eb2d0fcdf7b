package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/checkout"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	correlationID := GivenUniqueID(t)
	handler := checkout.NewCommandHandler(j, circulation.DefaultPolicy(), checkout.WithCorrelationID(correlationID))

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(1, 1, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Idempotent)
	assert.Equal(t, circulation.CodeSuccess, result.Code)
	assert.Equal(t, 1, result.RetryAttempts)

	events := QueryDomainEvents(t, ctx, j, core.CopyCheckedOutEventType)
	require.Len(t, events, 1)
	assert.Equal(t, core.BuildCopyCheckedOut(1, 1, 1, FakeClockStart), events[0])

	storableEvents, _, err := j.Query(ctx, journal.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)
	metadata, err := shell.EventMetadataFrom(storableEvents[0])
	require.NoError(t, err)
	assert.Equal(t, correlationID.String(), metadata.CorrelationID)
	assert.Equal(t, metadata.MessageID, metadata.CausationID)
}

func Test_CommandHandler_Handle_RefusalIsAppendedAsErrorEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	GivenEventsWereAppended(t, ctx, j, FixtureCopyCheckedOut(1, 3, 1))
	handler := checkout.NewCommandHandler(j, circulation.DefaultPolicy())

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(2, 3, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, circulation.TitleUnavailableCode(3), result.Code)

	refusals := QueryDomainEvents(t, ctx, j, core.CheckoutRefusedEventType)
	require.Len(t, refusals, 1)
	assert.Equal(t, 203, refusals[0].(core.CheckoutRefused).Code)
	assert.Len(t, QueryDomainEvents(t, ctx, j, core.CopyCheckedOutEventType), 1)
}

func Test_CommandHandler_Handle_IgnoresUnrelatedHistory(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	GivenEventsWereAppended(t, ctx, j,
		FixtureCopyCheckedOut(1, 1, 1),
		FixtureCopyCheckedOut(1, 2, 1),
		FixtureCopyCheckedOut(1, 2, 1),
	)
	handler := checkout.NewCommandHandler(j, circulation.DefaultPolicy())

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(2, 2, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Success, "title 2 has no copy left")
	assert.Equal(t, circulation.TitleUnavailableCode(2), result.Code)

	filter := checkout.BuildEventFilter(2, 3)
	events, _, err := j.Query(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, events, "nothing concerns class 2 or title 3 yet")
}

func Test_CommandHandler_Handle_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := GivenEmptyJournal(t)
	handler := checkout.NewCommandHandler(j, circulation.DefaultPolicy())

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(1, 1, FakeClockStart))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Success)
	assert.Equal(t, 0, j.Len())
}

type conflictingJournal struct {
	*journal.Journal
	conflictsLeft int
}

func (c *conflictingJournal) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	storableEvents ...journal.StorableEvent,
) error {

	if c.conflictsLeft > 0 {
		c.conflictsLeft--
		return journal.ErrConcurrencyConflict
	}

	return c.Journal.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents...)
}

func Test_CommandHandler_Handle_RetriesConcurrencyConflicts(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := &conflictingJournal{Journal: GivenEmptyJournal(t), conflictsLeft: 2}
	handler := checkout.NewCommandHandler(
		j,
		circulation.DefaultPolicy(),
		checkout.WithRetryOptions(shell.WithBaseDelay(time.Microsecond)),
	)

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(1, 1, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.RetryAttempts)
	assert.Equal(t, 1, j.Len())
}

func Test_CommandHandler_Handle_GivesUpOnPersistentConflicts(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := &conflictingJournal{Journal: GivenEmptyJournal(t), conflictsLeft: 10}
	handler := checkout.NewCommandHandler(
		j,
		circulation.DefaultPolicy(),
		checkout.WithRetryOptions(shell.WithMaxAttempts(2), shell.WithBaseDelay(0)),
	)

	// act
	result, err := handler.Handle(ctx, checkout.BuildCommand(1, 1, FakeClockStart))

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.True(t, result.RetriesExhausted)
	assert.Equal(t, 0, j.Len())
}

func Test_BuildEventFilter_IsStableForTheSameRequest(t *testing.T) {
	assert.Equal(t, checkout.BuildEventFilter(1, 2).Hash(), checkout.BuildEventFilter(1, 2).Hash())
	assert.NotEqual(t, checkout.BuildEventFilter(1, 2).Hash(), checkout.BuildEventFilter(2, 1).Hash())
}
