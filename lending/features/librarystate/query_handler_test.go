package librarystate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/librarystate"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func givenSomeHistory(t *testing.T, ctx context.Context, j *journal.Journal) {
	GivenEventsWereAppended(t, ctx, j,
		FixtureCopyCheckedOut(1, 1, 1),
		FixtureCopyCheckedOut(2, 3, 1),
		core.BuildCheckoutRefused(2, 3, 1, 203, "no copy of the title is available", FakeClockStart),
		FixtureDayAdvanced(2),
		FixtureCopyReturned(2, 3, 2, 4, 300),
	)
}

func Test_QueryHandler_Handle_EmptyJournalIsTheSeed(t *testing.T) {
	// arrange
	ctx := context.Background()
	policy := circulation.DefaultPolicy()
	handler := librarystate.NewQueryHandler(GivenEmptyJournal(t), policy)

	// act
	state, err := handler.Handle(ctx, librarystate.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.True(t, state.Equal(circulation.Seed(policy)))
}

func Test_QueryHandler_Handle_ProjectsTheWholeHistory(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	givenSomeHistory(t, ctx, j)
	handler := librarystate.NewQueryHandler(j, circulation.DefaultPolicy(), librarystate.WithoutSnapshots())

	// act
	state, err := handler.Handle(ctx, librarystate.BuildQuery())

	// assert
	require.NoError(t, err)
	expected := circulation.BuildLibraryState(
		2,
		map[int]int{1: 2, 2: 2, 3: 1},
		map[int]int{1: 1, 2: 0},
		map[int]int{1: 0, 2: 300},
	)
	assert.True(t, state.Equal(expected), "got %+v", state)
}

func Test_QueryHandler_Handle_UsesAndRefreshesSnapshots(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	givenSomeHistory(t, ctx, j)
	logHandler := NewLogHandlerSpy()
	metricsCollector := NewMetricsCollectorSpy()
	policy := circulation.DefaultPolicy()
	handler := librarystate.NewQueryHandler(
		j,
		policy,
		librarystate.WithContextualLogging(logHandler.Logger()),
		librarystate.WithMetrics(metricsCollector),
	)

	first, err := handler.Handle(ctx, librarystate.BuildQuery())
	require.NoError(t, err)
	GivenEventsWereAppended(t, ctx, j, FixtureFinePaid(2, 100, 2))

	// act
	second, err := handler.Handle(ctx, librarystate.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 300, first.OutstandingFines(2))
	assert.Equal(t, 200, second.OutstandingFines(2))

	assert.True(t, logHandler.HasDebugLog(shell.LogMsgSnapshotMiss).Assert())
	assert.True(t, logHandler.HasDebugLog(shell.LogMsgSnapshotHit).
		WithAttrValue(shell.LogAttrFromSequence, "5").
		Assert())
	assert.True(t, metricsCollector.HasCounterRecord(shell.QueryHandlerCallsMetric, map[string]string{
		shell.LogAttrSnapshotReason: shell.SnapshotReasonHit,
	}))

	snapshot, err := j.LoadSnapshot(ctx, librarystate.BuildQuery().SnapshotType(), librarystate.BuildEventFilter())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, journal.MaxSequenceNumberUint(6), snapshot.SequenceNumber)
}

func Test_QueryHandler_Handle_SnapshotEqualsFullReplay(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	policy := circulation.DefaultPolicy()
	withSnapshots := librarystate.NewQueryHandler(j, policy)
	withoutSnapshots := librarystate.NewQueryHandler(j, policy, librarystate.WithoutSnapshots())

	events := core.DomainEvents{
		FixtureCopyCheckedOut(1, 1, 1),
		FixtureCopyCheckedOut(1, 2, 1),
		FixtureDayAdvanced(2),
		FixtureCopyReturned(1, 2, 2, 30, 2250),
		FixtureFinePaid(1, 3000, 2),
	}

	for _, event := range events {
		GivenEventsWereAppended(t, ctx, j, event)

		// act
		incremental, err1 := withSnapshots.Handle(ctx, librarystate.BuildQuery())
		full, err2 := withoutSnapshots.Handle(ctx, librarystate.BuildQuery())

		// assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.True(t, incremental.Equal(full))
	}
}

type brokenSnapshotJournal struct {
	*journal.Journal
}

func (b brokenSnapshotJournal) LoadSnapshot(context.Context, string, journal.Filter) (*journal.Snapshot, error) {
	return &journal.Snapshot{Data: []byte(`{"Day":"not a number"}`)}, nil
}

func Test_QueryHandler_Handle_FallsBackOnBrokenSnapshot(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	givenSomeHistory(t, ctx, j)
	logHandler := NewLogHandlerSpy()
	handler := librarystate.NewQueryHandler(
		brokenSnapshotJournal{Journal: j},
		circulation.DefaultPolicy(),
		librarystate.WithLogging(logHandler.Logger()),
	)

	// act
	state, err := handler.Handle(ctx, librarystate.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 300, state.OutstandingFines(2))
	assert.True(t, logHandler.HasErrorLog(shell.LogMsgSnapshotError).Assert())
}

func Test_QueryHandler_Handle_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := librarystate.NewQueryHandler(GivenEmptyJournal(t), circulation.DefaultPolicy())

	// act
	_, err := handler.Handle(ctx, librarystate.BuildQuery())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
