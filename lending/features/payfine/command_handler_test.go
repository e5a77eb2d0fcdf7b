package payfine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/payfine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_PaymentReducesFines(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	GivenEventsWereAppended(t, ctx, j,
		FixtureCopyCheckedOut(2, 1, 1),
		FixtureCopyReturned(2, 1, 1, 5, 375),
	)
	policy := circulation.DefaultPolicy()
	handler := payfine.NewCommandHandler(j, policy)

	// act
	result, err := handler.Handle(ctx, payfine.BuildCommand(2, 100, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Idempotent)

	history := QueryDomainEvents(t, ctx, j, core.CopyCheckedOutEventType, core.CopyReturnedEventType, core.FinePaidEventType)
	assert.Equal(t, 275, core.ProjectLibraryState(policy, history).OutstandingFines(2))
}

func Test_CommandHandler_Handle_IdempotentPaymentAppendsNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenEmptyJournal(t)
	handler := payfine.NewCommandHandler(j, circulation.DefaultPolicy())

	// act
	result, err := handler.Handle(ctx, payfine.BuildCommand(1, 100, FakeClockStart))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 0, j.Len())
}
