package returncopy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/returncopy"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_Decide(t *testing.T) {
	testCases := []struct {
		name         string
		lateDays     int
		expectedFine int
		expectedCode int
	}{
		{name: "on time", lateDays: 0, expectedFine: 0, expectedCode: 1000},
		{name: "five days late", lateDays: 5, expectedFine: 375, expectedCode: 1005},
		{name: "negative late days", lateDays: -2, expectedFine: 0, expectedCode: 998},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			history := core.DomainEvents{
				FixtureCopyCheckedOut(2, 1, 1),
				FixtureDayAdvanced(2),
			}
			command := returncopy.BuildCommand(2, 1, tc.lateDays, FakeClockStart)

			// act
			decision := returncopy.Decide(history, command, circulation.DefaultPolicy())

			// assert
			assert.True(t, decision.IsSuccess())
			assert.Equal(t, tc.expectedCode, decision.Code)
			assert.Equal(t, core.BuildCopyReturned(2, 1, 2, tc.lateDays, tc.expectedFine, FakeClockStart), decision.Event)
		})
	}
}

func Test_Decide_ReturnWithoutLoanIsAccepted(t *testing.T) {
	// act
	decision := returncopy.Decide(nil, returncopy.BuildCommand(1, 3, 0, FakeClockStart), circulation.DefaultPolicy())

	// assert
	assert.True(t, decision.IsSuccess())
	assert.Equal(t, circulation.ReturnCompletedCode(0), decision.Code)
}
