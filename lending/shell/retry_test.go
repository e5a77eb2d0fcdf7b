package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
)

func Test_RetryOnConflict_SucceedsOnFirstAttempt(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryOnConflict(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Equal(t, time.Duration(0), metrics.TotalDelay)
	assert.Equal(t, "none", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryOnConflict_RetriesConcurrencyConflicts(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryOnConflict(
		context.Background(),
		func(context.Context) error {
			calls++
			if calls < 3 {
				return journal.ErrConcurrencyConflict
			}

			return nil
		},
		shell.WithBaseDelay(time.Microsecond),
		shell.WithJitterFactor(0),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, metrics.Attempts)
	assert.Equal(t, 3*time.Microsecond, metrics.TotalDelay)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryOnConflict_GivesUpAfterMaxAttempts(t *testing.T) {
	// arrange
	calls := 0

	// act
	metrics, err := shell.RetryOnConflict(
		context.Background(),
		func(context.Context) error {
			calls++
			return journal.ErrConcurrencyConflict
		},
		shell.WithMaxAttempts(2),
		shell.WithBaseDelay(0),
	)

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, metrics.Attempts)
	assert.Equal(t, "concurrency_conflict", metrics.LastErrorType)
	assert.True(t, metrics.RetriesExhausted)
}

func Test_RetryOnConflict_FailsFastOnOtherErrors(t *testing.T) {
	// arrange
	boom := errors.New("boom")
	calls := 0

	// act
	metrics, err := shell.RetryOnConflict(context.Background(), func(context.Context) error {
		calls++
		return boom
	})

	// assert
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "other", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryOnConflict_StopsWaitingWhenContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())

	// act
	metrics, err := shell.RetryOnConflict(
		ctx,
		func(context.Context) error {
			cancel()
			return journal.ErrConcurrencyConflict
		},
		shell.WithBaseDelay(time.Hour),
	)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Equal(t, "context_canceled", metrics.LastErrorType)
}

func Test_RetryOnConflict_RejectsInvalidOptions(t *testing.T) {
	testCases := []struct {
		name        string
		option      shell.RetryOption
		expectedErr error
	}{
		{name: "max attempts", option: shell.WithMaxAttempts(0), expectedErr: shell.ErrInvalidMaxAttempts},
		{name: "base delay", option: shell.WithBaseDelay(-time.Second), expectedErr: shell.ErrNegativeBaseDelay},
		{name: "jitter factor", option: shell.WithJitterFactor(1.5), expectedErr: shell.ErrInvalidJitterFactor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			calls := 0

			// act
			_, err := shell.RetryOnConflict(context.Background(), func(context.Context) error {
				calls++
				return nil
			}, tc.option)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, 0, calls)
		})
	}
}
