package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandStatus(t *testing.T) {
	testCases := []struct {
		name     string
		result   shell.HandlerResult
		err      error
		expected string
	}{
		{name: "success", result: shell.HandlerResult{Success: true}, expected: shell.StatusSuccess},
		{name: "idempotent", result: shell.HandlerResult{Success: true, Idempotent: true}, expected: shell.StatusIdempotent},
		{name: "refused", result: shell.HandlerResult{Code: 201}, expected: shell.StatusRefused},
		{name: "canceled", err: context.Canceled, expected: shell.StatusCanceled},
		{name: "timeout", err: context.DeadlineExceeded, expected: shell.StatusTimeout},
		{name: "conflict", err: journal.ErrConcurrencyConflict, expected: shell.StatusConcurrencyConflict},
		{name: "error", err: errors.New("boom"), expected: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.CommandStatus(tc.result, tc.err))
		})
	}
}

func Test_RecordCommandMetrics_CountsOutcomeKind(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy()
	result := shell.HandlerResult{Code: circulation.LoanLimitExceededCode(2), RetryAttempts: 1}

	// act
	shell.RecordCommandMetrics(context.Background(), metricsCollector, "Checkout", shell.StatusRefused, result, time.Millisecond)

	// assert
	assert.True(t, metricsCollector.HasDurationRecord(shell.CommandHandlerDurationMetric, map[string]string{
		shell.LogAttrCommandType: "Checkout",
		shell.LogAttrStatus:      shell.StatusRefused,
	}))
	assert.True(t, metricsCollector.HasCounterRecord(shell.CommandHandlerOutcomesMetric, map[string]string{
		shell.LogAttrCommandType: "Checkout",
		shell.LogAttrOutcome:     "loan_limit_exceeded",
	}))
	assert.False(t, metricsCollector.HasCounterRecord(shell.CommandHandlerRetriesMetric, nil))
}

func Test_RecordCommandMetrics_EarlyReturnIsCountedAsReturn(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy()
	result := shell.HandlerResult{Success: true, Code: circulation.ReturnCompletedCode(-750), RetryAttempts: 1}

	// act
	shell.RecordCommandMetrics(context.Background(), metricsCollector, "ReturnCopy", shell.StatusSuccess, result, time.Millisecond)

	// assert
	assert.True(t, metricsCollector.HasCounterRecord(shell.CommandHandlerOutcomesMetric, map[string]string{
		shell.LogAttrCommandType: "ReturnCopy",
		shell.LogAttrOutcome:     "return_completed",
	}))
}

func Test_RecordCommandMetrics_RecordsRetries(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy()
	result := shell.HandlerResult{
		RetryAttempts:    4,
		TotalRetryDelay:  35 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}

	// act
	shell.RecordCommandMetrics(
		context.Background(),
		metricsCollector,
		"Return",
		shell.StatusConcurrencyConflict,
		result,
		40*time.Millisecond,
	)

	// assert
	assert.True(t, metricsCollector.HasCounterRecord(shell.CommandHandlerConcurrencyConflictMetric, nil))
	assert.True(t, metricsCollector.HasCounterRecord(shell.CommandHandlerRetriesMetric, map[string]string{
		shell.LogAttrAttempt: "3",
	}))
	assert.True(t, metricsCollector.HasDurationRecord(shell.CommandHandlerRetryDelayMetric, nil))
	assert.True(t, metricsCollector.HasCounterRecord(shell.CommandHandlerMaxRetriesReachedMetric, nil))
	assert.False(t, metricsCollector.HasCounterRecord(shell.CommandHandlerOutcomesMetric, nil))
}

func Test_RecordCommandMetrics_WithoutCollector_DoesNothing(t *testing.T) {
	assert.NotPanics(t, func() {
		shell.RecordCommandMetrics(context.Background(), nil, "Pay", shell.StatusSuccess, shell.HandlerResult{}, 0)
	})
}

func Test_CommandSpan_RefusalFinishesAsSuccess(t *testing.T) {
	// arrange
	tracingCollector := NewTracingCollectorSpy()
	result := shell.HandlerResult{Code: circulation.TitleUnavailableCode(3)}

	// act
	_, span := shell.StartCommandSpan(context.Background(), tracingCollector, "Checkout")
	shell.FinishCommandSpan(tracingCollector, span, shell.StatusRefused, result, time.Millisecond, nil)

	// assert
	record, found := tracingCollector.FindSpanRecord(shell.SpanNameCommandHandle)
	assert.True(t, found)
	assert.True(t, record.Finished)
	assert.Equal(t, shell.StatusSuccess, record.Status)
	assert.Equal(t, "Checkout", record.StartAttributes[shell.LogAttrCommandType])
	assert.Equal(t, "203", record.EndAttributes[shell.LogAttrOutcomeCode])
	assert.Equal(t, shell.StatusRefused, record.EndAttributes[shell.LogAttrStatus])
}

func Test_LogCommandOutcome_RefusalIsLoggedAtInfoLevel(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy()
	result := shell.HandlerResult{Code: circulation.FineCeilingExceededCode(1)}

	// act
	shell.LogCommandOutcome(context.Background(), nil, logHandler.Logger(), "Checkout", shell.StatusRefused, result, 0)

	// assert
	assert.True(t, logHandler.HasInfoLog(shell.LogMsgCommandRefused).
		WithAttrValue(shell.LogAttrOutcome, "fine_ceiling_exceeded").
		WithAttrValue(shell.LogAttrOutcomeCode, "401").
		Assert())
}

func Test_LogCommandError_FallsBackToPlainLogger(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy()

	// act
	shell.LogCommandError(context.Background(), logHandler.Logger(), nil, "Pay", shell.StatusError, errors.New("boom"))

	// assert
	assert.True(t, logHandler.HasErrorLog(shell.LogMsgCommandFailed).
		WithAttrValue(shell.LogAttrCommandType, "Pay").
		WithAttrValue(shell.LogAttrError, "boom").
		Assert())
}
