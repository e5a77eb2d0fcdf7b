package shell

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

const (
	CommandHandlerDurationMetric            = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric               = "commandhandler_handle_calls_total"
	CommandHandlerOutcomesMetric            = "commandhandler_outcomes_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"
	CommandHandlerRetriesMetric             = "commandhandler_retries_total"
	CommandHandlerRetryDelayMetric          = "commandhandler_retry_delay_seconds"
	CommandHandlerMaxRetriesReachedMetric   = "commandhandler_max_retries_reached_total"

	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"

	StatusSuccess             = "success"
	StatusRefused             = "refused"
	StatusIdempotent          = "idempotent"
	StatusError               = "error"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandRefused   = "command handler refused"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"
	LogMsgSnapshotHit      = "snapshot hit: incremental projection"
	LogMsgSnapshotMiss     = "snapshot miss: full projection"
	LogMsgSnapshotSaved    = "snapshot saved"
	LogMsgSnapshotError    = "snapshot error"

	LogAttrCommandType    = "command_type"
	LogAttrQueryType      = "query_type"
	LogAttrStatus         = "status"
	LogAttrDurationMS     = "duration_ms"
	LogAttrOutcome        = "outcome"
	LogAttrOutcomeCode    = "outcome_code"
	LogAttrError          = "error"
	LogAttrErrorType      = "error_type"
	LogAttrAttempt        = "attempt_number"
	LogAttrEventCount     = "event_count"
	LogAttrFromSequence   = "from_sequence"
	LogAttrSnapshotReason = "snapshot_reason"

	SpanNameCommandHandle = "commandhandler.handle"
	SpanNameQueryHandle   = "queryhandler.handle"

	SnapshotReasonHit   = "snapshot_hit"
	SnapshotReasonMiss  = "snapshot_miss"
	SnapshotReasonError = "snapshot_error"
)

// BuildCommandLabels creates the standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// CommandStatus maps a handler outcome to the status label used in metrics, spans and logs.
func CommandStatus(result HandlerResult, err error) string {
	switch {
	case err == nil && result.Idempotent:
		return StatusIdempotent
	case err == nil && result.Success:
		return StatusSuccess
	case err == nil:
		return StatusRefused
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, journal.ErrConcurrencyConflict)
}

// RecordCommandMetrics records duration and call count, the outcome kind for completed commands
// and the retry metadata of the result.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	result HandlerResult,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	switch status {
	case StatusSuccess, StatusRefused, StatusIdempotent:
		incrementCounter(ctx, collector, CommandHandlerOutcomesMetric, map[string]string{
			LogAttrCommandType: commandType,
			LogAttrOutcome:     circulation.ClassifyOutcome(result.Success, result.Code).String(),
		})
	case StatusConcurrencyConflict:
		incrementCounter(ctx, collector, CommandHandlerConcurrencyConflictMetric, labels)
	}

	if result.RetryAttempts > 1 {
		incrementCounter(ctx, collector, CommandHandlerRetriesMetric, map[string]string{
			LogAttrCommandType: commandType,
			LogAttrAttempt:     strconv.Itoa(result.RetryAttempts - 1),
			LogAttrErrorType:   result.LastErrorType,
		})
		recordDuration(ctx, collector, CommandHandlerRetryDelayMetric, result.TotalRetryDelay, map[string]string{
			LogAttrCommandType: commandType,
		})
	}

	if result.RetriesExhausted {
		incrementCounter(ctx, collector, CommandHandlerMaxRetriesReachedMetric, map[string]string{
			LogAttrCommandType: commandType,
		})
	}
}

// RecordQueryMetrics records duration and call count of a query handler.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	snapshotReason string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
	if snapshotReason != "" {
		labels[LogAttrSnapshotReason] = snapshotReason
	}

	recordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)
}

// StartCommandSpan starts a span, or returns ctx and nil if tracing is disabled.
func StartCommandSpan(ctx context.Context, tracingCollector TracingCollector, commandType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{
		LogAttrCommandType: commandType,
	})
}

// FinishCommandSpan finishes the span with status, duration, outcome code and error if any.
func FinishCommandSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	result HandlerResult,
	duration time.Duration,
	err error,
) {

	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:      status,
		LogAttrDurationMS:  strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64),
		LogAttrOutcomeCode: strconv.Itoa(result.Code),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, spanStatus(status), attrs)
}

// LogCommandStart logs at debug level.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	args := []any{LogAttrCommandType, commandType}

	switch {
	case contextualLogger != nil:
		contextualLogger.DebugContext(ctx, LogMsgCommandStarted, args...)
	case logger != nil:
		logger.Debug(LogMsgCommandStarted, args...)
	}
}

// LogCommandOutcome logs completed commands at info level; refusals are business outcomes, not errors.
func LogCommandOutcome(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	result HandlerResult,
	duration time.Duration,
) {

	msg := LogMsgCommandCompleted
	if status == StatusRefused {
		msg = LogMsgCommandRefused
	}

	args := []any{
		LogAttrCommandType, commandType,
		LogAttrStatus, status,
		LogAttrOutcome, circulation.ClassifyOutcome(result.Success, result.Code).String(),
		LogAttrOutcomeCode, result.Code,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	switch {
	case contextualLogger != nil:
		contextualLogger.InfoContext(ctx, msg, args...)
	case logger != nil:
		logger.Info(msg, args...)
	}
}

// LogCommandError logs failed commands at error level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
) {

	args := []any{
		LogAttrCommandType, commandType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	}

	switch {
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	case logger != nil:
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// spanStatus maps command statuses to the statuses the tracing adapters understand.
// A refusal is a successful execution.
func spanStatus(status string) string {
	switch status {
	case StatusSuccess, StatusRefused, StatusIdempotent:
		return StatusSuccess
	default:
		return status
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, duration time.Duration, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	collector.RecordDuration(metric, duration, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}
