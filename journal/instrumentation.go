package journal

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"
)

func (j *Journal) logDebug(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}
}

func (j *Journal) logInfo(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Info(msg, args...)
	}
}

func (j *Journal) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if j.contextualLogger != nil {
		j.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if j.logger != nil {
		j.logger.Error(msg, allArgs...)
	}
}

func (j *Journal) recordDuration(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status}

	if contextual, ok := j.metricsCollector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	j.metricsCollector.RecordDuration(metric, duration, labels)
}

func (j *Journal) recordValue(ctx context.Context, metric string, value float64, operation, status string) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{AttrOperation: operation, AttrStatus: status}

	if contextual, ok := j.metricsCollector.(ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	j.metricsCollector.RecordValue(metric, value, labels)
}

func (j *Journal) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if j.metricsCollector == nil {
		return
	}

	if contextual, ok := j.metricsCollector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	j.metricsCollector.IncrementCounter(metric, labels)
}

func (j *Journal) recordConflict(ctx context.Context) {
	j.incrementCounter(ctx, MetricConcurrencyConflicts, map[string]string{
		AttrOperation: OperationAppend,
		AttrErrorType: errorTypeConcurrencyConflict,
	})
}

func (j *Journal) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext) {
	if j.tracingCollector == nil {
		return ctx, nil
	}

	return j.tracingCollector.StartSpan(ctx, name, attrs)
}

func (j *Journal) finishSpan(span SpanContext, status string, attrs map[string]string) {
	if j.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	j.tracingCollector.FinishSpan(span, status, attrs)
}

// observeFailure records the failed operation on every configured channel.
// Concurrency conflicts are expected in normal operation and are not logged as errors.
func (j *Journal) observeFailure(
	ctx context.Context,
	span SpanContext,
	operation string,
	durationMetric string,
	start time.Time,
	err error,
) {

	errorType := classifyError(err)
	j.recordDuration(ctx, durationMetric, j.now().Sub(start), operation, StatusError)

	if !errors.Is(err, ErrConcurrencyConflict) {
		j.logError(ctx, logMsgOperationFailed, err, logAttrOperation, operation)
	}

	j.finishSpan(span, StatusError, map[string]string{AttrErrorType: errorType})
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, ErrNoEventsToAppend):
		return errorTypeNoEvents
	default:
		return StatusError
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Nanoseconds())/1e6, 'f', 2, 64)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func utoa(u MaxSequenceNumberUint) string {
	return strconv.FormatUint(uint64(u), 10)
}
