package journal

import (
	"context"
	"time"
)

// Logger is satisfied by *slog.Logger and most structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware variant of Logger, used for trace correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector receives durations, counters and values from the Journal and the lending shell.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
// Callers use them when available and fall back to the plain methods otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext is an active tracing span.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector creates and finishes spans, e.g. backed by OpenTelemetry (see package oteladapters).
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Metric names, span names and attribute keys emitted by the Journal.
const (
	MetricAppendDuration       = "journal_append_duration_seconds"
	MetricQueryDuration        = "journal_query_duration_seconds"
	MetricEventsAppended       = "journal_events_appended_total"
	MetricEventsQueried        = "journal_events_queried_total"
	MetricConcurrencyConflicts = "journal_concurrency_conflicts_total"

	SpanNameAppend = "journal.append"
	SpanNameQuery  = "journal.query"

	AttrOperation   = "operation"
	AttrStatus      = "status"
	AttrEventType   = "event_type"
	AttrEventCount  = "event_count"
	AttrExpectedSeq = "expected_sequence"
	AttrMaxSequence = "max_sequence"
	AttrErrorType   = "error_type"
	AttrDurationMS  = "duration_ms"

	StatusSuccess = "success"
	StatusError   = "error"

	OperationAppend = "append"
	OperationQuery  = "query"

	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeCanceled            = "canceled"
	errorTypeTimeout             = "timeout"
	errorTypeNoEvents            = "no_events"

	logMsgQueryCompleted      = "journal query completed"
	logMsgEventsAppended      = "journal events appended"
	logMsgConcurrencyConflict = "journal concurrency conflict detected"
	logMsgOperationFailed     = "journal operation failed"
	logMsgSnapshotSaved       = "journal snapshot saved"

	logAttrError            = "error"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedSequence = "expected_sequence"
	logAttrMaxSequence      = "max_sequence"
	logAttrOperation        = "operation"
	logAttrProjectionType   = "projection_type"
)
