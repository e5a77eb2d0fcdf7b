package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-circulation-go/journal/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_OTelLogger_EmitsRecordsWithSeverityAndAttributes(t *testing.T) {
	// arrange
	provider := newRecordingLoggerProvider()
	logger := oteladapters.NewOTelLogger(provider.Logger("test"))

	// act
	logger.DebugContext(context.Background(), "debug message")
	logger.InfoContext(context.Background(), "checkout completed", "member_class", 2, "title", "A")
	logger.WarnContext(context.Background(), "warn message", 42, "ignored")
	logger.ErrorContext(context.Background(), "error message", "error", "boom")

	// assert
	records := provider.logger.recorded()
	require.Len(t, records, 4)

	assert.Equal(t, log.SeverityDebug, records[0].record.Severity())
	assert.Equal(t, log.SeverityInfo, records[1].record.Severity())
	assert.Equal(t, log.SeverityWarn, records[2].record.Severity())
	assert.Equal(t, log.SeverityError, records[3].record.Severity())

	assert.Equal(t, "checkout completed", records[1].record.Body().AsString())
	memberClass, ok := attributeValue(records[1].record, "member_class")
	require.True(t, ok)
	assert.Equal(t, "2", memberClass)
	assert.Equal(t, 0, records[2].record.AttributesLen())
}

func Test_SlogBridgeLogger_CorrelatesWithActiveSpan(t *testing.T) {
	// arrange
	provider := newRecordingLoggerProvider()
	logger := oteladapters.NewSlogBridgeLoggerWithProvider("test", provider)

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(tracetest.NewInMemoryExporter()))
	ctx, span := tracerProvider.Tracer("test").Start(context.Background(), "checkout")
	defer span.End()

	// act
	logger.InfoContext(ctx, "copy checked out", "title", "A")

	// assert
	records := provider.logger.recorded()
	require.Len(t, records, 1)
	assert.Equal(t, "copy checked out", records[0].record.Body().AsString())
	assert.Equal(t, span.SpanContext().TraceID(), trace.SpanContextFromContext(records[0].ctx).TraceID())
}

func Test_SlogBridgeLoggerWithHandler_UsesHandler(t *testing.T) {
	// arrange
	spy := helper.NewLogHandlerSpy()
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(spy)

	// act
	logger.DebugContext(context.Background(), "debug")
	logger.InfoContext(context.Background(), "info")
	logger.WarnContext(context.Background(), "warn")
	logger.ErrorContext(context.Background(), "error", "error", "boom")

	// assert
	assert.Equal(t, 4, spy.GetRecordCount())
	assert.True(t, spy.HasErrorLog("error").WithAttrValue("error", "boom").Assert())
}
